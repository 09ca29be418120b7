// Package history keeps a git-backed audit trail of the content document.
// Every successful save becomes a commit of portfolio.json, so the owner
// can list past versions and read the document as it was at any of them.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"portfolio/api/internal/portfolio"
)

const contentFile = "portfolio.json"

// CommitInfo describes one saved version.
type CommitInfo struct {
	Hash      string    `json:"hash"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type Service struct {
	dir string
	mu  sync.Mutex
}

func New(dir string) *Service {
	return &Service{dir: dir}
}

// Ensure initializes the history repository with a baseline commit of the
// given document. An existing repository is left alone.
func (s *Service) Ensure(initial portfolio.Document, author string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.dir); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat history dir: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	repo, err := git.PlainInit(s.dir, false)
	if err != nil {
		return fmt.Errorf("init history repo: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("open worktree: %w", err)
	}
	if err := writeDocument(s.dir, initial); err != nil {
		return err
	}
	if _, err := worktree.Add(contentFile); err != nil {
		return fmt.Errorf("git add baseline: %w", err)
	}
	hash, err := worktree.Commit("Import content baseline", &git.CommitOptions{
		Author: signature(author),
	})
	if err != nil {
		return fmt.Errorf("commit baseline: %w", err)
	}
	if err := repo.Storer.SetReference(plumbing.NewHashReference(plumbing.NewBranchReferenceName("main"), hash)); err != nil {
		return fmt.Errorf("set main branch ref: %w", err)
	}
	if err := repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName("main"))); err != nil {
		return fmt.Errorf("set HEAD to main: %w", err)
	}
	return nil
}

// Commit records a new version of the document. Saving an unchanged
// document is not an error; the head commit is returned instead.
func (s *Service) Commit(doc portfolio.Document, author, message string) (CommitInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo, err := git.PlainOpen(s.dir)
	if err != nil {
		return CommitInfo{}, fmt.Errorf("open history repo: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return CommitInfo{}, fmt.Errorf("open worktree: %w", err)
	}
	if err := writeDocument(s.dir, doc); err != nil {
		return CommitInfo{}, err
	}
	if _, err := worktree.Add(contentFile); err != nil {
		return CommitInfo{}, fmt.Errorf("git add content: %w", err)
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: signature(author),
	})
	if errors.Is(err, git.ErrEmptyCommit) {
		return s.head(repo)
	}
	if err != nil {
		return CommitInfo{}, fmt.Errorf("commit content: %w", err)
	}

	commitObj, err := repo.CommitObject(hash)
	if err != nil {
		return CommitInfo{}, fmt.Errorf("read commit object: %w", err)
	}
	return toCommitInfo(commitObj), nil
}

// History lists versions newest first, at most limit of them. A limit of
// zero means all.
func (s *Service) History(limit int) ([]CommitInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo, err := git.PlainOpen(s.dir)
	if err != nil {
		return nil, fmt.Errorf("open history repo: %w", err)
	}

	ref, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve head: %w", err)
	}

	iter, err := repo.Log(&git.LogOptions{From: ref.Hash()})
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	defer iter.Close()

	items := make([]CommitInfo, 0, limit)
	count := 0
	err = iter.ForEach(func(commitObj *object.Commit) error {
		items = append(items, toCommitInfo(commitObj))
		count++
		if limit > 0 && count >= limit {
			return io.EOF
		}
		return nil
	})
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("iterate log: %w", err)
	}
	return items, nil
}

// DocumentAt returns the document as committed at the given revision.
// Abbreviated hashes are accepted.
func (s *Service) DocumentAt(hash string) (portfolio.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo, err := git.PlainOpen(s.dir)
	if err != nil {
		return nil, fmt.Errorf("open history repo: %w", err)
	}

	resolvedHash, err := resolveHash(repo, hash)
	if err != nil {
		return nil, err
	}
	commitObj, err := repo.CommitObject(resolvedHash)
	if err != nil {
		return nil, fmt.Errorf("read commit %s: %w", hash, err)
	}

	file, err := commitObj.File(contentFile)
	if err != nil {
		return nil, fmt.Errorf("load %s from commit: %w", contentFile, err)
	}
	reader, err := file.Reader()
	if err != nil {
		return nil, fmt.Errorf("open content reader: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read content bytes: %w", err)
	}

	var doc portfolio.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode commit content: %w", err)
	}
	return portfolio.Normalize(doc), nil
}

func (s *Service) head(repo *git.Repository) (CommitInfo, error) {
	ref, err := repo.Head()
	if err != nil {
		return CommitInfo{}, fmt.Errorf("resolve head: %w", err)
	}
	commitObj, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return CommitInfo{}, fmt.Errorf("read head commit: %w", err)
	}
	return toCommitInfo(commitObj), nil
}

func writeDocument(dir string, doc portfolio.Document) error {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, contentFile), append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", contentFile, err)
	}
	return nil
}

func signature(author string) *object.Signature {
	if author == "" {
		author = "portfolio"
	}
	return &object.Signature{
		Name:  author,
		Email: fmt.Sprintf("%s@local.portfolio.dev", sanitizeEmail(author)),
		When:  time.Now(),
	}
}

func toCommitInfo(commitObj *object.Commit) CommitInfo {
	return CommitInfo{
		Hash:      commitObj.Hash.String()[:7],
		Message:   commitObj.Message,
		Author:    commitObj.Author.Name,
		CreatedAt: commitObj.Author.When,
	}
}

func sanitizeEmail(input string) string {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			out = append(out, r)
			continue
		}
		if r == ' ' || r == '-' || r == '_' {
			out = append(out, '.')
		}
	}
	if len(out) == 0 {
		return "user"
	}
	return string(out)
}

func resolveHash(repo *git.Repository, hash string) (plumbing.Hash, error) {
	if len(hash) == 40 {
		return plumbing.NewHash(hash), nil
	}
	resolved, err := repo.ResolveRevision(plumbing.Revision(hash))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolve hash %s: %w", hash, err)
	}
	return *resolved, nil
}
