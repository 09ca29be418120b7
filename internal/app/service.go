// Package app wires the portfolio service together and exposes it over
// HTTP: session auth, the section-keyed persistence API, the public
// document read, PDF export, and asset uploads.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"portfolio/api/internal/assets"
	"portfolio/api/internal/auth"
	"portfolio/api/internal/authpw"
	"portfolio/api/internal/config"
	"portfolio/api/internal/content"
	"portfolio/api/internal/email"
	"portfolio/api/internal/export"
	"portfolio/api/internal/history"
	"portfolio/api/internal/portfolio"
	"portfolio/api/internal/render"
	"portfolio/api/internal/search"
	"portfolio/api/internal/session"
	"portfolio/api/internal/store"
)

// Session is the authenticated caller attached to a request.
type Session struct {
	Username  string
	TokenHash string
	ExpiresAt time.Time
}

type Service struct {
	cfg      config.Config
	store    *store.Store
	gateway  *content.Gateway
	creds    *authpw.Service
	sessions session.Store
	renderer *render.Renderer
	assets   *assets.Store
	searcher *search.Service
	history  *history.Service
	mailer   *email.Service
	logger   *log.Logger
}

// NewService builds the service. assetStore, historySvc, and mailer may
// be nil when the matching feature is not configured; its endpoints then
// report unavailable.
func NewService(
	cfg config.Config,
	st *store.Store,
	gateway *content.Gateway,
	creds *authpw.Service,
	sessions session.Store,
	renderer *render.Renderer,
	assetStore *assets.Store,
	searcher *search.Service,
	historySvc *history.Service,
	mailer *email.Service,
	logger *log.Logger,
) *Service {
	if logger == nil {
		logger = log.Default()
	}
	if searcher == nil {
		searcher = search.NewService(nil)
	}
	return &Service{
		cfg:      cfg,
		store:    st,
		gateway:  gateway,
		creds:    creds,
		sessions: sessions,
		renderer: renderer,
		assets:   assetStore,
		searcher: searcher,
		history:  historySvc,
		mailer:   mailer,
		logger:   logger,
	}
}

// Bootstrap prepares a fresh deployment: the default admin account, the
// object-storage bucket, the history baseline, and the search snapshot.
func (s *Service) Bootstrap(ctx context.Context) error {
	if err := s.creds.EnsureDefaultAdmin(ctx, s.cfg.DefaultAdminUser, s.cfg.DefaultAdminPassword); err != nil {
		return err
	}
	if s.assets != nil {
		if err := s.assets.EnsureBucket(ctx); err != nil {
			return err
		}
	}

	doc, err := s.gateway.FetchDocument(ctx)
	if err != nil {
		s.logger.Printf("bootstrap: content backend unavailable, search and history deferred: %v", err)
		return nil
	}
	s.searcher.Index(doc)
	if s.history != nil {
		if err := s.history.Ensure(doc, s.cfg.DefaultAdminUser); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Login checks credentials and opens a session. The returned token is
// what rides in the session cookie.
func (s *Service) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	user, err := s.creds.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, authpw.ErrInvalidCredentials) {
			return "", time.Time{}, authError("Invalid username or password")
		}
		return "", time.Time{}, persistenceError("Login failed")
	}

	expiresAt := time.Now().Add(s.cfg.SessionTTL)
	token, err := auth.IssueToken([]byte(s.cfg.SessionSecret), auth.Claims{
		Sub: user.Username,
		JTI: uuid.NewString(),
		Exp: expiresAt.Unix(),
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issue token: %w", err)
	}

	err = s.sessions.Save(ctx, auth.HashToken(token), session.Session{
		Username:  user.Username,
		CreatedAt: time.Now(),
	}, s.cfg.SessionTTL)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("save session: %w", err)
	}
	return token, expiresAt, nil
}

// Logout revokes the server-side session. A token that is already gone
// is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Revoke(ctx, auth.HashToken(token))
}

// SessionFromToken validates signature, expiry, and the server-side
// registry. Any failure means the caller is not logged in.
func (s *Service) SessionFromToken(ctx context.Context, token string) (Session, error) {
	claims, err := auth.ParseToken([]byte(s.cfg.SessionSecret), token)
	if err != nil {
		return Session{}, err
	}
	tokenHash := auth.HashToken(token)
	sess, err := s.sessions.Lookup(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return Session{}, auth.ErrInvalidToken
		}
		return Session{}, fmt.Errorf("session lookup: %w", err)
	}
	return Session{
		Username:  sess.Username,
		TokenHash: tokenHash,
		ExpiresAt: time.Unix(claims.Exp, 0),
	}, nil
}

// ChangePassword updates the caller's password after re-verifying the
// current one. Validation failures come back as domain errors so the
// form can show them inline.
func (s *Service) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	err := s.creds.ChangePassword(ctx, username, currentPassword, newPassword)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, authpw.ErrInvalidCredentials):
		return authError("Current password is incorrect")
	case errors.Is(err, authpw.ErrPasswordTooShort), errors.Is(err, authpw.ErrPasswordUnchanged):
		return validationError(err.Error())
	default:
		return persistenceError("Could not change password")
	}
}

// Portfolio returns the full normalized document from the configured
// content backend.
func (s *Service) Portfolio(ctx context.Context) (portfolio.Document, error) {
	doc, err := s.gateway.FetchDocument(ctx)
	if err != nil {
		return nil, networkError("Content backend unavailable")
	}
	return doc, nil
}

// SavePortfolio overwrites every section in one transaction. The raw
// body keys are section names; unknown sections are dropped, known ones
// are normalized so the stored document is always complete.
func (s *Service) SavePortfolio(ctx context.Context, raw map[string]json.RawMessage, updatedBy string) error {
	if len(raw) == 0 {
		return validationError("Portfolio data is required")
	}

	decoded := make(portfolio.Document, len(raw))
	for name, blob := range raw {
		if _, known := portfolio.SectionByName(name); !known {
			continue
		}
		var value interface{}
		if err := json.Unmarshal(blob, &value); err != nil {
			return validationError(fmt.Sprintf("Section %s is not valid JSON", name))
		}
		decoded[name] = value
	}
	doc := portfolio.Normalize(decoded)

	sections := make(map[string]json.RawMessage, len(portfolio.Sections))
	for _, section := range portfolio.Sections {
		blob, err := json.Marshal(doc[section.Name])
		if err != nil {
			return fmt.Errorf("encode section %s: %w", section.Name, err)
		}
		sections[section.Name] = blob
	}

	if err := s.store.ReplaceAllSections(ctx, sections, updatedBy); err != nil {
		s.logger.Printf("portfolio save failed: %v", err)
		return persistenceError("Could not save portfolio")
	}

	s.searcher.Index(doc)
	if s.history != nil {
		if _, err := s.history.Commit(doc, updatedBy, "Update portfolio content"); err != nil {
			s.logger.Printf("history commit failed: %v", err)
		}
	}
	return nil
}

// Search runs a full-text query over the published content.
func (s *Service) Search(q search.Query) search.Response {
	return s.searcher.Search(q)
}

// PortfolioHistory lists saved versions, newest first.
func (s *Service) PortfolioHistory(limit int) ([]history.CommitInfo, error) {
	if s.history == nil {
		return nil, domainError(http.StatusServiceUnavailable, "HISTORY_UNAVAILABLE", "Content history is not configured")
	}
	entries, err := s.history.History(limit)
	if err != nil {
		s.logger.Printf("history read failed: %v", err)
		return nil, persistenceError("Could not read content history")
	}
	return entries, nil
}

// PortfolioAt returns the document as saved at the given version.
func (s *Service) PortfolioAt(hash string) (portfolio.Document, error) {
	if s.history == nil {
		return nil, domainError(http.StatusServiceUnavailable, "HISTORY_UNAVAILABLE", "Content history is not configured")
	}
	doc, err := s.history.DocumentAt(hash)
	if err != nil {
		return nil, domainError(http.StatusNotFound, "NOT_FOUND", "No such version")
	}
	return doc, nil
}

// ContactMessage forwards a visitor message to the site owner.
func (s *Service) ContactMessage(ctx context.Context, name, emailAddr, message string) error {
	if s.mailer == nil || !s.mailer.IsConfigured() {
		return domainError(http.StatusServiceUnavailable, "CONTACT_UNAVAILABLE", "The contact form is not available")
	}
	if name == "" || message == "" {
		return validationError("Name and message are required")
	}
	if emailAddr == "" || !strings.Contains(emailAddr, "@") {
		return validationError("A valid email address is required")
	}
	if err := s.mailer.SendContactMessage(name, emailAddr, message); err != nil {
		s.logger.Printf("contact mail failed: %v", err)
		return networkError("Could not deliver the message")
	}
	return nil
}

// ExportPDF renders the public page and prints it to PDF.
func (s *Service) ExportPDF(ctx context.Context) (*export.Result, error) {
	doc, err := s.Portfolio(ctx)
	if err != nil {
		return nil, err
	}
	html, err := s.renderer.PageHTML(doc)
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	title := doc.SingletonRecord("about").String("name")
	if title == "" {
		title = "portfolio"
	}
	result, err := export.PDFFromHTML(ctx, html, title)
	if err != nil {
		if errors.Is(err, export.ErrPDFDependencyMissing) {
			return nil, domainError(http.StatusServiceUnavailable, "EXPORT_UNAVAILABLE", "PDF export is not available on this server")
		}
		return nil, fmt.Errorf("export pdf: %w", err)
	}
	return result, nil
}

// PublicPage renders the public profile as HTML.
func (s *Service) PublicPage(ctx context.Context) (string, error) {
	doc, err := s.Portfolio(ctx)
	if err != nil {
		return "", err
	}
	return s.renderer.PageHTML(doc)
}

// UploadAsset stores an upload and returns its public path.
func (s *Service) UploadAsset(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	if s.assets == nil {
		return "", domainError(http.StatusServiceUnavailable, "ASSETS_UNAVAILABLE", "Asset storage is not configured")
	}
	url, err := s.assets.Put(ctx, filename, contentType, r, size)
	if err != nil {
		s.logger.Printf("asset upload failed: %v", err)
		return "", persistenceError("Could not store asset")
	}
	return url, nil
}

// OpenAsset opens a stored asset for streaming.
func (s *Service) OpenAsset(ctx context.Context, name string) (*assets.Object, error) {
	if s.assets == nil {
		return nil, domainError(http.StatusServiceUnavailable, "ASSETS_UNAVAILABLE", "Asset storage is not configured")
	}
	obj, err := s.assets.Get(ctx, name)
	if err != nil {
		return nil, domainError(http.StatusNotFound, "NOT_FOUND", "Asset not found")
	}
	return obj, nil
}
