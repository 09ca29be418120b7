package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Store persists portfolio sections as JSON blobs keyed by section name,
// plus the admin credentials table.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetSection returns the stored JSON blob for one section. sql.ErrNoRows
// when the section has never been written.
func (s *Store) GetSection(ctx context.Context, name string) (json.RawMessage, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM portfolio_data WHERE section_name = $1`, name).Scan(&data)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// GetAllSections returns every stored section blob keyed by section name.
func (s *Store) GetAllSections(ctx context.Context) (map[string]json.RawMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT section_name, data FROM portfolio_data ORDER BY section_name`)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	sections := make(map[string]json.RawMessage)
	for rows.Next() {
		var name, data string
		if err := rows.Scan(&name, &data); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		sections[name] = json.RawMessage(data)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sections: %w", err)
	}
	return sections, nil
}

// ReplaceAllSections writes every given section blob in one transaction.
// Any failed write rolls back the whole batch; the prior document stays
// intact.
func (s *Store) ReplaceAllSections(ctx context.Context, sections map[string]json.RawMessage, updatedBy string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}

	const upsert = `
		INSERT INTO portfolio_data (section_name, data, updated_at, updated_by)
		VALUES ($1, $2, CURRENT_TIMESTAMP, $3)
		ON CONFLICT (section_name) DO UPDATE SET
			data = excluded.data,
			updated_at = CURRENT_TIMESTAMP,
			updated_by = excluded.updated_by
	`
	for name, data := range sections {
		if !json.Valid(data) {
			_ = tx.Rollback()
			return fmt.Errorf("section %s: invalid JSON payload", name)
		}
		if _, err := tx.ExecContext(ctx, upsert, name, string(data), updatedBy); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("write section %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// SectionMeta returns last-modified metadata for one section.
func (s *Store) SectionMeta(ctx context.Context, name string) (SectionRow, error) {
	var row SectionRow
	err := s.db.QueryRowContext(ctx, `
		SELECT section_name, data, updated_at, updated_by
		FROM portfolio_data WHERE section_name = $1
	`, name).Scan(&row.SectionName, &row.Data, &row.UpdatedAt, &row.UpdatedBy)
	if err != nil {
		return SectionRow{}, err
	}
	return row, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		SELECT username, password_hash, created_at
		FROM users WHERE username = $1
	`, username).Scan(&user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash) VALUES ($1, $2)
	`, username, passwordHash)
	if err != nil {
		return fmt.Errorf("create user %s: %w", username, err)
	}
	return nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, username, passwordHash string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET password_hash = $1 WHERE username = $2
	`, passwordHash, username)
	if err != nil {
		return fmt.Errorf("update password for %s: %w", username, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
