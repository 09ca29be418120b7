package store

import "time"

// User is a row in the credentials table.
type User struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// SectionRow is one persisted portfolio section: the canonical JSON blob
// for that section plus last-modified metadata.
type SectionRow struct {
	SectionName string
	Data        string
	UpdatedAt   time.Time
	UpdatedBy   string
}
