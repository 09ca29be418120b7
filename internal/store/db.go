package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Open opens the portfolio database. driver is "sqlite" (embedded, the
// default deployment) or "pgx" (Postgres). Queries throughout the package
// use $N placeholders, which both engines accept.
func Open(ctx context.Context, driver, databaseURL string) (*sql.DB, error) {
	switch driver {
	case "sqlite", "pgx":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if driver == "sqlite" {
		// Single writer; avoids SQLITE_BUSY under concurrent section writes.
		db.SetMaxOpenConns(1)
	} else {
		db.SetConnMaxIdleTime(5 * time.Minute)
		db.SetConnMaxLifetime(30 * time.Minute)
		db.SetMaxIdleConns(10)
		db.SetMaxOpenConns(20)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}
