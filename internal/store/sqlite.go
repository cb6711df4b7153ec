package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/rohitkumarofficial/reactivities/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

const upsertActivitySQL = `
	INSERT OR REPLACE INTO activities (
		id, title, date, description, category,
		city, venue, is_cancelled, is_going, fetched_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// UpsertActivities inserts or replaces a batch of activities.
func (s *SQLiteStore) UpsertActivities(
	ctx context.Context,
	activities []model.Activity,
) error {
	if len(activities) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := upsertAll(ctx, tx, activities); err != nil {
		return err
	}

	return tx.Commit()
}

// ReplaceAll swaps the whole snapshot for the given set in one
// transaction.
func (s *SQLiteStore) ReplaceAll(
	ctx context.Context,
	activities []model.Activity,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM activities"); err != nil {
		return fmt.Errorf("clearing activities: %w", err)
	}

	if err := upsertAll(ctx, tx, activities); err != nil {
		return err
	}

	return tx.Commit()
}

// upsertAll writes the given activities inside an open transaction.
func upsertAll(
	ctx context.Context,
	tx *sqlx.Tx,
	activities []model.Activity,
) error {
	stmt, err := tx.PreparexContext(ctx, upsertActivitySQL)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, a := range activities {
		_, err = stmt.ExecContext(ctx,
			a.ID, a.Title, a.Date.UTC(), a.Description, a.Category,
			a.City, a.Venue, boolToInt(a.IsCancelled), boolToInt(a.IsGoing),
			now,
		)
		if err != nil {
			return fmt.Errorf("upserting activity %s: %w", a.ID, err)
		}
	}

	return nil
}

// GetActivities retrieves the full snapshot ordered by date ascending.
func (s *SQLiteStore) GetActivities(
	ctx context.Context,
) ([]model.Activity, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM activities ORDER BY date ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("querying activities: %w", err)
	}
	defer rows.Close()

	var activities []model.Activity
	for rows.Next() {
		act, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, act)
	}

	return activities, rows.Err()
}

// GetActivityByID retrieves a single activity by its identifier.
// Returns nil without error when the id is not in the snapshot.
func (s *SQLiteStore) GetActivityByID(
	ctx context.Context,
	id string,
) (*model.Activity, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT * FROM activities WHERE id = ?", id,
	)

	act, err := scanActivityRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting activity %s: %w", id, err)
	}

	return &act, nil
}

// DeleteActivity removes an activity from the snapshot by identifier.
func (s *SQLiteStore) DeleteActivity(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM activities WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting activity %s: %w", id, err)
	}
	return nil
}

// scanActivity scans an activity row from a sqlx.Rows result set.
func scanActivity(rows *sqlx.Rows) (model.Activity, error) {
	var (
		act         model.Activity
		date        time.Time
		isCancelled int
		isGoing     int
		fetchedAt   time.Time
	)

	err := rows.Scan(
		&act.ID, &act.Title, &date, &act.Description, &act.Category,
		&act.City, &act.Venue, &isCancelled, &isGoing, &fetchedAt,
	)
	if err != nil {
		return model.Activity{}, fmt.Errorf("scanning activity row: %w", err)
	}

	act.Date = date
	act.IsCancelled = isCancelled != 0
	act.IsGoing = isGoing != 0

	return act, nil
}

// scanActivityRow scans a single activity row from a sqlx.Row.
func scanActivityRow(row *sqlx.Row) (model.Activity, error) {
	var (
		act         model.Activity
		date        time.Time
		isCancelled int
		isGoing     int
		fetchedAt   time.Time
	)

	err := row.Scan(
		&act.ID, &act.Title, &date, &act.Description, &act.Category,
		&act.City, &act.Venue, &isCancelled, &isGoing, &fetchedAt,
	)
	if err != nil {
		return model.Activity{}, err
	}

	act.Date = date
	act.IsCancelled = isCancelled != 0
	act.IsGoing = isGoing != 0

	return act, nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
