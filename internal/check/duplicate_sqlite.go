package check

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/flybeeper/gps-checker/internal/models"
	"github.com/flybeeper/gps-checker/pkg/utils"
	_ "modernc.org/sqlite"
)

const duplicateQuery = `
	SELECT b.idx, b.time, b.lat, b.lon
	FROM (
		SELECT lat, lon
		FROM gps
		GROUP BY lat, lon
		HAVING COUNT(*) > 1
	) AS a
	JOIN gps AS b ON a.lat = b.lat AND a.lon = b.lon
	ORDER BY b.idx
`

// SQLiteDuplicateFinder ищет дубли SQL-запросом во временной базе SQLite в памяти.
// База создается на каждый вызов и удаляется после него.
type SQLiteDuplicateFinder struct {
	logger *utils.Logger
}

// NewSQLiteDuplicateFinder создает поиск дублей через SQLite
func NewSQLiteDuplicateFinder(logger *utils.Logger) *SQLiteDuplicateFinder {
	return &SQLiteDuplicateFinder{logger: logger}
}

// Name возвращает имя реализации
func (f *SQLiteDuplicateFinder) Name() string {
	return "sqlite"
}

// FindDuplicates реализует DuplicateFinder
func (f *SQLiteDuplicateFinder) FindDuplicates(ctx context.Context, fixes []models.Fix) ([]models.DuplicateGroup, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory SQLite: %w", err)
	}
	defer db.Close()

	// Каждое соединение получает свою базу :memory:
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `CREATE TABLE gps (idx INTEGER PRIMARY KEY, time INTEGER NOT NULL, lat REAL NOT NULL, lon REAL NOT NULL)`); err != nil {
		return nil, fmt.Errorf("failed to create gps table: %w", err)
	}

	if err := f.insertFixes(ctx, db, fixes); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, duplicateQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query duplicates: %w", err)
	}
	defer rows.Close()

	var (
		dups    []models.Fix
		indices []int
	)
	for rows.Next() {
		var (
			idx int
			tod int
			fix models.Fix
		)
		if err := rows.Scan(&idx, &tod, &fix.Latitude, &fix.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan duplicate row: %w", err)
		}
		fix.Time = models.TimeOfDay(tod)
		dups = append(dups, fix)
		indices = append(indices, idx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate duplicate rows: %w", err)
	}

	f.logger.WithField("fixes", len(fixes)).
		WithField("duplicate_rows", len(dups)).
		Debug("SQLite duplicate query completed")

	return groupDuplicates(dups, func(i int) int { return indices[i] }), nil
}

func (f *SQLiteDuplicateFinder) insertFixes(ctx context.Context, db *sql.DB, fixes []models.Fix) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO gps (idx, time, lat, lon) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, fix := range fixes {
		if _, err := stmt.ExecContext(ctx, i, fix.Time.Seconds(), fix.Latitude, fix.Longitude); err != nil {
			return fmt.Errorf("failed to insert fix %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit fixes: %w", err)
	}
	return nil
}
