package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/catalogrank/internal/models"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource reads items from a table of a SQLite database.
type SQLiteSource struct {
	db    *sql.DB
	path  string
	table string
}

// NewSQLiteSource opens or creates a SQLite database at dbPath and makes sure table exists.
// Parent directories are created if they do not exist.
func NewSQLiteSource(dbPath, table string) (*SQLiteSource, error) {
	if table == "" {
		table = "products"
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("%w: invalid table name %q", ErrUnsupportedSource, table)
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db, table); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteSource{db: db, path: dbPath, table: table}, nil
}

func initSchema(db *sql.DB, table string) error {
	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %[1]s (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		category TEXT,
		price REAL,
		rating REAL,
		review_count INTEGER,
		in_stock INTEGER,
		featured INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_%[1]s_category ON %[1]s(category);
	`, table)
	_, err := db.Exec(schema)
	return err
}

// Path returns the database file path.
func (s *SQLiteSource) Path() string {
	return s.path
}

// Items returns every row of the table in rowid order.
func (s *SQLiteSource) Items(ctx context.Context) ([]models.SearchableItem, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT id, name, description, category, price, rating, review_count, in_stock, featured
		 FROM %s ORDER BY rowid`, s.table))
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []models.SearchableItem
	for rows.Next() {
		var (
			item                 models.SearchableItem
			id, desc, category   sql.NullString
			price, rating        sql.NullFloat64
			reviewCount, inStock sql.NullInt64
			featured             int64
		)
		if err := rows.Scan(&id, &item.Name, &desc, &category, &price, &rating, &reviewCount, &inStock, &featured); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.ID = id.String
		item.Description = desc.String
		item.Category = category.String
		if price.Valid {
			item.Price = models.Float64(price.Float64)
		}
		if rating.Valid {
			item.Rating = models.Float64(rating.Float64)
		}
		if reviewCount.Valid {
			item.ReviewCount = models.Int(int(reviewCount.Int64))
		}
		if inStock.Valid {
			item.InStock = models.Bool(inStock.Int64 != 0)
		}
		item.Featured = featured != 0
		items = append(items, item)
	}
	return items, rows.Err()
}

// SaveItems inserts or replaces items in one transaction.
func (s *SQLiteSource) SaveItems(ctx context.Context, items []models.SearchableItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT OR REPLACE INTO %s (id, name, description, category, price, rating, review_count, in_stock, featured)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.table))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err := stmt.ExecContext(ctx,
			item.ID, item.Name, nullString(item.Description), nullString(item.Category),
			item.Price, item.Rating, item.ReviewCount, item.InStock, item.Featured,
		); err != nil {
			return fmt.Errorf("failed to insert item %s: %w", item.ID, err)
		}
	}
	return tx.Commit()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Close closes the database.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}
