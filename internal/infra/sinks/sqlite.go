package sinks

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mmrzaf/synthgen/internal/domain"
)

// SQLiteSink creates the target table if missing and batch-inserts all
// rows in one transaction.
type SQLiteSink struct {
	path  string
	table string
}

func NewSQLiteSink(path, table string) *SQLiteSink {
	return &SQLiteSink{path: path, table: table}
}

func (s *SQLiteSink) Destination() string {
	return "sqlite:" + s.path + "/" + s.table
}

func (s *SQLiteSink) Write(t *domain.Table) error {
	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return err
	}

	if err := s.createTableIfMissing(db, t); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	placeholders := make([]string, len(t.Columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.table, strings.Join(t.Columns, ", "), strings.Join(placeholders, ", "))

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range t.Rows {
		if _, err := stmt.Exec(driverArgs(row)...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteSink) createTableIfMissing(db *sql.DB, t *domain.Table) error {
	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, s.table).Scan(&name)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return err
	}

	defs := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		defs[i] = col + " " + sqliteType(columnValue(t, i))
	}
	_, err = db.Exec(fmt.Sprintf("CREATE TABLE %s (%s)", s.table, strings.Join(defs, ", ")))
	return err
}

func sqliteType(sample interface{}) string {
	switch sample.(type) {
	case int, int64:
		return "INTEGER"
	case float64:
		return "REAL"
	default:
		return "TEXT"
	}
}

// columnValue returns the first non-null value of a column, for type
// inference. An all-null column falls back to TEXT.
func columnValue(t *domain.Table, idx int) interface{} {
	for _, row := range t.Rows {
		if row[idx] != nil {
			return row[idx]
		}
	}
	return nil
}

func driverArgs(row []interface{}) []interface{} {
	args := make([]interface{}, len(row))
	for i, v := range row {
		if ts, ok := v.(time.Time); ok {
			args[i] = ts.Format(time.RFC3339)
		} else {
			args[i] = v
		}
	}
	return args
}
