package sinks

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/mmrzaf/synthgen/internal/domain"
)

// PostgresSink writes the table into a schema-qualified postgres table,
// creating it first when it does not exist.
type PostgresSink struct {
	dsn    string
	schema string
	table  string
}

func NewPostgresSink(dsn, schema, table string) *PostgresSink {
	if schema == "" {
		schema = "public"
	}
	return &PostgresSink{dsn: dsn, schema: schema, table: table}
}

func (s *PostgresSink) Destination() string {
	return "postgres:" + s.schema + "." + s.table
}

func (s *PostgresSink) Write(t *domain.Table) error {
	db, err := sql.Open("postgres", s.dsn)
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

	return s.insertRows(db, t)
}

func (s *PostgresSink) createTableIfMissing(db *sql.DB, t *domain.Table) error {
	var exists bool
	query := `SELECT EXISTS (
		SELECT FROM information_schema.tables
		WHERE table_schema = $1 AND table_name = $2
	)`
	if err := db.QueryRow(query, s.schema, s.table).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	defs := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		defs[i] = col + " " + postgresType(columnValue(t, i))
	}

	createSQL := fmt.Sprintf("CREATE TABLE %s.%s (%s)",
		s.schema, s.table, strings.Join(defs, ", "))
	_, err := db.Exec(createSQL)
	return err
}

func (s *PostgresSink) insertRows(db *sql.DB, t *domain.Table) error {
	if len(t.Rows) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	placeholders := make([]string, len(t.Columns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	insertSQL := fmt.Sprintf("INSERT INTO %s.%s (%s) VALUES (%s)",
		s.schema, s.table, strings.Join(t.Columns, ", "), strings.Join(placeholders, ", "))

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range t.Rows {
		if _, err := stmt.Exec(row...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func postgresType(sample interface{}) string {
	switch sample.(type) {
	case int, int64:
		return "BIGINT"
	case float64:
		return "DOUBLE PRECISION"
	case time.Time:
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}
