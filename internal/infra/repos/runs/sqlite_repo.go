package runs

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mmrzaf/synthgen/internal/domain"
)

type Repository interface {
	Init() error
	Create(run *domain.Run) error
	Update(run *domain.Run) error
	Get(id string) (*domain.Run, error)
	List(limit int, status string) ([]*domain.Run, error)
}

type SQLiteRepository struct {
	dbPath string
	db     *sql.DB
}

func NewSQLiteRepository(dbPath string) *SQLiteRepository {
	return &SQLiteRepository{dbPath: dbPath}
}

func (r *SQLiteRepository) Init() error {
	if dir := filepath.Dir(r.dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	db, err := sql.Open("sqlite3", r.dbPath)
	if err != nil {
		return err
	}
	r.db = db

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		config_id TEXT NOT NULL,
		generator TEXT NOT NULL,
		rows INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		config_hash TEXT NOT NULL,
		destination TEXT NOT NULL,
		status TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL,
		completed_at TIMESTAMP,
		stats TEXT,
		error TEXT
	)`

	_, err = r.db.Exec(createTableSQL)
	return err
}

func (r *SQLiteRepository) Create(run *domain.Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	var completedAt interface{}
	if run.CompletedAt != nil {
		completedAt = run.CompletedAt.Format(time.RFC3339)
	}

	query := `
		INSERT INTO runs (
			id, config_id, generator, rows, seed, config_hash,
			destination, status, started_at, completed_at, stats, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		run.ID, run.ConfigID, string(run.Generator), run.Rows,
		run.Seed, run.ConfigHash, run.Destination, run.Status,
		run.StartedAt.Format(time.RFC3339), completedAt,
		string(run.Stats), run.Error,
	)
	return err
}

func (r *SQLiteRepository) Update(run *domain.Run) error {
	var completedAt interface{}
	if run.CompletedAt != nil {
		completedAt = run.CompletedAt.Format(time.RFC3339)
	}

	query := `
		UPDATE runs SET
			status = ?, completed_at = ?, stats = ?, error = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query, run.Status, completedAt, string(run.Stats), run.Error, run.ID)
	return err
}

const selectColumns = `
	SELECT id, config_id, generator, rows, seed, config_hash,
	       destination, status, started_at, completed_at, stats, error
	FROM runs
`

func (r *SQLiteRepository) Get(id string) (*domain.Run, error) {
	row := r.db.QueryRow(selectColumns+" WHERE id = ?", id)
	return scanRun(row)
}

func (r *SQLiteRepository) List(limit int, status string) ([]*domain.Run, error) {
	query := selectColumns
	args := make([]interface{}, 0)
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}

	query += " ORDER BY started_at DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, run)
	}

	return list, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s rowScanner) (*domain.Run, error) {
	var run domain.Run
	var generator string
	var startedAtStr string
	var completedAtStr sql.NullString
	var statsStr sql.NullString
	var errorStr sql.NullString

	err := s.Scan(
		&run.ID, &run.ConfigID, &generator, &run.Rows,
		&run.Seed, &run.ConfigHash, &run.Destination, &run.Status,
		&startedAtStr, &completedAtStr, &statsStr, &errorStr,
	)
	if err != nil {
		return nil, err
	}

	run.Generator = domain.Kind(generator)
	run.StartedAt, _ = time.Parse(time.RFC3339, startedAtStr)
	if completedAtStr.Valid {
		t, _ := time.Parse(time.RFC3339, completedAtStr.String)
		run.CompletedAt = &t
	}
	if statsStr.Valid {
		run.Stats = []byte(statsStr.String)
	}
	if errorStr.Valid {
		run.Error = errorStr.String
	}

	return &run, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
