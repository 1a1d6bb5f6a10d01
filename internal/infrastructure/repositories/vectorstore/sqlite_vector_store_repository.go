package vectorstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/rios0rios0/repominer/internal/domain/entities"
	"github.com/rios0rios0/repominer/internal/domain/repositories"
)

//nolint:gochecknoglobals // static pragma list
var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA foreign_keys=ON",
	"PRAGMA busy_timeout=5000",
	"PRAGMA temp_store=MEMORY",
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS repositories (
	name     TEXT PRIMARY KEY,
	document BLOB NOT NULL
);
CREATE TABLE IF NOT EXISTS points (
	id         TEXT PRIMARY KEY,
	repository TEXT NOT NULL REFERENCES repositories(name) ON DELETE CASCADE,
	position   INTEGER NOT NULL,
	token      TEXT NOT NULL,
	vector     BLOB NOT NULL,
	UNIQUE (repository, position)
);
`

// SQLiteVectorStoreRepository keeps snapshots in a SQLite database through
// the pure Go modernc driver.
type SQLiteVectorStoreRepository struct {
	conn *sql.DB
}

// NewSQLiteVectorStoreRepository opens (or creates) the database and its
// schema.
func NewSQLiteVectorStoreRepository(settings entities.StoreSettings) (repositories.VectorStoreRepository, error) {
	if dir := filepath.Dir(settings.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", settings.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps the foreign_keys pragma in effect for every statement
	conn.SetMaxOpenConns(1)

	for _, pragma := range sqlitePragmas {
		if _, err = conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}
	if _, err = conn.Exec(sqliteSchema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteVectorStoreRepository{conn: conn}, nil
}

func (r *SQLiteVectorStoreRepository) Name() string { return "sqlite" }

func (r *SQLiteVectorStoreRepository) Save(ctx context.Context, snapshot *entities.Snapshot) error {
	name := snapshot.Repository.Name
	document, err := encodeDocument(snapshot.Repository)
	if err != nil {
		return err
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err = r.replace(ctx, tx, name, document, snapshot); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Warnf("Failed to rollback snapshot of %s: %v", name, rbErr)
		}
		return fmt.Errorf("failed to save snapshot of %q: %w", name, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Debugf("Stored %d points for %s in sqlite", len(snapshot.Tokens), name)
	return nil
}

func (r *SQLiteVectorStoreRepository) replace(
	ctx context.Context,
	tx *sql.Tx,
	name string,
	document []byte,
	snapshot *entities.Snapshot,
) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM repositories WHERE name = ?`, name); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO repositories (name, document) VALUES (?, ?)`, name, document,
	); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO points (id, repository, position, token, vector) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, token := range snapshot.Tokens {
		if _, err = stmt.ExecContext(ctx,
			pointID(name, i, token), name, i, token, encodeVector(snapshot.Vectors[i]),
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteVectorStoreRepository) Load(ctx context.Context, repository string) (*entities.Snapshot, error) {
	var document []byte
	err := r.conn.QueryRowContext(ctx,
		`SELECT document FROM repositories WHERE name = ?`, repository,
	).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entities.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot of %q: %w", repository, err)
	}

	repo, err := decodeDocument(document)
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx,
		`SELECT token, vector FROM points WHERE repository = ? ORDER BY position`, repository,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query points: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var (
		tokens  []string
		vectors [][]float32
	)
	for rows.Next() {
		var (
			token string
			blob  []byte
		)
		if err = rows.Scan(&token, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan point: %w", err)
		}
		vector, decodeErr := decodeVector(blob)
		if decodeErr != nil {
			return nil, decodeErr
		}
		tokens = append(tokens, token)
		vectors = append(vectors, vector)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate points: %w", err)
	}

	return entities.NewSnapshot(repo, tokens, vectors)
}

func (r *SQLiteVectorStoreRepository) Close() error {
	return r.conn.Close()
}
