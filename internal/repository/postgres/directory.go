package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	stderrors "errors"

	"github.com/jmoiron/sqlx"

	"github.com/healthline/voice-agent/internal/model"
	"github.com/healthline/voice-agent/pkg/errors"
)

// directoryRowID pins the directory to a single document row, mirroring the
// single-file layout of the flat-file store.
const directoryRowID = 1

type DirectoryRepository struct {
	db *sqlx.DB
}

func NewDirectoryRepository(db *sqlx.DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

func (r *DirectoryRepository) Load(ctx context.Context) (model.Directory, error) {
	var doc []byte
	err := r.db.GetContext(ctx, &doc,
		`SELECT document FROM doctor_directory WHERE id = $1`, directoryRowID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.Storage("doctor directory document not found", err)
		}
		return nil, errors.Storage("failed to read doctor directory", err)
	}

	var dir model.Directory
	if err := json.Unmarshal(doc, &dir); err != nil {
		return nil, errors.Storage("failed to parse doctor directory", err)
	}
	return dir, nil
}

func (r *DirectoryRepository) Save(ctx context.Context, dir model.Directory) error {
	doc, err := json.Marshal(dir)
	if err != nil {
		return errors.Storage("failed to encode doctor directory", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO doctor_directory (id, document, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET document = $2, updated_at = NOW()`,
		directoryRowID, doc)
	if err != nil {
		return errors.Storage("failed to write doctor directory", err)
	}
	return nil
}
