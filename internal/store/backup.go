package store

import (
	"database/sql"
	"fmt"

	"podpoints/internal/model"
)

type BackupStore struct {
	db *sql.DB
}

func NewBackupStore(db *sql.DB) *BackupStore {
	return &BackupStore{db: db}
}

func (s *BackupStore) Create(objectKey string, sizeBytes int64) (*model.BackupRecord, error) {
	result, err := s.db.Exec(
		`INSERT INTO backups (object_key, size_bytes) VALUES (?, ?)`,
		objectKey, sizeBytes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert backup record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	var rec model.BackupRecord
	err = s.db.QueryRow(
		`SELECT id, object_key, size_bytes, created_at FROM backups WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.ObjectKey, &rec.SizeBytes, &rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get backup record: %w", err)
	}
	return &rec, nil
}

// Latest returns the most recent backup record, or nil if none exist.
func (s *BackupStore) Latest() (*model.BackupRecord, error) {
	var rec model.BackupRecord
	err := s.db.QueryRow(
		`SELECT id, object_key, size_bytes, created_at FROM backups ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&rec.ID, &rec.ObjectKey, &rec.SizeBytes, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest backup record: %w", err)
	}
	return &rec, nil
}
