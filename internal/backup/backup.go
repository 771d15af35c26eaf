package backup

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"podpoints/internal/model"
	"podpoints/internal/store"
)

// s3Client is the slice of the S3 API the manager needs; tests fake it.
type s3Client interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config holds S3-compatible storage settings.
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

// Config holds backup settings. The manager is disabled unless bucket,
// credentials, and a passphrase are all present.
type Config struct {
	S3         S3Config
	DBPath     string
	Passphrase string
	Interval   time.Duration
}

// Manager periodically snapshots the ledger, encrypts the snapshot, and
// uploads it to object storage.
type Manager struct {
	cfg     Config
	db      *sql.DB
	records *store.BackupStore
	client  s3Client
	logger  *slog.Logger
}

func NewManager(cfg Config, db *sql.DB, records *store.BackupStore, logger *slog.Logger) *Manager {
	m := &Manager{
		cfg:     cfg,
		db:      db,
		records: records,
		logger:  logger,
	}
	if cfg.S3.Bucket != "" && cfg.S3.AccessKey != "" && cfg.S3.SecretKey != "" && cfg.Passphrase != "" {
		m.client = newS3Client(cfg.S3)
	}
	return m
}

func newS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

// Enabled reports whether backups are configured.
func (m *Manager) Enabled() bool {
	return m.client != nil
}

// Run executes scheduled backups until the context is cancelled.
func (m *Manager) Run(ctx context.Context) {
	if !m.Enabled() {
		m.logger.Info("ledger backups disabled")
		return
	}

	interval := m.cfg.Interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := m.BackupNow(ctx); err != nil {
				m.logger.Error("scheduled backup", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// BackupNow snapshots the ledger with VACUUM INTO, encrypts it, uploads it,
// and records the result.
func (m *Manager) BackupNow(ctx context.Context) (*model.BackupRecord, error) {
	if !m.Enabled() {
		return nil, fmt.Errorf("backups not configured")
	}

	tmpDir, err := os.MkdirTemp("", "podpoints-backup-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	snapshot := filepath.Join(tmpDir, "ledger.db")
	if _, err := m.db.ExecContext(ctx, `VACUUM INTO ?`, snapshot); err != nil {
		return nil, fmt.Errorf("snapshot ledger: %w", err)
	}

	plaintext, err := os.ReadFile(snapshot)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	encrypted, err := Encrypt(plaintext, m.cfg.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("encrypt snapshot: %w", err)
	}

	key := "ledger/" + time.Now().UTC().Format("20060102T150405Z") + ".db.enc"
	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(m.cfg.S3.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(encrypted),
	})
	if err != nil {
		return nil, fmt.Errorf("upload snapshot: %w", err)
	}

	rec, err := m.records.Create(key, int64(len(encrypted)))
	if err != nil {
		return nil, fmt.Errorf("record backup: %w", err)
	}

	m.logger.Info("ledger backup uploaded", "key", key, "bytes", len(encrypted))
	return rec, nil
}
