// Package audit records a trail of decoded attributes to a SQL database, so
// operators can answer "what did we actually decode for this NAS, and when"
// after the fact without re-running a packet capture through raddecode.
package audit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Entry is one row of the decode audit trail: one top-level attribute
// decoded out of one packet.
type Entry struct {
	ID          uint      `gorm:"primaryKey"`
	DecodedAt   time.Time `gorm:"index"`
	PacketID    string    `gorm:"index"`
	NASAddr     string    `gorm:"index"`
	AttrType    uint32
	AttrName    string
	VendorPEN   uint32
	RawFallback bool
	Fragments   int
	DurationUs  int64
}

// TableName pins the GORM-generated table name so it doesn't pluralize
// oddly off "Entry".
func (Entry) TableName() string { return "audit_entries" }

// Store is a GORM-backed audit trail.
type Store struct {
	db *gorm.DB
}

// Open opens (creating and migrating if absent) the audit database at dsn.
// dsn is a SQLite file path; an in-memory database is used for dsn == ":memory:".
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("audit: dsn is required")
	}

	if dsn != ":memory:" {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("audit: create database directory: %w", err)
			}
		}
	}

	connDSN := dsn
	if !strings.Contains(connDSN, "?") && connDSN != ":memory:" {
		connDSN += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	// In-memory databases don't survive across the separate connection
	// golang-migrate opens, so tests fall back to GORM AutoMigrate instead.
	if dsn == ":memory:" {
		db, err := gorm.Open(sqlite.Open(connDSN), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, fmt.Errorf("audit: open %s: %w", dsn, err)
		}
		if err := db.AutoMigrate(&Entry{}); err != nil {
			return nil, fmt.Errorf("audit: migrate schema: %w", err)
		}
		return &Store{db: db}, nil
	}

	if err := runMigrations(dsn); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(connDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("audit: open %s: %w", dsn, err)
	}

	return &Store{db: db}, nil
}

// DB exposes the underlying GORM handle for migrations tooling and tests.
func (s *Store) DB() *gorm.DB { return s.db }

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Record inserts one audit entry.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.DecodedAt.IsZero() {
		e.DecodedAt = time.Now()
	}
	return s.db.WithContext(ctx).Create(&e).Error
}

// ForPacket returns every entry recorded for a given packet ID, oldest first.
func (s *Store) ForPacket(ctx context.Context, packetID string) ([]Entry, error) {
	var entries []Entry
	err := s.db.WithContext(ctx).
		Where("packet_id = ?", packetID).
		Order("decoded_at asc").
		Find(&entries).Error
	return entries, err
}

// RawFallbackRate returns the fraction of entries decoded at or after since
// that degraded to raw octets, a quick health signal for dictionary drift.
// There is no upper time bound.
func (s *Store) RawFallbackRate(ctx context.Context, since time.Time) (float64, error) {
	var total, fallback int64
	if err := s.db.WithContext(ctx).Model(&Entry{}).
		Where("decoded_at >= ?", since).
		Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	if err := s.db.WithContext(ctx).Model(&Entry{}).
		Where("decoded_at >= ? AND raw_fallback = ?", since, true).
		Count(&fallback).Error; err != nil {
		return 0, err
	}
	return float64(fallback) / float64(total), nil
}

// Prune deletes entries older than cutoff, keeping the audit trail bounded.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("decoded_at < ?", cutoff).Delete(&Entry{})
	return res.RowsAffected, res.Error
}
