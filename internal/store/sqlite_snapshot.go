package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrInvalidSnapshot = errors.New("invalid database snapshot")

var sqliteHeader = []byte("SQLite format 3\x00")

// Export returns a consistent copy of the whole database file.
func (s *SQLiteStore) Export(ctx context.Context) ([]byte, error) {
	dir, err := os.MkdirTemp("", "interviewer-export-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	target := filepath.Join(dir, "snapshot.db")
	if _, err := s.db.ExecContext(ctx, "VACUUM INTO '"+strings.ReplaceAll(target, "'", "''")+"'"); err != nil {
		return nil, unavailable("export database", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return data, nil
}

// Import replaces every row with the contents of a snapshot produced by
// Export. The snapshot is attached next to the live database and copied
// table by table inside one transaction.
func (s *SQLiteStore) Import(ctx context.Context, data []byte) error {
	if !bytes.HasPrefix(data, sqliteHeader) {
		return fmt.Errorf("%w: missing sqlite header", ErrInvalidSnapshot)
	}

	dir, err := os.MkdirTemp("", "interviewer-import-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "snapshot.db")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return unavailable("acquire connection", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "ATTACH DATABASE ? AS snapshot", path); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	defer conn.ExecContext(context.Background(), "DETACH DATABASE snapshot")

	var n int
	if err := conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM snapshot.sqlite_master WHERE type = 'table' AND name IN ("+placeholders(len(tables))+")",
		toArgs(tables)...,
	).Scan(&n); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if n != len(tables) {
		return fmt.Errorf("%w: expected %d tables, found %d", ErrInvalidSnapshot, len(tables), n)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin import", err)
	}
	defer tx.Rollback()

	if err := dropAll(ctx, tx); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("recreate schema: %w", err)
	}
	for _, t := range tables {
		if _, err := tx.ExecContext(ctx, "INSERT INTO main."+t+" SELECT * FROM snapshot."+t); err != nil {
			return fmt.Errorf("%w: copy %s: %v", ErrInvalidSnapshot, t, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return unavailable("commit import", err)
	}

	s.logger.Info("relational store imported", "bytes", len(data))
	return nil
}
