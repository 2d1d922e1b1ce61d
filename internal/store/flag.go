package store

import (
	"context"
	"errors"
	"strconv"
)

// MigrationFlagKey holds the persisted "migration complete" flag.
const MigrationFlagKey = "interviewer_sqlite_migrated"

// MigrationFlag is the one persisted boolean that decides which backend
// serves statistics. It lives in the same KV as the document store.
type MigrationFlag struct {
	kv KV
}

func NewMigrationFlag(kv KV) *MigrationFlag {
	return &MigrationFlag{kv: kv}
}

// Get treats a missing or malformed value as false.
func (f *MigrationFlag) Get(ctx context.Context) (bool, error) {
	raw, err := f.kv.Get(ctx, MigrationFlagKey)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, unavailable("read migration flag", err)
	}
	v, err := strconv.ParseBool(string(raw))
	if err != nil {
		return false, nil
	}
	return v, nil
}

func (f *MigrationFlag) Set(ctx context.Context, v bool) error {
	if err := f.kv.Set(ctx, MigrationFlagKey, []byte(strconv.FormatBool(v))); err != nil {
		return unavailable("write migration flag", err)
	}
	return nil
}
