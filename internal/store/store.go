package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/interviewer/backend/internal/domain/guide"
	"github.com/interviewer/backend/internal/domain/statistics"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Backend names, as reported by the adapter and used as metric labels.
const (
	BackendDocument = "document"
	BackendSQLite   = "sqlite"
)

// StatisticsStore is the read/write contract both backends implement.
// Question numbers are the guide-wide numbers.
type StatisticsStore interface {
	// GetStatistics returns ErrNotFound when the guide has no statistics.
	GetStatistics(ctx context.Context, guideName string) (*statistics.PositionStatistic, error)
	// InitializeStatistics creates a zeroed tree for the guide, or returns
	// the existing one untouched.
	InitializeStatistics(ctx context.Context, g *guide.Guide) (*statistics.PositionStatistic, error)
	UpdateScore(ctx context.Context, guideName string, chapterNumber, questionNumber, score int) error
	ResetPosition(ctx context.Context, guideName string) error
	ResetChapter(ctx context.Context, guideName string, chapterNumber int) error
	ResetQuestion(ctx context.Context, guideName string, chapterNumber, questionNumber int) error
}

// notFound folds the domain lookup errors into ErrNotFound while keeping
// them matchable.
func notFound(err error) error {
	if errors.Is(err, statistics.ErrUnknownChapter) || errors.Is(err, statistics.ErrUnknownQuestion) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
