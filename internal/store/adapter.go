package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/interviewer/backend/internal/content"
	"github.com/interviewer/backend/internal/domain/guide"
	"github.com/interviewer/backend/internal/domain/statistics"
	"github.com/interviewer/backend/internal/logger"
	"github.com/interviewer/backend/internal/metrics"
)

// Adapter is the single statistics facade. Every call dispatches to the
// relational store when the migration flag is set and that store reports
// itself initialized, and to the document store otherwise.
type Adapter struct {
	flag       *MigrationFlag
	document   *DocumentStore
	relational *SQLiteStore
	content    content.Source
	metrics    *metrics.Metrics
	logger     *logger.Logger
}

// NewAdapter wires both backends. relational may be nil, in which case the
// document store always serves.
func NewAdapter(flag *MigrationFlag, document *DocumentStore, relational *SQLiteStore, src content.Source, m *metrics.Metrics, log *logger.Logger) *Adapter {
	return &Adapter{
		flag:       flag,
		document:   document,
		relational: relational,
		content:    src,
		metrics:    m,
		logger:     log.With("component", "adapter"),
	}
}

func (a *Adapter) active(ctx context.Context) (StatisticsStore, string, error) {
	migrated, err := a.flag.Get(ctx)
	if err != nil {
		return nil, "", err
	}
	if migrated && a.relational != nil {
		ok, err := a.relational.Initialized(ctx)
		if err != nil {
			return nil, "", err
		}
		if ok {
			return a.relational, BackendSQLite, nil
		}
		a.logger.Warn("migration flag set but relational store is not initialized, using document store")
	}
	return a.document, BackendDocument, nil
}

// Backend names the backend currently serving calls.
func (a *Adapter) Backend(ctx context.Context) (string, error) {
	_, name, err := a.active(ctx)
	return name, err
}

func (a *Adapter) GetStatistics(ctx context.Context, guideName string) (*statistics.PositionStatistic, error) {
	s, _, err := a.active(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetStatistics(ctx, guideName)
}

func (a *Adapter) InitializeStatistics(ctx context.Context, g *guide.Guide) (*statistics.PositionStatistic, error) {
	s, _, err := a.active(ctx)
	if err != nil {
		return nil, err
	}
	return s.InitializeStatistics(ctx, g)
}

func (a *Adapter) UpdateScore(ctx context.Context, guideName string, chapterNumber, questionNumber, score int) error {
	s, backend, err := a.active(ctx)
	if err != nil {
		return err
	}
	err = s.UpdateScore(ctx, guideName, chapterNumber, questionNumber, score)
	a.metrics.ObserveScoreUpdate(backend, err)
	return err
}

func (a *Adapter) ResetPosition(ctx context.Context, guideName string) error {
	s, _, err := a.active(ctx)
	if err != nil {
		return err
	}
	if err := s.ResetPosition(ctx, guideName); err != nil {
		return err
	}
	a.metrics.ObserveReset("position")
	return nil
}

func (a *Adapter) ResetChapter(ctx context.Context, guideName string, chapterNumber int) error {
	s, _, err := a.active(ctx)
	if err != nil {
		return err
	}
	if err := s.ResetChapter(ctx, guideName, chapterNumber); err != nil {
		return err
	}
	a.metrics.ObserveReset("chapter")
	return nil
}

func (a *Adapter) ResetQuestion(ctx context.Context, guideName string, chapterNumber, questionNumber int) error {
	s, _, err := a.active(ctx)
	if err != nil {
		return err
	}
	if err := s.ResetQuestion(ctx, guideName, chapterNumber, questionNumber); err != nil {
		return err
	}
	a.metrics.ObserveReset("question")
	return nil
}

// WeakQuestions lists answered questions scored below threshold.
func (a *Adapter) WeakQuestions(ctx context.Context, guideName string, threshold int) ([]statistics.WeakQuestion, error) {
	p, err := a.GetStatistics(ctx, guideName)
	if err != nil {
		return nil, err
	}
	return statistics.WeakQuestions(p, threshold), nil
}

// GetGuide reads guide content from whichever side owns it: the relational
// tables after migration, the content source before.
func (a *Adapter) GetGuide(ctx context.Context, name string) (*guide.Guide, error) {
	_, backend, err := a.active(ctx)
	if err != nil {
		return nil, err
	}
	if backend == BackendSQLite {
		g, err := a.relational.GetGuide(ctx, name)
		if !errors.Is(err, ErrNotFound) {
			return g, err
		}
	}

	if a.content == nil {
		return nil, fmt.Errorf("%w: guide %q", ErrNotFound, name)
	}
	g, err := a.content.Load(ctx, name)
	if errors.Is(err, content.ErrNotFound) {
		return nil, fmt.Errorf("%w: guide %q", ErrNotFound, name)
	}
	return g, err
}

// ListGuides returns the catalogue with headline statistics.
func (a *Adapter) ListGuides(ctx context.Context) ([]guide.Summary, error) {
	_, backend, err := a.active(ctx)
	if err != nil {
		return nil, err
	}
	if backend == BackendSQLite {
		return a.relational.ListGuides(ctx)
	}

	summaries := []guide.Summary{}
	if a.content == nil {
		return summaries, nil
	}
	guides, err := a.content.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range guides {
		sum := g.Summarize()
		p, err := a.document.GetStatistics(ctx, g.Name)
		switch {
		case err == nil:
			sum.OverallScore = p.OverallScore
			sum.TotalAnswered = p.TotalAnswered
		case !errors.Is(err, ErrNotFound):
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

var (
	_ StatisticsStore = (*DocumentStore)(nil)
	_ StatisticsStore = (*SQLiteStore)(nil)
	_ StatisticsStore = (*Adapter)(nil)
)
