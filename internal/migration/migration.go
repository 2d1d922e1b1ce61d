package migration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/interviewer/backend/internal/content"
	"github.com/interviewer/backend/internal/domain/guide"
	"github.com/interviewer/backend/internal/domain/statistics"
	"github.com/interviewer/backend/internal/logger"
	"github.com/interviewer/backend/internal/metrics"
	"github.com/interviewer/backend/internal/store"
)

var (
	ErrNoContentFound = errors.New("no guide content found to migrate")
	ErrInProgress     = errors.New("migration already in progress")
)

// Progress is one event of the migration progress stream.
type Progress struct {
	Step       string `json:"step"`
	Current    int    `json:"current"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

type ProgressFunc func(Progress)

// Result summarizes one migration run. Per-guide failures are collected in
// Errors rather than returned.
type Result struct {
	Success            bool          `json:"success"`
	GuidesImported     int           `json:"guidesImported"`
	GuidesSkipped      int           `json:"guidesSkipped"`
	QuestionsImported  int           `json:"questionsImported"`
	StatisticsImported int           `json:"statisticsImported"`
	Errors             []string      `json:"errors"`
	Duration           time.Duration `json:"-"`
	DurationMS         int64         `json:"duration"`
}

func (r *Result) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Status describes which backend is serving and what the relational store
// holds.
type Status struct {
	Backend        string       `json:"backend"`
	Migrated       bool         `json:"migrated"`
	Initialized    bool         `json:"initialized"`
	NeedsMigration bool         `json:"needsMigration"`
	Counts         store.Counts `json:"counts"`
}

// Engine moves guide content and document statistics into the relational
// store, and undoes that.
type Engine struct {
	source     content.Source
	document   *store.DocumentStore
	relational *store.SQLiteStore
	flag       *store.MigrationFlag
	metrics    *metrics.Metrics
	logger     *logger.Logger

	running sync.Mutex
}

func NewEngine(src content.Source, document *store.DocumentStore, relational *store.SQLiteStore, flag *store.MigrationFlag, m *metrics.Metrics, log *logger.Logger) *Engine {
	return &Engine{
		source:     src,
		document:   document,
		relational: relational,
		flag:       flag,
		metrics:    m,
		logger:     log.With("component", "migration"),
	}
}

// Migrate runs the whole migration. Each guide is imported under its own
// savepoint inside one transaction: a failing guide is rolled back alone
// and reported, the others are committed together. Guides already present
// in the relational store are skipped. The migration flag is set only
// when the transaction committed and at least one guide is in place.
func (e *Engine) Migrate(ctx context.Context, onProgress ProgressFunc) *Result {
	res := &Result{Errors: []string{}}
	if !e.running.TryLock() {
		res.fail("%v", ErrInProgress)
		return res
	}
	defer e.running.Unlock()

	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
		res.DurationMS = res.Duration.Milliseconds()
		e.metrics.ObserveMigration(res.Success, res.Duration)
		e.logger.Info("migration finished",
			"success", res.Success,
			"guides", res.GuidesImported,
			"skipped", res.GuidesSkipped,
			"questions", res.QuestionsImported,
			"statistics", res.StatisticsImported,
			"errors", len(res.Errors),
			"duration", res.Duration,
		)
	}()

	report := func(step string, current, total, pct int) {
		if onProgress != nil {
			onProgress(Progress{Step: step, Current: current, Total: total, Percentage: pct})
		}
	}

	report("Initializing database", 0, 0, 0)
	if err := e.relational.Initialize(ctx); err != nil {
		res.fail("initialize relational store: %v", err)
		return res
	}

	report("Loading guide content", 0, 0, 10)
	guides, err := e.source.LoadAll(ctx)
	if err != nil {
		res.fail("load guide content: %v", err)
		return res
	}
	if len(guides) == 0 {
		e.logger.Warn("nothing to migrate")
		res.fail("%v", ErrNoContentFound)
		return res
	}
	total := len(guides)

	report("Loading statistics", 0, total, 20)
	trees, err := e.document.All(ctx)
	if err != nil {
		res.fail("load statistics: %v", err)
		return res
	}
	history := make(map[string]*statistics.PositionStatistic, len(trees))
	for _, p := range trees {
		history[p.Position] = p
	}

	err = e.relational.RunInTx(ctx, func(tx *store.Tx) error {
		for i, g := range guides {
			if err := ctx.Err(); err != nil {
				return err
			}
			pct := 20 + (i+1)*70/total
			step := fmt.Sprintf("Migrating %s", g.Name)

			exists, err := tx.GuideExists(ctx, g.Name)
			if err != nil {
				return err
			}
			if exists {
				e.logger.Warn("guide already migrated, skipping", "guide", g.Name)
				res.GuidesSkipped++
				report(step, i+1, total, pct)
				continue
			}

			savepoint := fmt.Sprintf("guide_%d", i)
			if err := tx.Savepoint(ctx, savepoint); err != nil {
				return err
			}

			questions, applied, err := migrateGuide(ctx, tx, g, history[g.Name])
			if err != nil {
				e.logger.Error("guide migration failed", "guide", g.Name, "error", err)
				res.fail("guide %q: %v", g.Name, err)
				if rbErr := tx.RollbackTo(ctx, savepoint); rbErr != nil {
					return rbErr
				}
				report(step, i+1, total, pct)
				continue
			}
			if err := tx.Release(ctx, savepoint); err != nil {
				return err
			}

			res.GuidesImported++
			res.QuestionsImported += questions
			res.StatisticsImported += applied
			e.logger.Debug("guide migrated", "guide", g.Name, "questions", questions, "statistics", applied)
			report(step, i+1, total, pct)
		}

		report("Saving database", total, total, 95)
		return nil
	})
	if err != nil {
		res.fail("migration aborted: %v", err)
		res.GuidesImported, res.QuestionsImported, res.StatisticsImported = 0, 0, 0
		return res
	}

	if res.GuidesImported+res.GuidesSkipped == 0 {
		return res
	}
	if err := e.flag.Set(ctx, true); err != nil {
		res.fail("set migration flag: %v", err)
		return res
	}

	res.Success = true
	report("Migration complete", total, total, 100)
	return res
}

// migrateGuide imports one guide and, when it has recorded statistics,
// replays them onto the fresh rows.
func migrateGuide(ctx context.Context, tx *store.Tx, g *guide.Guide, tree *statistics.PositionStatistic) (int, int, error) {
	questions, err := tx.ImportGuide(ctx, g)
	if err != nil {
		return 0, 0, err
	}
	if tree == nil {
		return questions, 0, nil
	}
	applied, err := tx.ApplyStatistics(ctx, tree)
	if err != nil {
		return 0, 0, err
	}
	return questions, applied, nil
}

// Rollback empties the relational store and hands statistics back to the
// document store.
func (e *Engine) Rollback(ctx context.Context) error {
	if !e.running.TryLock() {
		return ErrInProgress
	}
	defer e.running.Unlock()

	if err := e.relational.Reset(ctx); err != nil {
		return err
	}
	if err := e.flag.Set(ctx, false); err != nil {
		return err
	}
	e.logger.Info("migration rolled back")
	return nil
}

// Export returns a snapshot of the relational store.
func (e *Engine) Export(ctx context.Context) ([]byte, error) {
	return e.relational.Export(ctx)
}

// Import restores a snapshot produced by Export. A snapshot holding at
// least one guide switches statistics over to the relational store.
func (e *Engine) Import(ctx context.Context, data []byte) error {
	if !e.running.TryLock() {
		return ErrInProgress
	}
	defer e.running.Unlock()

	if err := e.relational.Import(ctx, data); err != nil {
		return err
	}
	counts, err := e.relational.Counts(ctx)
	if err != nil {
		return err
	}
	if counts.Guides > 0 {
		if err := e.flag.Set(ctx, true); err != nil {
			return err
		}
	}
	e.logger.Info("snapshot imported", "guides", counts.Guides, "answered", counts.Answered)
	return nil
}

// NeedsMigration reports whether the relational store is missing or empty.
func (e *Engine) NeedsMigration(ctx context.Context) (bool, error) {
	st, err := e.Status(ctx)
	if err != nil {
		return false, err
	}
	return st.NeedsMigration, nil
}

func (e *Engine) Status(ctx context.Context) (Status, error) {
	var st Status
	migrated, err := e.flag.Get(ctx)
	if err != nil {
		return st, err
	}
	st.Migrated = migrated

	if st.Initialized, err = e.relational.Initialized(ctx); err != nil {
		return st, err
	}
	if st.Initialized {
		if st.Counts, err = e.relational.Counts(ctx); err != nil {
			return st, err
		}
	}

	st.NeedsMigration = !st.Initialized || st.Counts.Guides == 0
	st.Backend = store.BackendDocument
	if st.Migrated && st.Initialized {
		st.Backend = store.BackendSQLite
	}
	return st, nil
}
