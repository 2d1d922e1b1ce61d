package migration_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/interviewer/backend/internal/content"
	"github.com/interviewer/backend/internal/domain/guide"
	"github.com/interviewer/backend/internal/logger"
	"github.com/interviewer/backend/internal/metrics"
	"github.com/interviewer/backend/internal/migration"
	"github.com/interviewer/backend/internal/store"
)

func makeGuide(name string, chapters, perChapter int) *guide.Guide {
	g := &guide.Guide{Name: name, SourceFile: strings.ToLower(name) + ".json"}
	n := 1
	for c := 1; c <= chapters; c++ {
		ch := guide.Chapter{Number: c, Title: "Chapter"}
		for i := 1; i <= perChapter; i++ {
			ch.Questions = append(ch.Questions, guide.Question{
				Number: n, NumberInChapter: i, ChapterNumber: c, Title: "Question",
			})
			n++
		}
		g.Chapters = append(g.Chapters, ch)
	}
	return g
}

type fixture struct {
	engine     *migration.Engine
	flag       *store.MigrationFlag
	document   *store.DocumentStore
	relational *store.SQLiteStore
	adapter    *store.Adapter
}

func newFixture(t *testing.T, guides ...*guide.Guide) fixture {
	t.Helper()
	rel, err := store.OpenSQLite(filepath.Join(t.TempDir(), "migration.db"), logger.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { rel.Close() })

	kv := store.NewMemoryKV()
	src := content.NewMemorySource(guides...)
	m := metrics.New()
	f := fixture{
		flag:       store.NewMigrationFlag(kv),
		document:   store.NewDocumentStore(kv, src, logger.Nop()),
		relational: rel,
	}
	f.engine = migration.NewEngine(src, f.document, rel, f.flag, m, logger.Nop())
	f.adapter = store.NewAdapter(f.flag, f.document, rel, src, m, logger.Nop())
	return f
}

func TestMigrate_NoContent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res := f.engine.Migrate(ctx, nil)

	if res.Success {
		t.Error("expected failure without content")
	}
	if res.GuidesImported != 0 {
		t.Errorf("expected 0 guides, got %d", res.GuidesImported)
	}
	if len(res.Errors) != 1 || res.Errors[0] != migration.ErrNoContentFound.Error() {
		t.Errorf("expected a no-content error, got %v", res.Errors)
	}
	if migrated, _ := f.flag.Get(ctx); migrated {
		t.Error("flag must stay unset")
	}
	if c, _ := f.relational.Counts(ctx); c.Guides != 0 {
		t.Errorf("expected no rows written, got %+v", c)
	}
}

func TestMigrate_CarriesStatistics(t *testing.T) {
	ctx := context.Background()
	goGuide := makeGuide("Go", 2, 2)
	sqlGuide := makeGuide("SQL", 1, 3)
	f := newFixture(t, goGuide, sqlGuide)

	for _, s := range []struct{ ch, q, score int }{{1, 1, 5}, {1, 2, 3}, {2, 4, 0}} {
		if err := f.adapter.UpdateScore(ctx, "Go", s.ch, s.q, s.score); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	before, err := f.adapter.GetStatistics(ctx, "Go")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	var events []migration.Progress
	res := f.engine.Migrate(ctx, func(p migration.Progress) { events = append(events, p) })

	if !res.Success || len(res.Errors) != 0 {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.GuidesImported != 2 || res.QuestionsImported != 7 || res.StatisticsImported != 3 {
		t.Errorf("unexpected counts: %+v", res)
	}

	if b, _ := f.adapter.Backend(ctx); b != store.BackendSQLite {
		t.Fatalf("expected the adapter to switch to sqlite, got %s", b)
	}
	after, err := f.adapter.GetStatistics(ctx, "Go")
	if err != nil {
		t.Fatalf("get after migration: %v", err)
	}
	if after.OverallScore != before.OverallScore || after.TotalAnswered != before.TotalAnswered {
		t.Errorf("aggregates changed: %v/%d before, %v/%d after",
			before.OverallScore, before.TotalAnswered, after.OverallScore, after.TotalAnswered)
	}

	wantPct := []int{0, 10, 20, 55, 90, 95, 100}
	if len(events) != len(wantPct) {
		t.Fatalf("expected %d progress events, got %d: %+v", len(wantPct), len(events), events)
	}
	for i, pct := range wantPct {
		if events[i].Percentage != pct {
			t.Errorf("event %d: expected %d%%, got %d%% (%s)", i, pct, events[i].Percentage, events[i].Step)
		}
	}
}

func TestMigrate_ScoresRecordedUnderFileNameAreKept(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, makeGuide("Go", 1, 2))

	if err := f.adapter.UpdateScore(ctx, "go.json", 1, 1, 1); err != nil {
		t.Fatalf("score by file name: %v", err)
	}
	if err := f.adapter.UpdateScore(ctx, "Go", 1, 2, 5); err != nil {
		t.Fatalf("score by name: %v", err)
	}

	res := f.engine.Migrate(ctx, nil)
	if !res.Success || res.StatisticsImported != 2 {
		t.Fatalf("expected both scores migrated, got %+v", res)
	}

	p, err := f.adapter.GetStatistics(ctx, "Go")
	if err != nil {
		t.Fatalf("get after migration: %v", err)
	}
	if p.TotalAnswered != 2 || p.OverallScore != 3 {
		t.Errorf("expected 2 answered with overall 3, got %d/%v", p.TotalAnswered, p.OverallScore)
	}
	if err := f.adapter.UpdateScore(ctx, "go.json", 1, 1, 4); err != nil {
		t.Errorf("score by file name after migration: %v", err)
	}
}

func TestMigrate_PoisonedGuideIsIsolated(t *testing.T) {
	ctx := context.Background()
	bad := makeGuide("Broken", 1, 2)
	bad.Chapters[0].Questions[1].Number = 1 // duplicate within the chapter
	f := newFixture(t, makeGuide("Go", 1, 2), bad, makeGuide("SQL", 1, 1))

	res := f.engine.Migrate(ctx, nil)

	if !res.Success {
		t.Fatalf("expected success for the healthy guides, got %+v", res)
	}
	if res.GuidesImported != 2 {
		t.Errorf("expected 2 imported guides, got %d", res.GuidesImported)
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "Broken") {
		t.Errorf("expected one error naming the broken guide, got %v", res.Errors)
	}

	c, err := f.relational.Counts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if c.Guides != 2 || c.Questions != 3 {
		t.Errorf("expected no rows of the broken guide, got %+v", c)
	}
}

func TestMigrate_SecondRunSkipsExistingGuides(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, makeGuide("Go", 1, 2))

	if res := f.engine.Migrate(ctx, nil); !res.Success {
		t.Fatalf("first run failed: %+v", res)
	}
	if err := f.adapter.UpdateScore(ctx, "Go", 1, 2, 4); err != nil {
		t.Fatalf("update: %v", err)
	}

	res := f.engine.Migrate(ctx, nil)
	if !res.Success || res.GuidesImported != 0 || res.GuidesSkipped != 1 {
		t.Errorf("expected a successful no-op, got %+v", res)
	}
	p, err := f.adapter.GetStatistics(ctx, "Go")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.TotalAnswered != 1 {
		t.Errorf("expected the post-migration answer to survive, got %d", p.TotalAnswered)
	}
}

func TestMigrate_CancelledRollsBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := newFixture(t, makeGuide("Go", 1, 1), makeGuide("SQL", 1, 1))

	res := f.engine.Migrate(ctx, func(p migration.Progress) {
		if p.Percentage == 20 {
			cancel()
		}
	})

	if res.Success || res.GuidesImported != 0 {
		t.Errorf("expected an aborted run, got %+v", res)
	}
	bg := context.Background()
	if migrated, _ := f.flag.Get(bg); migrated {
		t.Error("flag must stay unset")
	}
	if c, _ := f.relational.Counts(bg); c.Guides != 0 {
		t.Errorf("expected nothing committed, got %+v", c)
	}
}

func TestRollback(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, makeGuide("Go", 1, 2))

	if err := f.adapter.UpdateScore(ctx, "Go", 1, 1, 2); err != nil {
		t.Fatalf("update: %v", err)
	}
	if res := f.engine.Migrate(ctx, nil); !res.Success {
		t.Fatalf("migrate: %+v", res)
	}
	if err := f.adapter.UpdateScore(ctx, "Go", 1, 2, 5); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := f.engine.Rollback(ctx); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	st, err := f.engine.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.Migrated || st.Backend != store.BackendDocument || !st.NeedsMigration {
		t.Errorf("unexpected status after rollback: %+v", st)
	}

	// The document store still has its pre-migration view.
	p, err := f.adapter.GetStatistics(ctx, "Go")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.TotalAnswered != 1 || p.OverallScore != 2 {
		t.Errorf("expected the document tree, got %v/%d", p.OverallScore, p.TotalAnswered)
	}
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, makeGuide("Go", 1, 2))

	if res := f.engine.Migrate(ctx, nil); !res.Success {
		t.Fatalf("migrate: %+v", res)
	}
	if err := f.adapter.UpdateScore(ctx, "Go", 1, 1, 3); err != nil {
		t.Fatalf("update: %v", err)
	}
	snapshot, err := f.engine.Export(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if err := f.engine.Rollback(ctx); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if err := f.engine.Import(ctx, snapshot); err != nil {
		t.Fatalf("import: %v", err)
	}

	st, err := f.engine.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.Backend != store.BackendSQLite || st.Counts.Guides != 1 || st.Counts.Answered != 1 {
		t.Errorf("unexpected status after import: %+v", st)
	}

	if err := f.engine.Import(ctx, []byte("junk")); !errors.Is(err, store.ErrInvalidSnapshot) {
		t.Errorf("expected ErrInvalidSnapshot, got %v", err)
	}
}

func TestNeedsMigration(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, makeGuide("Go", 1, 1))

	needs, err := f.engine.NeedsMigration(ctx)
	if err != nil || !needs {
		t.Fatalf("expected a fresh store to need migration, got %v, %v", needs, err)
	}
	if res := f.engine.Migrate(ctx, nil); !res.Success {
		t.Fatalf("migrate: %+v", res)
	}
	if needs, _ := f.engine.NeedsMigration(ctx); needs {
		t.Error("expected no migration needed after a successful run")
	}
}
