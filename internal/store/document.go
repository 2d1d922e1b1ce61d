package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/interviewer/backend/internal/content"
	"github.com/interviewer/backend/internal/domain/guide"
	"github.com/interviewer/backend/internal/domain/statistics"
	"github.com/interviewer/backend/internal/logger"
)

// StatisticsKey is where the document store keeps its single blob.
const StatisticsKey = "interview_statistics"

// DocumentStore keeps the statistics of every guide as one JSON mapping
// from guide name to tree. Each operation reads the mapping, swaps in a
// freshly computed tree and writes the whole mapping back.
type DocumentStore struct {
	kv      KV
	content content.Source
	logger  *logger.Logger

	mu sync.Mutex
}

// NewDocumentStore builds the store. The content source is used to create
// a tree on demand when a score arrives for a guide never initialized; it
// may be nil.
func NewDocumentStore(kv KV, src content.Source, log *logger.Logger) *DocumentStore {
	return &DocumentStore{
		kv:      kv,
		content: src,
		logger:  log.With("backend", BackendDocument),
	}
}

func (d *DocumentStore) load(ctx context.Context) (map[string]*statistics.PositionStatistic, error) {
	raw, err := d.kv.Get(ctx, StatisticsKey)
	if errors.Is(err, ErrKeyNotFound) {
		return make(map[string]*statistics.PositionStatistic), nil
	}
	if err != nil {
		return nil, unavailable("read statistics", err)
	}

	all := make(map[string]*statistics.PositionStatistic)
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, unavailable("decode statistics", err)
	}
	return all, nil
}

func (d *DocumentStore) save(ctx context.Context, all map[string]*statistics.PositionStatistic) error {
	raw, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode statistics: %w", err)
	}
	if err := d.kv.Set(ctx, StatisticsKey, raw); err != nil {
		return unavailable("write statistics", err)
	}
	return nil
}

// resolve maps a guide name or content identifier (file name, file stem)
// to the guide's canonical name and its stored tree. The tree is nil when
// the guide has none yet; g is nil when the name matched a stored tree
// directly.
func (d *DocumentStore) resolve(ctx context.Context, all map[string]*statistics.PositionStatistic, name string) (string, *statistics.PositionStatistic, *guide.Guide, error) {
	if p, ok := all[name]; ok {
		return name, p, nil, nil
	}
	if d.content == nil {
		return "", nil, nil, fmt.Errorf("%w: statistics for guide %q", ErrNotFound, name)
	}
	g, err := d.content.Load(ctx, name)
	if errors.Is(err, content.ErrNotFound) {
		return "", nil, nil, fmt.Errorf("%w: guide %q", ErrNotFound, name)
	}
	if err != nil {
		return "", nil, nil, err
	}
	return g.Name, all[g.Name], g, nil
}

// mutate applies fn to one guide's tree and persists the result under the
// guide's canonical name. A guide with no tree yet starts from a zeroed one.
func (d *DocumentStore) mutate(ctx context.Context, guideName string, fn func(*statistics.PositionStatistic) (*statistics.PositionStatistic, error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	all, err := d.load(ctx)
	if err != nil {
		return err
	}
	key, current, g, err := d.resolve(ctx, all, guideName)
	if err != nil {
		return err
	}
	if current == nil {
		current = statistics.Initialize(g)
	}
	next, err := fn(current)
	if err != nil {
		return notFound(err)
	}
	all[key] = next
	return d.save(ctx, all)
}

func (d *DocumentStore) GetStatistics(ctx context.Context, guideName string) (*statistics.PositionStatistic, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	all, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	_, p, _, err := d.resolve(ctx, all, guideName)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: statistics for guide %q", ErrNotFound, guideName)
	}
	return p, nil
}

func (d *DocumentStore) InitializeStatistics(ctx context.Context, g *guide.Guide) (*statistics.PositionStatistic, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	all, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	if p, ok := all[g.Name]; ok {
		return p, nil
	}

	p := statistics.Initialize(g)
	all[g.Name] = p
	if err := d.save(ctx, all); err != nil {
		return nil, err
	}
	d.logger.Info("statistics initialized", "guide", g.Name)
	return p, nil
}

func (d *DocumentStore) UpdateScore(ctx context.Context, guideName string, chapterNumber, questionNumber, score int) error {
	if err := statistics.ValidateScore(score); err != nil {
		return err
	}
	err := d.mutate(ctx, guideName, func(p *statistics.PositionStatistic) (*statistics.PositionStatistic, error) {
		return statistics.UpdateScore(p, chapterNumber, questionNumber, score)
	})
	if err == nil {
		d.logger.Debug("score updated", "guide", guideName, "chapter", chapterNumber, "question", questionNumber, "score", score)
	}
	return err
}

func (d *DocumentStore) ResetPosition(ctx context.Context, guideName string) error {
	return d.mutate(ctx, guideName, func(p *statistics.PositionStatistic) (*statistics.PositionStatistic, error) {
		return statistics.ResetAll(p), nil
	})
}

func (d *DocumentStore) ResetChapter(ctx context.Context, guideName string, chapterNumber int) error {
	return d.mutate(ctx, guideName, func(p *statistics.PositionStatistic) (*statistics.PositionStatistic, error) {
		return statistics.ResetChapter(p, chapterNumber)
	})
}

func (d *DocumentStore) ResetQuestion(ctx context.Context, guideName string, chapterNumber, questionNumber int) error {
	return d.mutate(ctx, guideName, func(p *statistics.PositionStatistic) (*statistics.PositionStatistic, error) {
		return statistics.ResetQuestion(p, chapterNumber, questionNumber)
	})
}

// All returns every stored tree, ordered by guide name.
func (d *DocumentStore) All(ctx context.Context) ([]*statistics.PositionStatistic, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	all, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*statistics.PositionStatistic, 0, len(all))
	for _, p := range all {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (d *DocumentStore) Delete(ctx context.Context, guideName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	all, err := d.load(ctx)
	if err != nil {
		return err
	}
	delete(all, guideName)
	return d.save(ctx, all)
}

func (d *DocumentStore) Clear(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.kv.Delete(ctx, StatisticsKey); err != nil {
		return unavailable("clear statistics", err)
	}
	return nil
}
