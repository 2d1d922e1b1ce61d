package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/interviewer/backend/internal/domain/guide"
	"github.com/interviewer/backend/internal/domain/interview"
	"github.com/interviewer/backend/internal/domain/statistics"
	"github.com/interviewer/backend/internal/id"
	"github.com/interviewer/backend/internal/logger"
	"github.com/interviewer/backend/internal/metrics"
	"github.com/interviewer/backend/internal/store"
)

var ErrSessionNotFound = errors.New("interview session not found")

// Statistics is the part of the storage adapter an interview needs.
type Statistics interface {
	GetGuide(ctx context.Context, name string) (*guide.Guide, error)
	GetStatistics(ctx context.Context, guideName string) (*statistics.PositionStatistic, error)
	InitializeStatistics(ctx context.Context, g *guide.Guide) (*statistics.PositionStatistic, error)
	UpdateScore(ctx context.Context, guideName string, chapterNumber, questionNumber, score int) error
}

// Snapshot is a read-only view of one session.
type Snapshot struct {
	ID              string              `json:"id"`
	GuideName       string              `json:"guideName"`
	State           interview.State     `json:"state"`
	ChapterFilter   *int                `json:"chapterFilter,omitempty"`
	CurrentChapter  int                 `json:"currentChapter"`
	CurrentQuestion *interview.PoolItem `json:"currentQuestion,omitempty"`
	Remaining       int                 `json:"remaining"`
	Stats           interview.Stats     `json:"stats"`
}

type entry struct {
	mu      sync.Mutex
	session *interview.Session
}

// InterviewService keeps the live interview sessions and persists every
// accepted answer through the storage adapter. A session stays registered
// after its pool runs out so its totals can still be read; Exit removes it.
type InterviewService struct {
	stats   Statistics
	rnd     interview.Random
	metrics *metrics.Metrics
	logger  *logger.Logger

	mu       sync.RWMutex
	sessions map[string]*entry
}

// NewInterviewService creates an InterviewService. rnd may be nil to use
// the default generator.
func NewInterviewService(st Statistics, rnd interview.Random, m *metrics.Metrics, log *logger.Logger) *InterviewService {
	return &InterviewService{
		stats:    st,
		rnd:      rnd,
		metrics:  m,
		logger:   log.With("component", "interview"),
		sessions: make(map[string]*entry),
	}
}

// Start opens a session over a guide, optionally limited to one chapter.
// Statistics are initialized on the way if the guide has none yet.
func (s *InterviewService) Start(ctx context.Context, guideName string, chapterFilter *int) (Snapshot, error) {
	g, err := s.stats.GetGuide(ctx, guideName)
	if err != nil {
		return Snapshot{}, err
	}

	stats, err := s.stats.GetStatistics(ctx, guideName)
	if errors.Is(err, store.ErrNotFound) {
		stats, err = s.stats.InitializeStatistics(ctx, g)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("load statistics: %w", err)
	}

	sess := interview.NewSession(s.rnd, s.logger)
	if err := sess.Start(g, stats, chapterFilter); err != nil {
		return Snapshot{}, err
	}

	sessionID := id.GenerateID()
	e := &entry{session: sess}

	s.mu.Lock()
	s.sessions[sessionID] = e
	s.mu.Unlock()

	s.metrics.InterviewStarted()
	s.logger.Info("session registered", "session_id", sessionID, "guide", guideName)
	return snapshot(sessionID, sess), nil
}

func (s *InterviewService) lookup(sessionID string) (*entry, error) {
	if !id.Valid(sessionID) {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, sessionID)
	}
	s.mu.RLock()
	e, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return e, nil
}

// with runs fn on a registered session while holding its lock.
func (s *InterviewService) with(sessionID string, fn func(*interview.Session) error) (Snapshot, error) {
	e, err := s.lookup(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := fn(e.session); err != nil {
		return Snapshot{}, err
	}
	return snapshot(sessionID, e.session), nil
}

func (s *InterviewService) Get(sessionID string) (Snapshot, error) {
	return s.with(sessionID, func(*interview.Session) error { return nil })
}

// Answer scores the current question. The score is written to the
// statistics store first; the session totals move only once that
// succeeded. Answering does not advance the session.
func (s *InterviewService) Answer(ctx context.Context, sessionID string, score float64) (Snapshot, error) {
	return s.with(sessionID, func(sess *interview.Session) error {
		v, err := statistics.ParseScore(score)
		if err != nil {
			s.logger.Warn("rejected interview answer", "session_id", sessionID, "score", score)
			return err
		}
		cur := sess.Current()
		if sess.State() != interview.StateActive || cur == nil {
			return interview.ErrNotActive
		}

		if err := s.stats.UpdateScore(ctx, sess.GuideName(), cur.ChapterNumber, cur.Question.Number, v); err != nil {
			return fmt.Errorf("persist answer: %w", err)
		}
		if err := sess.SubmitAnswer(v); err != nil {
			return err
		}
		s.metrics.InterviewAnswered()
		return nil
	})
}

// Next advances to the next question. When the pool is exhausted the
// returned snapshot is idle with no current question.
func (s *InterviewService) Next(sessionID string) (Snapshot, error) {
	return s.with(sessionID, func(sess *interview.Session) error {
		if sess.State() != interview.StateActive {
			return interview.ErrNotActive
		}
		sess.Next()
		return nil
	})
}

func (s *InterviewService) Pause(sessionID string) (Snapshot, error) {
	return s.with(sessionID, func(sess *interview.Session) error {
		sess.Pause()
		return nil
	})
}

func (s *InterviewService) Resume(sessionID string) (Snapshot, error) {
	return s.with(sessionID, func(sess *interview.Session) error {
		sess.Resume()
		return nil
	})
}

// Exit ends the session and forgets it. The final snapshot is returned.
func (s *InterviewService) Exit(sessionID string) (Snapshot, error) {
	s.mu.Lock()
	e, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.Exit()

	s.metrics.InterviewRemoved()
	s.logger.Info("session closed", "session_id", sessionID)
	return snapshot(sessionID, e.session), nil
}

// List returns the ids of every registered session, sorted.
func (s *InterviewService) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for k := range s.sessions {
		ids = append(ids, k)
	}
	sort.Strings(ids)
	return ids
}

func snapshot(sessionID string, sess *interview.Session) Snapshot {
	snap := Snapshot{
		ID:             sessionID,
		GuideName:      sess.GuideName(),
		State:          sess.State(),
		ChapterFilter:  sess.ChapterFilter(),
		CurrentChapter: sess.CurrentChapter(),
		Remaining:      sess.Remaining(),
		Stats:          sess.Stats(),
	}
	if cur := sess.Current(); cur != nil {
		item := *cur
		snap.CurrentQuestion = &item
	}
	return snap
}
