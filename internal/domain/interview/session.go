package interview

import (
	"errors"
	"time"

	"github.com/interviewer/backend/internal/domain/guide"
	"github.com/interviewer/backend/internal/domain/statistics"
	"github.com/interviewer/backend/internal/logger"
)

type State string

const (
	StateIdle   State = "idle"
	StateActive State = "active"
)

var (
	ErrNoChapters = errors.New("no chapters match the filter")
	ErrEmptyPool  = errors.New("no questions to ask")
	ErrNotActive  = errors.New("interview is not active")
)

// Stats are the running totals of one session.
type Stats struct {
	QuestionsAnswered int       `json:"questionsAnswered"`
	TotalScore        int       `json:"totalScore"`
	AverageScore      float64   `json:"averageScore"`
	TotalQuestions    int       `json:"totalQuestions"`
	StartedAt         time.Time `json:"startedAt"`
}

// Session drives one interview run over a guide. It is not safe for
// concurrent use; callers serialize access.
type Session struct {
	rnd    Random
	logger *logger.Logger

	state         State
	guideName     string
	chapterFilter *int
	pool          []PoolItem
	asked         map[int]bool
	current       *PoolItem
	stats         Stats
}

func NewSession(rnd Random, log *logger.Logger) *Session {
	if rnd == nil {
		rnd = DefaultRandom()
	}
	return &Session{
		rnd:    rnd,
		logger: log,
		state:  StateIdle,
	}
}

// Start builds the weighted pool from the guide and its statistics and
// draws the first question. stats may be nil when nothing was recorded
// yet. On failure the session is left exactly as it was.
func (s *Session) Start(g *guide.Guide, stats *statistics.PositionStatistic, chapterFilter *int) error {
	chapters := g.Chapters
	if chapterFilter != nil {
		ch, ok := g.Chapter(*chapterFilter)
		if !ok {
			s.logger.Warn("interview not started: no chapter matches filter",
				"guide", g.Name, "chapter", *chapterFilter)
			return ErrNoChapters
		}
		chapters = []guide.Chapter{*ch}
	}

	pool := BuildPool(chapters, stats.Scores())
	if len(pool) == 0 {
		s.logger.Warn("interview not started: empty question pool", "guide", g.Name)
		return ErrEmptyPool
	}

	asked := make(map[int]bool, len(pool))
	first := Select(pool, asked, s.rnd)
	asked[pool[first].Question.Number] = true

	var filter *int
	if chapterFilter != nil {
		n := *chapterFilter
		filter = &n
	}

	s.state = StateActive
	s.guideName = g.Name
	s.chapterFilter = filter
	s.pool = pool
	s.asked = asked
	s.current = &pool[first]
	s.stats = Stats{
		TotalQuestions: len(pool),
		StartedAt:      time.Now().UTC(),
	}

	s.logger.Info("interview started", "guide", g.Name, "pool_size", len(pool))
	return nil
}

// SubmitAnswer records a self-assessed score in the session totals only.
// Persisting it and advancing are left to the caller. An invalid score is
// logged and rejected without touching the totals.
func (s *Session) SubmitAnswer(score int) error {
	if s.state != StateActive {
		return ErrNotActive
	}
	if err := statistics.ValidateScore(score); err != nil {
		s.logger.Warn("rejected interview answer", "guide", s.guideName, "score", score)
		return err
	}

	s.stats.TotalScore += score
	s.stats.QuestionsAnswered++
	s.stats.AverageScore = statistics.Round2(float64(s.stats.TotalScore) / float64(s.stats.QuestionsAnswered))
	return nil
}

// Next draws the next unasked question. When the pool is exhausted the
// session returns to idle and Next reports false.
func (s *Session) Next() (*PoolItem, bool) {
	if s.state != StateActive {
		return nil, false
	}

	i := Select(s.pool, s.asked, s.rnd)
	if i < 0 {
		s.logger.Info("interview finished", "guide", s.guideName,
			"answered", s.stats.QuestionsAnswered, "average", s.stats.AverageScore)
		s.state = StateIdle
		s.current = nil
		return nil, false
	}

	s.asked[s.pool[i].Question.Number] = true
	s.current = &s.pool[i]
	return s.current, true
}

// Exit forces the session back to idle and drops the pool. Running
// totals stay readable until the next Start.
func (s *Session) Exit() {
	s.state = StateIdle
	s.pool = nil
	s.asked = nil
	s.current = nil
	s.chapterFilter = nil
}

// Pause is a no-op.
func (s *Session) Pause() {}

// Resume is a no-op.
func (s *Session) Resume() {}

func (s *Session) State() State { return s.state }

func (s *Session) GuideName() string { return s.guideName }

func (s *Session) Stats() Stats { return s.stats }

// Current returns the question being asked, or nil when idle.
func (s *Session) Current() *PoolItem { return s.current }

// CurrentChapter is 0 when no question is being asked.
func (s *Session) CurrentChapter() int {
	if s.current == nil {
		return 0
	}
	return s.current.ChapterNumber
}

func (s *Session) ChapterFilter() *int { return s.chapterFilter }

// Remaining counts pool items not yet asked.
func (s *Session) Remaining() int {
	return len(s.pool) - len(s.asked)
}
