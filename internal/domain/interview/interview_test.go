package interview_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/interviewer/backend/internal/domain/guide"
	"github.com/interviewer/backend/internal/domain/interview"
	"github.com/interviewer/backend/internal/domain/statistics"
	"github.com/interviewer/backend/internal/logger"
)

// scriptedRandom replays fixed draws so selection is deterministic.
type scriptedRandom struct {
	floats []float64
	ints   []int
}

func (r *scriptedRandom) Float64() float64 {
	f := r.floats[0]
	r.floats = r.floats[1:]
	return f
}

func (r *scriptedRandom) IntN(n int) int {
	i := r.ints[0]
	r.ints = r.ints[1:]
	return i % n
}

func seeded() interview.Random {
	return rand.New(rand.NewPCG(1, 2))
}

func buildGuide(chapters, perChapter int) *guide.Guide {
	g := &guide.Guide{Name: "Go"}
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

func intPtr(v int) *int { return &v }

func TestWeight(t *testing.T) {
	want := map[int]float64{0: 25, 1: 16, 2: 9, 3: 4, 4: 1, 5: 0}
	for score, w := range want {
		if got := interview.Weight(intPtr(score)); got != w {
			t.Errorf("Weight(%d) = %v, want %v", score, got, w)
		}
	}
	if got := interview.Weight(nil); got != 25 {
		t.Errorf("Weight(absent) = %v, want 25", got)
	}
}

func TestBuildPool(t *testing.T) {
	g := buildGuide(2, 2)
	pool := interview.BuildPool(g.Chapters, map[int]int{2: 3, 4: 5})

	if len(pool) != 4 {
		t.Fatalf("expected 4 items, got %d", len(pool))
	}
	wantWeights := []float64{25, 4, 25, 0}
	for i, item := range pool {
		if item.Weight != wantWeights[i] {
			t.Errorf("item %d: expected weight %v, got %v", i, wantWeights[i], item.Weight)
		}
	}
	if pool[2].ChapterNumber != 2 {
		t.Errorf("expected question 3 in chapter 2, got %d", pool[2].ChapterNumber)
	}
	if pool[0].CurrentScore != nil {
		t.Error("expected absent score for unanswered question")
	}
}

func TestSelect_InverseCDF(t *testing.T) {
	pool := interview.BuildPool(buildGuide(1, 3).Chapters, map[int]int{1: 4, 2: 2, 3: 3})
	// weights 1, 9, 4 -> total 14

	tests := []struct {
		draw float64
		want int
	}{
		{0.0, 0},  // r = 0 stops at the first item
		{0.05, 0}, // r = 0.7 falls in [0, 1]
		{0.5, 1},  // r = 7 falls in (1, 10]
		{0.7, 1},  // r = 9.8
		{0.99, 2}, // r = 13.86 falls in (10, 14]
	}

	for _, tt := range tests {
		rnd := &scriptedRandom{floats: []float64{tt.draw}}
		if got := interview.Select(pool, map[int]bool{}, rnd); got != tt.want {
			t.Errorf("draw %v: expected index %d, got %d", tt.draw, tt.want, got)
		}
	}
}

func TestSelect_SkipsAskedAndZeroWeight(t *testing.T) {
	pool := interview.BuildPool(buildGuide(1, 3).Chapters, map[int]int{1: 5, 2: 0, 3: 5})

	// Only question 2 has weight, so any draw lands on it.
	rnd := &scriptedRandom{floats: []float64{0.0}}
	if got := interview.Select(pool, map[int]bool{}, rnd); got != 1 {
		t.Errorf("expected index 1, got %d", got)
	}

	asked := map[int]bool{1: true, 2: true, 3: true}
	if got := interview.Select(pool, asked, rnd); got != -1 {
		t.Errorf("expected -1 for exhausted pool, got %d", got)
	}

	asked = map[int]bool{1: true, 2: true}
	if got := interview.Select(pool, asked, nil); got != 2 {
		t.Errorf("expected the single remaining item, got %d", got)
	}
}

func TestSelect_AllMaxScoresFallsBackToUniform(t *testing.T) {
	pool := interview.BuildPool(buildGuide(1, 3).Chapters, map[int]int{1: 5, 2: 5, 3: 5})

	for want := 0; want < 3; want++ {
		rnd := &scriptedRandom{ints: []int{want}}
		if got := interview.Select(pool, map[int]bool{}, rnd); got != want {
			t.Errorf("expected uniform pick %d, got %d", want, got)
		}
	}
}

func TestSession_NoReplacementAndExhaustion(t *testing.T) {
	g := buildGuide(3, 4)
	s := interview.NewSession(seeded(), logger.Nop())

	if err := s.Start(g, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.State() != interview.StateActive {
		t.Fatalf("expected active, got %s", s.State())
	}

	seen := map[int]bool{s.Current().Question.Number: true}
	total := s.Stats().TotalQuestions
	if total != 12 {
		t.Fatalf("expected pool of 12, got %d", total)
	}

	for i := 1; i < total; i++ {
		item, ok := s.Next()
		if !ok {
			t.Fatalf("pool exhausted early after %d questions", i)
		}
		if seen[item.Question.Number] {
			t.Fatalf("question %d served twice", item.Question.Number)
		}
		seen[item.Question.Number] = true
		if s.CurrentChapter() != item.ChapterNumber {
			t.Errorf("current chapter %d does not match item chapter %d", s.CurrentChapter(), item.ChapterNumber)
		}
	}

	if _, ok := s.Next(); ok {
		t.Fatal("expected no question after the pool is exhausted")
	}
	if s.State() != interview.StateIdle {
		t.Errorf("expected idle after exhaustion, got %s", s.State())
	}
	if s.Current() != nil || s.CurrentChapter() != 0 {
		t.Error("expected current question and chapter to be cleared")
	}
}

func TestSession_ChapterFilter(t *testing.T) {
	g := buildGuide(3, 2)
	s := interview.NewSession(seeded(), logger.Nop())

	if err := s.Start(g, nil, intPtr(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Stats().TotalQuestions != 2 {
		t.Errorf("expected 2 questions in chapter 2, got %d", s.Stats().TotalQuestions)
	}
	for {
		if s.CurrentChapter() != 2 {
			t.Errorf("expected only chapter 2, got %d", s.CurrentChapter())
		}
		if _, ok := s.Next(); !ok {
			break
		}
	}
}

func TestSession_ChapterFilterWithoutMatch(t *testing.T) {
	s := interview.NewSession(seeded(), logger.Nop())

	err := s.Start(buildGuide(2, 2), nil, intPtr(999))
	if !errors.Is(err, interview.ErrNoChapters) {
		t.Errorf("expected ErrNoChapters, got %v", err)
	}
	if s.State() != interview.StateIdle {
		t.Errorf("expected idle, got %s", s.State())
	}
	if s.Remaining() != 0 || s.Current() != nil {
		t.Error("expected no pool to be built")
	}
}

func TestSession_EmptyPool(t *testing.T) {
	s := interview.NewSession(seeded(), logger.Nop())
	g := &guide.Guide{Name: "Empty", Chapters: []guide.Chapter{{Number: 1}}}

	if err := s.Start(g, nil, nil); !errors.Is(err, interview.ErrEmptyPool) {
		t.Errorf("expected ErrEmptyPool, got %v", err)
	}
	if s.State() != interview.StateIdle {
		t.Errorf("expected idle, got %s", s.State())
	}
}

func TestSession_UsesRecordedScores(t *testing.T) {
	g := buildGuide(1, 2)
	stats := statistics.Initialize(g)
	stats, err := statistics.UpdateScore(stats, 1, 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Question 1 weighs 0, question 2 weighs 25: the first draw must be 2.
	s := interview.NewSession(&scriptedRandom{floats: []float64{0.0}}, logger.Nop())
	if err := s.Start(g, stats, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Current().Question.Number; got != 2 {
		t.Errorf("expected question 2 first, got %d", got)
	}
	if s.Current().CurrentScore != nil {
		t.Error("expected question 2 to be unanswered")
	}
}

func TestSession_SubmitAnswer(t *testing.T) {
	s := interview.NewSession(seeded(), logger.Nop())
	if err := s.SubmitAnswer(3); !errors.Is(err, interview.ErrNotActive) {
		t.Errorf("expected ErrNotActive before start, got %v", err)
	}

	if err := s.Start(buildGuide(1, 5), nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, score := range []int{5, 4, 4} {
		if err := s.SubmitAnswer(score); err != nil {
			t.Fatalf("SubmitAnswer(%d): %v", score, err)
		}
	}

	for _, bad := range []int{-1, 6} {
		if err := s.SubmitAnswer(bad); !errors.Is(err, statistics.ErrInvalidScore) {
			t.Errorf("SubmitAnswer(%d): expected ErrInvalidScore, got %v", bad, err)
		}
	}

	st := s.Stats()
	if st.QuestionsAnswered != 3 || st.TotalScore != 13 {
		t.Errorf("expected 3 answers totalling 13, got %d/%d", st.QuestionsAnswered, st.TotalScore)
	}
	if st.AverageScore != 4.33 {
		t.Errorf("expected average 4.33, got %v", st.AverageScore)
	}
}

func TestSession_Exit(t *testing.T) {
	s := interview.NewSession(seeded(), logger.Nop())
	if err := s.Start(buildGuide(2, 2), nil, intPtr(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Pause()
	s.Resume()
	if s.State() != interview.StateActive {
		t.Fatalf("pause/resume should not change state, got %s", s.State())
	}

	s.Exit()
	if s.State() != interview.StateIdle {
		t.Errorf("expected idle, got %s", s.State())
	}
	if s.Current() != nil || s.ChapterFilter() != nil || s.Remaining() != 0 {
		t.Error("expected pool, current question and filter to be cleared")
	}
	if _, ok := s.Next(); ok {
		t.Error("expected Next to yield nothing after exit")
	}
}
