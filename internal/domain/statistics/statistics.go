package statistics

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/interviewer/backend/internal/domain/guide"
)

// Scores are self-assessments in [MinScore, MaxScore].
const (
	MinScore = 0
	MaxScore = 5
)

var (
	ErrInvalidScore    = errors.New("score must be an integer between 0 and 5")
	ErrUnknownChapter  = errors.New("chapter not found")
	ErrUnknownQuestion = errors.New("question not found")
)

// QuestionStatistic is the per-question leaf. A nil AnswerScore means the
// question has never been answered.
type QuestionStatistic struct {
	QuestionTitle  string     `json:"questionTitle"`
	QuestionNumber int        `json:"questionNumber"`
	AnswerScore    *int       `json:"answerScore"`
	AnsweredAt     *time.Time `json:"answeredAt,omitempty"`
	Attempts       int        `json:"attempts"`
}

// ChapterStatistic holds derived aggregates over its questions. They are
// recomputed on every write and never set directly.
type ChapterStatistic struct {
	ChapterTitle   string              `json:"chapterTitle"`
	ChapterNumber  int                 `json:"chapterNumber"`
	ChapterScore   float64             `json:"chapterScore"`
	AnsweredCount  int                 `json:"answeredCount"`
	TotalQuestions int                 `json:"totalQuestions"`
	Questions      []QuestionStatistic `json:"questions"`
}

// PositionStatistic is the statistics tree of one guide.
type PositionStatistic struct {
	Position      string             `json:"position"`
	SourceFile    string             `json:"sourceJsonFile"`
	OverallScore  float64            `json:"overallScore"`
	TotalAnswered int                `json:"totalAnswered"`
	LastUpdated   time.Time          `json:"lastUpdated"`
	Chapters      []ChapterStatistic `json:"statistics"`
}

// ValidateScore rejects anything outside [MinScore, MaxScore].
func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return fmt.Errorf("%w: got %d", ErrInvalidScore, score)
	}
	return nil
}

// ParseScore converts a score received as a number (JSON, CLI input) into
// the integer form. Fractions such as 5.5 are rejected, not truncated.
func ParseScore(v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidScore, v)
	}
	score := int(v)
	if err := ValidateScore(score); err != nil {
		return 0, err
	}
	return score, nil
}

// Initialize builds a zeroed tree matching the guide's shape.
func Initialize(g *guide.Guide) *PositionStatistic {
	p := &PositionStatistic{
		Position:    g.Name,
		SourceFile:  g.SourceFile,
		LastUpdated: time.Now().UTC(),
		Chapters:    make([]ChapterStatistic, 0, len(g.Chapters)),
	}
	for _, ch := range g.Chapters {
		cs := ChapterStatistic{
			ChapterTitle:   ch.Title,
			ChapterNumber:  ch.Number,
			TotalQuestions: len(ch.Questions),
			Questions:      make([]QuestionStatistic, 0, len(ch.Questions)),
		}
		for _, q := range ch.Questions {
			cs.Questions = append(cs.Questions, QuestionStatistic{
				QuestionTitle:  q.Title,
				QuestionNumber: q.Number,
			})
		}
		p.Chapters = append(p.Chapters, cs)
	}
	return p
}

// Clone returns a deep copy so later writes never reach the original.
func (p *PositionStatistic) Clone() *PositionStatistic {
	if p == nil {
		return nil
	}
	out := *p
	out.Chapters = make([]ChapterStatistic, len(p.Chapters))
	for i, ch := range p.Chapters {
		out.Chapters[i] = ch
		out.Chapters[i].Questions = make([]QuestionStatistic, len(ch.Questions))
		for j, q := range ch.Questions {
			if q.AnswerScore != nil {
				s := *q.AnswerScore
				q.AnswerScore = &s
			}
			if q.AnsweredAt != nil {
				at := *q.AnsweredAt
				q.AnsweredAt = &at
			}
			out.Chapters[i].Questions[j] = q
		}
	}
	return &out
}

// Chapter returns the chapter statistic with the given number.
func (p *PositionStatistic) Chapter(number int) (*ChapterStatistic, bool) {
	for i := range p.Chapters {
		if p.Chapters[i].ChapterNumber == number {
			return &p.Chapters[i], true
		}
	}
	return nil, false
}

// Question finds a question statistic by its guide-wide number.
func (p *PositionStatistic) Question(chapterNumber, questionNumber int) (*QuestionStatistic, error) {
	ch, ok := p.Chapter(chapterNumber)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChapter, chapterNumber)
	}
	for i := range ch.Questions {
		if ch.Questions[i].QuestionNumber == questionNumber {
			return &ch.Questions[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %d in chapter %d", ErrUnknownQuestion, questionNumber, chapterNumber)
}

// Scores maps question number to score for every answered question.
func (p *PositionStatistic) Scores() map[int]int {
	out := make(map[int]int)
	if p == nil {
		return out
	}
	for _, ch := range p.Chapters {
		for _, q := range ch.Questions {
			if q.AnswerScore != nil {
				out[q.QuestionNumber] = *q.AnswerScore
			}
		}
	}
	return out
}

// UpdateScore returns a new tree with the question's score set and every
// aggregate recomputed. The receiver is left untouched.
func UpdateScore(p *PositionStatistic, chapterNumber, questionNumber, score int) (*PositionStatistic, error) {
	if err := ValidateScore(score); err != nil {
		return nil, err
	}

	next := p.Clone()
	q, err := next.Question(chapterNumber, questionNumber)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	q.AnswerScore = &score
	q.AnsweredAt = &now
	q.Attempts++

	next.LastUpdated = now
	next.recompute()
	return next, nil
}

// ResetQuestion returns a new tree with one question back to absent.
func ResetQuestion(p *PositionStatistic, chapterNumber, questionNumber int) (*PositionStatistic, error) {
	next := p.Clone()
	q, err := next.Question(chapterNumber, questionNumber)
	if err != nil {
		return nil, err
	}
	clearQuestion(q)

	next.LastUpdated = time.Now().UTC()
	next.recompute()
	return next, nil
}

// ResetChapter returns a new tree with every question of one chapter
// back to absent.
func ResetChapter(p *PositionStatistic, chapterNumber int) (*PositionStatistic, error) {
	next := p.Clone()
	ch, ok := next.Chapter(chapterNumber)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChapter, chapterNumber)
	}
	for i := range ch.Questions {
		clearQuestion(&ch.Questions[i])
	}

	next.LastUpdated = time.Now().UTC()
	next.recompute()
	return next, nil
}

// ResetAll returns a new tree with no answers at all.
func ResetAll(p *PositionStatistic) *PositionStatistic {
	next := p.Clone()
	for i := range next.Chapters {
		for j := range next.Chapters[i].Questions {
			clearQuestion(&next.Chapters[i].Questions[j])
		}
	}

	next.LastUpdated = time.Now().UTC()
	next.recompute()
	return next
}

func clearQuestion(q *QuestionStatistic) {
	q.AnswerScore = nil
	q.AnsweredAt = nil
	q.Attempts = 0
}

// recompute refreshes every derived field from the leaves.
func (p *PositionStatistic) recompute() {
	var chapterSum float64
	chaptersAnswered := 0
	p.TotalAnswered = 0

	for i := range p.Chapters {
		ch := &p.Chapters[i]
		ch.ChapterScore, ch.AnsweredCount = chapterAggregate(ch.Questions)
		ch.TotalQuestions = len(ch.Questions)

		p.TotalAnswered += ch.AnsweredCount
		if ch.AnsweredCount > 0 {
			chapterSum += ch.ChapterScore
			chaptersAnswered++
		}
	}

	p.OverallScore = 0
	if chaptersAnswered > 0 {
		p.OverallScore = Round2(chapterSum / float64(chaptersAnswered))
	}
}

func chapterAggregate(questions []QuestionStatistic) (float64, int) {
	sum, n := 0, 0
	for _, q := range questions {
		if q.AnswerScore != nil {
			sum += *q.AnswerScore
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return Round2(float64(sum) / float64(n)), n
}

// Round2 rounds to two decimal places, the precision every aggregate is
// stored with.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
