package interview

import (
	"math/rand/v2"

	"github.com/interviewer/backend/internal/domain/guide"
	"github.com/interviewer/backend/internal/domain/statistics"
)

// Random is the source of randomness for selection. *rand.Rand from
// math/rand/v2 satisfies it; tests inject a scripted one.
type Random interface {
	Float64() float64
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }
func (globalRandom) IntN(n int) int   { return rand.IntN(n) }

// DefaultRandom uses the runtime-seeded global generator.
func DefaultRandom() Random { return globalRandom{} }

// PoolItem is a question in scope for one session together with the score
// it had when the session started.
type PoolItem struct {
	Question      guide.Question `json:"question"`
	ChapterNumber int            `json:"chapterNumber"`
	CurrentScore  *int           `json:"currentScore"`
	Weight        float64        `json:"weight"`
}

// Weight maps a score to its selection weight, (5 - s)^2. An absent score
// counts as 0.
func Weight(score *int) float64 {
	s := 0
	if score != nil {
		s = *score
	}
	d := float64(statistics.MaxScore - s)
	return d * d
}

// BuildPool flattens the given chapters into pool items, in chapter then
// question order. scores holds the answered questions by number.
func BuildPool(chapters []guide.Chapter, scores map[int]int) []PoolItem {
	var pool []PoolItem
	for _, ch := range chapters {
		for _, q := range ch.Questions {
			var current *int
			if s, ok := scores[q.Number]; ok {
				current = &s
			}
			pool = append(pool, PoolItem{
				Question:      q,
				ChapterNumber: ch.Number,
				CurrentScore:  current,
				Weight:        Weight(current),
			})
		}
	}
	return pool
}

// Select draws one unasked item by inverse-CDF sampling over the weights.
// It returns -1 when every item has been asked.
//
// Zero-weight items are skipped during the walk, so they are only picked
// through the uniform fallback when the whole remainder weighs nothing.
func Select(pool []PoolItem, asked map[int]bool, rnd Random) int {
	remaining := make([]int, 0, len(pool))
	var total float64
	for i, item := range pool {
		if asked[item.Question.Number] {
			continue
		}
		remaining = append(remaining, i)
		total += item.Weight
	}

	switch {
	case len(remaining) == 0:
		return -1
	case len(remaining) == 1:
		return remaining[0]
	case total == 0:
		return remaining[rnd.IntN(len(remaining))]
	}

	r := rnd.Float64() * total
	last := -1
	for _, i := range remaining {
		w := pool[i].Weight
		if w == 0 {
			continue
		}
		last = i
		r -= w
		if r <= 0 {
			return i
		}
	}
	// Float residue can leave r marginally above zero after the walk.
	return last
}
