package statistics

import "sort"

// DefaultWeakThreshold is the score below which a question counts as weak.
const DefaultWeakThreshold = 3

type WeakQuestion struct {
	ChapterNumber  int    `json:"chapterNumber"`
	ChapterTitle   string `json:"chapterTitle"`
	QuestionNumber int    `json:"questionNumber"`
	QuestionTitle  string `json:"questionTitle"`
	AnswerScore    int    `json:"answerScore"`
}

// WeakQuestions lists answered questions scored below threshold, lowest
// score first. Unanswered questions are not included.
func WeakQuestions(p *PositionStatistic, threshold int) []WeakQuestion {
	out := []WeakQuestion{}
	if p == nil {
		return out
	}
	for _, ch := range p.Chapters {
		for _, q := range ch.Questions {
			if q.AnswerScore == nil || *q.AnswerScore >= threshold {
				continue
			}
			out = append(out, WeakQuestion{
				ChapterNumber:  ch.ChapterNumber,
				ChapterTitle:   ch.ChapterTitle,
				QuestionNumber: q.QuestionNumber,
				QuestionTitle:  q.QuestionTitle,
				AnswerScore:    *q.AnswerScore,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AnswerScore != out[j].AnswerScore {
			return out[i].AnswerScore < out[j].AnswerScore
		}
		return out[i].QuestionNumber < out[j].QuestionNumber
	})
	return out
}
