package guide

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyName         = errors.New("guide name cannot be empty")
	ErrDuplicateChapter  = errors.New("duplicate chapter number")
	ErrDuplicateQuestion = errors.New("duplicate question number")
)

// Guide is one technology's interview preparation material. Guides are
// read-only once loaded.
type Guide struct {
	Name        string    `json:"guide_name" yaml:"guide_name"`
	Description string    `json:"guide_description" yaml:"guide_description"`
	SourceFile  string    `json:"source_file,omitempty" yaml:"source_file,omitempty"`
	Metadata    Metadata  `json:"guide_metadata" yaml:"guide_metadata"`
	Chapters    []Chapter `json:"guide_chapters" yaml:"guide_chapters"`
}

type Metadata struct {
	CreatedDate     string   `json:"created_date" yaml:"created_date"`
	UpdatedDate     string   `json:"updated_date,omitempty" yaml:"updated_date,omitempty"`
	TargetAudience  string   `json:"target_audience" yaml:"target_audience"`
	CoveredVersions string   `json:"covered_versions" yaml:"covered_versions"`
	Language        string   `json:"language,omitempty" yaml:"language,omitempty"`
	TotalQuestions  int      `json:"total_questions" yaml:"total_questions"`
	TotalChapters   int      `json:"total_chapters" yaml:"total_chapters"`
	Tags            []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	DifficultyLevel string   `json:"difficulty_level,omitempty" yaml:"difficulty_level,omitempty"`
}

type Chapter struct {
	Number      int        `json:"chapter_number" yaml:"chapter_number"`
	Title       string     `json:"chapter_title" yaml:"chapter_title"`
	Description string     `json:"chapter_description,omitempty" yaml:"chapter_description,omitempty"`
	Questions   []Question `json:"questions" yaml:"questions"`
}

// Question carries two numbers: Number is unique across the whole guide,
// NumberInChapter is the chapter-local ordinal.
type Question struct {
	Number          int          `json:"question_number" yaml:"question_number"`
	NumberInChapter int          `json:"question_number_in_chapter" yaml:"question_number_in_chapter"`
	ChapterNumber   int          `json:"question_chapter" yaml:"question_chapter"`
	Title           string       `json:"question_title" yaml:"question_title"`
	AnswerMarkdown  string       `json:"answer_markdown" yaml:"answer_markdown"`
	Subsections     []Subsection `json:"answer_subsections,omitempty" yaml:"answer_subsections,omitempty"`
	BestPractices   []string     `json:"best_practices,omitempty" yaml:"best_practices,omitempty"`
	Tags            []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	Difficulty      string       `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
}

type Subsection struct {
	Title   string `json:"subsection_title" yaml:"subsection_title"`
	Content string `json:"subsection_content_markdown" yaml:"subsection_content_markdown"`
	Type    string `json:"subsection_type,omitempty" yaml:"subsection_type,omitempty"`
}

// Validate checks the structural invariants the statistics layer relies on.
func (g *Guide) Validate() error {
	if g.Name == "" {
		return ErrEmptyName
	}

	chapters := make(map[int]bool, len(g.Chapters))
	questions := make(map[int]bool)
	for _, ch := range g.Chapters {
		if chapters[ch.Number] {
			return fmt.Errorf("%w: %d", ErrDuplicateChapter, ch.Number)
		}
		chapters[ch.Number] = true

		for _, q := range ch.Questions {
			if questions[q.Number] {
				return fmt.Errorf("%w: %d", ErrDuplicateQuestion, q.Number)
			}
			questions[q.Number] = true
		}
	}
	return nil
}

// Chapter returns the chapter with the given number.
func (g *Guide) Chapter(number int) (*Chapter, bool) {
	for i := range g.Chapters {
		if g.Chapters[i].Number == number {
			return &g.Chapters[i], true
		}
	}
	return nil, false
}

// Question looks a question up by its guide-wide number within a chapter.
func (c *Chapter) Question(number int) (*Question, bool) {
	for i := range c.Questions {
		if c.Questions[i].Number == number {
			return &c.Questions[i], true
		}
	}
	return nil, false
}

func (g *Guide) QuestionCount() int {
	n := 0
	for _, ch := range g.Chapters {
		n += len(ch.Questions)
	}
	return n
}

// Summary is the catalogue view of a guide, joined with its headline
// statistics when they exist.
type Summary struct {
	Name            string  `json:"guideName"`
	Description     string  `json:"guideDescription"`
	SourceFile      string  `json:"sourceFile,omitempty"`
	DifficultyLevel string  `json:"difficultyLevel,omitempty"`
	TargetAudience  string  `json:"targetAudience,omitempty"`
	TotalQuestions  int     `json:"totalQuestions"`
	TotalChapters   int     `json:"totalChapters"`
	OverallScore    float64 `json:"overallScore"`
	TotalAnswered   int     `json:"totalAnswered"`
}

// Summarize builds a Summary from the guide content alone. Counts come
// from the actual tree, not the declared metadata.
func (g *Guide) Summarize() Summary {
	return Summary{
		Name:            g.Name,
		Description:     g.Description,
		SourceFile:      g.SourceFile,
		DifficultyLevel: g.Metadata.DifficultyLevel,
		TargetAudience:  g.Metadata.TargetAudience,
		TotalQuestions:  g.QuestionCount(),
		TotalChapters:   len(g.Chapters),
	}
}
