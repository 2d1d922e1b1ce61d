package content_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/interviewer/backend/internal/content"
	"github.com/interviewer/backend/internal/domain/guide"
	"github.com/interviewer/backend/internal/logger"
)

const reactJSON = `{
  "guide_name": "React Interview Guide",
  "guide_description": "Hooks and rendering",
  "guide_metadata": {"created_date": "2024-01-01", "target_audience": "Senior", "covered_versions": "18", "total_questions": 2, "total_chapters": 1, "difficulty_level": "Senior"},
  "guide_chapters": [
    {"chapter_number": 1, "chapter_title": "Hooks", "questions": [
      {"question_number": 1, "question_number_in_chapter": 1, "question_title": "What is useEffect?", "answer_markdown": "A hook.",
       "answer_subsections": [{"subsection_title": "Cleanup", "subsection_content_markdown": "Return a function."}],
       "best_practices": ["Keep effects small"], "tags": ["hooks"], "difficulty": "Middle"},
      {"question_number": 2, "question_number_in_chapter": 2, "question_title": "What is useMemo?", "answer_markdown": "Memoization."}
    ]}
  ]
}`

const vueYAML = `guide_name: Vue Interview Guide
guide_description: Reactivity
guide_metadata:
  created_date: "2024-02-01"
  target_audience: Middle
  covered_versions: "3"
  total_questions: 1
  total_chapters: 1
guide_chapters:
  - chapter_number: 1
    chapter_title: Reactivity
    questions:
      - question_number: 1
        question_number_in_chapter: 1
        question_title: What is ref?
        answer_markdown: A reactive reference.
`

func writeGuides(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"react.json":  reactJSON,
		"vue.yaml":    vueYAML,
		"broken.json": `{"guide_name": `,
		"notes.txt":   "ignored",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestDirSource_LoadAll(t *testing.T) {
	src := content.NewDirSource(writeGuides(t), nil, 2, logger.Nop())

	guides, err := src.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// broken.json is skipped, notes.txt is not a guide file.
	if len(guides) != 2 {
		t.Fatalf("expected 2 guides, got %d", len(guides))
	}
	if guides[0].Name != "React Interview Guide" || guides[1].Name != "Vue Interview Guide" {
		t.Errorf("unexpected order: %q, %q", guides[0].Name, guides[1].Name)
	}

	react := guides[0]
	if react.SourceFile != "react.json" {
		t.Errorf("expected source file react.json, got %q", react.SourceFile)
	}
	q := react.Chapters[0].Questions[0]
	if q.ChapterNumber != 1 {
		t.Errorf("expected chapter number filled in, got %d", q.ChapterNumber)
	}
	if len(q.Subsections) != 1 || q.Subsections[0].Title != "Cleanup" {
		t.Errorf("unexpected subsections: %+v", q.Subsections)
	}
	if len(q.BestPractices) != 1 || q.Difficulty != "Middle" {
		t.Errorf("unexpected question details: %+v", q)
	}
}

func TestDirSource_Load(t *testing.T) {
	src := content.NewDirSource(writeGuides(t), nil, 2, logger.Nop())
	ctx := context.Background()

	for _, name := range []string{"vue.yaml", "vue", "Vue Interview Guide"} {
		g, err := src.Load(ctx, name)
		if err != nil {
			t.Errorf("Load(%q): %v", name, err)
			continue
		}
		if g.Name != "Vue Interview Guide" {
			t.Errorf("Load(%q): got %q", name, g.Name)
		}
	}

	if _, err := src.Load(ctx, "angular"); !errors.Is(err, content.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := src.Load(ctx, "broken"); !errors.Is(err, content.ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestDirSource_ExplicitFiles(t *testing.T) {
	dir := writeGuides(t)
	src := content.NewDirSource(dir, []string{"vue.yaml", "missing.json"}, 1, logger.Nop())

	guides, err := src.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(guides) != 1 || guides[0].Name != "Vue Interview Guide" {
		t.Errorf("expected only the Vue guide, got %d guides", len(guides))
	}
}

func TestDirSource_MissingDirectory(t *testing.T) {
	src := content.NewDirSource(filepath.Join(t.TempDir(), "nope"), nil, 1, logger.Nop())

	guides, err := src.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(guides) != 0 {
		t.Errorf("expected no guides, got %d", len(guides))
	}
}

func TestParse_InvalidGuide(t *testing.T) {
	body := `{"guide_name": "Dup", "guide_chapters": [{"chapter_number": 1}, {"chapter_number": 1}]}`
	if _, err := content.Parse("dup.json", []byte(body)); !errors.Is(err, content.ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
	if _, err := content.Parse("guide.toml", []byte("x")); !errors.Is(err, content.ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat for unsupported type, got %v", err)
	}
}

func TestMemorySource(t *testing.T) {
	src := content.NewMemorySource(&guide.Guide{Name: "Go", SourceFile: "go.json"})

	if _, err := src.Load(context.Background(), "go.json"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if g, err := src.Load(context.Background(), "go"); err != nil || g.Name != "Go" {
		t.Errorf("expected the file stem to resolve to Go, got %v, %v", g, err)
	}
	if _, err := src.Load(context.Background(), "Rust"); !errors.Is(err, content.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
