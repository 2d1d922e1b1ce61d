package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/interviewer/backend/internal/domain/guide"
)

type querier interface {
	execer
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func guideID(ctx context.Context, q querier, name string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, "SELECT id FROM guides WHERE guide_name = ?", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: guide %q", ErrNotFound, name)
	}
	if err != nil {
		return 0, unavailable("find guide", err)
	}
	return id, nil
}

// lookupGuide resolves a guide name, or a content identifier (source file
// name or its stem), to the guide id. An exact name match wins.
func lookupGuide(ctx context.Context, q querier, name string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `
		SELECT id FROM guides
		WHERE guide_name = ?1
		   OR (source_file <> '' AND (source_file = ?1
		       OR source_file IN (?1 || '.json', ?1 || '.yaml', ?1 || '.yml')))
		ORDER BY guide_name = ?1 DESC, id
		LIMIT 1`, name,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: guide %q", ErrNotFound, name)
	}
	if err != nil {
		return 0, unavailable("find guide", err)
	}
	return id, nil
}

func chapterID(ctx context.Context, q querier, guideID int64, number int) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx,
		"SELECT id FROM chapters WHERE guide_id = ? AND chapter_number = ?", guideID, number,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: chapter %d", ErrNotFound, number)
	}
	if err != nil {
		return 0, unavailable("find chapter", err)
	}
	return id, nil
}

func questionID(ctx context.Context, q querier, chapterID int64, number int) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx,
		"SELECT id FROM questions WHERE chapter_id = ? AND question_number = ?", chapterID, number,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: question %d", ErrNotFound, number)
	}
	if err != nil {
		return 0, unavailable("find question", err)
	}
	return id, nil
}

// insertGuide writes the full content tree of a guide along with zeroed
// statistic rows. It returns the new guide id.
func insertGuide(ctx context.Context, tx querier, g *guide.Guide) (int64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO guides (guide_name, guide_description, source_file) VALUES (?, ?, ?)",
		g.Name, g.Description, g.SourceFile,
	)
	if err != nil {
		return 0, fmt.Errorf("insert guide %q: %w", g.Name, err)
	}
	gid, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	m := g.Metadata
	tags, err := json.Marshal(nonNil(m.Tags))
	if err != nil {
		return 0, fmt.Errorf("encode tags of guide %q: %w", g.Name, err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO guide_metadata (guide_id, created_date, updated_date, target_audience,
			covered_versions, language, difficulty_level, tags, total_questions, total_chapters)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gid, m.CreatedDate, m.UpdatedDate, m.TargetAudience, m.CoveredVersions, m.Language,
		m.DifficultyLevel, string(tags), g.QuestionCount(), len(g.Chapters),
	)
	if err != nil {
		return 0, fmt.Errorf("insert metadata: %w", err)
	}

	for _, ch := range g.Chapters {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO chapters (guide_id, chapter_number, chapter_title, chapter_description) VALUES (?, ?, ?, ?)",
			gid, ch.Number, ch.Title, ch.Description,
		)
		if err != nil {
			return 0, fmt.Errorf("insert chapter %d: %w", ch.Number, err)
		}
		cid, err := res.LastInsertId()
		if err != nil {
			return 0, err
		}

		for _, q := range ch.Questions {
			if err := insertQuestion(ctx, tx, cid, q); err != nil {
				return 0, err
			}
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO chapter_statistics (chapter_id, total_questions) VALUES (?, ?)",
			cid, len(ch.Questions),
		); err != nil {
			return 0, fmt.Errorf("insert chapter statistics %d: %w", ch.Number, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO user_statistics (guide_id, total_questions) VALUES (?, ?)",
		gid, g.QuestionCount(),
	); err != nil {
		return 0, fmt.Errorf("insert guide statistics: %w", err)
	}
	return gid, nil
}

func insertQuestion(ctx context.Context, tx querier, chapterID int64, q guide.Question) error {
	practices, err := json.Marshal(nonNil(q.BestPractices))
	if err != nil {
		return fmt.Errorf("encode best practices of question %d: %w", q.Number, err)
	}
	tags, err := json.Marshal(nonNil(q.Tags))
	if err != nil {
		return fmt.Errorf("encode tags of question %d: %w", q.Number, err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO questions (chapter_id, question_number, question_number_in_chapter,
			question_title, answer_markdown, best_practices, tags, difficulty)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		chapterID, q.Number, q.NumberInChapter, q.Title, q.AnswerMarkdown,
		string(practices), string(tags), q.Difficulty,
	)
	if err != nil {
		return fmt.Errorf("insert question %d: %w", q.Number, err)
	}
	qid, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for i, sub := range q.Subsections {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO question_subsections (question_id, subsection_order, subsection_title,
				subsection_content_markdown, subsection_type)
			VALUES (?, ?, ?, ?, ?)`,
			qid, i+1, sub.Title, sub.Content, sub.Type,
		); err != nil {
			return fmt.Errorf("insert subsection %d of question %d: %w", i+1, q.Number, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO question_statistics (question_id) VALUES (?)", qid,
	); err != nil {
		return fmt.Errorf("insert question statistics %d: %w", q.Number, err)
	}
	return nil
}

// ensureStatisticRows creates any missing statistic row of a guide.
func ensureStatisticRows(ctx context.Context, tx execer, guideID int64) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO user_statistics (guide_id, total_questions)
		SELECT ?, COUNT(*) FROM questions q JOIN chapters c ON c.id = q.chapter_id WHERE c.guide_id = ?`,
		guideID, guideID,
	); err != nil {
		return fmt.Errorf("ensure guide statistics: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO chapter_statistics (chapter_id, total_questions)
		SELECT c.id, (SELECT COUNT(*) FROM questions q WHERE q.chapter_id = c.id)
		FROM chapters c WHERE c.guide_id = ?`,
		guideID,
	); err != nil {
		return fmt.Errorf("ensure chapter statistics: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO question_statistics (question_id)
		SELECT q.id FROM questions q JOIN chapters c ON c.id = q.chapter_id WHERE c.guide_id = ?`,
		guideID,
	); err != nil {
		return fmt.Errorf("ensure question statistics: %w", err)
	}
	return nil
}

// GetGuide rebuilds a guide's content tree from its tables.
func (s *SQLiteStore) GetGuide(ctx context.Context, name string) (*guide.Guide, error) {
	gid, err := lookupGuide(ctx, s.db, name)
	if err != nil {
		return nil, err
	}

	var g guide.Guide
	var tags string
	err = s.db.QueryRowContext(ctx, `
		SELECT g.guide_name, g.guide_description, g.source_file,
			COALESCE(m.created_date, ''), COALESCE(m.updated_date, ''), COALESCE(m.target_audience, ''),
			COALESCE(m.covered_versions, ''), COALESCE(m.language, ''), COALESCE(m.difficulty_level, ''),
			COALESCE(m.tags, '[]'), COALESCE(m.total_questions, 0), COALESCE(m.total_chapters, 0)
		FROM guides g
		LEFT JOIN guide_metadata m ON m.guide_id = g.id
		WHERE g.id = ?`, gid,
	).Scan(&g.Name, &g.Description, &g.SourceFile,
		&g.Metadata.CreatedDate, &g.Metadata.UpdatedDate, &g.Metadata.TargetAudience,
		&g.Metadata.CoveredVersions, &g.Metadata.Language, &g.Metadata.DifficultyLevel,
		&tags, &g.Metadata.TotalQuestions, &g.Metadata.TotalChapters,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: guide %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, unavailable("get guide", err)
	}
	if g.Metadata.Tags, err = decodeList(tags); err != nil {
		return nil, fmt.Errorf("decode tags of guide %q: %w", g.Name, err)
	}

	chapterIdx := make(map[int64]int)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, chapter_number, chapter_title, chapter_description
		FROM chapters WHERE guide_id = ? ORDER BY chapter_number`, gid)
	if err != nil {
		return nil, unavailable("list chapters", err)
	}
	for rows.Next() {
		var id int64
		var ch guide.Chapter
		if err := rows.Scan(&id, &ch.Number, &ch.Title, &ch.Description); err != nil {
			rows.Close()
			return nil, err
		}
		chapterIdx[id] = len(g.Chapters)
		g.Chapters = append(g.Chapters, ch)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	type questionRef struct{ chapter, question int }
	questionIdx := make(map[int64]questionRef)
	rows, err = s.db.QueryContext(ctx, `
		SELECT q.id, q.chapter_id, q.question_number, q.question_number_in_chapter, q.question_title,
			q.answer_markdown, q.best_practices, q.tags, q.difficulty
		FROM questions q JOIN chapters c ON c.id = q.chapter_id
		WHERE c.guide_id = ? ORDER BY c.chapter_number, q.question_number`, gid)
	if err != nil {
		return nil, unavailable("list questions", err)
	}
	for rows.Next() {
		var id, cid int64
		var q guide.Question
		var practices, qtags string
		if err := rows.Scan(&id, &cid, &q.Number, &q.NumberInChapter, &q.Title,
			&q.AnswerMarkdown, &practices, &qtags, &q.Difficulty); err != nil {
			rows.Close()
			return nil, err
		}
		if q.BestPractices, err = decodeList(practices); err != nil {
			rows.Close()
			return nil, fmt.Errorf("decode best practices of question %d: %w", q.Number, err)
		}
		if q.Tags, err = decodeList(qtags); err != nil {
			rows.Close()
			return nil, fmt.Errorf("decode tags of question %d: %w", q.Number, err)
		}

		ci := chapterIdx[cid]
		q.ChapterNumber = g.Chapters[ci].Number
		questionIdx[id] = questionRef{chapter: ci, question: len(g.Chapters[ci].Questions)}
		g.Chapters[ci].Questions = append(g.Chapters[ci].Questions, q)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT s.question_id, s.subsection_title, s.subsection_content_markdown, s.subsection_type
		FROM question_subsections s
		JOIN questions q ON q.id = s.question_id
		JOIN chapters c ON c.id = q.chapter_id
		WHERE c.guide_id = ? ORDER BY s.question_id, s.subsection_order`, gid)
	if err != nil {
		return nil, unavailable("list subsections", err)
	}
	defer rows.Close()
	for rows.Next() {
		var qid int64
		var sub guide.Subsection
		if err := rows.Scan(&qid, &sub.Title, &sub.Content, &sub.Type); err != nil {
			return nil, err
		}
		ref := questionIdx[qid]
		q := &g.Chapters[ref.chapter].Questions[ref.question]
		q.Subsections = append(q.Subsections, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &g, nil
}

// ListGuides returns the catalogue with headline statistics, by name.
func (s *SQLiteStore) ListGuides(ctx context.Context) ([]guide.Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.guide_name, g.guide_description, g.source_file,
			COALESCE(m.difficulty_level, ''), COALESCE(m.target_audience, ''),
			(SELECT COUNT(*) FROM questions q JOIN chapters c ON c.id = q.chapter_id WHERE c.guide_id = g.id),
			(SELECT COUNT(*) FROM chapters c WHERE c.guide_id = g.id),
			COALESCE(u.overall_score, 0), COALESCE(u.total_answered, 0)
		FROM guides g
		LEFT JOIN guide_metadata m ON m.guide_id = g.id
		LEFT JOIN user_statistics u ON u.guide_id = g.id
		ORDER BY g.guide_name`)
	if err != nil {
		return nil, unavailable("list guides", err)
	}
	defer rows.Close()

	summaries := []guide.Summary{}
	for rows.Next() {
		var sum guide.Summary
		if err := rows.Scan(&sum.Name, &sum.Description, &sum.SourceFile,
			&sum.DifficultyLevel, &sum.TargetAudience, &sum.TotalQuestions, &sum.TotalChapters,
			&sum.OverallScore, &sum.TotalAnswered); err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

// decodeList reads a JSON string array column. An empty column is an empty
// list.
func decodeList(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}
