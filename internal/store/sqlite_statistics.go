package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/interviewer/backend/internal/domain/guide"
	"github.com/interviewer/backend/internal/domain/statistics"
)

func (s *SQLiteStore) GetStatistics(ctx context.Context, guideName string) (*statistics.PositionStatistic, error) {
	return readStatistics(ctx, s.db, guideName)
}

func readStatistics(ctx context.Context, q querier, guideName string) (*statistics.PositionStatistic, error) {
	gid, err := lookupGuide(ctx, q, guideName)
	if err != nil {
		return nil, err
	}

	var p statistics.PositionStatistic
	var lastActivity sql.NullString
	err = q.QueryRowContext(ctx, `
		SELECT g.guide_name, g.source_file, u.overall_score, u.total_answered, u.last_activity
		FROM user_statistics u JOIN guides g ON g.id = u.guide_id
		WHERE u.guide_id = ?`, gid,
	).Scan(&p.Position, &p.SourceFile, &p.OverallScore, &p.TotalAnswered, &lastActivity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: statistics for guide %q", ErrNotFound, guideName)
	}
	if err != nil {
		return nil, unavailable("read guide statistics", err)
	}
	if t := parseTime(lastActivity); t != nil {
		p.LastUpdated = *t
	}

	rows, err := q.QueryContext(ctx, `
		SELECT c.id, c.chapter_number, c.chapter_title,
			COALESCE(cs.chapter_score, 0), COALESCE(cs.answered_count, 0)
		FROM chapters c
		LEFT JOIN chapter_statistics cs ON cs.chapter_id = c.id
		WHERE c.guide_id = ?
		ORDER BY c.chapter_number`, gid)
	if err != nil {
		return nil, unavailable("read chapter statistics", err)
	}
	chapterIdx := make(map[int64]int)
	for rows.Next() {
		var id int64
		ch := statistics.ChapterStatistic{Questions: []statistics.QuestionStatistic{}}
		if err := rows.Scan(&id, &ch.ChapterNumber, &ch.ChapterTitle, &ch.ChapterScore, &ch.AnsweredCount); err != nil {
			rows.Close()
			return nil, err
		}
		chapterIdx[id] = len(p.Chapters)
		p.Chapters = append(p.Chapters, ch)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = q.QueryContext(ctx, `
		SELECT q.chapter_id, q.question_number, q.question_title,
			qs.answer_score, qs.answered_at, COALESCE(qs.attempts_count, 0)
		FROM questions q
		JOIN chapters c ON c.id = q.chapter_id
		LEFT JOIN question_statistics qs ON qs.question_id = q.id
		WHERE c.guide_id = ?
		ORDER BY c.chapter_number, q.question_number`, gid)
	if err != nil {
		return nil, unavailable("read question statistics", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cid int64
		var qs statistics.QuestionStatistic
		var score sql.NullInt64
		var answeredAt sql.NullString
		if err := rows.Scan(&cid, &qs.QuestionNumber, &qs.QuestionTitle, &score, &answeredAt, &qs.Attempts); err != nil {
			return nil, err
		}
		if score.Valid {
			v := int(score.Int64)
			qs.AnswerScore = &v
		}
		qs.AnsweredAt = parseTime(answeredAt)

		ch := &p.Chapters[chapterIdx[cid]]
		ch.Questions = append(ch.Questions, qs)
		ch.TotalQuestions = len(ch.Questions)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

// InitializeStatistics imports the guide's content if it is missing and
// makes sure every statistic row exists. Recorded scores are kept.
func (s *SQLiteStore) InitializeStatistics(ctx context.Context, g *guide.Guide) (*statistics.PositionStatistic, error) {
	err := s.RunInTx(ctx, func(tx *Tx) error {
		gid, err := guideID(ctx, tx.tx, g.Name)
		if errors.Is(err, ErrNotFound) {
			_, err = insertGuide(ctx, tx.tx, g)
			return err
		}
		if err != nil {
			return err
		}
		return ensureStatisticRows(ctx, tx.tx, gid)
	})
	if err != nil {
		return nil, err
	}
	return s.GetStatistics(ctx, g.Name)
}

func (s *SQLiteStore) UpdateScore(ctx context.Context, guideName string, chapterNumber, questionNumber, score int) error {
	if err := statistics.ValidateScore(score); err != nil {
		return err
	}

	err := s.RunInTx(ctx, func(tx *Tx) error {
		gid, _, qid, err := resolveQuestion(ctx, tx.tx, guideName, chapterNumber, questionNumber)
		if err != nil {
			return err
		}
		// Statistic rows may not exist yet for content imported without them.
		if err := ensureStatisticRows(ctx, tx.tx, gid); err != nil {
			return err
		}

		_, err = tx.tx.ExecContext(ctx, `
			UPDATE question_statistics
			SET answer_score = ?, answered_at = ?, attempts_count = attempts_count + 1
			WHERE question_id = ?`,
			score, timestamp(), qid,
		)
		if err != nil {
			return unavailable("update score", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("score updated", "guide", guideName, "chapter", chapterNumber, "question", questionNumber, "score", score)
	return nil
}

func resolveQuestion(ctx context.Context, q querier, guideName string, chapterNumber, questionNumber int) (gid, cid, qid int64, err error) {
	if gid, err = lookupGuide(ctx, q, guideName); err != nil {
		return
	}
	if cid, err = chapterID(ctx, q, gid, chapterNumber); err != nil {
		return
	}
	qid, err = questionID(ctx, q, cid, questionNumber)
	return
}

const clearScores = `
	UPDATE question_statistics
	SET answer_score = NULL, answered_at = NULL, attempts_count = 0
	WHERE question_id IN `

// ResetPosition clears every score of the guide and zeroes the chapter and
// guide aggregates in one transaction.
func (s *SQLiteStore) ResetPosition(ctx context.Context, guideName string) error {
	err := s.RunInTx(ctx, func(tx *Tx) error {
		gid, err := lookupGuide(ctx, tx.tx, guideName)
		if err != nil {
			return err
		}

		if _, err := tx.tx.ExecContext(ctx, clearScores+`(
			SELECT q.id FROM questions q JOIN chapters c ON c.id = q.chapter_id WHERE c.guide_id = ?)`, gid,
		); err != nil {
			return unavailable("clear scores", err)
		}
		if _, err := tx.tx.ExecContext(ctx, `
			UPDATE chapter_statistics SET chapter_score = 0, answered_count = 0
			WHERE chapter_id IN (SELECT id FROM chapters WHERE guide_id = ?)`, gid,
		); err != nil {
			return unavailable("zero chapter statistics", err)
		}
		if _, err := tx.tx.ExecContext(ctx,
			"UPDATE user_statistics SET overall_score = 0, total_answered = 0 WHERE guide_id = ?", gid,
		); err != nil {
			return unavailable("zero guide statistics", err)
		}
		return nil
	})
	if err == nil {
		s.logger.Info("guide statistics reset", "guide", guideName)
	}
	return err
}

func (s *SQLiteStore) ResetChapter(ctx context.Context, guideName string, chapterNumber int) error {
	err := s.RunInTx(ctx, func(tx *Tx) error {
		gid, err := lookupGuide(ctx, tx.tx, guideName)
		if err != nil {
			return err
		}
		cid, err := chapterID(ctx, tx.tx, gid, chapterNumber)
		if err != nil {
			return err
		}

		if _, err := tx.tx.ExecContext(ctx, clearScores+`(
			SELECT id FROM questions WHERE chapter_id = ?)`, cid,
		); err != nil {
			return unavailable("clear scores", err)
		}
		// The chapter trigger refreshes the guide aggregates from this.
		if _, err := tx.tx.ExecContext(ctx,
			"UPDATE chapter_statistics SET chapter_score = 0, answered_count = 0 WHERE chapter_id = ?", cid,
		); err != nil {
			return unavailable("zero chapter statistics", err)
		}
		return nil
	})
	if err == nil {
		s.logger.Info("chapter statistics reset", "guide", guideName, "chapter", chapterNumber)
	}
	return err
}

func (s *SQLiteStore) ResetQuestion(ctx context.Context, guideName string, chapterNumber, questionNumber int) error {
	return s.RunInTx(ctx, func(tx *Tx) error {
		_, _, qid, err := resolveQuestion(ctx, tx.tx, guideName, chapterNumber, questionNumber)
		if err != nil {
			return err
		}
		if _, err := tx.tx.ExecContext(ctx, clearScores+"(?)", qid); err != nil {
			return unavailable("clear score", err)
		}
		return nil
	})
}

// Tx is a write transaction handed out by RunInTx. The migration engine
// uses it to import guides under per-guide savepoints.
type Tx struct {
	tx    *sql.Tx
	store *SQLiteStore
}

// RunInTx commits when fn returns nil and rolls back otherwise.
func (s *SQLiteStore) RunInTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin transaction", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&Tx{tx: sqlTx, store: s}); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return unavailable("commit", err)
	}
	return nil
}

func (t *Tx) Savepoint(ctx context.Context, name string) error {
	_, err := t.tx.ExecContext(ctx, "SAVEPOINT "+name)
	return err
}

// RollbackTo undoes everything since the savepoint and releases it.
func (t *Tx) RollbackTo(ctx context.Context, name string) error {
	if _, err := t.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name); err != nil {
		return err
	}
	return t.Release(ctx, name)
}

func (t *Tx) Release(ctx context.Context, name string) error {
	_, err := t.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name)
	return err
}

func (t *Tx) GuideExists(ctx context.Context, name string) (bool, error) {
	_, err := guideID(ctx, t.tx, name)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// ImportGuide inserts the guide's content and zeroed statistics. It
// returns the number of questions written.
func (t *Tx) ImportGuide(ctx context.Context, g *guide.Guide) (int, error) {
	if _, err := insertGuide(ctx, t.tx, g); err != nil {
		return 0, err
	}
	return g.QuestionCount(), nil
}

// ApplyStatistics writes recorded scores from a statistics tree onto an
// imported guide. Chapters and questions unknown to the relational store
// are skipped. The triggers recompute every aggregate. It returns the
// number of scores written.
func (t *Tx) ApplyStatistics(ctx context.Context, p *statistics.PositionStatistic) (int, error) {
	gid, err := guideID(ctx, t.tx, p.Position)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, ch := range p.Chapters {
		cid, err := chapterID(ctx, t.tx, gid, ch.ChapterNumber)
		if errors.Is(err, ErrNotFound) {
			t.store.logger.Warn("skipping statistics of unknown chapter", "guide", p.Position, "chapter", ch.ChapterNumber)
			continue
		}
		if err != nil {
			return applied, err
		}

		for _, q := range ch.Questions {
			if q.AnswerScore == nil {
				continue
			}
			qid, err := questionID(ctx, t.tx, cid, q.QuestionNumber)
			if errors.Is(err, ErrNotFound) {
				t.store.logger.Warn("skipping statistics of unknown question", "guide", p.Position, "question", q.QuestionNumber)
				continue
			}
			if err != nil {
				return applied, err
			}

			answeredAt := timestamp()
			if q.AnsweredAt != nil {
				answeredAt = q.AnsweredAt.UTC().Format(timeLayout)
			}
			attempts := max(q.Attempts, 1)

			if _, err := t.tx.ExecContext(ctx, `
				UPDATE question_statistics
				SET answer_score = ?, answered_at = ?, attempts_count = ?
				WHERE question_id = ?`,
				*q.AnswerScore, answeredAt, attempts, qid,
			); err != nil {
				return applied, fmt.Errorf("apply score of question %d: %w", q.QuestionNumber, err)
			}
			applied++
		}
	}
	return applied, nil
}

func (t *Tx) Counts(ctx context.Context) (Counts, error) {
	return readCounts(ctx, t.tx)
}
