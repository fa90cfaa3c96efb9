package result

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

const resultColumns = `id,exam_id,user_id,total_questions,correct_answers,incorrect_answers,
	skipped_answers,score_percentage,time_taken,status,dist_correct,dist_incorrect,dist_skipped,created_at`

func (s *SQLStore) Insert(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exam_results (`+resultColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		r.ID, r.ExamID, r.UserID, r.TotalQuestions, r.CorrectAnswers, r.IncorrectAnswers,
		r.SkippedAnswers, r.ScorePercentage, r.TimeTaken, r.Status,
		r.Distribution.CorrectPercentage, r.Distribution.IncorrectPercentage,
		r.Distribution.SkippedPercentage, r.CreatedAt.Unix())
	return err
}

func (s *SQLStore) GetByID(ctx context.Context, id string) (Result, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+resultColumns+` FROM exam_results WHERE id=$1`, id)
	return scanResult(row)
}

func (s *SQLStore) GetByUserExam(ctx context.Context, userID, examID string) (Result, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+resultColumns+` FROM exam_results
		 WHERE user_id=$1 AND exam_id=$2 ORDER BY created_at DESC LIMIT 1`,
		userID, examID)
	return scanResult(row)
}

func (s *SQLStore) ListByUser(ctx context.Context, userID string) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+resultColumns+` FROM exam_results
		 WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanResult(row rowScanner) (Result, error) {
	var r Result
	var createdAt int64
	err := row.Scan(&r.ID, &r.ExamID, &r.UserID, &r.TotalQuestions, &r.CorrectAnswers,
		&r.IncorrectAnswers, &r.SkippedAnswers, &r.ScorePercentage, &r.TimeTaken, &r.Status,
		&r.Distribution.CorrectPercentage, &r.Distribution.IncorrectPercentage,
		&r.Distribution.SkippedPercentage, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Result{}, ErrNotFound
		}
		return Result{}, err
	}
	r.CreatedAt = time.Unix(createdAt, 0).UTC()
	return r, nil
}
