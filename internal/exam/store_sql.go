package exam

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) PutExam(ctx context.Context, e Exam) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exams (id,title,description,start_at,duration_min,total_questions,category,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		e.ID, e.Title, e.Description, e.StartAt.Unix(), e.DurationMin, e.TotalQuestions, e.Category, e.CreatedAt.Unix())
	return err
}

func (s *SQLStore) GetExam(ctx context.Context, id string) (Exam, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,title,description,start_at,duration_min,total_questions,category,created_at
		 FROM exams WHERE id=$1`, id)
	return scanExam(row)
}

func (s *SQLStore) ListExams(ctx context.Context) ([]Exam, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,title,description,start_at,duration_min,total_questions,category,created_at
		 FROM exams ORDER BY start_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExams(rows)
}

func (s *SQLStore) ListUpcoming(ctx context.Context, after time.Time, limit int) ([]Exam, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,title,description,start_at,duration_min,total_questions,category,created_at
		 FROM exams WHERE start_at > $1 ORDER BY start_at ASC LIMIT $2`,
		after.Unix(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExams(rows)
}

func (s *SQLStore) GetExamTitles(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	ph := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		ph[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,title FROM exams WHERE id IN (`+strings.Join(ph, ",")+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id, title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, err
		}
		out[id] = title
	}
	return out, rows.Err()
}

func (s *SQLStore) AddQuestion(ctx context.Context, examID string, q Question) (QuestionSet, error) {
	if err := ValidateQuestion(q); err != nil {
		return QuestionSet{}, err
	}
	var exist int
	if err := s.db.QueryRowContext(ctx, `SELECT 1 FROM exams WHERE id=$1`, examID).Scan(&exist); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return QuestionSet{}, ErrNotFound
		}
		return QuestionSet{}, err
	}

	qs, err := s.GetQuestionSet(ctx, examID)
	switch {
	case errors.Is(err, ErrQuestionSetNotFound):
		qs = QuestionSet{ID: uuid.NewString(), ExamID: examID}
	case err != nil:
		return QuestionSet{}, err
	}
	qs.Questions = append(qs.Questions, q)

	buf, err := json.Marshal(qs.Questions)
	if err != nil {
		return QuestionSet{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO exam_questions (id,exam_id,questions_json,created_at)
		 VALUES ($1,$2,$3,$4)
		 ON CONFLICT (exam_id) DO UPDATE SET questions_json=EXCLUDED.questions_json`,
		qs.ID, examID, string(buf), time.Now().Unix())
	if err != nil {
		return QuestionSet{}, err
	}
	return qs, nil
}

func (s *SQLStore) GetQuestionSet(ctx context.Context, examID string) (QuestionSet, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,exam_id,questions_json FROM exam_questions WHERE exam_id=$1`, examID)
	var qs QuestionSet
	var qjson string
	if err := row.Scan(&qs.ID, &qs.ExamID, &qjson); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return QuestionSet{}, ErrQuestionSetNotFound
		}
		return QuestionSet{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &qs.Questions); err != nil {
		return QuestionSet{}, err
	}
	return qs, nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanExam(row rowScanner) (Exam, error) {
	var e Exam
	var startAt, createdAt int64
	err := row.Scan(&e.ID, &e.Title, &e.Description, &startAt, &e.DurationMin, &e.TotalQuestions, &e.Category, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Exam{}, ErrNotFound
		}
		return Exam{}, err
	}
	e.StartAt = time.Unix(startAt, 0).UTC()
	e.CreatedAt = time.Unix(createdAt, 0).UTC()
	return e, nil
}

func collectExams(rows *sql.Rows) ([]Exam, error) {
	var out []Exam
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
