package exam

import "time"

// Option is one selectable answer for a question. IsCorrect is only ever
// exposed to admins; student-facing views go through Sanitized.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type Question struct {
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

// QuestionSet holds the ordered questions belonging to one exam. Question
// order is fixed by storage order and never shuffled server-side.
type QuestionSet struct {
	ID        string     `json:"id"`
	ExamID    string     `json:"exam_id"`
	Questions []Question `json:"questions"`
}

// Exam metadata. Exams are immutable once created: there is no update or
// delete path.
type Exam struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	StartAt        time.Time `json:"start_at"`
	DurationMin    int       `json:"duration_min"`
	TotalQuestions int       `json:"total_questions"`
	Category       string    `json:"category"`
	CreatedAt      time.Time `json:"created_at"`
}

// Sanitized returns a copy of the set with correctness flags cleared, safe
// to serve to students taking the exam.
func (qs QuestionSet) Sanitized() QuestionSet {
	out := QuestionSet{ID: qs.ID, ExamID: qs.ExamID, Questions: make([]Question, len(qs.Questions))}
	for i, q := range qs.Questions {
		opts := make([]Option, len(q.Options))
		for j, o := range q.Options {
			opts[j] = Option{Text: o.Text}
		}
		out.Questions[i] = Question{Text: q.Text, Options: opts}
	}
	return out
}

// CorrectOptionIndex scans the question's options for the correctness flag.
// Returns -1 when no option is flagged, which write-time validation should
// prevent but stored data may still violate.
func (q Question) CorrectOptionIndex() int {
	for i, o := range q.Options {
		if o.IsCorrect {
			return i
		}
	}
	return -1
}
