package exam

import (
	"errors"
	"testing"
)

func TestValidateQuestion(t *testing.T) {
	ok := Question{
		Text: "What does TCP stand for?",
		Options: []Option{
			{Text: "Transmission Control Protocol", IsCorrect: true},
			{Text: "Transfer Call Procedure"},
		},
	}
	if err := ValidateQuestion(ok); err != nil {
		t.Fatalf("valid question rejected: %v", err)
	}

	cases := []struct {
		name string
		q    Question
		want error
	}{
		{
			name: "blank text",
			q:    Question{Text: "  ", Options: ok.Options},
			want: ErrEmptyQuestionText,
		},
		{
			name: "single option",
			q:    Question{Text: "q", Options: []Option{{Text: "a", IsCorrect: true}}},
			want: ErrTooFewOptions,
		},
		{
			name: "blank option text",
			q:    Question{Text: "q", Options: []Option{{Text: "a", IsCorrect: true}, {Text: ""}}},
			want: ErrEmptyOptionText,
		},
		{
			name: "no correct flag",
			q:    Question{Text: "q", Options: []Option{{Text: "a"}, {Text: "b"}}},
			want: ErrNoCorrectOption,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateQuestion(tc.q); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestSanitizedStripsFlags(t *testing.T) {
	qs := QuestionSet{
		ID:     "set-1",
		ExamID: "exam-1",
		Questions: []Question{
			{Text: "q1", Options: []Option{{Text: "a", IsCorrect: true}, {Text: "b"}}},
		},
	}
	safe := qs.Sanitized()
	for _, q := range safe.Questions {
		for _, o := range q.Options {
			if o.IsCorrect {
				t.Fatal("sanitized set still carries a correctness flag")
			}
		}
	}
	// original untouched
	if !qs.Questions[0].Options[0].IsCorrect {
		t.Fatal("sanitizing mutated the source set")
	}
}

func TestCorrectOptionIndex(t *testing.T) {
	q := Question{Options: []Option{{Text: "a"}, {Text: "b", IsCorrect: true}}}
	if got := q.CorrectOptionIndex(); got != 1 {
		t.Fatalf("index = %d, want 1", got)
	}
	broken := Question{Options: []Option{{Text: "a"}, {Text: "b"}}}
	if got := broken.CorrectOptionIndex(); got != -1 {
		t.Fatalf("index = %d, want sentinel -1", got)
	}
}
