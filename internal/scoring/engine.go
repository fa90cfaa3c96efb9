// Package scoring turns one submission against one question set into a
// graded outcome. It is a single sequential pass with no side effects;
// persisting the outcome is the caller's job.
package scoring

import (
	"fmt"
	"math"

	"github.com/mind-engage/quizify/internal/exam"
)

// PassingScore is the fixed pass threshold applied to every exam. The
// original product hardcodes 70 across all exams; making it per-exam is a
// known open question, intentionally not resolved here.
const PassingScore = 70

const (
	StatusPassed = "PASSED"
	StatusFailed = "FAILED"
)

// NoCorrectOption is the sentinel recorded when a stored question has no
// option flagged correct (a write-time invariant violation that is
// tolerated, not fatal).
const NoCorrectOption = -1

// Answer is one submitted selection. A nil SelectedOption means the client
// sent the entry without actually choosing an option; the question counts
// as skipped either way.
type Answer struct {
	SelectedOption *int `json:"selected_option"`
}

// Submission maps 0-based question indexes to selections for one grading
// attempt. It is transient: nothing here is persisted as-is.
type Submission struct {
	Answers    map[int]Answer
	ElapsedSec int
}

type QuestionResult struct {
	QuestionIndex      int    `json:"question_index"`
	Question           string `json:"question"`
	UserSelectedOption *int   `json:"user_selected_option"`
	CorrectOptionIndex int    `json:"correct_option_index"`
	IsCorrect          bool   `json:"is_correct"`
}

// Distribution holds the three per-category percentages. Each is rounded
// independently, so they are not guaranteed to sum to exactly 100.
type Distribution struct {
	CorrectPercentage   int `json:"correct_percentage"`
	IncorrectPercentage int `json:"incorrect_percentage"`
	SkippedPercentage   int `json:"skipped_percentage"`
}

type Summary struct {
	Total           int              `json:"total"`
	Correct         int              `json:"correct"`
	Incorrect       int              `json:"incorrect"`
	Skipped         int              `json:"skipped"`
	ScorePercentage int              `json:"score_percentage"`
	TimeTaken       string           `json:"time_taken"`
	Status          string           `json:"status"`
	Distribution    Distribution     `json:"distribution"`
	QuestionResults []QuestionResult `json:"question_results"`
}

// Grade walks the question set in storage order and classifies every
// question as correct, incorrect, or skipped, so that
// correct + incorrect + skipped == len(questions) always holds.
//
// Percentages use math.Round (half away from zero), which matches the
// original platform's rounding for the non-negative ratios that occur
// here. An empty question set grades to total=0, score=0, FAILED without
// touching any division.
func Grade(questions []exam.Question, sub Submission) Summary {
	total := len(questions)
	results := make([]QuestionResult, 0, total)
	var correct, incorrect int

	for i, q := range questions {
		correctIdx := q.CorrectOptionIndex()
		qr := QuestionResult{
			QuestionIndex:      i,
			Question:           q.Text,
			CorrectOptionIndex: correctIdx,
		}
		if ans, ok := sub.Answers[i]; ok && ans.SelectedOption != nil {
			qr.UserSelectedOption = ans.SelectedOption
			if *ans.SelectedOption == correctIdx {
				qr.IsCorrect = true
				correct++
			} else {
				incorrect++
			}
		}
		results = append(results, qr)
	}
	skipped := total - correct - incorrect

	score := percentage(correct, total)
	status := StatusFailed
	if score >= PassingScore {
		status = StatusPassed
	}

	return Summary{
		Total:           total,
		Correct:         correct,
		Incorrect:       incorrect,
		Skipped:         skipped,
		ScorePercentage: score,
		TimeTaken:       FormatElapsed(sub.ElapsedSec),
		Status:          status,
		Distribution: Distribution{
			CorrectPercentage:   percentage(correct, total),
			IncorrectPercentage: percentage(incorrect, total),
			SkippedPercentage:   percentage(skipped, total),
		},
		QuestionResults: results,
	}
}

// FormatElapsed renders elapsed seconds as "M min S sec". Minutes and
// seconds are the only units the product displays.
func FormatElapsed(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%d min %d sec", sec/60, sec%60)
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
