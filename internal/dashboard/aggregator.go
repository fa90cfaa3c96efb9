// Package dashboard reduces a user's result history into the summary the
// dashboard page renders. All reductions are plain folds over one
// per-request fetch; nothing is cached or computed incrementally.
package dashboard

import (
	"context"
	"math"
	"time"

	"github.com/mind-engage/quizify/internal/exam"
	"github.com/mind-engage/quizify/internal/result"
)

const (
	recentLimit    = 5
	upcomingLimit  = 10
	trailingMonths = 6
)

type ResultSource interface {
	ListByUser(ctx context.Context, userID string) ([]result.Result, error)
}

type ExamSource interface {
	GetExamTitles(ctx context.Context, ids []string) (map[string]string, error)
	ListUpcoming(ctx context.Context, after time.Time, limit int) ([]exam.Exam, error)
}

type Stats struct {
	TotalExams        int        `json:"total_exams"`
	PassedExams       int        `json:"passed_exams"`
	AverageScore      int        `json:"average_score"`
	UpcomingExamCount int        `json:"upcoming_exam_count"`
	NextExamDate      *time.Time `json:"next_exam_date"`
}

type RecentExam struct {
	ID     string    `json:"id"`
	ExamID string    `json:"exam_id"`
	Title  string    `json:"title"`
	Date   time.Time `json:"date"`
	Score  int       `json:"score"`
	Passed bool      `json:"passed"`
}

type UpcomingExam struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	DurationMin int       `json:"duration_min"`
}

type SubjectScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type MonthlyScore struct {
	Month string `json:"month"`
	Score int    `json:"score"`
}

type Performance struct {
	BySubject []SubjectScore `json:"by_subject"`
	OverTime  []MonthlyScore `json:"over_time"`
	PassFail  PassFail       `json:"pass_fail"`
}

type PassFail struct {
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

type Overview struct {
	Stats       Stats          `json:"stats"`
	RecentExams []RecentExam   `json:"recent_exams"`
	Upcoming    []UpcomingExam `json:"upcoming_exams"`
	Performance Performance    `json:"performance"`
}

type Aggregator struct {
	Results ResultSource
	Exams   ExamSource

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func New(results ResultSource, exams ExamSource) *Aggregator {
	return &Aggregator{Results: results, Exams: exams, Now: time.Now}
}

func (a *Aggregator) Overview(ctx context.Context, userID string) (Overview, error) {
	now := a.Now()

	results, err := a.Results.ListByUser(ctx, userID)
	if err != nil {
		return Overview{}, err
	}
	upcoming, err := a.Exams.ListUpcoming(ctx, now, upcomingLimit)
	if err != nil {
		return Overview{}, err
	}

	// One batched title lookup for every exam referenced by any result.
	titles, err := a.Exams.GetExamTitles(ctx, distinctExamIDs(results))
	if err != nil {
		return Overview{}, err
	}

	passed := 0
	scoreSum := 0
	for _, r := range results {
		if r.Passed() {
			passed++
		}
		scoreSum += r.ScorePercentage
	}
	avg := 0
	if len(results) > 0 {
		avg = roundDiv(scoreSum, len(results))
	}

	ov := Overview{
		Stats: Stats{
			TotalExams:        len(results),
			PassedExams:       passed,
			AverageScore:      avg,
			UpcomingExamCount: len(upcoming),
		},
		RecentExams: recent(results, titles),
		Upcoming:    make([]UpcomingExam, 0, len(upcoming)),
		Performance: Performance{
			BySubject: bySubject(results, titles),
			OverTime:  overTime(results, now),
			PassFail:  PassFail{Passed: passed, Failed: len(results) - passed},
		},
	}
	for _, e := range upcoming {
		ov.Upcoming = append(ov.Upcoming, UpcomingExam{
			ID: e.ID, Title: e.Title, Date: e.StartAt, DurationMin: e.DurationMin,
		})
	}
	if len(upcoming) > 0 {
		d := upcoming[0].StartAt
		ov.Stats.NextExamDate = &d
	}
	return ov, nil
}

func distinctExamIDs(results []result.Result) []string {
	seen := map[string]struct{}{}
	var ids []string
	for _, r := range results {
		if _, ok := seen[r.ExamID]; ok {
			continue
		}
		seen[r.ExamID] = struct{}{}
		ids = append(ids, r.ExamID)
	}
	return ids
}

// recent assumes results are already newest-first (store order).
func recent(results []result.Result, titles map[string]string) []RecentExam {
	n := len(results)
	if n > recentLimit {
		n = recentLimit
	}
	out := make([]RecentExam, 0, n)
	for _, r := range results[:n] {
		title, ok := titles[r.ExamID]
		if !ok {
			title = "Unknown Exam"
		}
		out = append(out, RecentExam{
			ID: r.ID, ExamID: r.ExamID, Title: title,
			Date: r.CreatedAt, Score: r.ScorePercentage, Passed: r.Passed(),
		})
	}
	return out
}

// bySubject averages scores per referenced exam, in first-seen order.
func bySubject(results []result.Result, titles map[string]string) []SubjectScore {
	type acc struct {
		sum, n int
	}
	byExam := map[string]*acc{}
	var order []string
	for _, r := range results {
		a, ok := byExam[r.ExamID]
		if !ok {
			a = &acc{}
			byExam[r.ExamID] = a
			order = append(order, r.ExamID)
		}
		a.sum += r.ScorePercentage
		a.n++
	}
	out := make([]SubjectScore, 0, len(order))
	for _, id := range order {
		title, ok := titles[id]
		if !ok {
			continue
		}
		a := byExam[id]
		out = append(out, SubjectScore{Name: title, Score: roundDiv(a.sum, a.n)})
	}
	if len(out) > recentLimit {
		out = out[:recentLimit]
	}
	return out
}

// overTime buckets the trailing six months by creation month, oldest
// first, with 0 for months that have no results.
func overTime(results []result.Result, now time.Time) []MonthlyScore {
	type acc struct {
		sum, n int
	}
	byMonth := map[string]*acc{}
	cutoff := now.AddDate(0, -trailingMonths, 0)
	for _, r := range results {
		if r.CreatedAt.Before(cutoff) {
			continue
		}
		k := r.CreatedAt.Format("2006-01")
		a, ok := byMonth[k]
		if !ok {
			a = &acc{}
			byMonth[k] = a
		}
		a.sum += r.ScorePercentage
		a.n++
	}

	out := make([]MonthlyScore, 0, trailingMonths)
	for i := trailingMonths - 1; i >= 0; i-- {
		m := now.AddDate(0, -i, 0)
		score := 0
		if a, ok := byMonth[m.Format("2006-01")]; ok && a.n > 0 {
			score = roundDiv(a.sum, a.n)
		}
		out = append(out, MonthlyScore{Month: m.Format("Jan"), Score: score})
	}
	return out
}

func roundDiv(sum, n int) int {
	return int(math.Round(float64(sum) / float64(n)))
}
