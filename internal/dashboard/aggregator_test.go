package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/mind-engage/quizify/internal/dashboard"
	"github.com/mind-engage/quizify/internal/exam"
	"github.com/mind-engage/quizify/internal/result"
	"github.com/mind-engage/quizify/internal/scoring"
)

/* ---- in-memory fakes satisfying dashboard.ResultSource / ExamSource ---- */

type fakeResults struct {
	byUser map[string][]result.Result
}

func (f *fakeResults) ListByUser(_ context.Context, userID string) ([]result.Result, error) {
	return f.byUser[userID], nil
}

type fakeExams struct {
	titles     map[string]string
	upcoming   []exam.Exam
	titleCalls int
}

func (f *fakeExams) GetExamTitles(_ context.Context, ids []string) (map[string]string, error) {
	f.titleCalls++
	out := map[string]string{}
	for _, id := range ids {
		if t, ok := f.titles[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

func (f *fakeExams) ListUpcoming(_ context.Context, _ time.Time, limit int) ([]exam.Exam, error) {
	if len(f.upcoming) > limit {
		return f.upcoming[:limit], nil
	}
	return f.upcoming, nil
}

func res(id, examID string, score int, status string, created time.Time) result.Result {
	return result.Result{
		ID: id, ExamID: examID, UserID: "u1",
		ScorePercentage: score, Status: status, CreatedAt: created,
	}
}

func TestOverview(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	lastMonth := now.AddDate(0, -1, 0)
	ancient := now.AddDate(0, -8, 0)

	results := &fakeResults{byUser: map[string][]result.Result{
		"u1": {
			res("r4", "e2", 90, scoring.StatusPassed, now.Add(-time.Hour)),
			res("r3", "e1", 80, scoring.StatusPassed, now.Add(-2*time.Hour)),
			res("r2", "e1", 40, scoring.StatusFailed, lastMonth),
			res("r1", "e1", 70, scoring.StatusPassed, ancient),
		},
	}}
	exams := &fakeExams{
		titles: map[string]string{"e1": "Go Basics", "e2": "Networking"},
		upcoming: []exam.Exam{
			{ID: "e9", Title: "Databases", StartAt: now.AddDate(0, 0, 3), DurationMin: 45},
		},
	}

	agg := dashboard.New(results, exams)
	agg.Now = func() time.Time { return now }

	ov, err := agg.Overview(context.Background(), "u1")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	if ov.Stats.TotalExams != 4 || ov.Stats.PassedExams != 3 {
		t.Fatalf("stats = %+v, want 4 total / 3 passed", ov.Stats)
	}
	// mean of 90,80,40,70 = 70
	if ov.Stats.AverageScore != 70 {
		t.Fatalf("average = %d, want 70", ov.Stats.AverageScore)
	}
	if ov.Stats.UpcomingExamCount != 1 || ov.Stats.NextExamDate == nil {
		t.Fatalf("upcoming stats wrong: %+v", ov.Stats)
	}

	if len(ov.RecentExams) != 4 || ov.RecentExams[0].Title != "Networking" {
		t.Fatalf("recent exams wrong: %+v", ov.RecentExams)
	}

	// Titles must come from one batched lookup, not one query per result.
	if exams.titleCalls != 1 {
		t.Fatalf("title lookups = %d, want 1 batched call", exams.titleCalls)
	}

	// Per-exam averages: e2 -> 90, e1 -> mean(80,40,70)=63 (rounded)
	want := map[string]int{"Networking": 90, "Go Basics": 63}
	for _, s := range ov.Performance.BySubject {
		if want[s.Name] != s.Score {
			t.Fatalf("subject %s score = %d, want %d", s.Name, s.Score, want[s.Name])
		}
	}

	if got := ov.Performance.PassFail; got.Passed != 3 || got.Failed != 1 {
		t.Fatalf("pass/fail = %+v", got)
	}

	months := ov.Performance.OverTime
	if len(months) != 6 {
		t.Fatalf("monthly buckets = %d, want 6", len(months))
	}
	// Current month: mean(90,80)=85. Previous month: 40. r1 is older than the
	// 6-month window and must not appear anywhere.
	if months[5].Score != 85 {
		t.Fatalf("current month score = %d, want 85", months[5].Score)
	}
	if months[4].Score != 40 {
		t.Fatalf("previous month score = %d, want 40", months[4].Score)
	}
	for _, m := range months[:4] {
		if m.Score != 0 {
			t.Fatalf("empty month %s has score %d, want 0", m.Month, m.Score)
		}
	}
}

func TestOverviewNoResults(t *testing.T) {
	agg := dashboard.New(
		&fakeResults{byUser: map[string][]result.Result{}},
		&fakeExams{titles: map[string]string{}},
	)
	agg.Now = func() time.Time { return time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC) }

	ov, err := agg.Overview(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if ov.Stats.TotalExams != 0 || ov.Stats.AverageScore != 0 || ov.Stats.PassedExams != 0 {
		t.Fatalf("expected zeroed stats, got %+v", ov.Stats)
	}
	if len(ov.Performance.OverTime) != 6 {
		t.Fatalf("monthly buckets = %d, want 6 even with no results", len(ov.Performance.OverTime))
	}
}
