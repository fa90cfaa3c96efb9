package cert

import (
	"bytes"
	"testing"
	"time"

	"github.com/mind-engage/quizify/internal/result"
	"github.com/mind-engage/quizify/internal/scoring"
)

func TestFromResultValidityWindow(t *testing.T) {
	issued := time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)
	r := result.Result{
		ID:              "res-1",
		ExamID:          "exam-1",
		ScorePercentage: 84,
		Status:          scoring.StatusPassed,
		CreatedAt:       issued,
	}

	c := FromResult(r, "Networking Basics", "Ada Lovelace")
	if c.IssueDate != issued {
		t.Fatalf("issue date = %v, want %v", c.IssueDate, issued)
	}
	want := issued.AddDate(2, 0, 0)
	if !c.ValidUntil.Equal(want) {
		t.Fatalf("valid until = %v, want %v", c.ValidUntil, want)
	}
	if c.ExamTitle != "Networking Basics" || c.UserName != "Ada Lovelace" || c.Score != 84 {
		t.Fatalf("unexpected certificate fields: %+v", c)
	}
}

func TestRenderPDF(t *testing.T) {
	c := Certificate{
		ID:         "res-1",
		ExamTitle:  "Networking Basics",
		UserName:   "Ada Lovelace",
		Score:      84,
		IssueDate:  time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2027, time.March, 14, 0, 0, 0, 0, time.UTC),
	}
	pdf, err := RenderPDF(c)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF (first bytes: %q)", pdf[:min(8, len(pdf))])
	}
	if len(pdf) < 500 {
		t.Fatalf("suspiciously small PDF: %d bytes", len(pdf))
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
