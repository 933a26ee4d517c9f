package service

import (
	"testing"
	"time"

	"poker_school_backend/internal/model"
)

func record(componentID string, status model.ProgressStatus, at time.Time) model.ProgressRecord {
	return model.ProgressRecord{
		ComponentID: componentID,
		Status:      status,
		RecordedAt:  at,
	}
}

func TestEvaluateEmptyRequirementsAreComplete(t *testing.T) {
	got := Evaluate(RequiredSet{}, nil, time.Now())
	if !got.All() {
		t.Fatalf("empty requirement set should be complete, got %+v", got)
	}
}

func TestEvaluateCountsOnlyCompletedRecords(t *testing.T) {
	cutoff := time.Now()
	req := RequiredSet{FreeVideoIDs: []string{"v1", "v2"}}
	records := []model.ProgressRecord{
		record("v1", model.StatusCompleted, cutoff.Add(-time.Hour)),
		record("v2", model.StatusIncomplete, cutoff.Add(-time.Hour)),
	}
	got := Evaluate(req, records, cutoff)
	if got.VideosComplete {
		t.Fatalf("incompleted record should not satisfy the requirement")
	}

	records[1].Status = model.StatusCompleted
	got = Evaluate(req, records, cutoff)
	if !got.VideosComplete {
		t.Fatalf("both videos completed before cutoff, want VideosComplete")
	}
}

func TestEvaluateCutoffExcludesLateRecords(t *testing.T) {
	cutoff := time.Now()
	req := RequiredSet{FreeQuizIDs: []string{"q1"}}
	records := []model.ProgressRecord{
		record("q1", model.StatusCompleted, cutoff.Add(time.Minute)),
	}
	if got := Evaluate(req, records, cutoff); got.QuizzesComplete {
		t.Fatalf("record written after cutoff must not count")
	}

	records[0].RecordedAt = cutoff
	if got := Evaluate(req, records, cutoff); !got.QuizzesComplete {
		t.Fatalf("record dated exactly at the cutoff must count")
	}
}

func TestEvaluateChapters(t *testing.T) {
	cutoff := time.Now()
	req := RequiredSet{
		Chapters: []RequiredChapter{
			{ChapterID: "c1", VideoIDs: []string{"v1"}, QuizIDs: []string{"q1"}},
			{ChapterID: "c2", VideoIDs: []string{"v2"}},
		},
	}
	records := []model.ProgressRecord{
		record("v1", model.StatusCompleted, cutoff.Add(-time.Hour)),
		record("q1", model.StatusCompleted, cutoff.Add(-time.Hour)),
	}
	got := Evaluate(req, records, cutoff)
	if got.ChaptersComplete {
		t.Fatalf("chapter c2 is unfinished, ChaptersComplete must be false")
	}

	records = append(records, record("v2", model.StatusCompleted, cutoff.Add(-time.Minute)))
	got = Evaluate(req, records, cutoff)
	if !got.ChaptersComplete {
		t.Fatalf("all chapter components done before cutoff, want ChaptersComplete")
	}
}

func TestStreakCutoff(t *testing.T) {
	signup := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	got := StreakCutoff(signup, 2)
	want := signup.Add(14 * 24 * time.Hour)
	if !got.Equal(want) {
		t.Fatalf("StreakCutoff(signup, 2) = %v, want %v", got, want)
	}
}
