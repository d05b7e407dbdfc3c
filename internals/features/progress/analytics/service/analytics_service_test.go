package service

import (
	"fmt"
	"testing"
	"time"

	"leetrack_backend/internals/features/progress/record/model"
)

var testNow = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

func rec(difficulty, company string, solvedAt time.Time) model.ProblemRecordModel {
	return model.ProblemRecordModel{
		ProblemRecordTitle:      "Two Sum",
		ProblemRecordDifficulty: difficulty,
		ProblemRecordCompany:    company,
		ProblemRecordSolvedAt:   solvedAt,
	}
}

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func TestCompute_ZeroRecords(t *testing.T) {
	out := Compute(nil, testNow)

	if out.TotalSolved != 0 {
		t.Errorf("TotalSolved = %d; want 0", out.TotalSolved)
	}
	if out.DifficultyStats.Easy != 0 || out.DifficultyStats.Medium != 0 || out.DifficultyStats.Hard != 0 {
		t.Errorf("DifficultyStats = %+v; want all zero", out.DifficultyStats)
	}
	if len(out.TopCompanies) != 0 {
		t.Errorf("TopCompanies = %v; want empty", out.TopCompanies)
	}
	if out.CurrentStreak != 0 || out.LongestStreak != 0 {
		t.Errorf("streaks = %d/%d; want 0/0", out.CurrentStreak, out.LongestStreak)
	}
	if len(out.Timeline) != 30 {
		t.Fatalf("Timeline length = %d; want 30", len(out.Timeline))
	}
	for _, p := range out.Timeline {
		if p.Count != 0 || p.Cumulative != 0 {
			t.Errorf("Timeline point %s = %+v; want zeros", p.Date, p)
		}
	}
}

func TestCompute_DifficultyBreakdown(t *testing.T) {
	records := []model.ProblemRecordModel{
		rec(model.DifficultyEasy, "Google", daysAgo(1)),
		rec(model.DifficultyEasy, "Google", daysAgo(2)),
		rec(model.DifficultyMedium, "Amazon", daysAgo(3)),
	}

	out := Compute(records, testNow)

	if out.TotalSolved != 3 {
		t.Errorf("TotalSolved = %d; want 3", out.TotalSolved)
	}
	if out.DifficultyStats.Easy != 2 {
		t.Errorf("Easy = %d; want 2", out.DifficultyStats.Easy)
	}
	if out.DifficultyStats.Medium != 1 {
		t.Errorf("Medium = %d; want 1", out.DifficultyStats.Medium)
	}
	if out.DifficultyStats.Hard != 0 {
		t.Errorf("Hard = %d; want 0", out.DifficultyStats.Hard)
	}
}

func TestCompute_TopCompanies(t *testing.T) {
	var records []model.ProblemRecordModel
	// 12 companies; company-00 gets 13 solves, company-01 gets 12, and so on
	for i := 0; i < 12; i++ {
		for j := 0; j <= 12-i; j++ {
			records = append(records, rec(model.DifficultyEasy, fmt.Sprintf("company-%02d", i), daysAgo(40)))
		}
	}

	out := Compute(records, testNow)

	if len(out.TopCompanies) != 10 {
		t.Fatalf("TopCompanies length = %d; want 10", len(out.TopCompanies))
	}
	if out.TopCompanies[0].Company != "company-00" || out.TopCompanies[0].Count != 13 {
		t.Errorf("TopCompanies[0] = %+v; want company-00 with 13", out.TopCompanies[0])
	}
	for i := 1; i < len(out.TopCompanies); i++ {
		if out.TopCompanies[i].Count > out.TopCompanies[i-1].Count {
			t.Errorf("TopCompanies not sorted descending at %d: %+v", i, out.TopCompanies)
		}
	}
}

func TestCompute_TopCompanies_StableTieBreak(t *testing.T) {
	records := []model.ProblemRecordModel{
		rec(model.DifficultyEasy, "first-seen", daysAgo(1)),
		rec(model.DifficultyEasy, "second-seen", daysAgo(1)),
	}

	out := Compute(records, testNow)

	if out.TopCompanies[0].Company != "first-seen" {
		t.Errorf("tie-break order = %v; want first-seen first", out.TopCompanies)
	}
}

func TestCompute_TimelineCumulativeReconstructsTotal(t *testing.T) {
	records := []model.ProblemRecordModel{
		rec(model.DifficultyEasy, "Google", daysAgo(0)),
		rec(model.DifficultyEasy, "Google", daysAgo(5)),
		rec(model.DifficultyMedium, "Amazon", daysAgo(29)),
	}

	out := Compute(records, testNow)

	last := out.Timeline[len(out.Timeline)-1]
	if last.Cumulative != 3 {
		t.Errorf("last cumulative = %d; want 3 (all records inside the window)", last.Cumulative)
	}
	if last.Count != 1 {
		t.Errorf("today's count = %d; want 1", last.Count)
	}
	if out.Timeline[0].Date != daysAgo(29).Format("2006-01-02") {
		t.Errorf("first point date = %s; want %s", out.Timeline[0].Date, daysAgo(29).Format("2006-01-02"))
	}
}

func TestCompute_TimelineSeedsWithOlderRecords(t *testing.T) {
	records := []model.ProblemRecordModel{
		rec(model.DifficultyEasy, "Google", daysAgo(100)),
		rec(model.DifficultyEasy, "Google", daysAgo(90)),
		rec(model.DifficultyEasy, "Google", daysAgo(2)),
	}

	out := Compute(records, testNow)

	if out.Timeline[0].Cumulative != 2 {
		t.Errorf("first cumulative = %d; want 2 (records before window)", out.Timeline[0].Cumulative)
	}
	last := out.Timeline[len(out.Timeline)-1]
	if last.Cumulative != 3 {
		t.Errorf("last cumulative = %d; want grand total 3", last.Cumulative)
	}
}

func TestCompute_CurrentStreak(t *testing.T) {
	records := []model.ProblemRecordModel{
		rec(model.DifficultyEasy, "Google", daysAgo(0)),
		rec(model.DifficultyEasy, "Google", daysAgo(1)),
		rec(model.DifficultyEasy, "Google", daysAgo(2)),
		rec(model.DifficultyEasy, "Google", daysAgo(5)), // gap, must not extend
	}

	out := Compute(records, testNow)

	if out.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d; want 3", out.CurrentStreak)
	}
}

func TestCompute_CurrentStreakStartsYesterday(t *testing.T) {
	records := []model.ProblemRecordModel{
		rec(model.DifficultyEasy, "Google", daysAgo(1)),
		rec(model.DifficultyEasy, "Google", daysAgo(2)),
	}

	out := Compute(records, testNow)

	if out.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d; want 2 (latest active day is yesterday)", out.CurrentStreak)
	}
}

func TestCompute_CurrentStreakZeroWhenStale(t *testing.T) {
	records := []model.ProblemRecordModel{
		rec(model.DifficultyEasy, "Google", daysAgo(3)),
		rec(model.DifficultyEasy, "Google", daysAgo(4)),
	}

	out := Compute(records, testNow)

	if out.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d; want 0 (no solve today or yesterday)", out.CurrentStreak)
	}
	if out.LongestStreak != 2 {
		t.Errorf("LongestStreak = %d; want 2", out.LongestStreak)
	}
}

func TestCompute_LongestStreak(t *testing.T) {
	records := []model.ProblemRecordModel{
		rec(model.DifficultyEasy, "Google", daysAgo(0)),
		rec(model.DifficultyEasy, "Google", daysAgo(1)),
		rec(model.DifficultyEasy, "Google", daysAgo(2)),
		rec(model.DifficultyEasy, "Google", daysAgo(10)),
	}

	out := Compute(records, testNow)

	if out.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d; want 3", out.LongestStreak)
	}
}

func TestCompute_SingleRecordToday(t *testing.T) {
	records := []model.ProblemRecordModel{
		rec(model.DifficultyHard, "Meta", daysAgo(0)),
	}

	out := Compute(records, testNow)

	if out.CurrentStreak != 1 || out.LongestStreak != 1 {
		t.Errorf("streaks = %d/%d; want 1/1", out.CurrentStreak, out.LongestStreak)
	}
}

func TestCompute_MultipleSolvesSameDayCountOnceForStreaks(t *testing.T) {
	records := []model.ProblemRecordModel{
		rec(model.DifficultyEasy, "Google", daysAgo(0)),
		rec(model.DifficultyEasy, "Google", daysAgo(0).Add(-2*time.Hour)),
		rec(model.DifficultyEasy, "Google", daysAgo(1)),
	}

	out := Compute(records, testNow)

	if out.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d; want 2", out.CurrentStreak)
	}
	if out.LongestStreak != 2 {
		t.Errorf("LongestStreak = %d; want 2", out.LongestStreak)
	}
}

func TestCompute_AuxiliaryCounters(t *testing.T) {
	r1 := rec(model.DifficultyEasy, "Google", daysAgo(0))
	r1.ProblemRecordIsBookmarked = true
	r1.ProblemRecordTimeSpent = 25
	r2 := rec(model.DifficultyMedium, "Amazon", daysAgo(1))
	r2.ProblemRecordTimeSpent = 40

	out := Compute([]model.ProblemRecordModel{r1, r2}, testNow)

	if out.BookmarkedCount != 1 {
		t.Errorf("BookmarkedCount = %d; want 1", out.BookmarkedCount)
	}
	if out.TotalTimeSpent != 65 {
		t.Errorf("TotalTimeSpent = %d; want 65", out.TotalTimeSpent)
	}
}

func TestCompute_RecentlySolved(t *testing.T) {
	var records []model.ProblemRecordModel
	for i := 0; i < 7; i++ {
		r := rec(model.DifficultyEasy, "Google", daysAgo(i))
		r.ProblemRecordTitle = fmt.Sprintf("problem-%d", i)
		records = append(records, r)
	}

	out := Compute(records, testNow)

	if len(out.RecentlySolved) != 5 {
		t.Fatalf("RecentlySolved length = %d; want 5", len(out.RecentlySolved))
	}
	if out.RecentlySolved[0].Title != "problem-0" {
		t.Errorf("RecentlySolved[0] = %s; want problem-0", out.RecentlySolved[0].Title)
	}
	for i := 1; i < len(out.RecentlySolved); i++ {
		if out.RecentlySolved[i].SolvedAt.After(out.RecentlySolved[i-1].SolvedAt) {
			t.Errorf("RecentlySolved not in descending solved_at order at %d", i)
		}
	}
}
