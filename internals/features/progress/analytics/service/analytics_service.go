package service

import (
	"sort"
	"time"

	"leetrack_backend/internals/features/progress/analytics/dto"
	"leetrack_backend/internals/features/progress/record/model"
)

const (
	timelineDays = 30
	topCompanies = 10
	recentSolves = 5
)

// Compute derives the full dashboard statistics object from one user's
// records. Pure function of its inputs; now is injected so tests can pin the
// clock. All calendar-day bucketing uses the UTC day boundary.
func Compute(records []model.ProblemRecordModel, now time.Time) dto.AnalyticsResponse {
	now = now.UTC()

	out := dto.AnalyticsResponse{
		TotalSolved:  len(records),
		TopCompanies: []dto.CompanyCount{},
		Timeline:     make([]dto.TimelinePoint, 0, timelineDays),
	}

	for _, r := range records {
		switch r.ProblemRecordDifficulty {
		case model.DifficultyEasy:
			out.DifficultyStats.Easy++
		case model.DifficultyMedium:
			out.DifficultyStats.Medium++
		case model.DifficultyHard:
			out.DifficultyStats.Hard++
		}
		if r.ProblemRecordIsBookmarked {
			out.BookmarkedCount++
		}
		out.TotalTimeSpent += r.ProblemRecordTimeSpent
	}

	out.TopCompanies = rankCompanies(records)
	out.Timeline = buildTimeline(records, now)
	out.CurrentStreak, out.LongestStreak = computeStreaks(records, now)
	out.RecentlySolved = recentlySolved(records)

	return out
}

// rankCompanies groups by company and keeps the ten biggest buckets. The
// descending sort is stable so ties keep first-seen order.
func rankCompanies(records []model.ProblemRecordModel) []dto.CompanyCount {
	counts := map[string]int{}
	order := []string{}
	for _, r := range records {
		if _, seen := counts[r.ProblemRecordCompany]; !seen {
			order = append(order, r.ProblemRecordCompany)
		}
		counts[r.ProblemRecordCompany]++
	}

	ranked := make([]dto.CompanyCount, 0, len(order))
	for _, company := range order {
		ranked = append(ranked, dto.CompanyCount{Company: company, Count: counts[company]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > topCompanies {
		ranked = ranked[:topCompanies]
	}
	return ranked
}

// buildTimeline produces one point per day for the 30 days ending today. The
// cumulative series is seeded with everything solved before the window so the
// last point reconstructs the grand total.
func buildTimeline(records []model.ProblemRecordModel, now time.Time) []dto.TimelinePoint {
	perDay := map[string]int{}
	windowStart := dayOf(now).AddDate(0, 0, -(timelineDays - 1))
	inWindow := 0
	for _, r := range records {
		day := dayOf(r.ProblemRecordSolvedAt)
		if day.Before(windowStart) {
			continue
		}
		perDay[day.Format("2006-01-02")]++
		inWindow++
	}

	timeline := make([]dto.TimelinePoint, 0, timelineDays)
	cumulative := len(records) - inWindow
	for i := timelineDays - 1; i >= 0; i-- {
		day := dayOf(now).AddDate(0, 0, -i)
		dateStr := day.Format("2006-01-02")
		daily := perDay[dateStr]
		cumulative += daily
		timeline = append(timeline, dto.TimelinePoint{
			Date:       dateStr,
			Count:      daily,
			Cumulative: cumulative,
		})
	}
	return timeline
}

// computeStreaks walks the distinct set of active days. The current streak
// only counts when the latest active day is today or yesterday; the longest
// streak is the longest run of consecutive days anywhere in the set.
func computeStreaks(records []model.ProblemRecordModel, now time.Time) (current, longest int) {
	daySet := map[time.Time]struct{}{}
	for _, r := range records {
		daySet[dayOf(r.ProblemRecordSolvedAt)] = struct{}{}
	}
	if len(daySet) == 0 {
		return 0, 0
	}

	days := make([]time.Time, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	today := dayOf(now)
	yesterday := today.AddDate(0, 0, -1)

	latest := days[len(days)-1]
	if latest.Equal(today) || latest.Equal(yesterday) {
		current = 1
		for i := len(days) - 2; i >= 0; i-- {
			if days[i].Equal(days[i+1].AddDate(0, 0, -1)) {
				current++
			} else {
				break
			}
		}
	}

	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return current, longest
}

// recentlySolved picks the five newest solves.
func recentlySolved(records []model.ProblemRecordModel) []dto.RecentSolve {
	sorted := make([]model.ProblemRecordModel, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ProblemRecordSolvedAt.After(sorted[j].ProblemRecordSolvedAt)
	})
	if len(sorted) > recentSolves {
		sorted = sorted[:recentSolves]
	}

	recent := make([]dto.RecentSolve, 0, len(sorted))
	for _, r := range sorted {
		recent = append(recent, dto.RecentSolve{
			Title:      r.ProblemRecordTitle,
			Difficulty: r.ProblemRecordDifficulty,
			Company:    r.ProblemRecordCompany,
			SolvedAt:   r.ProblemRecordSolvedAt,
		})
	}
	return recent
}

// dayOf truncates to the UTC calendar day.
func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
