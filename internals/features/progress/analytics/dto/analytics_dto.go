package dto

import "time"

// DifficultyStats is always zero-filled for all three buckets.
type DifficultyStats struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

type CompanyCount struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
}

// TimelinePoint is one calendar day of the 30-day window. Cumulative carries
// the running total including everything solved before the window.
type TimelinePoint struct {
	Date       string `json:"date"` // YYYY-MM-DD, UTC day
	Count      int    `json:"count"`
	Cumulative int    `json:"cumulative"`
}

type RecentSolve struct {
	Title      string    `json:"title"`
	Difficulty string    `json:"difficulty"`
	Company    string    `json:"company"`
	SolvedAt   time.Time `json:"solved_at"`
}

// AnalyticsResponse is the full dashboard statistics object.
type AnalyticsResponse struct {
	TotalSolved     int             `json:"total_solved"`
	DifficultyStats DifficultyStats `json:"difficulty_stats"`
	TopCompanies    []CompanyCount  `json:"top_companies"`
	Timeline        []TimelinePoint `json:"progress_timeline"`
	CurrentStreak   int             `json:"current_streak"`
	LongestStreak   int             `json:"longest_streak"`
	BookmarkedCount int             `json:"bookmarked_count"`
	TotalTimeSpent  int             `json:"total_time_spent"`
	RecentlySolved  []RecentSolve   `json:"recently_solved"`
}
