package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Difficulty values accepted on a problem record
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

func IsValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// CodeSnippet is one embedded solution snapshot. The ID is assigned once at
// append time and never changes, so deletes by ID stay correct.
type CodeSnippet struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Language  string    `json:"language"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// ProblemRecordModel represents the problem_records table: one row per user
// per problem, materialized lazily on the first touch (solve, bookmark, note
// or snippet).
type ProblemRecordModel struct {
	ProblemRecordID     uuid.UUID `gorm:"column:problem_record_id;type:uuid;primaryKey" json:"problem_record_id"`
	ProblemRecordUserID uuid.UUID `gorm:"column:problem_record_user_id;type:uuid;not null;uniqueIndex:uq_problem_records_user_problem,priority:1;index:idx_problem_records_user_solved,priority:1;index:idx_problem_records_user_company,priority:1;index:idx_problem_records_user_difficulty,priority:1" json:"user_id"`

	ProblemRecordProblemID string `gorm:"column:problem_record_problem_id;size:120;not null;uniqueIndex:uq_problem_records_user_problem,priority:2" json:"problem_id"`

	ProblemRecordTitle        string                         `gorm:"column:problem_record_title;size:255;not null" json:"title"`
	ProblemRecordDifficulty   string                         `gorm:"column:problem_record_difficulty;size:10;not null;index:idx_problem_records_user_difficulty,priority:2" json:"difficulty"`
	ProblemRecordCompany      string                         `gorm:"column:problem_record_company;size:120;not null;index:idx_problem_records_user_company,priority:2" json:"company"`
	ProblemRecordDuration     string                         `gorm:"column:problem_record_duration;size:30;not null" json:"duration"`
	ProblemRecordExternalLink string                         `gorm:"column:problem_record_external_link;size:500" json:"external_link"`
	ProblemRecordTags         datatypes.JSONSlice[string]    `gorm:"column:problem_record_tags" json:"tags"`
	ProblemRecordNotes        string                         `gorm:"column:problem_record_notes;type:text;not null;default:''" json:"notes"`
	ProblemRecordCodeSnippets datatypes.JSONSlice[CodeSnippet] `gorm:"column:problem_record_code_snippets" json:"code_snippets"`

	ProblemRecordAttempted       bool       `gorm:"column:problem_record_attempted;not null;default:true" json:"attempted"`
	ProblemRecordInRevisionQueue bool       `gorm:"column:problem_record_in_revision_queue;not null;default:false" json:"in_revision_queue"`
	ProblemRecordNextReview      *time.Time `gorm:"column:problem_record_next_review" json:"next_review"`
	ProblemRecordIsBookmarked    bool       `gorm:"column:problem_record_is_bookmarked;not null;default:false" json:"is_bookmarked"`
	ProblemRecordTimeSpent       int        `gorm:"column:problem_record_time_spent;not null;default:0" json:"time_spent"`

	ProblemRecordSolvedAt time.Time `gorm:"column:problem_record_solved_at;not null;index:idx_problem_records_user_solved,priority:2,sort:desc" json:"solved_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ProblemRecordModel) TableName() string {
	return "problem_records"
}

// BeforeCreate fills the primary key so inserts work the same on Postgres and
// the SQLite test database.
func (m *ProblemRecordModel) BeforeCreate(tx *gorm.DB) error {
	if m.ProblemRecordID == uuid.Nil {
		m.ProblemRecordID = uuid.New()
	}
	if m.ProblemRecordSolvedAt.IsZero() {
		m.ProblemRecordSolvedAt = time.Now().UTC()
	}
	return nil
}
