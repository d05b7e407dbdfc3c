package dto

import "time"

// RecordMeta carries the descriptive fields used when a record has to be
// materialized as part of an upsert. On updates only the operation's own
// payload is authoritative; meta never overwrites existing metadata.
type RecordMeta struct {
	Title        string   `json:"title"`
	Difficulty   string   `json:"difficulty"`
	Company      string   `json:"company"`
	Duration     string   `json:"duration"`
	ExternalLink string   `json:"external_link"`
	Tags         []string `json:"tags"`
}

// MarkSolvedRequest is the payload for POST /api/progress/mark-solved.
type MarkSolvedRequest struct {
	ProblemID    string   `json:"problem_id" validate:"required"`
	Title        string   `json:"title" validate:"required"`
	Difficulty   string   `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	Company      string   `json:"company" validate:"required"`
	Duration     string   `json:"duration" validate:"required"`
	ExternalLink string   `json:"external_link"`
	Tags         []string `json:"tags"`
	Notes        string   `json:"notes"`
	TimeSpent    int      `json:"time_spent" validate:"gte=0"`
}

// UpsertProgressRequest is the legacy POST /api/progress payload where the
// whole metadata set is authoritative on every write.
type UpsertProgressRequest struct {
	ProblemID  string     `json:"problem_id" validate:"required"`
	Title      string     `json:"problem_title" validate:"required"`
	Company    string     `json:"company" validate:"required"`
	Duration   string     `json:"duration" validate:"required"`
	Difficulty string     `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	Attempted  *bool      `json:"attempted"`
	DateSolved *time.Time `json:"date_solved"`
}

// SaveNotesRequest is the payload for PUT /api/progress/notes/:problemId.
type SaveNotesRequest struct {
	Notes string `json:"notes"`
	RecordMeta
}

// AddSnippetRequest is the payload for POST /api/progress/snippet/:problemId.
type AddSnippetRequest struct {
	Title    string `json:"title"`
	Language string `json:"language"`
	Code     string `json:"code" validate:"required"`
	RecordMeta
}

// ToggleBookmarkRequest optionally carries metadata for lazy creation.
type ToggleBookmarkRequest struct {
	RecordMeta
}

// ToggleRevisionRequest sets or flips the revision-queue flag. A nil
// InRevisionQueue means "flip whatever is there"; NextReview is only written
// when supplied.
type ToggleRevisionRequest struct {
	InRevisionQueue *bool      `json:"in_revision_queue"`
	NextReview      *time.Time `json:"next_review"`
}
