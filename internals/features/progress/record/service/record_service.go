package service

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"leetrack_backend/internals/features/progress/record/dto"
	"leetrack_backend/internals/features/progress/record/model"
)

// Service-level failures; controllers map these onto HTTP statuses.
var (
	ErrRecordNotFound    = errors.New("problem record not found")
	ErrSnippetNotFound   = errors.New("code snippet not found")
	ErrInvalidDifficulty = errors.New("difficulty must be Easy, Medium or Hard")
)

// Defaults applied when a record is materialized by an operation that does
// not carry full metadata (bookmark toggle, note save, snippet add).
const (
	defaultCompany  = "unknown"
	defaultDuration = "all"

	defaultSnippetTitle    = "Solution"
	defaultSnippetLanguage = "javascript"
)

type RecordService struct {
	DB *gorm.DB
}

func NewRecordService(db *gorm.DB) *RecordService {
	return &RecordService{DB: db}
}

/* ==========================
   getOrCreate primitive
========================== */

// getOrCreate fetches the (user, problem) record or materializes it with
// defaulted fields. Every lazy-upsert operation goes through here so default
// filling lives in exactly one place. A concurrent duplicate insert is
// resolved by re-reading the row the other writer won with.
func (s *RecordService) getOrCreate(userID uuid.UUID, problemID string, meta dto.RecordMeta) (*model.ProblemRecordModel, bool, error) {
	var rec model.ProblemRecordModel
	err := s.DB.Where("problem_record_user_id = ? AND problem_record_problem_id = ?", userID, problemID).
		First(&rec).Error
	if err == nil {
		return &rec, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	difficulty := meta.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyEasy
	}
	if !model.IsValidDifficulty(difficulty) {
		return nil, false, ErrInvalidDifficulty
	}

	title := meta.Title
	if title == "" {
		title = problemID
	}
	company := meta.Company
	if company == "" {
		company = defaultCompany
	}
	duration := meta.Duration
	if duration == "" {
		duration = defaultDuration
	}

	rec = model.ProblemRecordModel{
		ProblemRecordUserID:       userID,
		ProblemRecordProblemID:    problemID,
		ProblemRecordTitle:        title,
		ProblemRecordDifficulty:   difficulty,
		ProblemRecordCompany:      company,
		ProblemRecordDuration:     duration,
		ProblemRecordExternalLink: meta.ExternalLink,
		ProblemRecordTags:         meta.Tags,
		ProblemRecordSolvedAt:     time.Now().UTC(),
	}
	if err := s.DB.Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost the race; the row exists now
			var existing model.ProblemRecordModel
			if ferr := s.DB.Where("problem_record_user_id = ? AND problem_record_problem_id = ?", userID, problemID).
				First(&existing).Error; ferr == nil {
				return &existing, false, nil
			}
			return nil, false, err
		}
		return nil, false, err
	}
	return &rec, true, nil
}

/* ==========================
   Solve lifecycle
========================== */

// MarkSolved upserts the record. On update only non-zero notes/time_spent
// overwrite what is stored; solved_at is always refreshed.
func (s *RecordService) MarkSolved(userID uuid.UUID, req dto.MarkSolvedRequest) (*model.ProblemRecordModel, bool, error) {
	if !model.IsValidDifficulty(req.Difficulty) {
		return nil, false, ErrInvalidDifficulty
	}

	rec, created, err := s.getOrCreate(userID, req.ProblemID, dto.RecordMeta{
		Title:        req.Title,
		Difficulty:   req.Difficulty,
		Company:      req.Company,
		Duration:     req.Duration,
		ExternalLink: req.ExternalLink,
		Tags:         req.Tags,
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		rec.ProblemRecordNotes = req.Notes
		rec.ProblemRecordTimeSpent = req.TimeSpent
	} else {
		if req.Notes != "" {
			rec.ProblemRecordNotes = req.Notes
		}
		if req.TimeSpent != 0 {
			rec.ProblemRecordTimeSpent = req.TimeSpent
		}
	}
	rec.ProblemRecordAttempted = true
	rec.ProblemRecordSolvedAt = time.Now().UTC()

	if err := s.DB.Save(rec).Error; err != nil {
		log.Println("[ERROR] MarkSolved save failed:", err)
		return nil, false, err
	}
	return rec, created, nil
}

// UpsertProgress is the older write path where every metadata field from the
// payload is authoritative.
func (s *RecordService) UpsertProgress(userID uuid.UUID, req dto.UpsertProgressRequest) (*model.ProblemRecordModel, bool, error) {
	if !model.IsValidDifficulty(req.Difficulty) {
		return nil, false, ErrInvalidDifficulty
	}

	rec, created, err := s.getOrCreate(userID, req.ProblemID, dto.RecordMeta{
		Title:      req.Title,
		Difficulty: req.Difficulty,
		Company:    req.Company,
		Duration:   req.Duration,
	})
	if err != nil {
		return nil, false, err
	}

	rec.ProblemRecordTitle = req.Title
	rec.ProblemRecordCompany = req.Company
	rec.ProblemRecordDuration = req.Duration
	rec.ProblemRecordDifficulty = req.Difficulty
	if req.Attempted != nil {
		rec.ProblemRecordAttempted = *req.Attempted
	}
	if req.DateSolved != nil {
		rec.ProblemRecordSolvedAt = req.DateSolved.UTC()
	} else if !created {
		rec.ProblemRecordSolvedAt = time.Now().UTC()
	}

	if err := s.DB.Save(rec).Error; err != nil {
		return nil, false, err
	}
	return rec, created, nil
}

// UnmarkSolved removes the record entirely.
func (s *RecordService) UnmarkSolved(userID uuid.UUID, problemID string) error {
	res := s.DB.Where("problem_record_user_id = ? AND problem_record_problem_id = ?", userID, problemID).
		Delete(&model.ProblemRecordModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// CheckSolved returns the record, or nil when the pair is untracked. Absence
// is a normal answer here, not an error.
func (s *RecordService) CheckSolved(userID uuid.UUID, problemID string) (*model.ProblemRecordModel, error) {
	var rec model.ProblemRecordModel
	err := s.DB.Where("problem_record_user_id = ? AND problem_record_problem_id = ?", userID, problemID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

/* ==========================
   Bookmark / notes / revision
========================== */

// ToggleBookmark flips the flag, creating the record bookmarked when absent.
func (s *RecordService) ToggleBookmark(userID uuid.UUID, problemID string, meta dto.RecordMeta) (*model.ProblemRecordModel, error) {
	rec, created, err := s.getOrCreate(userID, problemID, meta)
	if err != nil {
		return nil, err
	}

	if created {
		rec.ProblemRecordIsBookmarked = true
	} else {
		rec.ProblemRecordIsBookmarked = !rec.ProblemRecordIsBookmarked
	}
	if err := s.DB.Save(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// SaveNotes upserts the record and overwrites notes. Metadata from the call
// only feeds record creation; it never touches stored metadata.
func (s *RecordService) SaveNotes(userID uuid.UUID, problemID, notes string, meta dto.RecordMeta) (*model.ProblemRecordModel, error) {
	rec, _, err := s.getOrCreate(userID, problemID, meta)
	if err != nil {
		return nil, err
	}

	rec.ProblemRecordNotes = notes
	if err := s.DB.Save(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// ToggleRevision sets the revision-queue flag explicitly when the request
// carries one, otherwise flips it. Requires an existing record.
func (s *RecordService) ToggleRevision(userID uuid.UUID, problemID string, req dto.ToggleRevisionRequest) (*model.ProblemRecordModel, error) {
	var rec model.ProblemRecordModel
	err := s.DB.Where("problem_record_user_id = ? AND problem_record_problem_id = ?", userID, problemID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.InRevisionQueue != nil {
		rec.ProblemRecordInRevisionQueue = *req.InRevisionQueue
	} else {
		rec.ProblemRecordInRevisionQueue = !rec.ProblemRecordInRevisionQueue
	}
	if req.NextReview != nil {
		t := req.NextReview.UTC()
		rec.ProblemRecordNextReview = &t
	}

	if err := s.DB.Save(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

/* ==========================
   Snippets
========================== */

// AddSnippet upserts the record, then appends the snippet with a fresh stable
// ID. Insertion order is preserved; snippets are never reordered.
func (s *RecordService) AddSnippet(userID uuid.UUID, problemID string, req dto.AddSnippetRequest) (*model.ProblemRecordModel, *model.CodeSnippet, error) {
	rec, _, err := s.getOrCreate(userID, problemID, req.RecordMeta)
	if err != nil {
		return nil, nil, err
	}

	sn := model.CodeSnippet{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Language:  req.Language,
		Code:      req.Code,
		CreatedAt: time.Now().UTC(),
	}
	if sn.Title == "" {
		sn.Title = defaultSnippetTitle
	}
	if sn.Language == "" {
		sn.Language = defaultSnippetLanguage
	}

	rec.ProblemRecordCodeSnippets = append(rec.ProblemRecordCodeSnippets, sn)
	if err := s.DB.Save(rec).Error; err != nil {
		return nil, nil, err
	}
	return rec, &sn, nil
}

// DeleteSnippet removes the snippet with the matching ID. Both the record and
// the snippet must exist.
func (s *RecordService) DeleteSnippet(userID uuid.UUID, problemID, snippetID string) (*model.ProblemRecordModel, error) {
	var rec model.ProblemRecordModel
	err := s.DB.Where("problem_record_user_id = ? AND problem_record_problem_id = ?", userID, problemID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	kept := rec.ProblemRecordCodeSnippets[:0:0]
	found := false
	for _, sn := range rec.ProblemRecordCodeSnippets {
		if sn.ID == snippetID {
			found = true
			continue
		}
		kept = append(kept, sn)
	}
	if !found {
		return nil, ErrSnippetNotFound
	}

	rec.ProblemRecordCodeSnippets = kept
	if err := s.DB.Save(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

/* ==========================
   Projections
========================== */

// ListAll returns every record of the user, newest solve first.
func (s *RecordService) ListAll(userID uuid.UUID) ([]model.ProblemRecordModel, error) {
	var recs []model.ProblemRecordModel
	err := s.DB.Where("problem_record_user_id = ?", userID).
		Order("problem_record_solved_at DESC").
		Find(&recs).Error
	return recs, err
}

// ListByCompanyDuration filters on the company/duration bucket pair.
func (s *RecordService) ListByCompanyDuration(userID uuid.UUID, company, duration string) ([]model.ProblemRecordModel, error) {
	var recs []model.ProblemRecordModel
	err := s.DB.Where("problem_record_user_id = ? AND problem_record_company = ? AND problem_record_duration = ?",
		userID, company, duration).
		Order("problem_record_solved_at DESC").
		Find(&recs).Error
	return recs, err
}

// ListSolved returns a solved_at-descending page plus the total count.
func (s *RecordService) ListSolved(userID uuid.UUID, offset, limit int) ([]model.ProblemRecordModel, int64, error) {
	var total int64
	if err := s.DB.Model(&model.ProblemRecordModel{}).
		Where("problem_record_user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recs []model.ProblemRecordModel
	q := s.DB.Where("problem_record_user_id = ?", userID).
		Order("problem_record_solved_at DESC")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}

// ListBookmarks returns the bookmarked records.
func (s *RecordService) ListBookmarks(userID uuid.UUID) ([]model.ProblemRecordModel, error) {
	var recs []model.ProblemRecordModel
	err := s.DB.Where("problem_record_user_id = ? AND problem_record_is_bookmarked = ?", userID, true).
		Find(&recs).Error
	return recs, err
}

// ListRevisionQueue returns queued records, soonest review first, records
// without a date last.
func (s *RecordService) ListRevisionQueue(userID uuid.UUID) ([]model.ProblemRecordModel, error) {
	var recs []model.ProblemRecordModel
	err := s.DB.Where("problem_record_user_id = ? AND problem_record_in_revision_queue = ?", userID, true).
		Order("problem_record_next_review IS NULL, problem_record_next_review ASC").
		Find(&recs).Error
	return recs, err
}

/* ==========================
   Grouped counts (legacy stats)
========================== */

type CountBucket struct {
	Key   string `json:"key" gorm:"column:key"`
	Count int64  `json:"count" gorm:"column:count"`
}

// StatsAll backs GET /progress/stats/all with store-side grouping.
func (s *RecordService) StatsAll(userID uuid.UUID) (total int64, byDifficulty, byCompany []CountBucket, err error) {
	if err = s.DB.Model(&model.ProblemRecordModel{}).
		Where("problem_record_user_id = ?", userID).
		Count(&total).Error; err != nil {
		return
	}

	if err = s.DB.Model(&model.ProblemRecordModel{}).
		Select("problem_record_difficulty AS key, COUNT(*) AS count").
		Where("problem_record_user_id = ?", userID).
		Group("problem_record_difficulty").
		Scan(&byDifficulty).Error; err != nil {
		return
	}

	err = s.DB.Model(&model.ProblemRecordModel{}).
		Select("problem_record_company AS key, COUNT(*) AS count").
		Where("problem_record_user_id = ?", userID).
		Group("problem_record_company").
		Order("count DESC").
		Scan(&byCompany).Error
	return
}
