package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authHelper "leetrack_backend/internals/features/users/auth/helper"
	"leetrack_backend/internals/features/progress/record/dto"
	"leetrack_backend/internals/features/progress/record/service"
	helper "leetrack_backend/internals/helpers"
)

type RecordController struct {
	DB      *gorm.DB
	Service *service.RecordService
}

func NewRecordController(db *gorm.DB) *RecordController {
	return &RecordController{DB: db, Service: service.NewRecordService(db)}
}

// respondServiceError maps service failures onto the JSON envelope.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrRecordNotFound),
		errors.Is(err, service.ErrSnippetNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidDifficulty):
		return helper.JsonValidationError(c, map[string][]string{
			"difficulty": {"must be one of Easy Medium Hard"},
		})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return helper.JsonError(c, fiber.StatusConflict, "Record already exists")
	default:
		log.Println("[ERROR] record service:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server error")
	}
}

/* ==========================
   Legacy progress surface
========================== */

// GET /api/progress
func (ctrl *RecordController) GetAll(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	recs, err := ctrl.Service.ListAll(userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"count":    len(recs),
		"progress": recs,
	})
}

// GET /api/progress/:company/:duration
func (ctrl *RecordController) GetByCompanyDuration(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	recs, err := ctrl.Service.ListByCompanyDuration(userID, c.Params("company"), c.Params("duration"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"count":    len(recs),
		"progress": recs,
	})
}

// POST /api/progress
func (ctrl *RecordController) UpsertProgress(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpsertProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := authHelper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, authHelper.FormatValidationErrors(err))
	}

	rec, created, err := ctrl.Service.UpsertProgress(userID, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	if created {
		return helper.JsonCreated(c, "Progress saved", rec)
	}
	return helper.JsonUpdated(c, "Progress saved", rec)
}

// DELETE /api/progress/:problemId
func (ctrl *RecordController) DeleteProgress(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	if err := ctrl.Service.UnmarkSolved(userID, c.Params("problemId")); err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Progress deleted", nil)
}

// GET /api/progress/stats/all
func (ctrl *RecordController) StatsAll(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	total, byDifficulty, byCompany, err := ctrl.Service.StatsAll(userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"total_solved":  total,
		"by_difficulty": byDifficulty,
		"by_company":    byCompany,
	})
}

/* ==========================
   Solve lifecycle
========================== */

// POST /api/progress/mark-solved
func (ctrl *RecordController) MarkSolved(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.MarkSolvedRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := authHelper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, authHelper.FormatValidationErrors(err))
	}

	rec, created, err := ctrl.Service.MarkSolved(userID, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	if created {
		return helper.JsonCreated(c, "Problem marked as solved!", rec)
	}
	return helper.JsonUpdated(c, "Problem updated successfully", rec)
}

// DELETE /api/progress/unmark-solved/:problemId
func (ctrl *RecordController) UnmarkSolved(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	if err := ctrl.Service.UnmarkSolved(userID, c.Params("problemId")); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Problem not found in your solved list")
		}
		return respondServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Problem unmarked successfully", nil)
}

// GET /api/progress/solved-problems
func (ctrl *RecordController) ListSolved(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 50, 200)
	recs, total, err := ctrl.Service.ListSolved(userID, paging.Offset, paging.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "ok", recs, &pagination)
}

// GET /api/progress/check-solved/:problemId
func (ctrl *RecordController) CheckSolved(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	rec, err := ctrl.Service.CheckSolved(userID, c.Params("problemId"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"is_solved": rec != nil,
		"problem":   rec, // null when untracked
	})
}

/* ==========================
   Bookmark / notes / revision
========================== */

// POST /api/progress/toggle-bookmark/:problemId
func (ctrl *RecordController) ToggleBookmark(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ToggleBookmarkRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}

	rec, err := ctrl.Service.ToggleBookmark(userID, c.Params("problemId"), req.RecordMeta)
	if err != nil {
		return respondServiceError(c, err)
	}
	msg := "Bookmark removed"
	if rec.ProblemRecordIsBookmarked {
		msg = "Bookmark added"
	}
	return helper.JsonUpdated(c, msg, rec)
}

// GET /api/progress/bookmarks
func (ctrl *RecordController) ListBookmarks(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	recs, err := ctrl.Service.ListBookmarks(userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", recs)
}

// PUT /api/progress/notes/:problemId
func (ctrl *RecordController) SaveNotes(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SaveNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	rec, err := ctrl.Service.SaveNotes(userID, c.Params("problemId"), req.Notes, req.RecordMeta)
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Notes saved", rec)
}

// POST /api/progress/revision/:problemId
func (ctrl *RecordController) ToggleRevision(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ToggleRevisionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}

	rec, err := ctrl.Service.ToggleRevision(userID, c.Params("problemId"), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	msg := "Removed from revision queue"
	if rec.ProblemRecordInRevisionQueue {
		msg = "Added to revision queue"
	}
	return helper.JsonUpdated(c, msg, rec)
}

// GET /api/progress/revision-queue
func (ctrl *RecordController) ListRevisionQueue(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	recs, err := ctrl.Service.ListRevisionQueue(userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", recs)
}

/* ==========================
   Snippets
========================== */

// POST /api/progress/snippet/:problemId
func (ctrl *RecordController) AddSnippet(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.AddSnippetRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := authHelper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, authHelper.FormatValidationErrors(err))
	}

	rec, sn, err := ctrl.Service.AddSnippet(userID, c.Params("problemId"), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonCreated(c, "Snippet added", fiber.Map{
		"snippet": sn,
		"problem": rec,
	})
}

// DELETE /api/progress/snippet/:problemId/:snippetId
func (ctrl *RecordController) DeleteSnippet(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	rec, err := ctrl.Service.DeleteSnippet(userID, c.Params("problemId"), c.Params("snippetId"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Snippet deleted", rec)
}
