package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	analyticsController "leetrack_backend/internals/features/progress/analytics/controller"
	recordController "leetrack_backend/internals/features/progress/record/controller"
	authMiddleware "leetrack_backend/internals/middlewares/auth"
)

func ProgressRoutes(app *fiber.App, db *gorm.DB) {
	records := recordController.NewRecordController(db)
	analytics := analyticsController.NewAnalyticsController(db)

	progress := app.Group("/api/progress", authMiddleware.AuthMiddleware(db))

	// static paths first, the company/duration wildcard pair last
	progress.Get("/", records.GetAll)
	progress.Post("/", records.UpsertProgress)
	progress.Get("/stats/all", records.StatsAll)
	progress.Get("/analytics", analytics.Get)

	progress.Post("/mark-solved", records.MarkSolved)
	progress.Delete("/unmark-solved/:problemId", records.UnmarkSolved)
	progress.Get("/solved-problems", records.ListSolved)
	progress.Get("/check-solved/:problemId", records.CheckSolved)

	progress.Post("/toggle-bookmark/:problemId", records.ToggleBookmark)
	progress.Get("/bookmarks", records.ListBookmarks)

	progress.Put("/notes/:problemId", records.SaveNotes)
	progress.Post("/snippet/:problemId", records.AddSnippet)
	progress.Delete("/snippet/:problemId/:snippetId", records.DeleteSnippet)

	progress.Post("/revision/:problemId", records.ToggleRevision)
	progress.Get("/revision-queue", records.ListRevisionQueue)

	progress.Delete("/:problemId", records.DeleteProgress)
	progress.Get("/:company/:duration", records.GetByCompanyDuration)
}
