package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	analyticsService "leetrack_backend/internals/features/progress/analytics/service"
	recordService "leetrack_backend/internals/features/progress/record/service"
	helper "leetrack_backend/internals/helpers"
)

type AnalyticsController struct {
	DB      *gorm.DB
	Records *recordService.RecordService
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db, Records: recordService.NewRecordService(db)}
}

// GET /api/progress/analytics
// Loads the full record set for the user and runs the pure computation over
// it; the input is bounded by one user's solve count.
func (ctrl *AnalyticsController) Get(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	records, err := ctrl.Records.ListAll(userID)
	if err != nil {
		log.Println("[ERROR] analytics load failed:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server error")
	}

	analytics := analyticsService.Compute(records, time.Now())
	return helper.JsonOK(c, "ok", analytics)
}
