package audit

import (
	"strconv"

	"bayhomes-backend/internal/models"
	"bayhomes-backend/internal/query"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"createdAt":  "created_at",
	"entityType": "entity_type",
	"action":     "action",
}

func ListAuditLogsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := query.FromCtx(c)

		q := db.Model(&models.AuditLog{})
		if entityType := c.Query("entityType"); entityType != "" {
			q = q.Where("entity_type = ?", entityType)
		}
		if entityID := c.Query("entityId"); entityID != "" {
			q = q.Where("entity_id = ?", entityID)
		}

		var total int64
		if err := q.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		var logs []models.AuditLog
		q = q.Order(page.OrderClause(sortColumns, "created_at DESC")).Offset(page.Offset())
		if limit := page.Limit(); limit > 0 {
			q = q.Limit(limit)
		}
		if err := q.Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		c.Set("x-total-count", strconv.FormatInt(total, 10))
		c.Set("Access-Control-Expose-Headers", "x-total-count")
		return c.JSON(logs)
	}
}
