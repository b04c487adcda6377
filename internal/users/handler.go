package users

import (
	"errors"
	"strconv"
	"strings"

	"bayhomes-backend/internal/models"
	"bayhomes-backend/internal/query"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateUserRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

var sortColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"createdAt": "created_at",
}

func ListUsersHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := query.FromCtx(c)

		var total int64
		if err := db.Model(&models.User{}).Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		q := db.Order(page.OrderClause(sortColumns, "created_at DESC")).Offset(page.Offset())
		if limit := page.Limit(); limit > 0 {
			q = q.Limit(limit)
		}
		var users []models.User
		if err := q.Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		c.Set("x-total-count", strconv.FormatInt(total, 10))
		c.Set("Access-Control-Expose-Headers", "x-total-count")
		return c.JSON(users)
	}
}

func GetUserHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var user models.User
		err := db.First(&user, "id = ?", c.Params("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(user)
	}
}

// CreateUserHandler is create-or-fetch: posting an email that already exists
// returns the stored user instead of failing, so sign-in flows can call it
// unconditionally.
func CreateUserHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.Email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "email is required")
		}

		var existing models.User
		err := db.First(&existing, "email = ?", body.Email).Error
		if err == nil {
			return c.JSON(existing)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		user := models.User{
			ID:     uuid.NewString(),
			Name:   body.Name,
			Email:  body.Email,
			Avatar: body.Avatar,
			Role:   models.RoleMember,
		}
		if err := db.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		return c.Status(fiber.StatusCreated).JSON(user)
	}
}
