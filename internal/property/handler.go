package property

import (
	"strconv"

	"bayhomes-backend/internal/apperr"
	"bayhomes-backend/internal/query"

	"github.com/gofiber/fiber/v2"
)

func ListPropertiesHandler(repo *Repo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := Filter{
			TitleLike:    c.Query("title_like"),
			PropertyType: c.Query("propertyType"),
		}

		properties, total, err := repo.List(filter, query.FromCtx(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		c.Set("x-total-count", strconv.FormatInt(total, 10))
		c.Set("Access-Control-Expose-Headers", "x-total-count")
		return c.JSON(properties)
	}
}

func GetPropertyHandler(repo *Repo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := repo.GetDetail(c.Params("id"))
		if err != nil {
			return apperr.ToFiber(err)
		}
		return c.JSON(p)
	}
}

func CreatePropertyHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePropertyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if _, err := svc.Create(body); err != nil {
			return apperr.ToFiber(err)
		}

		return c.JSON(fiber.Map{"message": "Property created successfully"})
	}
}

func UpdatePropertyHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdatePropertyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		p, err := svc.Update(c.Params("id"), body)
		if err != nil {
			return apperr.ToFiber(err)
		}

		if body.Status != nil {
			return c.JSON(fiber.Map{
				"success": true,
				"message": "Property status updated to " + string(*body.Status),
				"data":    p,
			})
		}
		return c.JSON(fiber.Map{"message": "Property updated successfully"})
	}
}

func DeletePropertyHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Params("id")); err != nil {
			return apperr.ToFiber(err)
		}
		return c.JSON(fiber.Map{"message": "Property deleted successfully"})
	}
}
