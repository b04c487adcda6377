package area

import (
	"strconv"

	"bayhomes-backend/internal/apperr"
	"bayhomes-backend/internal/query"

	"github.com/gofiber/fiber/v2"
)

func ListAreasHandler(repo *Repo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := Filter{AreaName: c.Query("areaName")}

		areas, total, err := repo.List(filter, query.FromCtx(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		c.Set("x-total-count", strconv.FormatInt(total, 10))
		c.Set("Access-Control-Expose-Headers", "x-total-count")
		return c.JSON(areas)
	}
}

func GetAreaHandler(repo *Repo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := repo.GetDetail(c.Params("id"))
		if err != nil {
			return apperr.ToFiber(err)
		}
		return c.JSON(a)
	}
}

func CreateAreaHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateAreaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		a, err := svc.Create(body)
		if err != nil {
			return apperr.ToFiber(err)
		}

		return c.JSON(fiber.Map{"message": "Area created successfully", "area": a})
	}
}

func UpdateAreaHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateAreaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if _, err := svc.Update(c.Params("id"), body); err != nil {
			return apperr.ToFiber(err)
		}

		return c.JSON(fiber.Map{"message": "Area updated successfully"})
	}
}

func DeleteAreaHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Params("id")); err != nil {
			return apperr.ToFiber(err)
		}
		return c.JSON(fiber.Map{"message": "Area deleted successfully"})
	}
}
