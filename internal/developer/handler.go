package developer

import (
	"strconv"

	"bayhomes-backend/internal/apperr"
	"bayhomes-backend/internal/query"

	"github.com/gofiber/fiber/v2"
)

func ListDevelopersHandler(repo *Repo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := Filter{DeveloperName: c.Query("developerName")}

		developers, total, err := repo.List(filter, query.FromCtx(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		c.Set("x-total-count", strconv.FormatInt(total, 10))
		c.Set("Access-Control-Expose-Headers", "x-total-count")
		return c.JSON(developers)
	}
}

func GetDeveloperHandler(repo *Repo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := repo.GetDetail(c.Params("id"))
		if err != nil {
			return apperr.ToFiber(err)
		}
		return c.JSON(d)
	}
}

func CreateDeveloperHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateDeveloperRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		d, err := svc.Create(body)
		if err != nil {
			return apperr.ToFiber(err)
		}

		return c.JSON(fiber.Map{"message": "Developer created successfully", "developer": d})
	}
}

func UpdateDeveloperHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateDeveloperRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		d, err := svc.Update(c.Params("id"), body)
		if err != nil {
			return apperr.ToFiber(err)
		}

		return c.JSON(fiber.Map{"message": "Developer updated successfully", "data": d})
	}
}

func DeleteDeveloperHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Params("id")); err != nil {
			return apperr.ToFiber(err)
		}
		return c.JSON(fiber.Map{"message": "Developer deleted successfully"})
	}
}
