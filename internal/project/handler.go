package project

import (
	"strconv"

	"bayhomes-backend/internal/apperr"
	"bayhomes-backend/internal/query"

	"github.com/gofiber/fiber/v2"
)

func ListProjectsHandler(repo *Repo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := Filter{
			ProjectNameLike: c.Query("projectName_like"),
			ProjectType:     c.Query("projectType"),
		}

		projects, total, err := repo.List(filter, query.FromCtx(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		c.Set("x-total-count", strconv.FormatInt(total, 10))
		c.Set("Access-Control-Expose-Headers", "x-total-count")
		return c.JSON(projects)
	}
}

func GetProjectHandler(repo *Repo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := repo.GetDetail(c.Params("id"))
		if err != nil {
			return apperr.ToFiber(err)
		}
		return c.JSON(p)
	}
}

func CreateProjectHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProjectRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		p, err := svc.Create(body)
		if err != nil {
			return apperr.ToFiber(err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"data":    p,
		})
	}
}

func UpdateProjectHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProjectRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if _, err := svc.Update(c.Params("id"), body); err != nil {
			return apperr.ToFiber(err)
		}

		return c.JSON(fiber.Map{"message": "Project updated successfully"})
	}
}

func DeleteProjectHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Params("id")); err != nil {
			return apperr.ToFiber(err)
		}
		return c.JSON(fiber.Map{"message": "Project deleted successfully"})
	}
}
