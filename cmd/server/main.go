package main

import (
	"log"
	"strings"

	"bayhomes-backend/internal/area"
	"bayhomes-backend/internal/audit"
	"bayhomes-backend/internal/auth"
	"bayhomes-backend/internal/config"
	"bayhomes-backend/internal/database"
	"bayhomes-backend/internal/developer"
	"bayhomes-backend/internal/media"
	"bayhomes-backend/internal/models"
	"bayhomes-backend/internal/project"
	"bayhomes-backend/internal/property"
	"bayhomes-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	db := database.Init(cfg)

	blob := media.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)

	areaRepo := area.NewRepo(db)
	areaSvc := area.NewService(db, blob)
	developerRepo := developer.NewRepo(db)
	developerSvc := developer.NewService(db, blob)
	propertyRepo := property.NewRepo(db)
	propertySvc := property.NewService(db, blob)
	projectRepo := project.NewRepo(db)
	projectSvc := project.NewService(db, blob)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"message": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Join(corsOrigins, ","),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		ExposeHeaders: "x-total-count",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Bay Homes API is running")
	})

	api := app.Group("/api/v1")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(db, cfg))
	api.Post("/auth/login", auth.LoginHandler(db, cfg))

	// Public reads
	api.Get("/properties", property.ListPropertiesHandler(propertyRepo))
	api.Get("/properties/:id", property.GetPropertyHandler(propertyRepo))
	api.Get("/areas", area.ListAreasHandler(areaRepo))
	api.Get("/areas/:id", area.GetAreaHandler(areaRepo))
	api.Get("/developers", developer.ListDevelopersHandler(developerRepo))
	api.Get("/developers/:id", developer.GetDeveloperHandler(developerRepo))
	api.Get("/projects", project.ListProjectsHandler(projectRepo))
	api.Get("/projects/:id", project.GetProjectHandler(projectRepo))

	// Users: creation is public so sign-in flows can upsert, reads need auth.
	api.Post("/users", users.CreateUserHandler(db))

	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler(db))

	protected.Get("/users", users.ListUsersHandler(db))
	protected.Get("/users/:id", users.GetUserHandler(db))

	protected.Post("/properties", property.CreatePropertyHandler(propertySvc))
	protected.Put("/properties/:id", property.UpdatePropertyHandler(propertySvc))
	protected.Delete("/properties/:id", property.DeletePropertyHandler(propertySvc))

	protected.Post("/areas", area.CreateAreaHandler(areaSvc))
	protected.Put("/areas/:id", area.UpdateAreaHandler(areaSvc))
	protected.Delete("/areas/:id", area.DeleteAreaHandler(areaSvc))

	protected.Post("/developers", developer.CreateDeveloperHandler(developerSvc))
	protected.Put("/developers/:id", developer.UpdateDeveloperHandler(developerSvc))
	protected.Delete("/developers/:id", developer.DeleteDeveloperHandler(developerSvc))

	protected.Post("/projects", project.CreateProjectHandler(projectSvc))
	protected.Put("/projects/:id", project.UpdateProjectHandler(projectSvc))
	protected.Delete("/projects/:id", project.DeleteProjectHandler(projectSvc))

	auditRoutes := protected.Group("/audit-logs")
	auditRoutes.Use(auth.RequireRole(models.RoleAdmin))
	auditRoutes.Get("/", audit.ListAuditLogsHandler(db))

	log.Println("Server listening on port", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
