package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"upgradedash/internal/http/middleware"
	"upgradedash/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic.
func RegisterRoutes(
	app *fiber.App,
	db *sql.DB,
	store *session.Store,
	authSvc service.AuthService,
	summarySvc service.SummaryService,
	uploadSvc service.UploadService,
) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health: readiness checks DB connectivity, healthz is a bare liveness probe.
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api", middleware.Authenticate(store, authSvc))

	api.Post("/login", Login(store, authSvc))
	api.Post("/logout", Logout(store))

	api.Get("/me", middleware.RequireAuth(), Me())
	api.Get("/summary", middleware.RequireAuth(), GetSummary(summarySvc))

	api.Post("/upload", middleware.RequireAuth(), middleware.RequireAdmin(), UploadCSV(uploadSvc))
	api.Get("/uploads", middleware.RequireAuth(), middleware.RequireAdmin(), ListUploads(uploadSvc))
	api.Get("/uploads/:id/download", middleware.RequireAuth(), middleware.RequireAdmin(), DownloadUpload(uploadSvc))
	api.Get("/download-template", middleware.RequireAuth(), middleware.RequireAdmin(), DownloadTemplate())

	api.Post("/admin/users", middleware.RequireAuth(), middleware.RequireAdmin(), CreateUser(authSvc))
}
