package handler

import (
	"github.com/gofiber/fiber/v2"

	"upgradedash/internal/service"
)

// GetSummary returns the aggregated dashboard payload for the supplied
// filter query parameters.
func GetSummary(svc service.SummaryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := service.SummaryQuery{
			Ubicacion:     c.Query("ubicacion"),
			NomSede:       c.Query("nom_sede"),
			CategoriaTrab: c.Query("categoria_trab"),
			Estado:        c.Query("estado"),
			FechaInicio:   c.Query("fecha_inicio"),
			FechaFin:      c.Query("fecha_fin"),
			Nombre:        c.Query("nombre"),
			Hostname:      c.Query("hostname"),
		}

		sum, err := svc.Build(c.UserContext(), q)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(sum)
	}
}
