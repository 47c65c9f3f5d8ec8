package controllers

import (
	"strconv"

	"facturacion-backend/billing"
	"facturacion-backend/catalog"
	"facturacion-backend/database"
	"facturacion-backend/repository"

	"github.com/gofiber/fiber/v2"
)

// newEngine wires the billing engine against the shared DB handle. The engine
// itself is stateless; building it per request is cheap.
func newEngine() (*billing.Engine, *repository.Gorm) {
	repo := repository.New(database.DB)
	return billing.NewEngine(repo, catalog.NewLookup(database.DB), repo), repo
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	n, err := strconv.Atoi(c.Params(name))
	if err != nil || n <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return uint(n), nil
}
