package controllers

import (
	"facturacion-backend/billing"
	"facturacion-backend/middlewares"

	"github.com/gofiber/fiber/v2"
)

type DescargoCreateDTO struct {
	Lineas []billing.LineaInput `json:"lineas" validate:"required"`
}

// POST /api/paciente/:id/descargos
func CreateDescargo(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var dto DescargoCreateDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	engine, _ := newEngine()
	descargo, err := engine.CreateBatch(c.Context(), id, dto.Lineas)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(descargo)
}

// GET /api/paciente/:id/descargos
func GetDescargosPaciente(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	engine, _ := newEngine()
	descargos, err := engine.BatchesForPatient(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"descargos": descargos, "message": "success"})
}
