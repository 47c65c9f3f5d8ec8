package controllers

import (
	"facturacion-backend/middlewares"

	"github.com/gofiber/fiber/v2"
)

type FacturaCreateDTO struct {
	PacienteID uint `json:"paciente_id" validate:"required,gt=0"`
	ClienteID  uint `json:"cliente_id" validate:"required,gt=0"`
}

// POST /api/factura — generates the invoice for a discharged patient.
func GenerateFactura(c *fiber.Ctx) error {
	var dto FacturaCreateDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	engine, _ := newEngine()
	factura, err := engine.GenerateInvoice(c.Context(), dto.PacienteID, dto.ClienteID)
	if err != nil {
		return err
	}
	view, err := engine.GetInvoice(c.Context(), factura.ID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// GET /api/factura/:id
func GetFactura(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	engine, _ := newEngine()
	view, err := engine.GetInvoice(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// GET /api/facturas
func GetFacturas(c *fiber.Ctx) error {
	engine, _ := newEngine()
	views, err := engine.ListInvoices(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"facturas": views, "message": "success"})
}
