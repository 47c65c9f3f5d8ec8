package controllers

import (
	"facturacion-backend/catalog"
	"facturacion-backend/database"
	"facturacion-backend/middlewares"
	"facturacion-backend/models"
	"facturacion-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CatalogItemDTO struct {
	Tipo        string  `json:"tipo" validate:"required"`
	PrecioBase  float64 `json:"precio_base" validate:"required,gte=0"`
	Descripcion string  `json:"descripcion" validate:"omitempty,max=200"`
}

// POST /api/servicio
func CreateServicio(c *fiber.Ctx) error {
	var dto CatalogItemDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	servicio, err := catalog.NewServicio(dto.Tipo, dto.PrecioBase, dto.Descripcion)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	if err := database.DB.Create(servicio).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create servicio")
	}
	return c.Status(fiber.StatusCreated).JSON(servicio)
}

// GET /api/servicios
func GetServicios(c *fiber.Ctx) error {
	var servicios []models.Servicio
	if err := database.DB.Order("id").Find(&servicios).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list servicios")
	}
	return c.JSON(fiber.Map{"servicios": servicios, "message": "success"})
}

// POST /api/producto
func CreateProducto(c *fiber.Ctx) error {
	var dto CatalogItemDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	producto, err := catalog.NewProducto(dto.Tipo, dto.PrecioBase, dto.Descripcion)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	if err := database.DB.Create(producto).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create producto")
	}
	return c.Status(fiber.StatusCreated).JSON(producto)
}

// GET /api/productos
func GetProductos(c *fiber.Ctx) error {
	var productos []models.Producto
	if err := database.DB.Order("id").Find(&productos).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list productos")
	}
	return c.JSON(fiber.Map{"productos": productos, "message": "success"})
}
