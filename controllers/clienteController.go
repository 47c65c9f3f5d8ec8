package controllers

import (
	"facturacion-backend/database"
	"facturacion-backend/middlewares"
	"facturacion-backend/models"
	"facturacion-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ClienteCreateDTO struct {
	Nombre    string `json:"nombre" validate:"required,min=1"`
	Direccion string `json:"direccion" validate:"omitempty,max=200"`
	Telefono  string `json:"telefono" validate:"omitempty,max=20"`
	Correo    string `json:"correo" validate:"omitempty,email"`
}

type ClienteUpdateDTO struct {
	Nombre    *string `json:"nombre" validate:"omitempty,min=1"`
	Direccion *string `json:"direccion" validate:"omitempty,max=200"`
	Telefono  *string `json:"telefono" validate:"omitempty,max=20"`
	Correo    *string `json:"correo" validate:"omitempty,email"`
}

// POST /api/cliente
func CreateCliente(c *fiber.Ctx) error {
	var dto ClienteCreateDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	cliente := models.Cliente{
		Nombre:    dto.Nombre,
		Direccion: dto.Direccion,
		Telefono:  dto.Telefono,
		Correo:    dto.Correo,
	}
	if err := database.DB.Create(&cliente).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create cliente")
	}
	return c.Status(fiber.StatusCreated).JSON(cliente)
}

// GET /api/clientes
func GetClientes(c *fiber.Ctx) error {
	var clientes []models.Cliente
	if err := database.DB.Order("id").Find(&clientes).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list clientes")
	}
	return c.JSON(fiber.Map{"clientes": clientes, "message": "success"})
}

// GET /api/cliente/:id
func GetCliente(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	_, repo := newEngine()
	cliente, err := repo.GetClient(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(cliente)
}

// PUT /api/cliente/:id
func UpdateCliente(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var dto ClienteUpdateDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&dto)

	_, repo := newEngine()
	cliente, err := repo.GetClient(c.Context(), id)
	if err != nil {
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&dto, nil)
	if len(updates) == 0 {
		return c.JSON(cliente)
	}
	if err := database.DB.Model(cliente).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not update cliente")
	}
	return c.JSON(cliente)
}
