package controllers

import (
	"time"

	"facturacion-backend/database"
	"facturacion-backend/middlewares"
	"facturacion-backend/models"
	"facturacion-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type PacienteCreateDTO struct {
	NombreCompleto string `json:"nombre_completo" validate:"required,min=1"`
	Afeccion       string `json:"afeccion" validate:"omitempty,max=200"`
	Enfermedades   string `json:"enfermedades" validate:"omitempty,max=200"`
	Alergias       string `json:"alergias" validate:"omitempty,max=200"`
}

type PacienteUpdateDTO struct {
	NombreCompleto *string `json:"nombre_completo" validate:"omitempty,min=1"`
	Afeccion       *string `json:"afeccion" validate:"omitempty,max=200"`
	Enfermedades   *string `json:"enfermedades" validate:"omitempty,max=200"`
	Alergias       *string `json:"alergias" validate:"omitempty,max=200"`
}

// POST /api/paciente
func CreatePaciente(c *fiber.Ctx) error {
	var dto PacienteCreateDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	paciente := models.Paciente{
		NombreCompleto: dto.NombreCompleto,
		FechaIngreso:   time.Now(),
		Afeccion:       dto.Afeccion,
		Enfermedades:   dto.Enfermedades,
		Alergias:       dto.Alergias,
		Estado:         models.EstadoInternado,
	}
	if err := database.DB.Create(&paciente).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create paciente")
	}
	return c.Status(fiber.StatusCreated).JSON(paciente)
}

// GET /api/pacientes?search=
func GetPacientes(c *fiber.Ctx) error {
	var pacientes []models.Paciente
	q := database.DB.Order("id")
	if search := c.Query("search"); search != "" {
		q = q.Where("nombre_completo ILIKE ?", "%"+search+"%")
	}
	if err := q.Find(&pacientes).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list pacientes")
	}
	return c.JSON(fiber.Map{
		"pacientes": pacientes,
		"message":   "success",
	})
}

// GET /api/paciente/:id
func GetPaciente(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	_, repo := newEngine()
	paciente, err := repo.GetPatient(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(paciente)
}

// PUT /api/paciente/:id
func UpdatePaciente(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var dto PacienteUpdateDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&dto)

	_, repo := newEngine()
	paciente, err := repo.GetPatient(c.Context(), id)
	if err != nil {
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&dto, nil)
	if len(updates) == 0 {
		return c.JSON(paciente)
	}
	if err := database.DB.Model(paciente).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not update paciente")
	}
	return c.JSON(paciente)
}

// DELETE /api/paciente/:id — refused once an invoice exists.
func DeletePaciente(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	_, repo := newEngine()
	paciente, err := repo.GetPatient(c.Context(), id)
	if err != nil {
		return err
	}
	invoiced, err := repo.HasInvoice(c.Context(), id)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not check facturas")
	}
	if invoiced {
		return fiber.NewError(fiber.StatusConflict, "paciente con facturas no puede ser eliminado")
	}
	// Lines cascade from descargos at the DB level.
	if err := database.DB.Select("Descargos").Delete(paciente).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete paciente")
	}
	return c.JSON(fiber.Map{"message": "paciente eliminado"})
}

// PATCH /api/paciente/:id/alta
func DarAltaPaciente(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	engine, _ := newEngine()
	paciente, err := engine.DischargePatient(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(paciente)
}

// GET /api/pacientes/internados-con-descargos
func GetInternadosConDescargos(c *fiber.Ctx) error {
	_, repo := newEngine()
	pacientes, err := repo.PatientsWithBatchesByStatus(c.Context(), models.EstadoInternado)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list pacientes")
	}
	return c.JSON(fiber.Map{"pacientes": pacientes, "message": "success"})
}

// GET /api/pacientes/alta-con-descargos-no-facturados
func GetAltaConDescargosNoFacturados(c *fiber.Ctx) error {
	_, repo := newEngine()
	pacientes, err := repo.PatientsWithBatchesByStatus(c.Context(), models.EstadoAlta)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list pacientes")
	}
	out := make([]models.Paciente, 0, len(pacientes))
	for _, p := range pacientes {
		lineas, err := repo.UnbilledLines(c.Context(), p.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list pacientes")
		}
		if len(lineas) > 0 {
			out = append(out, p)
		}
	}
	return c.JSON(fiber.Map{"pacientes": out, "message": "success"})
}
