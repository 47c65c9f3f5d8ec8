// Package catalog manages the service/product reference data the billing
// engine prices consumption against.
package catalog

import (
	"fmt"

	"facturacion-backend/models"
)

// AjusteFunc is a pure price adjustment applied to the base price of a new
// catalog item, keyed by its category.
type AjusteFunc func(precioBase float64) float64

func identidad(p float64) float64 { return p }

func recargo(pct float64) AjusteFunc {
	return func(p float64) float64 { return p * (1 + pct) }
}

// Category surcharges: laboratory overhead, procedure complexity, imaging
// equipment, regulatory and import costs, cold-chain storage.
var ajustesServicio = map[string]AjusteFunc{
	models.TipoAtencionMedica:        identidad,
	models.TipoExamenLaboratorio:     recargo(0.10),
	models.TipoSuministroMedicamento: identidad,
	models.TipoProcedimientoMedico:   recargo(0.20),
	models.TipoImagenRayosX:          recargo(0.15),
}

var ajustesProducto = map[string]AjusteFunc{
	models.TipoComida:                   identidad,
	models.TipoVacunas:                  recargo(0.15),
	models.TipoMedicamentos:             recargo(0.05),
	models.TipoInsumosMedicos:           recargo(0.10),
	models.TipoSuplementosNutricionales: identidad,
}

var descripcionServicio = map[string]string{
	models.TipoAtencionMedica:        "Consulta médica general",
	models.TipoExamenLaboratorio:     "Examen de laboratorio estándar",
	models.TipoSuministroMedicamento: "Suministro de medicamentos",
	models.TipoProcedimientoMedico:   "Procedimiento médico especializado",
	models.TipoImagenRayosX:          "Imagen de rayos X",
}

var descripcionProducto = map[string]string{
	models.TipoComida:                   "Comida hospitalaria",
	models.TipoVacunas:                  "Vacuna estándar",
	models.TipoMedicamentos:             "Medicamento genérico",
	models.TipoInsumosMedicos:           "Insumo médico estándar",
	models.TipoSuplementosNutricionales: "Suplemento nutricional estándar",
}

// NewServicio builds a Servicio applying the category price adjustment and
// the default description when none is given.
func NewServicio(tipo string, precioBase float64, descripcion string) (*models.Servicio, error) {
	ajuste, ok := ajustesServicio[tipo]
	if !ok {
		return nil, fmt.Errorf("tipo de servicio no soportado: %s", tipo)
	}
	if descripcion == "" {
		descripcion = descripcionServicio[tipo]
	}
	return &models.Servicio{
		Tipo:        tipo,
		PrecioBase:  ajuste(precioBase),
		Descripcion: descripcion,
	}, nil
}

// NewProducto is the product counterpart of NewServicio.
func NewProducto(tipo string, precioBase float64, descripcion string) (*models.Producto, error) {
	ajuste, ok := ajustesProducto[tipo]
	if !ok {
		return nil, fmt.Errorf("tipo de producto no soportado: %s", tipo)
	}
	if descripcion == "" {
		descripcion = descripcionProducto[tipo]
	}
	return &models.Producto{
		Tipo:        tipo,
		PrecioBase:  ajuste(precioBase),
		Descripcion: descripcion,
	}, nil
}
