package models

import "time"

// Patient lifecycle statuses. Transitions are forward-only:
// internado -> alta -> facturado.
const (
	EstadoInternado = "internado"
	EstadoAlta      = "alta"
	EstadoFacturado = "facturado"
)

type Paciente struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	NombreCompleto string     `json:"nombre_completo" gorm:"size:100;not null"`
	FechaIngreso   time.Time  `json:"fecha_ingreso"`
	FechaAlta      *time.Time `json:"fecha_alta"`

	// Free-text clinical notes; opaque to the billing engine.
	Afeccion     string `json:"afeccion" gorm:"size:200"`
	Enfermedades string `json:"enfermedades" gorm:"size:200"`
	Alergias     string `json:"alergias" gorm:"size:200"`

	Estado string `json:"estado" gorm:"size:20;default:internado;index"`

	Descargos []Descargo `json:"descargos,omitempty" gorm:"foreignKey:PacienteID"`
	Facturas  []Factura  `json:"facturas,omitempty" gorm:"foreignKey:PacienteID"`
}
