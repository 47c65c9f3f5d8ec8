package models

import "time"

// Descargo groups the billable consumption recorded for a patient while admitted.
// Total is derived from the lines and recomputed whenever lines are added,
// never assigned independently.
type Descargo struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PacienteID uint      `json:"paciente_id" gorm:"not null;index"`
	Fecha      time.Time `json:"fecha"`
	Total      float64   `json:"total" gorm:"type:numeric(12,2);not null;default:0"`

	Lineas []LineaDescargo `json:"lineas" gorm:"foreignKey:DescargoID;constraint:OnDelete:CASCADE"`
}

// LineaDescargo is one billable service-or-product selection inside a Descargo.
// Exactly one of ServicioID/ProductoID is set. Price and description are
// snapshotted from the catalog at creation time and never re-resolved.
type LineaDescargo struct {
	ID         uint  `json:"id" gorm:"primaryKey"`
	DescargoID uint  `json:"-" gorm:"not null;index"`
	ServicioID *uint `json:"servicio_id"`
	ProductoID *uint `json:"producto_id"`
	Cantidad   int   `json:"cantidad" gorm:"not null"`

	Descripcion    string  `json:"descripcion" gorm:"size:200"`
	PrecioUnitario float64 `json:"precio_unitario" gorm:"type:numeric(12,2)"`
	SubtotalSinIVA float64 `json:"subtotal_sin_iva" gorm:"type:numeric(12,2)"`
}

func (LineaDescargo) TableName() string { return "lineas_descargo" }
