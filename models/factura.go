package models

import "time"

const EstadoPagoPendiente = "pendiente"

// Factura is emitted once per invoicing action and never mutated afterwards,
// except for payment-status updates.
type Factura struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	NumeroFactura       string    `json:"numero_factura" gorm:"size:50;unique"`
	FechaEmision        time.Time `json:"fecha_emision"`
	Subtotal            float64   `json:"subtotal" gorm:"type:numeric(12,2)"`
	Impuesto            float64   `json:"impuesto" gorm:"type:numeric(12,2)"`
	TotalGeneral        float64   `json:"total_general" gorm:"type:numeric(12,2)"`
	EstadoPago          string    `json:"estado_pago" gorm:"size:20;default:pendiente"`
	TerminosCondiciones string    `json:"terminos_condiciones" gorm:"size:500"`

	PacienteID uint      `json:"paciente_id" gorm:"not null;index"`
	Paciente   *Paciente `json:"-" gorm:"foreignKey:PacienteID"`
	ClienteID  uint      `json:"cliente_id" gorm:"not null;index"`
	Cliente    *Cliente  `json:"-" gorm:"foreignKey:ClienteID"`

	Lineas []LineaFactura `json:"lineas" gorm:"foreignKey:FacturaID;constraint:OnDelete:CASCADE"`
}

// LineaFactura bills exactly one LineaDescargo; the unique index on
// LineaDescargoID is what enforces at-most-once billing.
type LineaFactura struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	FacturaID       uint           `json:"-" gorm:"index"`
	LineaDescargoID uint           `json:"linea_descargo_id" gorm:"not null;uniqueIndex"`
	LineaDescargo   *LineaDescargo `json:"-" gorm:"foreignKey:LineaDescargoID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`

	TasaIVA     float64 `json:"tasa_iva"`
	IVA         float64 `json:"iva" gorm:"type:numeric(12,2)"`
	TotalConIVA float64 `json:"total_con_iva" gorm:"type:numeric(12,2)"`
}

func (LineaFactura) TableName() string { return "lineas_factura" }
