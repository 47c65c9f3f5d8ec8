package models

// Cliente is the billing recipient of a Factura. A client may appear on
// invoices of any number of patients.
type Cliente struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Nombre    string `json:"nombre" gorm:"size:100;not null"`
	Direccion string `json:"direccion" gorm:"size:200"`
	Telefono  string `json:"telefono" gorm:"size:20"`
	Correo    string `json:"correo" gorm:"size:100"`

	Facturas []Factura `json:"-" gorm:"foreignKey:ClienteID"`
}
