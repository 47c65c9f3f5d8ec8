package models

// Product categories.
const (
	TipoComida                   = "comida"
	TipoVacunas                  = "vacunas"
	TipoMedicamentos             = "medicamentos"
	TipoInsumosMedicos           = "insumos_medicos"
	TipoSuplementosNutricionales = "suplementos_nutricionales"
)

type Producto struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Tipo        string  `json:"tipo" gorm:"size:40;not null"`
	PrecioBase  float64 `json:"precio_base" gorm:"type:numeric(12,2)"`
	Descripcion string  `json:"descripcion" gorm:"size:200"`
}
