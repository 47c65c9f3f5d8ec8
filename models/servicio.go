package models

// Service categories. The base price of a new Servicio is adjusted per
// category by the registry in the catalog package.
const (
	TipoAtencionMedica        = "atencion_medica"
	TipoExamenLaboratorio     = "examen_laboratorio"
	TipoSuministroMedicamento = "suministro_medicamento"
	TipoProcedimientoMedico   = "procedimiento_medico"
	TipoImagenRayosX          = "imagen_rayos_x"
)

type Servicio struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Tipo        string  `json:"tipo" gorm:"size:40;not null"`
	PrecioBase  float64 `json:"precio_base" gorm:"type:numeric(12,2)"`
	Descripcion string  `json:"descripcion" gorm:"size:200"`
}
