package models

import (
	"gorm.io/gorm"
)

// ProgramacionMensual is one monthly programming batch for a line, fed by the
// client's Excel schedule. TotalActividades is refreshed after every import.
type ProgramacionMensual struct {
	gorm.Model

	Anio uint `json:"anio" binding:"required"`
	Mes  uint `json:"mes" binding:"required"`

	LineaID uint   `json:"linea_id" gorm:"index"`
	Linea   *Linea `gorm:"foreignKey:LineaID" json:"linea,omitempty"`

	ArchivoOrigen    string `json:"archivo_origen" gorm:"size:255"`
	TotalActividades uint   `json:"total_actividades" gorm:"default:0"`
	Aprobado         bool   `json:"aprobado" gorm:"default:false"`

	Actividades []Actividad `gorm:"foreignKey:ProgramacionID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"actividades,omitempty"`
}
