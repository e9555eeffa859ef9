package models

import (
	"gorm.io/gorm"
)

// Tramo is an ordered section of a line between two towers.
// Only resolved by the schedule importer, never mutated here.
type Tramo struct {
	gorm.Model

	LineaID uint   `json:"linea_id" gorm:"index"`
	Linea   *Linea `gorm:"foreignKey:LineaID" json:"linea,omitempty"`

	Codigo string `json:"codigo" gorm:"uniqueIndex;size:30" binding:"required"`
	Nombre string `json:"nombre" gorm:"size:150"`

	TorreInicioID uint   `json:"torre_inicio_id"`
	TorreInicio   *Torre `gorm:"foreignKey:TorreInicioID" json:"torre_inicio,omitempty"`
	TorreFinID    uint   `json:"torre_fin_id"`
	TorreFin      *Torre `gorm:"foreignKey:TorreFinID" json:"torre_fin,omitempty"`
}
