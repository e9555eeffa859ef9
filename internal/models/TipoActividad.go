package models

import (
	"gorm.io/gorm"
)

// TipoActividad is a configured maintenance activity type (poda, lavado,
// termografía...). The importer resolves these by name, exact match first,
// then substring fallback with an advisory warning.
type TipoActividad struct {
	gorm.Model

	Codigo    string `json:"codigo" gorm:"uniqueIndex;size:20" binding:"required"`
	Nombre    string `json:"nombre" gorm:"size:150" binding:"required"`
	Categoria string `json:"categoria" gorm:"size:30"`
	Activo    bool   `json:"activo" gorm:"default:true"`
}
