package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity lifecycle states
const (
	ActividadPendiente    = "PENDIENTE"
	ActividadProgramada   = "PROGRAMADA"
	ActividadEnCurso      = "EN_CURSO"
	ActividadCompletada   = "COMPLETADA"
	ActividadCancelada    = "CANCELADA"
	ActividadReprogramada = "REPROGRAMADA"
)

// Activity priorities
const (
	PrioridadBaja    = "BAJA"
	PrioridadNormal  = "NORMAL"
	PrioridadAlta    = "ALTA"
	PrioridadUrgente = "URGENTE"
)

// Actividad is a scheduled maintenance activity, upserted by the schedule
// importer keyed on the client's SAP notice number.
type Actividad struct {
	gorm.Model

	LineaID uint   `json:"linea_id" gorm:"index"`
	Linea   *Linea `gorm:"foreignKey:LineaID" json:"linea,omitempty"`

	TorreID *uint  `json:"torre_id"`
	Torre   *Torre `gorm:"foreignKey:TorreID" json:"torre,omitempty"`

	TramoID *uint  `json:"tramo_id"`
	Tramo   *Tramo `gorm:"foreignKey:TramoID" json:"tramo,omitempty"`

	TipoActividadID uint           `json:"tipo_actividad_id"`
	TipoActividad   *TipoActividad `gorm:"foreignKey:TipoActividadID" json:"tipo_actividad,omitempty"`

	ProgramacionID uint                 `json:"programacion_id" gorm:"index"`
	Programacion   *ProgramacionMensual `gorm:"foreignKey:ProgramacionID" json:"programacion,omitempty"`

	AvisoSap string `json:"aviso_sap" gorm:"size:30;index"`

	FechaProgramada time.Time `json:"fecha_programada"`
	Estado          string    `json:"estado" gorm:"size:20;default:PENDIENTE"`
	Prioridad       string    `json:"prioridad" gorm:"size:20;default:NORMAL"`
	Ejecutor        string    `json:"ejecutor" gorm:"size:150"`

	ValorFacturacion          float64 `json:"valor_facturacion" gorm:"type:numeric(14,2)"`
	ObservacionesProgramacion string  `json:"observaciones_programacion"`
}
