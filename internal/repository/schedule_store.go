// Package repository implements the importer and geofence store ports on
// gorm. Lookups by natural key return (nil, nil) on absence; errors are
// reserved for storage failures.
package repository

import (
	"errors"

	"gorm.io/gorm"

	"torre_tracker/internal/importer"
	"torre_tracker/internal/models"
)

// ScheduleStore backs the Excel programming importer.
type ScheduleStore struct {
	db *gorm.DB
}

func NewScheduleStore(db *gorm.DB) *ScheduleStore {
	return &ScheduleStore{db: db}
}

func (s *ScheduleStore) LineaByCodigo(codigo string) (*models.Linea, error) {
	var linea models.Linea
	err := s.db.Where("LOWER(codigo) = LOWER(?)", codigo).First(&linea).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &linea, nil
}

func (s *ScheduleStore) TiposActividad() ([]models.TipoActividad, error) {
	var tipos []models.TipoActividad
	if err := s.db.Order("nombre").Find(&tipos).Error; err != nil {
		return nil, err
	}
	return tipos, nil
}

func (s *ScheduleStore) TramoByCodigo(codigo string) (*models.Tramo, error) {
	var tramo models.Tramo
	err := s.db.Where("LOWER(codigo) = LOWER(?)", codigo).First(&tramo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tramo, nil
}

func (s *ScheduleStore) TorreByLineaNumero(lineaID uint, numero string) (*models.Torre, error) {
	return torreByLineaNumero(s.db, lineaID, numero)
}

func (s *ScheduleStore) ActividadByAvisoSap(aviso string) (*models.Actividad, error) {
	var actividad models.Actividad
	err := s.db.Where("aviso_sap = ?", aviso).First(&actividad).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &actividad, nil
}

func (s *ScheduleStore) CreateActividad(a *models.Actividad) error {
	return s.db.Create(a).Error
}

func (s *ScheduleStore) SaveActividad(a *models.Actividad) error {
	return s.db.Save(a).Error
}

func (s *ScheduleStore) CountActividades(programacionID uint) (int64, error) {
	var n int64
	err := s.db.Model(&models.Actividad{}).Where("programacion_id = ?", programacionID).Count(&n).Error
	return n, err
}

func (s *ScheduleStore) SaveProgramacion(p *models.ProgramacionMensual) error {
	return s.db.Save(p).Error
}

// Transact runs fn inside one database transaction with a store bound to it.
func (s *ScheduleStore) Transact(fn func(importer.ScheduleStore) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ScheduleStore{db: tx})
	})
}

// torreByLineaNumero is shared between the schedule and tower stores.
func torreByLineaNumero(db *gorm.DB, lineaID uint, numero string) (*models.Torre, error) {
	var torre models.Torre
	err := db.Where("linea_id = ? AND LOWER(numero) = LOWER(?)", lineaID, numero).First(&torre).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &torre, nil
}
