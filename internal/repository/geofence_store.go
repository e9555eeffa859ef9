package repository

import (
	"errors"

	"gorm.io/gorm"

	"torre_tracker/internal/models"
)

// GeofenceStore is the read-only port of the location validator. Safe for
// concurrent callers; it never writes.
type GeofenceStore struct {
	db *gorm.DB
}

func NewGeofenceStore(db *gorm.DB) *GeofenceStore {
	return &GeofenceStore{db: db}
}

func (s *GeofenceStore) TorreByID(id uint) (*models.Torre, error) {
	var torre models.Torre
	err := s.db.Preload("Linea").First(&torre, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &torre, nil
}

func (s *GeofenceStore) PoligonoByTorre(torreID uint) (*models.PoligonoServidumbre, error) {
	var poligono models.PoligonoServidumbre
	err := s.db.Where("torre_id = ?", torreID).First(&poligono).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &poligono, nil
}
