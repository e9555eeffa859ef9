package repository

import (
	"gorm.io/gorm"

	"torre_tracker/internal/importer"
	"torre_tracker/internal/models"
)

// TowerStore backs the KMZ/KML tower importer.
type TowerStore struct {
	db *gorm.DB
}

func NewTowerStore(db *gorm.DB) *TowerStore {
	return &TowerStore{db: db}
}

func (s *TowerStore) TorreByLineaNumero(lineaID uint, numero string) (*models.Torre, error) {
	return torreByLineaNumero(s.db, lineaID, numero)
}

func (s *TowerStore) CreateTorre(t *models.Torre) error {
	return s.db.Create(t).Error
}

func (s *TowerStore) SaveTorre(t *models.Torre) error {
	return s.db.Save(t).Error
}

// Transact wraps the whole feature file in one transaction.
func (s *TowerStore) Transact(fn func(importer.TowerStore) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&TowerStore{db: tx})
	})
}
