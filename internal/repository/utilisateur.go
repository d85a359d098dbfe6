package repository

import (
	"errors"

	"github.com/doniphane/AcadyoquizzV2-deploy/internal/models"

	"gorm.io/gorm"
)

// UtilisateurRepository wraps account lookups for the auth layer.
type UtilisateurRepository struct {
	db *gorm.DB
}

func NewUtilisateurRepository(db *gorm.DB) *UtilisateurRepository {
	return &UtilisateurRepository{db: db}
}

func (r *UtilisateurRepository) FindByID(id uint) (*models.Utilisateur, error) {
	var user models.Utilisateur
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UtilisateurRepository) FindByEmail(email string) (*models.Utilisateur, error) {
	var user models.Utilisateur
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UtilisateurRepository) Save(user *models.Utilisateur) error {
	return r.db.Save(user).Error
}
