package repository

import (
	"errors"

	"github.com/doniphane/AcadyoquizzV2-deploy/internal/models"

	"gorm.io/gorm"
)

// TentativeRepository wraps attempt lookups for the review surface.
type TentativeRepository struct {
	db *gorm.DB
}

func NewTentativeRepository(db *gorm.DB) *TentativeRepository {
	return &TentativeRepository{db: db}
}

// FindByQuestionnaire returns every attempt for a questionnaire, most recent
// start first.
func (r *TentativeRepository) FindByQuestionnaire(questionnaireID uint) ([]models.Tentative, error) {
	var attempts []models.Tentative
	err := r.db.Where("questionnaire_id = ?", questionnaireID).
		Preload("Utilisateur").
		Order("started_at DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

// FindOneByIDAndQuestionnaire loads an attempt with its per-question answer
// records, or nil when it does not exist under that questionnaire.
func (r *TentativeRepository) FindOneByIDAndQuestionnaire(id, questionnaireID uint) (*models.Tentative, error) {
	var attempt models.Tentative
	err := r.db.Where("id = ? AND questionnaire_id = ?", id, questionnaireID).
		Preload("UserAnswers").
		Preload("UserAnswers.Question").
		Preload("UserAnswers.Question.Reponses").
		Preload("UserAnswers.Reponse").
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attempt, nil
}

func (r *TentativeRepository) Save(t *models.Tentative) error {
	return r.db.Save(t).Error
}
