package repository

import (
	"errors"
	"strings"

	"github.com/doniphane/AcadyoquizzV2-deploy/internal/models"

	"gorm.io/gorm"
)

// QuestionnaireRepository wraps the questionnaire lookups the services need.
// Codes are stored upper-cased, so code lookups upper-case the argument
// instead of relying on a collation.
type QuestionnaireRepository struct {
	db *gorm.DB
}

func NewQuestionnaireRepository(db *gorm.DB) *QuestionnaireRepository {
	return &QuestionnaireRepository{db: db}
}

func (r *QuestionnaireRepository) FindByID(id uint) (*models.Questionnaire, error) {
	var q models.Questionnaire
	if err := r.db.First(&q, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

// FindByCreator returns a user's questionnaires, newest first.
func (r *QuestionnaireRepository) FindByCreator(userID uint) ([]models.Questionnaire, error) {
	var quizzes []models.Questionnaire
	err := r.db.Where("created_by_id = ?", userID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Questions.Reponses").
		Order("created_at DESC").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

// FindOneByIDAndCreator scopes the lookup to the owner. A questionnaire owned
// by someone else comes back as nil, same as a missing one.
func (r *QuestionnaireRepository) FindOneByIDAndCreator(id, userID uint) (*models.Questionnaire, error) {
	var q models.Questionnaire
	err := r.db.Where("id = ? AND created_by_id = ?", id, userID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Questions.Reponses").
		First(&q).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *QuestionnaireRepository) FindByAccessCode(code string) (*models.Questionnaire, error) {
	var q models.Questionnaire
	err := r.db.Where("access_code = ?", normalizeCode(code)).First(&q).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

// FindActive returns the active questionnaires, newest first.
func (r *QuestionnaireRepository) FindActive() ([]models.Questionnaire, error) {
	var quizzes []models.Questionnaire
	err := r.db.Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

// FindStarted returns the started questionnaires, newest first.
func (r *QuestionnaireRepository) FindStarted() ([]models.Questionnaire, error) {
	var quizzes []models.Questionnaire
	err := r.db.Where("is_started = ?", true).
		Order("created_at DESC").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

// FindActiveByID is the activity-gated variant of FindByID. An inactive
// questionnaire is not visible through this lookup.
func (r *QuestionnaireRepository) FindActiveByID(id uint) (*models.Questionnaire, error) {
	var q models.Questionnaire
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&q).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

// FindActiveByCode is the join gate for participants: code must match and the
// questionnaire must be active.
func (r *QuestionnaireRepository) FindActiveByCode(code string) (*models.Questionnaire, error) {
	var q models.Questionnaire
	err := r.db.Where("access_code = ? AND is_active = ?", normalizeCode(code), true).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Questions.Reponses").
		First(&q).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

// FindWithQuestions eager-loads every questionnaire with its ordered
// questions and answers, newest first.
func (r *QuestionnaireRepository) FindWithQuestions() ([]models.Questionnaire, error) {
	var quizzes []models.Questionnaire
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Questions.Reponses").
		Order("created_at DESC").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

// CodeExists reports whether an access code is already taken.
func (r *QuestionnaireRepository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Questionnaire{}).
		Where("access_code = ?", normalizeCode(code)).
		Count(&count).Error
	return count > 0, err
}

func (r *QuestionnaireRepository) Save(q *models.Questionnaire) error {
	return r.db.Save(q).Error
}

// Delete removes the questionnaire; questions, answers and attempts cascade.
func (r *QuestionnaireRepository) Delete(q *models.Questionnaire) error {
	return r.db.Select("Questions", "Tentatives").Delete(q).Error
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
