package services

import (
	"errors"

	"github.com/doniphane/AcadyoquizzV2-deploy/internal/models"

	"gorm.io/gorm"
)

// QuestionService manages a questionnaire's questions and answers. Every
// mutation is gated on ownership of the parent questionnaire.
type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

// Not-found and not-owned collapse to the same error so other users'
// resources never leak through the question endpoints.
var (
	ErrQuestionnaireNotFound = errors.New("questionnaire introuvable")
	ErrQuestionNotFound      = errors.New("question introuvable")
)

type ReponseInput struct {
	Texte       string `json:"texte" binding:"required,min=1,max=500"`
	EstCorrecte bool   `json:"estCorrecte"`
	NumeroOrdre int    `json:"numeroOrdre"`
}

type QuestionInput struct {
	Texte            string         `json:"texte" binding:"required,min=1"`
	NumeroOrdre      *int           `json:"numeroOrdre"`
	IsMultipleChoice bool           `json:"isMultipleChoice"`
	Reponses         []ReponseInput `json:"reponses" binding:"required,min=2,dive"`
}

func validateQuestionInput(input QuestionInput) error {
	correctCount := 0
	for _, r := range input.Reponses {
		if r.EstCorrecte {
			correctCount++
		}
	}
	if correctCount == 0 {
		return errors.New("au moins une réponse doit être correcte")
	}
	if !input.IsMultipleChoice && correctCount > 1 {
		return errors.New("une question à choix unique ne peut avoir qu'une seule bonne réponse")
	}
	return nil
}

func (s *QuestionService) ownedQuestionnaire(questionnaireID, userID uint) (*models.Questionnaire, error) {
	var q models.Questionnaire
	if err := s.db.Where("id = ? AND created_by_id = ?", questionnaireID, userID).First(&q).Error; err != nil {
		return nil, ErrQuestionnaireNotFound
	}
	return &q, nil
}

// CreateQuestion appends a question to the questionnaire. When no order index
// is supplied the question goes after the current last one.
func (s *QuestionService) CreateQuestion(questionnaireID, userID uint, input QuestionInput) (*models.Question, error) {
	if _, err := s.ownedQuestionnaire(questionnaireID, userID); err != nil {
		return nil, err
	}

	if err := validateQuestionInput(input); err != nil {
		return nil, err
	}

	orderNum := 0
	if input.NumeroOrdre != nil {
		orderNum = *input.NumeroOrdre
	} else {
		var maxOrder int
		s.db.Model(&models.Question{}).
			Where("questionnaire_id = ?", questionnaireID).
			Select("COALESCE(MAX(order_num), 0)").
			Scan(&maxOrder)
		orderNum = maxOrder + 1
	}

	question := models.Question{
		QuestionnaireID:  questionnaireID,
		Text:             input.Texte,
		OrderNum:         orderNum,
		IsMultipleChoice: input.IsMultipleChoice,
	}

	tx := s.db.Begin()
	if err := tx.Create(&question).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	for _, r := range input.Reponses {
		rep := models.Reponse{
			QuestionID: question.ID,
			Text:       r.Texte,
			IsCorrect:  r.EstCorrecte,
			OrderNum:   r.NumeroOrdre,
		}
		if err := tx.Create(&rep).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	tx.Commit()

	s.db.Preload("Reponses").First(&question, question.ID)
	return &question, nil
}

// UpdateQuestion rewrites the question and replaces its answers wholesale.
func (s *QuestionService) UpdateQuestion(questionID, userID uint, input QuestionInput) (*models.Question, error) {
	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return nil, ErrQuestionNotFound
	}
	if _, err := s.ownedQuestionnaire(question.QuestionnaireID, userID); err != nil {
		return nil, err
	}

	if err := validateQuestionInput(input); err != nil {
		return nil, err
	}

	tx := s.db.Begin()

	question.Text = input.Texte
	if input.NumeroOrdre != nil {
		question.OrderNum = *input.NumeroOrdre
	}
	question.IsMultipleChoice = input.IsMultipleChoice
	if err := tx.Save(&question).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Where("question_id = ?", questionID).Delete(&models.Reponse{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	for _, r := range input.Reponses {
		rep := models.Reponse{
			QuestionID: questionID,
			Text:       r.Texte,
			IsCorrect:  r.EstCorrecte,
			OrderNum:   r.NumeroOrdre,
		}
		if err := tx.Create(&rep).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	tx.Commit()

	s.db.Preload("Reponses").First(&question, questionID)
	return &question, nil
}

// DeleteQuestion removes the question and its answers.
func (s *QuestionService) DeleteQuestion(questionID, userID uint) error {
	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return ErrQuestionNotFound
	}
	if _, err := s.ownedQuestionnaire(question.QuestionnaireID, userID); err != nil {
		return err
	}

	s.db.Where("question_id = ?", questionID).Delete(&models.Reponse{})
	return s.db.Delete(&question).Error
}
