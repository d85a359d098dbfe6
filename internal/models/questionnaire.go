package models

import (
	"strings"
	"time"
)

// AccessCodeLength is the fixed length of participant access codes.
const AccessCodeLength = 6

// Questionnaire is a quiz definition owned by a user. Participants join it
// with a short access code; attempts are recorded against it.
//
// JSON tags carry the canonical (French) wire names; the English naming used
// by the dashboard is produced by QuizManagementService.SerializeQuizEN.
type Questionnaire struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Title       string      `gorm:"size:255;not null" json:"titre" validate:"required,min=3,max=255"`
	Description *string     `gorm:"type:text" json:"description" validate:"omitempty,max=1000"`
	AccessCode  string      `gorm:"size:6;uniqueIndex;not null" json:"codeAcces" validate:"required,accesscode"`
	IsActive    bool        `gorm:"not null;default:true" json:"estActif"`
	IsStarted   bool        `gorm:"not null;default:false" json:"estDemarre"`
	PassScore   int         `gorm:"not null;default:50" json:"scorePassage" validate:"gte=0,lte=100"`
	CreatedAt   time.Time   `json:"dateCreation"`
	CreatedByID uint        `gorm:"not null;index" json:"-"`
	CreatedBy   Utilisateur `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"-"`
	Questions   []Question  `gorm:"foreignKey:QuestionnaireID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	Tentatives  []Tentative `gorm:"foreignKey:QuestionnaireID;constraint:OnDelete:CASCADE" json:"-"`
}

// NewQuestionnaire returns a questionnaire with the service defaults applied.
func NewQuestionnaire() *Questionnaire {
	return &Questionnaire{
		IsActive:  true,
		IsStarted: false,
		PassScore: 50,
		CreatedAt: time.Now(),
	}
}

// SetTitle stores the title with surrounding whitespace removed.
func (q *Questionnaire) SetTitle(title string) {
	q.Title = strings.TrimSpace(title)
}

// SetDescription stores the trimmed text, normalizing empty or all-whitespace
// input to "no description" (nil). An empty string is never stored.
func (q *Questionnaire) SetDescription(text *string) {
	if text == nil {
		q.Description = nil
		return
	}
	trimmed := strings.TrimSpace(*text)
	if trimmed == "" {
		q.Description = nil
		return
	}
	q.Description = &trimmed
}

// SetAccessCode stores upper(trim(code)). Formatting only: uniqueness is the
// caller's concern, enforced through the generator and the store lookup.
func (q *Questionnaire) SetAccessCode(code string) {
	q.AccessCode = strings.ToUpper(strings.TrimSpace(code))
}

// SetPassScore clamps the pass threshold to [0,100].
func (q *Questionnaire) SetPassScore(value int) {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	q.PassScore = value
}

// CodeGenerator produces unique access codes. Satisfied by
// services.AccessCodeGenerator.
type CodeGenerator interface {
	Generate() (string, error)
}

// RegenerateAccessCode replaces the current code with a freshly generated one.
func (q *Questionnaire) RegenerateAccessCode(gen CodeGenerator) error {
	code, err := gen.Generate()
	if err != nil {
		return err
	}
	q.SetAccessCode(code)
	return nil
}

// AddQuestion appends a question to the owned collection and sets its
// back-reference.
func (q *Questionnaire) AddQuestion(question *Question) {
	question.QuestionnaireID = q.ID
	q.Questions = append(q.Questions, *question)
}

// RemoveQuestion detaches a question from the owned collection by id.
func (q *Questionnaire) RemoveQuestion(questionID uint) {
	for i := range q.Questions {
		if q.Questions[i].ID == questionID {
			q.Questions[i].QuestionnaireID = 0
			q.Questions = append(q.Questions[:i], q.Questions[i+1:]...)
			return
		}
	}
}

// ToggleActive flips the active flag.
func (q *Questionnaire) ToggleActive() {
	q.IsActive = !q.IsActive
}
