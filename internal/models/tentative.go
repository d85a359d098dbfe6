package models

import "time"

// Tentative records one participant's completed run through a questionnaire.
// Participants are identified by free-text names; an authenticated account is
// attached when one was logged in.
type Tentative struct {
	ID              uint                 `gorm:"primaryKey" json:"id"`
	QuestionnaireID uint                 `gorm:"not null;index" json:"-"`
	FirstName       string               `gorm:"size:100" json:"prenomParticipant"`
	LastName        string               `gorm:"size:100" json:"nomParticipant"`
	StartedAt       *time.Time           `json:"dateDebut"`
	EndedAt         *time.Time           `json:"dateFin"`
	Score           int                  `gorm:"not null;default:0" json:"score"`
	TotalQuestions  int                  `gorm:"not null;default:0" json:"nombreTotalQuestions"`
	Percentage      float64              `gorm:"not null;default:0" json:"pourcentage"`
	UtilisateurID   *uint                `gorm:"index" json:"-"`
	Utilisateur     *Utilisateur         `gorm:"foreignKey:UtilisateurID" json:"-"`
	UserAnswers     []ReponseUtilisateur `gorm:"foreignKey:TentativeID;constraint:OnDelete:CASCADE" json:"-"`
}

// ReponseUtilisateur is the answer a participant selected for one question.
type ReponseUtilisateur struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	TentativeID uint     `gorm:"not null;index" json:"-"`
	QuestionID  uint     `gorm:"not null" json:"questionId"`
	Question    Question `gorm:"foreignKey:QuestionID" json:"-"`
	ReponseID   uint     `gorm:"not null" json:"reponseId"`
	Reponse     Reponse  `gorm:"foreignKey:ReponseID" json:"-"`
}
