package models

import "time"

// Utilisateur is an authenticated account that can own questionnaires.
type Utilisateur struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Email        string          `gorm:"size:180;uniqueIndex;not null" json:"email"`
	PasswordHash string          `gorm:"size:255;not null" json:"-"`
	FirstName    string          `gorm:"size:100" json:"firstName"`
	LastName     string          `gorm:"size:100" json:"lastName"`
	CreatedAt    time.Time       `json:"createdAt"`
	Quizzes      []Questionnaire `gorm:"foreignKey:CreatedByID" json:"-"`
}
