package models

// Reponse is one of the proposed answers for a question.
type Reponse struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"-"`
	Text       string `gorm:"size:500;not null" json:"texte"`
	IsCorrect  bool   `gorm:"not null;default:false" json:"estCorrecte"`
	OrderNum   int    `gorm:"not null;default:0" json:"numeroOrdre"`
}
