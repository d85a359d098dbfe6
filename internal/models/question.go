package models

// Question belongs to a questionnaire and carries an order index used for
// deterministic sorting.
type Question struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	QuestionnaireID  uint      `gorm:"not null;index" json:"-"`
	Text             string    `gorm:"type:text;not null" json:"texte"`
	OrderNum         int       `gorm:"not null" json:"numeroOrdre"`
	IsMultipleChoice bool      `gorm:"not null;default:false" json:"isMultipleChoice"`
	Reponses         []Reponse `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"reponses,omitempty"`
}

// CorrectReponses returns the answers flagged correct, in stored order.
func (q *Question) CorrectReponses() []Reponse {
	var correct []Reponse
	for _, r := range q.Reponses {
		if r.IsCorrect {
			correct = append(correct, r)
		}
	}
	return correct
}
