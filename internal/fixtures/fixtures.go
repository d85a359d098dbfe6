package fixtures

import (
	"log"
	"time"

	"github.com/doniphane/AcadyoquizzV2-deploy/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Load seeds a demo account and questionnaire for local development. Running
// it twice is a no-op keyed on the account email.
func Load(db *gorm.DB) error {
	var existing models.Utilisateur
	if err := db.Where("email = ?", "test@example.com").First(&existing).Error; err == nil {
		log.Println("fixtures already loaded")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.Utilisateur{
		Email:        "test@example.com",
		PasswordHash: string(hash),
		FirstName:    "User",
		LastName:     "Test",
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	quiz := models.NewQuestionnaire()
	quiz.SetTitle("Quiz de test")
	quiz.SetAccessCode("TEST12")
	quiz.SetPassScore(70)
	quiz.CreatedByID = user.ID
	quiz.CreatedAt = time.Now()
	quiz.Questions = []models.Question{
		{
			Text:     "Quelle est la capitale de la France ?",
			OrderNum: 1,
			Reponses: []models.Reponse{
				{Text: "Paris", IsCorrect: true, OrderNum: 1},
				{Text: "Lyon", OrderNum: 2},
				{Text: "Marseille", OrderNum: 3},
			},
		},
		{
			Text:             "Lesquels sont des nombres premiers ?",
			OrderNum:         2,
			IsMultipleChoice: true,
			Reponses: []models.Reponse{
				{Text: "2", IsCorrect: true, OrderNum: 1},
				{Text: "4", OrderNum: 2},
				{Text: "7", IsCorrect: true, OrderNum: 3},
			},
		},
	}
	if err := db.Create(quiz).Error; err != nil {
		return err
	}

	log.Printf("fixtures loaded: user %s, questionnaire %s", user.Email, quiz.AccessCode)
	return nil
}
