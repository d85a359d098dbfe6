package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/doniphane/AcadyoquizzV2-deploy/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.Utilisateur{},
		&models.Questionnaire{},
		&models.Question{},
		&models.Reponse{},
		&models.Tentative{},
		&models.ReponseUtilisateur{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedQuiz(t *testing.T, db *gorm.DB, email, code string) (*models.Utilisateur, *models.Questionnaire) {
	t.Helper()

	user := &models.Utilisateur{Email: email, PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	quiz := models.NewQuestionnaire()
	quiz.SetTitle("Quiz de test")
	quiz.SetAccessCode(code)
	quiz.CreatedByID = user.ID
	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return user, quiz
}

func singleChoiceInput(text string) QuestionInput {
	return QuestionInput{
		Texte: text,
		Reponses: []ReponseInput{
			{Texte: "Bonne", EstCorrecte: true, NumeroOrdre: 1},
			{Texte: "Mauvaise", NumeroOrdre: 2},
		},
	}
}

func TestCreateQuestionAppendsOrder(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuestionService(db)
	user, quiz := seedQuiz(t, db, "alice@example.com", "QST111")

	first, err := svc.CreateQuestion(quiz.ID, user.ID, singleChoiceInput("Première ?"))
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if first.OrderNum != 1 {
		t.Fatalf("first question order: got %d, want 1", first.OrderNum)
	}
	if len(first.Reponses) != 2 {
		t.Fatalf("answers should be persisted and loaded, got %d", len(first.Reponses))
	}

	second, err := svc.CreateQuestion(quiz.ID, user.ID, singleChoiceInput("Seconde ?"))
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if second.OrderNum != 2 {
		t.Fatalf("second question order: got %d, want 2", second.OrderNum)
	}
}

func TestCreateQuestionExplicitOrder(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuestionService(db)
	user, quiz := seedQuiz(t, db, "alice@example.com", "QST112")

	input := singleChoiceInput("Placée ?")
	input.NumeroOrdre = intPtr(7)
	question, err := svc.CreateQuestion(quiz.ID, user.ID, input)
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if question.OrderNum != 7 {
		t.Fatalf("order: got %d, want 7", question.OrderNum)
	}
}

func TestCreateQuestionRejectsBadAnswerSets(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuestionService(db)
	user, quiz := seedQuiz(t, db, "alice@example.com", "QST113")

	tests := []struct {
		name  string
		input QuestionInput
	}{
		{"no correct answer", QuestionInput{
			Texte: "Sans bonne réponse ?",
			Reponses: []ReponseInput{
				{Texte: "A"}, {Texte: "B"},
			},
		}},
		{"single choice with two correct", QuestionInput{
			Texte: "Choix unique ?",
			Reponses: []ReponseInput{
				{Texte: "A", EstCorrecte: true},
				{Texte: "B", EstCorrecte: true},
			},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateQuestion(quiz.ID, user.ID, tt.input); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}

	var count int64
	db.Model(&models.Question{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected questions must not be persisted, found %d", count)
	}
}

func TestCreateQuestionMultipleChoiceAllowsSeveralCorrect(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuestionService(db)
	user, quiz := seedQuiz(t, db, "alice@example.com", "QST114")

	question, err := svc.CreateQuestion(quiz.ID, user.ID, QuestionInput{
		Texte:            "Choix multiples ?",
		IsMultipleChoice: true,
		Reponses: []ReponseInput{
			{Texte: "A", EstCorrecte: true},
			{Texte: "B", EstCorrecte: true},
			{Texte: "C"},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if len(question.CorrectReponses()) != 2 {
		t.Fatalf("expected 2 correct answers, got %d", len(question.CorrectReponses()))
	}
}

func TestCreateQuestionOwnershipGate(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuestionService(db)
	_, quiz := seedQuiz(t, db, "alice@example.com", "QST115")
	bob, _ := seedQuiz(t, db, "bob@example.com", "QST116")

	_, err := svc.CreateQuestion(quiz.ID, bob.ID, singleChoiceInput("Intrusion ?"))
	if !errors.Is(err, ErrQuestionnaireNotFound) {
		t.Fatalf("a non-owner must get the not-found sentinel, got %v", err)
	}
}

func TestUpdateQuestionReplacesAnswers(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuestionService(db)
	user, quiz := seedQuiz(t, db, "alice@example.com", "QST117")

	question, err := svc.CreateQuestion(quiz.ID, user.ID, singleChoiceInput("Avant ?"))
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	oldAnswerID := question.Reponses[0].ID

	updated, err := svc.UpdateQuestion(question.ID, user.ID, QuestionInput{
		Texte: "Après ?",
		Reponses: []ReponseInput{
			{Texte: "Nouvelle bonne", EstCorrecte: true, NumeroOrdre: 1},
			{Texte: "Nouvelle mauvaise", NumeroOrdre: 2},
			{Texte: "Autre mauvaise", NumeroOrdre: 3},
		},
	})
	if err != nil {
		t.Fatalf("UpdateQuestion: %v", err)
	}
	if updated.Text != "Après ?" {
		t.Fatalf("text: got %q", updated.Text)
	}
	if len(updated.Reponses) != 3 {
		t.Fatalf("answers should be replaced wholesale, got %d", len(updated.Reponses))
	}
	for _, r := range updated.Reponses {
		if r.ID == oldAnswerID {
			t.Fatal("old answer rows must be gone")
		}
	}

	var orphans int64
	db.Model(&models.Reponse{}).Where("id = ?", oldAnswerID).Count(&orphans)
	if orphans != 0 {
		t.Fatal("replaced answers must be deleted")
	}
}

func TestDeleteQuestionRemovesAnswers(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuestionService(db)
	user, quiz := seedQuiz(t, db, "alice@example.com", "QST118")

	question, err := svc.CreateQuestion(quiz.ID, user.ID, singleChoiceInput("À supprimer ?"))
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	if err := svc.DeleteQuestion(question.ID, user.ID); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}

	var questions, answers int64
	db.Model(&models.Question{}).Count(&questions)
	db.Model(&models.Reponse{}).Where("question_id = ?", question.ID).Count(&answers)
	if questions != 0 || answers != 0 {
		t.Fatalf("question and answers should be gone, got %d/%d", questions, answers)
	}
}

func TestDeleteQuestionOwnershipGate(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuestionService(db)
	user, quiz := seedQuiz(t, db, "alice@example.com", "QST119")
	bob, _ := seedQuiz(t, db, "bob@example.com", "QST120")

	question, err := svc.CreateQuestion(quiz.ID, user.ID, singleChoiceInput("Protégée ?"))
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	if err := svc.DeleteQuestion(question.ID, bob.ID); !errors.Is(err, ErrQuestionnaireNotFound) {
		t.Fatalf("a non-owner must get the not-found sentinel, got %v", err)
	}
	if err := svc.DeleteQuestion(9999, user.ID); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("a missing question must get the not-found sentinel, got %v", err)
	}
}
