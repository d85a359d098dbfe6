package repository

import (
	"testing"
	"time"

	"github.com/doniphane/AcadyoquizzV2-deploy/internal/models"
)

func TestFindByQuestionnaireMostRecentFirst(t *testing.T) {
	db := openTestDB(t)
	repo := NewTentativeRepository(db)

	alice := createUser(t, db, "alice@example.com")
	quiz := createQuiz(t, db, alice, "Quiz", "ATT111", true)
	other := createQuiz(t, db, alice, "Autre", "ATT222", true)

	early := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	late := early.Add(2 * time.Hour)
	attempts := []models.Tentative{
		{QuestionnaireID: quiz.ID, FirstName: "Jean", StartedAt: &early},
		{QuestionnaireID: quiz.ID, FirstName: "Marie", StartedAt: &late},
		{QuestionnaireID: other.ID, FirstName: "Paul", StartedAt: &late},
	}
	for i := range attempts {
		if err := db.Create(&attempts[i]).Error; err != nil {
			t.Fatalf("create attempt: %v", err)
		}
	}

	got, err := repo.FindByQuestionnaire(quiz.ID)
	if err != nil {
		t.Fatalf("FindByQuestionnaire: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(got))
	}
	if got[0].FirstName != "Marie" || got[1].FirstName != "Jean" {
		t.Fatalf("order: got %q, %q", got[0].FirstName, got[1].FirstName)
	}
}

func TestFindByQuestionnairePreloadsAccount(t *testing.T) {
	db := openTestDB(t)
	repo := NewTentativeRepository(db)

	alice := createUser(t, db, "alice@example.com")
	participant := createUser(t, db, "participant@example.com")
	quiz := createQuiz(t, db, alice, "Quiz", "ACC111", true)

	attempt := models.Tentative{
		QuestionnaireID: quiz.ID,
		FirstName:       "Jean",
		UtilisateurID:   &participant.ID,
	}
	if err := db.Create(&attempt).Error; err != nil {
		t.Fatalf("create attempt: %v", err)
	}

	got, err := repo.FindByQuestionnaire(quiz.ID)
	if err != nil {
		t.Fatalf("FindByQuestionnaire: %v", err)
	}
	if got[0].Utilisateur == nil || got[0].Utilisateur.Email != "participant@example.com" {
		t.Fatalf("linked account should be preloaded, got %+v", got[0].Utilisateur)
	}
}

func TestFindOneByIDAndQuestionnaire(t *testing.T) {
	db := openTestDB(t)
	repo := NewTentativeRepository(db)

	alice := createUser(t, db, "alice@example.com")
	quiz := createQuiz(t, db, alice, "Quiz", "DET111", true)
	other := createQuiz(t, db, alice, "Autre", "DET222", true)

	question := models.Question{QuestionnaireID: quiz.ID, Text: "Capitale ?", OrderNum: 1}
	if err := db.Create(&question).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}
	answer := models.Reponse{QuestionID: question.ID, Text: "Paris", IsCorrect: true, OrderNum: 1}
	if err := db.Create(&answer).Error; err != nil {
		t.Fatalf("create answer: %v", err)
	}

	attempt := models.Tentative{
		QuestionnaireID: quiz.ID,
		FirstName:       "Jean",
		UserAnswers: []models.ReponseUtilisateur{
			{QuestionID: question.ID, ReponseID: answer.ID},
		},
	}
	if err := db.Create(&attempt).Error; err != nil {
		t.Fatalf("create attempt: %v", err)
	}

	got, err := repo.FindOneByIDAndQuestionnaire(attempt.ID, quiz.ID)
	if err != nil {
		t.Fatalf("FindOneByIDAndQuestionnaire: %v", err)
	}
	if got == nil {
		t.Fatal("expected the attempt")
	}
	if len(got.UserAnswers) != 1 {
		t.Fatalf("answer records should be preloaded, got %d", len(got.UserAnswers))
	}
	ua := got.UserAnswers[0]
	if ua.Question.Text != "Capitale ?" {
		t.Fatalf("question preload: got %+v", ua.Question)
	}
	if len(ua.Question.Reponses) != 1 {
		t.Fatalf("question answers preload: got %d", len(ua.Question.Reponses))
	}
	if ua.Reponse.Text != "Paris" || !ua.Reponse.IsCorrect {
		t.Fatalf("selected answer preload: got %+v", ua.Reponse)
	}

	// Scoped to the questionnaire: same attempt id under another quiz is nil.
	got, err = repo.FindOneByIDAndQuestionnaire(attempt.ID, other.ID)
	if err != nil {
		t.Fatalf("FindOneByIDAndQuestionnaire: %v", err)
	}
	if got != nil {
		t.Fatal("attempt must not resolve under a different questionnaire")
	}
}
