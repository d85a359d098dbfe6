package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/doniphane/AcadyoquizzV2-deploy/internal/models"
	"github.com/doniphane/AcadyoquizzV2-deploy/internal/services"

	"github.com/gin-gonic/gin"
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

// questionTestEnv wires the question routes behind a stub auth middleware so
// status-code mapping can be exercised end to end.
func questionTestEnv(t *testing.T) (*gin.Engine, *gorm.DB, *models.Utilisateur) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := openTestDB(t)
	user := &models.Utilisateur{Email: "alice@example.com", PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	handler := NewQuestionHandler(services.NewQuestionService(db))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", user.ID)
		c.Next()
	})
	r.POST("/api/v1/quizzes/:id/questions", handler.CreateQuestion)
	r.PUT("/api/v1/questions/:id", handler.UpdateQuestion)
	r.DELETE("/api/v1/questions/:id", handler.DeleteQuestion)
	return r, db, user
}

func seedQuestionQuiz(t *testing.T, db *gorm.DB, ownerID uint, code string) *models.Questionnaire {
	t.Helper()
	quiz := models.NewQuestionnaire()
	quiz.SetTitle("Quiz de test")
	quiz.SetAccessCode(code)
	quiz.CreatedByID = ownerID
	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return quiz
}

const questionBody = `{
	"texte": "Capitale ?",
	"reponses": [
		{"texte": "Paris", "estCorrecte": true, "numeroOrdre": 1},
		{"texte": "Lyon", "numeroOrdre": 2}
	]
}`

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQuestionRoutesNotFoundStatus(t *testing.T) {
	r, db, user := questionTestEnv(t)

	other := &models.Utilisateur{Email: "bob@example.com", PasswordHash: "x"}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	foreign := seedQuestionQuiz(t, db, other.ID, "FOR111")
	owned := seedQuestionQuiz(t, db, user.ID, "OWN111")

	// Create under someone else's questionnaire: 404, same as a missing one.
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/quizzes/%d/questions", foreign.ID), questionBody)
	if w.Code != http.StatusNotFound {
		t.Fatalf("create on foreign quiz: got %d, want 404", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/api/v1/quizzes/9999/questions", questionBody)
	if w.Code != http.StatusNotFound {
		t.Fatalf("create on missing quiz: got %d, want 404", w.Code)
	}

	// Update and delete of a missing question: 404 as well.
	w = doJSON(t, r, http.MethodPut, "/api/v1/questions/9999", questionBody)
	if w.Code != http.StatusNotFound {
		t.Fatalf("update missing question: got %d, want 404", w.Code)
	}
	w = doJSON(t, r, http.MethodDelete, "/api/v1/questions/9999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("delete missing question: got %d, want 404", w.Code)
	}

	// A rejected answer set on an owned questionnaire stays a 400.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/quizzes/%d/questions", owned.ID), `{
		"texte": "Sans bonne réponse ?",
		"reponses": [
			{"texte": "A", "numeroOrdre": 1},
			{"texte": "B", "numeroOrdre": 2}
		]
	}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid answer set: got %d, want 400", w.Code)
	}
}

func TestQuestionRoutesHappyPath(t *testing.T) {
	r, db, user := questionTestEnv(t)
	owned := seedQuestionQuiz(t, db, user.ID, "OWN222")

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/quizzes/%d/questions", owned.ID), questionBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got %d, want 201 (%s)", w.Code, w.Body.String())
	}

	var question models.Question
	if err := db.Where("questionnaire_id = ?", owned.ID).First(&question).Error; err != nil {
		t.Fatalf("question should be persisted: %v", err)
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/questions/%d", question.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: got %d, want 200", w.Code)
	}
}
