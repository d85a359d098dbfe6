package handlers

import (
	"net/http"
	"strconv"

	"github.com/doniphane/AcadyoquizzV2-deploy/internal/models"
	"github.com/doniphane/AcadyoquizzV2-deploy/internal/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizManagementService
	authService *services.AuthService
}

func NewQuizHandler(quizService *services.QuizManagementService, authService *services.AuthService) *QuizHandler {
	return &QuizHandler{quizService: quizService, authService: authService}
}

func (h *QuizHandler) currentUser(c *gin.Context) (*models.Utilisateur, bool) {
	user, err := h.authService.GetUser(c.GetUint("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		return nil, false
	}
	return user, true
}

// ownedQuiz resolves the :id parameter to a questionnaire owned by the
// caller. Someone else's questionnaire yields the same 404 as a missing one.
func (h *QuizHandler) ownedQuiz(c *gin.Context, user *models.Utilisateur) (*models.Questionnaire, bool) {
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return nil, false
	}

	quiz, err := h.quizService.GetUserQuiz(uint(quizID), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return nil, false
	}
	if quiz == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "questionnaire introuvable"})
		return nil, false
	}
	return quiz, true
}

// ListQuizzes godoc
// @Summary      List the caller's questionnaires
// @Description  All questionnaires owned by the authenticated user, newest first, English key naming
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} object
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/quizzes [get]
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	quizzes, err := h.quizService.GetUserQuizzes(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	out := make([]map[string]any, 0, len(quizzes))
	for i := range quizzes {
		out = append(out, h.quizService.SerializeQuizEN(&quizzes[i]))
	}
	c.JSON(http.StatusOK, out)
}

// CreateQuiz godoc
// @Summary      Create a questionnaire
// @Description  Build a questionnaire from the payload; both French and English keys are accepted, French winning when both are present
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.QuizPayload true "Quiz data"
// @Success      201 {object} object
// @Failure      400 {object} ValidationErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/quizzes [post]
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var payload services.QuizPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.quizService.CreateQuiz(payload, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	if !result.Success {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{Success: false, Errors: result.Errors})
		return
	}

	c.JSON(http.StatusCreated, h.quizService.SerializeQuiz(result.Quiz, false))
}

// GetQuiz godoc
// @Summary      Get a questionnaire
// @Description  Questionnaire with its questions sorted by numeroOrdre
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Success      200 {object} object
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	quiz, ok := h.ownedQuiz(c, user)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.quizService.SerializeQuiz(quiz, true))
}

// UpdateQuiz godoc
// @Summary      Update a questionnaire
// @Description  Partial update: absent keys leave existing values untouched
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Param        request body services.QuizPayload true "Fields to update"
// @Success      200 {object} object
// @Failure      400 {object} ValidationErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id} [put]
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	quiz, ok := h.ownedQuiz(c, user)
	if !ok {
		return
	}

	var payload services.QuizPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.quizService.UpdateQuiz(quiz, payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	if !result.Success {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{Success: false, Errors: result.Errors})
		return
	}

	c.JSON(http.StatusOK, h.quizService.SerializeQuiz(result.Quiz, false))
}

// DeleteQuiz godoc
// @Summary      Delete a questionnaire
// @Description  Remove the questionnaire; questions, answers and attempts cascade
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	quiz, ok := h.ownedQuiz(c, user)
	if !ok {
		return
	}

	if err := h.quizService.DeleteQuiz(quiz); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "questionnaire supprimé"})
}

// ToggleQuizStatus godoc
// @Summary      Toggle active status
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Success      200 {object} object
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/toggle [post]
func (h *QuizHandler) ToggleQuizStatus(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	quiz, ok := h.ownedQuiz(c, user)
	if !ok {
		return
	}

	updated, err := h.quizService.ToggleQuizStatus(quiz)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.quizService.SerializeQuiz(updated, false))
}

// GetQuizAttempts godoc
// @Summary      List attempts
// @Description  Attempts for the questionnaire, most recent start first, with computed pass/fail
// @Tags         attempts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Success      200 {array} object
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/attempts [get]
func (h *QuizHandler) GetQuizAttempts(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	quiz, ok := h.ownedQuiz(c, user)
	if !ok {
		return
	}

	attempts, err := h.quizService.GetQuizAttempts(quiz)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, attempts)
}

// GetAttemptDetails godoc
// @Summary      Attempt details
// @Description  Attempt summary plus, per answered question, the chosen answer and the correct ones
// @Tags         attempts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Param        attemptId path int true "Attempt ID"
// @Success      200 {object} object
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/attempts/{attemptId} [get]
func (h *QuizHandler) GetAttemptDetails(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	quiz, ok := h.ownedQuiz(c, user)
	if !ok {
		return
	}

	attemptID, err := strconv.ParseUint(c.Param("attemptId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid attempt id"})
		return
	}

	details, err := h.quizService.GetAttemptDetails(uint(attemptID), quiz)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	if details == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "tentative introuvable"})
		return
	}

	c.JSON(http.StatusOK, details)
}
