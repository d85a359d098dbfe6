package handlers

import (
	"errors"
	"net/http"

	"github.com/doniphane/AcadyoquizzV2-deploy/internal/services"

	"github.com/gin-gonic/gin"
)

// ParticipantHandler is the public side: joining a questionnaire with an
// access code and submitting a completed run. No authentication required; a
// valid bearer token just links the attempt to the account.
type ParticipantHandler struct {
	quizService    *services.QuizManagementService
	attemptService *services.AttemptService
}

func NewParticipantHandler(quizService *services.QuizManagementService, attemptService *services.AttemptService) *ParticipantHandler {
	return &ParticipantHandler{quizService: quizService, attemptService: attemptService}
}

type JoinRequest struct {
	Code string `json:"code" binding:"required" example:"K7KDSB"`
}

// Join godoc
// @Summary      Join a questionnaire
// @Description  Resolve an access code to an active questionnaire; correct answers are not exposed
// @Tags         play
// @Accept       json
// @Produce      json
// @Param        request body JoinRequest true "Access code"
// @Success      200 {object} object
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/play/join [post]
func (h *ParticipantHandler) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.attemptService.JoinByCode(req.Code)
	if err != nil {
		if errors.Is(err, services.ErrQuizNotJoinable) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	data := h.quizService.SerializeQuiz(quiz, true)
	stripCorrectness(data)
	c.JSON(http.StatusOK, data)
}

// stripCorrectness removes the estCorrecte flag from serialized answers
// before the payload reaches a participant.
func stripCorrectness(data map[string]any) {
	questions, _ := data["questions"].([]map[string]any)
	for _, q := range questions {
		reponses, _ := q["reponses"].([]map[string]any)
		for _, r := range reponses {
			delete(r, "estCorrecte")
		}
	}
}

type SubmitRequest struct {
	Code string `json:"code" binding:"required" example:"K7KDSB"`
	services.AttemptSubmission
}

// Submit godoc
// @Summary      Submit a completed run
// @Description  Score the submission server-side and record the attempt
// @Tags         play
// @Accept       json
// @Produce      json
// @Param        request body SubmitRequest true "Completed run"
// @Success      201 {object} object
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/play/submit [post]
func (h *ParticipantHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.attemptService.JoinByCode(req.Code)
	if err != nil {
		if errors.Is(err, services.ErrQuizNotJoinable) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	if userID, ok := c.Get("user_id"); ok {
		id := userID.(uint)
		req.AttemptSubmission.UtilisateurID = &id
	}

	attempt, err := h.attemptService.SubmitAttempt(quiz, req.AttemptSubmission)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":                   attempt.ID,
		"score":                attempt.Score,
		"nombreTotalQuestions": attempt.TotalQuestions,
		"pourcentage":          attempt.Percentage,
		"estReussie":           services.IsPassed(attempt, quiz),
	})
}
