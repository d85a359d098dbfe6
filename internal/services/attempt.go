package services

import (
	"errors"
	"math"
	"time"

	"github.com/doniphane/AcadyoquizzV2-deploy/internal/models"
)

// ActiveQuizFinder is the join gate: code must match and the questionnaire
// must be active. Inactive questionnaires are not joinable even with a valid
// code.
type ActiveQuizFinder interface {
	FindActiveByCode(code string) (*models.Questionnaire, error)
}

// TentativeWriter persists completed attempts.
type TentativeWriter interface {
	Save(t *models.Tentative) error
}

// AttemptService handles the participant side: joining a questionnaire by
// access code and recording a completed run. Scores are recomputed server
// side from the stored correct answers, never trusted from the client.
type AttemptService struct {
	quizzes  ActiveQuizFinder
	attempts TentativeWriter
}

func NewAttemptService(quizzes ActiveQuizFinder, attempts TentativeWriter) *AttemptService {
	return &AttemptService{quizzes: quizzes, attempts: attempts}
}

// ErrQuizNotJoinable is returned when no active questionnaire matches the
// supplied access code.
var ErrQuizNotJoinable = errors.New("aucun questionnaire actif pour ce code")

// JoinByCode resolves an access code to an active questionnaire with its
// ordered questions, or ErrQuizNotJoinable.
func (s *AttemptService) JoinByCode(code string) (*models.Questionnaire, error) {
	quiz, err := s.quizzes.FindActiveByCode(code)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, ErrQuizNotJoinable
	}
	return quiz, nil
}

// AnswerSelection is one chosen answer in a submission.
type AnswerSelection struct {
	QuestionID uint `json:"questionId" binding:"required"`
	ReponseID  uint `json:"reponseId" binding:"required"`
}

// AttemptSubmission is a participant's completed run.
type AttemptSubmission struct {
	FirstName     string            `json:"prenomParticipant" binding:"required,min=1,max=100"`
	LastName      string            `json:"nomParticipant" binding:"required,min=1,max=100"`
	StartedAt     *time.Time        `json:"dateDebut"`
	Answers       []AnswerSelection `json:"reponses" binding:"required,dive"`
	UtilisateurID *uint             `json:"-"`
}

// SubmitAttempt scores the submission against the questionnaire and persists
// the attempt with its per-question answer records. Scoring is per question,
// never per selection: repeated selections are deduplicated and a question
// awards one point only when the selected set matches its correct set
// exactly. Selections referencing an unknown question are dropped; an
// unknown answer id under a known question is recorded and scores wrong.
func (s *AttemptService) SubmitAttempt(quiz *models.Questionnaire, submission AttemptSubmission) (*models.Tentative, error) {
	correctByQuestion := make(map[uint]map[uint]bool, len(quiz.Questions))
	for _, q := range quiz.Questions {
		answers := make(map[uint]bool, len(q.Reponses))
		for _, r := range q.Reponses {
			answers[r.ID] = r.IsCorrect
		}
		correctByQuestion[q.ID] = answers
	}

	selected := make(map[uint]map[uint]bool, len(quiz.Questions))
	userAnswers := make([]models.ReponseUtilisateur, 0, len(submission.Answers))
	for _, sel := range submission.Answers {
		if _, ok := correctByQuestion[sel.QuestionID]; !ok {
			continue
		}
		if selected[sel.QuestionID][sel.ReponseID] {
			continue
		}
		if selected[sel.QuestionID] == nil {
			selected[sel.QuestionID] = make(map[uint]bool)
		}
		selected[sel.QuestionID][sel.ReponseID] = true
		userAnswers = append(userAnswers, models.ReponseUtilisateur{
			QuestionID: sel.QuestionID,
			ReponseID:  sel.ReponseID,
		})
	}

	score := 0
	for questionID, choices := range selected {
		if matchesCorrectSet(choices, correctByQuestion[questionID]) {
			score++
		}
	}

	total := len(quiz.Questions)
	percentage := 0.0
	if total > 0 {
		percentage = math.Round(float64(score)/float64(total)*10000) / 100
	}

	now := time.Now()
	started := submission.StartedAt
	if started == nil {
		started = &now
	}

	attempt := &models.Tentative{
		QuestionnaireID: quiz.ID,
		FirstName:       submission.FirstName,
		LastName:        submission.LastName,
		StartedAt:       started,
		EndedAt:         &now,
		Score:           score,
		TotalQuestions:  total,
		Percentage:      percentage,
		UtilisateurID:   submission.UtilisateurID,
		UserAnswers:     userAnswers,
	}

	if err := s.attempts.Save(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// matchesCorrectSet reports whether the participant selected exactly the
// correct answers for a question. For a single-choice question the correct
// set has one element, so this collapses to "picked the right one".
func matchesCorrectSet(choices map[uint]bool, answers map[uint]bool) bool {
	correctCount := 0
	for _, isCorrect := range answers {
		if isCorrect {
			correctCount++
		}
	}
	if len(choices) != correctCount {
		return false
	}
	for reponseID := range choices {
		if !answers[reponseID] {
			return false
		}
	}
	return true
}

// IsPassed applies the questionnaire's inclusive pass threshold.
func IsPassed(attempt *models.Tentative, quiz *models.Questionnaire) bool {
	return attempt.Percentage >= float64(quiz.PassScore)
}
