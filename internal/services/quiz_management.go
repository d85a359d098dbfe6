package services

import (
	"errors"
	"sort"
	"time"

	"github.com/doniphane/AcadyoquizzV2-deploy/internal/models"

	"gorm.io/gorm"
)

// QuestionnaireStore is the persistence contract the management service
// needs. Implemented by repository.QuestionnaireRepository.
type QuestionnaireStore interface {
	FindByCreator(userID uint) ([]models.Questionnaire, error)
	FindOneByIDAndCreator(id, userID uint) (*models.Questionnaire, error)
	Save(q *models.Questionnaire) error
	Delete(q *models.Questionnaire) error
	CodeExists(code string) (bool, error)
}

// TentativeStore is the attempt lookup contract for the review surface.
type TentativeStore interface {
	FindByQuestionnaire(questionnaireID uint) ([]models.Tentative, error)
	FindOneByIDAndQuestionnaire(id, questionnaireID uint) (*models.Tentative, error)
}

// Validator checks a questionnaire and reports violations as messages.
type Validator interface {
	Validate(q *models.Questionnaire) []string
}

// QuizPayload is the caller-provided data bag for create and update. Both key
// conventions are accepted; resolution lives in the resolve* methods so the
// precedence rule (the French key wins when both are present) stays in one
// place. Absent keys are nil and leave existing values untouched on update.
type QuizPayload struct {
	Titre        *string `json:"titre"`
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	EstActif     *bool   `json:"estActif"`
	IsActive     *bool   `json:"isActive"`
	EstDemarre   *bool   `json:"estDemarre"`
	IsStarted    *bool   `json:"isStarted"`
	ScorePassage *int    `json:"scorePassage"`
}

func (p *QuizPayload) resolveTitle() *string {
	if p.Titre != nil {
		return p.Titre
	}
	return p.Title
}

func (p *QuizPayload) resolveActive() *bool {
	if p.EstActif != nil {
		return p.EstActif
	}
	return p.IsActive
}

func (p *QuizPayload) resolveStarted() *bool {
	if p.EstDemarre != nil {
		return p.EstDemarre
	}
	return p.IsStarted
}

// QuizResult is the structured outcome of create and update: either the
// questionnaire, or the validation messages. Never both.
type QuizResult struct {
	Success bool                  `json:"success"`
	Quiz    *models.Questionnaire `json:"quiz,omitempty"`
	Errors  []string              `json:"errors,omitempty"`
}

// QuizManagementService is the business-logic surface for questionnaire
// lifecycle and attempt review. Persistence, validation and code generation
// are injected so the service itself stays request-scoped and stateless.
type QuizManagementService struct {
	quizzes   QuestionnaireStore
	attempts  TentativeStore
	validator Validator
	codes     *AccessCodeGenerator
}

func NewQuizManagementService(quizzes QuestionnaireStore, attempts TentativeStore, validator Validator, codes *AccessCodeGenerator) *QuizManagementService {
	return &QuizManagementService{
		quizzes:   quizzes,
		attempts:  attempts,
		validator: validator,
		codes:     codes,
	}
}

// GetUserQuizzes returns every questionnaire owned by the user, newest first.
func (s *QuizManagementService) GetUserQuizzes(user *models.Utilisateur) ([]models.Questionnaire, error) {
	return s.quizzes.FindByCreator(user.ID)
}

// GetUserQuiz returns the questionnaire only when it exists and belongs to
// the user. An ownership mismatch is indistinguishable from non-existence so
// other users' resources never leak.
func (s *QuizManagementService) GetUserQuiz(id uint, user *models.Utilisateur) (*models.Questionnaire, error) {
	return s.quizzes.FindOneByIDAndCreator(id, user.ID)
}

// CreateQuiz builds a questionnaire from the payload, assigns the creator and
// a generated access code, validates and persists. On validation failure
// nothing is persisted and the messages come back in the result. This is the
// only creation path: codes are never caller-supplied.
func (s *QuizManagementService) CreateQuiz(payload QuizPayload, creator *models.Utilisateur) (QuizResult, error) {
	q := models.NewQuestionnaire()

	title := ""
	if t := payload.resolveTitle(); t != nil {
		title = *t
	}
	q.SetTitle(title)
	q.SetDescription(payload.Description)
	if active := payload.resolveActive(); active != nil {
		q.IsActive = *active
	}
	if started := payload.resolveStarted(); started != nil {
		q.IsStarted = *started
	}
	if payload.ScorePassage != nil {
		q.SetPassScore(*payload.ScorePassage)
	}
	q.CreatedByID = creator.ID
	q.CreatedBy = *creator

	code, err := s.codes.Generate()
	if err != nil {
		return QuizResult{}, err
	}
	q.SetAccessCode(code)

	if messages := s.validator.Validate(q); len(messages) > 0 {
		return QuizResult{Success: false, Errors: messages}, nil
	}

	if err := s.saveWithCodeRetry(q); err != nil {
		return QuizResult{}, err
	}
	return QuizResult{Success: true, Quiz: q}, nil
}

// saveWithCodeRetry persists the questionnaire, regenerating the access code
// once if the store's uniqueness constraint catches a concurrent duplicate.
func (s *QuizManagementService) saveWithCodeRetry(q *models.Questionnaire) error {
	err := s.quizzes.Save(q)
	if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	if regenErr := q.RegenerateAccessCode(s.codes); regenErr != nil {
		return regenErr
	}
	return s.quizzes.Save(q)
}

// UpdateQuiz applies the fields present in the payload, re-validates the full
// entity, and persists. On validation failure the commit is skipped but the
// in-memory mutations are kept: the caller sees the attempted values.
func (s *QuizManagementService) UpdateQuiz(q *models.Questionnaire, payload QuizPayload) (QuizResult, error) {
	if title := payload.resolveTitle(); title != nil {
		q.SetTitle(*title)
	}
	if payload.Description != nil {
		q.SetDescription(payload.Description)
	}
	if active := payload.resolveActive(); active != nil {
		q.IsActive = *active
	}
	if started := payload.resolveStarted(); started != nil {
		q.IsStarted = *started
	}
	if payload.ScorePassage != nil {
		q.SetPassScore(*payload.ScorePassage)
	}

	if messages := s.validator.Validate(q); len(messages) > 0 {
		return QuizResult{Success: false, Errors: messages}, nil
	}

	if err := s.quizzes.Save(q); err != nil {
		return QuizResult{}, err
	}
	return QuizResult{Success: true, Quiz: q}, nil
}

// DeleteQuiz removes the questionnaire; questions, answers and attempts go
// with it. No soft delete.
func (s *QuizManagementService) DeleteQuiz(q *models.Questionnaire) error {
	return s.quizzes.Delete(q)
}

// ToggleQuizStatus flips the active flag, commits and returns the entity.
func (s *QuizManagementService) ToggleQuizStatus(q *models.Questionnaire) (*models.Questionnaire, error) {
	q.ToggleActive()
	if err := s.quizzes.Save(q); err != nil {
		return nil, err
	}
	return q, nil
}

// SerializeQuiz produces the canonical (French-keyed) record. Questions are
// omitted unless requested; when included they are sorted by numeroOrdre,
// answers staying in stored order.
func (s *QuizManagementService) SerializeQuiz(q *models.Questionnaire, includeQuestions bool) map[string]any {
	data := map[string]any{
		"id":           q.ID,
		"titre":        q.Title,
		"description":  descriptionValue(q.Description),
		"codeAcces":    q.AccessCode,
		"estActif":     q.IsActive,
		"estDemarre":   q.IsStarted,
		"scorePassage": q.PassScore,
		"dateCreation": timestampValue(q.CreatedAt),
		"nbQuestions":  len(q.Questions),
	}

	if includeQuestions {
		questions := make([]map[string]any, 0, len(q.Questions))
		for _, question := range q.Questions {
			reponses := make([]map[string]any, 0, len(question.Reponses))
			for _, r := range question.Reponses {
				reponses = append(reponses, map[string]any{
					"id":          r.ID,
					"texte":       r.Text,
					"estCorrecte": r.IsCorrect,
					"numeroOrdre": r.OrderNum,
				})
			}
			questions = append(questions, map[string]any{
				"id":               question.ID,
				"texte":            question.Text,
				"numeroOrdre":      question.OrderNum,
				"isMultipleChoice": question.IsMultipleChoice,
				"reponses":         reponses,
			})
		}
		sort.SliceStable(questions, func(i, j int) bool {
			return questions[i]["numeroOrdre"].(int) < questions[j]["numeroOrdre"].(int)
		})
		data["questions"] = questions
	}

	return data
}

// SerializeQuizEN is the English-keyed variant consumed by the dashboard.
// Same data, second naming convention; kept as a separate serializer rather
// than merged with the canonical one.
func (s *QuizManagementService) SerializeQuizEN(q *models.Questionnaire) map[string]any {
	return map[string]any{
		"id":             q.ID,
		"title":          q.Title,
		"description":    descriptionValue(q.Description),
		"accessCode":     q.AccessCode,
		"isActive":       q.IsActive,
		"isStarted":      q.IsStarted,
		"scorePassage":   q.PassScore,
		"createdAt":      timestampValue(q.CreatedAt),
		"questionsCount": len(q.Questions),
	}
}

// GetQuizAttempts returns the questionnaire's attempts, most recent start
// first, each with the computed pass/fail against the pass threshold. The
// threshold is inclusive.
func (s *QuizManagementService) GetQuizAttempts(q *models.Questionnaire) ([]map[string]any, error) {
	attempts, err := s.attempts.FindByQuestionnaire(q.ID)
	if err != nil {
		return nil, err
	}

	data := make([]map[string]any, 0, len(attempts))
	for i := range attempts {
		attempt := &attempts[i]
		var userID any
		var userEmail any
		if attempt.Utilisateur != nil {
			userID = attempt.Utilisateur.ID
			userEmail = attempt.Utilisateur.Email
		}
		data = append(data, map[string]any{
			"id":                   attempt.ID,
			"prenomParticipant":    attempt.FirstName,
			"nomParticipant":       attempt.LastName,
			"dateDebut":            optionalTimestamp(attempt.StartedAt),
			"dateFin":              optionalTimestamp(attempt.EndedAt),
			"score":                attempt.Score,
			"nombreTotalQuestions": attempt.TotalQuestions,
			"pourcentage":          attempt.Percentage,
			"estReussie":           attempt.Percentage >= float64(q.PassScore),
			"utilisateur": map[string]any{
				"id":    userID,
				"email": userEmail,
			},
		})
	}
	return data, nil
}

// GetAttemptDetails returns the attempt summary plus, per answered question,
// the selected answer, its correctness, and the full set of correct answers.
// Nil when no such attempt exists under the questionnaire.
func (s *QuizManagementService) GetAttemptDetails(attemptID uint, q *models.Questionnaire) (map[string]any, error) {
	attempt, err := s.attempts.FindOneByIDAndQuestionnaire(attemptID, q.ID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, nil
	}

	details := make([]map[string]any, 0, len(attempt.UserAnswers))
	for _, ua := range attempt.UserAnswers {
		correct := make([]map[string]any, 0)
		for _, r := range ua.Question.CorrectReponses() {
			correct = append(correct, map[string]any{
				"id":    r.ID,
				"texte": r.Text,
			})
		}
		details = append(details, map[string]any{
			"questionId":    ua.Question.ID,
			"questionTexte": ua.Question.Text,
			"reponseUtilisateur": map[string]any{
				"id":          ua.Reponse.ID,
				"texte":       ua.Reponse.Text,
				"estCorrecte": ua.Reponse.IsCorrect,
			},
			"bonnesReponses": correct,
			"estCorrecte":    ua.Reponse.IsCorrect,
		})
	}

	return map[string]any{
		"tentative": map[string]any{
			"id":                   attempt.ID,
			"prenomParticipant":    attempt.FirstName,
			"nomParticipant":       attempt.LastName,
			"dateDebut":            optionalTimestamp(attempt.StartedAt),
			"dateFin":              optionalTimestamp(attempt.EndedAt),
			"score":                attempt.Score,
			"nombreTotalQuestions": attempt.TotalQuestions,
			"pourcentage":          attempt.Percentage,
		},
		"reponsesDetails": details,
	}, nil
}

func descriptionValue(d *string) any {
	if d == nil {
		return nil
	}
	return *d
}

func timestampValue(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339)
}

func optionalTimestamp(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
