package services

import (
	"fmt"
	"unicode"

	"github.com/doniphane/AcadyoquizzV2-deploy/internal/models"

	"github.com/go-playground/validator/v10"
)

// QuestionnaireValidator checks entity constraints and reports violations as
// human-readable messages. Services receive it as the Validator interface so
// tests can substitute their own.
type QuestionnaireValidator struct {
	validate *validator.Validate
}

func NewQuestionnaireValidator() *QuestionnaireValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// accesscode: exactly 6 uppercase alphanumeric characters.
	_ = v.RegisterValidation("accesscode", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if len(code) != models.AccessCodeLength {
			return false
		}
		for _, c := range code {
			if !unicode.IsDigit(c) && !(c >= 'A' && c <= 'Z') {
				return false
			}
		}
		return true
	})

	return &QuestionnaireValidator{validate: v}
}

// Validate returns one message per violated constraint, empty when the
// questionnaire is valid.
func (qv *QuestionnaireValidator) Validate(q *models.Questionnaire) []string {
	err := qv.validate.Struct(q)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, questionnaireMessage(fe))
	}
	return messages
}

func questionnaireMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Title":
		switch fe.Tag() {
		case "required":
			return "Le titre est obligatoire"
		case "min":
			return fmt.Sprintf("Le titre doit contenir au moins %s caractères", fe.Param())
		case "max":
			return fmt.Sprintf("Le titre ne peut pas dépasser %s caractères", fe.Param())
		}
	case "Description":
		if fe.Tag() == "max" {
			return fmt.Sprintf("La description ne peut pas dépasser %s caractères", fe.Param())
		}
	case "AccessCode":
		return "Le code d'accès doit contenir exactement 6 caractères alphanumériques majuscules"
	case "PassScore":
		return "Le score de passage doit être compris entre 0 et 100"
	}
	return fmt.Sprintf("Champ %s invalide (%s)", fe.Field(), fe.Tag())
}
