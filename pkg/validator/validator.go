package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance with the domain tags registered
func New() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return entities.ActionItemPriority(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("item_status", func(fl validator.FieldLevel) bool {
		return entities.ActionItemStatus(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("meeting_status", func(fl validator.FieldLevel) bool {
		return entities.TranscriptStatus(fl.Field().String()).IsValid()
	})
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
