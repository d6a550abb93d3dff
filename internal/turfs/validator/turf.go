package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"turfbook/pkg/logger"
	"turfbook/pkg/model"
	"turfbook/pkg/timeslot"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type TurfValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewTurfValidator(log *logger.Logger) *TurfValidator {
	v := validator.New()

	if err := v.RegisterValidation("clock_time", ValidateClockTime); err != nil {
		log.Fatal("Failed to register 'clock_time' validator", "error", err)
	}

	log.Info("Turf validator initialized successfully")

	return &TurfValidator{
		validate: v,
		logger:   log,
	}
}

// ValidateClockTime accepts "HH:MM" wall-clock strings within a single day.
func ValidateClockTime(fl validator.FieldLevel) bool {
	_, err := timeslot.ParseClock(strings.TrimSpace(fl.Field().String()))
	return err == nil
}

func (v *TurfValidator) Validate(t *model.Turf) error {
	if err := v.validate.Struct(t); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	// Operating hours are a half-open window and must be non-empty.
	if _, err := timeslot.NewInterval(t.OpenTime, t.CloseTime); err != nil {
		return ValidationErrors{{
			Field:   "close_time",
			Message: "close_time must be after open_time",
		}}
	}

	return nil
}

func (v *TurfValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
		case "e164":
			message = fmt.Sprintf("%s must be a valid E.164 phone number", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid object id", err.Field())
		case "clock_time":
			message = fmt.Sprintf("%s must be in HH:MM 24-hour format", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
