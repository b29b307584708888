package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"aeroclub/pkg/logger"
	"aeroclub/pkg/model"

	"github.com/go-playground/validator/v10"
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

func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

type LogEntryValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewLogEntryValidator(log *logger.Logger) *LogEntryValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	log.Debug("Log entry validator initialized successfully")

	return &LogEntryValidator{
		validate: v,
		logger:   log,
	}
}

func (v *LogEntryValidator) Validate(entry *model.LogEntry) error {
	if err := v.validate.Struct(entry); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return v.validateFlightRules(entry)
}

func (v *LogEntryValidator) ValidateUpdate(update *model.LogEntryUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

// validateFlightRules checks what struct tags cannot express: night and
// instrument time are parts of the block time.
func (v *LogEntryValidator) validateFlightRules(entry *model.LogEntry) error {
	var errs ValidationErrors
	blockMinutes := int(entry.BlockTime().Minutes())

	if entry.NightMinutes > blockMinutes {
		errs = append(errs, ValidationError{Field: "night_minutes", Message: "night_minutes cannot exceed block time"})
	}
	if entry.IFRMinutes > blockMinutes {
		errs = append(errs, ValidationError{Field: "ifr_minutes", Message: "ifr_minutes cannot exceed block time"})
	}
	if entry.FlightRules == model.FlightRulesVFR && entry.IFRMinutes > 0 {
		errs = append(errs, ValidationError{Field: "ifr_minutes", Message: "ifr_minutes must be zero for a VFR flight"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *LogEntryValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of [%s]", err.Field(), err.Param())
		case "gtefield":
			message = fmt.Sprintf("%s cannot be before %s", err.Field(), previousTime(err.Field()))
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

func previousTime(field string) string {
	switch field {
	case "takeoff":
		return "off_block"
	case "landing":
		return "takeoff"
	case "on_block":
		return "landing"
	}
	return "the previous time"
}
