package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"aeroclub/pkg/logger"
	"aeroclub/pkg/model"

	"github.com/go-playground/validator/v10"
)

// registrationPattern accepts ICAO-style marks such as OH-ABC, G-ABCD,
// D-EABC and N12345, already upper-cased.
var registrationPattern = regexp.MustCompile(`^[A-Z0-9]{1,3}-?[A-Z0-9]{1,6}$`)

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

type AircraftValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAircraftValidator(log *logger.Logger) *AircraftValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("registration", validateRegistration); err != nil {
		log.Fatal("Failed to register registration validator", "error", err)
	}

	log.Debug("Aircraft validator initialized successfully")

	return &AircraftValidator{
		validate: v,
		logger:   log,
	}
}

func validateRegistration(fl validator.FieldLevel) bool {
	reg := fl.Field().String()
	return len(reg) >= 2 && len(reg) <= 10 && registrationPattern.MatchString(reg)
}

func (v *AircraftValidator) Validate(aircraft *model.Aircraft) error {
	return v.check(aircraft)
}

func (v *AircraftValidator) ValidateUpdate(update *model.AircraftUpdate) error {
	if update.Registration == "" && update.Model == "" && update.Active == nil {
		return ValidationErrors{{Field: "body", Message: "at least one field must be provided"}}
	}
	return v.check(update)
}

func (v *AircraftValidator) check(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *AircraftValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		case "registration":
			message = fmt.Sprintf("%s must be a registration mark such as OH-ABC", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid id", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
