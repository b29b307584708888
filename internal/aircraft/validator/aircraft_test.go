package validator

import (
	"errors"
	"testing"

	"aeroclub/pkg/logger"
	"aeroclub/pkg/model"
)

func TestValidate_Registration(t *testing.T) {
	v := NewAircraftValidator(logger.Discard())

	tests := []struct {
		name         string
		registration string
		wantErr      bool
	}{
		{"finnish mark", "OH-ABC", false},
		{"british mark", "G-ABCD", false},
		{"us mark without hyphen", "N12345", false},
		{"lower case", "oh-abc", true},
		{"empty", "", true},
		{"too long", "OH-ABCDEFGH", true},
		{"spaces", "OH ABC", true},
		{"double hyphen", "OH--ABC", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&model.Aircraft{Registration: tt.registration, Model: "Cessna 172"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			if _, ok := verrs.Details()["registration"]; !ok {
				t.Errorf("expected registration detail, got %v", verrs.Details())
			}
		})
	}
}

func TestValidate_Model(t *testing.T) {
	v := NewAircraftValidator(logger.Discard())

	err := v.Validate(&model.Aircraft{Registration: "OH-ABC", Model: "C"})
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if verrs[0].Field != "model" || verrs[0].Message != "model must be at least 2 characters" {
		t.Errorf("unexpected error %+v", verrs[0])
	}
}

func TestValidateUpdate(t *testing.T) {
	v := NewAircraftValidator(logger.Discard())
	active := false

	if err := v.ValidateUpdate(&model.AircraftUpdate{}); err == nil {
		t.Error("expected empty update to fail")
	}
	if err := v.ValidateUpdate(&model.AircraftUpdate{Active: &active}); err != nil {
		t.Errorf("expected active-only update to pass, got %v", err)
	}
	if err := v.ValidateUpdate(&model.AircraftUpdate{Registration: "bad mark"}); err == nil {
		t.Error("expected invalid registration to fail")
	}
}
