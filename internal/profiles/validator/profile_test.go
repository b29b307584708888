package validator

import (
	"testing"

	"aeroclub/pkg/logger"
	"aeroclub/pkg/model"
)

func TestValidate(t *testing.T) {
	v := NewProfileValidator(logger.Discard())

	tests := []struct {
		name      string
		profile   model.Profile
		wantField string
	}{
		{name: "valid", profile: model.Profile{MemberID: "m1", Role: model.RoleMember, Phone: "+358401234567"}},
		{name: "missing role", profile: model.Profile{MemberID: "m1"}, wantField: "role"},
		{name: "unknown role", profile: model.Profile{MemberID: "m1", Role: "captain"}, wantField: "role"},
		{name: "bad phone", profile: model.Profile{MemberID: "m1", Role: model.RoleMember, Phone: "0401234567"}, wantField: "phone"},
		{name: "short username", profile: model.Profile{MemberID: "m1", Role: model.RoleMember, Username: "a"}, wantField: "username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.profile)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			errs, ok := err.(ValidationErrors)
			if !ok {
				t.Fatalf("expected ValidationErrors, got %T (%v)", err, err)
			}
			if _, found := errs.Details()[tt.wantField]; !found {
				t.Errorf("expected error on %q, got %v", tt.wantField, errs.Details())
			}
		})
	}
}
