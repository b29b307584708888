package validator

import (
	"errors"
	"testing"
	"time"

	"aeroclub/pkg/logger"
	"aeroclub/pkg/model"
)

func validEntry() *model.LogEntry {
	offBlock := time.Date(2025, 6, 1, 9, 50, 0, 0, time.UTC)
	return &model.LogEntry{
		MemberID:      "member-1",
		Aircraft:      "OH-ABC",
		Date:          offBlock.Truncate(24 * time.Hour),
		PIC:           "A. Pilot",
		PeopleOnBoard: 2,
		Departure:     "EFHK",
		Arrival:       "EFTU",
		OffBlock:      offBlock,
		Takeoff:       offBlock.Add(10 * time.Minute),
		Landing:       offBlock.Add(70 * time.Minute),
		OnBlock:       offBlock.Add(80 * time.Minute),
		Landings:      1,
		FlightRules:   model.FlightRulesVFR,
	}
}

func TestValidate(t *testing.T) {
	v := NewLogEntryValidator(logger.Discard())

	tests := []struct {
		name      string
		mutate    func(e *model.LogEntry)
		wantField string
	}{
		{"valid", func(*model.LogEntry) {}, ""},
		{"takeoff before off block", func(e *model.LogEntry) { e.Takeoff = e.OffBlock.Add(-time.Minute) }, "takeoff"},
		{"on block before landing", func(e *model.LogEntry) { e.OnBlock = e.Landing.Add(-time.Minute) }, "on_block"},
		{"unknown flight rules", func(e *model.LogEntry) { e.FlightRules = "SVFR" }, "flight_rules"},
		{"nobody on board", func(e *model.LogEntry) { e.PeopleOnBoard = 0 }, "people_on_board"},
		{"night exceeds block", func(e *model.LogEntry) { e.NightMinutes = 81 }, "night_minutes"},
		{"instrument time on VFR", func(e *model.LogEntry) { e.IFRMinutes = 10 }, "ifr_minutes"},
		{"instrument time on IFR", func(e *model.LogEntry) {
			e.FlightRules = model.FlightRulesIFR
			e.IFRMinutes = 30
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := validEntry()
			tt.mutate(entry)

			err := v.Validate(entry)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected valid entry, got %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if _, ok := verrs.Details()[tt.wantField]; !ok {
				t.Errorf("expected %s error, got %v", tt.wantField, verrs.Details())
			}
		})
	}
}

func TestValidate_SequenceMessage(t *testing.T) {
	v := NewLogEntryValidator(logger.Discard())
	entry := validEntry()
	entry.Landing = entry.Takeoff.Add(-time.Minute)
	entry.OnBlock = entry.Landing

	var verrs ValidationErrors
	if !errors.As(v.Validate(entry), &verrs) {
		t.Fatal("expected ValidationErrors")
	}
	if verrs.Details()["landing"] != "landing cannot be before takeoff" {
		t.Errorf("unexpected message %v", verrs.Details()["landing"])
	}
}
