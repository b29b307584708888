package model

import "time"

const (
	FlightRulesVFR = "VFR"
	FlightRulesIFR = "IFR"
)

// LogEntry is one flight in a member's logbook. Block time runs from OffBlock
// to OnBlock; airborne time from Takeoff to Landing.
type LogEntry struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	MemberID       string    `json:"member_id" bson:"member_id" validate:"required,max=64"`
	Aircraft       string    `json:"aircraft" bson:"aircraft" validate:"required,min=2,max=16"`
	Date           time.Time `json:"date" bson:"date" validate:"required"`
	PIC            string    `json:"pic" bson:"pic" validate:"required,min=2,max=100"`
	PeopleOnBoard  int       `json:"people_on_board" bson:"people_on_board" validate:"min=1,max=20"`
	Departure      string    `json:"departure" bson:"departure" validate:"required,min=2,max=8"`
	Arrival        string    `json:"arrival" bson:"arrival" validate:"required,min=2,max=8"`
	OffBlock       time.Time `json:"off_block" bson:"off_block" validate:"required"`
	Takeoff        time.Time `json:"takeoff" bson:"takeoff" validate:"required,gtefield=OffBlock"`
	Landing        time.Time `json:"landing" bson:"landing" validate:"required,gtefield=Takeoff"`
	OnBlock        time.Time `json:"on_block" bson:"on_block" validate:"required,gtefield=Landing"`
	Landings       int       `json:"landings" bson:"landings" validate:"min=0,max=100"`
	FlightRules    string    `json:"flight_rules" bson:"flight_rules" validate:"required,oneof=VFR IFR"`
	NightMinutes   int       `json:"night_minutes" bson:"night_minutes" validate:"min=0"`
	IFRMinutes     int       `json:"ifr_minutes" bson:"ifr_minutes" validate:"min=0"`
	FuelLitres     float64   `json:"fuel_litres" bson:"fuel_litres" validate:"min=0"`
	FlightType     string    `json:"flight_type" bson:"flight_type" validate:"omitempty,max=50"`
	Details        string    `json:"details,omitempty" bson:"details" validate:"omitempty,max=2000"`
	BillingDetails string    `json:"billing_details,omitempty" bson:"billing_details" validate:"omitempty,max=500"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// BlockTime is the time between off-block and on-block.
func (e *LogEntry) BlockTime() time.Duration {
	return e.OnBlock.Sub(e.OffBlock)
}

// AirborneTime is the time between takeoff and landing.
func (e *LogEntry) AirborneTime() time.Duration {
	return e.Landing.Sub(e.Takeoff)
}

type LogEntryUpdate struct {
	Aircraft       string     `json:"aircraft,omitempty" validate:"omitempty,min=2,max=16"`
	Date           *time.Time `json:"date,omitempty"`
	PIC            string     `json:"pic,omitempty" validate:"omitempty,min=2,max=100"`
	PeopleOnBoard  *int       `json:"people_on_board,omitempty" validate:"omitempty,min=1,max=20"`
	Departure      string     `json:"departure,omitempty" validate:"omitempty,min=2,max=8"`
	Arrival        string     `json:"arrival,omitempty" validate:"omitempty,min=2,max=8"`
	OffBlock       *time.Time `json:"off_block,omitempty"`
	Takeoff        *time.Time `json:"takeoff,omitempty"`
	Landing        *time.Time `json:"landing,omitempty"`
	OnBlock        *time.Time `json:"on_block,omitempty"`
	Landings       *int       `json:"landings,omitempty" validate:"omitempty,min=0,max=100"`
	FlightRules    string     `json:"flight_rules,omitempty" validate:"omitempty,oneof=VFR IFR"`
	NightMinutes   *int       `json:"night_minutes,omitempty" validate:"omitempty,min=0"`
	IFRMinutes     *int       `json:"ifr_minutes,omitempty" validate:"omitempty,min=0"`
	FuelLitres     *float64   `json:"fuel_litres,omitempty" validate:"omitempty,min=0"`
	FlightType     *string    `json:"flight_type,omitempty" validate:"omitempty,max=50"`
	Details        *string    `json:"details,omitempty" validate:"omitempty,max=2000"`
	BillingDetails *string    `json:"billing_details,omitempty" validate:"omitempty,max=500"`
}

// FlightTotals is the accumulated block time a member flew on one aircraft.
type FlightTotals struct {
	Aircraft     string `json:"aircraft" bson:"_id"`
	Flights      int    `json:"flights" bson:"flights"`
	Landings     int    `json:"landings" bson:"landings"`
	BlockMinutes int64  `json:"block_minutes" bson:"block_minutes"`
	Formatted    string `json:"formatted" bson:"-"`
}
