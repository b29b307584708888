package model

import "time"

type Aircraft struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Registration string    `json:"registration" bson:"registration" validate:"required,registration"`
	Model        string    `json:"model" bson:"model" validate:"required,min=2,max=100"`
	Active       bool      `json:"active" bson:"active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type AircraftUpdate struct {
	Registration string `json:"registration,omitempty" validate:"omitempty,registration"`
	Model        string `json:"model,omitempty" validate:"omitempty,min=2,max=100"`
	Active       *bool  `json:"active,omitempty"`
}
