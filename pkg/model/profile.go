package model

import "time"

const (
	RoleMember     = "member"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// Profile is keyed by the member id.
type Profile struct {
	MemberID      string    `json:"member_id" bson:"_id" validate:"required,max=64"`
	Email         string    `json:"email,omitempty" bson:"email" validate:"omitempty,email,max=254"`
	Phone         string    `json:"phone,omitempty" bson:"phone" validate:"omitempty,e164"`
	FullName      string    `json:"full_name,omitempty" bson:"full_name" validate:"omitempty,max=100"`
	Username      string    `json:"username,omitempty" bson:"username" validate:"omitempty,min=2,max=50"`
	StreetAddress string    `json:"street_address,omitempty" bson:"street_address" validate:"omitempty,max=200"`
	City          string    `json:"city,omitempty" bson:"city" validate:"omitempty,max=100"`
	Country       string    `json:"country,omitempty" bson:"country" validate:"omitempty,max=100"`
	Postcode      string    `json:"postcode,omitempty" bson:"postcode" validate:"omitempty,max=16"`
	Role          string    `json:"role" bson:"role" validate:"required,oneof=member instructor admin"`
	Newsletter    bool      `json:"nf" bson:"nf"`
	UpdatedAt     time.Time `json:"updated_at,omitempty" bson:"updated_at"`
}

type ProfileUpdate struct {
	Email         *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Phone         *string `json:"phone,omitempty"`
	FullName      *string `json:"full_name,omitempty" validate:"omitempty,max=100"`
	Username      *string `json:"username,omitempty" validate:"omitempty,min=2,max=50"`
	StreetAddress *string `json:"street_address,omitempty" validate:"omitempty,max=200"`
	City          *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Country       *string `json:"country,omitempty" validate:"omitempty,max=100"`
	Postcode      *string `json:"postcode,omitempty" validate:"omitempty,max=16"`
	Role          *string `json:"role,omitempty" validate:"omitempty,oneof=member instructor admin"`
	Newsletter    *bool   `json:"nf,omitempty"`
}
