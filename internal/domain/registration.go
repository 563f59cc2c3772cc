package domain

import (
	"time"

	"github.com/google/uuid"
)

// Registration is an investor application. It is linked to an Identity but
// outlives it: deleting the identity clears UserID and keeps the record.
type Registration struct {
	ID                    uuid.UUID           `db:"id"`
	UserID                *uuid.UUID          `db:"user_id"`
	Email                 string              `db:"email"`
	FirstName             string              `db:"first_name"`
	LastName              string              `db:"last_name"`
	Company               string              `db:"company"`
	Role                  string              `db:"role"`
	Phone                 string              `db:"phone"`
	InvestmentPreferences []string            `db:"investment_preferences"`
	AccreditationStatus   AccreditationStatus `db:"accreditation_status"`
	CapacityRange         CapacityRange       `db:"investment_capacity_range"`
	Status                InvestorStatus      `db:"status"`
	CreatedAt             time.Time           `db:"created_at"`
	UpdatedAt             time.Time           `db:"updated_at"`
	DecidedAt             *time.Time          `db:"decided_at"`
}

// FullName returns "First Last".
func (r *Registration) FullName() string {
	return NormalizeName(r.FirstName + " " + r.LastName)
}

// RegistrationDecision is published when an admin approves or rejects a
// registration.
type RegistrationDecision struct {
	RegistrationID uuid.UUID
	UserID         *uuid.UUID
	Email          string
	Status         InvestorStatus
	DecidedBy      uuid.UUID
	DecidedAt      time.Time
}
