package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role represents user role in the system
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User represents a registered user in the domain layer
type User struct {
	ID           uint
	Email        string
	FullName     string
	PasswordHash string
	Iban         *string
	Role         Role
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Repartition assigns a weighted share of an operation to one user
type Repartition struct {
	UserID uint
	Weight int
}

// Operation represents a single expense paid by one participant
type Operation struct {
	ID            uint
	Title         string
	Amount        decimal.Decimal
	OperationDate time.Time // date only, time-of-day is ignored
	CreatedAt     time.Time
	InitiatorID   uint
	TricountID    uint
	Repartitions  []Repartition
}

// Tricount is a point-in-time snapshot of a group with its participants
// and operations fully loaded. Relationships are expressed as id
// references, not back-pointers, so the snapshot can be treated as
// immutable by the balance engine and the validation rules.
type Tricount struct {
	ID             uint
	Title          string
	Description    *string
	CreatorID      uint
	CreatedAt      time.Time
	ParticipantIDs []uint
	Operations     []Operation
}

// IsParticipant reports whether userID participates in the tricount
func (t *Tricount) IsParticipant(userID uint) bool {
	for _, id := range t.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// InvolvedUserIDs returns the ids of every user who initiated an
// operation or appears in a repartition of this tricount.
func (t *Tricount) InvolvedUserIDs() map[uint]struct{} {
	involved := make(map[uint]struct{})
	for _, op := range t.Operations {
		involved[op.InitiatorID] = struct{}{}
		for _, rep := range op.Repartitions {
			involved[rep.UserID] = struct{}{}
		}
	}
	return involved
}
