package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tricount-api/internal/core/domain"
)

// DateLayout is the wire format for operation dates (date only).
const DateLayout = "2006-01-02"

// User represents the users table
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Name         string    `gorm:"uniqueIndex;size:100;not null" json:"full_name"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Iban         *string   `gorm:"size:34" json:"iban"`
	Role         string    `gorm:"size:20;default:'USER'" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// ToDomain maps the row to the domain user
func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.Name,
		PasswordHash: u.PasswordHash,
		Iban:         u.Iban,
		Role:         domain.Role(u.Role),
	}
}

// UserResponse DTO
type UserResponse struct {
	ID       uint    `json:"id"`
	Email    string  `json:"email"`
	FullName string  `json:"full_name"`
	Iban     *string `json:"iban"`
	Role     string  `json:"role"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.Name,
		Iban:     u.Iban,
		Role:     u.Role,
	}
}

// Tricount represents the tricounts table. A tricount exclusively owns
// its operations; participants are shared references through the
// participations join table.
type Tricount struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description *string   `gorm:"size:255" json:"description"`
	CreatorID   uint      `gorm:"not null;index" json:"creator"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Creator      *User       `gorm:"foreignKey:CreatorID" json:"-"`
	Participants []User      `gorm:"many2many:participations" json:"participants,omitempty"`
	Operations   []Operation `gorm:"foreignKey:TricountID;constraint:OnDelete:CASCADE" json:"operations,omitempty"`
}

func (Tricount) TableName() string {
	return "tricounts"
}

// ToDomain maps the row (with participants and operations preloaded)
// to an immutable domain snapshot.
func (t *Tricount) ToDomain() *domain.Tricount {
	participantIDs := make([]uint, 0, len(t.Participants))
	for _, p := range t.Participants {
		participantIDs = append(participantIDs, p.ID)
	}

	operations := make([]domain.Operation, 0, len(t.Operations))
	for i := range t.Operations {
		operations = append(operations, *t.Operations[i].ToDomain())
	}

	return &domain.Tricount{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		CreatorID:      t.CreatorID,
		CreatedAt:      t.CreatedAt,
		ParticipantIDs: participantIDs,
		Operations:     operations,
	}
}

// TricountResponse DTO
type TricountResponse struct {
	ID           uint                 `json:"id"`
	Title        string               `json:"title"`
	Description  *string              `json:"description"`
	CreatedAt    time.Time            `json:"created_at"`
	CreatorID    uint                 `json:"creator"`
	Participants []*UserResponse      `json:"participants"`
	Operations   []*OperationResponse `json:"operations"`
}

func (t *Tricount) ToResponse() *TricountResponse {
	participants := make([]*UserResponse, 0, len(t.Participants))
	for i := range t.Participants {
		participants = append(participants, t.Participants[i].ToResponse())
	}

	operations := make([]*OperationResponse, 0, len(t.Operations))
	for i := range t.Operations {
		operations = append(operations, t.Operations[i].ToResponse())
	}

	return &TricountResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		CreatedAt:    t.CreatedAt,
		CreatorID:    t.CreatorID,
		Participants: participants,
		Operations:   operations,
	}
}

// Participation represents the user<->tricount join table
type Participation struct {
	TricountID uint `gorm:"primaryKey" json:"tricount_id"`
	UserID     uint `gorm:"primaryKey" json:"user_id"`
}

func (Participation) TableName() string {
	return "participations"
}

// Operation represents the operations table
type Operation struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Title         string          `gorm:"size:100;not null" json:"title"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	OperationDate time.Time       `gorm:"type:date;not null" json:"-"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	InitiatorID   uint            `gorm:"not null;index" json:"initiator"`
	TricountID    uint            `gorm:"not null;index" json:"tricount_id"`

	Initiator    *User         `gorm:"foreignKey:InitiatorID" json:"-"`
	Tricount     *Tricount     `gorm:"foreignKey:TricountID" json:"-"`
	Repartitions []Repartition `gorm:"foreignKey:OperationID;constraint:OnDelete:CASCADE" json:"repartitions,omitempty"`
}

func (Operation) TableName() string {
	return "operations"
}

// ToDomain maps the row (with repartitions preloaded) to the domain
// operation.
func (o *Operation) ToDomain() *domain.Operation {
	reps := make([]domain.Repartition, 0, len(o.Repartitions))
	for _, r := range o.Repartitions {
		reps = append(reps, domain.Repartition{UserID: r.UserID, Weight: r.Weight})
	}

	return &domain.Operation{
		ID:            o.ID,
		Title:         o.Title,
		Amount:        o.Amount,
		OperationDate: o.OperationDate,
		CreatedAt:     o.CreatedAt,
		InitiatorID:   o.InitiatorID,
		TricountID:    o.TricountID,
		Repartitions:  reps,
	}
}

// OperationResponse DTO
type OperationResponse struct {
	ID            uint                   `json:"id"`
	Title         string                 `json:"title"`
	Amount        decimal.Decimal        `json:"amount"`
	OperationDate string                 `json:"operation_date"`
	CreatedAt     time.Time              `json:"created_at"`
	InitiatorID   uint                   `json:"initiator"`
	TricountID    uint                   `json:"tricount_id"`
	Repartitions  []*RepartitionResponse `json:"repartitions"`
}

// RepartitionResponse DTO
type RepartitionResponse struct {
	UserID uint `json:"user"`
	Weight int  `json:"weight"`
}

func (o *Operation) ToResponse() *OperationResponse {
	reps := make([]*RepartitionResponse, 0, len(o.Repartitions))
	for _, r := range o.Repartitions {
		reps = append(reps, &RepartitionResponse{UserID: r.UserID, Weight: r.Weight})
	}

	return &OperationResponse{
		ID:            o.ID,
		Title:         o.Title,
		Amount:        o.Amount,
		OperationDate: o.OperationDate.Format(DateLayout),
		CreatedAt:     o.CreatedAt,
		InitiatorID:   o.InitiatorID,
		TricountID:    o.TricountID,
		Repartitions:  reps,
	}
}

// Repartition represents the repartitions table. Composite identity:
// one user appears at most once per operation.
type Repartition struct {
	OperationID uint `gorm:"primaryKey" json:"operation_id"`
	UserID      uint `gorm:"primaryKey" json:"user"`
	Weight      int  `gorm:"not null" json:"weight"`
}

func (Repartition) TableName() string {
	return "repartitions"
}

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Tricount{},
		&Participation{},
		&Operation{},
		&Repartition{},
	)
}

// DropAll drops every table; used by the database reset endpoint.
func DropAll(db *gorm.DB) error {
	return db.Migrator().DropTable(
		&Repartition{},
		&Operation{},
		&Participation{},
		&Tricount{},
		&RefreshToken{},
		&User{},
	)
}
