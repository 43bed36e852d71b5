package rules

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tricount-api/internal/core/domain"
)

var today = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func testTricount() *domain.Tricount {
	return &domain.Tricount{
		ID:             1,
		Title:          "Ski trip",
		CreatorID:      1,
		CreatedAt:      time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
		ParticipantIDs: []uint{1, 2, 3},
	}
}

func participant() *domain.User {
	return &domain.User{ID: 2, Role: domain.RoleUser}
}

func admin() *domain.User {
	return &domain.User{ID: 99, Role: domain.RoleAdmin}
}

func validOperationInput() SaveOperationInput {
	return SaveOperationInput{
		Title:         "Groceries",
		Amount:        decimal.RequireFromString("42.50"),
		OperationDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		TricountID:    1,
		InitiatorID:   2,
		Repartitions: []domain.Repartition{
			{UserID: 1, Weight: 1},
			{UserID: 2, Weight: 2},
		},
	}
}

func messagesOf(t *testing.T, err error) []string {
	t.Helper()
	if err == nil {
		t.Fatal("expected a validation error, got nil")
	}
	ve, ok := domain.AsValidationError(err)
	if !ok {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	return ve.Messages
}

func assertHasMessage(t *testing.T, err error, want string) {
	t.Helper()
	for _, msg := range messagesOf(t, err) {
		if msg == want {
			return
		}
	}
	t.Errorf("missing message %q in %v", want, err)
}

func TestValidateSaveOperationValid(t *testing.T) {
	err := ValidateSaveOperation(participant(), testTricount(), nil, validOperationInput(), today)
	if err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}

func TestValidateSaveOperationFieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SaveOperationInput)
		message string
	}{
		{
			name:    "empty title",
			mutate:  func(in *SaveOperationInput) { in.Title = "   " },
			message: MsgTitleRequired,
		},
		{
			name:    "short title",
			mutate:  func(in *SaveOperationInput) { in.Title = " ab " },
			message: MsgTitleTooShort,
		},
		{
			name:    "zero amount",
			mutate:  func(in *SaveOperationInput) { in.Amount = decimal.Zero },
			message: MsgAmountTooSmall,
		},
		{
			name:    "sub-cent amount",
			mutate:  func(in *SaveOperationInput) { in.Amount = decimal.RequireFromString("0.009") },
			message: MsgAmountTooSmall,
		},
		{
			name:    "missing date",
			mutate:  func(in *SaveOperationInput) { in.OperationDate = time.Time{} },
			message: MsgOperationDateMissing,
		},
		{
			name: "date before tricount creation",
			mutate: func(in *SaveOperationInput) {
				in.OperationDate = time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
			},
			message: MsgOperationDateRange,
		},
		{
			name: "date in the future",
			mutate: func(in *SaveOperationInput) {
				in.OperationDate = today.AddDate(0, 0, 1)
			},
			message: MsgOperationDateRange,
		},
		{
			name:    "no repartitions",
			mutate:  func(in *SaveOperationInput) { in.Repartitions = nil },
			message: MsgRepartitionsEmpty,
		},
		{
			name: "zero weight",
			mutate: func(in *SaveOperationInput) {
				in.Repartitions = []domain.Repartition{{UserID: 1, Weight: 0}}
			},
			message: MsgWeightsNotPositive,
		},
		{
			name: "duplicate repartition user",
			mutate: func(in *SaveOperationInput) {
				in.Repartitions = []domain.Repartition{
					{UserID: 1, Weight: 1},
					{UserID: 1, Weight: 2},
				}
			},
			message: MsgRepartitionsDistinct,
		},
		{
			name: "repartition user outside tricount",
			mutate: func(in *SaveOperationInput) {
				in.Repartitions = []domain.Repartition{
					{UserID: 1, Weight: 1},
					{UserID: 42, Weight: 1},
				}
			},
			message: MsgRepartitionsNotParticipants,
		},
		{
			name:    "missing initiator",
			mutate:  func(in *SaveOperationInput) { in.InitiatorID = 0 },
			message: MsgInitiatorRequired,
		},
		{
			name:    "initiator outside tricount",
			mutate:  func(in *SaveOperationInput) { in.InitiatorID = 42 },
			message: MsgInitiatorNotParticipant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validOperationInput()
			tt.mutate(&in)
			err := ValidateSaveOperation(participant(), testTricount(), nil, in, today)
			assertHasMessage(t, err, tt.message)
		})
	}
}

func TestValidateSaveOperationDateEdges(t *testing.T) {
	// Creation day and today are both inclusive; time-of-day is ignored.
	for _, date := range []time.Time{
		time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	} {
		in := validOperationInput()
		in.OperationDate = date
		if err := ValidateSaveOperation(participant(), testTricount(), nil, in, today); err != nil {
			t.Errorf("date %s should be accepted, got %v", date, err)
		}
	}
}

func TestValidateSaveOperationCollectsAllFailures(t *testing.T) {
	in := validOperationInput()
	in.Title = ""
	in.Amount = decimal.Zero
	in.Repartitions = nil

	msgs := messagesOf(t, ValidateSaveOperation(participant(), testTricount(), nil, in, today))
	if len(msgs) < 3 {
		t.Errorf("expected at least 3 messages, got %v", msgs)
	}
}

func TestValidateSaveOperationAccess(t *testing.T) {
	outsider := &domain.User{ID: 42, Role: domain.RoleUser}
	err := ValidateSaveOperation(outsider, testTricount(), nil, validOperationInput(), today)
	if err != domain.ErrAccessDenied {
		t.Errorf("expected ErrAccessDenied, got %v", err)
	}

	// Admins may save without participating.
	if err := ValidateSaveOperation(admin(), testTricount(), nil, validOperationInput(), today); err != nil {
		t.Errorf("admin should pass, got %v", err)
	}
}

func TestValidateSaveOperationUpdateWrongTricount(t *testing.T) {
	in := validOperationInput()
	in.ID = 7
	existing := &domain.Operation{ID: 7, TricountID: 2}

	err := ValidateSaveOperation(participant(), testTricount(), existing, in, today)
	assertHasMessage(t, err, MsgOperationWrongTricount)
}
