package rules

import (
	"testing"

	"github.com/shopspring/decimal"

	"tricount-api/internal/core/domain"
)

func usersExist(ids ...uint) map[uint]struct{} {
	m := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

func createSnapshot() TricountSnapshot {
	return TricountSnapshot{ExistingUserIDs: usersExist(1, 2, 3, 4)}
}

func updateSnapshot() TricountSnapshot {
	return TricountSnapshot{
		Existing:        testTricount(),
		ExistingUserIDs: usersExist(1, 2, 3, 4),
	}
}

func TestValidateSaveTricountCreateValid(t *testing.T) {
	in := SaveTricountInput{Title: "Trip", ParticipantIDs: []uint{1, 2}}
	if err := ValidateSaveTricount(participant(), createSnapshot(), in); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}

func TestValidateSaveTricountFieldRules(t *testing.T) {
	tests := []struct {
		name    string
		snap    TricountSnapshot
		in      SaveTricountInput
		message string
	}{
		{
			name:    "empty title",
			snap:    createSnapshot(),
			in:      SaveTricountInput{Title: "  "},
			message: MsgTitleRequired,
		},
		{
			name:    "short title",
			snap:    createSnapshot(),
			in:      SaveTricountInput{Title: "ab"},
			message: MsgTitleTooShort,
		},
		{
			name:    "short description",
			snap:    createSnapshot(),
			in:      SaveTricountInput{Title: "Trip", Description: " ab "},
			message: MsgDescriptionTooShort,
		},
		{
			name:    "unknown participant",
			snap:    createSnapshot(),
			in:      SaveTricountInput{Title: "Trip", ParticipantIDs: []uint{1, 42}},
			message: MsgParticipantNotFound,
		},
		{
			name:    "title taken for creator",
			snap:    TricountSnapshot{ExistingUserIDs: usersExist(1), TitleTaken: true},
			in:      SaveTricountInput{Title: "Trip", ParticipantIDs: []uint{1}},
			message: MsgTitleNotUnique,
		},
		{
			name:    "update with empty participants",
			snap:    updateSnapshot(),
			in:      SaveTricountInput{ID: 1, Title: "Trip"},
			message: MsgParticipantsEmpty,
		},
		{
			name:    "update removing creator",
			snap:    updateSnapshot(),
			in:      SaveTricountInput{ID: 1, Title: "Trip", ParticipantIDs: []uint{2, 3}},
			message: MsgCreatorRemoved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSaveTricount(participant(), tt.snap, tt.in)
			assertHasMessage(t, err, tt.message)
		})
	}
}

func TestValidateSaveTricountWhitespaceDescriptionIsAbsent(t *testing.T) {
	in := SaveTricountInput{Title: "Trip", Description: "   ", ParticipantIDs: []uint{1}}
	snap := TricountSnapshot{ExistingUserIDs: usersExist(1)}
	if err := ValidateSaveTricount(participant(), snap, in); err != nil {
		t.Fatalf("whitespace description must not fail, got %v", err)
	}
}

func TestValidateSaveTricountAdminCannotRemoveCreator(t *testing.T) {
	// The participant-protection rules apply regardless of role.
	in := SaveTricountInput{ID: 1, Title: "Trip", ParticipantIDs: []uint{2, 3}}
	err := ValidateSaveTricount(admin(), updateSnapshot(), in)
	assertHasMessage(t, err, MsgCreatorRemoved)
}

func TestValidateSaveTricountRemovingInvolvedParticipant(t *testing.T) {
	snap := updateSnapshot()
	snap.Existing.Operations = []domain.Operation{
		{
			ID:          10,
			Amount:      decimal.RequireFromString("10.00"),
			InitiatorID: 1,
			Repartitions: []domain.Repartition{
				{UserID: 1, Weight: 1},
				{UserID: 3, Weight: 1},
			},
		},
	}

	in := SaveTricountInput{ID: 1, Title: "Trip", ParticipantIDs: []uint{1, 2}}
	err := ValidateSaveTricount(participant(), snap, in)
	assertHasMessage(t, err, MsgInvolvedParticipantRemoved)
}

func TestValidateSaveTricountRemovingOwnParticipation(t *testing.T) {
	// Actor 2 participates and tries to drop themselves.
	in := SaveTricountInput{ID: 1, Title: "Trip", ParticipantIDs: []uint{1, 3}}
	err := ValidateSaveTricount(participant(), updateSnapshot(), in)
	assertHasMessage(t, err, MsgOwnParticipationRemoved)
}

func TestValidateSaveTricountUpdateAccess(t *testing.T) {
	outsider := &domain.User{ID: 42, Role: domain.RoleUser}
	in := SaveTricountInput{ID: 1, Title: "Trip", ParticipantIDs: []uint{1, 2, 3}}

	if err := ValidateSaveTricount(outsider, updateSnapshot(), in); err != domain.ErrAccessDenied {
		t.Errorf("expected ErrAccessDenied, got %v", err)
	}
	if err := ValidateSaveTricount(admin(), updateSnapshot(), in); err != nil {
		t.Errorf("admin should pass, got %v", err)
	}
}

func TestValidateDeleteTricount(t *testing.T) {
	tc := testTricount() // creator is user 1

	if err := ValidateDeleteTricount(&domain.User{ID: 1}, tc); err != nil {
		t.Errorf("creator should delete, got %v", err)
	}
	if err := ValidateDeleteTricount(admin(), tc); err != nil {
		t.Errorf("admin should delete, got %v", err)
	}
	if err := ValidateDeleteTricount(participant(), tc); err != domain.ErrAccessDenied {
		t.Errorf("non-creator participant must not delete, got %v", err)
	}
}

func TestValidateDeleteOperation(t *testing.T) {
	tc := testTricount()

	if err := ValidateDeleteOperation(participant(), tc); err != nil {
		t.Errorf("participant should delete, got %v", err)
	}
	if err := ValidateDeleteOperation(&domain.User{ID: 42}, tc); err != domain.ErrAccessDenied {
		t.Errorf("outsider must not delete, got %v", err)
	}
}

func TestDedupeParticipantIDs(t *testing.T) {
	got := DedupeParticipantIDs([]uint{3, 1, 3, 2, 1})
	want := []uint{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  Ski Trip "); got != "ski trip" {
		t.Errorf("Normalize = %q, want %q", got, "ski trip")
	}
}
