package rules

import (
	"strings"

	"tricount-api/internal/core/domain"
)

const (
	MsgDescriptionTooShort   = "Description must be at least 3 characters."
	MsgParticipantNotFound   = "Participant not found."
	MsgTitleNotUnique        = "Title must be unique per creator."
	MsgParticipantsEmpty     = "Participants must not be empty."
	MsgCreatorRemoved        = "You cannot remove the participation of the owner of a tricount."
	MsgInvolvedParticipantRemoved = "You cannot remove a participant implied in operations for this tricount."
	MsgOwnParticipationRemoved    = "You cannot remove your own participation."
)

// SaveTricountInput carries the proposed tricount fields. ID zero means
// create, positive means update. ParticipantIDs is the full desired
// participant set; duplicates are tolerated and de-duplicated by
// DedupeParticipantIDs before the rules run.
type SaveTricountInput struct {
	ID             uint
	Title          string
	Description    string
	ParticipantIDs []uint
}

// TricountSnapshot bundles the point-in-time state the save-tricount
// rules evaluate against, loaded in one pass by the service layer.
type TricountSnapshot struct {
	// Existing is the stored tricount on update, nil on create.
	Existing *domain.Tricount
	// ExistingUserIDs holds the requested participant ids that reference
	// an existing user.
	ExistingUserIDs map[uint]struct{}
	// TitleTaken reports whether another tricount of the same creator
	// already uses the normalized title.
	TitleTaken bool
}

// ValidateSaveTricount decides whether the proposed create/update may
// proceed. On update the actor must be admin or a current participant;
// the participant-protection rules below apply to every actor, admin
// included.
func ValidateSaveTricount(actor *domain.User, snap TricountSnapshot, in SaveTricountInput) error {
	isUpdate := in.ID > 0

	if isUpdate && !actor.IsAdmin() && !snap.Existing.IsParticipant(actor.ID) {
		return domain.ErrAccessDenied
	}

	var messages []string

	messages = appendTitleMessages(messages, in.Title)

	if desc := strings.TrimSpace(in.Description); desc != "" && len([]rune(desc)) < 3 {
		messages = append(messages, MsgDescriptionTooShort)
	}

	for _, id := range in.ParticipantIDs {
		if _, ok := snap.ExistingUserIDs[id]; !ok {
			messages = append(messages, MsgParticipantNotFound)
			break
		}
	}

	if snap.TitleTaken {
		messages = append(messages, MsgTitleNotUnique)
	}

	if isUpdate {
		messages = append(messages, updateMessages(actor, snap.Existing, in)...)
	}

	return domain.NewValidationError(messages)
}

func updateMessages(actor *domain.User, existing *domain.Tricount, in SaveTricountInput) []string {
	var messages []string

	desired := make(map[uint]struct{}, len(in.ParticipantIDs))
	for _, id := range in.ParticipantIDs {
		desired[id] = struct{}{}
	}

	if len(desired) == 0 {
		messages = append(messages, MsgParticipantsEmpty)
	}

	if _, kept := desired[existing.CreatorID]; !kept {
		messages = append(messages, MsgCreatorRemoved)
	}

	involved := existing.InvolvedUserIDs()
	for _, id := range existing.ParticipantIDs {
		if _, kept := desired[id]; kept {
			continue
		}
		if _, isInvolved := involved[id]; isInvolved {
			messages = append(messages, MsgInvolvedParticipantRemoved)
			break
		}
	}

	if existing.IsParticipant(actor.ID) {
		if _, kept := desired[actor.ID]; !kept {
			messages = append(messages, MsgOwnParticipationRemoved)
		}
	}

	return messages
}

// ValidateDeleteTricount allows admins and the tricount's creator.
func ValidateDeleteTricount(actor *domain.User, tricount *domain.Tricount) error {
	if actor.IsAdmin() || tricount.CreatorID == actor.ID {
		return nil
	}
	return domain.ErrAccessDenied
}

// ValidateDeleteOperation allows admins and participants of the
// operation's tricount.
func ValidateDeleteOperation(actor *domain.User, tricount *domain.Tricount) error {
	if actor.IsAdmin() || tricount.IsParticipant(actor.ID) {
		return nil
	}
	return domain.ErrAccessDenied
}

// ValidateGetBalance allows admins and participants to read a
// tricount's balance.
func ValidateGetBalance(actor *domain.User, tricount *domain.Tricount) error {
	if actor.IsAdmin() || tricount.IsParticipant(actor.ID) {
		return nil
	}
	return domain.ErrAccessDenied
}

// DedupeParticipantIDs drops duplicate ids, keeping the first occurrence
// and the original order. Duplicate participant ids on a tricount save
// are tolerated input, unlike duplicate repartition users on an
// operation, which are a hard validation error.
func DedupeParticipantIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Normalize trims and case-folds a candidate string for the
// case-insensitive uniqueness checks (emails, names, titles).
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
