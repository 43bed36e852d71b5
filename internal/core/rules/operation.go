package rules

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tricount-api/internal/core/domain"
)

// Rule messages are keyed stably so clients and tests can match on them.
const (
	MsgTitleRequired        = "Title is required."
	MsgTitleTooShort        = "Title must be at least 3 characters."
	MsgAmountTooSmall       = "Amount must be at least 0.01€"
	MsgOperationDateMissing = "Operation date is required."
	MsgOperationDateRange   = "Operation date must be on/after tricount creation and not in the future."
	MsgRepartitionsEmpty    = "Repartitions must not be empty."
	MsgWeightsNotPositive   = "Weights must be strictly positive."
	MsgRepartitionsDistinct = "Participants in repartitions must be distinct."
	MsgRepartitionsNotParticipants = "All repartition users must be tricount participants."
	MsgInitiatorRequired    = "Initiator is required."
	MsgInitiatorNotParticipant = "Initiator must be a participant of the tricount."
	MsgOperationWrongTricount  = "Operation does not belong to the specified tricount."
)

var minAmount = decimal.RequireFromString("0.01")

// SaveOperationInput carries the proposed operation fields. ID zero
// means create, positive means update.
type SaveOperationInput struct {
	ID            uint
	Title         string
	Amount        decimal.Decimal
	OperationDate time.Time
	TricountID    uint
	InitiatorID   uint
	Repartitions  []domain.Repartition
}

// ValidateSaveOperation decides whether the proposed create/update may
// proceed. All inputs are in-memory snapshots loaded up front by the
// caller: tricount is the target group (must be non-nil, existence is
// checked before the rules run), existing is the stored operation on
// update (nil on create), today bounds the date range.
//
// Returns domain.ErrAccessDenied when the actor is neither admin nor a
// participant, otherwise a *domain.ValidationError listing every failing
// rule, or nil when everything passes.
func ValidateSaveOperation(actor *domain.User, tricount *domain.Tricount, existing *domain.Operation, in SaveOperationInput, today time.Time) error {
	if !actor.IsAdmin() && !tricount.IsParticipant(actor.ID) {
		return domain.ErrAccessDenied
	}

	var messages []string

	messages = appendTitleMessages(messages, in.Title)

	if in.Amount.LessThan(minAmount) {
		messages = append(messages, MsgAmountTooSmall)
	}

	if in.OperationDate.IsZero() {
		messages = append(messages, MsgOperationDateMissing)
	} else if !dateInRange(in.OperationDate, tricount.CreatedAt, today) {
		messages = append(messages, MsgOperationDateRange)
	}

	messages = append(messages, repartitionMessages(tricount, in.Repartitions)...)

	if in.InitiatorID == 0 {
		messages = append(messages, MsgInitiatorRequired)
	} else if !tricount.IsParticipant(in.InitiatorID) {
		messages = append(messages, MsgInitiatorNotParticipant)
	}

	if in.ID > 0 && existing != nil && existing.TricountID != in.TricountID {
		messages = append(messages, MsgOperationWrongTricount)
	}

	return domain.NewValidationError(messages)
}

func appendTitleMessages(messages []string, title string) []string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return append(messages, MsgTitleRequired)
	}
	if len([]rune(trimmed)) < 3 {
		return append(messages, MsgTitleTooShort)
	}
	return messages
}

func repartitionMessages(tricount *domain.Tricount, reps []domain.Repartition) []string {
	if len(reps) == 0 {
		return []string{MsgRepartitionsEmpty}
	}

	var messages []string

	for _, rep := range reps {
		if rep.Weight <= 0 {
			messages = append(messages, MsgWeightsNotPositive)
			break
		}
	}

	seen := make(map[uint]struct{}, len(reps))
	distinct := true
	for _, rep := range reps {
		if _, dup := seen[rep.UserID]; dup {
			distinct = false
			break
		}
		seen[rep.UserID] = struct{}{}
	}
	if !distinct {
		messages = append(messages, MsgRepartitionsDistinct)
	}

	for _, rep := range reps {
		if !tricount.IsParticipant(rep.UserID) {
			messages = append(messages, MsgRepartitionsNotParticipants)
			break
		}
	}

	return messages
}

// dateInRange compares dates only, ignoring time-of-day.
func dateInRange(d, min, max time.Time) bool {
	day := toDate(d)
	return !day.Before(toDate(min)) && !day.After(toDate(max))
}

func toDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
