package rules

import (
	"regexp"
	"strings"

	"tricount-api/internal/core/domain"
)

const (
	MsgEmailRequired      = "Email is required."
	MsgEmailInvalid       = "Email is not a valid email address."
	MsgEmailTaken         = "Email is already in use."
	MsgFullNameRequired   = "Full name is required."
	MsgFullNameTooShort   = "Full name must be at least 3 characters."
	MsgFullNameTaken      = "Full name is already in use."
	MsgPasswordRequired   = "Password is required."
	MsgPasswordTooShort   = "Password must be at least 8 characters."
	MsgPasswordNoDigit    = "Password must contain at least one digit."
	MsgPasswordNoUpper    = "Password must contain at least one uppercase letter."
	MsgPasswordNoSymbol   = "Password must contain at least one non-alphanumeric character."
	MsgIbanInvalid        = "IBAN must match the pattern 'AA99 9999 9999 9999'."
	MsgBadCredentials     = "Incorrect email or password."
)

var (
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	ibanPattern     = regexp.MustCompile(`^[A-Z]{2}\d{2}(?: \d{4}){3}$`)
	digitPattern    = regexp.MustCompile(`\d`)
	upperPattern    = regexp.MustCompile(`[A-Z]`)
	nonAlnumPattern = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// SignupInput carries the proposed signup fields.
type SignupInput struct {
	Email    string
	FullName string
	Password string
	Iban     string
}

// ValidateSignup checks the signup field rules. emailTaken and nameTaken
// are uniqueness probes resolved by the caller against current storage.
func ValidateSignup(in SignupInput, emailTaken, nameTaken bool) error {
	var messages []string

	email := strings.TrimSpace(in.Email)
	switch {
	case email == "":
		messages = append(messages, MsgEmailRequired)
	case !emailPattern.MatchString(email):
		messages = append(messages, MsgEmailInvalid)
	case emailTaken:
		messages = append(messages, MsgEmailTaken)
	}

	name := strings.TrimSpace(in.FullName)
	switch {
	case name == "":
		messages = append(messages, MsgFullNameRequired)
	case len([]rune(name)) < 3:
		messages = append(messages, MsgFullNameTooShort)
	case nameTaken:
		messages = append(messages, MsgFullNameTaken)
	}

	messages = append(messages, passwordMessages(in.Password)...)

	if iban := strings.TrimSpace(in.Iban); iban != "" && !ibanPattern.MatchString(strings.ToUpper(iban)) {
		messages = append(messages, MsgIbanInvalid)
	}

	return domain.NewValidationError(messages)
}

func passwordMessages(password string) []string {
	if password == "" {
		return []string{MsgPasswordRequired}
	}

	var messages []string
	if len(password) < 8 {
		messages = append(messages, MsgPasswordTooShort)
	}
	if !digitPattern.MatchString(password) {
		messages = append(messages, MsgPasswordNoDigit)
	}
	if !upperPattern.MatchString(password) {
		messages = append(messages, MsgPasswordNoUpper)
	}
	if !nonAlnumPattern.MatchString(password) {
		messages = append(messages, MsgPasswordNoSymbol)
	}
	return messages
}

// ValidateLogin checks the login field rules; the credential check
// itself happens in the auth service against the stored hash.
func ValidateLogin(email, password string) error {
	var messages []string

	e := strings.TrimSpace(email)
	switch {
	case e == "":
		messages = append(messages, MsgEmailRequired)
	case !emailPattern.MatchString(e):
		messages = append(messages, MsgEmailInvalid)
	}

	if password == "" {
		messages = append(messages, MsgPasswordRequired)
	}

	return domain.NewValidationError(messages)
}
