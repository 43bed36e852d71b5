package rules

import "testing"

func validSignup() SignupInput {
	return SignupInput{
		Email:    "alice@example.com",
		FullName: "Alice Smith",
		Password: "Str0ng!pass",
	}
}

func TestValidateSignupValid(t *testing.T) {
	if err := ValidateSignup(validSignup(), false, false); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}

func TestValidateSignupWithIban(t *testing.T) {
	in := validSignup()
	in.Iban = "BE68 5390 0754 7034"
	if err := ValidateSignup(in, false, false); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}

func TestValidateSignupFieldRules(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*SignupInput)
		emailTaken bool
		nameTaken  bool
		message    string
	}{
		{
			name:    "empty email",
			mutate:  func(in *SignupInput) { in.Email = " " },
			message: MsgEmailRequired,
		},
		{
			name:    "malformed email",
			mutate:  func(in *SignupInput) { in.Email = "not-an-email" },
			message: MsgEmailInvalid,
		},
		{
			name:       "taken email",
			mutate:     func(in *SignupInput) {},
			emailTaken: true,
			message:    MsgEmailTaken,
		},
		{
			name:    "short full name",
			mutate:  func(in *SignupInput) { in.FullName = " ab " },
			message: MsgFullNameTooShort,
		},
		{
			name:      "taken full name",
			mutate:    func(in *SignupInput) {},
			nameTaken: true,
			message:   MsgFullNameTaken,
		},
		{
			name:    "short password",
			mutate:  func(in *SignupInput) { in.Password = "S1!a" },
			message: MsgPasswordTooShort,
		},
		{
			name:    "password without digit",
			mutate:  func(in *SignupInput) { in.Password = "Strong!pass" },
			message: MsgPasswordNoDigit,
		},
		{
			name:    "password without uppercase",
			mutate:  func(in *SignupInput) { in.Password = "str0ng!pass" },
			message: MsgPasswordNoUpper,
		},
		{
			name:    "password without symbol",
			mutate:  func(in *SignupInput) { in.Password = "Str0ngpass" },
			message: MsgPasswordNoSymbol,
		},
		{
			name:    "bad iban",
			mutate:  func(in *SignupInput) { in.Iban = "BE1234" },
			message: MsgIbanInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSignup()
			tt.mutate(&in)
			err := ValidateSignup(in, tt.emailTaken, tt.nameTaken)
			assertHasMessage(t, err, tt.message)
		})
	}
}

func TestValidateLogin(t *testing.T) {
	if err := ValidateLogin("bob@example.com", "secret"); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
	assertHasMessage(t, ValidateLogin("", "secret"), MsgEmailRequired)
	assertHasMessage(t, ValidateLogin("bob@example.com", ""), MsgPasswordRequired)
}
