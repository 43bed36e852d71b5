package jwt

import "testing"

const testSecret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(7, "boris@example.com", "Boris", "USER", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := ValidateAccessToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}

	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
	if claims.Email != "boris@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != "USER" {
		t.Errorf("Role = %q", claims.Role)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(7, "boris@example.com", "Boris", "USER", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := ValidateAccessToken(token, "other-secret"); err != ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken(7, "boris@example.com", "Boris", "USER", testSecret, -1)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := ValidateAccessToken(token, testSecret); err != ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(7, "token-id-1", testSecret, 7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	claims, err := ValidateRefreshToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateRefreshToken failed: %v", err)
	}

	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
	if claims.TokenID != "token-id-1" {
		t.Errorf("TokenID = %q", claims.TokenID)
	}
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	// Both token kinds are HS256 JWTs; the claim shape keeps them apart
	// only when the secrets differ.
	refresh, err := GenerateRefreshToken(7, "token-id-1", "refresh-secret", 7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	if _, err := ValidateAccessToken(refresh, testSecret); err == nil {
		t.Error("refresh token must not validate as access token under a different secret")
	}
}
