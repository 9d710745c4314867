package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func TestTokenRoundTrip(t *testing.T) {
	j := NewJWTUtil("unit-secret")

	token, err := j.GenerateToken("user-1", "Asha", "asha@example.com", "epr_team")
	if err != nil {
		t.Fatalf("GenerateToken returned %v", err)
	}

	claims, err := j.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned %v", err)
	}
	if claims.UserID != "user-1" || claims.Name != "Asha" ||
		claims.Email != "asha@example.com" || claims.Role != "epr_team" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.JTI == "" {
		t.Error("token carries no jti")
	}

	ttl := time.Until(claims.Exp)
	if ttl < 7*time.Hour || ttl > 9*time.Hour {
		t.Errorf("expiry %v away, want about 8h", ttl)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewJWTUtil("secret-a").GenerateToken("u", "n", "e@x.com", "customer")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewJWTUtil("secret-b").ValidateToken(token); err == nil {
		t.Fatal("token signed with a different secret must not validate")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-1",
		"role":    "customer",
		"exp":     time.Now().Add(-time.Minute).Unix(),
		"iat":     time.Now().Add(-9 * time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("unit-secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewJWTUtil("unit-secret").ValidateToken(signed); err == nil {
		t.Fatal("expired token must not validate")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	if _, err := NewJWTUtil("s").ValidateToken("not.a.token"); err == nil {
		t.Fatal("garbage token must not validate")
	}
}

func TestGenerateCode(t *testing.T) {
	code := GenerateCode(10)
	if len(code) != 10 {
		t.Errorf("code length = %d, want 10", len(code))
	}
}
