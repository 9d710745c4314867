package utils

import (
	"errors"
	"math/rand"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// A login token is good for 8 hours.
const tokenTTL = 8 * time.Hour

type JWTUtil struct {
	secret string
}

func NewJWTUtil(secret string) *JWTUtil {
	return &JWTUtil{secret: secret}
}

// Claims decoded from a bearer token.
type Claims struct {
	UserID string
	Name   string
	Email  string
	Role   string
	JTI    string
	Exp    time.Time
}

func (j *JWTUtil) GenerateToken(userID, name, email, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"name":    name,
		"email":   email,
		"role":    role,
		"exp":     now.Add(tokenTTL).Unix(),
		"iat":     now.Unix(),
		"jti":     GenerateCode(10),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secret))
}

func (j *JWTUtil) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.secret), nil
	})
	if err != nil || !token.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	claims := &Claims{
		UserID: stringClaim(mapClaims, "user_id"),
		Name:   stringClaim(mapClaims, "name"),
		Email:  stringClaim(mapClaims, "email"),
		Role:   stringClaim(mapClaims, "role"),
		JTI:    stringClaim(mapClaims, "jti"),
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.Exp = time.Unix(int64(exp), 0)
	}
	return claims, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

const codeCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func GenerateCode(length int) string {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, length)
	for i := range b {
		b[i] = codeCharset[seededRand.Intn(len(codeCharset))]
	}
	return string(b)
}
