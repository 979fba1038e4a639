package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AdminTokenTTL is how long an admin token stays valid
const AdminTokenTTL = 24 * time.Hour

// HashPassword creates a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a password against a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// AdminClaims is what an admin token carries
type AdminClaims struct {
	Email     string
	ExpiresAt time.Time
}

// GenerateAdminToken creates a JWT token for an admin
func GenerateAdminToken(email, secret string, now time.Time) (string, time.Time, error) {
	expires := now.Add(AdminTokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_email": email,
		"iat":         now.Unix(),
		"exp":         expires.Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expires, nil
}

// ValidateAdminToken parses and verifies an admin token
func ValidateAdminToken(tokenString, secret string) (*AdminClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	email, ok := claims["admin_email"].(string)
	if !ok || email == "" {
		return nil, errors.New("invalid admin email in token")
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, errors.New("token has no expiry")
	}
	return &AdminClaims{Email: email, ExpiresAt: time.Unix(int64(exp), 0)}, nil
}

// GenerateState returns a random OAuth state value
func GenerateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
