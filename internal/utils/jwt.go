package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptyToken is returned when a token string is blank.
var ErrEmptyToken = errors.New("empty token")

// ParseAccountIDFromToken extracts the subject (sub) claim of a bearer token
// without verifying its signature. The client never holds the signing key;
// the remote verifies the token on every request, the subject is only used
// to tag logs and the persisted session.
//
// Example usage:
//
//	accountID, err := utils.ParseAccountIDFromToken(rawToken)
func ParseAccountIDFromToken(tokenString string) (string, error) {
	claims, err := parseUnverified(tokenString)
	if err != nil {
		return "", err
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if sub == "" {
		return "", errors.New("empty subject error")
	}

	return sub, nil
}

// IsTokenExpired reports whether the token carries an exp claim that lies
// before now. Tokens without exp never expire from the client's point of
// view; unparsable tokens are reported as expired.
func IsTokenExpired(tokenString string, now time.Time) bool {
	claims, err := parseUnverified(tokenString)
	if err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if exp == nil {
		return false
	}

	return exp.Before(now)
}

func parseUnverified(tokenString string) (jwt.MapClaims, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tokenString), "Bearer "))
	if tokenString == "" {
		return nil, ErrEmptyToken
	}

	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("error occurred parsing token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
