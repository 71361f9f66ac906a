package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/roomdesk/dashboard-client/pkg/clock"
)

// IsLocallyValid decodes the token's exp claim without verifying the
// signature and reports whether the token has not expired yet. The check is
// fail-open: a malformed token or a missing exp claim counts as valid, real
// validity is enforced server-side. Returns false only when the claim decodes
// successfully and lies in the past.
func IsLocallyValid(ctx context.Context, clk clock.Clock, token string) bool {
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}

	return clk.Now(ctx).Before(exp.Time)
}
