package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned when a token cannot be decoded.
var ErrMalformedToken = errors.New("malformed token")

// Payload is the claim set of a token decoded WITHOUT checking its signature.
// Nothing in it may be trusted for access decisions.
type Payload map[string]any

// Decode reads the claims segment of token. The header and signature are not
// looked at, so any alg decodes.
func Decode(token string) (Payload, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: token contains %d segments", ErrMalformedToken, len(parts))
	}

	raw, err := jwt.NewParser().DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: claims segment: %w", ErrMalformedToken, err)
	}

	var claims jwt.MapClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, fmt.Errorf("%w: claims segment: %w", ErrMalformedToken, err)
	}
	if claims == nil {
		return nil, fmt.Errorf("%w: claims segment is not an object", ErrMalformedToken)
	}
	return Payload(claims), nil
}

// Expiry returns the exp claim in Unix seconds. ok is false when exp is
// absent or not a number.
func (p Payload) Expiry() (exp int64, ok bool) {
	d, err := jwt.MapClaims(p).GetExpirationTime()
	if err != nil || d == nil {
		return 0, false
	}
	return d.Unix(), true
}

// StringClaim returns a string claim.
func (p Payload) StringClaim(name string) (string, bool) {
	s, ok := p[name].(string)
	return s, ok
}
