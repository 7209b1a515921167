package auth

// Verifier is what JWTMiddleware needs from a token checker.
type Verifier interface {
	Verify(token string) (*Claims, error)
}
