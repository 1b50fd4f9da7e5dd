package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims represents the payload of admin access tokens issued by the identity provider.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}

// Actor converts verified claims into the explicit actor passed to services.
func (c *JWTClaims) Actor(ip, userAgent string) Actor {
	if c == nil {
		return PublicActor(ip, userAgent)
	}
	return Actor{UserID: c.UserID, Email: c.Email, Role: c.Role, IPAddress: ip, UserAgent: userAgent}
}
