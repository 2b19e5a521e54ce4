package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
// LibraryID is present only for tokens issued to library staff accounts.
type AccessTokenPayload struct {
	UserID    uuid.UUID
	LibraryID *uuid.UUID
	JTI       string
}

// AccessTokenClaims represents the typed JWT presented by clients.
type AccessTokenClaims struct {
	UserID    uuid.UUID  `json:"user_id"`
	LibraryID *uuid.UUID `json:"library_id,omitempty"`
	jwt.RegisteredClaims
}
