package api

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/limbo/ergotrack/pkg/entity"
)

type JWTServiceI interface {
	GenerateToken(therapist *entity.Therapist) (string, error)
	ParseToken(tokenString string) (*JWTClaims, error)
}

type JWTClaims struct {
	jwt.RegisteredClaims
	TherapistID string `json:"therapist_id"`
	Name        string `json:"name"`
}
