package model

import "github.com/golang-jwt/jwt/v5"

type AppClaims struct {
	Username   string `json:"username"`
	CustomerID string `json:"customer_id"`
	jwt.RegisteredClaims
}
