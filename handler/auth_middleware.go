package handler

import (
	"context"
	"net/http"
	"strings"

	"go-bank-ledger/common"
	"go-bank-ledger/model"
	"go-bank-ledger/service"
)

type contextKey string

const ClaimsKey contextKey = "claims"

// AuthMiddleware rejects requests without a valid, unrevoked bearer token
// and puts the token's claims on the request context.
func AuthMiddleware(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				err := common.NewAppError(http.StatusUnauthorized, "Authorization header is required", nil)
				err.Send(w)
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				err := common.NewAppError(http.StatusUnauthorized, "Invalid authorization header format", nil)
				err.Send(w)
				return
			}

			claims, err := auth.ParseToken(headerParts[1])
			if err != nil {
				appErr := common.NewAppError(http.StatusUnauthorized, "Invalid or expired token", err)
				appErr.Send(w)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func claimsFrom(r *http.Request) (*model.AppClaims, *common.AppError) {
	claims, ok := r.Context().Value(ClaimsKey).(*model.AppClaims)
	if !ok {
		return nil, common.NewAppError(http.StatusUnauthorized, "Invalid session in token", nil)
	}
	return claims, nil
}
