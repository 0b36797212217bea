package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/Juliban27/DiningThrough/internal/auth"
	"github.com/Juliban27/DiningThrough/internal/domain"
)

type contextKey string

const userCtxKey contextKey = "user"

// AuthTokenMiddleware validates the Authorization bearer token and stores the
// claims on the request context.
func (app *application) AuthTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, err := extractBearerToken(r)
		if err != nil {
			app.unauthorizedResponse(w, r, err)
			return
		}

		claims, err := app.authenticator.ValidateToken(tokenStr)
		if err != nil {
			app.unauthorizedResponse(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userCtxKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnlyMiddleware sits behind AuthTokenMiddleware and gates the route to
// the admin role.
func (app *application) AdminOnlyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := getClaimsFromContext(r)
		if err != nil {
			app.unauthorizedResponse(w, r, err)
			return
		}

		if claims.Role != domain.RoleAdmin {
			app.forbiddenResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if allow, retryAfter := app.rateLimiter.Allow(ip); !allow {
				app.rateLimitExceededResponse(w, r, retryAfter.String())
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}

func getClaimsFromContext(r *http.Request) (*auth.Claims, error) {
	claims, ok := r.Context().Value(userCtxKey).(*auth.Claims)
	if !ok {
		return nil, errors.New("no user in context")
	}

	return claims, nil
}
