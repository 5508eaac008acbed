package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-vaccine-registration/pkg/jwt"
	"go-vaccine-registration/pkg/response"

	"github.com/google/uuid"
)

type contextKey string

const (
	WizardIDKey contextKey = "wizard_id"
	TokenIDKey  contextKey = "token_id"
)

type WizardMiddleware struct {
	jwtService *jwt.JWTService
}

func NewWizardMiddleware(jwtService *jwt.JWTService) *WizardMiddleware {
	return &WizardMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate resolves the wizard token in the Authorization header and
// stores the wizard id in the request context.
func (m *WizardMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired wizard token")
			return
		}

		ctx := context.WithValue(r.Context(), WizardIDKey, claims.WizardID)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithWizardID returns a copy of ctx carrying id.
func WithWizardID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, WizardIDKey, id)
}

// GetWizardIDFromContext extracts wizard ID from context
func GetWizardIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	wizardID, ok := ctx.Value(WizardIDKey).(uuid.UUID)
	return wizardID, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
