package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gbur-rwanda/gbur-backend/errs"
	"github.com/gbur-rwanda/gbur-backend/validation"
)

const adminSubject = "gbur-admin"

// adminGate trades the shared admin password for a short-lived HS256 token
// and checks that token on mutation routes.
type adminGate struct {
	responder Responder
	logger    zerolog.Logger
	password  string
	secret    []byte
	ttl       time.Duration
	now       func() time.Time
}

func newAdminGate(password, secret string, ttl time.Duration, production bool) adminGate {
	logger := log.With().Str("handlerName", "adminGate").Logger()
	if secret == "" {
		// Tokens then do not survive a restart.
		secret = uuid.NewString()
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return adminGate{
		responder: NewResponder(logger, production),
		logger:    logger,
		password:  password,
		secret:    []byte(secret),
		ttl:       ttl,
		now:       time.Now,
	}
}

func (g adminGate) enabled() bool {
	return g.password != ""
}

type unlockResponse struct {
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Enabled   bool       `json:"enabled"`
}

// issue signs a capability token valid for g.ttl.
func (g adminGate) issue() (string, time.Time, error) {
	now := g.now()
	expires := now.Add(g.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   adminSubject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	return token, expires, err
}

// verify parses a token issued by issue.
func (g adminGate) verify(raw string) (AdminCapability, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(adminSubject),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return AdminCapability{}, errs.NewInvalidTokenError()
	}
	return AdminCapability{TokenID: claims.ID, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (g adminGate) unlock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !g.enabled() {
			g.responder.WriteJSON(w, unlockResponse{Enabled: false})
			return
		}

		var in validation.AdminUnlockInput
		if err := decodeJSON(w, r, &in); err != nil {
			g.responder.WriteError(w, err)
			return
		}
		if err := in.ValidateCreate(); err != nil {
			g.responder.WriteError(w, err)
			return
		}
		if subtle.ConstantTimeCompare([]byte(in.Password), []byte(g.password)) != 1 {
			g.logger.Warn().Str("remote_addr", r.RemoteAddr).Msg("admin unlock rejected")
			g.responder.WriteError(w, errs.NewWrongPasswordError())
			return
		}

		token, expires, err := g.issue()
		if err != nil {
			g.responder.WriteError(w, errs.NewInternalErrorWithCause("could not sign admin token", err))
			return
		}
		g.responder.WriteJSON(w, unlockResponse{Token: token, ExpiresAt: &expires, Enabled: true})
	}
}

// requireAdmin attaches an AdminCapability or answers 401.
func (g adminGate) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.enabled() {
			next.ServeHTTP(w, r.WithContext(ctxWithAdmin(r.Context(), AdminCapability{Open: true})))
			return
		}

		authHeader := r.Header.Get("Authorization")
		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if !strings.HasPrefix(authHeader, "Bearer ") || raw == "" {
			g.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		capability, err := g.verify(raw)
		if err != nil {
			g.responder.WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctxWithAdmin(r.Context(), capability)))
	})
}
