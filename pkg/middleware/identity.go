package middleware

import (
	"net/http"
	"strings"
	"time"

	apperrors "aeroclub/pkg/errors"
	httputil "aeroclub/pkg/http"
	"aeroclub/pkg/identity"
	"aeroclub/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

const MemberIDHeader = "X-Member-ID"

// TokenVerifier validates HS256 bearer tokens and returns their subject as the
// member id.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

func (v *TokenVerifier) MemberID(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", apperrors.Unauthorized("invalid bearer token")
	}
	if claims.Subject == "" {
		return "", apperrors.Unauthorized("bearer token has no subject")
	}
	return claims.Subject, nil
}

// IssueToken signs a token for memberID. It is used by tests and tooling; the
// club's sign-in flow issues tokens elsewhere.
func (v *TokenVerifier) IssueToken(memberID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   memberID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Identity resolves the caller's member id once per request. With a verifier
// the id comes from the bearer token and X-Member-ID is ignored; without one
// X-Member-ID is trusted as-is. Requests without credentials continue
// anonymously; an invalid token is rejected.
func Identity(verifier *TokenVerifier, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			memberID := ""

			if verifier != nil {
				if tokenStr, ok := bearerToken(r); ok {
					id, err := verifier.MemberID(tokenStr)
					if err != nil {
						log.Warn("Rejected bearer token",
							"request_id", RequestID(r.Context()),
							"path", r.URL.Path,
						)
						_ = httputil.WriteError(w, err)
						return
					}
					memberID = id
				}
			} else {
				memberID = strings.TrimSpace(r.Header.Get(MemberIDHeader))
			}

			if memberID != "" {
				r = r.WithContext(identity.WithMemberID(r.Context(), memberID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
