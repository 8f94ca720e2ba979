package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/way2pg/way2pg-api/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxUser   = "user"
)

// unauthenticatedMsg is the single message rendered for every authentication
// failure. Missing token, bad signature, expiry and role staleness are all
// indistinguishable to the caller.
const unauthenticatedMsg = "please authenticate"

// Auth validates the bearer JWT, resolves it to the live user record and
// injects the identity into context.
//
// Role is embedded in the token at issuance to spare a lookup on
// authorization, which makes it a cache of the stored role. The staleness
// check below reconciles that cache: a token whose embedded role no longer
// matches the live record is rejected, so role edits and approval changes
// take effect before the token expires.
func Auth(jwtSecret string, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedMsg)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedMsg)
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedMsg)
			}

			userID, _ := claims["user_id"].(string)
			role, _ := claims["role"].(string)
			if userID == "" || role == "" {
				// Malformed token: structurally valid JWT missing a claim.
				return echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedMsg)
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				// Deleted since issuance, or lookup failure. Either way the
				// caller learns nothing beyond the generic message.
				return echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedMsg)
			}

			if user.Role != role {
				// Staleness check: the embedded role is a cache of the stored
				// role and has gone stale.
				return echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedMsg)
			}

			c.Set(CtxUserID, user.ID)
			c.Set(CtxRole, user.Role)
			c.Set(CtxUser, user)

			return next(c)
		}
	}
}
