package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitgrid/globals"
	"fitgrid/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	require.NoError(t, err)
	return token
}

func TestValidateJWTRoundTrip(t *testing.T) {
	token := signToken(t, &Claims{
		Username: "mara",
		UserID:   "user123",
		Role:     []string{"member"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})

	claims, err := ValidateJWT("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "user123", claims.UserID)
	assert.Equal(t, "mara", claims.Username)
}

func TestAuthenticateStoresRolesInContext(t *testing.T) {
	token := signToken(t, &Claims{
		UserID: "staff42",
		Role:   []string{"member", "staff"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})

	var seen *http.Request
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		seen = r
	})

	r := httptest.NewRequest(http.MethodPost, "/api/bookings/b1/no-show", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	handler(httptest.NewRecorder(), r, nil)

	require.NotNil(t, seen)
	assert.Equal(t, "staff42", utils.GetUserIDFromRequest(seen))
	assert.True(t, utils.HasRole(seen, "staff"))
	assert.False(t, utils.HasRole(seen, "admin"))
}

func TestValidateJWTRejects(t *testing.T) {
	expired := signToken(t, &Claims{
		UserID: "user123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	_, err := ValidateJWT("Bearer " + expired)
	assert.Error(t, err)

	_, err = ValidateJWT(expired) // missing Bearer prefix
	assert.Error(t, err)

	_, err = ValidateJWT("Bearer not.a.token")
	assert.Error(t, err)
}
