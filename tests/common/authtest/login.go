//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"slot-booking/internal/handler/dto/request"
	"slot-booking/internal/pkg/cookie"
	"slot-booking/tests/common/dbtest"
	"slot-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// LoginUser returns the token set in the auth cookie.
func LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	tokenCookie := httptest.ExtractCookie(w, cookie.TokenCookieName)
	require.NotNil(t, tokenCookie, "token cookie not set")
	require.NotEmpty(t, tokenCookie.Value, "token cookie is empty")

	return tokenCookie.Value
}

// CreateAndLogin inserts a user with dbtest.DefaultPassword and logs in.
func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, email, role string, club *string) (uuid.UUID, string) {
	t.Helper()
	id := dbtest.CreateTestUser(t, db, email, role, club)
	return id, LoginUser(t, router, email, dbtest.DefaultPassword)
}

func LogoutUser(t *testing.T, router *gin.Engine, cookies []*http.Cookie) {
	t.Helper()

	w := httptest.PerformRequestWithCookies(t, router, http.MethodPost, "/api/auth/logout", nil, cookies, "")
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}
