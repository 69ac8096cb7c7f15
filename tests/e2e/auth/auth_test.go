//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"slot-booking/internal/domain/user"
	"slot-booking/internal/handler/dto/request"
	"slot-booking/internal/handler/dto/response"
	"slot-booking/internal/pkg/cookie"
	"slot-booking/tests/common/authtest"
	"slot-booking/tests/common/builder"
	"slot-booking/tests/common/dbtest"
	"slot-booking/tests/common/httptest"
	"slot-booking/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/auth/register"
	loginURL    = "/api/auth/login"
	logoutURL   = "/api/auth/logout"
	meURL       = "/api/auth/me"
	profileURL  = "/api/auth/profile"
)

type authSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) TestRegister() {
	s.Run("user registers and receives a token cookie", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL, request.RegisterRequest{
			Name:     "Asha",
			Email:    "asha@example.com",
			Password: "longenough",
		}, "")

		var res response.AuthResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
		s.NotEmpty(res.Token)
		s.Equal("asha@example.com", res.User.Email)
		s.Equal(string(user.RoleUser), res.User.Role)
		s.Nil(res.User.Club)

		tokenCookie := httptest.ExtractCookie(w, cookie.TokenCookieName)
		s.Require().NotNil(tokenCookie)
		s.Equal(res.Token, tokenCookie.Value)
		s.True(tokenCookie.HttpOnly)
	})

	s.Run("club admin keeps the club", func() {
		club := string(user.ClubCultural)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL, request.RegisterRequest{
			Name:     "Ravi",
			Email:    "ravi@example.com",
			Password: "longenough",
			Role:     string(user.RoleClubAdmin),
			Club:     &club,
		}, "")

		var res response.AuthResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
		s.Require().NotNil(res.User.Club)
		s.Equal(club, *res.User.Club)
	})

	testCases := []struct {
		name       string
		req        request.RegisterRequest
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "super admin cannot self-register",
			req:        request.RegisterRequest{Name: "Boss", Email: "boss@example.com", Password: "longenough", Role: string(user.RoleSuperAdmin)},
			wantStatus: http.StatusForbidden,
			wantMsg:    "role cannot be self-registered",
		},
		{
			name:       "club admin without club",
			req:        request.RegisterRequest{Name: "Nia", Email: "nia@example.com", Password: "longenough", Role: string(user.RoleClubAdmin)},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "club is required",
		},
		{
			name:       "short password",
			req:        request.RegisterRequest{Name: "Short", Email: "short@example.com", Password: "short"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid request",
		},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL, tc.req, "")
			httptest.AssertErrorResponse(s.T(), w, tc.wantStatus, tc.wantMsg)
		})
	}

	s.Run("email is unique regardless of case", func() {
		dbtest.CreateTestUser(s.T(), s.DB, "taken@example.com", string(user.RoleUser), nil)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL, request.RegisterRequest{
			Name:     "Copy",
			Email:    "TAKEN@example.com",
			Password: "longenough",
		}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "already exists")
	})
}

func (s *authSuite) TestLogin() {
	testCases := []struct {
		name       string
		setup      func()
		email      string
		password   string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "valid credentials",
			setup:      func() { dbtest.CreateTestUser(s.T(), s.DB, "member@example.com", string(user.RoleUser), nil) },
			email:      "member@example.com",
			password:   dbtest.DefaultPassword,
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			setup:      func() { dbtest.CreateTestUser(s.T(), s.DB, "member@example.com", string(user.RoleUser), nil) },
			email:      "member@example.com",
			password:   "not-the-password",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "invalid email or password",
		},
		{
			name:       "unknown email looks like a wrong password",
			setup:      func() {},
			email:      "ghost@example.com",
			password:   dbtest.DefaultPassword,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "invalid email or password",
		},
		{
			name: "deactivated account",
			setup: func() {
				dbtest.CreateTestUser(s.T(), s.DB, "gone@example.com", string(user.RoleUser), nil)
				dbtest.DeactivateUser(s.T(), s.DB, "gone@example.com")
			},
			email:      "gone@example.com",
			password:   dbtest.DefaultPassword,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "deactivated",
		},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			tc.setup()

			w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL,
				request.LoginRequest{Email: tc.email, Password: tc.password}, "")
			if tc.wantStatus != http.StatusOK {
				httptest.AssertErrorResponse(s.T(), w, tc.wantStatus, tc.wantMsg)
				return
			}

			var res response.AuthResponse
			httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
			s.NotEmpty(res.Token)
			s.Require().NotNil(res.User.LastLogin)
		})
	}
}

func (s *authSuite) TestMe() {
	s.Run("returns the caller", func() {
		id, token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "me@example.com", string(user.RoleUser), nil)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, token)
		var res response.UserResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal(id, res.ID)
		s.Equal("me@example.com", res.Email)
	})

	s.Run("expired token is rejected", func() {
		id := dbtest.CreateTestUser(s.T(), s.DB, "late@example.com", string(user.RoleUser), nil)
		identity := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.ID = id }).BuildIdentity()
		expired := authtest.NewJWTHelper(s.Config.JWT).CreateExpiredToken(s.T(), identity)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, expired)
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("deactivated user loses access", func() {
		_, token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "later@example.com", string(user.RoleUser), nil)
		dbtest.DeactivateUser(s.T(), s.DB, "later@example.com")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "deactivated")
	})
}

func (s *authSuite) TestUpdateProfile() {
	s.Run("rename and re-issue the token", func() {
		_, token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "old@example.com", string(user.RoleUser), nil)

		name := "New Name"
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, profileURL,
			request.UpdateProfileRequest{Name: &name}, token)

		var res response.AuthResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal(name, res.User.Name)
		s.NotEmpty(res.Token)
	})

	s.Run("email owned by someone else", func() {
		dbtest.CreateTestUser(s.T(), s.DB, "first@example.com", string(user.RoleUser), nil)
		_, token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "second@example.com", string(user.RoleUser), nil)

		email := "first@example.com"
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, profileURL,
			request.UpdateProfileRequest{Email: &email}, token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "already exists")
	})
}

func (s *authSuite) TestLogout() {
	s.Run("clears the cookie", func() {
		_, token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "bye@example.com", string(user.RoleUser), nil)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, logoutURL, nil, token)
		require.Equal(s.T(), http.StatusNoContent, w.Code)

		cleared := httptest.ExtractCookie(w, cookie.TokenCookieName)
		s.Require().NotNil(cleared)
		s.Empty(cleared.Value)
		s.Negative(cleared.MaxAge)
	})
}
