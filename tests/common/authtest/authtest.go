//go:build e2e

package authtest

import (
	"net/http"
	"testing"

	reqdto "parking-reserve/internal/handler/dto/request"
	"parking-reserve/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// LoginUser logs in through the HTTP API and returns the access token from
// the session cookie.
func LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		reqdto.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookie := httptest.ExtractCookie(w, "access_token")
	require.NotNil(t, cookie, "Access token not found in cookies")
	require.NotEmpty(t, cookie.Value, "Access token cookie is empty")

	return cookie.Value
}
