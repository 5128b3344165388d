package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("om-namah-shivaya")
	require.NoError(t, err)
	assert.NotEqual(t, "om-namah-shivaya", hash)

	assert.True(t, CheckPasswordHash("om-namah-shivaya", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateToken("some-user", []string{"user"})
	assert.Error(t, err)
}

func protectedRouter(required ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), RequireRole(required...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"roles": ContextRoles(c)})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	r := protectedRouter("user")

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token passes roles through", func(t *testing.T) {
		token, err := GenerateToken("1b4e28ba-2fa1-11d2-883f-0016d3cca427", []string{"user", "approver"})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "approver")
	})
}

func TestRequireRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tests := []struct {
		name     string
		held     []string
		required []string
		want     int
	}{
		{
			name:     "devotee blocked from approver route",
			held:     []string{"user"},
			required: []string{"approver"},
			want:     http.StatusForbidden,
		},
		{
			name:     "approver allowed",
			held:     []string{"user", "approver"},
			required: []string{"approver"},
			want:     http.StatusOK,
		},
		{
			name:     "admin allowed on multi-role gate",
			held:     []string{"Admin"},
			required: []string{"Admin", "superadmin"},
			want:     http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := protectedRouter(tt.required...)

			token, err := GenerateToken("1b4e28ba-2fa1-11d2-883f-0016d3cca427", tt.held)
			require.NoError(t, err)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestGenerateRandomString(t *testing.T) {
	a := GenerateRandomString(6)
	b := GenerateRandomString(6)

	assert.Len(t, a, 6)
	assert.Len(t, b, 6)
	assert.NotEqual(t, a, b)
}
