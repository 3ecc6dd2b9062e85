package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanhvu/devconnect/pkg/apperror"
	"github.com/khanhvu/devconnect/pkg/auth"
	"github.com/khanhvu/devconnect/pkg/logger"
)

func newAuthTestRouter(jwtSvc *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorMiddleware(logger.NewNop()))

	private := router.Group("/private")
	private.Use(AuthMiddleware(jwtSvc))
	private.GET("/whoami", func(c *gin.Context) {
		userID, ok := GetUserIDFromGinContext(c)
		if !ok {
			c.Error(apperror.NewUnauthorized("user id missing from context"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": userID.String()})
	})

	return router
}

func TestAuthMiddleware(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	router := newAuthTestRouter(jwtSvc)
	userID := uuid.New()

	token, err := jwtSvc.GenerateToken(userID)
	require.NoError(t, err)

	t.Run("valid token passes the verified user id through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, userID.String(), body["user"])
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private/whoami", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("header without bearer prefix", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private/whoami", nil)
		req.Header.Set("Authorization", token)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		otherSvc := auth.NewJWTService("another-secret", time.Hour)
		otherToken, err := otherSvc.GenerateToken(userID)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/private/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+otherToken)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestErrorMiddleware_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", apperror.NewNotFound("post", uuid.New().String()), http.StatusNotFound},
		{"validation failure", apperror.NewValidationFailed(map[string]string{"text": "Text field is required."}), http.StatusBadRequest},
		{"unauthorized", apperror.NewUnauthorized("not the owner"), http.StatusUnauthorized},
		{"conflict", apperror.NewConflictMsg("User already liked this post."), http.StatusConflict},
		{"unavailable", apperror.NewUnavailable("store timeout", nil), http.StatusServiceUnavailable},
		{"internal", apperror.NewInternal("boom", nil), http.StatusInternalServerError},
		{"plain error stays opaque", errors.New("pgx: connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.Use(ErrorMiddleware(logger.NewNop()))
			router.GET("/fail", func(c *gin.Context) {
				c.Error(tc.err)
			})

			req := httptest.NewRequest(http.MethodGet, "/fail", nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			// internals never leak raw error text
			assert.NotContains(t, body["error"], "pgx")
		})
	}
}

func TestErrorMiddleware_ValidationFieldsInBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorMiddleware(logger.NewNop()))
	router.POST("/posts", func(c *gin.Context) {
		c.Error(apperror.NewValidationFailed(map[string]string{
			"text": "Post must be between 10 and 300 characters.",
		}))
	})

	req := httptest.NewRequest(http.MethodPost, "/posts", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Post must be between 10 and 300 characters.", body.Errors["text"])
}
