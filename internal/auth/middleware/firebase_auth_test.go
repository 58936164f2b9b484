package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	appauth "github.com/obralog/obralog-admin/internal/auth"
)

type fakeVerifier map[string]*auth.Token

func (f fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if tok, ok := f[idToken]; ok {
		return tok, nil
	}
	return nil, errors.New("token rejected")
}

func TestFirebaseAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	verifier := fakeVerifier{
		"good": {UID: "uid-1", Claims: map[string]interface{}{"email": "eng@obralog.test"}},
	}
	r := gin.New()
	r.Use(FirebaseAuthMiddleware(verifier))
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, appauth.UserFirebaseUID(c)+"|"+c.GetString(appauth.CtxEmail))
	})

	tests := []struct {
		name   string
		header string
		code   int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, "missing authorization token"},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, "missing authorization token"},
		{"rejected token", "Bearer bad", http.StatusUnauthorized, "invalid token"},
		{"valid token", "Bearer good", http.StatusOK, "uid-1|eng@obralog.test"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.code, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.body)
		})
	}
}
