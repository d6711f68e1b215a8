package identity

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubTokenizer struct {
	claims map[string]interface{}
}

func (s stubTokenizer) Generate(map[string]interface{}, time.Duration) (string, error) {
	return "stub", nil
}

func (s stubTokenizer) Decode(token string) (map[string]interface{}, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return s.claims, nil
}

func TestAuthoriz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := uuid.New()

	newEngine := func(claims map[string]interface{}) *gin.Engine {
		r := gin.New()
		r.Use(Authoriz(stubTokenizer{claims: claims}))
		r.GET("/", func(c *gin.Context) {
			got, ok := SessionID(c)
			if !ok {
				c.Status(http.StatusTeapot)
				return
			}
			c.String(http.StatusOK, got.String())
		})
		return r
	}

	cases := []struct {
		name   string
		header string
		claims map[string]interface{}
		want   int
	}{
		{"no header", "", nil, http.StatusUnauthorized},
		{"not bearer", "Basic good", nil, http.StatusUnauthorized},
		{"no token", "Bearer", nil, http.StatusUnauthorized},
		{"rejected token", "Bearer bad", nil, http.StatusUnauthorized},
		{"valid token", "Bearer good", map[string]interface{}{ClaimSessionID: id.String()}, http.StatusOK},
		{"lowercase scheme", "bearer good", map[string]interface{}{ClaimSessionID: id.String()}, http.StatusOK},
		{"claim missing", "Bearer good", map[string]interface{}{}, http.StatusTeapot},
		{"claim not a uuid", "Bearer good", map[string]interface{}{ClaimSessionID: "abc"}, http.StatusTeapot},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			newEngine(tc.claims).ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusOK {
				assert.Equal(t, id.String(), w.Body.String())
			}
		})
	}
}
