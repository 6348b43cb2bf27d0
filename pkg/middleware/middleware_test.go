package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	mem "nwptourism/pkg/memcache"
)

type fakeResolver struct {
	sessions map[string]*mem.Session
	err      error
}

func (f fakeResolver) Resolve(_ context.Context, token string) (*mem.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions[token], nil
}

func newTestEngine(resolver SessionResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.Use(SessionMiddleware(resolver, zap.NewNop()))

	admin := r.Group("/admin", RequireAdmin())
	admin.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, CurrentSession(c).Username)
	})
	return r
}

func TestRequireAdmin(t *testing.T) {
	resolver := fakeResolver{sessions: map[string]*mem.Session{
		"good":   {ID: "1", Username: "root", Admin: true},
		"noflag": {ID: "2", Username: "guest", Admin: false},
	}}
	r := newTestEngine(resolver)

	tests := []struct {
		name   string
		cookie string
		want   int
	}{
		{"no cookie", "", http.StatusUnauthorized},
		{"unknown token", "bogus", http.StatusUnauthorized},
		{"session without admin flag", "noflag", http.StatusUnauthorized},
		{"admin session", "good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "root", rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"success":false`)
			}
		})
	}
}

func TestSessionMiddlewareResolverError(t *testing.T) {
	r := newTestEngine(fakeResolver{err: errors.New("redis down")})

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTraceIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("trace_id")) })

	t.Run("minted", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, rec.Header().Get(TraceIDHeader))
		assert.Equal(t, rec.Header().Get(TraceIDHeader), rec.Body.String())
	})

	t.Run("propagated", func(t *testing.T) {
		const upstream = "7d444840-9dc0-11d1-b245-5ffdce74fad2"
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(TraceIDHeader, upstream)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, upstream, rec.Body.String())
	})

	t.Run("malformed upstream replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(TraceIDHeader, "<script>")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.NotEqual(t, "<script>", rec.Body.String())
	})
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("wildcard", func(t *testing.T) {
		r := gin.New()
		r.Use(CORSMiddleware([]string{"*"}))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://example.org")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("listed origin with preflight", func(t *testing.T) {
		r := gin.New()
		r.Use(CORSMiddleware([]string{"https://admin.example.org"}))
		r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://admin.example.org")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://admin.example.org", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})
}
