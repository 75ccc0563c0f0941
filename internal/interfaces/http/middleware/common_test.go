package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const storefrontOrigin = "https://shop.acctmarket.com"

func catalogRouter(mw ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw...)
	router.GET("/products", func(c *gin.Context) {
		c.String(http.StatusOK, "catalog")
	})
	return router
}

func TestCORS(t *testing.T) {
	router := catalogRouter(CORS())

	t.Run("empty whitelist refuses cross-origin browsers", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/products", nil)
		req.Header.Set("Origin", "http://malicious.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("same-origin traffic is unaffected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/products", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("preflight still gets its 204 without CORS headers", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/products", nil)
		req.Header.Set("Origin", "http://somewhere.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestCORSWithConfig(t *testing.T) {
	t.Run("allows the storefront origin with credentials", func(t *testing.T) {
		router := catalogRouter(CORSWithConfig(CORSConfig{
			AllowOrigins:     []string{storefrontOrigin},
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
		}))

		req := httptest.NewRequest("GET", "/products", nil)
		req.Header.Set("Origin", storefrontOrigin)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, storefrontOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("each whitelisted origin is echoed back", func(t *testing.T) {
		staging := "https://staging.acctmarket.com"
		router := catalogRouter(CORSWithConfig(CORSConfig{
			AllowOrigins: []string{storefrontOrigin, staging},
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Content-Type"},
		}))

		for _, origin := range []string{storefrontOrigin, staging} {
			req := httptest.NewRequest("GET", "/products", nil)
			req.Header.Set("Origin", origin)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"))
		}
	})

	t.Run("unlisted origin gets no CORS headers", func(t *testing.T) {
		router := catalogRouter(CORSWithConfig(CORSConfig{
			AllowOrigins: []string{storefrontOrigin},
		}))

		req := httptest.NewRequest("GET", "/products", nil)
		req.Header.Set("Origin", "https://impostor.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard allows any origin but never credentials", func(t *testing.T) {
		router := catalogRouter(CORSWithConfig(CORSConfig{
			AllowOrigins:     []string{"*"},
			AllowMethods:     []string{"GET"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
		}))

		req := httptest.NewRequest("GET", "/products", nil)
		req.Header.Set("Origin", "https://anywhere.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		// Browsers reject credentials with a wildcard origin
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("max-age is seconds as a decimal string", func(t *testing.T) {
		tests := []struct {
			duration time.Duration
			expected string
		}{
			{time.Minute, "60"},
			{time.Hour, "3600"},
			{12 * time.Hour, "43200"},
		}

		for _, tt := range tests {
			router := catalogRouter(CORSWithConfig(CORSConfig{
				AllowOrigins: []string{storefrontOrigin},
				AllowMethods: []string{"GET"},
				AllowHeaders: []string{"Content-Type"},
				MaxAge:       tt.duration,
			}))

			req := httptest.NewRequest("GET", "/products", nil)
			req.Header.Set("Origin", storefrontOrigin)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expected, w.Header().Get("Access-Control-Max-Age"))
		}
	})

	t.Run("exposes the rate limit and request ID headers", func(t *testing.T) {
		router := catalogRouter(CORSWithConfig(CORSConfig{
			AllowOrigins:  []string{storefrontOrigin},
			AllowMethods:  []string{"GET"},
			AllowHeaders:  []string{"Content-Type"},
			ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Remaining"},
		}))

		req := httptest.NewRequest("GET", "/products", nil)
		req.Header.Set("Origin", storefrontOrigin)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "X-Request-ID, X-RateLimit-Remaining", w.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("preflight from the storefront carries the full header set", func(t *testing.T) {
		router := catalogRouter(CORSWithConfig(CORSConfig{
			AllowOrigins: []string{storefrontOrigin},
			AllowMethods: []string{"GET", "POST", "PUT"},
			AllowHeaders: []string{"Content-Type", "X-User-ID"},
		}))

		req := httptest.NewRequest("OPTIONS", "/products", nil)
		req.Header.Set("Origin", storefrontOrigin)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, storefrontOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, PUT", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type, X-User-ID", w.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("preflight from an unlisted origin gets a bare 204", func(t *testing.T) {
		router := catalogRouter(CORSWithConfig(CORSConfig{
			AllowOrigins: []string{storefrontOrigin},
			AllowMethods: []string{"GET", "POST"},
		}))

		req := httptest.NewRequest("OPTIONS", "/products", nil)
		req.Header.Set("Origin", "https://impostor.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/products", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	t.Run("generates an ID when the client sends none", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/products", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())
	})

	t.Run("propagates a client-supplied ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/products", nil)
		req.Header.Set("X-Request-ID", "req-from-gateway-7")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "req-from-gateway-7", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "req-from-gateway-7", w.Body.String())
	})
}

func TestGenerateRequestID(t *testing.T) {
	id1 := generateRequestID()
	id2 := generateRequestID()

	assert.NotEmpty(t, id1)
	assert.NotEqual(t, id1, id2)
	assert.Len(t, id1, 32) // 16 random bytes, hex encoded
}

func TestSecure(t *testing.T) {
	router := catalogRouter(Secure())

	req := httptest.NewRequest("GET", "/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", w.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))

	csp := w.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "default-src 'self'")
	assert.Contains(t, csp, "frame-ancestors 'none'")

	// HSTS needs HTTPS and is off until configured
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))

	permPolicy := w.Header().Get("Permissions-Policy")
	assert.Contains(t, permPolicy, "camera=()")
	assert.Contains(t, permPolicy, "payment=()")
}

func TestSecureWithConfig(t *testing.T) {
	t.Run("custom CSP directive", func(t *testing.T) {
		router := catalogRouter(SecureWithConfig(SecurityConfig{
			CSPEnabled:   true,
			CSPDirective: "default-src 'none'; script-src 'self'",
		}))

		req := httptest.NewRequest("GET", "/products", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "default-src 'none'; script-src 'self'", w.Header().Get("Content-Security-Policy"))
		assert.Empty(t, w.Header().Get("Permissions-Policy"))
	})

	t.Run("HSTS value reflects the subdomain and preload flags", func(t *testing.T) {
		tests := []struct {
			name     string
			cfg      SecurityConfig
			expected string
		}{
			{
				name: "all options",
				cfg: SecurityConfig{
					HSTSEnabled:           true,
					HSTSMaxAge:            63072000,
					HSTSIncludeSubdomains: true,
					HSTSPreload:           true,
				},
				expected: "max-age=63072000; includeSubDomains; preload",
			},
			{
				name: "max-age only",
				cfg: SecurityConfig{
					HSTSEnabled: true,
					HSTSMaxAge:  31536000,
				},
				expected: "max-age=31536000",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				router := catalogRouter(SecureWithConfig(tt.cfg))

				req := httptest.NewRequest("GET", "/products", nil)
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)

				assert.Equal(t, tt.expected, w.Header().Get("Strict-Transport-Security"))
			})
		}
	})

	t.Run("optional headers can all be disabled", func(t *testing.T) {
		router := catalogRouter(SecureWithConfig(SecurityConfig{}))

		req := httptest.NewRequest("GET", "/products", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		// The baseline headers are unconditional
		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

		assert.Empty(t, w.Header().Get("Content-Security-Policy"))
		assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
		assert.Empty(t, w.Header().Get("Permissions-Policy"))
	})
}

func TestDefaultSecurityConfig(t *testing.T) {
	cfg := DefaultSecurityConfig()

	assert.False(t, cfg.HSTSEnabled)
	assert.Equal(t, 31536000, cfg.HSTSMaxAge)
	assert.True(t, cfg.HSTSIncludeSubdomains)
	assert.False(t, cfg.HSTSPreload)

	assert.True(t, cfg.CSPEnabled)
	assert.Contains(t, cfg.CSPDirective, "default-src 'self'")
	assert.Contains(t, cfg.CSPDirective, "frame-ancestors 'none'")

	assert.True(t, cfg.PermissionsPolicyEnabled)
	assert.Contains(t, cfg.PermissionsPolicyDirective, "camera=()")
	assert.Contains(t, cfg.PermissionsPolicyDirective, "payment=()")
}

func TestDefaultCORSConfig(t *testing.T) {
	cfg := DefaultCORSConfig()

	// Cross-origin access must be opted into per deployment
	assert.Empty(t, cfg.AllowOrigins)
	assert.Contains(t, cfg.AllowMethods, "GET")
	assert.Contains(t, cfg.AllowMethods, "POST")
	assert.Contains(t, cfg.AllowHeaders, "Content-Type")
	assert.Contains(t, cfg.AllowHeaders, "X-User-ID")
	assert.True(t, cfg.AllowCredentials)
	assert.Equal(t, 12*time.Hour, cfg.MaxAge)
}
