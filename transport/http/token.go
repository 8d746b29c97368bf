package http

import (
	"crypto/rand"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const (
	CSRFCookie = "_csrf"
	CSRFField  = "_csrf"
	CSRFHeader = "X-CSRF-Token"

	csrfKey      = "csrf"
	csrfNonceKey = "csrf_nonce"
)

var (
	ErrInvalidCSRFToken = errors.New("invalid csrf token")
)

var safeMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodOptions,
	http.MethodTrace,
}

// CSRF binds signed form tokens to a per-browser nonce kept in a cookie.
type CSRF struct {
	secret []byte
	ttl    time.Duration
	keyFn  jwt.Keyfunc
}

func NewCSRF(secret []byte, ttl time.Duration) *CSRF {
	if len(secret) == 0 {
		secret = make([]byte, 32)
		rand.Read(secret)

		zap.L().Warn("csrf secret not configured, using an ephemeral one")
	}

	if ttl <= 0 {
		ttl = 1 * time.Hour
	}

	return &CSRF{
		secret: secret,
		ttl:    ttl,
		keyFn: func(t *jwt.Token) (any, error) {
			return secret, nil
		},
	}
}

func (csrf *CSRF) Token(nonce string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   nonce,
		ExpiresAt: jwt.NewNumericDate(now.Add(csrf.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        ulid.Make().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(csrf.secret)
}

func (csrf *CSRF) Verify(tokenStr string, nonce string) error {
	if tokenStr == "" || nonce == "" {
		return ErrInvalidCSRFToken
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, csrf.keyFn,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(10*time.Second),
	)
	if err != nil {
		return errors.Join(ErrInvalidCSRFToken, err)
	}

	if claims.Subject != nonce {
		return ErrInvalidCSRFToken
	}

	return nil
}

// Middleware issues the nonce cookie on first visit and rejects unsafe
// requests whose token does not match it.
func (csrf *CSRF) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(csrfKey, csrf)

		nonce, err := c.Cookie(CSRFCookie)
		if err != nil || nonce == "" {
			nonce = ulid.Make().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CSRFCookie, nonce, 0, "/", "", c.Request.TLS != nil, true)

			if !slices.Contains(safeMethods, c.Request.Method) {
				forbidden(c, ErrInvalidCSRFToken)
				return
			}
		}

		c.Set(csrfNonceKey, nonce)

		if slices.Contains(safeMethods, c.Request.Method) {
			c.Next()
			return
		}

		tokenStr := c.GetHeader(CSRFHeader)
		if tokenStr == "" {
			tokenStr = c.PostForm(CSRFField)
		}

		if err := csrf.Verify(tokenStr, nonce); err != nil {
			forbidden(c, err)
			return
		}

		c.Next()
	}
}

func forbidden(c *gin.Context, err error) {
	c.Abort()
	c.Error(err)
	renderError(c, http.StatusForbidden, "Invalid CSRF Token", "Invalid CSRF token. Please try again.")
}

// csrfToken signs a fresh token for the nonce of the current request.
func csrfToken(c *gin.Context) string {
	v, ok := c.Get(csrfKey)
	if !ok {
		return ""
	}

	csrf, ok := v.(*CSRF)
	if !ok {
		return ""
	}

	token, err := csrf.Token(c.GetString(csrfNonceKey))
	if err != nil {
		c.Error(err)
		return ""
	}

	return token
}
