package middleware

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"

	"escrow/internal/auth"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error string `json:"error"`
}

// AuthSignature guards mutating endpoints with the full replay-resistant
// protocol: API key, timestamp freshness, nonce uniqueness and an HMAC
// signature over the exact raw body.
func AuthSignature(v *auth.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			r := c.Request()

			// the signature covers the raw bytes, so read them once and
			// hand the handler a fresh reader
			body, err := io.ReadAll(r.Body)
			if err != nil {
				return c.JSON(http.StatusBadRequest, errorResponse{Error: "unreadable body"})
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			err = v.Verify(auth.Request{
				APIKey:    r.Header.Get("X-API-Key"),
				Signature: r.Header.Get("X-Signature"),
				Timestamp: r.Header.Get("X-Timestamp"),
				Nonce:     r.Header.Get("X-Nonce"),
				Body:      body,
			})
			if err != nil {
				log.Printf("auth rejected path=%s remote=%s: %v", r.URL.Path, c.RealIP(), err)
				return c.JSON(authStatus(err), errorResponse{Error: err.Error()})
			}

			return next(c)
		}
	}
}

// AuthAPIKey guards endpoints that need the shared key but no signature.
func AuthAPIKey(v *auth.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := v.VerifyAPIKey(c.Request().Header.Get("X-API-Key")); err != nil {
				log.Printf("auth rejected path=%s remote=%s: %v", c.Request().URL.Path, c.RealIP(), err)
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
			}
			return next(c)
		}
	}
}

func authStatus(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidAPIKey),
		errors.Is(err, auth.ErrInvalidSignature):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrMissingHeader),
		errors.Is(err, auth.ErrMalformedTimestamp),
		errors.Is(err, auth.ErrStaleTimestamp),
		errors.Is(err, auth.ErrReplay):
		return http.StatusBadRequest
	}
	return http.StatusUnauthorized
}
