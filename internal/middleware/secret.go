package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// RequireSecret guards an endpoint with a shared secret carried in the
// given header (or a `secret` query parameter). When no secret is
// configured, the development fallback value is accepted so the endpoint
// stays usable in local setups.
func RequireSecret(expected, fallback, header string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		provided := c.Get(header)
		if provided == "" {
			provided = c.Query("secret")
		}

		want := expected
		if want == "" {
			want = fallback
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(want)) != 1 {
			return Forbidden("Forbidden - invalid secret")
		}
		return c.Next()
	}
}
