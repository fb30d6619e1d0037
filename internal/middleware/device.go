package middleware

import "github.com/gofiber/fiber/v2"

// DeviceInfo identifies an anonymous visitor for like/comment dedup.
type DeviceInfo struct {
	DeviceID  string
	IP        string
	UserAgent string
}

// TrackDevice captures the client-supplied fingerprint plus transport
// identity for anonymous engagement routes.
func TrackDevice() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.Get("X-Forwarded-For")
		if ip == "" {
			ip = c.IP()
		}

		c.Locals("device", DeviceInfo{
			DeviceID:  c.Get("X-Device-Id"),
			IP:        ip,
			UserAgent: c.Get("User-Agent"),
		})
		return c.Next()
	}
}
