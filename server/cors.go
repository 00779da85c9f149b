package server

import "github.com/gofiber/fiber/v2"

// allowCORS opens the endpoint to every origin. The headers are set on every
// response, not only on browser preflights, and OPTIONS is answered with a bare 200.
func allowCORS(methods string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		c.Set(fiber.HeaderAccessControlAllowMethods, methods)
		c.Set(fiber.HeaderAccessControlAllowHeaders, fiber.HeaderContentType)
		return c.Next()
	}
}

func preflight(c *fiber.Ctx) error {
	c.Status(fiber.StatusOK)
	return nil
}

func methodNotAllowed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusMethodNotAllowed).JSON(errorBody{Error: "Method not allowed"})
}
