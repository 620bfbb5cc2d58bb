package handler

// Every endpoint answers with the same envelope: success flag, a short
// human-readable message, and optional data. Validation failures carry an
// errors list instead of data. The helpers keep handlers from hand-rolling
// the shape per endpoint.

import "github.com/labstack/echo/v4"

func respondOK(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": true, "message": message})
}

func respondData(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, echo.Map{"success": true, "message": message, "data": data})
}

func respondErr(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}

func respondValidation(c echo.Context, status int, errs []string) error {
	return c.JSON(status, echo.Map{"success": false, "message": "validation failed", "errors": errs})
}
