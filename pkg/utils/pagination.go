package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	// DefaultPageSize suits the grid and list screens.
	DefaultPageSize = 20
	// ChatPageSize is larger: conversation history loads in bigger slices.
	ChatPageSize = 50
	// MaxPageSize caps what a client may request in one call.
	MaxPageSize = 100
)

// Page is the slice of a list endpoint's results being requested.
type Page struct {
	Number int
	Size   int
	Offset int
}

// GetPage reads ?page= and ?limit= from the request. Sizes above MaxPageSize
// are clamped, missing or invalid values fall back to defaultSize.
func GetPage(c echo.Context, defaultSize int) Page {
	number, _ := strconv.Atoi(c.QueryParam("page"))
	if number <= 0 {
		number = 1
	}

	size, _ := strconv.Atoi(c.QueryParam("limit"))
	if size <= 0 {
		size = defaultSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return Page{
		Number: number,
		Size:   size,
		Offset: (number - 1) * size,
	}
}
