package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func pageFor(t *testing.T, query string, defaultSize int) Page {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	return GetPage(c, defaultSize)
}

func TestGetPageDefaults(t *testing.T) {
	page := pageFor(t, "", DefaultPageSize)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, DefaultPageSize, page.Size)
	assert.Equal(t, 0, page.Offset)
}

func TestGetPageComputesOffset(t *testing.T) {
	page := pageFor(t, "page=3&limit=10", DefaultPageSize)
	assert.Equal(t, 3, page.Number)
	assert.Equal(t, 10, page.Size)
	assert.Equal(t, 20, page.Offset)
}

func TestGetPageClampsOversizedLimit(t *testing.T) {
	page := pageFor(t, "limit=5000", DefaultPageSize)
	assert.Equal(t, MaxPageSize, page.Size)
}

func TestGetPageIgnoresGarbage(t *testing.T) {
	page := pageFor(t, "page=-2&limit=abc", ChatPageSize)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, ChatPageSize, page.Size)
}
