package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPaginationFromOffset(t *testing.T) {
	t.Run("first page", func(t *testing.T) {
		p := BuildPaginationFromOffset(45, 0, 20)
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 20, p.PerPage)
		assert.Equal(t, 3, p.TotalPages)
		assert.True(t, p.HasNext)
		assert.False(t, p.HasPrev)
	})

	t.Run("middle page", func(t *testing.T) {
		p := BuildPaginationFromOffset(45, 20, 20)
		assert.Equal(t, 2, p.Page)
		assert.True(t, p.HasNext)
		assert.True(t, p.HasPrev)
	})

	t.Run("last page", func(t *testing.T) {
		p := BuildPaginationFromOffset(45, 40, 20)
		assert.Equal(t, 3, p.Page)
		assert.False(t, p.HasNext)
	})

	t.Run("zero limit falls back to default", func(t *testing.T) {
		p := BuildPaginationFromOffset(10, 0, 0)
		assert.Equal(t, 20, p.PerPage)
		assert.Equal(t, 1, p.TotalPages)
	})
}

func TestResolvePaging(t *testing.T) {
	app := fiber.New()

	var got Paging
	app.Get("/items", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 20, 100)
		return c.SendStatus(fiber.StatusOK)
	})

	cases := []struct {
		name string
		url  string
		want Paging
	}{
		{"defaults", "/items", Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20}},
		{"explicit page and per_page", "/items?page=3&per_page=10", Paging{Page: 3, PerPage: 10, Offset: 20, Limit: 10}},
		{"limit alias", "/items?limit=5", Paging{Page: 1, PerPage: 5, Offset: 0, Limit: 5}},
		{"per_page capped at max", "/items?per_page=500", Paging{Page: 1, PerPage: 100, Offset: 0, Limit: 100}},
		{"negative page clamped", "/items?page=-2", Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tc.url, nil))
			require.NoError(t, err)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Equal(t, tc.want, got)
		})
	}
}
