package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func resolveVia(t *testing.T, target string, defaultPerPage, maxPerPage int) Paging {
	t.Helper()

	var got Paging
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, defaultPerPage, maxPerPage)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	return got
}

func TestResolvePaging(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		defaultPerPage int
		maxPerPage     int
		want           Paging
	}{
		{
			name:           "defaults when no query",
			target:         "/items",
			defaultPerPage: 20,
			want:           Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20},
		},
		{
			name:           "page and per_page",
			target:         "/items?page=3&per_page=10",
			defaultPerPage: 20,
			want:           Paging{Page: 3, PerPage: 10, Offset: 20, Limit: 10},
		},
		{
			name:           "limit alias",
			target:         "/items?limit=5",
			defaultPerPage: 20,
			want:           Paging{Page: 1, PerPage: 5, Offset: 0, Limit: 5},
		},
		{
			name:           "per_page wins over limit",
			target:         "/items?per_page=7&limit=50",
			defaultPerPage: 20,
			want:           Paging{Page: 1, PerPage: 7, Offset: 0, Limit: 7},
		},
		{
			name:           "capped at max",
			target:         "/items?per_page=500",
			defaultPerPage: 20,
			maxPerPage:     100,
			want:           Paging{Page: 1, PerPage: 100, Offset: 0, Limit: 100},
		},
		{
			name:           "garbage falls back",
			target:         "/items?page=abc&per_page=-4",
			defaultPerPage: 20,
			want:           Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveVia(t, tt.target, tt.defaultPerPage, tt.maxPerPage)
			if got != tt.want {
				t.Errorf("ResolvePaging() = %+v; want %+v", got, tt.want)
			}
		})
	}
}

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(45, 2, 20)
	if p.TotalPages != 3 {
		t.Errorf("TotalPages = %d; want 3", p.TotalPages)
	}
	if !p.HasNext || !p.HasPrev {
		t.Errorf("HasNext/HasPrev = %v/%v; want true/true", p.HasNext, p.HasPrev)
	}

	empty := BuildPaginationFromPage(0, 1, 20)
	if empty.TotalPages != 1 {
		t.Errorf("empty TotalPages = %d; want 1", empty.TotalPages)
	}
	if empty.HasNext || empty.HasPrev {
		t.Errorf("empty HasNext/HasPrev = %v/%v; want false/false", empty.HasNext, empty.HasPrev)
	}
}
