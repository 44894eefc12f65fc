package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prosync/prosync-api/internal/constants"
	"github.com/stretchr/testify/require"
)

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		query  string
		page   int
		limit  int
		offset int
	}{
		{"defaults", "", 1, constants.DefaultPageSize, 0},
		{"explicit window", "page=3&limit=10", 3, 10, 20},
		{"malformed values", "page=abc&limit=xyz", 1, constants.DefaultPageSize, 0},
		{"negative values", "page=-1&limit=-5", 1, constants.DefaultPageSize, 0},
		{"limit above cap", "limit=1000", 1, constants.DefaultPageSize, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)

			params := GetPaginationParams(c)
			require.Equal(t, tt.page, params.Page)
			require.Equal(t, tt.limit, params.Limit)
			require.Equal(t, tt.offset, params.Offset)
		})
	}
}
