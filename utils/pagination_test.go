package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationFor(target string) *Pagination {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return NewPagination(c)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	p := paginationFor("/?page=2&limit=2")
	assert.Equal(t, []int{3, 4}, Paginate(items, p))
	assert.EqualValues(t, 5, p.Total)
	assert.Equal(t, 3, p.LastPage)

	assert.Empty(t, Paginate(items, paginationFor("/?page=9&limit=2")))

	p = paginationFor("/?limit=-3")
	assert.Equal(t, DefaultPageLimit, p.Limit)
	assert.Equal(t, items, Paginate(items, p))
}

func TestNewPaginationClampsLimit(t *testing.T) {
	p := paginationFor("/?page=0&limit=1000")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPageLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)
}
