package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmployeeFilterNormalized(t *testing.T) {
	cases := []struct {
		name         string
		in           EmployeeFilter
		page, size   int
	}{
		{"zero values take defaults", EmployeeFilter{}, 1, DefaultPageSize},
		{"negative paging takes defaults", EmployeeFilter{Page: -3, PageSize: -1}, 1, DefaultPageSize},
		{"oversized page size is capped", EmployeeFilter{Page: 2, PageSize: 500}, 2, MaxPageSize},
		{"in-range values pass through", EmployeeFilter{Page: 4, PageSize: 25}, 4, 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalized()
			assert.Equal(t, tc.page, got.Page)
			assert.Equal(t, tc.size, got.PageSize)
		})
	}
}
