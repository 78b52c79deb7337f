package domain_test

import (
	"testing"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCategoryColor(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"Revenue", "#22C55E"},
		{"Payroll", "#3B82F6"},
		{"IT Expenses", "#8B5CF6"},
		{"Facilities", "#F59E42"},
		{"Travel", "#14B8A6"},
		{"Tax", "#EF4444"},
		{"Other", "#6B7280"},
		{"travel", domain.DefaultCategoryColor},
		{"Gifts", domain.DefaultCategoryColor},
		{"", domain.DefaultCategoryColor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.CategoryColor(tt.category), "category %q", tt.category)
	}
}

func TestCategoriesReturnsCopy(t *testing.T) {
	first := domain.Categories()
	first[0].Color = "#000000"

	assert.Equal(t, "#22C55E", domain.Categories()[0].Color)
	assert.Equal(t, "#22C55E", domain.CategoryColor("Revenue"))
}
