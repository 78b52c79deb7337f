package domain

const DefaultCategoryColor = "#6B7280"

type Category struct {
	Name  string
	Color string
}

var categoryCatalog = []Category{
	{Name: "Revenue", Color: "#22C55E"},
	{Name: "Payroll", Color: "#3B82F6"},
	{Name: "Operations", Color: "#6B7280"},
	{Name: "IT Expenses", Color: "#8B5CF6"},
	{Name: "Facilities", Color: "#F59E42"},
	{Name: "Marketing", Color: "#EC4899"},
	{Name: "Travel", Color: "#14B8A6"},
	{Name: "Insurance", Color: "#6366F1"},
	{Name: "Tax", Color: "#EF4444"},
	{Name: "Other", Color: "#6B7280"},
}

var categoryColors = func() map[string]string {
	m := make(map[string]string, len(categoryCatalog))
	for _, c := range categoryCatalog {
		m[c.Name] = c.Color
	}
	return m
}()

// CategoryColor maps a category name to its display color. Matching is exact.
func CategoryColor(category string) string {
	if color, ok := categoryColors[category]; ok {
		return color
	}
	return DefaultCategoryColor
}

// Categories returns a copy of the known category catalog.
func Categories() []Category {
	out := make([]Category, len(categoryCatalog))
	copy(out, categoryCatalog)
	return out
}
