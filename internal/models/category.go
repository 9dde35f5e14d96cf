package models

// Category is a menu slot. The wire values match the fields stored by the
// original client, so existing data keeps working.
type Category string

const (
	CategoryMain Category = "main"
	CategoryStir Category = "stir"
	CategoryVeg  Category = "veg"
	CategorySoup Category = "soup"
)

// Categories lists all categories in display order.
func Categories() []Category {
	return []Category{CategoryMain, CategoryStir, CategoryVeg, CategorySoup}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryMain, CategoryStir, CategoryVeg, CategorySoup:
		return true
	}
	return false
}
