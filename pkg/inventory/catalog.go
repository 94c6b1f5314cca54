package inventory

import "strings"

// Group is one of the three fixed sets of demo products.
type Group int

const (
	// GroupAged products were added months ago and never show up as new.
	GroupAged Group = iota
	// GroupRecent products were added within the last week.
	GroupRecent
	// GroupOutOfStock products are recent but have zero quantity.
	GroupOutOfStock
)

func (g Group) String() string {
	switch g {
	case GroupAged:
		return "aged"
	case GroupRecent:
		return "recent"
	case GroupOutOfStock:
		return "out of stock"
	default:
		return "unknown"
	}
}

var agedProducts = []string{
	"Apples",
	"Bananas",
	"Milk",
	"Whole Wheat Bread",
	"Eggs",
	"Cheddar Cheese",
	"Whole Chicken",
	"Rice",
	"Black Beans",
	"Bottled Water",
	"Apple Juice",
	"Cola",
	"Coffee Beans",
	"Green Tea",
	"Watermelon",
	"Broccoli",
	"Jasmine Rice",
	"Yogurt",
	"Beef",
	"Shrimp",
	"Walnuts",
	"Sunflower Seeds",
	"Fresh Basil",
	"Cinnamon",
}

var recentProducts = []string{
	"Parmesan Crisps",
	"Pineapple Kombucha",
	"Maple Almond Butter",
	"Mint Chocolate Cookies",
	"White Chocolate Caramel Corn",
	"Acai Smoothie Packs",
	"Smores Cereal",
	"Peanut Butter and Jelly Cups",
}

var outOfStockProducts = []string{
	"Wasabi Party Mix",
	"Jalapeno Seasoning",
}

// Names returns a copy of the product names in group g.
func Names(g Group) []string {
	var src []string
	switch g {
	case GroupAged:
		src = agedProducts
	case GroupRecent:
		src = recentProducts
	case GroupOutOfStock:
		src = outOfStockProducts
	}
	return append([]string(nil), src...)
}

// CatalogSize is the number of products the seed routine writes.
func CatalogSize() int {
	return len(agedProducts) + len(recentProducts) + len(outOfStockProducts)
}

// ImageFile derives the image path for a product name: all whitespace is
// removed, the rest lowercased, then prefixed with dir and suffixed ".png".
func ImageFile(dir, name string) string {
	return dir + strings.ToLower(strings.Join(strings.Fields(name), "")) + ".png"
}
