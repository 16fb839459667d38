// Package catalog holds the storefront catalog models: products, categories
// and promotional banners.
package catalog

// Product is a sellable item. ID is the document id assigned by the
// document store, not stored inside the document fields.
type Product struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	Image          string `json:"image"`
	Date           int64  `json:"date"`
	CreatedBy      string `json:"createdBy"`
	Price          string `json:"price"`
	FinalPrice     string `json:"finalPrice"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	AvailableUnits int    `json:"availableUnits"`
}

// Category groups products for browsing.
type Category struct {
	Name      string `json:"name"`
	Date      int64  `json:"date"`
	CreatedBy string `json:"createdBy"`
	Image     string `json:"categoryImage"`
}

// Banner is a promotional slide on the landing view.
type Banner struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Date  int64  `json:"date"`
}
