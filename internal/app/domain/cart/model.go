// Package cart holds the shopping cart model.
package cart

// Item is one cart line. ID is the cart document id; ProductID references
// the catalog product it was added from.
type Item struct {
	ID          string `json:"id,omitempty"`
	ProductID   string `json:"productId"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Price       string `json:"price"`
	FinalPrice  string `json:"finalPrice"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	Size        string `json:"size"`
	UserID      string `json:"userId"`
}
