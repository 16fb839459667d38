// Package order holds the checkout order model.
package order

// Order is the record written when the user completes checkout.
type Order struct {
	UserID         string    `json:"userId"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	Country        string    `json:"country"`
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	PostalCode     string    `json:"postalCode"`
	Products       []Product `json:"products"`
	SelectedMethod string    `json:"selectedMethod"`
	Timestamp      int64     `json:"timestamp"`
}

// Product is a line item snapshot inside an order.
type Product struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
}
