package remote

// Collection names shared by the adapters and the seeding tool.
const (
	UsersCollection      = "users"
	ProductsCollection   = "products"
	CategoriesCollection = "categories"
	BannersCollection    = "banners"
	CartItemsCollection  = "cart_items"
	FavoritesCollection  = "favorites"
	OrdersCollection     = "orders"
)
