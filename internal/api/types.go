package api

import (
	"strings"
	"time"
)

// LoginRequest carries the credentials submitted to the auth endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse mirrors the backend payload for a successful login.
type LoginResponse struct {
	ID       *int64 `json:"id"`
	Token    string `json:"token"`
	Type     string `json:"type"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// RegisterRequest carries the fields submitted at registration. Store
// accounts additionally supply tax and store details; customer accounts
// supply first/last names.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	TaxID     string `json:"taxId,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	StoreName string `json:"storeName,omitempty"`
	OwnerName string `json:"ownerName,omitempty"`
}

// RegisterResponse mirrors the backend payload after registration. The
// backend does not issue a token here; a follow-up login is required.
type RegisterResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Product mirrors the backend product representation.
type Product struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Type          string  `json:"type"`
	Brand         string  `json:"brand"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
	StoreID       int64   `json:"storeId"`
	StoreName     string  `json:"storeName"`
}

// InStock reports whether the product can currently be added to a cart.
func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

// ProductFilter narrows catalog listings. Zero values are omitted from
// the query string.
type ProductFilter struct {
	Title    string
	Type     string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
	StoreID  *int64
}

// ProductUpsert is the request body shared by product create and update.
type ProductUpsert struct {
	Title         string  `json:"title"`
	Type          string  `json:"type"`
	Brand         string  `json:"brand"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
}

// UpdateStockRequest adjusts only the stock level of a product.
type UpdateStockRequest struct {
	StockQuantity int `json:"stockQuantity"`
}

// Cart mirrors the backend shopping cart representation.
type Cart struct {
	CartID     *int64     `json:"cartId"`
	Items      []CartItem `json:"items"`
	TotalPrice float64    `json:"totalPrice"`
}

// CartItem is a single line in the shopping cart.
type CartItem struct {
	CartItemID     int64   `json:"cartItemId"`
	ProductID      int64   `json:"productId"`
	ProductTitle   string  `json:"productTitle"`
	ProductBrand   string  `json:"productBrand"`
	ProductPrice   float64 `json:"productPrice"`
	Quantity       int     `json:"quantity"`
	Subtotal       float64 `json:"subtotal"`
	StoreID        int64   `json:"storeId"`
	StoreName      string  `json:"storeName"`
	AvailableStock int     `json:"availableStock"`
}

// AddCartItemRequest adds a product to the cart.
type AddCartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// UpdateCartItemRequest changes the quantity of an existing line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// Order mirrors the backend order representation.
type Order struct {
	OrderID      int64       `json:"orderId"`
	CustomerID   int64       `json:"customerId"`
	CustomerName string      `json:"customerName"`
	StoreID      int64       `json:"storeId"`
	StoreName    string      `json:"storeName"`
	TotalPrice   float64     `json:"totalPrice"`
	OrderDate    string      `json:"orderDate"`
	Status       string      `json:"status"`
	Items        []OrderItem `json:"items"`
}

// PlacedAt parses the backend order timestamp, which arrives without a
// zone offset in some deployments.
func (o Order) PlacedAt() time.Time {
	val := strings.TrimSpace(o.OrderDate)
	if val == "" {
		return time.Time{}
	}
	layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05"}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, val); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// OrderItem is a single purchased line within an order.
type OrderItem struct {
	OrderItemID     int64   `json:"orderItemId"`
	ProductID       int64   `json:"productId"`
	ProductTitle    string  `json:"productTitle"`
	ProductBrand    string  `json:"productBrand"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
	Subtotal        float64 `json:"subtotal"`
}

// PaymentRequest carries the mocked card details submitted at checkout.
// The backend validates shape only; no real charge occurs.
type PaymentRequest struct {
	CardNumber     string `json:"cardNumber"`
	CardHolderName string `json:"cardHolderName"`
	ExpiryDate     string `json:"expiryDate"`
	CVV            string `json:"cvv"`
}

// CheckoutResult mirrors the backend response after a checkout attempt.
type CheckoutResult struct {
	PaymentStatus string  `json:"paymentStatus"`
	TransactionID string  `json:"transactionId"`
	Message       string  `json:"message"`
	Orders        []Order `json:"orders"`
}

// Store mirrors the backend store representation.
type Store struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Owner        string `json:"owner"`
	ProductCount int    `json:"productCount"`
}

// CustomerStats aggregates dashboard figures for a customer account.
type CustomerStats struct {
	ItemsInCart               int     `json:"itemsInCart"`
	CartTotalPrice            float64 `json:"cartTotalPrice"`
	TotalOrders               int64   `json:"totalOrders"`
	TotalOrdersCompleted      int64   `json:"totalOrdersCompleted"`
	UniqueStoresPurchasedFrom int64   `json:"uniqueStoresPurchasedFrom"`
	TotalAmountSpent          float64 `json:"totalAmountSpent"`
	TotalItemsPurchased       int64   `json:"totalItemsPurchased"`
}

// StoreStats aggregates dashboard figures for a store account.
type StoreStats struct {
	TotalProducts        int64   `json:"totalProducts"`
	ProductsInStock      int64   `json:"productsInStock"`
	ProductsOutOfStock   int64   `json:"productsOutOfStock"`
	TotalOrders          int64   `json:"totalOrders"`
	TotalOrdersCompleted int64   `json:"totalOrdersCompleted"`
	UniqueCustomers      int64   `json:"uniqueCustomers"`
	TotalRevenue         float64 `json:"totalRevenue"`
	TotalItemsSold       int64   `json:"totalItemsSold"`
}
