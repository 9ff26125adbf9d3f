package dto

// ShippingInfo mirrors the shipping object the storefront submits at checkout.
type ShippingInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
}

type CardDetails struct {
	CardName   string `json:"cardName"`
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// CheckoutItem keeps its fields loosely typed because the storefront sends
// ids, quantities and prices as either JSON numbers or strings. They are
// coerced inside the checkout transaction, one item at a time.
type CheckoutItem struct {
	PerfumeID    any `json:"perfume_id"`
	Quantity     any `json:"quantity"`
	SelectedSize any `json:"selectedSize"`
	Price        any `json:"price"`
}

// CheckoutRequest uses pointers for required fields so a missing field can be
// told apart from a zero value.
type CheckoutRequest struct {
	Shipping      *ShippingInfo  `json:"shipping"`
	PaymentMethod *string        `json:"payment_method"`
	Items         []CheckoutItem `json:"items"`
	TotalPrice    *float64       `json:"totalPrice"`
	Tax           *float64       `json:"tax"`
	ShippingCost  *float64       `json:"shippingCost"`
	CardDetails   *CardDetails   `json:"card_details"`
}

type CheckoutResponse struct {
	Message       string  `json:"message"`
	OrderID       uint    `json:"order_id"`
	OrderNumber   string  `json:"order_number"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"payment_method"`
	Total         float64 `json:"total"`
}

type OrderItemDetail struct {
	PerfumeID uint    `json:"perfume_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Size      *string `json:"size"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

type OrderHistoryEntry struct {
	ID                uint              `json:"id"`
	Number            string            `json:"number"`
	TotalAmount       float64           `json:"total_amount"`
	Status            string            `json:"status"`
	PaymentMethod     string            `json:"payment_method"`
	CreatedAt         string            `json:"created_at"`
	ShippingFirstName string            `json:"shipping_first_name"`
	ShippingLastName  string            `json:"shipping_last_name"`
	ShippingCity      string            `json:"shipping_city"`
	ShippingAddress   string            `json:"shipping_address"`
	ShippingZip       string            `json:"shipping_zip"`
	Items             []OrderItemDetail `json:"items"`
}

type OrdersResponse struct {
	Orders  []OrderHistoryEntry `json:"orders"`
	Message string              `json:"message,omitempty"`
}

type RecentOrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Photo    string `json:"photo"`
}

type RecentOrder struct {
	OrderID    uint              `json:"order_id"`
	Date       string            `json:"date"`
	Time       string            `json:"time"`
	City       string            `json:"city"`
	Status     string            `json:"status"`
	GrandTotal float64           `json:"grand_total"`
	Items      []RecentOrderItem `json:"items"`
	ItemsCount int               `json:"items_count"`
}

type RecentOrdersResponse struct {
	RecentOrders []RecentOrder `json:"recent_orders"`
	Count        int           `json:"count"`
	Message      string        `json:"message"`
}
