package order

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusInstalled OrderStatus = "installed"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// statusOrder is the canonical lifecycle; rank decides progress and which
// fulfillment updates count as forward moves.
var statusOrder = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusShipped,
	StatusDelivered,
	StatusInstalled,
}

type Order struct {
	ID                   string        `db:"id" json:"id"`
	CustomerName         string        `db:"customer_name" json:"customer_name"`
	CustomerEmail        string        `db:"customer_email" json:"customer_email"`
	CustomerPhone        string        `db:"customer_phone" json:"customer_phone,omitempty"`
	CustomerAddress      string        `db:"customer_address" json:"customer_address"`
	ProductName          string        `db:"product_name" json:"product_name"`
	ProductPrice         int64         `db:"product_price" json:"product_price"`
	OrderStatus          OrderStatus   `db:"order_status" json:"order_status"`
	PaymentStatus        PaymentStatus `db:"payment_status" json:"payment_status"`
	EstimatedDelivery    time.Time     `db:"estimated_delivery" json:"estimated_delivery"`
	EstimatedInstallDate time.Time     `db:"estimated_install_date" json:"estimated_install_date"`
	CreatedAt            time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time     `db:"updated_at" json:"updated_at"`
}

// Rank returns the position of s in the canonical lifecycle, -1 for unknown.
func Rank(s OrderStatus) int {
	for i, st := range statusOrder {
		if st == s {
			return i
		}
	}
	return -1
}

func Valid(s OrderStatus) bool {
	return Rank(s) >= 0
}

// Progress maps an order status to a tracking percentage. Total over any
// input: unknown statuses map to 0.
func Progress(s OrderStatus) int {
	switch s {
	case StatusPending:
		return 25
	case StatusConfirmed:
		return 50
	case StatusShipped:
		return 75
	case StatusDelivered:
		return 90
	case StatusInstalled:
		return 100
	default:
		return 0
	}
}

type Step struct {
	ID        OrderStatus `json:"id"`
	Label     string      `json:"label"`
	Completed bool        `json:"completed"`
	Current   bool        `json:"current"`
}

// Steps derives the four tracking milestones for a status. A pending order
// has no completed and no current step.
func Steps(s OrderStatus) []Step {
	steps := []Step{
		{ID: StatusConfirmed, Label: "Order Confirmed"},
		{ID: StatusShipped, Label: "Equipment Shipped"},
		{ID: StatusDelivered, Label: "Equipment Delivered"},
		{ID: StatusInstalled, Label: "Installation Complete"},
	}
	current := Rank(s)
	for i := range steps {
		steps[i].Completed = i <= current-1
		steps[i].Current = i == current-1
	}
	return steps
}
