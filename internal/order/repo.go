package order

import (
	"context"

	"github.com/dmkabwe/zubasolar/internal/types/order"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, o *order.Order) error
	FindOrderByID(ctx context.Context, id string) (*order.Order, error)
	FindLatestOrderByEmail(ctx context.Context, email string) (*order.Order, error)
	MarkOrderPaid(ctx context.Context, id string) error
	ListOrdersForFulfillment(ctx context.Context) ([]order.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status order.OrderStatus) error
}
