package order

import (
	"context"
	"database/sql"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/dmkabwe/zubasolar/internal/types/order"
	"github.com/google/uuid"
)

var (
	ErrMissingFields = errors.New("name, email, address and product are required")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrInvalidPrice  = errors.New("product price must be positive")
	ErrOrderNotFound = errors.New("order not found")
	ErrNoSearchTerms = errors.New("order id or email required")
	ErrStaleStatus   = errors.New("fulfillment status is not a forward move")
)

const (
	deliveryLeadDays = 14
	installLeadDays  = 21
)

type CreateOrderRequest struct {
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerAddress string `json:"customer_address"`
	ProductName     string `json:"product_name"`
	ProductPrice    int64  `json:"product_price"`
}

type Service struct {
	repo OrderRepository
}

func NewService(r OrderRepository) *Service {
	return &Service{repo: r}
}

// CreateOrder validates the checkout form and persists a pending, unpaid
// order with delivery and install estimates derived from the creation time.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*order.Order, error) {
	name := strings.TrimSpace(req.CustomerName)
	email := strings.TrimSpace(req.CustomerEmail)
	address := strings.TrimSpace(req.CustomerAddress)
	product := strings.TrimSpace(req.ProductName)

	if name == "" || email == "" || address == "" || product == "" {
		return nil, ErrMissingFields
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if req.ProductPrice <= 0 {
		return nil, ErrInvalidPrice
	}

	now := time.Now().UTC()
	o := &order.Order{
		ID:                   uuid.NewString(),
		CustomerName:         name,
		CustomerEmail:        email,
		CustomerPhone:        strings.TrimSpace(req.CustomerPhone),
		CustomerAddress:      address,
		ProductName:          product,
		ProductPrice:         req.ProductPrice,
		OrderStatus:          order.StatusPending,
		PaymentStatus:        order.PaymentPending,
		EstimatedDelivery:    now.AddDate(0, 0, deliveryLeadDays),
		EstimatedInstallDate: now.AddDate(0, 0, installLeadDays),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// ConfirmPayment simulates a successful payment: payment_status and
// order_status flip together in a single repository write. The write only
// matches pending orders, so a replayed confirmation returns the order as it
// stands instead of rewinding its status.
func (s *Service) ConfirmPayment(ctx context.Context, id string) (*order.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrOrderNotFound
	}
	if err := s.repo.MarkOrderPaid(ctx, id); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		o, ferr := s.repo.FindOrderByID(ctx, id)
		if ferr != nil {
			if errors.Is(ferr, sql.ErrNoRows) {
				return nil, ErrOrderNotFound
			}
			return nil, ferr
		}
		if o.PaymentStatus == order.PaymentPaid {
			return o, nil
		}
		return nil, ErrOrderNotFound
	}
	return s.repo.FindOrderByID(ctx, id)
}

// FindOrder looks an order up by id or, failing that, by customer email.
// Id takes precedence when both are supplied.
func (s *Service) FindOrder(ctx context.Context, id, email string) (*order.Order, error) {
	var (
		o   *order.Order
		err error
	)
	switch {
	case id != "":
		// a malformed id cannot match a UUID key and would error at the
		// driver instead of missing
		if _, perr := uuid.Parse(id); perr != nil {
			return nil, ErrOrderNotFound
		}
		o, err = s.repo.FindOrderByID(ctx, id)
	case email != "":
		o, err = s.repo.FindLatestOrderByEmail(ctx, email)
	default:
		return nil, ErrNoSearchTerms
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *Service) ListForFulfillment(ctx context.Context) ([]order.Order, error) {
	return s.repo.ListOrdersForFulfillment(ctx)
}

// UpdateFromFulfillment applies an externally reported order status. Only
// forward moves along the canonical lifecycle are accepted.
func (s *Service) UpdateFromFulfillment(ctx context.Context, id string, status order.OrderStatus) error {
	if !order.Valid(status) {
		return ErrStaleStatus
	}
	cur, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		return err
	}
	if order.Rank(status) <= order.Rank(cur.OrderStatus) {
		return ErrStaleStatus
	}
	return s.repo.UpdateOrderStatus(ctx, id, status)
}
