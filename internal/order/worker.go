package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmkabwe/zubasolar/internal/logger"
	"github.com/dmkabwe/zubasolar/internal/types/order"
	"go.uber.org/zap"
)

// FulfillmentResponse is what the logistics partner reports for one order.
type FulfillmentResponse struct {
	Order  string `json:"order"`
	Status string `json:"status"`
}

type FulfillmentClient interface {
	GetShipment(ctx context.Context, orderID string) (*FulfillmentResponse, error)
}

type Updater interface {
	UpdateFromFulfillment(ctx context.Context, id string, status order.OrderStatus) error
}

type HTTPFulfillmentClient struct {
	Client             *http.Client
	FulfillmentAddress string
}

func (c *HTTPFulfillmentClient) GetShipment(ctx context.Context, orderID string) (*FulfillmentResponse, error) {
	url := fmt.Sprintf("%s/api/shipments/%s", c.FulfillmentAddress, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("too many requests (429) for order %s", orderID)
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var fr FulfillmentResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	return &fr, nil
}

func workerLoop(
	ctx context.Context,
	id int,
	client FulfillmentClient,
	jobs <-chan string,
	svc Updater,
) {
	logger.Log.Info("fulfillment worker started", zap.Int("worker", id))
	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("fulfillment worker stopped", zap.Int("worker", id))
			return

		case orderID, ok := <-jobs:
			if !ok {
				return
			}

			fr, err := client.GetShipment(ctx, orderID)
			if err != nil {
				logger.Log.Warn("fulfillment request failed",
					zap.Int("worker", id), zap.String("order", orderID), zap.Error(err))
				continue
			}
			if fr == nil || fr.Order == "" {
				continue
			}

			err = svc.UpdateFromFulfillment(ctx, fr.Order, order.OrderStatus(fr.Status))
			if errors.Is(err, ErrStaleStatus) {
				logger.Log.Debug("fulfillment status ignored",
					zap.String("order", fr.Order), zap.String("status", fr.Status))
				continue
			}
			if err != nil {
				logger.Log.Warn("fulfillment update failed",
					zap.Int("worker", id), zap.String("order", fr.Order), zap.Error(err))
				continue
			}
			logger.Log.Info("order status updated from fulfillment",
				zap.String("order", fr.Order), zap.String("status", fr.Status))
		}
	}
}

// DispatcherLoop polls the fulfillment partner for every paid order that has
// not yet reached installed and fans the lookups out to a worker pool.
func DispatcherLoop(
	ctx context.Context,
	client FulfillmentClient,
	svc *Service,
	workerCount int,
	interval time.Duration,
) {
	jobs := make(chan string, workerCount*3)

	for i := 1; i <= workerCount; i++ {
		go workerLoop(ctx, i, client, jobs, svc)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			close(jobs)
			return
		case <-ticker.C:
			orders, err := svc.ListForFulfillment(ctx)
			if err != nil {
				logger.Log.Warn("fulfillment poll failed", zap.Error(err))
				continue
			}
			for _, o := range orders {
				select {
				case jobs <- o.ID:
				default:
					// channel full, the order is retried next tick
				}
			}
		}
	}
}
