package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Order is the gateway's view of a created payment order.
type Order struct {
	ID          string `json:"id"`
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
}

// PaymentGateway defines the Anti-Corruption Layer interface for the
// payment provider. Amounts are in minor currency units (paise/cents).
// This abstraction decouples the reservation protocol from the external
// API and enables test doubles.
type PaymentGateway interface {
	// CreateOrder creates a payment order for the given amount.
	CreateOrder(ctx context.Context, amountMinor int64, currency string) (*Order, error)

	// RefundOrder refunds a previously paid order.
	RefundOrder(ctx context.Context, orderID string, amountMinor int64) error
}

// RazorpayGateway is the HTTP implementation of PaymentGateway against the
// Razorpay orders API.
type RazorpayGateway struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
	logger    *zap.Logger
}

// NewRazorpayGateway creates a gateway client with the given credentials.
func NewRazorpayGateway(baseURL, keyID, keySecret string, logger *zap.Logger) *RazorpayGateway {
	return &RazorpayGateway{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		client:    &http.Client{Timeout: 30 * time.Second},
		logger:    logger,
	}
}

// CreateOrder creates a payment order for the given amount.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountMinor int64, currency string) (*Order, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway order request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway rejected order (status %d): %s", resp.StatusCode, string(body))
	}

	var order Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to decode gateway order: %w", err)
	}

	g.logger.Info("gateway order created",
		zap.String("order_id", order.ID),
		zap.Int64("amount_minor", order.AmountMinor),
		zap.String("currency", order.Currency),
	)
	return &order, nil
}

// RefundOrder refunds a previously paid order.
func (g *RazorpayGateway) RefundOrder(ctx context.Context, orderID string, amountMinor int64) error {
	payload, err := json.Marshal(map[string]interface{}{
		"payment_id": orderID,
		"amount":     amountMinor,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/refunds", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway refund request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("gateway rejected refund (status %d): %s", resp.StatusCode, string(body))
	}

	g.logger.Info("gateway refund created",
		zap.String("order_id", orderID),
		zap.Int64("amount_minor", amountMinor),
	)
	return nil
}

// MockGateway is a development/testing implementation of PaymentGateway.
// It simulates the provider without requiring a real account.
type MockGateway struct {
	logger *zap.Logger
}

// NewMockGateway creates a new mock gateway for development.
func NewMockGateway(logger *zap.Logger) *MockGateway {
	return &MockGateway{logger: logger}
}

// CreateOrder simulates order creation and returns a mock order.
func (m *MockGateway) CreateOrder(ctx context.Context, amountMinor int64, currency string) (*Order, error) {
	order := &Order{
		ID:          fmt.Sprintf("order_mock_%s", uuid.New().String()[:8]),
		AmountMinor: amountMinor,
		Currency:    currency,
		Status:      "created",
	}
	m.logger.Info("[MOCK GATEWAY] order created",
		zap.String("order_id", order.ID),
		zap.Int64("amount_minor", amountMinor),
		zap.String("currency", currency),
	)
	return order, nil
}

// RefundOrder simulates refunding an order.
func (m *MockGateway) RefundOrder(ctx context.Context, orderID string, amountMinor int64) error {
	m.logger.Info("[MOCK GATEWAY] refund created",
		zap.String("order_id", orderID),
		zap.Int64("amount_minor", amountMinor),
	)
	return nil
}
