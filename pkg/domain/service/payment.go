package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/model"
)

var (
	ErrProviderUnavailable = errors.New("payment provider is not configured")
	ErrSignatureMismatch   = errors.New("payment signature verification failed")
	ErrInvalidAmount       = errors.New("amount must be positive")
)

// ProviderOrder is the handle the external provider returns for a checkout.
type ProviderOrder struct {
	ID          string
	AmountCents int64
	Currency    string
}

// PaymentProvider is the outbound contract to the real payment provider.
// A nil provider models the valid "no credentials configured" state.
type PaymentProvider interface {
	CreateOrder(ctx context.Context, amountCents int64, currency, receipt string) (*ProviderOrder, error)
}

type PaymentService interface {
	ProviderConfigured() bool
	CreateProviderOrder(ctx context.Context, amountCents int64, currency, receipt string) (*ProviderOrder, error)
	VerifyPayment(providerOrderID, providerPaymentID, signature string, orderID uuid.UUID) error
	CompleteDemoPayment(orderID uuid.UUID) (string, error)
}

func NewPaymentService(provider PaymentProvider, webhookSecret string, orders OrderService) PaymentService {
	return &paymentService{provider: provider, secret: webhookSecret, orders: orders}
}

type paymentService struct {
	provider PaymentProvider
	secret   string
	orders   OrderService
}

func (s *paymentService) ProviderConfigured() bool {
	return s.provider != nil && s.secret != ""
}

func (s *paymentService) CreateProviderOrder(ctx context.Context, amountCents int64, currency, receipt string) (*ProviderOrder, error) {
	if !s.ProviderConfigured() {
		return nil, ErrProviderUnavailable
	}
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	return s.provider.CreateOrder(ctx, amountCents, currency, receipt)
}

// VerifyPayment checks the provider callback against a locally computed
// signature. The order is only mutated after the signature matches; a
// callback for an unknown order is treated as a retried duplicate and
// acknowledged without error.
func (s *paymentService) VerifyPayment(providerOrderID, providerPaymentID, signature string, orderID uuid.UUID) error {
	if !s.ProviderConfigured() {
		return ErrProviderUnavailable
	}

	expected := Signature(s.secret, providerOrderID, providerPaymentID)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}

	_, err := s.orders.ApplyPaymentResult(orderID, model.PaymentResult{
		Method:        model.MethodCard,
		TransactionID: providerPaymentID,
	})
	if errors.Is(err, model.ErrOrderNotFound) {
		log.WithFields(log.Fields{"orderID": orderID, "paymentID": providerPaymentID}).
			Warn("verified payment references unknown order, ignoring")
		return nil
	}
	return err
}

// CompleteDemoPayment marks the order paid without any provider involved.
// The synthetic transaction identifier is generated once and the persisted
// value is returned, so response and record never diverge.
func (s *paymentService) CompleteDemoPayment(orderID uuid.UUID) (string, error) {
	txnID := fmt.Sprintf("DEMO_%d", time.Now().UTC().UnixMilli())
	order, err := s.orders.ApplyPaymentResult(orderID, model.PaymentResult{
		Method:        model.MethodDemo,
		TransactionID: txnID,
	})
	if err != nil {
		return "", err
	}
	return order.Payment.TransactionID, nil
}

// Signature computes the hex HMAC-SHA256 digest the provider is expected to
// send for a (provider order, provider payment) pair.
func Signature(secret, providerOrderID, providerPaymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(providerOrderID + "|" + providerPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
