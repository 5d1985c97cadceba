package service

import (
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/model"
)

var ErrInvalidCustomer = errors.New("customer name and email are required")

type Event interface {
	Type() string
}

type EventDispatcher interface {
	Dispatch(event Event) error
}

type OrderService interface {
	PlaceOrder(customer model.Customer, items []CartItem, address model.Address) (*model.Order, error)
	TrackOrder(code string) (*model.Order, error)
	OrdersByCustomerEmail(email string) ([]*model.Order, error)
	OrdersByUser(userID uuid.UUID) ([]*model.Order, error)
	ApplyPaymentResult(orderID uuid.UUID, result model.PaymentResult) (*model.Order, error)
}

func NewOrderService(repo model.OrderRepository, pricing PricingService, dispatcher EventDispatcher) OrderService {
	return &orderService{repo: repo, pricing: pricing, dispatcher: dispatcher}
}

type orderService struct {
	repo       model.OrderRepository
	pricing    PricingService
	dispatcher EventDispatcher
}

func (s *orderService) PlaceOrder(customer model.Customer, items []CartItem, address model.Address) (*model.Order, error) {
	customer.Name = strings.TrimSpace(customer.Name)
	customer.Email = strings.ToLower(strings.TrimSpace(customer.Email))
	if customer.Name == "" || customer.Email == "" {
		return nil, ErrInvalidCustomer
	}

	quote, err := s.pricing.PriceCart(items)
	if err != nil {
		return nil, err
	}

	orderID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}
	code, err := newTrackingCode()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &model.Order{
		ID:            orderID,
		TrackingCode:  code,
		Customer:      customer,
		Items:         quote.Items,
		TotalCents:    quote.TotalCents,
		ShippingCents: quote.ShippingCents,
		FinalCents:    quote.FinalCents,
		Payment: model.Payment{
			Status: model.PaymentPending,
			Method: model.MethodCard,
		},
		Status:          model.OrderPending,
		ShippingAddress: address,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(order); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.OrderPlaced{
		OrderID:       orderID,
		TrackingCode:  code,
		CustomerEmail: customer.Email,
		FinalCents:    order.FinalCents,
	})
	return order, nil
}

func (s *orderService) TrackOrder(code string) (*model.Order, error) {
	return s.repo.FindByTrackingCode(strings.ToUpper(strings.TrimSpace(code)))
}

func (s *orderService) OrdersByCustomerEmail(email string) ([]*model.Order, error) {
	return s.repo.FindByCustomerEmail(strings.ToLower(strings.TrimSpace(email)))
}

func (s *orderService) OrdersByUser(userID uuid.UUID) ([]*model.Order, error) {
	return s.repo.FindByUser(userID)
}

// ApplyPaymentResult is the only mutation path after creation. A duplicate
// confirmation of an already-completed order returns the order as stored.
func (s *orderService) ApplyPaymentResult(orderID uuid.UUID, result model.PaymentResult) (*model.Order, error) {
	order, err := s.repo.Find(orderID)
	if err != nil {
		return nil, err
	}

	if order.Payment.Status == model.PaymentCompleted {
		return order, nil
	}

	order.Payment.Status = model.PaymentCompleted
	order.Payment.Method = result.Method
	order.Payment.TransactionID = result.TransactionID
	order.Status = model.OrderConfirmed
	order.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(order); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.OrderPaid{
		OrderID:       order.ID,
		Method:        result.Method,
		TransactionID: result.TransactionID,
	})
	return order, nil
}

const (
	trackingAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	trackingCodeLength = 10
)

func newTrackingCode() (string, error) {
	buf := make([]byte, trackingCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = trackingAlphabet[int(b)%len(trackingAlphabet)]
	}
	return string(buf), nil
}
