package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type PaymentMethod string

const (
	MethodCard           PaymentMethod = "card"
	MethodDemo           PaymentMethod = "demo"
	MethodCashOnDelivery PaymentMethod = "cod"
)

type Customer struct {
	Name   string
	Email  string
	Phone  string
	UserID *uuid.UUID // nil for guest orders
}

// LineItem is a snapshot of a catalog product captured at order time.
// Name, price and image are never re-read from the live product.
type LineItem struct {
	ProductID  uuid.UUID
	Name       string
	PriceCents int64
	Image      string
	Quantity   int
}

type Payment struct {
	Status        PaymentStatus
	Method        PaymentMethod
	TransactionID string
}

// Address is passed through as given; the order flow never interprets it.
type Address struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

type Order struct {
	ID              uuid.UUID
	TrackingCode    string // uppercase alphanumeric, shared with the customer
	Customer        Customer
	Items           []LineItem
	TotalCents      int64
	ShippingCents   int64
	FinalCents      int64
	Payment         Payment
	Status          OrderStatus
	ShippingAddress Address
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PaymentResult is the outcome a confirmation flow applies to an order.
type PaymentResult struct {
	Method        PaymentMethod
	TransactionID string
}

type OrderRepository interface {
	NextID() (uuid.UUID, error)
	// Create persists the order and its items as one atomic write.
	Create(order *Order) error
	Find(id uuid.UUID) (*Order, error)
	FindByTrackingCode(code string) (*Order, error)
	// FindByCustomerEmail and FindByUser return orders newest first.
	FindByCustomerEmail(email string) ([]*Order, error)
	FindByUser(userID uuid.UUID) ([]*Order, error)
	// Update applies the payment/status transition in a single statement.
	Update(order *Order) error
}
