package model

import "github.com/google/uuid"

type OrderPlaced struct {
	OrderID       uuid.UUID
	TrackingCode  string
	CustomerEmail string
	FinalCents    int64
}

func (e OrderPlaced) Type() string { return "OrderPlaced" }

type OrderPaid struct {
	OrderID       uuid.UUID
	Method        PaymentMethod
	TransactionID string
}

func (e OrderPaid) Type() string { return "OrderPaid" }

type PaymentVerificationFailed struct {
	OrderID uuid.UUID
	Reason  string
}

func (e PaymentVerificationFailed) Type() string { return "PaymentVerificationFailed" }

type NewsletterSubscribed struct {
	SubscriberID uuid.UUID
	Email        string
}

func (e NewsletterSubscribed) Type() string { return "NewsletterSubscribed" }

type UserRegistered struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

func (e UserRegistered) Type() string { return "UserRegistered" }
