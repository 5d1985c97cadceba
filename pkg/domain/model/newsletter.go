package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrSubscriberNotFound = errors.New("subscriber not found")

type Subscriber struct {
	ID           uuid.UUID
	Email        string
	Name         string
	IsActive     bool
	SubscribedAt time.Time
	UpdatedAt    time.Time
}

type NewsletterRepository interface {
	NextID() (uuid.UUID, error)
	Create(subscriber *Subscriber) error
	Update(subscriber *Subscriber) error
	FindByEmail(email string) (*Subscriber, error)
}
