package service

import (
	"errors"
	"strings"
	"time"

	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/model"
)

var ErrInvalidEmail = errors.New("a valid email address is required")

type NewsletterService interface {
	Subscribe(email, name string) (*model.Subscriber, error)
	Unsubscribe(email string) error
}

func NewNewsletterService(repo model.NewsletterRepository, dispatcher EventDispatcher) NewsletterService {
	return &newsletterService{repo: repo, dispatcher: dispatcher}
}

type newsletterService struct {
	repo       model.NewsletterRepository
	dispatcher EventDispatcher
}

// Subscribe is idempotent on email: an existing active subscriber is
// returned unchanged, an inactive one is reactivated.
func (s *newsletterService) Subscribe(email, name string) (*model.Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	existing, err := s.repo.FindByEmail(email)
	if err == nil {
		if !existing.IsActive {
			existing.IsActive = true
			existing.UpdatedAt = time.Now().UTC()
			if err := s.repo.Update(existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}
	if !errors.Is(err, model.ErrSubscriberNotFound) {
		return nil, err
	}

	id, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	subscriber := &model.Subscriber{
		ID:           id,
		Email:        email,
		Name:         strings.TrimSpace(name),
		IsActive:     true,
		SubscribedAt: now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(subscriber); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.NewsletterSubscribed{SubscriberID: id, Email: email})
	return subscriber, nil
}

func (s *newsletterService) Unsubscribe(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	subscriber, err := s.repo.FindByEmail(email)
	if err != nil {
		return err
	}
	if !subscriber.IsActive {
		return nil
	}
	subscriber.IsActive = false
	subscriber.UpdatedAt = time.Now().UTC()
	return s.repo.Update(subscriber)
}
