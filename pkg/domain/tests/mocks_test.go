package tests

import (
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/model"
	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/service"
)

// --- Product repository ---

type mockProductRepository struct {
	store map[uuid.UUID]*model.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{store: make(map[uuid.UUID]*model.Product)}
}

func (m *mockProductRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (m *mockProductRepository) Create(p *model.Product) error {
	val := *p
	m.store[p.ID] = &val
	return nil
}

func (m *mockProductRepository) Update(p *model.Product) error {
	if _, ok := m.store[p.ID]; !ok {
		return model.ErrProductNotFound
	}
	val := *p
	m.store[p.ID] = &val
	return nil
}

func (m *mockProductRepository) Find(id uuid.UUID) (*model.Product, error) {
	p, ok := m.store[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	val := *p
	return &val, nil
}

func (m *mockProductRepository) FindActive(filter model.ProductFilter) ([]*model.Product, error) {
	matched := m.matchActive(filter)
	start := filter.Offset()
	if start > len(matched) {
		return nil, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (m *mockProductRepository) CountActive(filter model.ProductFilter) (int, error) {
	return len(m.matchActive(filter)), nil
}

func (m *mockProductRepository) matchActive(filter model.ProductFilter) []*model.Product {
	var matched []*model.Product
	for _, p := range m.store {
		if !p.IsActive {
			continue
		}
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		val := *p
		matched = append(matched, &val)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

// --- Order repository ---

type mockOrderRepository struct {
	store   map[uuid.UUID]*model.Order
	updates int
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{store: make(map[uuid.UUID]*model.Order)}
}

func (m *mockOrderRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (m *mockOrderRepository) Create(o *model.Order) error {
	if _, exists := m.store[o.ID]; exists {
		return errors.New("order already exists")
	}
	m.store[o.ID] = copyOrder(o)
	return nil
}

func (m *mockOrderRepository) Find(id uuid.UUID) (*model.Order, error) {
	o, ok := m.store[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	return copyOrder(o), nil
}

func (m *mockOrderRepository) FindByTrackingCode(code string) (*model.Order, error) {
	for _, o := range m.store {
		if o.TrackingCode == code {
			return copyOrder(o), nil
		}
	}
	return nil, model.ErrOrderNotFound
}

func (m *mockOrderRepository) FindByCustomerEmail(email string) ([]*model.Order, error) {
	return m.filter(func(o *model.Order) bool { return o.Customer.Email == email }), nil
}

func (m *mockOrderRepository) FindByUser(userID uuid.UUID) ([]*model.Order, error) {
	return m.filter(func(o *model.Order) bool {
		return o.Customer.UserID != nil && *o.Customer.UserID == userID
	}), nil
}

func (m *mockOrderRepository) Update(o *model.Order) error {
	if _, ok := m.store[o.ID]; !ok {
		return model.ErrOrderNotFound
	}
	m.store[o.ID] = copyOrder(o)
	m.updates++
	return nil
}

func (m *mockOrderRepository) filter(keep func(*model.Order) bool) []*model.Order {
	var matched []*model.Order
	for _, o := range m.store {
		if keep(o) {
			matched = append(matched, copyOrder(o))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

func copyOrder(o *model.Order) *model.Order {
	val := *o
	val.Items = append([]model.LineItem(nil), o.Items...)
	return &val
}

// --- Newsletter repository ---

type mockNewsletterRepository struct {
	store map[string]*model.Subscriber
}

func newMockNewsletterRepository() *mockNewsletterRepository {
	return &mockNewsletterRepository{store: make(map[string]*model.Subscriber)}
}

func (m *mockNewsletterRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (m *mockNewsletterRepository) Create(s *model.Subscriber) error {
	if _, exists := m.store[s.Email]; exists {
		return errors.New("duplicate email")
	}
	val := *s
	m.store[s.Email] = &val
	return nil
}

func (m *mockNewsletterRepository) Update(s *model.Subscriber) error {
	if _, ok := m.store[s.Email]; !ok {
		return model.ErrSubscriberNotFound
	}
	val := *s
	m.store[s.Email] = &val
	return nil
}

func (m *mockNewsletterRepository) FindByEmail(email string) (*model.Subscriber, error) {
	s, ok := m.store[email]
	if !ok {
		return nil, model.ErrSubscriberNotFound
	}
	val := *s
	return &val, nil
}

// --- User repository ---

type mockUserRepository struct {
	store map[uuid.UUID]*model.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{store: make(map[uuid.UUID]*model.User)}
}

func (m *mockUserRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (m *mockUserRepository) Create(u *model.User) error {
	val := *u
	m.store[u.ID] = &val
	return nil
}

func (m *mockUserRepository) Find(id uuid.UUID) (*model.User, error) {
	u, ok := m.store[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	val := *u
	return &val, nil
}

func (m *mockUserRepository) FindByEmail(email string) (*model.User, error) {
	for _, u := range m.store {
		if u.Email == email {
			val := *u
			return &val, nil
		}
	}
	return nil, model.ErrUserNotFound
}

// --- Password manager ---

type mockPasswordManager struct{}

func (mockPasswordManager) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (mockPasswordManager) Check(hashed, plain string) (bool, error) {
	return hashed == "hashed:"+plain, nil
}

// --- Event dispatcher ---

type mockEventDispatcher struct {
	events []service.Event
}

func (m *mockEventDispatcher) Dispatch(event service.Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventDispatcher) Reset() {
	m.events = nil
}
