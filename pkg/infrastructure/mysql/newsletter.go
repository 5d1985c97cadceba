package mysql

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/model"
)

func NewNewsletterRepository(db *sqlx.DB) model.NewsletterRepository {
	return &newsletterRepository{db: db}
}

type newsletterRepository struct {
	db *sqlx.DB
}

type subscriberRow struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	IsActive     bool      `db:"is_active"`
	SubscribedAt time.Time `db:"subscribed_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r *newsletterRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *newsletterRepository) Create(subscriber *model.Subscriber) error {
	_, err := r.db.NamedExec(`
		INSERT INTO newsletter_subscribers (id, email, name, is_active, subscribed_at, updated_at)
		VALUES (:id, :email, :name, :is_active, :subscribed_at, :updated_at)`,
		toSubscriberRow(subscriber))
	return errors.Wrap(err, "insert subscriber")
}

func (r *newsletterRepository) Update(subscriber *model.Subscriber) error {
	res, err := r.db.NamedExec(`
		UPDATE newsletter_subscribers
		SET name = :name, is_active = :is_active, updated_at = :updated_at
		WHERE email = :email`, toSubscriberRow(subscriber))
	if err != nil {
		return errors.Wrap(err, "update subscriber")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update subscriber")
	}
	if affected == 0 {
		return model.ErrSubscriberNotFound
	}
	return nil
}

func (r *newsletterRepository) FindByEmail(email string) (*model.Subscriber, error) {
	var row subscriberRow
	err := r.db.Get(&row, `SELECT * FROM newsletter_subscribers WHERE email = ?`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrSubscriberNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select subscriber")
	}

	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "parse subscriber id")
	}
	return &model.Subscriber{
		ID:           id,
		Email:        row.Email,
		Name:         row.Name,
		IsActive:     row.IsActive,
		SubscribedAt: row.SubscribedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

func toSubscriberRow(s *model.Subscriber) subscriberRow {
	return subscriberRow{
		ID:           s.ID.String(),
		Email:        s.Email,
		Name:         s.Name,
		IsActive:     s.IsActive,
		SubscribedAt: s.SubscribedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
