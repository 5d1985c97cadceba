package mysql

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/model"
)

func NewUserRepository(db *sqlx.DB) model.UserRepository {
	return &userRepository{db: db}
}

type userRepository struct {
	db *sqlx.DB
}

type userRow struct {
	ID             string    `db:"id"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	Name           string    `db:"name"`
	Phone          string    `db:"phone"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r *userRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *userRepository) Create(user *model.User) error {
	_, err := r.db.NamedExec(`
		INSERT INTO users (id, email, hashed_password, name, phone, created_at, updated_at)
		VALUES (:id, :email, :hashed_password, :name, :phone, :created_at, :updated_at)`,
		userRow{
			ID:             user.ID.String(),
			Email:          user.Email,
			HashedPassword: user.HashedPassword,
			Name:           user.Name,
			Phone:          user.Phone,
			CreatedAt:      user.CreatedAt,
			UpdatedAt:      user.UpdatedAt,
		})
	return errors.Wrap(err, "insert user")
}

func (r *userRepository) Find(id uuid.UUID) (*model.User, error) {
	return r.findOne(`SELECT * FROM users WHERE id = ?`, id.String())
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	return r.findOne(`SELECT * FROM users WHERE email = ?`, email)
}

func (r *userRepository) findOne(query string, arg interface{}) (*model.User, error) {
	var row userRow
	err := r.db.Get(&row, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select user")
	}

	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "parse user id")
	}
	return &model.User{
		ID:             id,
		Email:          row.Email,
		HashedPassword: row.HashedPassword,
		Name:           row.Name,
		Phone:          row.Phone,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}
