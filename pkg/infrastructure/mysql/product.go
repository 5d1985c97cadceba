package mysql

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/model"
)

func NewProductRepository(db *sqlx.DB) model.ProductRepository {
	return &productRepository{db: db}
}

type productRepository struct {
	db *sqlx.DB
}

type productRow struct {
	ID                 string         `db:"id"`
	Name               string         `db:"name"`
	Description        string         `db:"description"`
	PriceCents         int64          `db:"price_cents"`
	OriginalPriceCents sql.NullInt64  `db:"original_price_cents"`
	Category           string         `db:"category"`
	Subcategory        string         `db:"subcategory"`
	Image              string         `db:"image"`
	Images             sql.NullString `db:"images"`
	Stock              int            `db:"stock"`
	Featured           bool           `db:"featured"`
	Badge              string         `db:"badge"`
	IsActive           bool           `db:"is_active"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

func (r *productRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *productRepository) Create(product *model.Product) error {
	row, err := toProductRow(product)
	if err != nil {
		return err
	}
	_, err = r.db.NamedExec(`
		INSERT INTO products (id, name, description, price_cents, original_price_cents,
			category, subcategory, image, images, stock, featured, badge, is_active,
			created_at, updated_at)
		VALUES (:id, :name, :description, :price_cents, :original_price_cents,
			:category, :subcategory, :image, :images, :stock, :featured, :badge, :is_active,
			:created_at, :updated_at)`, row)
	return errors.Wrap(err, "insert product")
}

func (r *productRepository) Update(product *model.Product) error {
	row, err := toProductRow(product)
	if err != nil {
		return err
	}
	res, err := r.db.NamedExec(`
		UPDATE products SET name = :name, description = :description,
			price_cents = :price_cents, original_price_cents = :original_price_cents,
			category = :category, subcategory = :subcategory, image = :image,
			images = :images, stock = :stock, featured = :featured, badge = :badge,
			is_active = :is_active, updated_at = :updated_at
		WHERE id = :id`, row)
	if err != nil {
		return errors.Wrap(err, "update product")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update product")
	}
	if affected == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) Find(id uuid.UUID) (*model.Product, error) {
	var row productRow
	err := r.db.Get(&row, `SELECT * FROM products WHERE id = ?`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select product")
	}
	return fromProductRow(&row)
}

func (r *productRepository) FindActive(filter model.ProductFilter) ([]*model.Product, error) {
	query, args := activeProductQuery(`SELECT * FROM products`, filter)
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset())

	var rows []productRow
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select active products")
	}

	products := make([]*model.Product, 0, len(rows))
	for i := range rows {
		product, err := fromProductRow(&rows[i])
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func (r *productRepository) CountActive(filter model.ProductFilter) (int, error) {
	query, args := activeProductQuery(`SELECT COUNT(*) FROM products`, filter)
	var total int
	if err := r.db.Get(&total, query, args...); err != nil {
		return 0, errors.Wrap(err, "count active products")
	}
	return total, nil
}

func activeProductQuery(selectClause string, filter model.ProductFilter) (string, []interface{}) {
	query := selectClause + ` WHERE is_active = 1`
	var args []interface{}
	if filter.Category != nil {
		query += ` AND category = ?`
		args = append(args, string(*filter.Category))
	}
	if filter.Featured != nil {
		query += ` AND featured = ?`
		args = append(args, *filter.Featured)
	}
	return query, args
}

func toProductRow(p *model.Product) (*productRow, error) {
	row := &productRow{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Category:    string(p.Category),
		Subcategory: p.Subcategory,
		Image:       p.Image,
		Stock:       p.StockQuantity,
		Featured:    p.Featured,
		Badge:       string(p.Badge),
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.OriginalPriceCents != nil {
		row.OriginalPriceCents = sql.NullInt64{Int64: *p.OriginalPriceCents, Valid: true}
	}
	if len(p.Images) > 0 {
		data, err := json.Marshal(p.Images)
		if err != nil {
			return nil, errors.Wrap(err, "marshal product images")
		}
		row.Images = sql.NullString{String: string(data), Valid: true}
	}
	return row, nil
}

func fromProductRow(row *productRow) (*model.Product, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "parse product id")
	}
	product := &model.Product{
		ID:            id,
		Name:          row.Name,
		Description:   row.Description,
		PriceCents:    row.PriceCents,
		Category:      model.Category(row.Category),
		Subcategory:   row.Subcategory,
		Image:         row.Image,
		StockQuantity: row.Stock,
		Featured:      row.Featured,
		Badge:         model.Badge(row.Badge),
		IsActive:      row.IsActive,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	if row.OriginalPriceCents.Valid {
		v := row.OriginalPriceCents.Int64
		product.OriginalPriceCents = &v
	}
	if row.Images.Valid {
		if err := json.Unmarshal([]byte(row.Images.String), &product.Images); err != nil {
			return nil, errors.Wrap(err, "unmarshal product images")
		}
	}
	return product, nil
}
