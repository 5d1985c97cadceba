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

func NewOrderRepository(db *sqlx.DB) model.OrderRepository {
	return &orderRepository{db: db}
}

type orderRepository struct {
	db *sqlx.DB
}

type orderRow struct {
	ID              string         `db:"id"`
	TrackingCode    string         `db:"tracking_code"`
	CustomerName    string         `db:"customer_name"`
	CustomerEmail   string         `db:"customer_email"`
	CustomerPhone   string         `db:"customer_phone"`
	UserID          sql.NullString `db:"user_id"`
	TotalCents      int64          `db:"total_cents"`
	ShippingCents   int64          `db:"shipping_cents"`
	FinalCents      int64          `db:"final_cents"`
	PaymentStatus   string         `db:"payment_status"`
	PaymentMethod   string         `db:"payment_method"`
	TransactionID   string         `db:"transaction_id"`
	Status          string         `db:"status"`
	ShippingAddress string         `db:"shipping_address"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

type orderItemRow struct {
	OrderID    string `db:"order_id"`
	Position   int    `db:"position"`
	ProductID  string `db:"product_id"`
	Name       string `db:"name"`
	PriceCents int64  `db:"price_cents"`
	Image      string `db:"image"`
	Quantity   int    `db:"quantity"`
}

func (r *orderRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

// Create writes the order header and its items in one transaction so the
// order is never observable half-written.
func (r *orderRepository) Create(order *model.Order) error {
	row, err := toOrderRow(order)
	if err != nil {
		return err
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "begin order transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.NamedExec(`
		INSERT INTO orders (id, tracking_code, customer_name, customer_email, customer_phone,
			user_id, total_cents, shipping_cents, final_cents, payment_status, payment_method,
			transaction_id, status, shipping_address, created_at, updated_at)
		VALUES (:id, :tracking_code, :customer_name, :customer_email, :customer_phone,
			:user_id, :total_cents, :shipping_cents, :final_cents, :payment_status, :payment_method,
			:transaction_id, :status, :shipping_address, :created_at, :updated_at)`, row); err != nil {
		return errors.Wrap(err, "insert order")
	}

	for i, item := range order.Items {
		if _, err := tx.NamedExec(`
			INSERT INTO order_items (order_id, position, product_id, name, price_cents, image, quantity)
			VALUES (:order_id, :position, :product_id, :name, :price_cents, :image, :quantity)`,
			orderItemRow{
				OrderID:    order.ID.String(),
				Position:   i,
				ProductID:  item.ProductID.String(),
				Name:       item.Name,
				PriceCents: item.PriceCents,
				Image:      item.Image,
				Quantity:   item.Quantity,
			}); err != nil {
			return errors.Wrap(err, "insert order item")
		}
	}

	return errors.Wrap(tx.Commit(), "commit order")
}

func (r *orderRepository) Find(id uuid.UUID) (*model.Order, error) {
	return r.findOne(`SELECT * FROM orders WHERE id = ?`, id.String())
}

func (r *orderRepository) FindByTrackingCode(code string) (*model.Order, error) {
	return r.findOne(`SELECT * FROM orders WHERE tracking_code = ?`, code)
}

func (r *orderRepository) FindByCustomerEmail(email string) ([]*model.Order, error) {
	return r.findMany(`SELECT * FROM orders WHERE customer_email = ? ORDER BY created_at DESC`, email)
}

func (r *orderRepository) FindByUser(userID uuid.UUID) ([]*model.Order, error) {
	return r.findMany(`SELECT * FROM orders WHERE user_id = ? ORDER BY created_at DESC`, userID.String())
}

// Update applies the payment transition as a single UPDATE; line items and
// totals are immutable after creation.
func (r *orderRepository) Update(order *model.Order) error {
	res, err := r.db.Exec(`
		UPDATE orders SET payment_status = ?, payment_method = ?, transaction_id = ?,
			status = ?, updated_at = ?
		WHERE id = ?`,
		string(order.Payment.Status), string(order.Payment.Method), order.Payment.TransactionID,
		string(order.Status), order.UpdatedAt, order.ID.String())
	if err != nil {
		return errors.Wrap(err, "update order")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update order")
	}
	if affected == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) findOne(query string, arg interface{}) (*model.Order, error) {
	var row orderRow
	err := r.db.Get(&row, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select order")
	}

	order, err := fromOrderRow(&row)
	if err != nil {
		return nil, err
	}
	items, err := r.loadItems([]string{row.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[row.ID]
	return order, nil
}

func (r *orderRepository) findMany(query string, arg interface{}) ([]*model.Order, error) {
	var rows []orderRow
	if err := r.db.Select(&rows, query, arg); err != nil {
		return nil, errors.Wrap(err, "select orders")
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	items, err := r.loadItems(ids)
	if err != nil {
		return nil, err
	}

	orders := make([]*model.Order, 0, len(rows))
	for i := range rows {
		order, err := fromOrderRow(&rows[i])
		if err != nil {
			return nil, err
		}
		order.Items = items[rows[i].ID]
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *orderRepository) loadItems(orderIDs []string) (map[string][]model.LineItem, error) {
	query, args, err := sqlx.In(`
		SELECT order_id, position, product_id, name, price_cents, image, quantity
		FROM order_items WHERE order_id IN (?) ORDER BY order_id, position`, orderIDs)
	if err != nil {
		return nil, errors.Wrap(err, "build order items query")
	}

	var rows []orderItemRow
	if err := r.db.Select(&rows, r.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "select order items")
	}

	items := make(map[string][]model.LineItem, len(orderIDs))
	for _, row := range rows {
		productID, err := uuid.Parse(row.ProductID)
		if err != nil {
			return nil, errors.Wrap(err, "parse order item product id")
		}
		items[row.OrderID] = append(items[row.OrderID], model.LineItem{
			ProductID:  productID,
			Name:       row.Name,
			PriceCents: row.PriceCents,
			Image:      row.Image,
			Quantity:   row.Quantity,
		})
	}
	return items, nil
}

func toOrderRow(order *model.Order) (*orderRow, error) {
	address, err := json.Marshal(addressDoc{
		Street:     order.ShippingAddress.Street,
		City:       order.ShippingAddress.City,
		State:      order.ShippingAddress.State,
		PostalCode: order.ShippingAddress.PostalCode,
		Country:    order.ShippingAddress.Country,
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal shipping address")
	}

	row := &orderRow{
		ID:              order.ID.String(),
		TrackingCode:    order.TrackingCode,
		CustomerName:    order.Customer.Name,
		CustomerEmail:   order.Customer.Email,
		CustomerPhone:   order.Customer.Phone,
		TotalCents:      order.TotalCents,
		ShippingCents:   order.ShippingCents,
		FinalCents:      order.FinalCents,
		PaymentStatus:   string(order.Payment.Status),
		PaymentMethod:   string(order.Payment.Method),
		TransactionID:   order.Payment.TransactionID,
		Status:          string(order.Status),
		ShippingAddress: string(address),
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
	if order.Customer.UserID != nil {
		row.UserID = sql.NullString{String: order.Customer.UserID.String(), Valid: true}
	}
	return row, nil
}

func fromOrderRow(row *orderRow) (*model.Order, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "parse order id")
	}

	var doc addressDoc
	if err := json.Unmarshal([]byte(row.ShippingAddress), &doc); err != nil {
		return nil, errors.Wrap(err, "unmarshal shipping address")
	}

	order := &model.Order{
		ID:            id,
		TrackingCode:  row.TrackingCode,
		Customer:      model.Customer{Name: row.CustomerName, Email: row.CustomerEmail, Phone: row.CustomerPhone},
		TotalCents:    row.TotalCents,
		ShippingCents: row.ShippingCents,
		FinalCents:    row.FinalCents,
		Payment: model.Payment{
			Status:        model.PaymentStatus(row.PaymentStatus),
			Method:        model.PaymentMethod(row.PaymentMethod),
			TransactionID: row.TransactionID,
		},
		Status: model.OrderStatus(row.Status),
		ShippingAddress: model.Address{
			Street:     doc.Street,
			City:       doc.City,
			State:      doc.State,
			PostalCode: doc.PostalCode,
			Country:    doc.Country,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.UserID.Valid {
		userID, err := uuid.Parse(row.UserID.String)
		if err != nil {
			return nil, errors.Wrap(err, "parse order user id")
		}
		order.Customer.UserID = &userID
	}
	return order, nil
}

type addressDoc struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}
