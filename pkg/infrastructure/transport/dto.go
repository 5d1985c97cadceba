package transport

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/model"
)

// Amounts cross the wire as decimals (e.g. 30.50) and live in the domain as
// integer cents. shopspring/decimal keeps the conversion exact.

func renderAmount(cents int64) json.Number {
	return json.Number(decimal.New(cents, -2).StringFixed(2))
}

func amountToCents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

type customerPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type addressPayload struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

func (a addressPayload) toModel() model.Address {
	return model.Address(a)
}

type lineItemResponse struct {
	Product  string      `json:"product"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Image    string      `json:"image"`
	Quantity int         `json:"quantity"`
}

type paymentResponse struct {
	Status        string `json:"status"`
	Method        string `json:"method"`
	TransactionID string `json:"transactionId,omitempty"`
}

type orderResponse struct {
	ID              string             `json:"id"`
	OrderID         string             `json:"orderId"` // tracking code
	Customer        customerPayload    `json:"customer"`
	Items           []lineItemResponse `json:"items"`
	TotalAmount     json.Number        `json:"totalAmount"`
	ShippingAmount  json.Number        `json:"shippingAmount"`
	FinalAmount     json.Number        `json:"finalAmount"`
	Payment         paymentResponse    `json:"payment"`
	Status          string             `json:"status"`
	ShippingAddress addressPayload     `json:"shippingAddress"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

func toOrderResponse(order *model.Order) orderResponse {
	items := make([]lineItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, lineItemResponse{
			Product:  item.ProductID.String(),
			Name:     item.Name,
			Price:    renderAmount(item.PriceCents),
			Image:    item.Image,
			Quantity: item.Quantity,
		})
	}
	return orderResponse{
		ID:      order.ID.String(),
		OrderID: order.TrackingCode,
		Customer: customerPayload{
			Name:  order.Customer.Name,
			Email: order.Customer.Email,
			Phone: order.Customer.Phone,
		},
		Items:          items,
		TotalAmount:    renderAmount(order.TotalCents),
		ShippingAmount: renderAmount(order.ShippingCents),
		FinalAmount:    renderAmount(order.FinalCents),
		Payment: paymentResponse{
			Status:        string(order.Payment.Status),
			Method:        string(order.Payment.Method),
			TransactionID: order.Payment.TransactionID,
		},
		Status:          string(order.Status),
		ShippingAddress: addressPayload(order.ShippingAddress),
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func toOrderResponses(orders []*model.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}
	return out
}

type productResponse struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Price         json.Number  `json:"price"`
	OriginalPrice *json.Number `json:"originalPrice,omitempty"`
	Category      string       `json:"category"`
	Subcategory   string       `json:"subcategory,omitempty"`
	Image         string       `json:"image"`
	Images        []string     `json:"images,omitempty"`
	Stock         int          `json:"stock"`
	Featured      bool         `json:"featured"`
	Badge         string       `json:"badge"`
	CreatedAt     time.Time    `json:"createdAt"`
}

func toProductResponse(p *model.Product) productResponse {
	resp := productResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       renderAmount(p.PriceCents),
		Category:    string(p.Category),
		Subcategory: p.Subcategory,
		Image:       p.Image,
		Images:      p.Images,
		Stock:       p.StockQuantity,
		Featured:    p.Featured,
		Badge:       string(p.Badge),
		CreatedAt:   p.CreatedAt,
	}
	if p.OriginalPriceCents != nil {
		amount := renderAmount(*p.OriginalPriceCents)
		resp.OriginalPrice = &amount
	}
	return resp
}

func toProductResponses(products []*model.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}
