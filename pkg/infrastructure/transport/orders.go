package transport

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/model"
	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/service"
)

type createOrderRequest struct {
	Customer        customerPayload    `json:"customer"`
	Items           []orderItemPayload `json:"items"`
	ShippingAddress addressPayload     `json:"shippingAddress"`
}

type orderItemPayload struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// validateItems turns raw item payloads into cart items, collecting
// field-level errors express-validator style.
func validateItems(payloads []orderItemPayload, errs []fieldError) ([]service.CartItem, []fieldError) {
	if len(payloads) == 0 {
		return nil, append(errs, fieldError{Field: "items", Message: "At least one item is required"})
	}

	items := make([]service.CartItem, 0, len(payloads))
	for _, p := range payloads {
		productID, err := uuid.Parse(p.Product)
		if err != nil {
			errs = append(errs, fieldError{Field: "items.product", Message: "Valid product reference is required"})
			continue
		}
		if p.Quantity < 1 {
			errs = append(errs, fieldError{Field: "items.quantity", Message: "Quantity must be at least 1"})
			continue
		}
		items = append(items, service.CartItem{ProductID: productID, Quantity: p.Quantity})
	}
	return items, errs
}

func (h *Handler) createGuestOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var errs []fieldError
	if strings.TrimSpace(req.Customer.Name) == "" {
		errs = append(errs, fieldError{Field: "customer.name", Message: "Customer name is required"})
	}
	if !strings.Contains(req.Customer.Email, "@") {
		errs = append(errs, fieldError{Field: "customer.email", Message: "Valid email is required"})
	}
	items, errs := validateItems(req.Items, errs)
	if len(errs) > 0 {
		respondFieldErrors(w, errs)
		return
	}

	customer := model.Customer{
		Name:  req.Customer.Name,
		Email: req.Customer.Email,
		Phone: req.Customer.Phone,
	}
	h.placeOrder(w, customer, items, req.ShippingAddress)
}

func (h *Handler) createUserOrder(w http.ResponseWriter, r *http.Request, user *model.User) {
	var req createOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	items, errs := validateItems(req.Items, nil)
	if len(errs) > 0 {
		respondFieldErrors(w, errs)
		return
	}

	customer := model.Customer{
		Name:   user.Name,
		Email:  user.Email,
		Phone:  user.Phone,
		UserID: &user.ID,
	}
	h.placeOrder(w, customer, items, req.ShippingAddress)
}

func (h *Handler) placeOrder(w http.ResponseWriter, customer model.Customer, items []service.CartItem, address addressPayload) {
	order, err := h.orders.PlaceOrder(customer, items, address.toModel())
	switch {
	case err == nil:
		respondJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"message": "Order created successfully",
			"order":   toOrderResponse(order),
		})
	case errors.Is(err, model.ErrProductNotFound):
		respondError(w, http.StatusBadRequest, "Product not found")
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidCustomer):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondInternal(w, err, "Failed to create order")
	}
}

func (h *Handler) trackOrder(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["orderId"]

	order, err := h.orders.TrackOrder(code)
	if errors.Is(err, model.ErrOrderNotFound) {
		respondError(w, http.StatusNotFound, "Order not found. Please check your order ID.")
		return
	}
	if err != nil {
		respondInternal(w, err, "Failed to track order")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   toOrderResponse(order),
	})
}

func (h *Handler) ordersByCustomer(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	orders, err := h.orders.OrdersByCustomerEmail(email)
	if err != nil {
		respondInternal(w, err, "Failed to fetch orders")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  toOrderResponses(orders),
	})
}

func (h *Handler) myOrders(w http.ResponseWriter, _ *http.Request, user *model.User) {
	orders, err := h.orders.OrdersByUser(user.ID)
	if err != nil {
		respondInternal(w, err, "Failed to fetch your orders")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  toOrderResponses(orders),
	})
}
