package transport

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/model"
	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/service"
)

const providerUnavailableMessage = "Payment service is currently unavailable. Please try cash on delivery."

type createPaymentOrderRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Receipt  string          `json:"receipt"`
}

func (h *Handler) createProviderOrder(w http.ResponseWriter, r *http.Request) {
	var req createPaymentOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	amountCents := amountToCents(req.Amount)
	if amountCents <= 0 {
		respondError(w, http.StatusBadRequest, "Valid amount is required")
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	receipt := req.Receipt
	if receipt == "" {
		receipt = fmt.Sprintf("receipt_%d", time.Now().UnixMilli())
	}

	order, err := h.payments.CreateProviderOrder(r.Context(), amountCents, currency, receipt)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"order": map[string]interface{}{
				"id":       order.ID,
				"amount":   renderAmount(order.AmountCents),
				"currency": order.Currency,
			},
		})
	case errors.Is(err, service.ErrProviderUnavailable):
		respondError(w, http.StatusServiceUnavailable, providerUnavailableMessage)
	case errors.Is(err, service.ErrInvalidAmount):
		respondError(w, http.StatusBadRequest, "Valid amount is required")
	default:
		respondInternal(w, err, "Failed to create payment order")
	}
}

type verifyPaymentRequest struct {
	ProviderOrderID   string `json:"providerOrderId"`
	ProviderPaymentID string `json:"providerPaymentId"`
	ProviderSignature string `json:"providerSignature"`
	OrderID           string `json:"orderId"`
}

func (h *Handler) verifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Valid order ID is required")
		return
	}

	err = h.payments.VerifyPayment(req.ProviderOrderID, req.ProviderPaymentID, req.ProviderSignature, orderID)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Payment verified successfully",
		})
	case errors.Is(err, service.ErrSignatureMismatch):
		respondError(w, http.StatusBadRequest, "Payment verification failed")
	case errors.Is(err, service.ErrProviderUnavailable):
		respondError(w, http.StatusServiceUnavailable, "Payment verification service unavailable")
	default:
		respondInternal(w, err, "Payment verification failed")
	}
}

type demoPaymentRequest struct {
	OrderID string `json:"orderId"`
}

func (h *Handler) demoPayment(w http.ResponseWriter, r *http.Request) {
	var req demoPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Valid order ID is required")
		return
	}

	txnID, err := h.payments.CompleteDemoPayment(orderID)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success":       true,
			"message":       "Demo payment completed successfully!",
			"transactionId": txnID,
		})
	case errors.Is(err, model.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "Order not found")
	default:
		respondInternal(w, err, "Demo payment failed")
	}
}

func (h *Handler) paymentStatus(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.TrackOrder(mux.Vars(r)["orderId"])
	if errors.Is(err, model.ErrOrderNotFound) {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		respondInternal(w, err, "Failed to get payment status")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"payment": paymentResponse{
			Status:        string(order.Payment.Status),
			Method:        string(order.Payment.Method),
			TransactionID: order.Payment.TransactionID,
		},
	})
}
