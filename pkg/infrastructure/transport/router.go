package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/service"
	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/infrastructure/auth"
)

type Handler struct {
	catalog    service.CatalogService
	orders     service.OrderService
	payments   service.PaymentService
	newsletter service.NewsletterService
	users      service.UserService
	tokens     *auth.TokenManager
}

func NewHandler(
	catalog service.CatalogService,
	orders service.OrderService,
	payments service.PaymentService,
	newsletter service.NewsletterService,
	users service.UserService,
	tokens *auth.TokenManager,
) *Handler {
	return &Handler{
		catalog:    catalog,
		orders:     orders,
		payments:   payments,
		newsletter: newsletter,
		users:      users,
		tokens:     tokens,
	}
}

func (h *Handler) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(metricsMiddleware)
	r.Handle("/metrics", metricsHandler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", h.health).Methods(http.MethodGet)

	products := api.PathPrefix("/products").Subrouter()
	products.HandleFunc("", h.listProducts).Methods(http.MethodGet)
	products.HandleFunc("/featured", h.featuredProducts).Methods(http.MethodGet)
	products.HandleFunc("/category/{category}", h.productsByCategory).Methods(http.MethodGet)
	products.HandleFunc("/{id}", h.productByID).Methods(http.MethodGet)

	orders := api.PathPrefix("/orders").Subrouter()
	orders.HandleFunc("", h.createGuestOrder).Methods(http.MethodPost)
	orders.HandleFunc("/user", h.requireUser(h.createUserOrder)).Methods(http.MethodPost)
	orders.HandleFunc("/user/my-orders", h.requireUser(h.myOrders)).Methods(http.MethodGet)
	orders.HandleFunc("/track/{orderId}", h.trackOrder).Methods(http.MethodGet)
	orders.HandleFunc("/customer/{email}", h.ordersByCustomer).Methods(http.MethodGet)

	payments := api.PathPrefix("/payments").Subrouter()
	payments.HandleFunc("/create-order", h.createProviderOrder).Methods(http.MethodPost)
	payments.HandleFunc("/verify-payment", h.verifyPayment).Methods(http.MethodPost)
	payments.HandleFunc("/demo-payment", h.demoPayment).Methods(http.MethodPost)
	payments.HandleFunc("/status/{orderId}", h.paymentStatus).Methods(http.MethodGet)

	newsletter := api.PathPrefix("/newsletter").Subrouter()
	newsletter.HandleFunc("/subscribe", h.subscribeNewsletter).Methods(http.MethodPost)
	newsletter.HandleFunc("/unsubscribe", h.unsubscribeNewsletter).Methods(http.MethodPost)

	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/register", h.register).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", h.login).Methods(http.MethodPost)

	return logMiddleware(r)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "OK", "message": "storefront API is running"})
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		next.ServeHTTP(w, r)
	})
}
