package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/model"
	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/service"
	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/infrastructure/auth"
)

type stubCatalogService struct {
	listProducts       func(filter model.ProductFilter) (*service.ProductPage, error)
	featuredProducts   func() ([]*model.Product, error)
	productsByCategory func(category model.Category, page, limit int) (*service.ProductPage, error)
	productByID        func(id uuid.UUID) (*model.Product, error)
}

func (s *stubCatalogService) ListProducts(filter model.ProductFilter) (*service.ProductPage, error) {
	return s.listProducts(filter)
}

func (s *stubCatalogService) FeaturedProducts() ([]*model.Product, error) {
	return s.featuredProducts()
}

func (s *stubCatalogService) ProductsByCategory(category model.Category, page, limit int) (*service.ProductPage, error) {
	return s.productsByCategory(category, page, limit)
}

func (s *stubCatalogService) ProductByID(id uuid.UUID) (*model.Product, error) {
	return s.productByID(id)
}

type stubOrderService struct {
	placeOrder            func(customer model.Customer, items []service.CartItem, address model.Address) (*model.Order, error)
	trackOrder            func(code string) (*model.Order, error)
	ordersByCustomerEmail func(email string) ([]*model.Order, error)
	ordersByUser          func(userID uuid.UUID) ([]*model.Order, error)
	applyPaymentResult    func(orderID uuid.UUID, result model.PaymentResult) (*model.Order, error)
}

func (s *stubOrderService) PlaceOrder(customer model.Customer, items []service.CartItem, address model.Address) (*model.Order, error) {
	return s.placeOrder(customer, items, address)
}

func (s *stubOrderService) TrackOrder(code string) (*model.Order, error) {
	return s.trackOrder(code)
}

func (s *stubOrderService) OrdersByCustomerEmail(email string) ([]*model.Order, error) {
	return s.ordersByCustomerEmail(email)
}

func (s *stubOrderService) OrdersByUser(userID uuid.UUID) ([]*model.Order, error) {
	return s.ordersByUser(userID)
}

func (s *stubOrderService) ApplyPaymentResult(orderID uuid.UUID, result model.PaymentResult) (*model.Order, error) {
	return s.applyPaymentResult(orderID, result)
}

type stubPaymentService struct {
	configured          bool
	createProviderOrder func(ctx context.Context, amountCents int64, currency, receipt string) (*service.ProviderOrder, error)
	verifyPayment       func(providerOrderID, providerPaymentID, signature string, orderID uuid.UUID) error
	completeDemoPayment func(orderID uuid.UUID) (string, error)
}

func (s *stubPaymentService) ProviderConfigured() bool {
	return s.configured
}

func (s *stubPaymentService) CreateProviderOrder(ctx context.Context, amountCents int64, currency, receipt string) (*service.ProviderOrder, error) {
	return s.createProviderOrder(ctx, amountCents, currency, receipt)
}

func (s *stubPaymentService) VerifyPayment(providerOrderID, providerPaymentID, signature string, orderID uuid.UUID) error {
	return s.verifyPayment(providerOrderID, providerPaymentID, signature, orderID)
}

func (s *stubPaymentService) CompleteDemoPayment(orderID uuid.UUID) (string, error) {
	return s.completeDemoPayment(orderID)
}

type stubNewsletterService struct {
	subscribe   func(email, name string) (*model.Subscriber, error)
	unsubscribe func(email string) error
}

func (s *stubNewsletterService) Subscribe(email, name string) (*model.Subscriber, error) {
	return s.subscribe(email, name)
}

func (s *stubNewsletterService) Unsubscribe(email string) error {
	return s.unsubscribe(email)
}

type stubUserService struct {
	register     func(name, email, phone, password string) (*model.User, error)
	authenticate func(email, password string) (*model.User, error)
	userByID     func(id uuid.UUID) (*model.User, error)
}

func (s *stubUserService) Register(name, email, phone, password string) (*model.User, error) {
	return s.register(name, email, phone, password)
}

func (s *stubUserService) Authenticate(email, password string) (*model.User, error) {
	return s.authenticate(email, password)
}

func (s *stubUserService) UserByID(id uuid.UUID) (*model.User, error) {
	return s.userByID(id)
}

type handlerEnv struct {
	catalog    *stubCatalogService
	orders     *stubOrderService
	payments   *stubPaymentService
	newsletter *stubNewsletterService
	users      *stubUserService
	tokens     *auth.TokenManager
	router     http.Handler
}

func setupHandlerTest() *handlerEnv {
	env := &handlerEnv{
		catalog:    &stubCatalogService{},
		orders:     &stubOrderService{},
		payments:   &stubPaymentService{},
		newsletter: &stubNewsletterService{},
		users:      &stubUserService{},
		tokens:     auth.NewTokenManager("handler-test-secret", time.Hour),
	}
	env.router = NewHandler(env.catalog, env.orders, env.payments, env.newsletter, env.users, env.tokens).Router()
	return env
}

func (env *handlerEnv) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func sampleOrder() *model.Order {
	productID := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	return &model.Order{
		ID:           uuid.MustParse("f47ac10b-58cc-4372-a567-0e02b2c3d479"),
		TrackingCode: "AB12CD34EF",
		Customer:     model.Customer{Name: "Nina Joshi", Email: "nina@example.com"},
		Items: []model.LineItem{
			{ProductID: productID, Name: "Silk Scarf", PriceCents: 1000, Quantity: 2},
		},
		TotalCents:    2000,
		ShippingCents: 500,
		FinalCents:    2500,
		Payment:       model.Payment{Status: model.PaymentPending, Method: model.MethodCashOnDelivery},
		Status:        model.OrderPending,
		CreatedAt:     time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreateGuestOrder_Success(t *testing.T) {
	env := setupHandlerTest()
	order := sampleOrder()

	var gotCustomer model.Customer
	var gotItems []service.CartItem
	env.orders.placeOrder = func(customer model.Customer, items []service.CartItem, _ model.Address) (*model.Order, error) {
		gotCustomer = customer
		gotItems = items
		return order, nil
	}

	rec := env.do(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"customer": map[string]string{"name": "Nina Joshi", "email": "nina@example.com", "phone": "555-0101"},
		"items": []map[string]interface{}{
			{"product": "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "quantity": 2},
		},
		"shippingAddress": map[string]string{"city": "Pune", "country": "IN"},
	}, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	payload := decodeResponse(t, rec)
	assert.Equal(t, true, payload["success"])

	got := payload["order"].(map[string]interface{})
	assert.Equal(t, "AB12CD34EF", got["orderId"])
	assert.Equal(t, 20.0, got["totalAmount"])
	assert.Equal(t, 5.0, got["shippingAmount"])
	assert.Equal(t, 25.0, got["finalAmount"])

	assert.Equal(t, "nina@example.com", gotCustomer.Email)
	require.Len(t, gotItems, 1)
	assert.Equal(t, 2, gotItems[0].Quantity)
}

func TestCreateGuestOrder_CollectsFieldErrors(t *testing.T) {
	env := setupHandlerTest()

	rec := env.do(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"customer": map[string]string{"name": "", "email": "not-an-email"},
		"items":    []map[string]interface{}{},
	}, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	payload := decodeResponse(t, rec)
	assert.Equal(t, false, payload["success"])
	assert.Len(t, payload["errors"], 3)
}

func TestCreateGuestOrder_RejectsBadQuantity(t *testing.T) {
	env := setupHandlerTest()

	rec := env.do(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"customer": map[string]string{"name": "Nina Joshi", "email": "nina@example.com"},
		"items": []map[string]interface{}{
			{"product": "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "quantity": 0},
		},
	}, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	payload := decodeResponse(t, rec)
	assert.Len(t, payload["errors"], 1)
}

func TestCreateGuestOrder_UnknownProduct(t *testing.T) {
	env := setupHandlerTest()
	env.orders.placeOrder = func(model.Customer, []service.CartItem, model.Address) (*model.Order, error) {
		return nil, model.ErrProductNotFound
	}

	rec := env.do(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"customer": map[string]string{"name": "Nina Joshi", "email": "nina@example.com"},
		"items": []map[string]interface{}{
			{"product": "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "quantity": 1},
		},
	}, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	payload := decodeResponse(t, rec)
	assert.Equal(t, "Product not found", payload["error"])
}

func TestTrackOrder(t *testing.T) {
	env := setupHandlerTest()
	order := sampleOrder()
	env.orders.trackOrder = func(code string) (*model.Order, error) {
		if code == order.TrackingCode {
			return order, nil
		}
		return nil, model.ErrOrderNotFound
	}

	rec := env.do(t, http.MethodGet, "/api/orders/track/AB12CD34EF", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeResponse(t, rec)
	assert.Equal(t, true, payload["success"])

	rec = env.do(t, http.MethodGet, "/api/orders/track/ZZZZZZZZZZ", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	payload = decodeResponse(t, rec)
	assert.Equal(t, "Order not found. Please check your order ID.", payload["error"])
}

func TestCreateProviderOrder_RejectsNonPositiveAmount(t *testing.T) {
	env := setupHandlerTest()

	rec := env.do(t, http.MethodPost, "/api/payments/create-order", map[string]interface{}{
		"amount": 0,
	}, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	payload := decodeResponse(t, rec)
	assert.Equal(t, "Valid amount is required", payload["error"])
}

func TestCreateProviderOrder_DefaultsCurrencyAndReceipt(t *testing.T) {
	env := setupHandlerTest()

	var gotAmount int64
	var gotCurrency, gotReceipt string
	env.payments.createProviderOrder = func(_ context.Context, amountCents int64, currency, receipt string) (*service.ProviderOrder, error) {
		gotAmount = amountCents
		gotCurrency = currency
		gotReceipt = receipt
		return &service.ProviderOrder{ID: "order_rzp_1", AmountCents: amountCents, Currency: currency}, nil
	}

	rec := env.do(t, http.MethodPost, "/api/payments/create-order", map[string]interface{}{
		"amount": 30.50,
	}, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeResponse(t, rec)
	got := payload["order"].(map[string]interface{})
	assert.Equal(t, "order_rzp_1", got["id"])
	assert.Equal(t, 30.5, got["amount"])

	assert.Equal(t, int64(3050), gotAmount)
	assert.Equal(t, "INR", gotCurrency)
	assert.NotEmpty(t, gotReceipt)
}

func TestCreateProviderOrder_ProviderUnavailable(t *testing.T) {
	env := setupHandlerTest()
	env.payments.createProviderOrder = func(context.Context, int64, string, string) (*service.ProviderOrder, error) {
		return nil, service.ErrProviderUnavailable
	}

	rec := env.do(t, http.MethodPost, "/api/payments/create-order", map[string]interface{}{
		"amount": 10,
	}, nil)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	payload := decodeResponse(t, rec)
	assert.Contains(t, payload["error"], "cash on delivery")
}

func TestVerifyPayment(t *testing.T) {
	env := setupHandlerTest()
	orderID := uuid.MustParse("f47ac10b-58cc-4372-a567-0e02b2c3d479")

	env.payments.verifyPayment = func(providerOrderID, providerPaymentID, signature string, gotOrderID uuid.UUID) error {
		if signature != "good" {
			return service.ErrSignatureMismatch
		}
		if gotOrderID != orderID {
			t.Errorf("unexpected order id %s", gotOrderID)
		}
		return nil
	}

	body := map[string]string{
		"providerOrderId":   "order_rzp_1",
		"providerPaymentId": "pay_1",
		"providerSignature": "good",
		"orderId":           orderID.String(),
	}
	rec := env.do(t, http.MethodPost, "/api/payments/verify-payment", body, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeResponse(t, rec)
	assert.Equal(t, true, payload["success"])

	body["providerSignature"] = "forged"
	rec = env.do(t, http.MethodPost, "/api/payments/verify-payment", body, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	payload = decodeResponse(t, rec)
	assert.Equal(t, "Payment verification failed", payload["error"])
}

func TestVerifyPayment_ProviderUnavailable(t *testing.T) {
	env := setupHandlerTest()
	env.payments.verifyPayment = func(string, string, string, uuid.UUID) error {
		return service.ErrProviderUnavailable
	}

	rec := env.do(t, http.MethodPost, "/api/payments/verify-payment", map[string]string{
		"providerOrderId":   "order_rzp_1",
		"providerPaymentId": "pay_1",
		"providerSignature": "sig",
		"orderId":           uuid.New().String(),
	}, nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestVerifyPayment_RejectsMalformedOrderID(t *testing.T) {
	env := setupHandlerTest()

	rec := env.do(t, http.MethodPost, "/api/payments/verify-payment", map[string]string{
		"providerOrderId":   "order_rzp_1",
		"providerPaymentId": "pay_1",
		"providerSignature": "sig",
		"orderId":           "not-a-uuid",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDemoPayment(t *testing.T) {
	env := setupHandlerTest()
	orderID := uuid.MustParse("f47ac10b-58cc-4372-a567-0e02b2c3d479")
	env.payments.completeDemoPayment = func(gotID uuid.UUID) (string, error) {
		if gotID != orderID {
			return "", model.ErrOrderNotFound
		}
		return "DEMO_1700000000000", nil
	}

	rec := env.do(t, http.MethodPost, "/api/payments/demo-payment", map[string]string{
		"orderId": orderID.String(),
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeResponse(t, rec)
	assert.Equal(t, "DEMO_1700000000000", payload["transactionId"])

	rec = env.do(t, http.MethodPost, "/api/payments/demo-payment", map[string]string{
		"orderId": uuid.New().String(),
	}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPaymentStatus(t *testing.T) {
	env := setupHandlerTest()
	order := sampleOrder()
	order.Payment = model.Payment{Status: model.PaymentCompleted, Method: model.MethodDemo, TransactionID: "DEMO_1"}
	env.orders.trackOrder = func(string) (*model.Order, error) {
		return order, nil
	}

	rec := env.do(t, http.MethodGet, "/api/payments/status/AB12CD34EF", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeResponse(t, rec)
	payment := payload["payment"].(map[string]interface{})
	assert.Equal(t, "completed", payment["status"])
	assert.Equal(t, "demo", payment["method"])
	assert.Equal(t, "DEMO_1", payment["transactionId"])
}

func TestListProducts(t *testing.T) {
	env := setupHandlerTest()

	var gotFilter model.ProductFilter
	env.catalog.listProducts = func(filter model.ProductFilter) (*service.ProductPage, error) {
		gotFilter = filter
		return &service.ProductPage{
			Products: []*model.Product{
				{ID: uuid.New(), Name: "Silk Scarf", PriceCents: 1000, Category: model.CategoryFashion},
			},
			Total:      1,
			Page:       filter.Page,
			TotalPages: 1,
		}, nil
	}

	rec := env.do(t, http.MethodGet, "/api/products?category=Fashion&page=2&limit=6", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeResponse(t, rec)
	assert.Equal(t, float64(1), payload["total"])
	assert.Equal(t, float64(2), payload["currentPage"])

	require.NotNil(t, gotFilter.Category)
	assert.Equal(t, model.CategoryFashion, *gotFilter.Category)
	assert.Equal(t, 2, gotFilter.Page)
	assert.Equal(t, 6, gotFilter.Limit)
}

func TestListProducts_RejectsBadQuery(t *testing.T) {
	env := setupHandlerTest()

	rec := env.do(t, http.MethodGet, "/api/products?category=gadgets", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/products?page=0", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductByID_NotFound(t *testing.T) {
	env := setupHandlerTest()
	env.catalog.productByID = func(uuid.UUID) (*model.Product, error) {
		return nil, model.ErrProductNotFound
	}

	rec := env.do(t, http.MethodGet, "/api/products/"+uuid.New().String(), nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/products/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubscribeNewsletter(t *testing.T) {
	env := setupHandlerTest()
	env.newsletter.subscribe = func(email, name string) (*model.Subscriber, error) {
		return &model.Subscriber{Email: "nina@example.com", Name: name}, nil
	}

	rec := env.do(t, http.MethodPost, "/api/newsletter/subscribe", map[string]string{
		"email": "Nina@Example.com",
		"name":  "Nina",
	}, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	payload := decodeResponse(t, rec)
	assert.Equal(t, "nina@example.com", payload["email"])
}

func TestSubscribeNewsletter_InvalidEmail(t *testing.T) {
	env := setupHandlerTest()
	env.newsletter.subscribe = func(string, string) (*model.Subscriber, error) {
		return nil, service.ErrInvalidEmail
	}

	rec := env.do(t, http.MethodPost, "/api/newsletter/subscribe", map[string]string{
		"email": "nope",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_IssuesToken(t *testing.T) {
	env := setupHandlerTest()
	userID := uuid.New()
	env.users.register = func(name, email, phone, password string) (*model.User, error) {
		return &model.User{ID: userID, Name: name, Email: email}, nil
	}

	rec := env.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Nina Joshi",
		"email":    "nina@example.com",
		"password": "correct horse",
	}, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	payload := decodeResponse(t, rec)
	token, ok := payload["token"].(string)
	require.True(t, ok)

	verified, err := env.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, verified)
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	env := setupHandlerTest()
	env.users.authenticate = func(string, string) (*model.User, error) {
		return nil, service.ErrInvalidCredentials
	}

	rec := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "nina@example.com",
		"password": "wrong",
	}, nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	payload := decodeResponse(t, rec)
	assert.Equal(t, "Invalid email or password", payload["error"])
}

func TestMyOrders_RequiresBearerToken(t *testing.T) {
	env := setupHandlerTest()
	user := &model.User{ID: uuid.New(), Name: "Nina Joshi", Email: "nina@example.com"}
	env.users.userByID = func(id uuid.UUID) (*model.User, error) {
		if id == user.ID {
			return user, nil
		}
		return nil, model.ErrUserNotFound
	}
	env.orders.ordersByUser = func(userID uuid.UUID) ([]*model.Order, error) {
		assert.Equal(t, user.ID, userID)
		return []*model.Order{sampleOrder()}, nil
	}

	rec := env.do(t, http.MethodGet, "/api/orders/user/my-orders", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/orders/user/my-orders", nil, map[string]string{
		"Authorization": "Bearer garbage",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := env.tokens.Issue(user.ID)
	require.NoError(t, err)
	rec = env.do(t, http.MethodGet, "/api/orders/user/my-orders", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeResponse(t, rec)
	assert.Len(t, payload["orders"], 1)
}

func TestHealthEndpoint(t *testing.T) {
	env := setupHandlerTest()

	rec := env.do(t, http.MethodGet, "/api/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeResponse(t, rec)
	assert.Equal(t, "OK", payload["status"])
}
