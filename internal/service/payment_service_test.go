package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/prostore-go/internal/config"
	"github.com/prostore-go/internal/constants"
	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/repository"

	"gorm.io/gorm"
)

func newPaymentService(db *gorm.DB, cfg *config.PaymentConfig) *PaymentService {
	orderRepo := repository.NewOrderRepository(db)
	return NewPaymentService(orderRepo, newSettlementService(db), cfg)
}

func newStripeTestServer(t *testing.T, retrieveStatus string, metadataOrderID string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/payment_intents", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		_ = r.ParseForm()
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":            "pi_test_1",
			"client_secret": "pi_test_1_secret_abc",
			"status":        "requires_payment_method",
			"amount":        2875,
			"currency":      "usd",
			"metadata":      map[string]string{"order_id": r.Form.Get("metadata[order_id]")},
		})
	})
	mux.HandleFunc("/v1/payment_intents/pi_test_1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":              "pi_test_1",
			"status":          retrieveStatus,
			"amount":          2875,
			"amount_received": 2875,
			"currency":        "usd",
			"receipt_email":   "payer@example.com",
			"metadata":        map[string]string{"order_id": metadataOrderID},
		})
	})
	return httptest.NewServer(mux)
}

func stripePaymentConfig(baseURL string) *config.PaymentConfig {
	return &config.PaymentConfig{
		Stripe: config.StripeConfig{
			Enabled:    true,
			SecretKey:  "sk_test_123",
			APIBaseURL: baseURL,
			Currency:   "USD",
		},
	}
}

func TestStripeIntentCreateAndReconcile(t *testing.T) {
	db := newTestDB(t, "stripe_reconcile")
	order, product := placeTestOrder(t, db, "stripe@example.com", constants.PaymentMethodStripe, 1, 5)

	server := newStripeTestServer(t, "succeeded", strconv.FormatUint(uint64(order.ID), 10))
	defer server.Close()

	svc := newPaymentService(db, stripePaymentConfig(server.URL))
	intent, err := svc.CreateStripeIntent(context.Background(), order.ID, order.UserID)
	if err != nil {
		t.Fatalf("create intent failed: %v", err)
	}
	if intent.IntentID != "pi_test_1" || intent.ClientSecret == "" {
		t.Fatalf("unexpected intent result: %+v", intent)
	}

	paid, err := svc.ReconcileStripePayment(context.Background(), order.ID, order.UserID, intent.IntentID)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if !paid.IsPaid {
		t.Fatal("expected paid order")
	}
	stored := paid.PaymentResult()
	if stored == nil || stored.ProviderRef != "pi_test_1" || stored.Status != constants.PaymentStatusSucceeded {
		t.Fatalf("unexpected payment result: %+v", stored)
	}
	if stored.PayerEmail != "payer@example.com" {
		t.Fatalf("payer email = %s", stored.PayerEmail)
	}

	reloaded, err := repository.NewProductRepository(db).GetByID(product.ID)
	if err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if reloaded.Stock != 4 {
		t.Fatalf("stock = %d, want 4", reloaded.Stock)
	}
}

func TestStripeReconcileRejectsOrderMismatch(t *testing.T) {
	db := newTestDB(t, "stripe_mismatch")
	order, _ := placeTestOrder(t, db, "mismatch@example.com", constants.PaymentMethodStripe, 1, 5)

	// 远端 intent 元数据指向其他订单
	server := newStripeTestServer(t, "succeeded", strconv.FormatUint(uint64(order.ID+100), 10))
	defer server.Close()

	svc := newPaymentService(db, stripePaymentConfig(server.URL))
	if _, err := svc.ReconcileStripePayment(context.Background(), order.ID, order.UserID, "pi_test_1"); !errors.Is(err, ErrPaymentMismatch) {
		t.Fatalf("expected ErrPaymentMismatch, got: %v", err)
	}
}

func TestStripeReconcileRejectsNonSucceededIntent(t *testing.T) {
	db := newTestDB(t, "stripe_pending")
	order, _ := placeTestOrder(t, db, "pending@example.com", constants.PaymentMethodStripe, 1, 5)

	server := newStripeTestServer(t, "processing", strconv.FormatUint(uint64(order.ID), 10))
	defer server.Close()

	svc := newPaymentService(db, stripePaymentConfig(server.URL))
	if _, err := svc.ReconcileStripePayment(context.Background(), order.ID, order.UserID, "pi_test_1"); !errors.Is(err, ErrPaymentNotCompleted) {
		t.Fatalf("expected ErrPaymentNotCompleted, got: %v", err)
	}
}

func newPayPalTestServer(t *testing.T, captureStatus string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "test-token"})
	})
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "PAYPAL-ORDER-1",
			"status": "CREATED",
			"links": []map[string]string{
				{"rel": "approve", "href": "https://paypal.example.com/approve"},
			},
		})
	})
	mux.HandleFunc("/v2/checkout/orders/PAYPAL-ORDER-1/capture", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "PAYPAL-ORDER-1",
			"status": captureStatus,
			"payer": map[string]interface{}{
				"email_address": "buyer@paypal.example.com",
			},
			"purchase_units": []map[string]interface{}{
				{
					"payments": map[string]interface{}{
						"captures": []map[string]interface{}{
							{
								"id":     "CAPTURE-1",
								"status": captureStatus,
								"amount": map[string]string{"value": "28.75", "currency_code": "USD"},
							},
						},
					},
				},
			},
		})
	})
	return httptest.NewServer(mux)
}

func paypalPaymentConfig(baseURL string) *config.PaymentConfig {
	return &config.PaymentConfig{
		PayPal: config.PayPalConfig{
			Enabled:      true,
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			APIBaseURL:   baseURL,
			Currency:     "USD",
		},
	}
}

func TestPayPalCreateAndApprove(t *testing.T) {
	db := newTestDB(t, "paypal_approve")
	order, _ := placeTestOrder(t, db, "paypal@example.com", constants.PaymentMethodPayPal, 1, 5)

	server := newPayPalTestServer(t, "COMPLETED")
	defer server.Close()

	svc := newPaymentService(db, paypalPaymentConfig(server.URL))
	created, err := svc.CreatePayPalOrder(context.Background(), order.ID, order.UserID)
	if err != nil {
		t.Fatalf("create paypal order failed: %v", err)
	}
	if created.RemoteOrderID != "PAYPAL-ORDER-1" {
		t.Fatalf("unexpected remote order id: %s", created.RemoteOrderID)
	}

	paid, err := svc.ApprovePayPalOrder(context.Background(), order.ID, order.UserID, created.RemoteOrderID)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if !paid.IsPaid {
		t.Fatal("expected paid order")
	}
	stored := paid.PaymentResult()
	if stored == nil || stored.ProviderRef != "PAYPAL-ORDER-1" || stored.PayerEmail != "buyer@paypal.example.com" {
		t.Fatalf("unexpected payment result: %+v", stored)
	}
	if stored.PricePaid != "28.75" {
		t.Fatalf("price paid = %s, want 28.75", stored.PricePaid)
	}
}

func TestPayPalApproveWithoutPendingResultRejected(t *testing.T) {
	db := newTestDB(t, "paypal_no_pending")
	order, _ := placeTestOrder(t, db, "nopending@example.com", constants.PaymentMethodPayPal, 1, 5)

	server := newPayPalTestServer(t, "COMPLETED")
	defer server.Close()

	svc := newPaymentService(db, paypalPaymentConfig(server.URL))
	if _, err := svc.ApprovePayPalOrder(context.Background(), order.ID, order.UserID, "PAYPAL-ORDER-1"); !errors.Is(err, ErrPaymentMismatch) {
		t.Fatalf("expected ErrPaymentMismatch, got: %v", err)
	}
}

func TestPayPalApproveNotCompleted(t *testing.T) {
	db := newTestDB(t, "paypal_pending_status")
	order, _ := placeTestOrder(t, db, "paypalpending@example.com", constants.PaymentMethodPayPal, 1, 5)

	server := newPayPalTestServer(t, "PENDING")
	defer server.Close()

	svc := newPaymentService(db, paypalPaymentConfig(server.URL))
	if _, err := svc.CreatePayPalOrder(context.Background(), order.ID, order.UserID); err != nil {
		t.Fatalf("create paypal order failed: %v", err)
	}
	if _, err := svc.ApprovePayPalOrder(context.Background(), order.ID, order.UserID, "PAYPAL-ORDER-1"); !errors.Is(err, ErrPaymentNotCompleted) {
		t.Fatalf("expected ErrPaymentNotCompleted, got: %v", err)
	}
}

func TestPaymentServiceRejectsWrongMethod(t *testing.T) {
	db := newTestDB(t, "payment_wrong_method")
	order, _ := placeTestOrder(t, db, "wrongmethod@example.com", constants.PaymentMethodCashOnDelivery, 1, 5)

	svc := newPaymentService(db, &config.PaymentConfig{
		PayPal: config.PayPalConfig{Enabled: true, ClientID: "x", ClientSecret: "y", APIBaseURL: "https://api-m.sandbox.paypal.com"},
	})
	if _, err := svc.CreatePayPalOrder(context.Background(), order.ID, order.UserID); !errors.Is(err, ErrPaymentMethodInvalid) {
		t.Fatalf("expected ErrPaymentMethodInvalid, got: %v", err)
	}
}

func TestUserAuthRegisterAndLogin(t *testing.T) {
	db := newTestDB(t, "auth_register_login")
	cfg := &config.Config{
		JWT: config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 6},
		},
	}
	cartSvc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	svc := NewUserAuthService(cfg, repository.NewUserRepository(db), cartSvc)

	user, token, _, err := svc.Register("Alice", "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if token == "" || user.ID == 0 {
		t.Fatalf("unexpected register result: %+v", user)
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse jwt failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != "alice@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, _, _, err := svc.Register("Alice", "alice@example.com", "password123"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got: %v", err)
	}
	if _, _, _, err := svc.Register("Bob", "bob@example.com", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got: %v", err)
	}

	if _, _, _, err := svc.Login("alice@example.com", "wrong-password", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
	logged, token2, _, err := svc.Login("alice@example.com", "password123", "")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token2 == "" || logged.ID != user.ID {
		t.Fatalf("unexpected login result: %+v", logged)
	}
}

func TestUserAuthUpdatePreferences(t *testing.T) {
	db := newTestDB(t, "auth_preferences")
	cfg := &config.Config{JWT: config.JWTConfig{SecretKey: "test-secret"}}
	svc := NewUserAuthService(cfg, repository.NewUserRepository(db), nil)
	user := createTestUser(t, db, "prefs@example.com", false, "")

	if _, err := svc.UpdateShippingAddress(user.ID, fmtShippingAddress()); err != nil {
		t.Fatalf("update address failed: %v", err)
	}
	updated, err := svc.UpdatePaymentMethod(user.ID, constants.PaymentMethodStripe)
	if err != nil {
		t.Fatalf("update payment method failed: %v", err)
	}
	if updated.PaymentMethod != constants.PaymentMethodStripe {
		t.Fatalf("payment method = %s", updated.PaymentMethod)
	}
	if addr := updated.ShippingAddress(); addr == nil || !addr.IsComplete() {
		t.Fatalf("expected complete address, got: %+v", addr)
	}

	if _, err := svc.UpdatePaymentMethod(user.ID, "Bitcoin"); !errors.Is(err, ErrPaymentMethodInvalid) {
		t.Fatalf("expected ErrPaymentMethodInvalid, got: %v", err)
	}
}

func fmtShippingAddress() models.ShippingAddress {
	return models.ShippingAddress{
		FullName:      "Alice Example",
		StreetAddress: "742 Evergreen Terrace",
		City:          "Springfield",
		PostalCode:    "49000",
		Country:       "USA",
	}
}
