package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prostore-go/internal/constants"
	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/repository"

	"gorm.io/gorm"
)

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		repository.NewUserRepository(db),
	)
}

func fillCart(t *testing.T, db *gorm.DB, userID uint, productID uint, qty int) *models.Cart {
	t.Helper()
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	cart, _, err := svc.AddItem(CartIdentity{UserID: userID}, productID, qty)
	if err != nil {
		t.Fatalf("fill cart failed: %v", err)
	}
	return cart
}

func TestPlaceOrderRequiresAuthentication(t *testing.T) {
	db := newTestDB(t, "place_order_auth")
	svc := newOrderService(db)

	if _, err := svc.PlaceOrder(0); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got: %v", err)
	}
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	db := newTestDB(t, "place_order_empty")
	svc := newOrderService(db)
	user := createTestUser(t, db, "empty@example.com", true, constants.PaymentMethodPayPal)

	result, err := svc.PlaceOrder(user.ID)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if result.Success {
		t.Fatal("expected rejection for empty cart")
	}
	if result.RedirectTo != constants.RedirectCart {
		t.Fatalf("redirect = %s, want %s", result.RedirectTo, constants.RedirectCart)
	}
}

func TestPlaceOrderRejectsMissingAddress(t *testing.T) {
	db := newTestDB(t, "place_order_no_addr")
	svc := newOrderService(db)
	user := createTestUser(t, db, "noaddr@example.com", false, constants.PaymentMethodPayPal)
	product := createTestProduct(t, db, "shirt", "20.00", 10)
	fillCart(t, db, user.ID, product.ID, 1)

	result, err := svc.PlaceOrder(user.ID)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if result.Success {
		t.Fatal("expected rejection for missing address")
	}
	if result.RedirectTo != constants.RedirectShippingAddress {
		t.Fatalf("redirect = %s, want %s", result.RedirectTo, constants.RedirectShippingAddress)
	}
}

func TestPlaceOrderRejectsMissingPaymentMethod(t *testing.T) {
	db := newTestDB(t, "place_order_no_pm")
	svc := newOrderService(db)
	user := createTestUser(t, db, "nopm@example.com", true, "")
	product := createTestProduct(t, db, "shoes", "80.00", 10)
	fillCart(t, db, user.ID, product.ID, 1)

	result, err := svc.PlaceOrder(user.ID)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if result.Success {
		t.Fatal("expected rejection for missing payment method")
	}
	if result.RedirectTo != constants.RedirectPaymentMethod {
		t.Fatalf("redirect = %s, want %s", result.RedirectTo, constants.RedirectPaymentMethod)
	}
}

func TestPlaceOrderCreatesOrderAndClearsCart(t *testing.T) {
	db := newTestDB(t, "place_order_success")
	svc := newOrderService(db)
	user := createTestUser(t, db, "buyer@example.com", true, constants.PaymentMethodPayPal)
	product := createTestProduct(t, db, "jacket", "50.00", 10)
	cart := fillCart(t, db, user.ID, product.ID, 2)

	result, err := svc.PlaceOrder(user.ID)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if !result.Success || result.Order == nil {
		t.Fatalf("expected success result, got: %+v", result)
	}

	wantRedirect := fmt.Sprintf(constants.RedirectOrderDetail, result.Order.ID)
	if result.RedirectTo != wantRedirect {
		t.Fatalf("redirect = %s, want %s", result.RedirectTo, wantRedirect)
	}

	order, err := repository.NewOrderRepository(db).GetByID(result.Order.ID)
	if err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if order == nil {
		t.Fatal("expected persisted order")
	}
	if order.OrderNo == "" {
		t.Fatal("expected generated order number")
	}
	if order.IsPaid {
		t.Fatal("new order must be unpaid")
	}
	if got := order.TotalPrice.String(); got != cart.TotalPrice.String() {
		t.Fatalf("total price = %s, want %s", got, cart.TotalPrice.String())
	}
	if len(order.Items) != 1 || order.Items[0].ProductID != product.ID || order.Items[0].Qty != 2 {
		t.Fatalf("unexpected order items: %+v", order.Items)
	}
	if got := order.Items[0].Price.String(); got != "50.00" {
		t.Fatalf("item price snapshot = %s, want 50.00", got)
	}

	address := order.ShippingAddress()
	if address == nil || address.City != "Springfield" {
		t.Fatalf("expected address snapshot, got: %+v", address)
	}

	// 下单不扣库存
	reloaded, err := repository.NewProductRepository(db).GetByID(product.ID)
	if err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if reloaded.Stock != 10 {
		t.Fatalf("stock = %d, want 10", reloaded.Stock)
	}

	clearedCart, err := repository.NewCartRepository(db).GetByUser(user.ID)
	if err != nil {
		t.Fatalf("load cart failed: %v", err)
	}
	if clearedCart == nil {
		t.Fatal("cart row must survive checkout")
	}
	if len(clearedCart.Items) != 0 {
		t.Fatalf("expected cleared cart, got items: %+v", clearedCart.Items)
	}
	if got := clearedCart.TotalPrice.String(); got != "0.00" {
		t.Fatalf("cleared cart total = %s, want 0.00", got)
	}
}

func TestGetOrderOwnership(t *testing.T) {
	db := newTestDB(t, "get_order_ownership")
	svc := newOrderService(db)
	owner := createTestUser(t, db, "owner@example.com", true, constants.PaymentMethodStripe)
	other := createTestUser(t, db, "other@example.com", true, constants.PaymentMethodStripe)
	product := createTestProduct(t, db, "bag", "35.00", 10)
	fillCart(t, db, owner.ID, product.ID, 1)

	result, err := svc.PlaceOrder(owner.ID)
	if err != nil || !result.Success {
		t.Fatalf("place order failed: %v %+v", err, result)
	}

	if _, err := svc.GetOrder(result.Order.ID, owner.ID, false); err != nil {
		t.Fatalf("owner access failed: %v", err)
	}
	if _, err := svc.GetOrder(result.Order.ID, other.ID, false); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for non-owner, got: %v", err)
	}
	if _, err := svc.GetOrder(result.Order.ID, other.ID, true); err != nil {
		t.Fatalf("admin access failed: %v", err)
	}
}
