package service

import (
	"errors"
	"testing"

	"github.com/prostore-go/internal/repository"
)

func TestCartAddItemCreatesCartWithPricing(t *testing.T) {
	db := newTestDB(t, "cart_add_create")
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	product := createTestProduct(t, db, "polo-shirt", "29.99", 10)

	cart, message, err := svc.AddItem(CartIdentity{SessionCartID: "sess-1"}, product.ID, 2)
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if message != product.Name+" added to cart" {
		t.Fatalf("unexpected add message: %q", message)
	}
	if len(cart.Items) != 1 || cart.Items[0].Qty != 2 {
		t.Fatalf("unexpected cart items: %+v", cart.Items)
	}
	if got := cart.ItemsPrice.String(); got != "59.98" {
		t.Fatalf("items price = %s, want 59.98", got)
	}
	if got := cart.ShippingPrice.String(); got != "10.00" {
		t.Fatalf("shipping price = %s, want 10.00", got)
	}
	if got := cart.TaxPrice.String(); got != "9.00" {
		t.Fatalf("tax price = %s, want 9.00", got)
	}
	if got := cart.TotalPrice.String(); got != "78.98" {
		t.Fatalf("total price = %s, want 78.98", got)
	}
	if cart.Items[0].Name != product.Name || cart.Items[0].Slug != product.Slug {
		t.Fatalf("expected product snapshot on cart line: %+v", cart.Items[0])
	}
}

func TestCartAddItemAccumulatesQty(t *testing.T) {
	db := newTestDB(t, "cart_add_accumulate")
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	product := createTestProduct(t, db, "jeans", "45.00", 5)
	identity := CartIdentity{SessionCartID: "sess-2"}

	if _, _, err := svc.AddItem(identity, product.ID, 1); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	cart, message, err := svc.AddItem(identity, product.ID, 2)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Qty != 3 {
		t.Fatalf("expected single line with qty 3, got: %+v", cart.Items)
	}
	if message != product.Name+" updated in cart" {
		t.Fatalf("unexpected accumulate message: %q", message)
	}
}

func TestCartAddItemStockGate(t *testing.T) {
	db := newTestDB(t, "cart_add_stock")
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	product := createTestProduct(t, db, "scarce", "9.99", 2)
	identity := CartIdentity{SessionCartID: "sess-3"}

	if _, _, err := svc.AddItem(identity, product.ID, 2); err != nil {
		t.Fatalf("add within stock failed: %v", err)
	}
	if _, _, err := svc.AddItem(identity, product.ID, 1); !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("expected ErrStockInsufficient, got: %v", err)
	}
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	db := newTestDB(t, "cart_add_unknown")
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))

	if _, _, err := svc.AddItem(CartIdentity{SessionCartID: "sess-4"}, 999, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got: %v", err)
	}
}

func TestCartRemoveItemDecrementsAndDropsLine(t *testing.T) {
	db := newTestDB(t, "cart_remove")
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	product := createTestProduct(t, db, "hat", "15.00", 10)
	identity := CartIdentity{SessionCartID: "sess-5"}

	if _, _, err := svc.AddItem(identity, product.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	cart, _, err := svc.RemoveItem(identity, product.ID)
	if err != nil {
		t.Fatalf("first remove failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Qty != 1 {
		t.Fatalf("expected qty 1 after first remove, got: %+v", cart.Items)
	}

	// 最后一件移除后行项消失，价格重新计算为空车价格
	cart, message, err := svc.RemoveItem(identity, product.ID)
	if err != nil {
		t.Fatalf("second remove failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got: %+v", cart.Items)
	}
	if message != product.Name+" removed from cart" {
		t.Fatalf("unexpected remove message: %q", message)
	}
	if got := cart.ItemsPrice.String(); got != "0.00" {
		t.Fatalf("items price = %s, want 0.00", got)
	}

	if _, _, err := svc.RemoveItem(identity, product.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got: %v", err)
	}
}

func TestCartAttachUserClaimsSessionCart(t *testing.T) {
	db := newTestDB(t, "cart_attach")
	cartRepo := repository.NewCartRepository(db)
	svc := NewCartService(cartRepo, repository.NewProductRepository(db))
	product := createTestProduct(t, db, "socks", "5.00", 20)
	user := createTestUser(t, db, "attach@example.com", false, "")

	if _, _, err := svc.AddItem(CartIdentity{SessionCartID: "sess-6"}, product.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.AttachUser("sess-6", user.ID); err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	cart, err := cartRepo.GetByUser(user.ID)
	if err != nil {
		t.Fatalf("get user cart failed: %v", err)
	}
	if cart == nil || len(cart.Items) != 1 {
		t.Fatalf("expected claimed cart with one line, got: %+v", cart)
	}
}

func TestCartAttachUserKeepsExistingUserCart(t *testing.T) {
	db := newTestDB(t, "cart_attach_existing")
	cartRepo := repository.NewCartRepository(db)
	svc := NewCartService(cartRepo, repository.NewProductRepository(db))
	productA := createTestProduct(t, db, "belt", "12.00", 20)
	productB := createTestProduct(t, db, "gloves", "18.00", 20)
	user := createTestUser(t, db, "keep@example.com", false, "")

	if _, _, err := svc.AddItem(CartIdentity{UserID: user.ID}, productA.ID, 1); err != nil {
		t.Fatalf("user add failed: %v", err)
	}
	if _, _, err := svc.AddItem(CartIdentity{SessionCartID: "sess-7"}, productB.ID, 1); err != nil {
		t.Fatalf("session add failed: %v", err)
	}
	if err := svc.AttachUser("sess-7", user.ID); err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	cart, err := cartRepo.GetByUser(user.ID)
	if err != nil {
		t.Fatalf("get user cart failed: %v", err)
	}
	if cart == nil || len(cart.Items) != 1 || cart.Items[0].ProductID != productA.ID {
		t.Fatalf("expected original user cart untouched, got: %+v", cart)
	}
}
