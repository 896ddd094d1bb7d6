package pricing

import (
	"testing"

	"github.com/prostore-go/internal/models"
)

func lineItem(t *testing.T, price string, qty int) models.CartLineItem {
	t.Helper()
	money, err := models.NewMoneyFromString(price)
	if err != nil {
		t.Fatalf("parse price failed: %v", err)
	}
	return models.CartLineItem{
		ProductID: 1,
		Name:      "test product",
		Slug:      "test-product",
		Price:     money,
		Qty:       qty,
	}
}

func TestComputeBelowFreeShippingThreshold(t *testing.T) {
	breakdown := Compute([]models.CartLineItem{
		lineItem(t, "29.99", 2),
	})

	if got := breakdown.ItemsPrice.String(); got != "59.98" {
		t.Fatalf("items price = %s, want 59.98", got)
	}
	if got := breakdown.ShippingPrice.String(); got != "10.00" {
		t.Fatalf("shipping price = %s, want 10.00", got)
	}
	// 59.98 * 0.15 = 8.997 -> 9.00
	if got := breakdown.TaxPrice.String(); got != "9.00" {
		t.Fatalf("tax price = %s, want 9.00", got)
	}
	if got := breakdown.TotalPrice.String(); got != "78.98" {
		t.Fatalf("total price = %s, want 78.98", got)
	}
}

func TestComputeFreeShippingAtThreshold(t *testing.T) {
	breakdown := Compute([]models.CartLineItem{
		lineItem(t, "50.00", 2),
	})

	if got := breakdown.ItemsPrice.String(); got != "100.00" {
		t.Fatalf("items price = %s, want 100.00", got)
	}
	if got := breakdown.ShippingPrice.String(); got != "0.00" {
		t.Fatalf("shipping price = %s, want 0.00", got)
	}
	if got := breakdown.TaxPrice.String(); got != "15.00" {
		t.Fatalf("tax price = %s, want 15.00", got)
	}
	if got := breakdown.TotalPrice.String(); got != "115.00" {
		t.Fatalf("total price = %s, want 115.00", got)
	}
}

func TestComputeRoundsHalfUp(t *testing.T) {
	// 33.33 * 3 = 99.99, 税 14.9985 -> 15.00
	breakdown := Compute([]models.CartLineItem{
		lineItem(t, "33.33", 3),
	})

	if got := breakdown.ItemsPrice.String(); got != "99.99" {
		t.Fatalf("items price = %s, want 99.99", got)
	}
	if got := breakdown.ShippingPrice.String(); got != "10.00" {
		t.Fatalf("shipping price = %s, want 10.00", got)
	}
	if got := breakdown.TaxPrice.String(); got != "15.00" {
		t.Fatalf("tax price = %s, want 15.00", got)
	}
	if got := breakdown.TotalPrice.String(); got != "124.99" {
		t.Fatalf("total price = %s, want 124.99", got)
	}
}

func TestComputeEmptyCart(t *testing.T) {
	breakdown := Compute(nil)

	if got := breakdown.ItemsPrice.String(); got != "0.00" {
		t.Fatalf("items price = %s, want 0.00", got)
	}
	if got := breakdown.ShippingPrice.String(); got != "10.00" {
		t.Fatalf("shipping price = %s, want 10.00", got)
	}
	if got := breakdown.TaxPrice.String(); got != "0.00" {
		t.Fatalf("tax price = %s, want 0.00", got)
	}
	if got := breakdown.TotalPrice.String(); got != "10.00" {
		t.Fatalf("total price = %s, want 10.00", got)
	}
}
