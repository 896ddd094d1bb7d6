package models

import "testing"

func TestShippingAddressToJSONRoundTrip(t *testing.T) {
	address := ShippingAddress{
		FullName:      "Alice Example",
		StreetAddress: "742 Evergreen Terrace",
		City:          "Springfield",
		PostalCode:    "49000",
		Country:       "USA",
	}

	raw, err := address.ToJSON()
	if err != nil {
		t.Fatalf("to json failed: %v", err)
	}
	if raw == nil {
		t.Fatalf("expected non-nil json snapshot")
	}

	restored := ShippingAddressFromJSON(raw)
	if restored == nil {
		t.Fatalf("expected restored address")
	}
	if *restored != address {
		t.Fatalf("round trip mismatch: %+v != %+v", *restored, address)
	}
}

func TestShippingAddressToJSONNilReceiver(t *testing.T) {
	var address *ShippingAddress
	raw, err := address.ToJSON()
	if err != nil {
		t.Fatalf("nil address should not error: %v", err)
	}
	if raw != nil {
		t.Fatalf("nil address should produce nil json, got %+v", raw)
	}
}

func TestPaymentResultToJSONRoundTrip(t *testing.T) {
	result := PaymentResult{
		ProviderRef: "pi_123",
		Status:      "succeeded",
		PayerEmail:  "payer@example.com",
		PricePaid:   "67.50",
	}

	raw, err := result.ToJSON()
	if err != nil {
		t.Fatalf("to json failed: %v", err)
	}
	if raw == nil {
		t.Fatalf("expected non-nil json snapshot")
	}

	restored := PaymentResultFromJSON(raw)
	if restored == nil {
		t.Fatalf("expected restored payment result")
	}
	if *restored != result {
		t.Fatalf("round trip mismatch: %+v != %+v", *restored, result)
	}
}

func TestPaymentResultToJSONNilReceiver(t *testing.T) {
	var result *PaymentResult
	raw, err := result.ToJSON()
	if err != nil {
		t.Fatalf("nil result should not error: %v", err)
	}
	if raw != nil {
		t.Fatalf("nil result should produce nil json, got %+v", raw)
	}
}
