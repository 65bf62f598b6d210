package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/notesvault/notesvault-api/internal/config"
)

func TestComputeSignature(t *testing.T) {
	sig := ComputeSignature("order_123", "pay_456", "secret")
	if sig != ComputeSignature("order_123", "pay_456", "secret") {
		t.Fatal("signature is not deterministic")
	}
	if len(sig) != 64 {
		t.Errorf("signature length = %d, want 64 hex chars", len(sig))
	}
	if sig == ComputeSignature("order_123", "pay_456", "other-secret") {
		t.Error("different secrets produced the same signature")
	}
	// The canonical input is "orderId|paymentId"; shifting the boundary
	// must change the signature.
	if sig == ComputeSignature("order_123p", "ay_456", "secret") {
		t.Error("boundary shift produced the same signature")
	}
}

func TestVerifySignatureTamperRejected(t *testing.T) {
	setupTestDB(t)
	svc := GetGatewayService()

	orderID, paymentID := "order_abc123", "pay_def456"
	valid := ComputeSignature(orderID, paymentID, config.AppConfig.RazorpayKeySecret)

	ok, err := svc.VerifySignature(orderID, paymentID, valid)
	if err != nil {
		t.Fatalf("VerifySignature() error = %v", err)
	}
	if !ok {
		t.Fatal("genuine signature rejected")
	}

	// Any single-byte mutation of the signature must be rejected.
	for i := 0; i < len(valid); i++ {
		tampered := []byte(valid)
		if tampered[i] == 'f' {
			tampered[i] = '0'
		} else {
			tampered[i] = 'f'
		}
		if string(tampered) == valid {
			continue
		}
		ok, err := svc.VerifySignature(orderID, paymentID, string(tampered))
		if err != nil {
			t.Fatalf("VerifySignature() error = %v", err)
		}
		if ok {
			t.Fatalf("tampered signature accepted at byte %d", i)
		}
	}

	// Mutating the signed input must also invalidate the signature.
	ok, err = svc.VerifySignature(orderID+"x", paymentID, valid)
	if err != nil {
		t.Fatalf("VerifySignature() error = %v", err)
	}
	if ok {
		t.Error("signature accepted for a different order id")
	}
}

func TestGatewayCreateOrder(t *testing.T) {
	setupTestDB(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" {
			t.Errorf("gateway path = %q, want /orders", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "rzp_test_key" || pass != "test-gateway-secret" {
			t.Errorf("basic auth = %q/%q, want configured credentials", user, pass)
		}

		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["amount"].(float64) != 90000 {
			t.Errorf("gateway amount = %v, want 90000 paise", body["amount"])
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_test_1",
			"amount":   body["amount"],
			"currency": "INR",
			"receipt":  body["receipt"],
			"status":   "created",
		})
	}))
	defer server.Close()
	config.AppConfig.RazorpayBaseURL = server.URL

	order, err := GetGatewayService().CreateOrder(90000, "INR", "rcpt_test")
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if order.ID != "order_test_1" {
		t.Errorf("order id = %q, want order_test_1", order.ID)
	}
	if order.Amount != 90000 {
		t.Errorf("order amount = %d, want 90000", order.Amount)
	}
}
