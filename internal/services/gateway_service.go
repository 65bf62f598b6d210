package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/notesvault/notesvault-api/internal/config"
	"github.com/notesvault/notesvault-api/internal/models"
)

// GatewayService talks to the Razorpay order API and verifies the
// checkout callback signature.
type GatewayService struct {
	httpClient *http.Client
}

var gatewayServiceInstance *GatewayService

func GetGatewayService() *GatewayService {
	if gatewayServiceInstance == nil {
		gatewayServiceInstance = &GatewayService{
			httpClient: &http.Client{Timeout: 15 * time.Second},
		}
	}
	return gatewayServiceInstance
}

// GatewayOrder is the gateway's view of a checkout session.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // minor currency unit
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

func (s *GatewayService) credentials() (keyID, keySecret string, err error) {
	db := models.GetDB()
	keyID = models.GetConfigValue(db, "razorpay_key_id", config.AppConfig.RazorpayKeyID)
	keySecret = models.GetConfigValue(db, "razorpay_key_secret", config.AppConfig.RazorpayKeySecret)
	if keyID == "" || keySecret == "" {
		return "", "", errors.New("payment gateway credentials are not configured")
	}
	return keyID, keySecret, nil
}

// KeyID exposes the public key id for checkout clients.
func (s *GatewayService) KeyID() string {
	keyID, _, _ := s.credentials()
	return keyID
}

// CreateOrder opens a payment intent with the gateway. amountPaise is
// in the minor currency unit (rupees x 100).
func (s *GatewayService) CreateOrder(amountPaise int64, currency, receipt string) (*GatewayOrder, error) {
	keyID, keySecret, err := s.credentials()
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimSuffix(config.AppConfig.RazorpayBaseURL, "/")
	payload, err := json.Marshal(map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(keyID, keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway order creation failed: %s: %s", resp.Status, string(body))
	}

	var order GatewayOrder
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, err
	}
	if order.ID == "" {
		return nil, errors.New("gateway returned an order without an id")
	}
	return &order, nil
}

// ComputeSignature returns the hex HMAC-SHA256 of "orderID|paymentID"
// under the gateway key secret. This is the canonical input the gateway
// signs when checkout settles.
func ComputeSignature(orderID, paymentID, keySecret string) string {
	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(orderID))
	mac.Write([]byte("|"))
	mac.Write([]byte(paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature recomputes the expected callback signature and
// compares it byte-for-byte in constant time. A mismatch is terminal:
// the caller rejects without writing anything.
func (s *GatewayService) VerifySignature(orderID, paymentID, signature string) (bool, error) {
	_, keySecret, err := s.credentials()
	if err != nil {
		return false, err
	}
	expected := ComputeSignature(orderID, paymentID, keySecret)
	return hmac.Equal([]byte(expected), []byte(signature)), nil
}
