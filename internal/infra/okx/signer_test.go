package okx

import (
	"testing"
)

func TestPrehash(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		query  string
		body   string
		want   string
	}{
		{
			"get without query",
			"GET", "/api/v5/account/balance", "", "",
			"2020-12-08T09:08:57.715ZGET/api/v5/account/balance",
		},
		{
			"get with query",
			"GET", "/api/v5/account/balance", "ccy=BTC", "",
			"2020-12-08T09:08:57.715ZGET/api/v5/account/balance?ccy=BTC",
		},
		{
			"post with body",
			"POST", "/api/v5/trade/order", "", `{"instId":"BTC-USDT"}`,
			`2020-12-08T09:08:57.715ZPOST/api/v5/trade/order{"instId":"BTC-USDT"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prehash("2020-12-08T09:08:57.715Z", tt.method, tt.path, tt.query, tt.body)
			if got != tt.want {
				t.Errorf("prehash = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComputeHmacSha256(t *testing.T) {
	// Standard HMAC-SHA256 test vector
	// HMAC-SHA256("key", "The quick brown fox jumps over the lazy dog")
	// Base64: 97yD9DBThCSxMpjmqm+xQ+9NWaFJRhdZl0edvC0aPNg=
	expected := "97yD9DBThCSxMpjmqm+xQ+9NWaFJRhdZl0edvC0aPNg="
	result := computeHmacSha256("The quick brown fox jumps over the lazy dog", "key")

	if result != expected {
		t.Errorf("HMAC mismatch. Expected %s, got %s", expected, result)
	}
}

func TestSigner_SignedHeaders(t *testing.T) {
	signer := NewSigner("key", "secret", "pass", false)

	headers := signer.signedHeadersAt("2020-12-08T09:08:57.715Z", "POST", "/api/v5/trade/order", "", `{"instId":"BTC-USDT"}`)

	if headers["OK-ACCESS-KEY"] != "key" {
		t.Errorf("Expected OK-ACCESS-KEY 'key', got %s", headers["OK-ACCESS-KEY"])
	}
	if headers["OK-ACCESS-PASSPHRASE"] != "pass" {
		t.Errorf("Expected OK-ACCESS-PASSPHRASE 'pass', got %s", headers["OK-ACCESS-PASSPHRASE"])
	}
	if headers["OK-ACCESS-TIMESTAMP"] != "2020-12-08T09:08:57.715Z" {
		t.Errorf("Unexpected timestamp %s", headers["OK-ACCESS-TIMESTAMP"])
	}
	expectedSign := computeHmacSha256(
		`2020-12-08T09:08:57.715ZPOST/api/v5/trade/order{"instId":"BTC-USDT"}`, "secret")
	if headers["OK-ACCESS-SIGN"] != expectedSign {
		t.Errorf("Signature mismatch. Expected %s, got %s", expectedSign, headers["OK-ACCESS-SIGN"])
	}
	if _, ok := headers["x-simulated-trading"]; ok {
		t.Error("live signer must not set x-simulated-trading")
	}
}

func TestSigner_DemoMode(t *testing.T) {
	signer := NewSigner("key", "secret", "pass", true)

	headers := signer.SignedHeaders("GET", "/api/v5/account/balance", "", "")

	if headers["x-simulated-trading"] != "1" {
		t.Error("demo signer must set x-simulated-trading: 1")
	}
	if len(headers["OK-ACCESS-TIMESTAMP"]) != 24 { // ISO-8601 with milliseconds
		t.Errorf("Expected ISO timestamp len 24, got %q", headers["OK-ACCESS-TIMESTAMP"])
	}
}
