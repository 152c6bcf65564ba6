package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"marsa/pkg/logger"
)

func testLog() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Service: "test"})
}

func TestSenderRateLimiter(t *testing.T) {
	rl := NewSenderRateLimiter(2, time.Minute, testLog())
	defer rl.Stop()

	if !rl.Allow("+96891234567") || !rl.Allow("+96891234567") {
		t.Fatal("expected first two events allowed")
	}
	if rl.Allow("+96891234567") {
		t.Error("expected third event blocked")
	}
	if !rl.Allow("+96897654321") {
		t.Error("expected other senders unaffected")
	}
	if !rl.Allow("") {
		t.Error("expected unattributable requests to pass")
	}
}

func TestWebhookSignature(t *testing.T) {
	const secret = "app-secret"
	body := `{"object":"whatsapp_business_account"}`

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	goodSig := "sha256=" + hex.EncodeToString(mac.Sum(nil))

	var sawBody string
	handler := WebhookSignature(secret, testLog())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := make([]byte, len(body))
		n, _ := r.Body.Read(b)
		sawBody = string(b[:n])
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		sig        string
		wantStatus int
	}{
		{name: "valid", sig: goodSig, wantStatus: http.StatusOK},
		{name: "missing", sig: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong", sig: "sha256=deadbeef", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
			if tt.sig != "" {
				req.Header.Set("X-Hub-Signature-256", tt.sig)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}

	if sawBody != body {
		t.Errorf("expected body restored for handler, got %q", sawBody)
	}
}

func TestWebhookSignatureDisabledWithoutSecret(t *testing.T) {
	handler := WebhookSignature("", testLog())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected pass-through without secret, got %d", rec.Code)
	}
}

func TestRecoveryReturns500(t *testing.T) {
	handler := Recovery(testLog())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestRequestLoggingAssignsID(t *testing.T) {
	var id string
	handler := RequestLogging(testLog())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id = RequestID(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if len(id) != 32 {
		t.Errorf("expected 32-char hex request id, got %q", id)
	}
}
