package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	"marsa/pkg/errors"
	"marsa/pkg/logger"
)

// WebhookSignature verifies Meta's X-Hub-Signature-256 header against the
// app secret. The body is restored for downstream handlers. An empty
// secret disables verification (local development).
func WebhookSignature(appSecret string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if appSecret == "" {
				next.ServeHTTP(w, r)
				return
			}

			sig := strings.TrimPrefix(r.Header.Get("X-Hub-Signature-256"), "sha256=")
			if sig == "" {
				reject(w, log, r, "missing signature header")
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				reject(w, log, r, "unreadable body")
				return
			}
			r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(body))

			mac := hmac.New(sha256.New, []byte(appSecret))
			mac.Write(body)
			expected := hex.EncodeToString(mac.Sum(nil))
			if !hmac.Equal([]byte(expected), []byte(sig)) {
				reject(w, log, r, "signature mismatch")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func reject(w http.ResponseWriter, log *logger.Logger, r *http.Request, reason string) {
	log.Warn("Webhook signature rejected",
		"request_id", RequestID(r),
		"reason", reason,
		"remote_addr", r.RemoteAddr,
	)
	errors.WriteError(w, errors.Unauthorized("invalid webhook signature"))
}
