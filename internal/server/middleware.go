package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"fjacquet/fattura-csv/internal/logging"

	"github.com/gin-gonic/gin"
)

// Header names read by AccessGate.
const (
	HeaderAccessKey = "X-Access-Key"
	HeaderUserEmail = "X-User-Email"
)

// AccessGate rejects requests without the configured access key and, when
// allowedDomains is not empty, requests whose X-User-Email domain is not
// listed. An empty key and an empty list let everything through.
func AccessGate(accessKey string, allowedDomains []string) gin.HandlerFunc {
	domains := make(map[string]struct{}, len(allowedDomains))
	for _, d := range allowedDomains {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			domains[d] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		if accessKey != "" {
			got := c.GetHeader(HeaderAccessKey)
			if subtle.ConstantTimeCompare([]byte(got), []byte(accessKey)) != 1 {
				fail(c, http.StatusUnauthorized, "invalid access key")
				return
			}
		}

		if len(domains) > 0 {
			if _, ok := domains[emailDomain(c.GetHeader(HeaderUserEmail))]; !ok {
				fail(c, http.StatusForbidden, "email domain not allowed")
				return
			}
		}

		c.Next()
	}
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(email[at+1:]))
}

// RequestLogger logs one entry per request once the handler has run.
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []logging.Field{
			logging.F(logging.FieldMethod, c.Request.Method),
			logging.F(logging.FieldPath, c.Request.URL.Path),
			logging.F(logging.FieldStatus, c.Writer.Status()),
			logging.F(logging.FieldLatency, time.Since(start).String()),
			logging.F(logging.FieldRemote, c.ClientIP()),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("HTTP request", fields...)
			return
		}
		logger.Debug("HTTP request", fields...)
	}
}
