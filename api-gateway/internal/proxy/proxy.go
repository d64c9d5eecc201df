// Package proxy forwards gateway requests to the backing services.
package proxy

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/eaglebank/registry/shared/middleware"
	"github.com/gin-gonic/gin"
)

// Targets holds the base URL of each backing service.
type Targets struct {
	Bank    string
	Library string
	Auth    string
}

// RegisterRoutes maps each /api prefix onto the service that owns it.
func RegisterRoutes(r gin.IRouter, targets Targets, client *http.Client) {
	routes := []struct {
		prefix string
		target string
	}{
		{"/api/customers", targets.Bank},
		{"/api/accounts", targets.Bank},
		{"/api/authors", targets.Library},
		{"/api/books", targets.Library},
		{"/api/users", targets.Auth},
	}
	for _, route := range routes {
		handler := To(route.target, client)
		group := r.Group(route.prefix)
		group.Any("", handler)
		group.Any("/*path", handler)
	}
}

// To returns a handler that replays the request against serviceURL and
// copies the response back. A nil client gets a 30s timeout default.
func To(serviceURL string, client *http.Client) gin.HandlerFunc {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return func(c *gin.Context) {
		targetURL := serviceURL + c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			targetURL += "?" + c.Request.URL.RawQuery
		}

		var bodyBytes []byte
		if c.Request.Body != nil {
			var err error
			if bodyBytes, err = io.ReadAll(c.Request.Body); err != nil {
				middleware.RespondWithError(c, http.StatusBadRequest, "Failed to read request body")
				return
			}
		}

		req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, targetURL, bytes.NewReader(bodyBytes))
		if err != nil {
			middleware.RespondWithInternalError(c, err, "Failed to create request")
			return
		}
		copyHeaders(req.Header, c.Request.Header)
		requestID := middleware.GetRequestID(c)
		if requestID != "" {
			req.Header.Set(middleware.RequestIDHeader, requestID)
		}
		if userID, ok := middleware.GetUserID(c); ok {
			req.Header.Set("X-User-ID", strconv.FormatInt(userID, 10))
		}

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("Error proxying request to %s: %v", serviceURL, err)
			middleware.RespondWithError(c, http.StatusBadGateway, "Service unavailable")
			return
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			middleware.RespondWithError(c, http.StatusBadGateway, "Failed to read response")
			return
		}

		copyHeaders(c.Writer.Header(), resp.Header)
		if requestID != "" {
			c.Writer.Header().Set(middleware.RequestIDHeader, requestID)
		}
		c.Data(resp.StatusCode, resp.Header.Get("Content-Type"), respBody)
	}
}

// hopHeaders apply to a single connection and are never forwarded.
var hopHeaders = map[string]bool{
	"Connection":          true,
	"Keep-Alive":          true,
	"Proxy-Authenticate":  true,
	"Proxy-Authorization": true,
	"Te":                  true,
	"Trailer":             true,
	"Transfer-Encoding":   true,
	"Upgrade":             true,
}

func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		if hopHeaders[http.CanonicalHeaderKey(key)] {
			continue
		}
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}
