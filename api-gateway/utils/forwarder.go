package utils

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pawsitivecheck/backend/services/common/errors"
	"github.com/pawsitivecheck/backend/services/common/logger"
	"github.com/pawsitivecheck/backend/services/common/middleware"
	"go.uber.org/zap"
)

// identityHeaders are set only by the gateway; client-supplied values are
// dropped before forwarding.
var identityHeaders = []string{"X-User-ID", "X-User-Role", "X-User-Email"}

var hopByHop = map[string]bool{
	"connection":          true,
	"keep-alive":          true,
	"proxy-authenticate":  true,
	"proxy-authorization": true,
	"te":                  true,
	"trailers":            true,
	"transfer-encoding":   true,
	"upgrade":             true,
}

// Forwarder proxies requests to one downstream service, preserving the path.
type Forwarder struct {
	TargetBase string
	Client     *http.Client
}

func NewForwarder(targetBase string, timeout time.Duration) *Forwarder {
	return &Forwarder{
		TargetBase: strings.TrimRight(targetBase, "/"),
		Client:     &http.Client{Timeout: timeout},
	}
}

// Handle is the gin handler for every route mapped to this service.
func (f *Forwarder) Handle(c *gin.Context) {
	ctx := c.Request.Context()
	targetURL := f.TargetBase + c.Request.URL.Path
	if c.Request.URL.RawQuery != "" {
		targetURL += "?" + c.Request.URL.RawQuery
	}

	logger.Info(c, "Forwarding request",
		zap.String("method", c.Request.Method),
		zap.String("url", targetURL),
	)

	req, err := http.NewRequestWithContext(ctx, c.Request.Method, targetURL, c.Request.Body)
	if err != nil {
		logger.Error(c, "Failed to create forward request", err)
		apperrors.Abort(c, apperrors.ErrInternalServer.Wrap(err))
		return
	}
	req.ContentLength = c.Request.ContentLength

	for k, v := range c.Request.Header {
		if hopByHop[strings.ToLower(k)] {
			continue
		}
		req.Header[k] = v
	}
	for _, h := range identityHeaders {
		req.Header.Del(h)
	}
	if userID := c.GetString(middleware.UserContextKey); userID != "" {
		req.Header.Set("X-User-ID", userID)
		req.Header.Set("X-User-Role", c.GetString(middleware.RoleContextKey))
		if email := c.GetString("email"); email != "" {
			req.Header.Set("X-User-Email", email)
		}
	}
	if requestID := c.GetString(logger.RequestIDKey); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		logger.Error(c, "Failed to forward request", err, zap.String("url", targetURL))
		apperrors.Abort(c, apperrors.ErrBadGateway.Wrap(err))
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		lowerKey := strings.ToLower(k)
		// CORS is owned by the gateway
		if strings.HasPrefix(lowerKey, "access-control-") || hopByHop[lowerKey] {
			continue
		}
		c.Header(k, strings.Join(v, ","))
	}

	c.Status(resp.StatusCode)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		logger.Error(c, "Failed to copy response body", err)
	}
}
