package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	HeaderRequestID     = "X-Request-ID"
	CtxRequestIDKey     = "request_id"
	CtxAnalysisKindKey  = "analysis_kind"
	maxRequestIDLength  = 128
	accessOutcomeOK     = "success"
	accessOutcomeClient = "rejected"
	accessOutcomeServer = "failed"
)

// SetAnalysisKind tags the request so its access log line carries the kind
// of analysis it ran.
func SetAnalysisKind(c fiber.Ctx, kind string) {
	if c == nil || kind == "" {
		return
	}
	c.Locals(CtxAnalysisKindKey, kind)
}

// RequestID returns the id assigned by the access log middleware.
func RequestID(c fiber.Ctx) string {
	if c == nil {
		return ""
	}
	rid, _ := c.Locals(CtxRequestIDKey).(string)
	return rid
}

type AccessLogMiddleware struct {
	logger *log.Logger
	skip   map[string]struct{}
}

// NewAccessLogMiddleware logs one line per request. Paths in skip (health
// and metrics scrapes) are served without a log line.
func NewAccessLogMiddleware(logger *log.Logger, skip ...string) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	m := &AccessLogMiddleware{logger: logger, skip: make(map[string]struct{}, len(skip))}
	for _, p := range skip {
		m.skip[p] = struct{}{}
	}
	return m
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := strings.TrimSpace(c.Get(HeaderRequestID))
		if rid == "" || len(rid) > maxRequestIDLength {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)
		c.Locals(CtxRequestIDKey, rid)

		err := c.Next()

		if _, ok := m.skip[c.Path()]; ok {
			return err
		}

		status := c.Response().StatusCode()
		kind, _ := c.Locals(CtxAnalysisKindKey).(string)
		if kind == "" {
			kind = "-"
		}

		m.logger.Printf(
			"[HTTP] access | rid=%s method=%s path=%s status=%d outcome=%s kind=%s latency=%s ip=%s req_bytes=%d resp_bytes=%d ua=%q",
			rid, c.Method(), c.OriginalURL(), status, accessOutcome(status), kind, time.Since(start),
			c.IP(), c.Request().Header.ContentLength(), len(c.Response().Body()), c.Get(fiber.HeaderUserAgent),
		)
		return err
	}
}

func accessOutcome(status int) string {
	switch {
	case status >= 500:
		return accessOutcomeServer
	case status >= 400:
		return accessOutcomeClient
	default:
		return accessOutcomeOK
	}
}
