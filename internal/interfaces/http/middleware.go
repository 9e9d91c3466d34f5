package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	prom "github.com/turtacn/molgraph/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/molgraph/pkg/errors"
)

// headerRequestID is the inbound/outbound request correlation header.
const headerRequestID = "X-Request-ID"

// contextKeyRequestID is the gin context key under which the request ID is
// stored for handlers and downstream middleware.
const contextKeyRequestID = "request_id"

// RequestID assigns each request a correlation ID, honoring a caller-supplied
// one, and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextKeyRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// AccessLog emits one structured entry per request.
func AccessLog(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("http request",
			logging.String(logging.FieldRequestID, c.GetString(contextKeyRequestID)),
			logging.String("method", c.Request.Method),
			logging.String("path", c.FullPath()),
			logging.Int("status", c.Writer.Status()),
			logging.Duration(logging.FieldDuration, time.Since(start)),
		)
	}
}

// Metrics records request counters and latency histograms.  Routes are
// labeled by their pattern, not the raw URL, to bound cardinality.
func Metrics(m *prom.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		prom.RecordHTTPRequest(m, c.Request.Method, path, c.Writer.Status(),
			time.Since(start), c.Request.ContentLength, int64(c.Writer.Size()))
	}
}

// Recovery converts panics into 500 responses without killing the process.
func Recovery(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("handler panic",
					logging.String(logging.FieldRequestID, c.GetString(contextKeyRequestID)),
					logging.String("path", c.Request.URL.Path),
					logging.Any("panic", r),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody(
					errors.New(errors.ErrCodeInternal, "internal server error")))
			}
		}()
		c.Next()
	}
}

// errorResponse is the standard error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorBody(err error) errorResponse {
	return errorResponse{
		Code:    string(errors.GetCode(err)),
		Message: err.Error(),
	}
}

// renderError maps an application error onto its HTTP status and writes the
// standard envelope.
func renderError(c *gin.Context, err error) {
	status := errors.HTTPStatusForCode(errors.GetCode(err))
	c.JSON(status, errorBody(err))
}
