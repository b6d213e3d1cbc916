package middleware

import (
	"bytes"
	"io"
	"strings"
	"time"

	"calldeskrest/pkg/logger"

	"github.com/gin-gonic/gin"
)

func setupLogger(engine *gin.Engine, log logger.Logger) {
	middlewareConfig := DefaultMiddlewareConfig()
	middlewareConfig.SkipPaths = append(middlewareConfig.SkipPaths, "/healthcheck/")
	engine.Use(LoggerMiddleware(log, middlewareConfig))
}

// MiddlewareConfig configures the logging middleware
type MiddlewareConfig struct {
	// Whether to log request bodies
	LogRequestBody bool
	// Whether to log response bodies
	LogResponseBody bool
	// Maximum size of bodies to log (in bytes)
	MaxBodySize int
	// Headers to exclude from logging (case-insensitive)
	ExcludedHeaders []string
	// Paths to skip logging (exact match)
	SkipPaths []string
	// Whether to log only errors (4xx, 5xx status codes)
	ErrorsOnly bool
}

// DefaultMiddlewareConfig returns a default configuration
func DefaultMiddlewareConfig() MiddlewareConfig {
	return MiddlewareConfig{
		LogRequestBody:  true,
		LogResponseBody: false,
		MaxBodySize:     1024,
		ExcludedHeaders: []string{
			"authorization",
			"cookie",
			"set-cookie",
			"x-api-key",
		},
		SkipPaths: []string{
			"/healthcheck",
		},
	}
}

// responseBodyWriter keeps up to limit bytes of the response body
type responseBodyWriter struct {
	gin.ResponseWriter
	body      *bytes.Buffer
	limit     int
	truncated bool
}

func (w *responseBodyWriter) Write(data []byte) (int, error) {
	if room := w.limit - w.body.Len(); room > 0 {
		if len(data) > room {
			w.body.Write(data[:room])
			w.truncated = true
		} else {
			w.body.Write(data)
		}
	} else if len(data) > 0 {
		w.truncated = true
	}
	return w.ResponseWriter.Write(data)
}

// LoggerMiddleware logs one entry per request, at a level chosen by status
func LoggerMiddleware(log logger.Logger, config ...MiddlewareConfig) gin.HandlerFunc {
	cfg := DefaultMiddlewareConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	excludedHeaders := make(map[string]bool)
	for _, header := range cfg.ExcludedHeaders {
		excludedHeaders[strings.ToLower(header)] = true
	}

	skipPaths := make(map[string]bool)
	for _, path := range cfg.SkipPaths {
		skipPaths[path] = true
	}

	return func(c *gin.Context) {
		if skipPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()

		var requestBody string
		if cfg.LogRequestBody && c.Request.Body != nil {
			bodyBytes, err := io.ReadAll(c.Request.Body)
			if err == nil {
				c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
				if len(bodyBytes) <= cfg.MaxBodySize {
					requestBody = string(bodyBytes)
				} else {
					requestBody = "[BODY TOO LARGE]"
				}
			}
		}

		var capture *responseBodyWriter
		if cfg.LogResponseBody {
			capture = &responseBodyWriter{
				ResponseWriter: c.Writer,
				body:           bytes.NewBuffer(make([]byte, 0, cfg.MaxBodySize)),
				limit:          cfg.MaxBodySize,
			}
			c.Writer = capture
		}

		c.Next()

		statusCode := c.Writer.Status()
		if cfg.ErrorsOnly && statusCode < 400 {
			return
		}

		headers := make(map[string]string)
		for name, values := range c.Request.Header {
			if !excludedHeaders[strings.ToLower(name)] && len(values) > 0 {
				headers[name] = values[0]
			}
		}

		fields := map[string]interface{}{
			"component":   "http_middleware",
			"request_id":  GetRequestID(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"query":       c.Request.URL.RawQuery,
			"status":      statusCode,
			"duration_ms": time.Since(start).Milliseconds(),
			"client_ip":   c.ClientIP(),
			"headers":     headers,
		}
		if requestBody != "" {
			fields["request_body"] = requestBody
		}
		if capture != nil {
			body := capture.body.String()
			if capture.truncated {
				body += "[TRUNCATED]"
			}
			fields["response_body"] = body
		}
		if customFields, exists := c.Get("log_fields"); exists {
			if fieldMap, ok := customFields.(map[string]interface{}); ok {
				for k, v := range fieldMap {
					fields[k] = v
				}
			}
		}

		switch {
		case statusCode >= 500:
			var err error
			if last := c.Errors.Last(); last != nil {
				err = last.Err
			}
			log.Error("HTTP Server Error", err, fields)
		case statusCode >= 400:
			log.Warn("HTTP Client Error", fields)
		default:
			log.Info("HTTP Request", fields)
		}
	}
}

// AddLogFields adds custom fields to be included in logs
func AddLogFields(c *gin.Context, fields map[string]interface{}) {
	existing, exists := c.Get("log_fields")
	if !exists {
		c.Set("log_fields", fields)
		return
	}

	if existingMap, ok := existing.(map[string]interface{}); ok {
		for k, v := range fields {
			existingMap[k] = v
		}
		c.Set("log_fields", existingMap)
	} else {
		c.Set("log_fields", fields)
	}
}
