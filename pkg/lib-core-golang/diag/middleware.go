package diag

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"runtime"
	"strings"
	"time"

	uuid "github.com/satori/go.uuid"
)

// Note: router package imports diag, so router.MiddlewareFunc
// can not be referenced here. Plain func types are used instead

const requestIDHeader = "x-request-id"

type requestIDMiddlewareCfg struct {
	newUUID func() uuid.UUID
}

type requestIDMiddlewareSetup func(cfg *requestIDMiddlewareCfg)

// NewRequestIDMiddleware creates a middleware that will maintain the x-request-id header
// and propagate it via request context
func NewRequestIDMiddleware(setup ...requestIDMiddlewareSetup) func(next http.Handler) http.Handler {
	cfg := requestIDMiddlewareCfg{newUUID: uuid.NewV4}
	for _, setupFn := range setup {
		setupFn(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			requestID := req.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = cfg.newUUID().String()
			}
			w.Header().Set(requestIDHeader, requestID)
			next.ServeHTTP(w, req.WithContext(ContextWithRequestID(req.Context(), requestID)))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) statusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

type logRequestsMiddlewareCfg struct {
	ignorePaths      map[string]bool
	obfuscateHeaders []string
	logger           Logger
	runtimeMemMb     func() float64
	now              func() time.Time
}

// LogRequestsMiddlewareOpt is an option of the requests logging middleware
type LogRequestsMiddlewareOpt func(*logRequestsMiddlewareCfg)

// IgnorePath option specify paths to skip logging for
func IgnorePath(path string) LogRequestsMiddlewareOpt {
	return func(cfg *logRequestsMiddlewareCfg) {
		cfg.ignorePaths[path] = true
	}
}

// ObfuscateHeaders option provides a list of headers which values should not be logged
func ObfuscateHeaders(headers ...string) LogRequestsMiddlewareOpt {
	return func(cfg *logRequestsMiddlewareCfg) {
		cfg.obfuscateHeaders = append(cfg.obfuscateHeaders, headers...)
	}
}

func flattenAndObfuscate(values map[string][]string, obfuscateKeys ...string) map[string]string {
	flattened := make(map[string]string, len(values))
	for key, val := range values {
		flattened[key] = strings.Join(val, ", ")
	}
	for _, key := range obfuscateKeys {
		if val, ok := flattened[key]; ok {
			flattened[key] = fmt.Sprint("*obfuscated, length=", len(val), "*")
		}
	}
	return flattened
}

func currentMemMb() float64 {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	return math.Round(float64(memStats.Alloc)/1024.0/1024.0*1000) / 1000
}

// NewLogRequestsMiddleware creates a middleware that logs request start and end
func NewLogRequestsMiddleware(opts ...LogRequestsMiddlewareOpt) func(next http.Handler) http.Handler {
	cfg := logRequestsMiddlewareCfg{
		ignorePaths:      map[string]bool{"/v1/healthcheck/ping": true},
		obfuscateHeaders: []string{"Authorization", "Cookie"},
		runtimeMemMb:     currentMemMb,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = CreateLogger()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			path := req.URL.Path
			if cfg.ignorePaths[path] {
				next.ServeHTTP(w, req)
				return
			}

			ip, port, err := net.SplitHostPort(req.RemoteAddr)
			if err != nil {
				cfg.logger.Warn(req.Context(), "Can not parse remote addr: %v", req.RemoteAddr)
				ip, port = req.RemoteAddr, ""
			}

			cfg.logger.
				WithData(MsgData{
					"method":        req.Method,
					"url":           req.URL.RequestURI(),
					"path":          path,
					"userAgent":     req.UserAgent(),
					"headers":       flattenAndObfuscate(req.Header, cfg.obfuscateHeaders...),
					"query":         flattenAndObfuscate(req.URL.Query()),
					"remoteAddress": ip,
					"remotePort":    port,
					"memoryUsageMb": cfg.runtimeMemMb(),
				}).
				Info(req.Context(), "BEGIN REQ: %s %s", req.Method, path)

			recorder := &statusRecorder{ResponseWriter: w}
			startedAt := cfg.now()
			next.ServeHTTP(recorder, req)
			duration := cfg.now().Sub(startedAt)

			cfg.logger.
				WithData(MsgData{
					"statusCode":    recorder.statusCode(),
					"headers":       flattenAndObfuscate(w.Header()),
					"duration":      duration.Seconds(),
					"memoryUsageMb": cfg.runtimeMemMb(),
				}).
				Info(req.Context(), "END REQ: %v - %v", recorder.statusCode(), path)
		})
	}
}
