package diag

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/bxcodec/faker/v3"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
)

type gotLogData struct {
	ctx     context.Context
	msg     string
	msgData MsgData
}

type mockLogger struct {
	gotLogs       []gotLogData
	recentMsgData MsgData
}

func (l *mockLogger) log(ctx context.Context, msg string, args ...interface{}) {
	l.gotLogs = append(l.gotLogs, gotLogData{
		ctx:     ctx,
		msg:     fmt.Sprintf(msg, args...),
		msgData: l.recentMsgData,
	})
	l.recentMsgData = nil
}

func (l *mockLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, msg, args...)
}

func (l *mockLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, msg, args...)
}

func (l *mockLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, msg, args...)
}

func (l *mockLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, msg, args...)
}

func (l *mockLogger) WithError(err error) Logger {
	return l
}

func (l *mockLogger) WithData(data MsgData) Logger {
	l.recentMsgData = data
	return l
}

func TestRequestIDMiddleware(t *testing.T) {
	type testCase struct {
		name         string
		req          *http.Request
		setup        []requestIDMiddlewareSetup
		want         string
		wantNotEmpty bool
	}
	tests := []func() testCase{
		func() testCase {
			requestID := uuid.NewV4().String()
			req := httptest.NewRequest("GET", "/not-important", nil)
			req.Header.Add("X-Request-ID", requestID)
			return testCase{name: "reuse requestID from header", req: req, want: requestID}
		},
		func() testCase {
			requestID := uuid.NewV4()
			return testCase{
				name: "generate a new requestID",
				req:  httptest.NewRequest("GET", "/not-important", nil),
				setup: []requestIDMiddlewareSetup{
					func(cfg *requestIDMiddlewareCfg) {
						cfg.newUUID = func() uuid.UUID { return requestID }
					},
				},
				want: requestID.String(),
			}
		},
		func() testCase {
			return testCase{
				name:         "generate a new requestID with a default cfg",
				req:          httptest.NewRequest("GET", "/not-important", nil),
				wantNotEmpty: true,
			}
		},
	}
	for _, ttFn := range tests {
		tt := ttFn()
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var gotRequestID string
			next := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				nextCalled = true
				gotRequestID = RequestIDValue(req.Context())
			})
			w := httptest.NewRecorder()
			NewRequestIDMiddleware(tt.setup...)(next).ServeHTTP(w, tt.req)
			assert.True(t, nextCalled, "Next should have been called")
			if tt.wantNotEmpty {
				assert.NotEmpty(t, gotRequestID)
			} else {
				assert.Equal(t, tt.want, gotRequestID)
			}
			assert.Equal(t, gotRequestID, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestLogRequestsMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		testCase func(t *testing.T)
	}{
		{
			name: "log request start/end",
			testCase: func(t *testing.T) {
				path := "/path/" + faker.Word()
				req := httptest.NewRequest("POST", path+"?key1="+faker.Word(), nil)
				req.Header.Set("User-Agent", faker.Word())
				remoteIP := faker.IPv4()
				remotePort := strconv.Itoa(1 + rand.Intn(60000))
				req.RemoteAddr = remoteIP + ":" + remotePort

				l := mockLogger{}
				duration := time.Duration(int64(time.Millisecond) * rand.Int63n(1000))
				reqStart := time.Now()
				times := []time.Time{reqStart, reqStart.Add(duration)}
				fakeMemory := rand.Float64()

				mw := NewLogRequestsMiddleware(func(cfg *logRequestsMiddlewareCfg) {
					cfg.logger = &l
					cfg.runtimeMemMb = func() float64 { return fakeMemory }
					cfg.now = func() time.Time {
						var now time.Time
						now, times = times[0], times[1:]
						return now
					}
				})

				code := http.StatusSeeOther
				w := httptest.NewRecorder()
				mw(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					w.WriteHeader(code)
				})).ServeHTTP(w, req)

				wantLogs := []gotLogData{
					{
						ctx: req.Context(),
						msg: "BEGIN REQ: POST " + path,
						msgData: MsgData{
							"method":        "POST",
							"url":           req.URL.RequestURI(),
							"path":          path,
							"userAgent":     req.UserAgent(),
							"query":         flattenAndObfuscate(req.URL.Query()),
							"headers":       flattenAndObfuscate(req.Header, "Authorization", "Cookie"),
							"remoteAddress": remoteIP,
							"remotePort":    remotePort,
							"memoryUsageMb": fakeMemory,
						},
					},
					{
						ctx: req.Context(),
						msg: fmt.Sprintf("END REQ: %v - %v", code, path),
						msgData: MsgData{
							"statusCode":    code,
							"headers":       flattenAndObfuscate(w.Header()),
							"duration":      duration.Seconds(),
							"memoryUsageMb": fakeMemory,
						},
					},
				}
				assert.Equal(t, wantLogs, l.gotLogs)
			},
		},
		{
			name: "use default status",
			testCase: func(t *testing.T) {
				l := mockLogger{}
				mw := NewLogRequestsMiddleware(func(cfg *logRequestsMiddlewareCfg) {
					cfg.logger = &l
				})
				mw(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					_, _ = w.Write([]byte("ok"))
				})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/fake", nil))
				if !assert.Len(t, l.gotLogs, 2) {
					return
				}
				assert.Equal(t, "END REQ: 200 - /fake", l.gotLogs[1].msg)
				assert.Equal(t, 200, l.gotLogs[1].msgData["statusCode"])
			},
		},
		{
			name: "ignore paths",
			testCase: func(t *testing.T) {
				fakePath := "/fake/path/" + faker.Word()
				for _, path := range []string{fakePath, "/v1/healthcheck/ping"} {
					l := mockLogger{}
					nextCalled := false
					mw := NewLogRequestsMiddleware(
						func(cfg *logRequestsMiddlewareCfg) { cfg.logger = &l },
						IgnorePath(fakePath),
					)
					mw(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
						nextCalled = true
					})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", path, nil))
					assert.True(t, nextCalled)
					assert.Len(t, l.gotLogs, 0, path)
				}
			},
		},
		{
			name: "obfuscate headers",
			testCase: func(t *testing.T) {
				customHeader := "X-Custom-H" + faker.Word()
				customValue := faker.Word()
				authToken := faker.Word()
				req := httptest.NewRequest("GET", "/", nil)
				req.Header.Add(customHeader, customValue)
				req.Header.Add("Authorization", authToken)

				l := mockLogger{}
				mw := NewLogRequestsMiddleware(
					func(cfg *logRequestsMiddlewareCfg) { cfg.logger = &l },
					ObfuscateHeaders(customHeader),
				)
				mw(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {})).
					ServeHTTP(httptest.NewRecorder(), req)
				if !assert.Len(t, l.gotLogs, 2) {
					return
				}
				loggedHeaders := l.gotLogs[0].msgData["headers"].(map[string]string)
				assert.Equal(t, fmt.Sprint("*obfuscated, length=", len(customValue), "*"), loggedHeaders[customHeader])
				assert.Equal(t, fmt.Sprint("*obfuscated, length=", len(authToken), "*"), loggedHeaders["Authorization"])
			},
		},
		{
			name: "remote address without port",
			testCase: func(t *testing.T) {
				req := httptest.NewRequest("GET", "/fake", nil)
				remoteIP := faker.IPv4()
				req.RemoteAddr = remoteIP

				l := mockLogger{}
				mw := NewLogRequestsMiddleware(func(cfg *logRequestsMiddlewareCfg) {
					cfg.logger = &l
				})
				mw(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {})).
					ServeHTTP(httptest.NewRecorder(), req)
				if !assert.Len(t, l.gotLogs, 3) {
					return
				}
				startLog := l.gotLogs[1]
				assert.Equal(t, remoteIP, startLog.msgData["remoteAddress"])
				assert.Equal(t, "", startLog.msgData["remotePort"])
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, tt.testCase)
	}
}

func Test_flattenAndObfuscate(t *testing.T) {
	key1, val11, val12 := "key1-"+faker.Word(), "val11-"+faker.Word(), "val12-"+faker.Word()
	key2, val2 := "key2-"+faker.Word(), "val2-"+faker.Word()
	values := map[string][]string{
		key1: {val11, val12},
		key2: {val2},
	}
	assert.Equal(t, map[string]string{
		key1: val11 + ", " + val12,
		key2: val2,
	}, flattenAndObfuscate(values))
	assert.Equal(t, map[string]string{
		key1: fmt.Sprint("*obfuscated, length=", len(val11+", "+val12), "*"),
		key2: val2,
	}, flattenAndObfuscate(values, key1))
}
