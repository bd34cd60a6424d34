package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap/zaptest"

	"github.com/lambda-feedback/echo-server/internal/observability"
	"github.com/lambda-feedback/echo-server/internal/server"
)

func TestMiddleware_RecordsStatusClass(t *testing.T) {
	m := observability.NewMetrics()

	handler := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodPost, "4xx")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RequestsInFlight))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
}

func TestMiddleware_DefaultStatus(t *testing.T) {
	m := observability.NewMetrics()

	handler := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "2xx")))
}

func TestMiddleware_InterimStatusNotRecorded(t *testing.T) {
	m := observability.NewMetrics()

	handler := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusEarlyHints)
		w.WriteHeader(http.StatusCreated)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodPost, "2xx")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodPost, "1xx")))
}

func TestMiddleware_SwitchingProtocolsRecorded(t *testing.T) {
	m := observability.NewMetrics()

	handler := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusSwitchingProtocols)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "1xx")))
}

func TestMiddleware_InFlight(t *testing.T) {
	m := observability.NewMetrics()

	var inFlight float64
	handler := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inFlight = testutil.ToFloat64(m.RequestsInFlight)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, 1.0, inFlight)
}

func TestAdminHandlers(t *testing.T) {
	m := observability.NewMetrics()
	m.RequestsTotal.WithLabelValues(http.MethodGet, "2xx").Inc()

	router := server.NewRouter(observability.NewAdminHandlers(m))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `echo_requests_total{method="GET",status="2xx"} 1`)
	assert.Contains(t, w.Body.String(), "go_goroutines")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestAdminModule(t *testing.T) {
	var admin *observability.AdminServer

	app := fxtest.New(t,
		fx.Supply(zaptest.NewLogger(t)),
		observability.Module(),
		observability.AdminModule(server.HttpConfig{Host: "127.0.0.1", Port: 0}),
		fx.Populate(&admin),
	)
	app.RequireStart()
	defer app.RequireStop()

	res, err := http.Get("http://" + admin.Addr().String() + "/health")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
}
