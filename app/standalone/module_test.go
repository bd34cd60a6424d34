package standalone_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap/zaptest"

	"github.com/lambda-feedback/echo-server/app/standalone"
	"github.com/lambda-feedback/echo-server/config"
	"github.com/lambda-feedback/echo-server/handler"
	"github.com/lambda-feedback/echo-server/internal/observability"
	"github.com/lambda-feedback/echo-server/internal/server"
	"github.com/lambda-feedback/echo-server/responder"
)

func startApp(t *testing.T, cfg config.Config, populate ...any) *fxtest.App {
	app := fxtest.New(t,
		fx.Supply(zaptest.NewLogger(t)),
		fx.Supply(fx.Annotate(context.Background(), fx.As(new(context.Context)))),
		fx.Supply(cfg),
		responder.Module(),
		handler.Module(),
		observability.Module(),
		standalone.Module(cfg),
		fx.Populate(populate...),
	)
	app.RequireStart()
	return app
}

func get(t *testing.T, url string) (*http.Response, string) {
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res, string(body)
}

func TestModule_Echo(t *testing.T) {
	cfg := config.Config{
		Http: server.HttpConfig{Host: "127.0.0.1", Port: 0},
	}

	var srv *server.HttpServer

	app := startApp(t, cfg, &srv)
	defer app.RequireStop()

	req, err := http.NewRequest(http.MethodPost, "http://"+srv.Addr().String()+"/some/path?x=1", strings.NewReader("Hello, World!"))
	require.NoError(t, err)
	req.Header.Set("X-Test", "v")
	req.Header.Set("internal.status-code", "201")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "Hello, World!", string(body))
	assert.Equal(t, "v", res.Header.Get("X-Test"))
	assert.Empty(t, res.Header.Get("internal.status-code"))
}

func TestModule_EchoesReservedLookingPaths(t *testing.T) {
	cfg := config.Config{
		Http:  server.HttpConfig{Host: "127.0.0.1", Port: 0},
		Admin: config.AdminConfig{Enabled: true, HttpConfig: server.HttpConfig{Host: "127.0.0.1", Port: 0}},
	}

	var srv *server.HttpServer

	app := startApp(t, cfg, &srv)
	defer app.RequireStop()

	for _, path := range []string{"/metrics", "/health"} {
		res, body := get(t, "http://"+srv.Addr().String()+path)

		assert.Equal(t, http.StatusOK, res.StatusCode, path)
		assert.Empty(t, body, path)
	}
}

func TestModule_AdminListener(t *testing.T) {
	cfg := config.Config{
		Http:  server.HttpConfig{Host: "127.0.0.1", Port: 0},
		Admin: config.AdminConfig{Enabled: true, HttpConfig: server.HttpConfig{Host: "127.0.0.1", Port: 0}},
	}

	var (
		srv   *server.HttpServer
		admin *observability.AdminServer
	)

	app := startApp(t, cfg, &srv, &admin)
	defer app.RequireStop()

	res, _ := get(t, "http://"+srv.Addr().String()+"/counted")
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, body := get(t, "http://"+admin.Addr().String()+"/metrics")

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `echo_requests_total{method="GET",status="2xx"} 1`)
}
