package observability

import (
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/echo-server/internal/server"
)

// AdminServer is the listener serving /metrics and /health.
type AdminServer struct {
	*server.HttpServer
}

type AdminServerParams struct {
	fx.In

	Config     server.HttpConfig `name:"admin"`
	Metrics    *Metrics
	Logger     *zap.Logger
	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
}

// NewAdminHandlers returns the handlers served by the admin listener.
func NewAdminHandlers(metrics *Metrics) []*server.HttpHandler {
	return []*server.HttpHandler{
		{
			Name: "/metrics",
			Handler: promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{
				Registry: metrics.Registry,
			}),
		},
		{
			Name:    "/health",
			Handler: http.HandlerFunc(HealthHandler),
		},
	}
}

func NewAdminServer(params AdminServerParams) *AdminServer {
	srv := server.NewHttpServer(server.HttpServerParams{
		Config:   params.Config,
		Handlers: NewAdminHandlers(params.Metrics),
		Logger:   params.Logger,
	})

	server.AppendLifecycle(params.Lifecycle, params.Shutdowner, srv)

	return &AdminServer{HttpServer: srv}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok")
}
