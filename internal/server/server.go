package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

type HttpServerParams struct {
	fx.In

	Config HttpConfig

	Handlers   []*HttpHandler      `group:"handlers"`
	Middleware []alice.Constructor `group:"middleware"`
	Logger     *zap.Logger
}

type HttpServer struct {
	address  string
	server   *http.Server
	listener net.Listener
	log      *zap.Logger
}

func NewHttpServer(params HttpServerParams) *HttpServer {
	handler := NewHandler(params.Handlers, params.Middleware, params.Logger)
	if params.Config.H2c {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	server := &http.Server{
		Addr:              params.Config.Address(),
		Handler:           handler,
		ReadHeaderTimeout: params.Config.ReadHeaderTimeout,
		ErrorLog:          zap.NewStdLog(params.Logger.Named("http")),
	}

	return &HttpServer{
		address: params.Config.Address(),
		server:  server,
		log:     params.Logger,
	}
}

// NewHandler wraps the router for handlers in the middleware chain.
func NewHandler(handlers []*HttpHandler, middleware []alice.Constructor, log *zap.Logger) http.Handler {
	// request ids come first so every later stage can log them
	chain := alice.New(RequestID(), Recovery(log)).
		Append(middleware...)

	return chain.Then(NewRouter(handlers))
}

// NewRouter registers handlers on a router that hands the request path
// through unaltered. A handler named CatchAll receives every request
// that no other handler matches, regardless of method or path.
func NewRouter(handlers []*HttpHandler) *mux.Router {
	router := mux.NewRouter().
		SkipClean(true).
		UseEncodedPath()

	var catchAll http.Handler
	for _, handler := range handlers {
		if handler.Name == CatchAll {
			catchAll = handler.Handler
			continue
		}
		router.Handle(handler.Name, handler.Handler)
	}

	if catchAll != nil {
		router.PathPrefix(CatchAll).Handler(catchAll)
		// requests like "OPTIONS *" never match a path prefix
		router.NotFoundHandler = catchAll
		router.MethodNotAllowedHandler = catchAll
	}

	return router
}

type LifecycleServerParams struct {
	fx.In

	HttpServerParams

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
}

func NewLifecycleServer(params LifecycleServerParams) *HttpServer {
	server := NewHttpServer(params.HttpServerParams)
	AppendLifecycle(params.Lifecycle, params.Shutdowner, server)
	return server
}

// AppendLifecycle binds the server to the application lifecycle. The
// listener is bound on start, so a bind failure fails the start of the
// application. A serve failure shuts down the application with exit
// code 1.
func AppendLifecycle(lc fx.Lifecycle, shutdowner fx.Shutdowner, server *HttpServer) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := server.Listen(ctx); err != nil {
				return err
			}

			go func() {
				if err := server.Serve(); err != nil {
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}

// Listen binds the listener of the server.
func (s *HttpServer) Listen(ctx context.Context) error {
	cfg := net.ListenConfig{}

	listener, err := cfg.Listen(ctx, "tcp", s.address)
	if err != nil {
		s.log.With(zap.Error(err)).Error("failed to listen")
		return err
	}

	s.listener = listener

	s.log.With(zap.String("address", listener.Addr().String())).Info("listening")

	return nil
}

// Addr returns the address the server is bound to, or nil if the
// listener has not been bound yet.
func (s *HttpServer) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}

	return s.listener.Addr()
}

// Serve accepts connections on the bound listener until the server
// is shut down.
func (s *HttpServer) Serve() error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}

	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.With(zap.Error(err)).Error("failed to serve")
		return err
	}

	return nil
}

func (s *HttpServer) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		s.log.With(zap.Error(err)).Error("failed to shutdown")
		return err
	}

	return nil
}
