package handler

import (
	"io"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lambda-feedback/echo-server/config"
	"github.com/lambda-feedback/echo-server/internal/server"
	"github.com/lambda-feedback/echo-server/responder"
)

// transportHeaders are owned by net/http, which computes them for the
// response actually written. They are never copied to the wire.
var transportHeaders = []string{
	"Connection",
	"Content-Length",
	"Keep-Alive",
	"Proxy-Connection",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

type EchoHandlerParams struct {
	fx.In

	Responder responder.Responder
	Config    config.Config
	Log       *zap.Logger
}

func NewEchoHandler(params EchoHandlerParams) *EchoHandler {
	return &EchoHandler{
		responder: params.Responder,
		verbose:   params.Config.Verbose,
		log:       params.Log,
	}
}

// EchoHandler serves every request through a responder.Responder.
type EchoHandler struct {
	responder responder.Responder
	verbose   bool
	log       *zap.Logger
}

func (h *EchoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		zap.String("request_id", server.RequestIDFromContext(r.Context())),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	)

	// Read the body
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read body", zap.Error(err))
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	request := NewRequest(r, body)

	if h.verbose {
		log.Info("incoming request",
			zap.String("uri", request.Path),
			zap.Array("headers", headerFields(request.Header)),
			zap.ByteString("body", request.Body),
		)
	}

	// Handle the request
	response := h.responder.Respond(request)

	if h.verbose {
		log.Info("outgoing response",
			zap.Int("status", response.StatusCode),
			zap.Array("headers", headerFields(response.Header)),
			zap.ByteString("body", response.Body),
		)
	} else {
		log.Debug("request handled", zap.Int("status", response.StatusCode))
	}

	WriteResponse(w, response, log)
}

// NewRequest converts r into a responder request. net/http moves the
// Host header out of r.Header, it is restored as the first field.
//
// r.Header is a map, so the wire order of distinct header names is
// lost. The remaining fields follow responder.FromHTTP in sorted order.
func NewRequest(r *http.Request, body []byte) responder.Request {
	header := make(responder.Header, 0, len(r.Header)+1)
	if r.Host != "" {
		header = append(header, responder.Field{Name: "Host", Value: r.Host})
	}
	header = append(header, responder.FromHTTP(r.Header)...)

	return responder.Request{
		Method: r.Method,
		Path:   r.URL.RequestURI(),
		Header: header,
		Body:   body,
	}
}

// WriteResponse writes response to w, skipping transport headers.
//
// net/http sends a 1xx status as an interim response. For 101 it drops
// the body, for every other 1xx the body write completes the exchange
// with a final 200.
func WriteResponse(w http.ResponseWriter, response responder.Response, log *zap.Logger) {
	// Map response headers
	header := w.Header()
	for name, values := range response.Header.Without(transportHeaders...).HTTP() {
		header[name] = append(header[name], values...)
	}

	if response.StatusCode < http.StatusOK {
		log.Debug("informational status code is not a final response",
			zap.Int("status", response.StatusCode),
		)
	}

	// Write response headers and status code
	w.WriteHeader(response.StatusCode)

	// Write response body; statuses like 204 and 304 do not allow one
	if _, err := w.Write(response.Body); err != nil {
		log.Debug("failed to write response", zap.Error(err))
	}
}

// headerFields renders a header collection as an array of "Name: Value"
// strings in log entries.
type headerFields responder.Header

func (h headerFields) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, f := range h {
		enc.AppendString(f.Name + ": " + f.Value)
	}
	return nil
}
