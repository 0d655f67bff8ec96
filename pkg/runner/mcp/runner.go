package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"tableflip.dev/uebung/pkg/app"
	"tableflip.dev/uebung/pkg/logging"
)

// Transport selects how the MCP server is exposed.
type Transport string

const (
	TransportHTTP  Transport = "http"
	TransportStdio Transport = "stdio"
)

// ParseTransport accepts a transport name, case-insensitively. Empty means HTTP.
func ParseTransport(v string) (Transport, error) {
	switch t := Transport(strings.ToLower(strings.TrimSpace(v))); t {
	case "", TransportHTTP:
		return TransportHTTP, nil
	case TransportStdio:
		return TransportStdio, nil
	default:
		return "", fmt.Errorf("unknown MCP transport %q (want http or stdio)", v)
	}
}

const shutdownGrace = 5 * time.Second

// Runner serves the practice MCP server until its context is cancelled.
type Runner struct {
	Service *app.Service
	Log     *zap.SugaredLogger
	Name    string
	Version string

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	HTTPServerCert   string
	HTTPServerKey    string

	// OnHTTPListening is called once the listener is bound.
	OnHTTPListening func(net.Addr)
}

func (r Runner) validate() error {
	if r.Service == nil {
		return errors.New("mcp runner requires a practice service")
	}
	if (r.HTTPServerCert == "") != (r.HTTPServerKey == "") {
		return errors.New("both http tls cert and key must be provided")
	}
	return nil
}

func (r Runner) tls() bool { return r.HTTPServerCert != "" }

func (r Runner) endpoint() string {
	if r.HTTPEndpointPath == "" {
		return "/mcp"
	}
	return r.HTTPEndpointPath
}

// URL is the address clients connect to for a listener bound at a.
// Unspecified hosts are reported as loopback.
func (r Runner) URL(a net.Addr) string {
	scheme := "http"
	if r.tls() {
		scheme = "https"
	}
	host, port, err := net.SplitHostPort(a.String())
	if err != nil {
		return fmt.Sprintf("%s://%s%s", scheme, a.String(), r.endpoint())
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(host, port), r.endpoint())
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	if err := r.validate(); err != nil {
		return err
	}
	name, version := r.Name, r.Version
	if name == "" {
		name = "uebung"
	}
	if version == "" {
		version = "dev"
	}
	srv := NewServer(name, version, NewService(r.Service))

	switch r.Transport {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		logging.OrNop(r.Log).Infow("serving mcp", "transport", TransportStdio)
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", r.Transport)
	}
}

// NewServer builds the MCP server with every practice tool and resource.
func NewServer(name, version string, svc *Service) *server.MCPServer {
	srv := server.NewMCPServer(
		name+" MCP",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read practice plans, exercises and scale coverage, and record practice logs."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	log := logging.OrNop(r.Log)

	addr := r.HTTPListenAddr
	if addr == "" {
		addr = "127.0.0.1:8080"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle(r.endpoint(), server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	log.Infow("serving mcp", "transport", TransportHTTP, "url", r.URL(ln.Addr()))
	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Warnw("mcp shutdown", "error", err)
			return
		}
		log.Infow("mcp server stopped")
	}()

	if r.tls() {
		err = httpSrv.ServeTLS(ln, r.HTTPServerCert, r.HTTPServerKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
