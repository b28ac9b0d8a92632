package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"httpcore/internal/config"
	"httpcore/internal/httpwire"
	"httpcore/internal/obs"
	"httpcore/internal/request"
	"httpcore/internal/response"
	"httpcore/internal/server"
)

func main() {
	root := newServeCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newServeCommand() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "httpserver",
		Short: "A resumable HTTP/1.x core server.",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}

	flags := serveCmd.Flags()
	flags.StringVar(&cfg.ListenAddr, "listen-addr", cfg.ListenAddr, "address to listen on")
	flags.DurationVar(&cfg.RecvTotalTimeout, "recv-total-timeout", cfg.RecvTotalTimeout, "total time budget for receiving one request ('0' = unlimited)")
	flags.DurationVar(&cfg.RecvKeepaliveTimeout, "recv-keepalive-timeout", cfg.RecvKeepaliveTimeout, "idle timeout before the first byte of each request, including a connection's first")
	flags.DurationVar(&cfg.SendTotalTimeout, "send-total-timeout", cfg.SendTotalTimeout, "total time budget for sending one response")
	flags.IntVar(&cfg.LimitRequestLine, "limit-request-line", cfg.LimitRequestLine, "max request-line length in bytes")
	flags.IntVar(&cfg.LimitHeaderBytes, "limit-header-bytes", cfg.LimitHeaderBytes, "max total header block size in bytes")
	flags.IntVar(&cfg.LimitHeaderCount, "limit-header-count", cfg.LimitHeaderCount, "max number of header fields")
	flags.Int64Var(&cfg.LimitBodyBytes, "limit-body-bytes", cfg.LimitBodyBytes, "max request body size in bytes")
	flags.IntVar(&cfg.KeepAliveMaxReuse, "keep-alive-max-reuse", cfg.KeepAliveMaxReuse, "max requests served per connection before forced close")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flags.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "address to serve Prometheus metrics on")

	cmd.AddCommand(serveCmd)
	return cmd
}

func runServe(ctx context.Context, cfg config.Config) error {
	logger, err := obs.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	registry := prometheus.NewRegistry()
	metrics := obs.NewMetrics(registry)

	metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{})}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	srv := server.New(cfg, demoHandler, logger, metrics)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("server starting", zap.String("listen_addr", cfg.ListenAddr), zap.String("metrics_addr", cfg.MetricsAddr))

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ctx) }()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
		return <-errc
	case err := <-errc:
		return err
	}
}

// demoHandler mirrors the teacher's three canned routes, translated to
// the new Request/Response shapes.
func demoHandler(req *request.Request) *response.Response {
	switch req.Path {
	case "/yourproblem":
		return htmlResponse(httpwire.StatusCode(400), "400 Bad Request", "Bad Request", "Your request honestly kinda sucked.")
	case "/myproblem":
		return htmlResponse(httpwire.StatusCode(500), "500 Internal Server Error", "Internal Server Error", "Okay, you know what? This one is on me.")
	default:
		return htmlResponse(httpwire.StatusCode(200), "200 OK", "Success!", "Your request was an absolute banger.")
	}
}

func htmlResponse(status httpwire.StatusCode, title, heading, body string) *response.Response {
	resp := response.New(status)
	page := fmt.Sprintf("<html>\n  <head>\n    <title>%s</title>\n  </head>\n  <body>\n    <h1>%s</h1>\n    <p>%s</p>\n  </body>\n</html>\n", title, heading, body)
	resp.Body = []byte(page)
	resp.Headers.Add(httpwire.HeaderContentLength, fmt.Sprint(len(resp.Body)))
	resp.Headers.Add("Content-Type", "text/html")
	return resp
}
