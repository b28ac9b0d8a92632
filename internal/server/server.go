// Package server drives the connection state machine: the receive
// loop (component F), the send loop (component G), and the session
// driver (component H) that ties them together over net.Conn, adapted
// from the teacher's flat accept/handle loop but generalized to the
// full recv/handle/send/keep-alive cycle and errgroup-supervised
// shutdown.
package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"httpcore/internal/config"
	"httpcore/internal/httperr"
	"httpcore/internal/httpwire"
	"httpcore/internal/obs"
	"httpcore/internal/request"
	"httpcore/internal/response"
)

// Handler produces a response for a fully-parsed request. It must not
// retain req or its Body slice beyond the call.
type Handler func(req *request.Request) *response.Response

// Server owns the listener and supervises one goroutine per accepted
// connection.
type Server struct {
	cfg     config.Config
	handler Handler
	logger  *zap.Logger
	metrics *obs.Metrics
}

// New constructs a Server. logger and metrics may be nil, in which case
// a no-op logger and a disabled metrics sink are used.
func New(cfg config.Config, handler Handler, logger *zap.Logger, metrics *obs.Metrics) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{cfg: cfg, handler: handler, logger: logger, metrics: metrics}
}

// Serve listens on cfg.ListenAddr and runs the accept loop until ctx is
// cancelled; it returns once every in-flight session has wound down.
func (s *Server) Serve(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.ListenAddr, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-gctx.Done()
		return ln.Close()
	})

	g.Go(func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}
				return err
			}
			g.Go(func() error {
				s.runSession(gctx, conn)
				return nil
			})
		}
	})

	return g.Wait()
}

// runSession implements component H's on_accept pseudocode: recv,
// handle (panic-recovered), send, then decide keep_alive.
func (s *Server) runSession(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	// Cancelling ctx closes conn, so a shutdown interrupts an in-flight
	// read or write instead of waiting out its deadline.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	sess := newSession()
	if s.metrics != nil {
		s.metrics.SessionAccepted()
		defer func() { s.metrics.SessionClosed(sess.ReuseCount) }()
	}
	log := s.logger.With(zap.Uint64("session_id", sess.ID), zap.String("remote", conn.RemoteAddr().String()))

	limits := s.cfg.Limits()

	for {
		start := time.Now()
		req, err := recvRequest(ctx, conn, limits, s.cfg.RecvKeepaliveTimeout, s.cfg.RecvTotalTimeout)
		if err != nil {
			s.logTerminal(log, err, sess)
			return
		}

		resp, transportErr := s.invokeHandler(log, req)

		if _, werr := sendResponse(ctx, conn, resp, s.cfg.SendTotalTimeout); werr != nil {
			s.logTerminal(log, werr, sess)
			return
		}

		sess.ReuseCount++
		if s.metrics != nil {
			s.metrics.RequestHandled(req.Method.String(), time.Since(start).Seconds())
		}

		if !keepAlive(req, resp, sess, s.cfg.KeepAliveMaxReuse, transportErr) {
			return
		}
	}
}

// invokeHandler calls s.handler with panic recovery (idiom adapted
// from a recovery middleware: a recovered panic becomes a best-effort
// 500 and is treated as a transport error for keep_alive condition iv)
// so a panicking handler never takes down the accept loop.
func (s *Server) invokeHandler(log *zap.Logger, req *request.Request) (resp *response.Response, transportErr bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("handler panicked", zap.Any("panic", r))
			resp = response.New(httpwire.StatusCode(500))
			resp.Headers.Add(httpwire.HeaderConnection, "close")
			resp.Body = []byte("Internal Server Error")
			resp.Headers.Add(httpwire.HeaderContentLength, fmt.Sprint(len(resp.Body)))
			transportErr = true
		}
	}()
	resp = s.handler(req)
	return resp, false
}

func (s *Server) logTerminal(log *zap.Logger, err error, sess *Session) {
	fields := []zap.Field{zap.Error(err), zap.Int("reuse_count", sess.ReuseCount)}
	if kind, ok := httperr.KindOf(err); ok {
		fields = append(fields, zap.String("kind", string(kind)), zap.String("family", kind.Family().String()))
	}
	if s.metrics != nil {
		s.metrics.ErrorObserved(err)
	}
	log.Warn("session closed", fields...)
}
