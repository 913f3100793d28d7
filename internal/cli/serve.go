package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	httpAdapter "github.com/aretw0/kinetic/pkg/adapters/http"
	"github.com/aretw0/kinetic/pkg/observability"
	"github.com/aretw0/kinetic/pkg/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ServeOptions configures the serve command.
type ServeOptions struct {
	File  string
	Port  string
	Debug bool
}

const shutdownTimeout = 5 * time.Second

// Serve runs the HTTP preview service until ctx is cancelled.
func Serve(ctx *SignalContext, opts ServeOptions, w io.Writer) error {
	logger := createLogger(opts.Debug)

	reg := registry.NewRegistry()
	if opts.File != "" {
		f, err := os.Open(opts.File)
		if err != nil {
			return fmt.Errorf("failed to open definitions: %w", err)
		}
		err = reg.Load(f)
		f.Close()
		if err != nil {
			return err
		}
	}

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics(promReg)
	if err != nil {
		return err
	}

	handler := httpAdapter.NewHandler(reg,
		httpAdapter.WithGatherer(promReg),
		httpAdapter.WithLifecycleHooks(observability.Merge(metrics.Hooks(), createDebugHooks(logger, opts.Debug))),
		httpAdapter.WithLogger(logger),
	)

	srv := &http.Server{
		Addr:              ":" + opts.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		fmt.Fprintf(w, "Starting kinetic server on %s\n", srv.Addr)
		fmt.Fprintf(w, "Triggers loaded: %d\n", len(reg.Names()))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		fmt.Fprintf(w, "\nStart shutdown... Signal: %v\n", ctx.Signal())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		fmt.Fprintln(w, "kinetic server stopped gracefully")
		return nil
	}
}
