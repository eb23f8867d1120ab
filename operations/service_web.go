package operations

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/mongodb/grip/message"
	"github.com/mongodb/grip/recovery"
	"github.com/mongodb/grip/send"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"github.com/web420/web420"
	"github.com/web420/web420/model/customer"
	"github.com/web420/web420/rest/data"
	"github.com/web420/web420/rest/route"
)

func startWebService() cli.Command {
	return cli.Command{
		Name:   "web",
		Usage:  "start the web420 API server",
		Flags:  optionalConfigFlags(),
		Before: requireFileExistsIfSet(confFlagName),
		Action: func(c *cli.Context) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			env, err := environmentFromFlags(ctx, c)
			grip.EmergencyFatal(errors.Wrap(err, "configuring application environment"))

			settings := env.Settings()
			sender, err := settings.GetSender()
			grip.EmergencyFatal(err)
			grip.EmergencyFatal(withThreshold(sender, grip.GetSender().Level().Threshold))
			grip.EmergencyFatal(grip.SetSender(sender))
			defer sender.Close()
			defer recovery.LogStackTraceAndExit("web420 web service")

			grip.EmergencyFatal(customer.EnsureIndexes(ctx, env.Store()))

			handler, err := route.GetHandler(data.NewDBConnector(env))
			if err != nil {
				return errors.Wrap(err, "building API handler")
			}

			server := getServer(fmt.Sprintf("%s:%d", settings.Api.Host, settings.Api.Port), handler)

			serviceWait := make(chan struct{})
			go func() {
				defer close(serviceWait)
				defer recovery.LogStackTraceAndContinue("web420 API server")
				err := server.ListenAndServe()
				grip.ErrorWhen(err != http.ErrServerClosed, errors.Wrap(err, "running API server"))
			}()

			gracefulWait := make(chan struct{})
			shutdownTimeout := time.Duration(settings.ShutdownWaitSeconds) * time.Second
			go gracefulShutdownForSignal(ctx, server, gracefulWait, shutdownTimeout)

			<-serviceWait
			// the server can also stop without a signal, e.g. when the port is taken
			cancel()
			<-gracefulWait

			closeCtx, closeCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer closeCancel()

			return errors.Wrap(env.Close(closeCtx), "closing application environment")
		},
	}
}

// withThreshold applies the threshold chosen with --level, which the
// process sender already carries, to a sender built from settings.
func withThreshold(sender send.Sender, threshold level.Priority) error {
	info := sender.Level()
	info.Threshold = threshold
	return errors.Wrap(sender.SetLevel(info), "setting log threshold")
}

// getServer produces an HTTP server instance for a handler.
func getServer(addr string, n http.Handler) *http.Server {
	grip.Notice(message.Fields{
		"action":  "starting service",
		"service": addr,
		"build":   web420.BuildRevision,
		"process": grip.Name(),
	})

	return &http.Server{
		Addr:              addr,
		Handler:           n,
		ReadTimeout:       time.Minute,
		ReadHeaderTimeout: 30 * time.Second,
		WriteTimeout:      time.Minute,
	}
}

// gracefulShutdownForSignal stops the server on SIGINT or SIGTERM and
// lets in-flight requests finish within the timeout.
func gracefulShutdownForSignal(ctx context.Context, server *http.Server, gracefulWait chan struct{}, timeout time.Duration) {
	defer close(gracefulWait)

	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		grip.Info(message.Fields{
			"message": "received signal, shutting down",
			"signal":  sig.String(),
		})
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	grip.Warning(errors.Wrap(server.Shutdown(shutdownCtx), "shutting down API server"))
	grip.Info("API server stopped")
}
