package signal

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"ZramManager/internal/api/router"
	"ZramManager/internal/app"
	"ZramManager/internal/pkg/logger"
)

var (
	cleanupMu    sync.Mutex
	cleanupFuncs []func()
)

// RegisterCleanupFunc adds a function run on termination, before the services are stopped
func RegisterCleanupFunc(f func()) {
	cleanupMu.Lock()
	defer cleanupMu.Unlock()
	cleanupFuncs = append(cleanupFuncs, f)
}

func runCleanup() {
	cleanupMu.Lock()
	funcs := cleanupFuncs
	cleanupFuncs = nil
	cleanupMu.Unlock()

	for i := len(funcs) - 1; i >= 0; i-- {
		funcs[i]()
	}
}

// HandleSignals blocks until SIGINT or SIGTERM, then shuts everything down and exits
func HandleSignals(application *app.Application, builder *router.Builder) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	sig := waitForTermination(sigChan)
	logger.Info("Received termination signal, shutting down...",
		logger.String("signal", sig.String()))

	runCleanup()
	builder.Shutdown()
	application.Shutdown()
	os.Exit(0)
}

// waitForTermination returns the first SIGINT or SIGTERM read from sigChan
func waitForTermination(sigChan <-chan os.Signal) os.Signal {
	for sig := range sigChan {
		switch sig {
		case syscall.SIGINT, syscall.SIGTERM:
			return sig
		case syscall.SIGHUP:
			logger.Info("Received SIGHUP signal, restart the service to apply configuration changes")
		}
	}
	return syscall.SIGTERM
}
