package app

import (
	"net"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-forge/internal/logger"
)

// Serve runs server on ln until a signal arrives on quit. It then stops
// accepting connections, lets in-flight requests drain for up to
// drainTimeout and calls onStop. Serve returns only after onStop is done,
// so per-request cleanup is never cut short by the process exiting.
func Serve(server *fiber.App, ln net.Listener, quit <-chan os.Signal, drainTimeout time.Duration, onStop func()) error {
	done := make(chan struct{})

	go func() {
		defer close(done)
		sig, ok := <-quit
		if ok {
			logger.Infof("🛑 Received %s, shutting down server...", sig)
		}
		if err := server.ShutdownWithTimeout(drainTimeout); err != nil {
			logger.Errorf("❌ Server forced to shutdown: %v", err)
		}
		if onStop != nil {
			onStop()
		}
	}()

	if err := server.Listener(ln); err != nil {
		return err
	}

	<-done
	logger.Infof("✅ Server stopped")
	return nil
}
