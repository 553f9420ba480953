package graceful

import (
	"context"
	"database/sql"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitfinek-invest/invest_service/pkg/logger"
)

// DefaultTimeout bounds the whole teardown sequence.
const DefaultTimeout = 30 * time.Second

// Shutdowner is implemented by components that need orderly teardown
// before the HTTP server stops accepting connections is drained.
type Shutdowner interface {
	Shutdown(timeout time.Duration) error
}

// ShutdownManager tears the process down in order: registered
// components first, then the HTTP server, then the database.
type ShutdownManager struct {
	server     *http.Server
	db         *sql.DB
	components []Shutdowner
	timeout    time.Duration
	log        *logger.Logger
}

func NewShutdownManager(server *http.Server, db *sql.DB, log *logger.Logger) *ShutdownManager {
	return &ShutdownManager{
		server:  server,
		db:      db,
		timeout: DefaultTimeout,
		log:     log,
	}
}

// Register adds a component to shut down before the HTTP server.
// Components stop in registration order.
func (m *ShutdownManager) Register(s Shutdowner) {
	m.components = append(m.components, s)
}

// WaitForShutdown blocks until SIGINT or SIGTERM, then runs the teardown
// sequence. It returns once everything has stopped or the timeout expires.
func (m *ShutdownManager) WaitForShutdown() {
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	m.log.Info("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	for _, s := range m.components {
		if err := s.Shutdown(m.timeout); err != nil {
			m.log.Warn("Component shutdown error", "error", err)
		}
	}

	if err := m.server.Shutdown(ctx); err != nil {
		m.log.Error("Server forced shutdown", "error", err)
	}

	// Database closes last so in-flight handlers can finish their queries.
	if m.db != nil {
		if err := m.db.Close(); err != nil {
			m.log.Warn("Database close error", "error", err)
		}
	}

	m.log.Info("Shutdown complete")
}
