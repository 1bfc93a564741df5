package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/mysite/auth"
	"github.com/danielhkuo/mysite/cliparse"
	"github.com/danielhkuo/mysite/db"
	"github.com/danielhkuo/mysite/logging"
	"github.com/danielhkuo/mysite/middleware"
	"github.com/danielhkuo/mysite/polls"
	"github.com/danielhkuo/mysite/render"
	"github.com/danielhkuo/mysite/router"
	"github.com/danielhkuo/mysite/session"
)

func main() {
	var err error

	if err := cliparse.LoadEnvFile(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Subcommands
	args := os.Args[1:]
	command := "serve"
	if len(args) > 0 && (args[0] == "admin-key" || args[0] == "clearsessions" || args[0] == "serve") {
		command, args = args[0], args[1:]
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(args)
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		slog.Error("Error configuring logger", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	switch command {
	case "admin-key":
		fmt.Println(auth.GenerateAdminKey(auth.AdminScope, cfg.AdminKeySalt))
		return
	case "clearsessions":
		if err := clearSessions(cfg); err != nil {
			slog.Error("clearsessions failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Question storage
	var store polls.Repository
	var dbConn *sql.DB
	if cfg.DatabaseType == cliparse.DatabaseMemory {
		store = polls.NewMemoryStore()
		slog.Warn("using in-memory question store; data is lost on exit")
	} else {
		dbConn, err = openDatabase(cfg)
		if err != nil {
			slog.Error("database setup failed", "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()
		store = db.NewPollStore(dbConn)
	}

	// Sessions
	sessionStore, closeSessions, err := openSessionStore(cfg, dbConn)
	if err != nil {
		slog.Error("session store setup failed", "error", err)
		os.Exit(1)
	}
	defer closeSessions()

	renderer, err := render.New()
	if err != nil {
		slog.Error("template parsing failed", "error", err)
		os.Exit(1)
	}

	// Create router
	mux := router.NewRouter(router.Deps{
		Store:    store,
		Sessions: session.NewManager(sessionStore, cfg.SessionSecret, cfg.SessionTTL),
		Renderer: renderer,
		Metrics:  middleware.NewMetrics(),
		Config:   cfg,
	})

	// Create server
	server := http.Server{
		Handler:           mux,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "database", cfg.DatabaseType, "sessions", cfg.SessionBackend)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

func openDatabase(cfg cliparse.Config) (*sql.DB, error) {
	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Create schema (tables)
	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		conn.Close()
		return nil, err
	}
	slog.Info("Database schema ready", "driver", cfg.DatabaseType)

	return conn, nil
}

// openSessionStore returns the configured store and a func releasing it
func openSessionStore(cfg cliparse.Config, conn *sql.DB) (session.Store, func(), error) {
	switch cfg.SessionBackend {
	case cliparse.SessionBackendSQL:
		return session.NewSQLStore(conn), func() {}, nil
	case cliparse.SessionBackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rs, err := session.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { rs.Close() }, nil
	default:
		ms := session.NewMemoryStore()
		ticker := time.NewTicker(session.SweepInterval)
		done := make(chan struct{})
		go func() {
			for {
				select {
				case <-ticker.C:
					n, _ := ms.ClearExpired(context.Background())
					if n > 0 {
						slog.Debug("expired sessions cleared", "count", n)
					}
				case <-done:
					return
				}
			}
		}()
		return ms, func() {
			ticker.Stop()
			close(done)
		}, nil
	}
}

// clearSessions deletes expired rows from the SQL session table. Redis
// expires keys itself and the memory store is swept by the running server.
func clearSessions(cfg cliparse.Config) error {
	if cfg.SessionBackend != cliparse.SessionBackendSQL {
		slog.Info("nothing to clear", "sessions", cfg.SessionBackend)
		return nil
	}

	conn, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	n, err := session.NewSQLStore(conn).ClearExpired(context.Background())
	if err != nil {
		return err
	}
	slog.Info("expired sessions cleared", "count", n)
	return nil
}
