package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/unielect/audit"
	"github.com/danielhkuo/unielect/biometric"
	"github.com/danielhkuo/unielect/cliparse"
	"github.com/danielhkuo/unielect/db"
	"github.com/danielhkuo/unielect/identity"
	"github.com/danielhkuo/unielect/ledger"
	"github.com/danielhkuo/unielect/middleware"
	"github.com/danielhkuo/unielect/router"
	"github.com/danielhkuo/unielect/session"
)

func main() {
	// Load .env if present; real deployments set env directly
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Wire the election services
	store := identity.NewSQLStore(dbConn)
	matcher := biometric.NewTemplateMatcher(store)
	authLog := session.NewAuditLog()
	sessions := session.NewManager(store, matcher, authLog,
		cfg.MatchThreshold, cfg.CaptureTimeout, cfg.LogHashSalt)

	votes, err := ledger.New(store, ledger.NewSQLJournal(dbConn), cfg.LogHashSalt)
	if err != nil {
		slog.Error("ledger replay failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Ledger ready", "sequence", votes.LatestSequence())

	auditor := audit.NewAuditor(votes)
	poller := audit.NewPoller(votes, cfg.PollInterval)

	pollCtx, stopPoller := context.WithCancel(context.Background())
	defer stopPoller()
	go poller.Run(pollCtx)

	// Create router
	mux := router.NewRouter(router.Deps{
		Store:    store,
		Sessions: sessions,
		Votes:    votes,
		Auditor:  auditor,
		Poller:   poller,
		AuthLog:  authLog,
	}, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		stopPoller()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
