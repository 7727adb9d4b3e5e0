package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fn7-backend/internal/config"
	"fn7-backend/internal/domain/user"
	"fn7-backend/internal/firebase"
	apihttp "fn7-backend/internal/http"
	"fn7-backend/internal/logging"
	"fn7-backend/internal/sdk"
	"fn7-backend/internal/sdk/memory"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.Load()

	log := logging.New(cfg)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	sdkLog := logging.SDK(log, cfg)

	handle, closeSDK := newSDKHandle(ctx, cfg, sdkLog)
	defer closeSDK()
	if err := handle.InitErr(); err != nil {
		log.Warn("failed to initialize SDK; /api endpoints will answer 500",
			"backend", cfg.SDKBackend, "error", err,
			"hint", "set FIREBASE_SERVICE_ACCOUNT_JSON or FIREBASE_SERVICE_ACCOUNT_PATH")
	} else {
		log.Info("SDK initialized", "backend", cfg.SDKBackend, "project", cfg.ProjectID)
	}

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Cfg:    cfg,
		Logger: log,
		SDK:    handle,
		Users:  user.NewRepo(handle),
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	go func() {
		log.Info("API listening", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("shutting down")
	_ = srv.Shutdown(ctxShutdown)
}

// newSDKHandle constructs the SDK once. A construction failure is kept in the
// handle rather than stopping the process, so /health can report it.
func newSDKHandle(ctx context.Context, cfg config.Config, log hclog.Logger) (sdk.Handle, func()) {
	if cfg.SDKBackend == config.BackendMemory {
		return sdk.Ready(memory.New(cfg.SDKDefaultUID, log)), func() {}
	}

	fsSDK, err := firebase.NewSDK(ctx, cfg, log)
	if err != nil {
		return sdk.Failed(err), func() {}
	}
	return sdk.Ready(fsSDK), fsSDK.Close
}
