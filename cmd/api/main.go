package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wcontent-api/internal/application/notification"
	"github.com/wcontent-api/internal/application/verification"
	"github.com/wcontent-api/internal/config"
	awsinfra "github.com/wcontent-api/internal/infrastructure/aws"
	"github.com/wcontent-api/internal/infrastructure/dynamo"
	"github.com/wcontent-api/internal/infrastructure/google"
	jwtinfra "github.com/wcontent-api/internal/infrastructure/jwt"
	"github.com/wcontent-api/internal/infrastructure/memory"
	redisinfra "github.com/wcontent-api/internal/infrastructure/redis"
	s3infra "github.com/wcontent-api/internal/infrastructure/s3"
	"github.com/wcontent-api/internal/infrastructure/smtp"
	"github.com/wcontent-api/internal/infrastructure/sns"
	"github.com/wcontent-api/internal/pkg/clock"
	"github.com/wcontent-api/internal/pkg/dispatch"
	transporthttp "github.com/wcontent-api/internal/transport/http"
)

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()
	setupLogger(cfg)
	if envErr != nil {
		slog.Info("no .env file found, reading from environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func setupLogger(cfg *config.Config) {
	var h slog.Handler
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(h))
}

func run(ctx context.Context, cfg *config.Config) error {
	awsCfg, err := awsinfra.LoadConfig(ctx, cfg, "")
	if err != nil {
		return err
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(awsCfg, cfg.AWSEndpointURL)
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)

	otpStore, err := newOTPStore(ctx, cfg, dynamoClient)
	if err != nil {
		return err
	}

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		if cfg.IsProduction() {
			return fmt.Errorf("jwt provider: %w", err)
		}
		slog.Warn("JWT keys not available, using a process-local key pair", "err", err)
		if jwtProvider, err = jwtinfra.NewEphemeralProvider(cfg.JWTIssuer, cfg.JWTExpiry); err != nil {
			return err
		}
	}

	var events sns.EventPublisher
	if cfg.SNSTopicARN != "" {
		snsCfg, err := awsinfra.LoadConfig(ctx, cfg, cfg.SNSRegion)
		if err != nil {
			return err
		}
		events = sns.NewPublisher(snsCfg, cfg.AWSEndpointURL, cfg.SNSTopicARN)
	}

	runner := dispatch.NewRunner(cfg.NotifyMaxWorkers, 30*time.Second)
	notifier := notification.NewNotifier(notification.NotifierDeps{
		Mailer:  smtp.NewMailer(cfg),
		Events:  events,
		Runner:  runner,
		BaseURL: cfg.AppBaseURL,
		OTPTTL:  cfg.OTPTTL,
	})

	if cfg.GoogleClientID == "" {
		slog.Warn("GOOGLE_CLIENT_ID not set, google sign-in will be rejected")
	}

	deps := &transporthttp.Deps{
		Accounts:       dynamo.NewAccountRepo(dynamoClient, cfg.DynamoTables.Accounts),
		Opportunities:  dynamo.NewOpportunityRepo(dynamoClient, cfg.DynamoTables.Opportunities),
		Collaborations: dynamo.NewCollaborationRepo(dynamoClient, cfg.DynamoTables.Collaborations),
		OTPStore:       otpStore,
		Resumes:        s3infra.NewStore(s3infra.NewClient(awsCfg, cfg.AWSEndpointURL), cfg.S3BucketName),
		Notifier:       notifier,
		JWTProvider:    jwtProvider,
		Google:         google.NewVerifier(cfg.GoogleClientID),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      transporthttp.NewRouter(cfg, deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv, "otp_store", cfg.OTPStore, "auth_enforced", cfg.AuthEnforced)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	runner.Wait()
	slog.Info("server stopped")
	return nil
}

// newOTPStore picks the backend named by OTP_STORE.
func newOTPStore(ctx context.Context, cfg *config.Config, dynamoClient dynamo.API) (verification.Store, error) {
	switch cfg.OTPStore {
	case config.OTPStoreRedis:
		rdb, err := redisinfra.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return redisinfra.NewOTPStore(rdb), nil
	case config.OTPStoreDynamo:
		return dynamo.NewOTPStore(dynamoClient, cfg.DynamoTables.OTPCodes, clock.New()), nil
	case config.OTPStoreMemory, "":
		s := memory.NewOTPStore(clock.New())
		go s.Run(ctx, time.Minute)
		return s, nil
	default:
		return nil, fmt.Errorf("unknown OTP_STORE %q", cfg.OTPStore)
	}
}
