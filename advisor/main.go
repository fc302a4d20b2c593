// Command advisor serves the chat and resume analysis backend used by the
// CareerCompass web service.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/advisor"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/config"
	logger "github.com/NoorJehan20/CareerCompass-FYP/internal/logging"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	root, err := os.Getwd()
	if err != nil {
		panic("failed to resolve working directory: " + err.Error())
	}

	boot, _ := zap.NewDevelopment()
	conf, err := config.Init(root, boot)
	if err != nil {
		boot.Fatal("Failed to load configuration", zap.Error(err))
	}

	log, err := logger.Init(root, conf.Logging)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()
	log = log.Named("advisor")

	apiKey := conf.Advisor.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		log.Fatal("Empty GEMINI_API_KEY in environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chat, err := advisor.NewGeminiChat(ctx, apiKey, conf.Advisor.Model)
	if err != nil {
		log.Fatal("Failed to create chat model", zap.Error(err))
	}
	extractor, err := advisor.NewAgentExtractor(ctx, apiKey, conf.Advisor.Model)
	if err != nil {
		log.Fatal("Failed to create resume agent", zap.Error(err))
	}

	opts := []advisor.Option{advisor.WithMaxUpload(conf.Advisor.MaxUpload)}
	if conf.Archive.Enabled {
		archive, err := advisor.NewS3Archive(ctx, conf.Archive)
		if err != nil {
			log.Fatal("Failed to configure resume archive", zap.Error(err))
		}
		opts = append(opts, advisor.WithArchive(archive))
		log.Info("Archiving uploaded resumes", zap.String("bucket", conf.Archive.Bucket))
	}

	srv := &http.Server{
		Addr:              ":" + conf.Advisor.Port,
		Handler:           advisor.NewServer(log, chat, extractor, opts...).Routes(conf.Advisor.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Advisor listening on http://localhost" + srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to run advisor", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Advisor shutdown failed", zap.Error(err))
	}
}
