package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/auth"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/config"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/database"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/gateway"
	logger "github.com/NoorJehan20/CareerCompass-FYP/internal/logging"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/repository"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// A missing .env is fine; the environment may already be set.
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

	// Initialize Logger
	log, err := logger.Init(root, conf.Logging)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Initialize Database
	db, err := database.Open(root, conf.Database, log)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}

	questions := repository.NewQuestionRepository(db)
	if err := seedQuestions(questions, resolve(root, conf.Quiz.QuestionsFile), log); err != nil {
		log.Fatal("Failed to seed question bank", zap.Error(err))
	}

	users := repository.NewUserRepository(db)
	conf.Server.StaticDir = resolve(root, conf.Server.StaticDir)
	advisor := gateway.New(conf.Gateway.BaseURL, conf.Gateway.Timeout, log)

	if conf.Server.SecureCookies {
		gin.SetMode(gin.ReleaseMode)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := router.Setup(ctx, log, conf, router.Deps{
		Users:     users,
		Questions: questions,
		History:   repository.NewHistoryRepository(db),
		Auth:      auth.NewProvider(users, conf.Server.AppID, log),
		Advisor:   advisor,
		Parser:    advisor,
	})

	srv := &http.Server{
		Addr:              ":" + conf.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening on http://localhost" + srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to run Gin server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
}

// seedQuestions fills an empty question bank from the seed file.
func seedQuestions(repo *repository.QuestionRepository, path string, log *zap.Logger) error {
	ctx := context.Background()
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	bank, err := repository.LoadQuestionBank(path)
	if err != nil {
		return err
	}
	if err := repo.Seed(ctx, bank); err != nil {
		return err
	}
	log.Info("Question bank seeded", zap.String("file", path), zap.Int("collections", len(bank)))
	return nil
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
