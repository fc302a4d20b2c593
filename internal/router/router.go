package router

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/auth"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/chat"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/config"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/handlers"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/quiz"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/repository"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pages of the web app. Each one is served the same static shell.
var pages = []string{
	"/",
	"/chatbot",
	"/resume-analyzer",
	"/resume-builder",
	"/interview-prep",
	"/mcqs",
	"/contact",
	"/auth",
}

// Deps are the shared handles the handlers are built from.
type Deps struct {
	Users     *repository.UserRepository
	Questions quiz.QuestionBank
	History   *repository.HistoryRepository
	Auth      *auth.Provider
	Advisor   chat.Advisor
	Parser    handlers.ResumeParser
}

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Try again later."})
}

// Setup builds the engine. Per-browser state is swept until ctx is done.
func Setup(ctx context.Context, log *zap.Logger, conf *config.Config, deps Deps) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   conf.Server.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("careercompass", store))

	// --- Now that sessions are initialized, other middleware can use them ---
	router.Use(SecurityHeaders(newSecure(conf.Server.SecureCookies), log))
	router.Use(BrowserSession(log))
	router.Use(CSRFProtection(log))
	router.Use(UserLoaderMiddleware(deps.Users, log))

	authHandler := handlers.NewAuthHandler(log, deps.Auth)
	userHandler := handlers.NewUserHandler(log, deps.Users)
	quizHandler := handlers.NewQuizHandler(log, deps.Questions, deps.History, conf.Quiz.Celebrate)
	chatHandler := handlers.NewChatHandler(log, deps.Advisor)
	resumeHandler := handlers.NewResumeHandler(log, deps.Parser, conf.Advisor.MaxUpload)
	historyHandler := handlers.NewHistoryHandler(log, deps.History)

	// Signing out leaves the browser with fresh component state.
	deps.Auth.OnAuthStateChanged(func(e auth.Event) {
		if e.User != nil {
			return
		}
		quizHandler.Forget(e.Session)
		chatHandler.Forget(e.Session)
		resumeHandler.Forget(e.Session)
	})

	// Browsers that never sign out, or never keep a cookie, are dropped once idle.
	idle, every := conf.Server.StateIdle, conf.Server.StateSweep
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	if every <= 0 {
		every = time.Minute
	}
	startJanitor(ctx, log.Named("state"), every, idle, quizHandler, chatHandler, resumeHandler)

	limit := conf.Server.AuthRateLimit
	if limit <= 0 {
		limit = 5
	}
	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: uint(limit),
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	api := router.Group("/api")
	{
		api.GET("/csrf", authHandler.CSRFToken)
		api.GET("/me", userHandler.Me)

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", limiter, authHandler.Register)
			authRoutes.POST("/login", limiter, authHandler.Login)
			authRoutes.POST("/logout", authHandler.Logout)
		}

		api.GET("/topics", quizHandler.Topics)
		quizRoutes := api.Group("/quiz")
		{
			quizRoutes.GET("", quizHandler.Show)
			quizRoutes.POST("", quizHandler.Start)
			quizRoutes.POST("/select", quizHandler.Select)
			quizRoutes.POST("/next", quizHandler.Next)
		}

		chatRoutes := api.Group("/chat")
		{
			chatRoutes.GET("", chatHandler.Show)
			chatRoutes.POST("", chatHandler.Open)
			chatRoutes.POST("/messages", chatHandler.Send)
		}

		resumeRoutes := api.Group("/resume")
		{
			resumeRoutes.POST("/upload", resumeHandler.Upload)
			resumeRoutes.GET("/analysis", resumeHandler.Analysis)
			resumeRoutes.GET("/templates", resumeHandler.Templates)
			resumeRoutes.POST("/render/:variant", resumeHandler.Render)
		}

		authorized := api.Group("")
		authorized.Use(AuthRequired())
		{
			authorized.PUT("/me", userHandler.UpdateInfo)
			authorized.DELETE("/me", userHandler.DeleteAccount)
			authorized.GET("/history", historyHandler.List)
			authorized.GET("/history/chart", historyHandler.Chart)
		}
	}

	staticDir := conf.Server.StaticDir
	router.Static("/assets", filepath.Join(staticDir, "assets"))
	index := filepath.Join(staticDir, "index.html")
	for _, page := range pages {
		router.GET(page, func(c *gin.Context) {
			c.File(index)
		})
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.File(index)
	})

	return router
}
