package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-match-backend/internal/analyses"
	googleauth "resume-match-backend/internal/auth"
	"resume-match-backend/internal/embedding"
	"resume-match-backend/internal/interviews"
	"resume-match-backend/internal/jobs"
	"resume-match-backend/internal/llm"
	"resume-match-backend/internal/llm/groq"
	"resume-match-backend/internal/match"
	"resume-match-backend/internal/parse"
	"resume-match-backend/internal/resumes"
	"resume-match-backend/internal/shared/config"
	"resume-match-backend/internal/shared/metrics"
	"resume-match-backend/internal/shared/server/middleware"
	"resume-match-backend/internal/shared/server/respond"
	"resume-match-backend/internal/shared/storage/db"
	localstore "resume-match-backend/internal/shared/storage/object/local"
	"resume-match-backend/internal/suggest"
	"resume-match-backend/internal/users"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(cfg.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"ANALYZE": {Rate: 10.0 / 60.0, Burst: 5},
				"UPLOAD":  {Rate: 20.0 / 60.0, Burst: 10},
			},
			GroupFor: rateLimitGroup,
		}),
	)

	// Dependencies
	store := localstore.New(cfg.LocalStoreDir)
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	llmClient := llm.Disabled()
	groqClient, err := groq.NewClient(cfg.GroqAPIKey, cfg.LLMModel)
	if err != nil {
		log.Printf("groq client not configured: %v", err)
	} else {
		llmClient = llm.WithRetry(groqClient)
	}

	oracle := buildOracle(cfg, llmClient)
	analyzer := match.NewAnalyzer(oracle)

	resumeParser := &parse.ResumeParser{Client: llmClient}
	jdParser := &parse.JDParser{Client: llmClient}
	suggester := &suggest.Generator{Client: llmClient}

	var resumeRepo resumes.Repo
	var jobRepo jobs.Repo
	var analysisRepo analyses.Repo
	var interviewRepo interviews.Repo
	var userRepo users.Repo
	if sqlDB != nil {
		resumeRepo = &resumes.PGRepo{DB: sqlDB}
		jobRepo = &jobs.PGRepo{DB: sqlDB}
		analysisRepo = &analyses.PGRepo{DB: sqlDB}
		interviewRepo = &interviews.PGRepo{DB: sqlDB}
		userRepo = &users.PGRepo{DB: sqlDB}
	} else {
		resumeRepo = resumes.NewMemoryRepo()
		jobRepo = jobs.NewMemoryRepo()
		analysisRepo = analyses.NewMemoryRepo()
		interviewRepo = interviews.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	userSvc := users.NewService(userRepo)
	resumeSvc := &resumes.Service{Store: store, Repo: resumeRepo, Parser: resumeParser}
	jobSvc := &jobs.Service{Repo: jobRepo, Parser: jdParser}
	analysisSvc := &analyses.Service{
		Repo:       analysisRepo,
		ResumeRepo: resumeRepo,
		JobRepo:    jobRepo,
		Analyzer:   analyzer,
		Suggester:  suggester,
	}
	interviewSvc := &interviews.Service{
		Repo:         interviewRepo,
		ResumeRepo:   resumeRepo,
		JobRepo:      jobRepo,
		AnalysisRepo: analysisRepo,
		Generator:    &interviews.Generator{Client: llmClient},
	}
	googleAuthSvc := googleauth.NewGoogleService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL, userSvc)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	googleAuthSvc.RegisterRoutes(api)
	users.NewHandler(userSvc).RegisterRoutes(api)
	resumes.NewHandler(resumeSvc).RegisterRoutes(api)
	jobs.NewHandler(jobSvc).RegisterRoutes(api)
	analyses.NewHandler(analysisSvc).RegisterRoutes(api)
	interviews.NewHandler(interviewSvc).RegisterRoutes(api)

	return r
}

// buildOracle picks the similarity strategy from configuration. The LLM
// judge is the default; cosine over sentence embeddings is opt-in.
func buildOracle(cfg config.Config, llmClient llm.Client) match.Oracle {
	if cfg.OracleStrategy == "embedding" {
		embedder, err := embedding.NewClient(cfg.EmbeddingURL)
		if err != nil {
			log.Printf("embedding client not configured, using llm oracle: %v", err)
		} else {
			return &match.EmbeddingOracle{Embedder: embedder}
		}
	}
	return &match.LLMOracle{Client: llmClient}
}

func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return ""
	}
	switch c.FullPath() {
	case "/api/v1/analyses", "/api/v1/interviews":
		return "ANALYZE"
	case "/api/v1/resumes", "/api/v1/jobs":
		return "UPLOAD"
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
