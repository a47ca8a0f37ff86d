package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/cv-interviewer/internal/config"
	"alfredoptarigan/cv-interviewer/internal/handlers"
	"alfredoptarigan/cv-interviewer/internal/repositories"
	"alfredoptarigan/cv-interviewer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initializes repositories
	docRepo := repositories.NewDocumentRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractor := services.NewExtractorService()

	rules, err := services.LoadRules(cfg.Classifier.RulesPath)
	if err != nil {
		log.Fatalf("❌ Failed to load classifier rules: %v", err)
	}

	classifier, err := services.NewClassifierService(rules)
	if err != nil {
		log.Fatalf("❌ Failed to initialize classifier: %v", err)
	}

	formatter := services.NewFormatterService()
	summarizer := services.NewSummarizerService(classifier, formatter)
	log.Println("✅ Summarization services initialized successfully")

	// Initialize knowledge base. The interview works without it, so a
	// failure here only disables prompt enrichment.
	knowledgeService := initKnowledgeBase(cfg)

	// Initialize LLM client
	llmClient := services.NewLLMClient(
		cfg.LLM.APIURL,
		cfg.LLM.APIKey,
		cfg.LLM.Model,
		cfg.LLM.Timeout,
	)
	log.Println("✅ LLM client initialized successfully")

	promptBuilder := services.NewPromptBuilder()
	questionService := services.NewQuestionService(llmClient, promptBuilder, knowledgeService)
	scorerService := services.NewScorerService(llmClient, promptBuilder, knowledgeService)

	interviewService := services.NewInterviewService(
		questionService,
		scorerService,
		llmClient,
		promptBuilder,
		interviewRepo,
	)
	log.Println("✅ Interview service initialized")

	// Initialize worker
	worker := services.NewWorker(interviewService, cfg.Worker.Concurrency)
	interviewService.SetWorker(worker)

	ctx := context.Background()
	worker.Start(ctx)

	// Speech services
	ttsService := services.NewTTSService(cfg.Speech.TTSURL)
	sttService := services.NewSTTService(cfg.Speech.RecognizeURL, cfg.Speech.RecognizeKey)

	// Initialize Handlers
	uploadHandler := handlers.NewUploadHandler(
		docRepo,
		storageService,
		extractor,
		summarizer,
		cfg.Storage.MaxFileSize,
	)
	summaryHandler := handlers.NewSummaryHandler(summarizer, extractor, docRepo)
	interviewHandler := handlers.NewInterviewHandler(
		interviewService,
		docRepo,
		sttService,
		cfg.Interview.NumQuestions,
	)
	speechHandler := handlers.NewSpeechHandler(ttsService, sttService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Interview Assistant API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/upload", uploadHandler.HandleUpload)
	api.Post("/summarize", summaryHandler.HandleSummarize)
	api.Post("/interview/start", interviewHandler.HandleStart)
	api.Post("/interview/:id/answer", interviewHandler.HandleAnswer)
	api.Get("/interview/:id", interviewHandler.HandleGet)
	api.Get("/interview/:id/result", interviewHandler.HandleResult)
	api.Get("/interview/:id/transcript", interviewHandler.HandleTranscript)
	api.Post("/interview/:id/notes", interviewHandler.HandleAddNote)
	api.Post("/interview/:id/chat", interviewHandler.HandleChat)
	api.Post("/tts", speechHandler.HandleTTS)
	api.Post("/stt", speechHandler.HandleSTT)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Interview Assistant API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload",
				"POST /api/v1/summarize",
				"POST /api/v1/interview/start",
				"POST /api/v1/interview/:id/answer",
				"GET /api/v1/interview/:id",
				"GET /api/v1/interview/:id/result",
				"GET /api/v1/interview/:id/transcript",
				"POST /api/v1/interview/:id/notes",
				"POST /api/v1/interview/:id/chat",
				"POST /api/v1/tts",
				"POST /api/v1/stt",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func initKnowledgeBase(cfg *config.Config) services.KnowledgeService {
	embedder, err := services.NewEmbeddingService(cfg.Gemini.APIKey)
	if err != nil {
		log.Printf("⚠️ Knowledge base disabled, embedding init failed: %v", err)
		return nil
	}

	knowledgeService, err := services.NewKnowledgeService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		embedder,
	)
	if err != nil {
		log.Printf("⚠️ Knowledge base disabled, Qdrant init failed: %v", err)
		return nil
	}

	if err := knowledgeService.InitCollection(); err != nil {
		log.Printf("⚠️ Knowledge base disabled, collection init failed: %v", err)
		return nil
	}

	log.Println("✅ Knowledge base initialized successfully")
	return knowledgeService
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
