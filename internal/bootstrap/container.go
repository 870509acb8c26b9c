package bootstrap

import (
	"log"

	"ai-stemtutor-be/internal/config"
	"ai-stemtutor-be/internal/controller"
	"ai-stemtutor-be/internal/pkg/logger"
	"ai-stemtutor-be/internal/repository/contract"
	"ai-stemtutor-be/internal/repository/implementation"
	"ai-stemtutor-be/internal/repository/memory"
	"ai-stemtutor-be/internal/service"
	"ai-stemtutor-be/pkg/ai/preprocess"
	"ai-stemtutor-be/pkg/ai/provider"
	"ai-stemtutor-be/pkg/ai/retry"
	"ai-stemtutor-be/pkg/llm/factory"

	pktNats "ai-stemtutor-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AIController *controller.AIController

	// Background Services (Exposed for main.go to run)
	WorkerService service.IWorkerService

	Logger logger.ILogger
}

// NewContainer wires the whole subsystem. A nil db switches the interaction
// store to the in-memory repository, which is what the tests and local
// no-database runs use.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: int64(cfg.Ai.QueueSize)},
		watermillLogger,
	)

	// 3. LLM Provider based on Config
	llmClient, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	aiProvider := provider.New(llmClient)
	preprocessor := preprocess.NewPreprocessor(aiProvider, cfg.Ai.DefaultSubject)

	retryPolicy := retry.New(retry.Config{
		MaxAttempts: cfg.Ai.MaxAttempts,
		BaseDelay:   cfg.Ai.RetryBaseDelay,
		Multiplier:  cfg.Ai.RetryMultiplier,
		MaxDelay:    cfg.Ai.RetryMaxDelay,
	})

	// 4. Infrastructure
	// NATS is best-effort: lifecycle events stop flowing without it but the
	// subsystem keeps working.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// 5. Repositories
	var interactionRepo contract.InteractionRepository
	if db != nil {
		interactionRepo = implementation.NewInteractionRepository(db)
	} else {
		log.Println("[WARN] No database configured, using in-memory interaction store")
		interactionRepo = memory.NewInteractionRepository()
	}

	// 6. Services
	aiService := service.NewAIService(
		interactionRepo,
		preprocessor,
		aiProvider,
		retryPolicy,
		pubSub,
		cfg.Ai.SubmitTopic,
		natsPub,
		cfg.Ai.RequestTimeout,
		sysLogger,
	)

	workerService := service.NewWorkerService(
		pubSub,
		cfg.Ai.SubmitTopic,
		cfg.Ai.WorkerCount,
		aiService,
		sysLogger,
	)

	// 7. Controllers
	aiController := controller.NewAIController(aiService)

	return &Container{
		AIController:  aiController,
		WorkerService: workerService,
		Logger:        sysLogger,
	}
}
