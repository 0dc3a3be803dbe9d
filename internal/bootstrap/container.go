package bootstrap

import (
	"context"
	"log"
	"path/filepath"

	"profile-match-be/internal/config"
	"profile-match-be/internal/controller"
	"profile-match-be/internal/pkg/logger"
	"profile-match-be/internal/repository/contract"
	"profile-match-be/internal/repository/implementation"
	"profile-match-be/internal/repository/memory"
	"profile-match-be/internal/service"
	"profile-match-be/pkg/embedding"
	"profile-match-be/pkg/enrich"
	"profile-match-be/pkg/llm/factory"
	"profile-match-be/pkg/scoring"
	"profile-match-be/pkg/vectorindex"
	"profile-match-be/pkg/vectorindex/pgvector"
	"profile-match-be/pkg/vectorindex/qdrant"

	pktNats "profile-match-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	MatcherController controller.IMatcherController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Exposed for main.go to snapshot on shutdown
	MatcherService service.IMatcherService

	NatsPublisher *pktNats.Publisher
}

// NewContainer wires the full dependency graph. db may be nil when no
// database is configured; the populate endpoint and the pgvector index
// backend are the only consumers.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Mapping Stores
	userStore := memory.NewMappingStore(filepath.Join(cfg.App.DataDir, "users.json"))
	if err := userStore.Load(); err != nil {
		log.Fatalf("[FATAL] Failed to load user snapshot: %v", err)
	}
	networkStore := memory.NewMappingStore(filepath.Join(cfg.App.DataDir, "networks.json"))
	if err := networkStore.Load(); err != nil {
		log.Fatalf("[FATAL] Failed to load network snapshot: %v", err)
	}
	log.Printf("[INFO] Loaded %d user profiles, %d network profiles", userStore.Count(), networkStore.Count())

	// 4. Vector Index
	var index vectorindex.Client
	if cfg.Index.Provider == "pgvector" {
		if db == nil {
			log.Fatalf("[FATAL] pgvector index backend requires a configured database")
		}
		index = pgvector.NewStore(db)
		log.Printf("[INFO] Using Vector Index: PGVECTOR")
	} else {
		index = qdrant.NewClient(qdrant.Config{
			URL:     cfg.Index.QdrantURL,
			APIKey:  cfg.Index.QdrantAPIKey,
			Timeout: cfg.Index.Timeout,
		})
		log.Printf("[INFO] Using Vector Index: QDRANT (%s)", cfg.Index.QdrantURL)
	}
	for _, collection := range []string{cfg.Index.UserCollection, cfg.Index.NetworkCollection} {
		if err := index.EnsureCollection(context.Background(), collection, cfg.Index.Dimension); err != nil {
			log.Printf("[WARN] Failed to ensure collection %s: %v", collection, err)
		}
	}

	// 5. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	var remoteEnricher enrich.Enricher
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Printf("[WARN] Failed to initialize LLM Provider, enrichment falls back to heuristics: %v", err)
	} else {
		remoteEnricher = enrich.NewLLMEnricher(llmProvider)
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}
	enricher := enrich.NewChainEnricher(remoteEnricher, enrich.NewHeuristicEnricher(nil))

	// 6. Infrastructure
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		}
	}

	var memberRepo contract.MemberRepository
	if db != nil {
		memberRepo = implementation.NewMemberRepository(db)
	}

	// 7. Services
	publisherService := service.NewPublisherService(cfg.Matching.ProfileTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Matching.ProfileTopic,
		userStore,
		networkStore,
	)

	matcherService := service.NewMatcherService(
		cfg,
		userStore,
		networkStore,
		index,
		embedding.NewGenerator(embeddingProvider),
		enricher,
		scoring.NewScorer(nil),
		memberRepo,
		publisherService,
		natsPub,
		sysLogger,
	)

	// 8. Controllers
	matcherController := controller.NewMatcherController(matcherService)

	return &Container{
		MatcherController: matcherController,
		ConsumerService:   consumerService,
		MatcherService:    matcherService,
		NatsPublisher:     natsPub,
	}
}
