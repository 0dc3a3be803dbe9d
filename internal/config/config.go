package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Index    IndexConfig
	Keys     APIKeys
	Ai       AIConfig
	Matching MatchingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	DataDir            string
}

type DatabaseConfig struct {
	Connection string
}

// IndexConfig configures the vector index backend.
// Provider "qdrant" talks to an external Qdrant server over REST;
// "pgvector" stores points in the relational database instead.
type IndexConfig struct {
	Provider          string
	QdrantURL         string
	QdrantAPIKey      string
	Timeout           time.Duration
	UserCollection    string
	NetworkCollection string
	Dimension         int
}

type APIKeys struct {
	GoogleGemini string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "gemini" or "ollama"
	LLMModel          string
}

type MatchingConfig struct {
	DefaultTopN  int
	PopulateMax  int
	ProfileTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			DataDir:            getEnv("DATA_DIR", "data"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Index: IndexConfig{
			Provider:          getEnv("VECTOR_INDEX_PROVIDER", "qdrant"),
			QdrantURL:         getEnv("QDRANT_URL", "http://localhost:6333"),
			QdrantAPIKey:      getEnv("QDRANT_API_KEY", ""),
			Timeout:           time.Duration(getEnvAsInt("VECTOR_INDEX_TIMEOUT_SECONDS", 15)) * time.Second,
			UserCollection:    getEnv("USER_COLLECTION_NAME", "user_profiles"),
			NetworkCollection: getEnv("NETWORK_COLLECTION_NAME", "network_profiles"),
			Dimension:         getEnvAsInt("EMBEDDING_DIMENSION", 768),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:          getEnv("LLM_MODEL", "gemini-1.5-flash"),
		},
		Matching: MatchingConfig{
			DefaultTopN:  getEnvAsInt("DEFAULT_TOP_N", 5),
			PopulateMax:  getEnvAsInt("POPULATE_MAX_MEMBERS", 500),
			ProfileTopic: getEnv("PROFILE_CHANGED_TOPIC_NAME", "PROFILE_CHANGED"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
