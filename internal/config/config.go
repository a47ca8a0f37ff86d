package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Qdrant     QdrantConfig
	Gemini     GeminiConfig
	LLM        LLMConfig
	Speech     SpeechConfig
	Insight    InsightConfig
	Storage    StorageConfig
	Worker     WorkerConfig
	Interview  InterviewConfig
	Classifier ClassifierConfig
}

type ServerConfig struct {
	Port        string
	InsightPort string
	Env         string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type GeminiConfig struct {
	APIKey string
}

type LLMConfig struct {
	APIURL  string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type SpeechConfig struct {
	TTSURL       string
	RecognizeURL string
	RecognizeKey string
}

type InsightConfig struct {
	EmotionAPIURL string
	WhisperAPIURL string
	MediaPath     string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency int
}

type InterviewConfig struct {
	NumQuestions int
}

type ClassifierConfig struct {
	RulesPath string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "3000"),
			InsightPort: getEnv("INSIGHT_PORT", "3001"),
			Env:         getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "cv_interviewer"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "interview_knowledge"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
		},
		LLM: LLMConfig{
			APIURL:  getEnv("LLM_API_URL", "https://openrouter.ai/api/v1/chat/completions"),
			APIKey:  getEnv("LLM_API_KEY", ""),
			Model:   getEnv("LLM_MODEL", "meta-llama/llama-3.3-70b-instruct:free"),
			Timeout: getEnvAsDuration("LLM_TIMEOUT", "30s"),
		},
		Speech: SpeechConfig{
			TTSURL:       getEnv("TTS_URL", "https://translate.google.com/translate_tts"),
			RecognizeURL: getEnv("SPEECH_API_URL", "http://www.google.com/speech-api/v2/recognize"),
			RecognizeKey: getEnv("SPEECH_API_KEY", ""),
		},
		Insight: InsightConfig{
			EmotionAPIURL: getEnv("EMOTION_API_URL", "http://localhost:8501/analyze"),
			WhisperAPIURL: getEnv("WHISPER_API_URL", "http://localhost:8502/transcribe"),
			MediaPath:     getEnv("MEDIA_PATH", "./media"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 3),
		},
		Interview: InterviewConfig{
			NumQuestions: getEnvAsInt("NUM_QUESTIONS", 4),
		},
		Classifier: ClassifierConfig{
			RulesPath: getEnv("CLASSIFIER_RULES_PATH", ""),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
