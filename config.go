package reconagent

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type AppConfig struct {
	Mode    string
	ApiPort string
	AzureOpenAI struct {
		Endpoint   string
		APIKey     string
		Deployment string
		APIVersion string
	}
	ReconDatabase struct {
		Host         string
		Port         string
		User         string
		Password     string
		DatabaseName string
	}
	BlobStorage struct {
		ConnectionString string
		Container        string
		AccountURL       string
	}
	RedisConfig struct {
		Host     string
		Port     string
		Password string
		DB       int
	}
	JWTConfig struct {
		Secret string
	}
	Limits struct {
		// ResultMaxRows is the hard "too many records" cutoff for a query result.
		ResultMaxRows int
		// ExportRowThreshold triggers a CSV export on the query branch.
		ExportRowThreshold int
		// AnswerSampleRows caps how many rows are shown to the model when composing.
		AnswerSampleRows int
	}
	Timeouts struct {
		LLM      time.Duration
		Database time.Duration
		Upload   time.Duration
	}
	CacheTTL time.Duration
}

// InitConfig loads the env file (if present) and builds the application config.
// Required keys panic when missing; thresholds and timeouts have the documented
// defaults and stay overridable per deployment.
func InitConfig(envfile string) AppConfig {
	if err := godotenv.Load(envfile); err != nil {
		log.Printf("no %s file loaded, relying on process environment: %s", envfile, err)
	}

	config := AppConfig{
		Mode:    getEnvOrPanic("RUN_MODE"),
		ApiPort: getEnvOrPanic("API_PORT"),
	}

	config.AzureOpenAI.Endpoint = getEnvOrPanic("AZURE_OPENAI_API_BASE")
	config.AzureOpenAI.APIKey = getEnvOrPanic("AZURE_OPENAI_API_KEY")
	config.AzureOpenAI.Deployment = getEnvOrPanic("AZURE_OPENAI_API_DEPLOYMENT")
	config.AzureOpenAI.APIVersion = getEnvOrPanic("AZURE_OPENAI_API_VERSION")

	config.ReconDatabase.Host = getEnvOrPanic("DB_HOSTNAME")
	config.ReconDatabase.Port = getEnvOrPanic("DB_PORT")
	config.ReconDatabase.User = getEnvOrPanic("DB_USERNAME")
	config.ReconDatabase.Password = getEnvOrPanic("DB_PASSWORD")
	config.ReconDatabase.DatabaseName = getEnvOrPanic("DB_NAME")

	config.BlobStorage.ConnectionString = GetEnv("BLOB_STORAGE_CONNECTION_STRING", "")
	config.BlobStorage.Container = GetEnv("BLOB_STORAGE_CONTAINER_NAME", "")
	config.BlobStorage.AccountURL = GetEnv("BLOB_STORAGE_ACCOUNT_URL", "")

	config.RedisConfig.Host = GetEnv("REDIS_HOST", "")
	config.RedisConfig.Port = GetEnv("REDIS_PORT", "6379")
	config.RedisConfig.Password = GetEnv("REDIS_PASSWORD", "")
	config.RedisConfig.DB = getIntEnvOrDefault("REDIS_DB", 0)

	config.JWTConfig.Secret = GetEnv("JWT_SECRET", "")

	config.Limits.ResultMaxRows = getIntEnvOrDefault("RESULT_MAX_ROWS", 10000)
	config.Limits.ExportRowThreshold = getIntEnvOrDefault("EXPORT_ROW_THRESHOLD", 20)
	config.Limits.AnswerSampleRows = getIntEnvOrDefault("ANSWER_SAMPLE_ROWS", 50)

	config.Timeouts.LLM = getDurationEnvOrDefault("LLM_TIMEOUT", 120*time.Second)
	config.Timeouts.Database = getDurationEnvOrDefault("DB_TIMEOUT", 60*time.Second)
	config.Timeouts.Upload = getDurationEnvOrDefault("UPLOAD_TIMEOUT", 60*time.Second)

	config.CacheTTL = getDurationEnvOrDefault("CACHE_TTL", 60*time.Minute)

	return config
}

func getEnvOrPanic(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("%s must be set", key)
	}
	return value
}

func GetEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return value
}

func NewLogger() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05",
		NoColor:    false,
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
		},
		FormatMessage: func(i interface{}) string {
			return fmt.Sprintf("  %s  ", i)
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s=", i)
		},
		FormatFieldValue: func(i interface{}) string {
			return fmt.Sprintf("%s", i)
		},
	}

	return zerolog.New(output).With().Timestamp().Caller().Logger()
}
