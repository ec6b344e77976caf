package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	LLM      LLM
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// LLM configures the outbound text-generation service. Provider is either
// "openai" (any chat-completions compatible endpoint) or "gemini".
type LLM struct {
	Provider       string
	ApiKey         string
	ApiURL         string
	Model          string
	TimeoutSeconds int
	// Strict disables the sample-document fallback on transport failures,
	// surfacing them to the caller instead.
	Strict       bool
	GeminiApiKey string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LLM_PROVIDER", "openai")
	viper.SetDefault("LLM_API_URL", "https://api.openai.com/v1")
	viper.SetDefault("LLM_MODEL", "gpt-4o-mini")
	viper.SetDefault("LLM_TIMEOUT_SECONDS", 60)
	viper.SetDefault("LLM_STRICT", false)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.LLM.Provider = viper.GetString("LLM_PROVIDER")
	config.LLM.ApiKey = viper.GetString("LLM_API_KEY")
	config.LLM.ApiURL = viper.GetString("LLM_API_URL")
	config.LLM.Model = viper.GetString("LLM_MODEL")
	config.LLM.TimeoutSeconds = viper.GetInt("LLM_TIMEOUT_SECONDS")
	config.LLM.Strict = viper.GetBool("LLM_STRICT")
	config.LLM.GeminiApiKey = viper.GetString("GEMINI_API_KEY")

	log.Info().Str("provider", config.LLM.Provider).Str("port", config.Server.Port).Msg("Config loaded")
	return &config, nil
}
