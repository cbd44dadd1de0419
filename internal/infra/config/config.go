package config

import (
	"os"
	"strconv"
)

// Config contém as configurações da aplicação.
type Config struct {
	Port     string
	Database DatabaseConfig
	Game     GameConfig
}

type DatabaseConfig struct {
	DSN string // Caminho do arquivo SQLite; vazio = catálogo estático em memória
}

type GameConfig struct {
	// RoundSeconds é a duração padrão da rodada quando o mestre não informa uma.
	RoundSeconds int
}

// Load carrega as configurações das variáveis de ambiente ou usa padrões.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			DSN: getEnv("DB_DSN", ""),
		},
		Game: GameConfig{
			RoundSeconds: getEnvInt("ROUND_SECONDS", 30),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}
