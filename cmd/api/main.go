package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	httpadapter "github.com/Zowie0122/quiz-party-api/internal/adapters/http"
	"github.com/Zowie0122/quiz-party-api/internal/adapters/http/handlers"
	"github.com/Zowie0122/quiz-party-api/internal/adapters/persistence"
	"github.com/Zowie0122/quiz-party-api/internal/adapters/websocket"
	"github.com/Zowie0122/quiz-party-api/internal/application/usecases"
	"github.com/Zowie0122/quiz-party-api/internal/infra/config"
	infraDB "github.com/Zowie0122/quiz-party-api/internal/infra/db"
	"github.com/Zowie0122/quiz-party-api/internal/infra/logger"
	"github.com/Zowie0122/quiz-party-api/internal/ports"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Configuração e Logger
	_ = godotenv.Load() // .env é opcional
	logger.Init()
	cfg := config.Load()

	// 2. Fonte de Perguntas (catálogo SQLite ou lista embutida)
	var source ports.QuizSource
	if cfg.Database.DSN != "" {
		db, err := infraDB.NewSQLiteConnection(cfg.Database.DSN)
		if err != nil {
			logger.Error("Não foi possível conectar ao banco", "erro", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := runMigrations(db); err != nil {
			logger.Error("Falha na migração", "erro", err)
			os.Exit(1)
		}

		source = persistence.NewSQLiteCatalog(db)
	} else {
		logger.Info("DB_DSN vazio; usando catálogo de perguntas embutido")
		source = persistence.NewStaticCatalog(nil)
	}

	// 3. Registro de sessões (in-memory)
	registry := persistence.NewInMemoryGameRegistry()

	// 4. Hub WebSocket
	wsHub := websocket.NewHub()
	// Inicia o Hub em background
	go wsHub.Run()

	// 5. Application (Use Cases)
	gameUC := usecases.NewGameUseCases(registry, source, wsHub, cfg.Game.RoundSeconds)

	// 6. Adapters (Handlers)
	gameHandler := handlers.NewGameHandler(gameUC)
	wsHandler := websocket.NewWebSocketHandler(wsHub, gameUC)

	// 7. Router e Servidor
	router := httpadapter.NewRouter(gameHandler, wsHandler)

	logger.Info("Iniciando servidor", "porta", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), router); err != nil {
		logger.Error("Falha no servidor HTTP", "erro", err)
	}
}

func runMigrations(db *sql.DB) error {
	files, err := os.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("erro ao ler diretório migrations: %w", err)
	}

	var filenames []string
	for _, f := range files {
		if filepath.Ext(f.Name()) == ".sql" {
			filenames = append(filenames, f.Name())
		}
	}
	sort.Strings(filenames)

	for _, filename := range filenames {
		path := filepath.Join("migrations", filename)
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("erro ao ler %s: %w", filename, err)
		}

		logger.Info("Executando migração", "arquivo", filename)
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("erro ao executar %s: %w", filename, err)
		}
	}
	return nil
}
