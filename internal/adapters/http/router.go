package httpadapter

import (
	"net/http"

	"github.com/Zowie0122/quiz-party-api/internal/adapters/http/handlers"
	"github.com/Zowie0122/quiz-party-api/internal/adapters/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter configura as rotas e middlewares.
func NewRouter(
	gameHandler *handlers.GameHandler,
	wsHandler *websocket.WebSocketHandler,
) http.Handler {
	r := chi.NewRouter()

	// Middlewares globais
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Configuração CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Rota de Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// WebSocket Endpoint (canal de eventos do jogo)
	r.Get("/ws", wsHandler.HandleWS)

	// Grupo de rotas de Salas (Game)
	r.Route("/games", func(r chi.Router) {
		r.Post("/", gameHandler.CreateGame)
		r.Get("/{code}", gameHandler.GetGame)
	})

	return r
}
