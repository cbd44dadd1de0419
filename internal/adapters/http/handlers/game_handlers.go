package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Zowie0122/quiz-party-api/internal/application/usecases"

	"github.com/go-chi/chi/v5"
)

type GameHandler struct {
	gameUC *usecases.GameUseCases
}

func NewGameHandler(gameUC *usecases.GameUseCases) *GameHandler {
	return &GameHandler{gameUC: gameUC}
}

// CreateGame cria uma sala nova e devolve o código e o segredo do mestre.
// O segredo só aparece aqui: nenhum broadcast o inclui.
func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var input struct {
		DisplayName string `json:"displayName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	session, err := h.gameUC.CreateGame(r.Context(), input.DisplayName)
	if err != nil {
		if errors.Is(err, usecases.ErrNomeObrigatorio) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"gameCode":     session.Code,
		"masterSecret": session.Master.SecretID,
	})
}

// GetGame retorna a visão mascarada da sala (join-info para os jogadores).
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	view, err := h.gameUC.GetGame(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusNotFound, "Sala não encontrada")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
