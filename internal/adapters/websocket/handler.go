package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/Zowie0122/quiz-party-api/internal/application/usecases"
	"github.com/Zowie0122/quiz-party-api/internal/domain/quiz"

	"github.com/google/uuid"
)

// WebSocketHandler gerencia o upgrade e o roteamento de eventos.
type WebSocketHandler struct {
	hub    *Hub
	gameUC *usecases.GameUseCases
}

func NewWebSocketHandler(hub *Hub, gameUC *usecases.GameUseCases) *WebSocketHandler {
	handler := &WebSocketHandler{
		hub:    hub,
		gameUC: gameUC,
	}

	// Registra os callbacks no Hub
	hub.EventHandler = handler.HandleEvent
	hub.OnDisconnect = handler.handleDisconnect
	return handler
}

// HandleWS faz o upgrade da conexão HTTP para WebSocket. A conexão entra na
// sala nomeada pelo código do jogo (?game=...).
func (h *WebSocketHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameCode := r.URL.Query().Get("game")
	if gameCode == "" {
		http.Error(w, "Código do jogo obrigatório (?game=...)", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}

	client := &Client{
		Hub:    h.hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		RoomID: gameCode,
		ConnID: uuid.NewString(),
	}

	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}

const msgPayloadInvalido = "payload inválido"

// HandleEvent processa mensagens vindas dos clientes (Router de Eventos).
// Payload fora do formato é rejeitado com o sinal de erro para a própria
// conexão, sem tocar no jogo.
func (h *WebSocketHandler) HandleEvent(client *Client, msg Envelope) {
	switch msg.Type {
	case "join":
		var payload struct {
			MasterSecret string `json:"masterSecret"`
			DisplayName  string `json:"displayName"`
		}
		if err := decodePayload(msg.Payload, &payload); err != nil {
			h.sendError(client.ConnID, msgPayloadInvalido)
			return
		}
		if err := h.gameUC.Join(client.RoomID, client.ConnID, payload.MasterSecret, payload.DisplayName); err != nil {
			h.sendError(client.ConnID, err.Error())
		}

	case "start_round":
		var payload struct {
			MasterSecret    string     `json:"masterSecret"`
			Quiz            *quiz.Quiz `json:"quiz"`
			DurationSeconds int        `json:"durationSeconds"`
		}
		if err := decodePayload(msg.Payload, &payload); err != nil {
			h.sendError(client.ConnID, msgPayloadInvalido)
			return
		}
		if err := h.gameUC.StartRound(context.Background(), client.RoomID, payload.MasterSecret, payload.Quiz, payload.DurationSeconds); err != nil {
			h.sendError(client.ConnID, err.Error())
		}

	case "submit_answer":
		var payload struct {
			OptionIndex int `json:"optionIndex"`
		}
		if err := decodePayload(msg.Payload, &payload); err != nil {
			h.sendError(client.ConnID, msgPayloadInvalido)
			return
		}
		if err := h.gameUC.SubmitAnswer(client.RoomID, client.ConnID, payload.OptionIndex); err != nil {
			h.sendError(client.ConnID, err.Error())
		}

	case "force_reveal":
		var payload struct {
			MasterSecret string `json:"masterSecret"`
		}
		if err := decodePayload(msg.Payload, &payload); err != nil {
			h.sendError(client.ConnID, msgPayloadInvalido)
			return
		}
		if err := h.gameUC.ForceReveal(client.RoomID, payload.MasterSecret); err != nil {
			h.sendError(client.ConnID, err.Error())
		}

	case "clear_round":
		var payload struct {
			MasterSecret string `json:"masterSecret"`
		}
		if err := decodePayload(msg.Payload, &payload); err != nil {
			h.sendError(client.ConnID, msgPayloadInvalido)
			return
		}
		if err := h.gameUC.ClearRound(client.RoomID, payload.MasterSecret); err != nil {
			h.sendError(client.ConnID, err.Error())
		}

	case "reset_game":
		var payload struct {
			MasterSecret string `json:"masterSecret"`
		}
		if err := decodePayload(msg.Payload, &payload); err != nil {
			h.sendError(client.ConnID, msgPayloadInvalido)
			return
		}
		if err := h.gameUC.ResetGame(client.RoomID, payload.MasterSecret); err != nil {
			h.sendError(client.ConnID, err.Error())
		}

	default:
		log.Printf("Evento desconhecido: %s", msg.Type)
	}
}

// decodePayload decodifica o payload; ausente vale como objeto vazio
// (eventos como join não têm campos obrigatórios).
func decodePayload(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// handleDisconnect repassa a queda da conexão para o jogo.
func (h *WebSocketHandler) handleDisconnect(client *Client) {
	h.gameUC.Disconnect(client.RoomID, client.ConnID)
}

// sendError informa o erro apenas à conexão que agiu, nunca à sala.
func (h *WebSocketHandler) sendError(connID, errorMsg string) {
	h.hub.SendToConnection(connID, map[string]interface{}{
		"type":    "error",
		"payload": map[string]string{"message": errorMsg},
	})
}
