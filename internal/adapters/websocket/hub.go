package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub implementa ports.RealTimeHub: mantém as salas e entrega mensagens
// para a sala inteira ou para uma conexão específica.
type Hub struct {
	clients    map[*Client]bool
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client

	// EventHandler processa eventos de negócio vindos dos clientes.
	// É chamado de forma síncrona no readPump de cada conexão, então a
	// ordem dos eventos de uma mesma conexão é preservada.
	EventHandler func(*Client, Envelope)

	// OnDisconnect é chamado quando a conexão cai, antes do unregister.
	OnDisconnect func(*Client)

	// Mapeia ConnID -> Client (para envio direto)
	connSessions map[string]*Client

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		clients:      make(map[*Client]bool),
		rooms:        make(map[string]map[*Client]bool),
		connSessions: make(map[string]*Client),
	}
}

// Implementação da interface RealTimeHub
func (h *Hub) BroadcastToRoom(roomID string, message interface{}) {
	bytes, err := json.Marshal(message)
	if err != nil {
		log.Println("Erro ao serializar broadcast:", err)
		return
	}

	// Lock de escrita: um cliente lento é removido durante a iteração
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.rooms[roomID]; ok {
		for client := range clients {
			select {
			case client.Send <- bytes:
			default:
				h.evict(client)
			}
		}
	}
}

func (h *Hub) SendToConnection(connID string, message interface{}) {
	bytes, err := json.Marshal(message)
	if err != nil {
		log.Println("Erro ao serializar mensagem direta:", err)
		return
	}

	// Segura o lock até o envio: o canal de um cliente registrado só é
	// fechado sob o lock de escrita, então aqui ele nunca está fechado.
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.connSessions[connID]
	if !ok {
		return // Conexão já removida
	}

	select {
	case client.Send <- bytes:
	default:
		// Falha no envio
	}
}

// evict tira o cliente de todos os mapas e fecha seu canal de envio.
// Chamador segura o lock de escrita; é seguro chamar durante a iteração
// da sala e idempotente para clientes já removidos.
func (h *Hub) evict(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	if clients, ok := h.rooms[client.RoomID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, client.RoomID)
		}
	}
	delete(h.connSessions, client.ConnID)
	close(client.Send)
}

// CloseRoom derruba todas as conexões da sala (após o game_over).
func (h *Hub) CloseRoom(roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[roomID]
	if !ok {
		return
	}

	for client := range clients {
		delete(h.clients, client)
		delete(h.connSessions, client.ConnID)
		close(client.Send)
	}
	delete(h.rooms, roomID)
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			if _, ok := h.rooms[client.RoomID]; !ok {
				h.rooms[client.RoomID] = make(map[*Client]bool)
			}
			h.rooms[client.RoomID][client] = true
			h.connSessions[client.ConnID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.evict(client)
			h.mu.Unlock()
		}
	}
}
