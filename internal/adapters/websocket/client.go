package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS liberado, igual ao HTTP
	},
}

// Envelope é o formato de toda mensagem trocada no canal de eventos.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Client representa uma conexão WebSocket participando de uma sala.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte

	RoomID string // Código da sala
	ConnID string
}

// readPump lê os eventos da conexão e os entrega ao EventHandler, um por
// vez, preservando a ordem de chegada. Quando a conexão cai, dispara o
// fluxo de desconexão do jogo antes de sair da sala.
func (c *Client) readPump() {
	defer func() {
		if c.Hub.OnDisconnect != nil {
			c.Hub.OnDisconnect(c)
		}
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("Conexão encerrada com erro:", err)
			}
			break
		}

		var msg Envelope
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue // Mensagem fora do formato: ignora
		}

		if c.Hub.EventHandler != nil {
			c.Hub.EventHandler(c, msg)
		}
	}
}

// writePump envia as mensagens enfileiradas e mantém a conexão viva com pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub fechou o canal (sala encerrada ou cliente removido)
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
