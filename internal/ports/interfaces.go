package ports

import (
	"context"

	"github.com/Zowie0122/quiz-party-api/internal/domain/game"
	"github.com/Zowie0122/quiz-party-api/internal/domain/quiz"
)

// GameRegistry é a autoridade única sobre sessões vivas: criação, busca e
// destruição. Nenhuma outra parte do sistema guarda sessões.
type GameRegistry interface {
	// Create aloca código e segredo novos, constrói a sessão vazia e a registra.
	Create(masterName string) (*game.Session, error)

	// Get busca uma sessão pelo código. Retorna (nil, nil) se não existir.
	Get(code string) (*game.Session, error)

	// Destroy remove a sessão. Idempotente: código ausente é no-op.
	Destroy(code string) error
}

// QuizSource fornece o conteúdo das rodadas quando o mestre não envia o
// próprio: sorteia uma pergunta do catálogo.
type QuizSource interface {
	Random(ctx context.Context) (*quiz.Quiz, error)
}

// RealTimeHub define contrato para envio de mensagens via WebSocket.
type RealTimeHub interface {
	BroadcastToRoom(roomID string, message interface{})
	SendToConnection(connID string, message interface{})

	// CloseRoom derruba todas as conexões da sala (fim de jogo).
	CloseRoom(roomID string)
}
