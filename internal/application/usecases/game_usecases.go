package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Zowie0122/quiz-party-api/internal/domain/game"
	"github.com/Zowie0122/quiz-party-api/internal/domain/quiz"
	"github.com/Zowie0122/quiz-party-api/internal/ports"
)

// Casos de erro comuns
var (
	ErrSalaNaoEncontrada = errors.New("sala não encontrada")
	ErrNomeObrigatorio   = errors.New("o nome de exibição é obrigatório")
)

// GameUseCases orquestra as ações do jogo: resolve a sessão pelo código,
// aplica a transição no domínio e publica o estado mascarado na sala.
// Uma ação rejeitada nunca altera a sessão e o erro volta apenas para a
// conexão que agiu, nunca para a sala.
type GameUseCases struct {
	registry ports.GameRegistry
	source   ports.QuizSource
	hub      ports.RealTimeHub

	// DefaultRoundSeconds é usado quando o mestre não informa a duração.
	DefaultRoundSeconds int

	// TickInterval é o intervalo entre ticks do timer (1s em produção;
	// testes encurtam para comprimir o tempo).
	TickInterval time.Duration

	timers *timerSet
}

func NewGameUseCases(
	registry ports.GameRegistry,
	source ports.QuizSource,
	hub ports.RealTimeHub,
	defaultRoundSeconds int,
) *GameUseCases {
	return &GameUseCases{
		registry:            registry,
		source:              source,
		hub:                 hub,
		DefaultRoundSeconds: defaultRoundSeconds,
		TickInterval:        time.Second,
		timers:              newTimerSet(),
	}
}

// CreateGame cria uma sessão nova e devolve o código da sala e o segredo do mestre.
func (uc *GameUseCases) CreateGame(ctx context.Context, masterName string) (*game.Session, error) {
	if strings.TrimSpace(masterName) == "" {
		return nil, ErrNomeObrigatorio
	}

	return uc.registry.Create(masterName)
}

// GetGame retorna a visão mascarada da sala (para HTTP).
func (uc *GameUseCases) GetGame(ctx context.Context, code string) (*game.SessionView, error) {
	session, err := uc.session(code)
	if err != nil {
		return nil, err
	}

	view := session.Snapshot()
	return &view, nil
}

// Join liga a conexão à sala: como mestre se o segredo bater, como jogador
// caso contrário. Reentradas são idempotentes.
func (uc *GameUseCases) Join(code, connID, secret, name string) error {
	session, err := uc.session(code)
	if err != nil {
		return err
	}

	if _, err := session.Join(connID, secret, name); err != nil {
		return err
	}

	uc.hub.BroadcastToRoom(code, event("game_state", session.Snapshot()))
	return nil
}

// StartRound abre uma rodada (ação exclusiva do mestre). Sem pergunta no
// payload, sorteia uma do catálogo antes de tocar no estado da sessão.
func (uc *GameUseCases) StartRound(ctx context.Context, code, secret string, q *quiz.Quiz, durationSeconds int) error {
	session, err := uc.session(code)
	if err != nil {
		return err
	}
	if !session.IsMasterSecret(secret) {
		return game.ErrNaoAutorizado
	}

	if q == nil {
		q, err = uc.source.Random(ctx)
		if err != nil {
			return err
		}
	}

	if err := session.StartRound(q); err != nil {
		return err
	}

	if durationSeconds <= 0 {
		durationSeconds = uc.DefaultRoundSeconds
	}
	uc.armTimer(code, durationSeconds)

	uc.hub.BroadcastToRoom(code, event("round_started", session.Snapshot()))
	return nil
}

// SubmitAnswer registra a resposta do jogador (última sobrescreve).
func (uc *GameUseCases) SubmitAnswer(code, connID string, optionIndex int) error {
	session, err := uc.session(code)
	if err != nil {
		return err
	}

	if err := session.SubmitAnswer(connID, optionIndex); err != nil {
		return err
	}

	uc.hub.BroadcastToRoom(code, event("game_state", session.Snapshot()))
	return nil
}

// ForceReveal antecipa a revelação (ação exclusiva do mestre). O timer da
// rodada é cancelado para nunca revelar duas vezes.
func (uc *GameUseCases) ForceReveal(code, secret string) error {
	session, err := uc.session(code)
	if err != nil {
		return err
	}
	if !session.IsMasterSecret(secret) {
		return game.ErrNaoAutorizado
	}

	if err := session.Reveal(); err != nil {
		return err
	}
	uc.timers.cancel(code)

	uc.hub.BroadcastToRoom(code, event("round_revealed", session.Snapshot()))
	return nil
}

// ClearRound descarta a rodada revelada e volta a sala ao lobby, mantendo o placar.
func (uc *GameUseCases) ClearRound(code, secret string) error {
	return uc.clear(code, secret, false)
}

// ResetGame descarta a rodada e zera o placar de todos os jogadores.
func (uc *GameUseCases) ResetGame(code, secret string) error {
	return uc.clear(code, secret, true)
}

func (uc *GameUseCases) clear(code, secret string, resetWins bool) error {
	session, err := uc.session(code)
	if err != nil {
		return err
	}
	if !session.IsMasterSecret(secret) {
		return game.ErrNaoAutorizado
	}

	if err := session.Clear(resetWins); err != nil {
		return err
	}

	uc.hub.BroadcastToRoom(code, event("game_state", session.Snapshot()))
	return nil
}

// Disconnect trata a saída de uma conexão. Mestre saindo destrói a sala na
// hora (o jogo não continua sem ele); jogador saindo apenas sai do roster;
// conexão desconhecida é no-op.
func (uc *GameUseCases) Disconnect(code, connID string) {
	session, err := uc.registry.Get(code)
	if err != nil || session == nil {
		return
	}

	if session.IsMasterConnection(connID) {
		uc.timers.cancel(code)
		_ = uc.registry.Destroy(code)

		uc.hub.BroadcastToRoom(code, event("game_over", nil))
		uc.hub.CloseRoom(code)
		return
	}

	if session.RemovePlayer(connID) {
		uc.hub.BroadcastToRoom(code, event("game_state", session.Snapshot()))
	}
}

// session resolve o código ou falha com ErrSalaNaoEncontrada.
func (uc *GameUseCases) session(code string) (*game.Session, error) {
	session, err := uc.registry.Get(code)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSalaNaoEncontrada
	}
	return session, nil
}

func event(eventType string, payload interface{}) map[string]interface{} {
	return map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
}
