package game

import (
	"errors"
	"sync"

	"github.com/Zowie0122/quiz-party-api/internal/domain/quiz"
)

// Estados da Sessão (State Machine)
const (
	StateLobby       = "LOBBY"
	StateRoundActive = "ROUND_ACTIVE"
	StateRevealed    = "REVEALED"
)

var (
	ErrNaoAutorizado       = errors.New("apenas o mestre pode realizar esta ação")
	ErrRodadaEmAndamento   = errors.New("já existe uma rodada em andamento")
	ErrRodadaNaoAtiva      = errors.New("nenhuma rodada ativa no momento")
	ErrRodadaRevelada      = errors.New("a rodada já foi revelada")
	ErrJogadorDesconhecido = errors.New("jogador não está na sala")
	ErrAlternativaInvalida = errors.New("a alternativa escolhida não existe nesta rodada")
)

// Papéis resultantes de um Join.
const (
	RoleMaster = "MASTER"
	RolePlayer = "PLAYER"
)

// Master representa o papel que conduz o jogo. O SecretID é imutável e
// conhecido apenas pelo criador; o ConnectionID é religável a cada reconexão.
type Master struct {
	SecretID     string
	ConnectionID string
	Name         string
}

// Player representa um participante da sessão, identificado pela conexão.
type Player struct {
	ID        string // Connection ID
	Name      string
	Answer    *int // nil = ainda não respondeu nesta rodada
	WinCounts int
}

// Session representa um jogo ao vivo endereçado pelo código da sala.
// Mantém todo o estado em memória; o mutex serializa as mutações, então
// ações de clientes e do timer nunca se entrelaçam dentro de uma sessão.
type Session struct {
	Code   string
	Master Master

	Quiz   *quiz.Quiz // nil quando nenhuma rodada foi posta
	Status string

	Players []*Player // Ordem de entrada preservada

	mu sync.RWMutex
}

// NewSession cria uma sessão vazia no estado LOBBY.
func NewSession(code, masterSecret, masterName string) *Session {
	return &Session{
		Code: code,
		Master: Master{
			SecretID: masterSecret,
			Name:     masterName,
		},
		Status:  StateLobby,
		Players: []*Player{},
	}
}

// IsMasterSecret verifica o segredo do mestre (autorização de ações master-only).
func (s *Session) IsMasterSecret(secret string) bool {
	return secret != "" && secret == s.Master.SecretID
}

// IsMasterConnection indica se a conexão é a atualmente ligada ao mestre.
func (s *Session) IsMasterConnection(connID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Master.ConnectionID != "" && s.Master.ConnectionID == connID
}

// Join liga a conexão à sessão. Se o segredo bater com o do mestre, a conexão
// é (re)ligada como mestre; caso contrário entra como jogador. Entradas
// repetidas da mesma conexão são no-ops e nunca duplicam jogadores.
func (s *Session) Join(connID, secret, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.IsMasterSecret(secret) {
		s.Master.ConnectionID = connID
		// A conexão promovida não pode continuar no roster como jogador
		s.removePlayer(connID)
		return RoleMaster, nil
	}

	// Se já existe, reconecta
	if p := s.findPlayer(connID); p != nil {
		return RolePlayer, nil
	}

	s.Players = append(s.Players, &Player{
		ID:   connID,
		Name: name,
	})
	return RolePlayer, nil
}

// StartRound instala a pergunta e abre a rodada para respostas.
// Estado: ROUND_ACTIVE
func (s *Session) StartRound(q *quiz.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Status == StateRoundActive {
		return ErrRodadaEmAndamento
	}
	if err := q.Validate(); err != nil {
		return err
	}

	s.Quiz = q
	s.Status = StateRoundActive
	for _, p := range s.Players {
		p.Answer = nil // Limpa respostas da rodada anterior
	}

	return nil
}

// SubmitAnswer registra a resposta de um jogador. Reenvios antes da revelação
// sobrescrevem o valor anterior; depois da revelação a resposta é imutável.
func (s *Session) SubmitAnswer(connID string, optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Status != StateRoundActive {
		if s.Status == StateRevealed {
			return ErrRodadaRevelada
		}
		return ErrRodadaNaoAtiva
	}

	p := s.findPlayer(connID)
	if p == nil {
		return ErrJogadorDesconhecido
	}
	if optionIndex < 0 || optionIndex >= len(s.Quiz.Options) {
		return ErrAlternativaInvalida
	}

	answer := optionIndex
	p.Answer = &answer
	return nil
}

// Reveal expõe a resposta correta e computa a pontuação da rodada.
// É a única transição que altera WinCounts: +1 para cada jogador cuja
// resposta bate com o índice correto; quem não respondeu nunca pontua.
// Estado: REVEALED
func (s *Session) Reveal() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Status != StateRoundActive {
		if s.Status == StateRevealed {
			return ErrRodadaRevelada
		}
		return ErrRodadaNaoAtiva
	}

	for _, p := range s.Players {
		if p.Answer != nil && *p.Answer == s.Quiz.CorrectIndex {
			p.WinCounts++
		}
	}

	s.Status = StateRevealed
	return nil
}

// Clear descarta a rodada atual e volta ao LOBBY. Com resetWins também
// zera o placar acumulado (reset completo do jogo).
func (s *Session) Clear(resetWins bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Status == StateRoundActive {
		return ErrRodadaEmAndamento
	}

	s.Quiz = nil
	s.Status = StateLobby
	for _, p := range s.Players {
		p.Answer = nil
		if resetWins {
			p.WinCounts = 0
		}
	}

	return nil
}

// RemovePlayer tira o jogador da sala. Retorna false se a conexão não
// pertencia a nenhum jogador (no-op).
func (s *Session) RemovePlayer(connID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removePlayer(connID)
}

// removePlayer remove a conexão do roster. Chamador segura o lock.
func (s *Session) removePlayer(connID string) bool {
	for i, p := range s.Players {
		if p.ID == connID {
			s.Players = append(s.Players[:i], s.Players[i+1:]...)
			return true
		}
	}
	return false
}

// findPlayer procura um jogador pela conexão. Chamador segura o lock.
func (s *Session) findPlayer(connID string) *Player {
	for _, p := range s.Players {
		if p.ID == connID {
			return p
		}
	}
	return nil
}
