package persistence

import (
	"sync"

	"github.com/Zowie0122/quiz-party-api/internal/domain/game"
	"github.com/Zowie0122/quiz-party-api/internal/ports"

	"github.com/google/uuid"
)

// InMemoryGameRegistry implementa GameRegistry usando memória RAM.
// Os códigos de sala e segredos de mestre são UUIDs v4: opacos e
// impossíveis de adivinhar, como exige o endereçamento público das salas.
type InMemoryGameRegistry struct {
	sessions map[string]*game.Session
	mu       sync.RWMutex
}

func NewInMemoryGameRegistry() ports.GameRegistry {
	return &InMemoryGameRegistry{
		sessions: make(map[string]*game.Session),
	}
}

func (r *InMemoryGameRegistry) Create(masterName string) (*game.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := uuid.NewString()
	for _, exists := r.sessions[code]; exists; _, exists = r.sessions[code] {
		code = uuid.NewString() // Colisão de UUID: re-sorteia
	}

	session := game.NewSession(code, uuid.NewString(), masterName)
	r.sessions[code] = session
	return session, nil
}

func (r *InMemoryGameRegistry) Get(code string) (*game.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[code]
	if !ok {
		return nil, nil // Não encontrado (sem erro)
	}
	return session, nil
}

func (r *InMemoryGameRegistry) Destroy(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, code)
	return nil
}
