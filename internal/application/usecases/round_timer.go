package usecases

import (
	"sync"
	"time"
)

// roundTimer é o handle cancelável da contagem regressiva de uma rodada.
// O cancelamento é alcançável tanto pelo force-reveal quanto pela
// destruição da sala; o sync.Once torna os dois caminhos seguros entre si.
type roundTimer struct {
	stop chan struct{}
	once sync.Once
}

func (t *roundTimer) cancel() {
	t.once.Do(func() { close(t.stop) })
}

// timerSet guarda o timer ativo de cada sala.
type timerSet struct {
	timers map[string]*roundTimer
	mu     sync.Mutex
}

func newTimerSet() *timerSet {
	return &timerSet{timers: make(map[string]*roundTimer)}
}

// put registra o timer da sala, cancelando qualquer um anterior.
func (s *timerSet) put(code string, t *roundTimer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.timers[code]; ok {
		prev.cancel()
	}
	s.timers[code] = t
}

func (s *timerSet) cancel(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[code]; ok {
		t.cancel()
		delete(s.timers, code)
	}
}

// remove tira o timer do set sem cancelar (usado quando ele expira sozinho).
func (s *timerSet) remove(code string, t *roundTimer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.timers[code]; ok && current == t {
		delete(s.timers, code)
	}
}

// armTimer inicia a contagem regressiva da rodada. A cada tick o tempo
// restante é publicado na sala; no tick final o timer dispara a revelação
// exatamente uma vez e se encerra.
func (uc *GameUseCases) armTimer(code string, seconds int) {
	t := &roundTimer{stop: make(chan struct{})}
	uc.timers.put(code, t)
	go uc.runTimer(code, seconds, t)
}

func (uc *GameUseCases) runTimer(code string, seconds int, t *roundTimer) {
	ticker := time.NewTicker(uc.TickInterval)
	defer ticker.Stop()

	remaining := seconds
	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			remaining--
			uc.hub.BroadcastToRoom(code, event("round_tick", map[string]int{
				"secondsRemaining": remaining,
			}))
			if remaining <= 0 {
				uc.timers.remove(code, t)
				uc.revealFromTimer(code)
				return
			}
		}
	}
}

// revealFromTimer aplica a revelação no fim da contagem. Falhas são
// absorvidas em silêncio: a sala pode já ter sido destruída ou a rodada
// revelada à força por outro caminho.
func (uc *GameUseCases) revealFromTimer(code string) {
	session, err := uc.registry.Get(code)
	if err != nil || session == nil {
		return
	}

	if err := session.Reveal(); err != nil {
		return
	}

	uc.hub.BroadcastToRoom(code, event("round_revealed", session.Snapshot()))
}
