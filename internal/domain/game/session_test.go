package game

import (
	"errors"
	"testing"

	"github.com/Zowie0122/quiz-party-api/internal/domain/quiz"
)

const (
	testSecret = "segredo-do-mestre"
)

func newTestSession() *Session {
	return NewSession("sala-1", testSecret, "Mestre")
}

func testQuiz(t *testing.T) *quiz.Quiz {
	t.Helper()
	q, err := quiz.New("Qual opção?", []string{"x", "y"}, 1)
	if err != nil {
		t.Fatalf("quiz de teste inválido: %v", err)
	}
	return q
}

func TestJoinAsMasterRebindsConnection(t *testing.T) {
	s := newTestSession()

	role, err := s.Join("conn-a", testSecret, "")
	if err != nil || role != RoleMaster {
		t.Fatalf("esperava entrada como mestre, obteve role=%q err=%v", role, err)
	}
	if s.Master.ConnectionID != "conn-a" {
		t.Fatalf("conexão do mestre não foi ligada: %q", s.Master.ConnectionID)
	}

	// Reconexão religa a nova conexão sem duplicar nada
	role, err = s.Join("conn-b", testSecret, "")
	if err != nil || role != RoleMaster {
		t.Fatalf("esperava religação como mestre, obteve role=%q err=%v", role, err)
	}
	if s.Master.ConnectionID != "conn-b" {
		t.Fatalf("conexão do mestre não foi religada: %q", s.Master.ConnectionID)
	}
	if len(s.Players) != 0 {
		t.Fatalf("entrada do mestre não deve criar jogador, roster tem %d", len(s.Players))
	}
}

func TestJoinDuplicateConnectionIsNoOp(t *testing.T) {
	s := newTestSession()

	if _, err := s.Join("conn-1", "", "Ava"); err != nil {
		t.Fatalf("join falhou: %v", err)
	}
	if _, err := s.Join("conn-1", "", "Ava de novo"); err != nil {
		t.Fatalf("join repetido deve ser no-op, obteve: %v", err)
	}

	if len(s.Players) != 1 {
		t.Fatalf("esperava 1 jogador no roster, obteve %d", len(s.Players))
	}
	if s.Players[0].Name != "Ava" {
		t.Fatalf("join repetido não pode alterar o jogador: %q", s.Players[0].Name)
	}
}

// Uma conexão que entrou como jogador e depois apresenta o segredo vira
// mestre e sai do roster: a entrada antiga não responde nem pontua mais.
func TestPlayerPromotedToMasterLeavesRoster(t *testing.T) {
	s := newTestSession()
	s.Join("conn-1", "", "Ava")
	s.Join("conn-2", "", "Ben")

	role, err := s.Join("conn-1", testSecret, "")
	if err != nil || role != RoleMaster {
		t.Fatalf("esperava promoção a mestre, obteve role=%q err=%v", role, err)
	}
	if s.Master.ConnectionID != "conn-1" {
		t.Fatalf("conexão promovida não foi ligada ao mestre: %q", s.Master.ConnectionID)
	}
	if len(s.Players) != 1 || s.Players[0].ID != "conn-2" {
		t.Fatalf("a entrada antiga deveria sair do roster: %+v", s.Players)
	}

	s.StartRound(testQuiz(t))
	if err := s.SubmitAnswer("conn-1", 1); !errors.Is(err, ErrJogadorDesconhecido) {
		t.Fatalf("o mestre promovido não pode responder como jogador: %v", err)
	}

	s.SubmitAnswer("conn-2", 1)
	s.Reveal()
	if s.Players[0].WinCounts != 1 || len(s.Players) != 1 {
		t.Fatalf("pontuação inesperada após promoção: %+v", s.Players)
	}
}

func TestJoinWithWrongSecretEntersAsPlayer(t *testing.T) {
	s := newTestSession()

	role, err := s.Join("conn-1", "segredo-errado", "Intruso")
	if err != nil || role != RolePlayer {
		t.Fatalf("segredo errado deve entrar como jogador, obteve role=%q err=%v", role, err)
	}
	if s.Master.ConnectionID != "" {
		t.Fatal("segredo errado não pode ligar a conexão ao mestre")
	}
}

func TestStartRoundTwiceIsRejected(t *testing.T) {
	s := newTestSession()

	if err := s.StartRound(testQuiz(t)); err != nil {
		t.Fatalf("primeira rodada deveria abrir: %v", err)
	}

	err := s.StartRound(testQuiz(t))
	if !errors.Is(err, ErrRodadaEmAndamento) {
		t.Fatalf("esperava ErrRodadaEmAndamento, obteve %v", err)
	}
	if s.Status != StateRoundActive {
		t.Fatalf("tentativa rejeitada não pode mudar o estado: %q", s.Status)
	}
}

func TestStartRoundClearsPreviousAnswers(t *testing.T) {
	s := newTestSession()
	s.Join("conn-1", "", "Ava")

	s.StartRound(testQuiz(t))
	s.SubmitAnswer("conn-1", 0)
	s.Reveal()

	if err := s.StartRound(testQuiz(t)); err != nil {
		t.Fatalf("nova rodada após revelação deveria abrir: %v", err)
	}
	if s.Players[0].Answer != nil {
		t.Fatal("a resposta da rodada anterior deveria ter sido limpa")
	}
}

func TestSubmitAnswerRules(t *testing.T) {
	s := newTestSession()
	s.Join("conn-1", "", "Ava")

	// Sem rodada ativa
	if err := s.SubmitAnswer("conn-1", 0); !errors.Is(err, ErrRodadaNaoAtiva) {
		t.Fatalf("esperava ErrRodadaNaoAtiva, obteve %v", err)
	}

	s.StartRound(testQuiz(t))

	// Jogador desconhecido
	if err := s.SubmitAnswer("conn-x", 0); !errors.Is(err, ErrJogadorDesconhecido) {
		t.Fatalf("esperava ErrJogadorDesconhecido, obteve %v", err)
	}

	// Alternativa fora do intervalo
	if err := s.SubmitAnswer("conn-1", 2); !errors.Is(err, ErrAlternativaInvalida) {
		t.Fatalf("esperava ErrAlternativaInvalida, obteve %v", err)
	}

	// Reenvio sobrescreve (last-write-wins)
	s.SubmitAnswer("conn-1", 0)
	if err := s.SubmitAnswer("conn-1", 1); err != nil {
		t.Fatalf("reenvio antes da revelação deveria sobrescrever: %v", err)
	}
	if got := *s.Players[0].Answer; got != 1 {
		t.Fatalf("esperava resposta 1, obteve %d", got)
	}

	// Depois da revelação a resposta é imutável
	s.Reveal()
	if err := s.SubmitAnswer("conn-1", 0); !errors.Is(err, ErrRodadaRevelada) {
		t.Fatalf("esperava ErrRodadaRevelada, obteve %v", err)
	}
	if got := *s.Players[0].Answer; got != 1 {
		t.Fatalf("resposta mudou após revelação: %d", got)
	}
}

func TestRevealTally(t *testing.T) {
	s := newTestSession()
	s.Join("conn-1", "", "Acertou")
	s.Join("conn-2", "", "Errou")
	s.Join("conn-3", "", "NaoRespondeu")

	s.StartRound(testQuiz(t)) // Correta: 1
	s.SubmitAnswer("conn-1", 1)
	s.SubmitAnswer("conn-2", 0)

	if err := s.Reveal(); err != nil {
		t.Fatalf("revelação deveria funcionar: %v", err)
	}

	wants := map[string]int{"conn-1": 1, "conn-2": 0, "conn-3": 0}
	for _, p := range s.Players {
		if p.WinCounts != wants[p.ID] {
			t.Errorf("jogador %s: esperava %d vitórias, obteve %d", p.ID, wants[p.ID], p.WinCounts)
		}
	}

	// Revelar de novo é conflito e não re-pontua
	if err := s.Reveal(); !errors.Is(err, ErrRodadaRevelada) {
		t.Fatalf("esperava ErrRodadaRevelada, obteve %v", err)
	}
	if s.Players[0].WinCounts != 1 {
		t.Fatalf("revelação rejeitada não pode pontuar de novo: %d", s.Players[0].WinCounts)
	}
}

func TestRevealWithoutRound(t *testing.T) {
	s := newTestSession()
	if err := s.Reveal(); !errors.Is(err, ErrRodadaNaoAtiva) {
		t.Fatalf("esperava ErrRodadaNaoAtiva, obteve %v", err)
	}
}

func TestClearKeepsWinCountsResetZeroes(t *testing.T) {
	s := newTestSession()
	s.Join("conn-1", "", "Ava")
	s.StartRound(testQuiz(t))
	s.SubmitAnswer("conn-1", 1)

	// Limpar durante rodada ativa é rejeitado
	if err := s.Clear(false); !errors.Is(err, ErrRodadaEmAndamento) {
		t.Fatalf("esperava ErrRodadaEmAndamento, obteve %v", err)
	}

	s.Reveal()

	if err := s.Clear(false); err != nil {
		t.Fatalf("clear após revelação deveria funcionar: %v", err)
	}
	if s.Quiz != nil || s.Status != StateLobby {
		t.Fatalf("clear deveria voltar ao lobby vazio: quiz=%v status=%q", s.Quiz, s.Status)
	}
	if s.Players[0].WinCounts != 1 {
		t.Fatalf("clear não pode zerar o placar: %d", s.Players[0].WinCounts)
	}

	if err := s.Clear(true); err != nil {
		t.Fatalf("reset deveria funcionar: %v", err)
	}
	if s.Players[0].WinCounts != 0 {
		t.Fatalf("reset deveria zerar o placar: %d", s.Players[0].WinCounts)
	}
}

func TestRemovePlayer(t *testing.T) {
	s := newTestSession()
	s.Join("conn-1", "", "Ava")
	s.Join("conn-2", "", "Ben")

	if !s.RemovePlayer("conn-1") {
		t.Fatal("esperava remoção do jogador conhecido")
	}
	if len(s.Players) != 1 || s.Players[0].ID != "conn-2" {
		t.Fatalf("roster inesperado após remoção: %+v", s.Players)
	}

	// Conexão desconhecida é no-op
	if s.RemovePlayer("conn-x") {
		t.Fatal("remover conexão desconhecida deveria ser no-op")
	}
}

// O estado é um enum: rodada ativa e revelada nunca coexistem.
func TestRoundActiveAndRevealedAreExclusive(t *testing.T) {
	s := newTestSession()

	check := func(moment string) {
		v := s.Snapshot()
		if v.RoundActive && v.Revealed {
			t.Fatalf("%s: roundActive e revealed simultâneos", moment)
		}
	}

	check("lobby")
	s.StartRound(testQuiz(t))
	check("rodada ativa")
	s.Reveal()
	check("revelado")
	s.Clear(false)
	check("após clear")
}
