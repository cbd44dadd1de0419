package game

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSnapshotMasksBeforeReveal(t *testing.T) {
	s := newTestSession()
	s.Join("conn-1", "", "Ava")
	s.StartRound(testQuiz(t))
	s.SubmitAnswer("conn-1", 1)

	v := s.Snapshot()

	if v.Quiz == nil {
		t.Fatal("a visão deveria conter a pergunta em aberto")
	}
	if v.Quiz.CorrectIndex != nil {
		t.Fatal("correctIndex não pode aparecer antes da revelação")
	}
	if v.Players[0].Answer != nil {
		t.Fatal("a resposta do jogador não pode aparecer antes da revelação")
	}
	if v.AnswersCount != 1 {
		t.Fatalf("esperava answersCount=1, obteve %d", v.AnswersCount)
	}

	// Nem no JSON serializado os campos podem vazar
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("falha ao serializar visão: %v", err)
	}
	for _, field := range []string{"correctIndex", `"answer"`} {
		if strings.Contains(string(raw), field) {
			t.Fatalf("campo %s vazou no JSON mascarado: %s", field, raw)
		}
	}
}

func TestSnapshotExposesAfterReveal(t *testing.T) {
	s := newTestSession()
	s.Join("conn-1", "", "Ava")
	s.StartRound(testQuiz(t))
	s.SubmitAnswer("conn-1", 1)
	s.Reveal()

	v := s.Snapshot()

	if v.Quiz == nil || v.Quiz.CorrectIndex == nil || *v.Quiz.CorrectIndex != 1 {
		t.Fatalf("correctIndex deveria aparecer após a revelação: %+v", v.Quiz)
	}
	if v.Players[0].Answer == nil || *v.Players[0].Answer != 1 {
		t.Fatalf("a resposta deveria aparecer após a revelação: %+v", v.Players[0])
	}
	if v.Players[0].WinCounts != 1 {
		t.Fatalf("esperava winCounts=1, obteve %d", v.Players[0].WinCounts)
	}
}

func TestSnapshotDoesNotMutateSession(t *testing.T) {
	s := newTestSession()
	s.Join("conn-1", "", "Ava")
	s.StartRound(testQuiz(t))
	s.SubmitAnswer("conn-1", 0)

	v := s.Snapshot()

	// Alterar a projeção não pode refletir na sessão
	v.Quiz.Options[0] = "mudado"
	v.Players[0].WinCounts = 99

	if s.Quiz.Options[0] != "x" {
		t.Fatalf("a projeção compartilha memória com a sessão: %q", s.Quiz.Options[0])
	}
	if s.Players[0].WinCounts != 0 {
		t.Fatalf("a projeção alterou o placar da sessão: %d", s.Players[0].WinCounts)
	}
	if s.Status != StateRoundActive || *s.Players[0].Answer != 0 {
		t.Fatal("o snapshot não pode alterar o estado da sessão")
	}
}

func TestSnapshotMasterConnected(t *testing.T) {
	s := newTestSession()

	if v := s.Snapshot(); v.Master.Connected {
		t.Fatal("mestre sem conexão não pode aparecer como conectado")
	}

	s.Join("conn-m", testSecret, "")
	if v := s.Snapshot(); !v.Master.Connected {
		t.Fatal("mestre ligado deveria aparecer como conectado")
	}
}
