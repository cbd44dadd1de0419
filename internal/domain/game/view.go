package game

// SessionView é a projeção publicada da sessão para envio aos clientes.
// Antes da revelação o índice correto e as respostas individuais são
// omitidos; depois, ambos aparecem no mesmo broadcast.
type SessionView struct {
	Code         string       `json:"code"`
	Master       MasterView   `json:"master"`
	Quiz         *QuizView    `json:"quiz,omitempty"`
	RoundActive  bool         `json:"roundActive"`
	Revealed     bool         `json:"revealed"`
	AnswersCount int          `json:"answersCount"` // Quantos já responderam
	Players      []PlayerView `json:"players"`
}

type MasterView struct {
	Name      string `json:"name"`
	Connected bool   `json:"connected"`
}

type QuizView struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex *int     `json:"correctIndex,omitempty"` // Só presente se REVEALED
}

type PlayerView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Answer    *int   `json:"answer,omitempty"` // Só presente se REVEALED
	WinCounts int    `json:"winCounts"`
}

// Snapshot produz a visão externa da sessão. É uma projeção pura: nunca
// altera a sessão e não compartilha memória mutável com ela.
func (s *Session) Snapshot() SessionView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	revealed := s.Status == StateRevealed

	view := SessionView{
		Code: s.Code,
		Master: MasterView{
			Name:      s.Master.Name,
			Connected: s.Master.ConnectionID != "",
		},
		RoundActive: s.Status == StateRoundActive,
		Revealed:    revealed,
		Players:     make([]PlayerView, 0, len(s.Players)),
	}

	if s.Quiz != nil {
		qv := &QuizView{
			Question: s.Quiz.Question,
			Options:  append([]string(nil), s.Quiz.Options...),
		}
		if revealed {
			correct := s.Quiz.CorrectIndex
			qv.CorrectIndex = &correct
		}
		view.Quiz = qv
	}

	for _, p := range s.Players {
		pv := PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			WinCounts: p.WinCounts,
		}
		if p.Answer != nil {
			view.AnswersCount++
			if revealed {
				answer := *p.Answer
				pv.Answer = &answer
			}
		}
		view.Players = append(view.Players, pv)
	}

	return view
}
