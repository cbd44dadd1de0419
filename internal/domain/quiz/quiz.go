package quiz

import "errors"

// MinOptions é o número mínimo de alternativas de uma pergunta.
const MinOptions = 2

var (
	ErrEnunciadoObrigatorio = errors.New("o enunciado (question) é obrigatório")
	ErrPoucasAlternativas   = errors.New("a pergunta deve ter pelo menos 2 alternativas preenchidas")
	ErrIndiceInvalido       = errors.New("o índice da resposta correta deve apontar para uma alternativa existente")
)

// Quiz representa o conteúdo de uma rodada: pergunta de múltipla escolha
// com alternativas ordenadas e o índice da resposta correta (bingo).
type Quiz struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// New cria uma pergunta validada.
func New(question string, options []string, correctIndex int) (*Quiz, error) {
	q := &Quiz{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}

	return q, nil
}

// Validate verifica se a pergunta é válida.
func (q *Quiz) Validate() error {
	if q.Question == "" {
		return ErrEnunciadoObrigatorio
	}
	if len(q.Options) < MinOptions {
		return ErrPoucasAlternativas
	}
	for _, opt := range q.Options {
		if opt == "" {
			return ErrPoucasAlternativas
		}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ErrIndiceInvalido
	}
	return nil
}
