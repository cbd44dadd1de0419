package persistence

import (
	"context"
	"math/rand"

	"github.com/Zowie0122/quiz-party-api/internal/domain/quiz"
)

// StaticCatalog implementa QuizSource com uma lista fixa embutida.
// É o fallback quando nenhum banco de dados está configurado.
type StaticCatalog struct {
	quizzes []quiz.Quiz
}

// DefaultQuizzes é o catálogo embutido padrão.
var DefaultQuizzes = []quiz.Quiz{
	{
		Question:     "Qual é a capital da Austrália?",
		Options:      []string{"Sydney", "Canberra", "Melbourne", "Perth"},
		CorrectIndex: 1,
	},
	{
		Question:     "Quantos planetas tem o Sistema Solar?",
		Options:      []string{"7", "8", "9", "10"},
		CorrectIndex: 1,
	},
	{
		Question:     "Em que ano o homem pisou na Lua pela primeira vez?",
		Options:      []string{"1961", "1969", "1972"},
		CorrectIndex: 1,
	},
	{
		Question:     "Qual destes não é uma linguagem de programação?",
		Options:      []string{"Rust", "Kotlin", "Laravel", "Elixir"},
		CorrectIndex: 2,
	},
}

func NewStaticCatalog(quizzes []quiz.Quiz) *StaticCatalog {
	if len(quizzes) == 0 {
		quizzes = DefaultQuizzes
	}
	return &StaticCatalog{quizzes: quizzes}
}

// Random sorteia uma pergunta da lista.
func (c *StaticCatalog) Random(_ context.Context) (*quiz.Quiz, error) {
	if len(c.quizzes) == 0 {
		return nil, ErrCatalogoVazio
	}

	picked := c.quizzes[rand.Intn(len(c.quizzes))]
	// Copia as alternativas para a rodada não compartilhar memória com o catálogo
	q := &quiz.Quiz{
		Question:     picked.Question,
		Options:      append([]string(nil), picked.Options...),
		CorrectIndex: picked.CorrectIndex,
	}
	return q, nil
}
