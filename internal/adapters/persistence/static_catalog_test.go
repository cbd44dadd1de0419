package persistence

import (
	"context"
	"testing"

	"github.com/Zowie0122/quiz-party-api/internal/domain/quiz"
)

func TestStaticCatalogRandom(t *testing.T) {
	c := NewStaticCatalog(nil)

	for i := 0; i < 20; i++ {
		q, err := c.Random(context.Background())
		if err != nil {
			t.Fatalf("sorteio falhou: %v", err)
		}
		if err := q.Validate(); err != nil {
			t.Fatalf("catálogo embutido contém pergunta inválida: %v", err)
		}
	}
}

func TestStaticCatalogRandomReturnsCopy(t *testing.T) {
	source := []quiz.Quiz{{
		Question:     "q",
		Options:      []string{"a", "b"},
		CorrectIndex: 0,
	}}
	c := NewStaticCatalog(source)

	q, err := c.Random(context.Background())
	if err != nil {
		t.Fatalf("sorteio falhou: %v", err)
	}

	q.Options[0] = "mudado"
	if source[0].Options[0] != "a" {
		t.Fatal("o sorteio compartilha memória com o catálogo")
	}
}
