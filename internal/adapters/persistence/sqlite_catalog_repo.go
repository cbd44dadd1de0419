package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Zowie0122/quiz-party-api/internal/domain/quiz"
)

var ErrCatalogoVazio = errors.New("o catálogo de perguntas está vazio")

// SQLiteCatalog implementa QuizSource sobre a tabela catalog_quizzes.
// As alternativas são gravadas como array JSON para suportar quantidade variável.
type SQLiteCatalog struct {
	db *sql.DB
}

func NewSQLiteCatalog(db *sql.DB) *SQLiteCatalog {
	return &SQLiteCatalog{db: db}
}

// Random sorteia uma pergunta do catálogo.
func (r *SQLiteCatalog) Random(ctx context.Context) (*quiz.Quiz, error) {
	query := `
		SELECT question, options, correct_index
		FROM catalog_quizzes
		ORDER BY RANDOM() LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query)

	var question, optionsJSON string
	var correctIndex int
	if err := row.Scan(&question, &optionsJSON, &correctIndex); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCatalogoVazio
		}
		return nil, err
	}

	var options []string
	if err := json.Unmarshal([]byte(optionsJSON), &options); err != nil {
		return nil, err
	}

	return quiz.New(question, options, correctIndex)
}

// Save insere uma pergunta no catálogo (usado por seeds e testes).
func (r *SQLiteCatalog) Save(ctx context.Context, q *quiz.Quiz) error {
	if err := q.Validate(); err != nil {
		return err
	}

	options, err := json.Marshal(q.Options)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO catalog_quizzes (question, options, correct_index)
		VALUES (?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query, q.Question, string(options), q.CorrectIndex)
	return err
}
