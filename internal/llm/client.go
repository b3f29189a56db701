package llm

import "context"

// Client минимальный публичный интерфейс для отправки промпта в модель.
type Client interface {
	Forward(ctx context.Context, prompt string) (string, error)
}
