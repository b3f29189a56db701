package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"codeassist/internal/config"

	"github.com/buger/jsonparser"
	"go.uber.org/zap"
)

// NoResultText возвращается, когда успешный ответ не содержит текста модели.
const NoResultText = "No result found."

// Итоги вызова для метрик.
const (
	OutcomeSuccess      = "success"
	OutcomeFallback     = "fallback"
	OutcomeHTTPError    = string(KindHTTP)
	OutcomeNetworkError = string(KindNetwork)
)

// OutcomeRecorder получает итог каждого вызова Forward.
type OutcomeRecorder interface {
	RecordForward(outcome string, elapsed time.Duration)
}

type Option func(*Forwarder)

// WithRecorder подключает учёт итогов вызовов.
func WithRecorder(r OutcomeRecorder) Option {
	return func(f *Forwarder) {
		f.recorder = r
	}
}

// Forwarder отправляет промпт в chat-completion API одним запросом, без ретраев.
type Forwarder struct {
	cfg        *config.GroqConfig
	httpClient *http.Client
	logger     *zap.Logger
	recorder   OutcomeRecorder
}

var _ Client = (*Forwarder)(nil)

func NewForwarder(cfg *config.GroqConfig, httpClient *http.Client, logger *zap.Logger, opts ...Option) *Forwarder {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Forwarder{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Forward выполняет один POST и возвращает текст первого варианта ответа.
// Пустой промпт отсекается вызывающей стороной. Любая неудача возвращается
// как *ForwardError.
func (f *Forwarder) Forward(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	text, outcome, err := f.do(ctx, prompt)
	elapsed := time.Since(start)
	if f.recorder != nil {
		f.recorder.RecordForward(outcome, elapsed)
	}

	fields := []zap.Field{
		zap.String("model", f.cfg.Model),
		zap.String("outcome", outcome),
		zap.Int("prompt_len", len(prompt)),
		zap.Duration("duration", elapsed),
	}
	switch {
	case err != nil:
		f.logger.Warn("prompt forward failed", append(fields, zap.Error(err))...)
	case outcome == OutcomeFallback:
		f.logger.Warn("completion without content, returning fallback", fields...)
	default:
		f.logger.Debug("prompt forwarded", fields...)
	}
	return text, err
}

func (f *Forwarder) do(ctx context.Context, prompt string) (string, string, error) {
	buf, err := json.Marshal(chatRequest{
		Model:    f.cfg.Model,
		Messages: []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", OutcomeNetworkError, newNetworkError(fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.cfg.Endpoint, bytes.NewReader(buf))
	if err != nil {
		return "", OutcomeNetworkError, newNetworkError(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+f.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", OutcomeNetworkError, newNetworkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", OutcomeNetworkError, newNetworkError(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", OutcomeHTTPError, newHTTPError(resp.StatusCode, string(body))
	}

	text, ok := firstChoiceContent(body)
	if !ok {
		return NoResultText, OutcomeFallback, nil
	}
	return text, OutcomeSuccess, nil
}

// firstChoiceContent достаёт choices[0].message.content.
// false, если тело не валидный JSON, поля нет, оно не строка или пустое.
func firstChoiceContent(body []byte) (string, bool) {
	if !json.Valid(body) {
		return "", false
	}
	text, err := jsonparser.GetString(body, "choices", "[0]", "message", "content")
	if err != nil || text == "" {
		return "", false
	}
	return text, true
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
