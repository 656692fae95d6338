package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roxydental/roxydental_backend/pkg/aiclient"
)

// Upstream is the AI service the assistant forwards to. *aiclient.Client implements it.
type Upstream interface {
	Predict(ctx context.Context) (json.RawMessage, error)
	Chat(ctx context.Context, in aiclient.ChatRequest) (json.RawMessage, error)
}

type ChatRequest struct {
	Message  string `json:"message" validate:"required"`
	UserName string `json:"user_name"`
}

type Service interface {
	Predict(ctx context.Context) (json.RawMessage, error)
	Chat(ctx context.Context, req ChatRequest) (json.RawMessage, error)
}

type assistantService struct {
	upstream Upstream
}

func New(upstream Upstream) Service {
	return &assistantService{upstream: upstream}
}

func (s *assistantService) Predict(ctx context.Context) (json.RawMessage, error) {
	out, err := s.upstream.Predict(ctx)
	if err != nil {
		return nil, s.wrap(ctx, "predict", err)
	}
	return out, nil
}

func (s *assistantService) Chat(ctx context.Context, req ChatRequest) (json.RawMessage, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return nil, ErrEmptyMessage
	}
	out, err := s.upstream.Chat(ctx, aiclient.ChatRequest{Message: msg, UserName: strings.TrimSpace(req.UserName)})
	if err != nil {
		return nil, s.wrap(ctx, "chat", err)
	}
	return out, nil
}

func (s *assistantService) wrap(ctx context.Context, op string, err error) error {
	slog.WarnContext(ctx, "ai upstream failed", "op", op, "error", err)
	if errors.Is(err, aiclient.ErrNotConfigured) || errors.Is(err, aiclient.ErrUpstream) {
		return fmt.Errorf("%s: %w", op, ErrUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
