package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/roxydental/roxydental_backend/pkg/aiclient"
)

type fakeUpstream struct {
	got aiclient.ChatRequest
	err error
}

func (f *fakeUpstream) Predict(context.Context) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"prediction":[12,14]}`), nil
}

func (f *fakeUpstream) Chat(_ context.Context, in aiclient.ChatRequest) (json.RawMessage, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"reply":"halo"}`), nil
}

func TestChat(t *testing.T) {
	up := &fakeUpstream{}
	svc := New(up)

	out, err := svc.Chat(context.Background(), ChatRequest{Message: "  sakit gigi  ", UserName: "drg. Rina"})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if string(out) != `{"reply":"halo"}` {
		t.Errorf("Chat() = %s", out)
	}
	if up.got.Message != "sakit gigi" || up.got.UserName != "drg. Rina" {
		t.Errorf("forwarded = %+v", up.got)
	}

	if _, err := svc.Chat(context.Background(), ChatRequest{Message: " "}); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("Chat() error = %v, wantErr %v", err, ErrEmptyMessage)
	}
}

func TestUpstreamErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"upstream", fmt.Errorf("%w: status 500", aiclient.ErrUpstream), ErrUnavailable},
		{"not configured", aiclient.ErrNotConfigured, ErrUnavailable},
		{"canceled", context.Canceled, context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(&fakeUpstream{err: tt.err})
			if _, err := svc.Predict(context.Background()); !errors.Is(err, tt.wantErr) {
				t.Errorf("Predict() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
