package aiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/predict":
			w.Write([]byte(`{"prediction":[12,15,9]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/chat":
			var in ChatRequest
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				http.Error(w, "bad", http.StatusBadRequest)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"reply": "Halo " + in.UserName})
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewWithHTTPClient(srv.URL+"/", srv.Client())
	ctx := context.Background()

	got, err := c.Predict(ctx)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if string(got) != `{"prediction":[12,15,9]}` {
		t.Errorf("Predict() = %s", got)
	}

	got, err = c.Chat(ctx, ChatRequest{Message: "jadwal?", UserName: "Rina"})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	var reply map[string]string
	if err := json.Unmarshal(got, &reply); err != nil || reply["reply"] != "Halo Rina" {
		t.Errorf("Chat() = %s, err %v", got, err)
	}

	if _, err := c.do(ctx, http.MethodGet, "/missing", nil); !errors.Is(err, ErrUpstream) {
		t.Errorf("do() error = %v, wantErr %v", err, ErrUpstream)
	}
}

func TestClient_Failures(t *testing.T) {
	notJSON := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	}))
	defer notJSON.Close()

	tests := []struct {
		name    string
		client  *Client
		wantErr error
	}{
		{"not configured", NewWithHTTPClient("", http.DefaultClient), ErrNotConfigured},
		{"non json body", NewWithHTTPClient(notJSON.URL, notJSON.Client()), ErrUpstream},
		{"unreachable", NewWithHTTPClient("http://127.0.0.1:1", http.DefaultClient), ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.client.Predict(context.Background()); !errors.Is(err, tt.wantErr) {
				t.Errorf("Predict() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
