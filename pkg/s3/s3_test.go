package s3

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/roxydental/roxydental_backend/config"
)

func TestProfilePhotoKey(t *testing.T) {
	id := uuid.MustParse("0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b")

	tests := []struct {
		name     string
		filename string
		wantExt  string
	}{
		{"jpeg", "Foto Saya.JPG", ".jpg"},
		{"png", "avatar.png", ".png"},
		{"no extension", "avatar", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := ProfilePhotoKey(id, tt.filename)
			prefix := "profiles/" + id.String() + "/"
			if !strings.HasPrefix(key, prefix) {
				t.Fatalf("ProfilePhotoKey() = %q, want prefix %q", key, prefix)
			}
			rest := strings.TrimPrefix(key, prefix)
			if !strings.HasSuffix(rest, tt.wantExt) {
				t.Errorf("ProfilePhotoKey() = %q, want ext %q", key, tt.wantExt)
			}
			if _, err := uuid.Parse(strings.TrimSuffix(rest, tt.wantExt)); err != nil {
				t.Errorf("ProfilePhotoKey() object name is not a uuid: %q", rest)
			}
		})
	}
}

func TestClient_URL_PublicBase(t *testing.T) {
	c, err := New(config.S3Config{
		Endpoint:      "http://localhost:9000",
		Region:        "us-east-1",
		Bucket:        "roxydental",
		PublicBaseURL: "https://cdn.roxydental.id/",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, err := c.URL(context.Background(), "profiles/x/y.png")
	if err != nil {
		t.Fatalf("URL() error = %v", err)
	}
	if got != "https://cdn.roxydental.id/profiles/x/y.png" {
		t.Errorf("URL() = %q", got)
	}
}

func TestNew_RequiresBucket(t *testing.T) {
	if _, err := New(config.S3Config{Region: "us-east-1"}); err == nil {
		t.Error("New() error = nil, want bucket error")
	}
}
