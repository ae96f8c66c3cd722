package media

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/spendflow/spend-console/internal/core/domain"
)

func TestUpload_SendsPresetAndReturnsSecureURL(t *testing.T) {
	var fields map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			t.Errorf("parse content type: %v", err)
			return
		}
		mr := multipart.NewReader(r.Body, params["boundary"])
		fields = map[string]string{}
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Errorf("read part: %v", err)
				return
			}
			data, _ := io.ReadAll(part)
			fields[part.FormName()] = string(data)
		}
		w.Write([]byte(`{"secure_url":"https://media.example.com/v1/receipt.png"}`))
	}))
	defer srv.Close()

	u := New(Config{UploadURL: srv.URL, Preset: "spendflow_preset", Logger: zerolog.Nop()})
	url, err := u.Upload(context.Background(), "receipt.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "https://media.example.com/v1/receipt.png" {
		t.Fatalf("url = %q", url)
	}
	if fields["upload_preset"] != "spendflow_preset" {
		t.Fatalf("preset field = %q", fields["upload_preset"])
	}
	if fields["file"] != "png-bytes" {
		t.Fatalf("file field = %q", fields["file"])
	}
}

func TestUpload_FailureIsGeneric(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid upload preset"}}`))
	}))
	defer srv.Close()

	u := New(Config{UploadURL: srv.URL, Preset: "bad", Logger: zerolog.Nop()})
	_, err := u.Upload(context.Background(), "receipt.png", strings.NewReader("x"))
	if !errors.Is(err, domain.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
}
