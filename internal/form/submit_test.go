// internal/form/submit_test.go
//
// Unit-tests for HTTPSubmitter against an httptest server.

package form

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func TestHTTPSubmitter_Success(t *testing.T) {
	var got Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"name":"A","id":"42"}`)
	}))
	defer srv.Close()

	s := NewHTTPSubmitter(srv.URL, time.Second)
	s.Client = srv.Client()

	rec, err := s.Submit(context.Background(), validValues())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if diff := cmp.Diff(validValues(), got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if rec.Status != http.StatusCreated {
		t.Fatalf("status = %d", rec.Status)
	}
	want := "{\n  \"name\": \"A\",\n  \"id\": \"42\"\n}"
	if rec.Pretty() != want {
		t.Fatalf("Pretty = %q, want %q", rec.Pretty(), want)
	}
}

func TestHTTPSubmitter_PayloadKeys(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &raw)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewHTTPSubmitter(srv.URL, 0)
	s.Client = srv.Client()
	if _, err := s.Submit(context.Background(), validValues()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	want := map[string]any{"name": "A", "email": "a@b.com", "password": "x", "tos": true}
	if diff := cmp.Diff(want, raw); diff != "" {
		t.Fatalf("wire keys mismatch (-want +got):\n%s", diff)
	}
}

func TestHTTPSubmitter_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"Missing password"}`)
	}))
	defer srv.Close()

	s := NewHTTPSubmitter(srv.URL, 0)
	s.Client = srv.Client()

	_, err := s.Submit(context.Background(), validValues())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("want *StatusError, got %v", err)
	}
	if se.Code != http.StatusBadRequest || string(se.Body) != `{"error":"Missing password"}` {
		t.Fatalf("StatusError = %d %q", se.Code, se.Body)
	}
}

func TestHTTPSubmitter_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	s := NewHTTPSubmitter(srv.URL, 50*time.Millisecond)
	s.Client = srv.Client()

	_, err := s.Submit(context.Background(), validValues())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded, got %v", err)
	}
}

func TestHTTPSubmitter_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	client := srv.Client()
	srv.Close()

	s := NewHTTPSubmitter(url, time.Second)
	s.Client = client
	if _, err := s.Submit(context.Background(), validValues()); err == nil {
		t.Fatalf("want transport error, got nil")
	}
}

func TestNewHTTPSubmitter_DefaultEndpoint(t *testing.T) {
	if s := NewHTTPSubmitter("", 0); s.Endpoint != DefaultEndpoint {
		t.Fatalf("Endpoint = %q, want %q", s.Endpoint, DefaultEndpoint)
	}
}
