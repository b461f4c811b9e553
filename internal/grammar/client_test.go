package grammar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
)

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("NewClient() unexpected error: %v", err)
	}
	return c
}

func TestClient_Check(t *testing.T) {
	t.Parallel()

	type request struct{ path, text, lang string }
	got := make(chan request, 1)
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		got <- request{r.URL.Path, r.PostForm.Get("text"), r.PostForm.Get("language")}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"matches":[
			{"message":"Second","offset":8,"length":3,"rule":{"id":"R2"}},
			{"message":"First","offset":0,"length":4,"replacements":[{"value":"This"},{"value":"That"}],"rule":{"id":"R1"}}
		]}`)
	})

	spans, err := c.Check(context.Background(), "Thsi is teh text")
	if err != nil {
		t.Fatalf("Check() unexpected error: %v", err)
	}

	req := <-got
	if req.path != "/v2/check" || req.text != "Thsi is teh text" || req.lang != DefaultLanguage {
		t.Errorf("request = %+v", req)
	}

	want := []Span{
		{Offset: 0, Length: 4, Message: "First", Rule: "R1", Replacements: []string{"This", "That"}},
		{Offset: 8, Length: 3, Message: "Second", Rule: "R2"},
	}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("spans = %+v, want %+v", spans, want)
	}
}

func TestClient_Check_UTF16Offsets(t *testing.T) {
	t.Parallel()

	// "\U0001F600 héllo wrold": the emoji is 2 UTF-16 units and 4 bytes,
	// é is 1 unit and 2 bytes.
	text := "\U0001F600 héllo wrold"
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"matches":[{"message":"typo","offset":9,"length":5,"rule":{"id":"SPELL"}}]}`)
	})

	spans, err := c.Check(context.Background(), text)
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	got := text[spans[0].Offset : spans[0].Offset+spans[0].Length]
	if got != "wrold" {
		t.Errorf("span covers %q, want %q", got, "wrold")
	}
}

func TestClient_Check_Errors(t *testing.T) {
	t.Parallel()

	t.Run("server error", func(t *testing.T) {
		t.Parallel()

		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		})
		_, err := c.Check(context.Background(), "text")
		if !errors.Is(err, ErrGrammarService) {
			t.Errorf("expected ErrGrammarService, got %v", err)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()

		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"matches": [`)
		})
		_, err := c.Check(context.Background(), "text")
		if !errors.Is(err, ErrGrammarService) {
			t.Errorf("expected ErrGrammarService, got %v", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"matches":[]}`)
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := c.Check(ctx, "text")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestClient_Check_EmptyTextSkipsRequest(t *testing.T) {
	t.Parallel()

	var called atomic.Bool
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		called.Store(true)
	})
	spans, err := c.Check(context.Background(), "  \n")
	if err != nil || spans != nil {
		t.Errorf("Check(blank) = %v, %v", spans, err)
	}
	if called.Load() {
		t.Error("blank text should not reach the service")
	}
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		endpoint string
		wantErr  bool
	}{
		{"default", "", false},
		{"https", "https://api.languagetool.org", false},
		{"trailing slash", "http://localhost:8081/", false},
		{"no scheme", "localhost:8081", true},
		{"ftp", "ftp://example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := NewClient(tt.endpoint, WithLanguage("fr"))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.language != "fr" {
				t.Errorf("language = %q", c.language)
			}
		})
	}
}

func TestOffsetIndex(t *testing.T) {
	t.Parallel()

	idx := newOffsetIndex("a\U0001F600b")
	tests := []struct {
		unit   int
		byteAt int
		ok     bool
	}{
		{0, 0, true},
		{1, 1, true},
		{2, 0, false}, // inside surrogate pair
		{3, 5, true},
		{4, 6, true},
		{5, 0, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		got, ok := idx.byteOffset(tt.unit)
		if ok != tt.ok || (ok && got != tt.byteAt) {
			t.Errorf("byteOffset(%d) = %d, %v; want %d, %v", tt.unit, got, ok, tt.byteAt, tt.ok)
		}
	}
}
