package download

import (
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestShuffleMirrors(t *testing.T) {
	mirrors := []string{"a", "b", "c", "d", "e"}

	r := rand.New(rand.NewSource(42))
	shuffled := ShuffleMirrors(r, mirrors)

	if len(shuffled) != len(mirrors) {
		t.Fatalf("shuffled has %d entries, want %d", len(shuffled), len(mirrors))
	}

	// Input must not be mutated
	for i, m := range []string{"a", "b", "c", "d", "e"} {
		if mirrors[i] != m {
			t.Fatalf("input list was mutated: %v", mirrors)
		}
	}

	// Same seed gives the same order
	r2 := rand.New(rand.NewSource(42))
	again := ShuffleMirrors(r2, mirrors)
	for i := range shuffled {
		if shuffled[i] != again[i] {
			t.Errorf("same seed produced different order: %v vs %v", shuffled, again)
			break
		}
	}

	// Every mirror still present
	seen := make(map[string]bool)
	for _, m := range shuffled {
		seen[m] = true
	}
	for _, m := range mirrors {
		if !seen[m] {
			t.Errorf("mirror %q lost in shuffle", m)
		}
	}
}

func TestFetchFirstFallsThrough(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer bad.Close()

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 with empty body is a soft failure too
	}))
	defer empty.Close()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer good.Close()

	body, err := FetchFirst(http.DefaultClient, []string{bad.URL, empty.URL, good.URL})
	if err != nil {
		t.Fatalf("FetchFirst() error = %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("FetchFirst() body = %s", body)
	}
}

func TestFetchFirstExhaustion(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer bad.Close()

	if _, err := FetchFirst(http.DefaultClient, []string{bad.URL, bad.URL}); err == nil {
		t.Error("FetchFirst() with all mirrors failing should error")
	}

	if _, err := FetchFirst(http.DefaultClient, nil); err == nil {
		t.Error("FetchFirst() with no mirrors should error")
	}
}
