package component

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
)

type stub struct {
	name string
	body string
}

func (s stub) Name() string { return s.name }

func (s stub) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(s.body)) })
	return r
}

func TestRegistry_SortedAndReplaced(t *testing.T) {
	t.Cleanup(reset)
	reset()

	Register(stub{name: "zeta"})
	Register(stub{name: "alpha", body: "old"})
	Register(stub{name: "alpha", body: "new"})

	var names []string
	for _, c := range All() {
		names = append(names, c.Name())
	}
	if diff := cmp.Diff([]string{"alpha", "zeta"}, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestMount_PrefixesByName(t *testing.T) {
	t.Cleanup(reset)
	reset()
	Register(stub{name: "signup", body: "page"})

	r := chi.NewRouter()
	if got := Mount(r); len(got) != 1 || got[0] != "signup" {
		t.Fatalf("Mount = %v", got)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/signup", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "page" {
		t.Fatalf("GET /signup = %d %q", rr.Code, rr.Body.String())
	}
}
