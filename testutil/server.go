package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// SampleItems mixes the field naming schemes the assistant service has used
var SampleItems = []map[string]interface{}{
	{"item_id": "L-001", "item_name": "Budget Laptop", "price": 449.0, "item_quantity": 12.0, "maximum_discount": 0.05, "item_description": "14 inch, 8GB RAM"},
	{"item_id": "P-010", "name": "Pen", "item_price": 1.5},
	{"id": "D-100", "name": "Desk", "price": 99.0, "description": "Oak desk", "maximum_discount": 0.0},
}

// FakeService is an in-process stand-in for the assistant service
type FakeService struct {
	*httptest.Server

	mu       sync.Mutex
	queries  []map[string]string
	respond  func(query string) (int, interface{})
	items    []map[string]interface{}
	itemsErr bool
}

// NewFakeService starts a fake service that echoes queries back
func NewFakeService(t *testing.T) *FakeService {
	t.Helper()
	f := &FakeService{items: SampleItems}
	f.respond = func(query string) (int, interface{}) {
		return http.StatusOK, map[string]interface{}{
			"response":    "You asked: " + query,
			"suggestions": []string{"Tell me more"},
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/query", f.handleQuery)
	mux.HandleFunc("/items", f.handleItems)
	mux.HandleFunc("/items/search", f.handleSearch)
	mux.HandleFunc("/items/", f.handleItem)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "message": "Items Sales AI Agent is running"})
	})
	mux.HandleFunc("/conversation/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/conversation/")
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"session_id": id,
			"history":    []map[string]string{{"user": "hello", "assistant": "hi"}},
		})
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

// Respond replaces the /query handler's answer
func (f *FakeService) Respond(fn func(query string) (status int, body interface{})) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.respond = fn
}

// FailItems makes /items answer with a server error
func (f *FakeService) FailItems() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.itemsErr = true
}

// Queries returns the /query request bodies received so far
func (f *FakeService) Queries() []map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]string, len(f.queries))
	copy(out, f.queries)
	return out
}

func (f *FakeService) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body map[string]string
	data, _ := io.ReadAll(r.Body)
	if err := json.Unmarshal(data, &body); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	f.mu.Lock()
	f.queries = append(f.queries, body)
	respond := f.respond
	f.mu.Unlock()

	status, resp := respond(body["query"])
	if raw, ok := resp.(string); ok {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(raw))
		return
	}
	writeJSON(w, status, resp)
}

func (f *FakeService) handleItems(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	failing, items := f.itemsErr, f.items
	f.mu.Unlock()
	if failing {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "boom"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (f *FakeService) handleSearch(w http.ResponseWriter, r *http.Request) {
	var q struct {
		SearchQuery string `json:"search_query"`
	}
	_ = json.NewDecoder(r.Body).Decode(&q)

	var out []map[string]interface{}
	for _, item := range f.items {
		name, _ := item["item_name"].(string)
		if name == "" {
			name, _ = item["name"].(string)
		}
		if strings.Contains(strings.ToLower(name), strings.ToLower(q.SearchQuery)) {
			out = append(out, item)
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": out, "count": len(out)})
}

func (f *FakeService) handleItem(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/items/")
	for _, item := range f.items {
		if item["item_id"] == id || item["id"] == id {
			writeJSON(w, http.StatusOK, map[string]interface{}{"item": item})
			return
		}
	}
	// the real service answers a missing item with a [body, status] pair
	writeJSON(w, http.StatusOK, []interface{}{map[string]string{"error": "Item with ID " + id + " not found"}, 404})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
