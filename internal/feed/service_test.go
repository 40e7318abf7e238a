package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ecoraiz/inat-events/internal/events"
	"github.com/ecoraiz/inat-events/internal/inat"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(noopWriter{}, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }

func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := inat.NewClient(server.URL, 5*time.Second)
	return NewService(client, discardLogger()), server
}

func observationJSON(id int, title, place string) string {
	return fmt.Sprintf(`{
		"id": %d,
		"observed_on_string": "2024-03-01T14:30:00Z",
		"place_guess": %q,
		"photos": [{"id": 1, "url": "https://example.com/photos/%d/square.jpg"}],
		"taxon": {"id": 10, "preferred_common_name": %q}
	}`, id, place, id, title)
}

func TestService_FeaturedEvents_MapsAndFilters(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		// One complete record, one without photos, one without a location.
		fmt.Fprintf(w, `{"total_results": 3, "page": 1, "per_page": 10, "results": [
			%s,
			{"id": 2, "observed_on_string": "2024-03-02", "place_guess": "Cholula",
			 "taxon": {"id": 11, "preferred_common_name": "Muérdago"}},
			{"id": 3, "observed_on_string": "2024-03-03",
			 "photos": [{"id": 3, "url": "https://example.com/photos/3/square.jpg"}],
			 "taxon": {"id": 12, "preferred_common_name": "Caña común"}}
		]}`, observationJSON(1, "Lirio acuático", "Presa Allende"))
	})

	list, err := svc.FeaturedEvents(context.Background(), 6793, 10)
	if err != nil {
		t.Fatalf("FeaturedEvents failed: %v", err)
	}

	if len(list) != 1 {
		t.Fatalf("expected 1 accepted event, got %d", len(list))
	}
	if list[0].ID != 1 || list[0].Title != "Lirio acuático" {
		t.Errorf("unexpected event %+v", list[0])
	}
	if list[0].ImageURL != "https://example.com/photos/1/medium.jpg" {
		t.Errorf("unexpected image URL %q", list[0].ImageURL)
	}
}

func TestService_FeaturedEvents_ZeroAfterFilteringIsSuccess(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		// All records lack photos; everything is filtered.
		fmt.Fprint(w, `{"total_results": 1, "page": 1, "per_page": 10, "results": [
			{"id": 2, "observed_on_string": "2024-03-02", "place_guess": "Cholula"}
		]}`)
	})

	list, err := svc.FeaturedEvents(context.Background(), 6793, 10)
	if err != nil {
		t.Fatalf("expected success with zero usable records, got %v", err)
	}
	if list == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(list) != 0 {
		t.Errorf("expected 0 events, got %d", len(list))
	}
}

func TestService_FeaturedEvents_UpstreamFailureIsNotEmptySuccess(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	list, err := svc.FeaturedEvents(context.Background(), 6793, 10)
	if err == nil {
		t.Fatal("expected failure for 500 response, got success")
	}
	if list != nil {
		t.Errorf("failed fetch must not return a list, got %v", list)
	}
}

func TestService_NearbyObservations_EmptyTaxaSkipsNetwork(t *testing.T) {
	var requests atomic.Int32
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, `{"total_results": 0, "page": 1, "per_page": 10, "results": []}`)
	})

	list, err := svc.NearbyObservations(context.Background(), 19.04, -98.2, 30, nil, 10)
	if err != nil {
		t.Fatalf("expected empty success, got %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("expected empty observation list, got %v", list)
	}
	if got := requests.Load(); got != 0 {
		t.Errorf("expected no HTTP requests for an empty taxon list, got %d", got)
	}
}

func TestService_NearbyObservations_PassesThroughUnfiltered(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("taxon_id"); got != "962637,64017" {
			t.Errorf("expected taxon_id 962637,64017, got %q", got)
		}
		// One geotagged record, one without photos or coordinates: both pass.
		fmt.Fprint(w, `{"total_results": 2, "page": 1, "per_page": 10, "results": [
			{"id": 1, "geojson": {"type": "Point", "coordinates": [-98.2, 19.04]}},
			{"id": 2}
		]}`)
	})

	list, err := svc.NearbyObservations(context.Background(), 19.04, -98.2, 30, []int{962637, 64017}, 10)
	if err != nil {
		t.Fatalf("NearbyObservations failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("nearby fetch must not filter records, got %d of 2", len(list))
	}
}

// countingDispatcher runs completions serially and counts deliveries.
type countingDispatcher struct {
	mu    sync.Mutex
	calls int
}

func (d *countingDispatcher) Dispatch(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	fn()
}

func TestService_FeaturedEventsAsync_ExactlyOnce(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"total_results": 1, "page": 1, "per_page": 10, "results": [%s]}`,
			observationJSON(1, "Lirio acuático", "Presa Allende"))
	})

	dispatcher := &countingDispatcher{}

	var wg sync.WaitGroup
	var completions atomic.Int32
	wg.Add(1)
	svc.FeaturedEventsAsync(context.Background(), 6793, 10, dispatcher, func(list []events.FeaturedEvent, err error) {
		defer wg.Done()
		completions.Add(1)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(list) != 1 {
			t.Errorf("expected 1 event, got %d", len(list))
		}
	})
	wg.Wait()

	if got := completions.Load(); got != 1 {
		t.Errorf("expected exactly one completion, got %d", got)
	}
	if dispatcher.calls != 1 {
		t.Errorf("expected completion delivered via dispatcher, got %d dispatches", dispatcher.calls)
	}
}

func TestSerialDispatcher_DispatchAfterStopIsNoOp(t *testing.T) {
	dispatcher := NewSerialDispatcher()
	dispatcher.Stop()

	var ran atomic.Bool
	dispatcher.Dispatch(func() { ran.Store(true) })

	if ran.Load() {
		t.Error("stopped dispatcher must not run late completions")
	}

	// Stop is idempotent.
	dispatcher.Stop()
}

func TestService_FeaturedEventsAsync_ConcurrentCallsDoNotCrossContaminate(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("place_id") {
		case "100":
			fmt.Fprintf(w, `{"total_results": 1, "page": 1, "per_page": 10, "results": [%s]}`,
				observationJSON(100, "Lirio acuático", "Presa Allende"))
		case "200":
			fmt.Fprintf(w, `{"total_results": 1, "page": 1, "per_page": 10, "results": [%s]}`,
				observationJSON(200, "Muérdago", "Cholula"))
		default:
			t.Errorf("unexpected place_id %q", r.URL.Query().Get("place_id"))
			w.WriteHeader(http.StatusBadRequest)
		}
	})

	dispatcher := NewSerialDispatcher()
	defer dispatcher.Stop()

	var wg sync.WaitGroup
	results := make(map[int]string)
	var mu sync.Mutex

	for _, placeID := range []int{100, 200} {
		wg.Add(1)
		svc.FeaturedEventsAsync(context.Background(), placeID, 10, dispatcher, func(list []events.FeaturedEvent, err error) {
			defer wg.Done()
			if err != nil {
				t.Errorf("place %d: unexpected error: %v", placeID, err)
				return
			}
			if len(list) != 1 {
				t.Errorf("place %d: expected 1 event, got %d", placeID, len(list))
				return
			}
			mu.Lock()
			results[placeID] = list[0].Title
			mu.Unlock()
		})
	}
	wg.Wait()

	if results[100] != "Lirio acuático" {
		t.Errorf("place 100 got %q, want Lirio acuático", results[100])
	}
	if results[200] != "Muérdago" {
		t.Errorf("place 200 got %q, want Muérdago", results[200])
	}
}
