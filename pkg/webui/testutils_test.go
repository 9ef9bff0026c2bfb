package webui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/mailcove/admin/pkg/api/client"
	"github.com/mailcove/admin/pkg/api/model"
	"github.com/mailcove/admin/pkg/config"
	"github.com/mailcove/admin/pkg/notify"
	"github.com/mailcove/admin/pkg/server/web"
)

// Routes are registered into the shared web.Router once per test binary.
var routesOnce sync.Once

// setupWebServer points the webui at a fake management API and returns the
// change hub so tests can observe dispatched events.
func setupWebServer(t *testing.T, apiURL string, pageSize int) *notify.Hub {
	t.Helper()
	conf := &config.Root{
		Web: config.Web{PageSize: pageSize, SocketHistory: 5},
	}
	c, err := client.New(apiURL, 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}

	hub := notify.New(5)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Start(ctx)

	web.Initialize(conf, make(chan bool, 1), c, hub)
	routesOnce.Do(func() {
		SetupRoutes(web.Router)
	})
	return hub
}

func testUIGet(url string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", url, nil)
	req.Header.Add("Accept", "application/json")
	req.SetBasicAuth("admin", "session-token")
	w := httptest.NewRecorder()
	web.Router.ServeHTTP(w, req)
	return w
}

func testUIPost(target string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Add("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("admin", "session-token")
	w := httptest.NewRecorder()
	web.Router.ServeHTTP(w, req)
	return w
}

// fakeDirectory serves the management API's principal listing for a fixed
// set of accounts.
func fakeDirectory(t *testing.T, accounts []model.Principal) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/principal", func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := r.BasicAuth(); !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		page := atoiDefault(r.URL.Query().Get("page"), 1)
		limit := atoiDefault(r.URL.Query().Get("limit"), 10)
		names := []string{}
		start := (page - 1) * limit
		for i := start; i < len(accounts) && i < start+limit; i++ {
			names = append(names, accounts[i].Name)
		}
		_ = json.NewEncoder(w).Encode(model.Page[string]{
			Items: names,
			Total: int64(len(accounts)),
		})
	})
	mux.HandleFunc("GET /api/principal/{name}", func(w http.ResponseWriter, r *http.Request) {
		for _, p := range accounts {
			if p.Name == r.PathValue("name") {
				_ = json.NewEncoder(w).Encode(p)
				return
			}
		}
		http.NotFound(w, r)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func atoiDefault(s string, def int) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return def
		}
		n = n*10 + int(r-'0')
	}
	if s == "" {
		return def
	}
	return n
}

// collectListener records hub events for assertions.
type collectListener struct {
	events []notify.Event
}

func (l *collectListener) Receive(ev notify.Event) error {
	l.events = append(l.events, ev)
	return nil
}
