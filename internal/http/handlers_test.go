package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/realestate-crm/internal/testfixtures"
)

type apiClient struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func newAPIClient(t *testing.T, opts ...testfixtures.ServiceFactoryOption) *apiClient {
	t.Helper()
	handler, _ := testfixtures.NewServiceFactory(opts...).NewHandler(t)
	return &apiClient{t: t, handler: handler}
}

func (c *apiClient) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

func (c *apiClient) login(email string) map[string]any {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/sessions", `{"email":"`+email+`","password":"hemligt"}`)
	if rec.Code != http.StatusCreated {
		c.t.Fatalf("login: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decode[map[string]any](c.t, rec)
	c.token, _ = body["token"].(string)
	return body
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func idsOf(t *testing.T, items []map[string]any) []string {
	t.Helper()
	out := make([]string, 0, len(items))
	for _, item := range items {
		id, _ := item["id"].(string)
		out = append(out, id)
	}
	return out
}

func equalStrings(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestAuthHandlers(t *testing.T) {
	t.Parallel()

	t.Run("login issues session token via cookie and header", func(t *testing.T) {
		t.Parallel()
		api := newAPIClient(t)

		rec := api.do(http.MethodPost, "/sessions", `{"email":"anna.lind@crm.se","password":"hemligt"}`)
		expectStatus(t, rec, http.StatusCreated)

		if got := rec.Header().Get("X-Session-Token"); got != "token-1" {
			t.Fatalf("expected X-Session-Token token-1, got %q", got)
		}
		var cookie *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == "session_token" {
				cookie = c
			}
		}
		if cookie == nil || cookie.Value != "token-1" || !cookie.HttpOnly {
			t.Fatalf("expected http-only session cookie, got %+v", cookie)
		}

		body := decode[map[string]any](t, rec)
		if body["welcome"] != true || body["message"] != "Välkommen till CRM-systemet!" {
			t.Fatalf("expected welcome on first login, got %v", body)
		}
	})

	t.Run("welcome is reported once per email", func(t *testing.T) {
		t.Parallel()
		api := newAPIClient(t)

		api.login("maria.ek@crm.se")
		second := api.login("maria.ek@crm.se")
		if second["welcome"] != false {
			t.Fatalf("expected no welcome on second login, got %v", second)
		}
		if _, ok := second["message"]; ok {
			t.Fatalf("expected message to be omitted, got %v", second["message"])
		}
	})

	t.Run("login rejects blank credentials", func(t *testing.T) {
		t.Parallel()
		api := newAPIClient(t)

		rec := api.do(http.MethodPost, "/sessions", `{"email":"  ","password":""}`)
		expectStatus(t, rec, http.StatusUnauthorized)
		body := decode[map[string]any](t, rec)
		if body["error_code"] != "AUTH_INVALID_CREDENTIALS" {
			t.Fatalf("unexpected error body: %v", body)
		}
	})

	t.Run("login rejects malformed bodies", func(t *testing.T) {
		t.Parallel()
		api := newAPIClient(t)

		rec := api.do(http.MethodPost, "/sessions", `{"email":`)
		expectStatus(t, rec, http.StatusBadRequest)
	})

	t.Run("logout revokes the session", func(t *testing.T) {
		t.Parallel()
		api := newAPIClient(t)
		api.login("anna.lind@crm.se")

		expectStatus(t, api.do(http.MethodDelete, "/sessions/current", ""), http.StatusNoContent)

		rec := api.do(http.MethodGet, "/clients", "")
		expectStatus(t, rec, http.StatusUnauthorized)
		if body := decode[map[string]any](t, rec); body["error_code"] != "AUTH_SESSION_INVALID" {
			t.Fatalf("unexpected error body: %v", body)
		}
	})
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	t.Parallel()
	api := newAPIClient(t)

	for _, path := range []string{"/clients", "/properties", "/colleagues", "/rooms", "/calendar", "/search?q=st", "/dashboard"} {
		rec := api.do(http.MethodGet, path, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rec.Code)
		}
	}

	expectStatus(t, api.do(http.MethodGet, "/healthz", ""), http.StatusOK)
}

func TestClientHandlers(t *testing.T) {
	t.Parallel()

	t.Run("list filters by type", func(t *testing.T) {
		t.Parallel()
		api := newAPIClient(t)
		api.login("anna.lind@crm.se")

		rec := api.do(http.MethodGet, "/clients?type=buyer", "")
		expectStatus(t, rec, http.StatusOK)
		body := decode[struct {
			Clients []map[string]any `json:"clients"`
		}](t, rec)
		if got := idsOf(t, body.Clients); !equalStrings(got, []string{"c1", "c4"}) {
			t.Fatalf("expected buyers c1,c4, got %v", got)
		}
	})

	t.Run("list rejects unknown type with translated message", func(t *testing.T) {
		t.Parallel()
		api := newAPIClient(t)
		api.login("anna.lind@crm.se")

		rec := api.do(http.MethodGet, "/clients?type=tenant", "")
		expectStatus(t, rec, http.StatusUnprocessableEntity)
		body := decode[struct {
			Errors map[string]string `json:"errors"`
		}](t, rec)
		if body.Errors["type"] != "Ogiltig typ." {
			t.Fatalf("unexpected errors: %v", body.Errors)
		}
	})

	t.Run("detail joins activities, properties and offers", func(t *testing.T) {
		t.Parallel()
		api := newAPIClient(t)
		api.login("anna.lind@crm.se")

		rec := api.do(http.MethodGet, "/clients/c1", "")
		expectStatus(t, rec, http.StatusOK)
		body := decode[struct {
			Client struct {
				InterestLevel   int     `json:"interest_level"`
				LastInteraction *string `json:"last_interaction"`
			} `json:"client"`
			Activities          []map[string]any `json:"activities"`
			OwnedProperties     []map[string]any `json:"owned_properties"`
			PurchasedProperties []map[string]any `json:"purchased_properties"`
			Offers              []map[string]any `json:"offers"`
		}](t, rec)

		if body.Client.InterestLevel != 6 {
			t.Fatalf("expected interest level 6, got %d", body.Client.InterestLevel)
		}
		if body.Client.LastInteraction == nil || *body.Client.LastInteraction != "2026-09-10T09:00:00Z" {
			t.Fatalf("unexpected last interaction %v", body.Client.LastInteraction)
		}
		if got := idsOf(t, body.Activities); !equalStrings(got, []string{"a1", "a3"}) {
			t.Fatalf("expected activities newest first, got %v", got)
		}
		if len(body.OwnedProperties) != 0 {
			t.Fatalf("expected no owned properties, got %v", body.OwnedProperties)
		}
		if got := idsOf(t, body.PurchasedProperties); !equalStrings(got, []string{"p2"}) {
			t.Fatalf("expected purchased p2, got %v", got)
		}
		if len(body.Offers) != 2 {
			t.Fatalf("expected 2 offers, got %d", len(body.Offers))
		}
	})

	t.Run("unknown client maps to 404", func(t *testing.T) {
		t.Parallel()
		api := newAPIClient(t)
		api.login("anna.lind@crm.se")

		rec := api.do(http.MethodGet, "/clients/nope", "")
		expectStatus(t, rec, http.StatusNotFound)
		if body := decode[map[string]any](t, rec); body["message"] != "Posten kunde inte hittas." {
			t.Fatalf("unexpected message: %v", body)
		}
	})
}

func TestPropertyHandlers(t *testing.T) {
	t.Parallel()

	t.Run("list sorts by price", func(t *testing.T) {
		t.Parallel()
		api := newAPIClient(t)
		api.login("anna.lind@crm.se")

		rec := api.do(http.MethodGet, "/properties?sort=price_asc", "")
		expectStatus(t, rec, http.StatusOK)
		body := decode[struct {
			Properties []map[string]any `json:"properties"`
		}](t, rec)
		if got := idsOf(t, body.Properties); !equalStrings(got, []string{"p3", "p1", "p4", "p2"}) {
			t.Fatalf("unexpected order %v", got)
		}
		for _, p := range body.Properties {
			if _, ok := p["images"].([]any); !ok {
				t.Fatalf("expected images array on %v", p["id"])
			}
		}
	})

	t.Run("invalid sort returns Swedish validation message", func(t *testing.T) {
		t.Parallel()
		api := newAPIClient(t)
		api.login("anna.lind@crm.se")

		rec := api.do(http.MethodGet, "/properties?sort=cheapest", "")
		expectStatus(t, rec, http.StatusUnprocessableEntity)
		body := decode[struct {
			Message string            `json:"message"`
			Errors  map[string]string `json:"errors"`
		}](t, rec)
		if body.Message != "Uppgifterna innehåller fel." || body.Errors["sort"] != "Ogiltig sortering." {
			t.Fatalf("unexpected body: %+v", body)
		}
	})

	t.Run("detail resolves related records and tolerates dangling references", func(t *testing.T) {
		t.Parallel()
		api := newAPIClient(t, testfixtures.WithSnapshotOptions(testfixtures.WithDanglingReferences()))
		api.login("anna.lind@crm.se")

		rec := api.do(http.MethodGet, "/properties/p1", "")
		expectStatus(t, rec, http.StatusOK)
		body := decode[struct {
			Agent            map[string]any   `json:"agent"`
			Owner            map[string]any   `json:"owner"`
			Buyer            map[string]any   `json:"buyer"`
			UpcomingViewings []map[string]any `json:"upcoming_viewings"`
		}](t, rec)
		if body.Agent["id"] != "u1" || body.Owner["id"] != "c2" || body.Buyer != nil {
			t.Fatalf("unexpected relations: agent=%v owner=%v buyer=%v", body.Agent, body.Owner, body.Buyer)
		}
		if got := idsOf(t, body.UpcomingViewings); !equalStrings(got, []string{"a2", "a1"}) {
			t.Fatalf("expected viewings soonest first, got %v", got)
		}

		orphan := api.do(http.MethodGet, "/properties/p-orphan", "")
		expectStatus(t, orphan, http.StatusOK)
		relations := decode[map[string]any](t, orphan)
		if relations["agent"] != nil || relations["owner"] != nil {
			t.Fatalf("expected null agent and owner, got %v / %v", relations["agent"], relations["owner"])
		}
	})
}

func TestColleagueHandlers(t *testing.T) {
	t.Parallel()
	api := newAPIClient(t)
	api.login("anna.lind@crm.se")

	rec := api.do(http.MethodGet, "/colleagues/u1/stats", "")
	expectStatus(t, rec, http.StatusOK)
	body := decode[struct {
		AgentID string         `json:"agent_id"`
		Stats   map[string]int `json:"stats"`
	}](t, rec)
	if body.AgentID != "u1" || body.Stats["available"] != 2 || body.Stats["sold"] != 1 || body.Stats["total"] != 3 {
		t.Fatalf("unexpected stats: %+v", body)
	}

	list := decode[struct {
		Colleagues []map[string]any `json:"colleagues"`
		Offices    []string         `json:"offices"`
	}](t, api.do(http.MethodGet, "/colleagues?office=Stockholm", ""))
	if got := idsOf(t, list.Colleagues); !equalStrings(got, []string{"u1", "u3"}) {
		t.Fatalf("expected Stockholm colleagues, got %v", got)
	}

	expectStatus(t, api.do(http.MethodGet, "/colleagues/u-missing", ""), http.StatusNotFound)
}

func TestRoomHandlers(t *testing.T) {
	t.Parallel()

	t.Run("booking draft reports field errors without failing the request", func(t *testing.T) {
		t.Parallel()
		api := newAPIClient(t)
		api.login("anna.lind@crm.se")

		rec := api.do(http.MethodPost, "/rooms/r1/booking-drafts", `{"title":"","date":"2026-09-16","start":"10:00","end":"09:00"}`)
		expectStatus(t, rec, http.StatusOK)
		body := decode[struct {
			CanSubmit bool              `json:"can_submit"`
			Errors    map[string]string `json:"errors"`
		}](t, rec)
		if body.CanSubmit {
			t.Fatal("expected can_submit false")
		}
		if body.Errors["title"] != "Titel måste anges." || body.Errors["end"] != "Sluttiden måste vara efter starttiden." {
			t.Fatalf("unexpected errors: %v", body.Errors)
		}
	})

	t.Run("valid booking draft returns the interval", func(t *testing.T) {
		t.Parallel()
		api := newAPIClient(t)
		api.login("anna.lind@crm.se")

		rec := api.do(http.MethodPost, "/rooms/r1/booking-drafts", `{"title":"Visningsgenomgång","date":"2026-09-16","start":"10:00","end":"11:30"}`)
		expectStatus(t, rec, http.StatusOK)
		body := decode[map[string]any](t, rec)
		if body["can_submit"] != true || body["start"] != "2026-09-16T10:00:00Z" || body["end"] != "2026-09-16T11:30:00Z" {
			t.Fatalf("unexpected draft result: %v", body)
		}
	})

	t.Run("room bookings are ordered by start", func(t *testing.T) {
		t.Parallel()
		api := newAPIClient(t)
		api.login("anna.lind@crm.se")

		rec := api.do(http.MethodGet, "/rooms/r1/bookings", "")
		expectStatus(t, rec, http.StatusOK)
		body := decode[struct {
			Bookings []map[string]any `json:"bookings"`
		}](t, rec)
		if got := idsOf(t, body.Bookings); !equalStrings(got, []string{"b2", "b1"}) {
			t.Fatalf("unexpected booking order %v", got)
		}
	})
}

func TestCalendarHandlers(t *testing.T) {
	t.Parallel()
	api := newAPIClient(t)
	api.login("anna.lind@crm.se")

	rec := api.do(http.MethodGet, "/calendar?from=yesterday", "")
	expectStatus(t, rec, http.StatusBadRequest)
	if body := decode[map[string]any](t, rec); body["message"] != "Ogiltigt datum. Använd formatet ÅÅÅÅ-MM-DD." {
		t.Fatalf("unexpected message: %v", body)
	}

	window := decode[struct {
		Events []map[string]any `json:"events"`
	}](t, api.do(http.MethodGet, "/calendar?from=2026-09-18&to=2026-09-19", ""))
	if len(window.Events) != 2 {
		t.Fatalf("expected one activity and one booking, got %v", window.Events)
	}
	kinds := map[any]bool{}
	for _, event := range window.Events {
		kinds[event["kind"]] = true
	}
	if !kinds["activity"] || !kinds["booking"] {
		t.Fatalf("expected both event kinds, got %v", kinds)
	}
}

func TestOverviewHandlers(t *testing.T) {
	t.Parallel()
	api := newAPIClient(t)
	api.login("anna.lind@crm.se")

	search := decode[struct {
		Query      string           `json:"query"`
		Clients    []map[string]any `json:"clients"`
		Properties []map[string]any `json:"properties"`
	}](t, api.do(http.MethodGet, "/search?q=storgatan+", ""))
	if search.Query != "storgatan " || len(search.Clients) != 0 {
		t.Fatalf("unexpected search result: %+v", search)
	}
	if got := idsOf(t, search.Properties); !equalStrings(got, []string{"p1"}) {
		t.Fatalf("expected p1, got %v", got)
	}

	short := decode[struct {
		Properties []map[string]any `json:"properties"`
	}](t, api.do(http.MethodGet, "/search?q=s", ""))
	if len(short.Properties) != 0 {
		t.Fatalf("expected no results for a single character, got %v", short.Properties)
	}

	rec := api.do(http.MethodGet, "/dashboard", "")
	expectStatus(t, rec, http.StatusOK)
	dashboard := decode[struct {
		Properties         map[string]int   `json:"properties"`
		ClientsByType      map[string]int   `json:"clients_by_type"`
		UpcomingActivities []map[string]any `json:"upcoming_activities"`
		RecentOffers       []map[string]any `json:"recent_offers"`
	}](t, rec)
	if dashboard.Properties["total"] != 4 || dashboard.Properties["available"] != 2 {
		t.Fatalf("unexpected property counts: %v", dashboard.Properties)
	}
	if dashboard.ClientsByType["buyer"] != 2 || dashboard.ClientsByType["both"] != 1 {
		t.Fatalf("unexpected client counts: %v", dashboard.ClientsByType)
	}
	if got := idsOf(t, dashboard.UpcomingActivities); !equalStrings(got, []string{"a2", "a1", "a5"}) {
		t.Fatalf("unexpected upcoming activities %v", got)
	}
	if got := idsOf(t, dashboard.RecentOffers); !equalStrings(got, []string{"o3", "o2", "o1"}) {
		t.Fatalf("unexpected recent offers %v", got)
	}
}
