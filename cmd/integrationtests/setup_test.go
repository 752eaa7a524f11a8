package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"player-auction/internal/auction"
	"player-auction/internal/clock"
	"player-auction/internal/ledger"
	model "player-auction/internal/models"
	"player-auction/internal/notifier"
	"player-auction/internal/server"

	"github.com/gin-gonic/gin"
)

// testEnv bundles the router with the seams integration tests poke at.
type testEnv struct {
	Router   *gin.Engine
	Ledger   *ledger.MemoryLedger
	Notifier *notifier.Notifier
}

// SetupTestRouter initializes the router with an in-memory ledger for
// integration testing.
func SetupTestRouter() testEnv {
	gin.SetMode(gin.TestMode)
	ldg := ledger.NewMemoryLedger()
	n := notifier.NewNotifier()
	service := auction.NewAuctionService(ldg, n, clock.NewSystem())
	return testEnv{
		Router:   server.SetupRouter(service, n),
		Ledger:   ldg,
		Notifier: n,
	}
}

// SetupTestRouterWithAuction seeds teams and players alongside the router.
func SetupTestRouterWithAuction(t *testing.T, teams []model.Team, players []model.Player) testEnv {
	t.Helper()
	env := SetupTestRouter()
	ctx := context.Background()
	for _, team := range teams {
		if err := env.Ledger.AddTeam(ctx, team); err != nil {
			t.Fatalf("failed to seed team %s: %v", team.TeamID, err)
		}
	}
	for _, player := range players {
		if err := env.Ledger.AddPlayer(ctx, player); err != nil {
			t.Fatalf("failed to seed player %s: %v", player.PlayerID, err)
		}
	}
	return env
}

// ExecuteRequest executes an HTTP request and returns the response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes an HTTP request on the given router and
// parses the enveloped response. For 2xx responses the returned map is the
// "data" payload.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if w.Code >= 200 && w.Code < 300 {
			if data, ok := resp["data"].(map[string]any); ok {
				resp = data
			}
		}
	}

	return resp, w
}
