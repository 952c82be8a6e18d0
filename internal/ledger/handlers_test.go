package ledger

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"

	"github.com/gofiber/fiber/v2"
)

func TestClaimHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO territories`).
		WithArgs(pgxmock.AnyArg(), "user-1", "", 2500.0, pgxmock.AnyArg(), pgxmock.AnyArg(), "Surat", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"claimed_at"}).AddRow(time.Now()))
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("user-1", 250, 1, 2500.0, 0.0, 0.0, "").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	app := fiber.New()
	RegisterRoutes(app, NewService(mock, nil))

	body, _ := json.Marshal(ClaimRequest{
		Territory: Territory{Path: squarePath(), AreaM2: 2500, City: "Surat"},
		UserID:    "user-1",
		Stats:     Stats{XP: 250, Level: 1, TotalAreaM2: 2500},
	})
	req := httptest.NewRequest(http.MethodPost, "/claim", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("claim status: %v %v", resp.StatusCode, err)
	}

	var out struct {
		Success bool `json:"success"`
	}
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &out); err != nil || !out.Success {
		t.Fatalf("expected success response, got %s", raw)
	}
}

func TestClaimHandlerPersistenceError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO territories`).
		WillReturnError(errDown)

	app := fiber.New()
	RegisterRoutes(app, NewService(mock, nil))

	body, _ := json.Marshal(ClaimRequest{Territory: Territory{Path: squarePath()}, UserID: "user-1"})
	req := httptest.NewRequest(http.MethodPost, "/claim", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

var errDown = io.ErrUnexpectedEOF

func TestTerritoriesHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	pathJSON, _ := json.Marshal(squarePath())
	mock.ExpectQuery(`SELECT id, user_id`).
		WithArgs(100).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "team", "area_m2", "path", "color", "city", "claimed_at"}).
			AddRow("t-1", "user-1", "Neon", 2500.0, pathJSON, "#FFCB00", "Surat", time.Now()))

	app := fiber.New()
	RegisterRoutes(app, NewService(mock, nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/territories", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("territories status: %v", err)
	}

	var territories []Territory
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &territories); err != nil || len(territories) != 1 {
		t.Fatalf("unexpected territories body: %s", raw)
	}
}

func TestLeaderboardHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT user_id, COALESCE\(username,''\)`).
		WithArgs(10).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "username", "email", "team", "total_area_m2"}).
			AddRow("user-1", "strider", "", "Neon", 2_500_000.0))

	app := fiber.New()
	RegisterRoutes(app, NewService(mock, nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/leaderboard/Global", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("leaderboard status: %v", err)
	}

	var entries []LeaderboardEntry
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &entries); err != nil || len(entries) != 1 {
		t.Fatalf("unexpected leaderboard body: %s", raw)
	}
	if entries[0].AreaKm2 != 2.5 {
		t.Fatalf("expected 2.5 km2, got %v", entries[0].AreaKm2)
	}
}
