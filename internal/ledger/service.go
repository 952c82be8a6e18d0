package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/shaswat2031/rungo/internal/capture"
	"github.com/shaswat2031/rungo/internal/db"
	"github.com/shaswat2031/rungo/internal/stream"

	"github.com/google/uuid"
)

const (
	territoryListLimit = 100
	leaderboardLimit   = 10
)

// palette supplies trail colors for claims that arrive without one.
var palette = []string{
	"#00FFCC", "#FF00CC", "#CCFF00", "#00CCFF", "#FFCC00", "#CC00FF",
}

type Service struct {
	db  db.Querier
	hub *stream.Hub
}

func NewService(db db.Querier, hub *stream.Hub) *Service {
	return &Service{db: db, hub: hub}
}

// SubmitClaim persists the territory, then folds the claim into the owner's
// stats. The two writes are deliberately separate: a stats failure after the
// territory insert leaves the aggregates behind the ledger until the owner's
// next claim. There is no idempotency key either, so a retried request
// double-claims. Both gaps are accepted, not bugs.
func (s *Service) SubmitClaim(ctx context.Context, t Territory, userID string, stats Stats) (Territory, error) {
	if userID == "" {
		return Territory{}, errors.New("userId required")
	}
	if len(t.Path) < 3 {
		return Territory{}, errors.New("territory path needs at least 3 points")
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.City == "" {
		t.City = "Unknown"
	}
	if t.ClaimedAt.IsZero() {
		t.ClaimedAt = time.Now()
	}
	if t.Color == "" {
		t.Color = palette[rand.Intn(len(palette))]
	}
	t.UserID = userID

	pathJSON, err := json.Marshal(t.Path)
	if err != nil {
		return Territory{}, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO territories (id, user_id, team, area_m2, path, color, city, claimed_at, boundary)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8, ST_GeogFromText($9))
		RETURNING claimed_at
	`, t.ID, t.UserID, t.Team, t.AreaM2, pathJSON, t.Color, t.City, t.ClaimedAt, polygonWKT(t.Path))
	if err := row.Scan(&t.ClaimedAt); err != nil {
		return Territory{}, err
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO users (user_id, xp, level, total_area_m2, total_distance_m, loop_count, longest_run_m, team)
		VALUES ($1,$2,$3,$4,$5,1,$6,NULLIF($7,''))
		ON CONFLICT (user_id) DO UPDATE SET
			xp = EXCLUDED.xp,
			level = EXCLUDED.level,
			total_area_m2 = EXCLUDED.total_area_m2,
			total_distance_m = EXCLUDED.total_distance_m,
			longest_run_m = EXCLUDED.longest_run_m,
			team = COALESCE(EXCLUDED.team, users.team),
			loop_count = users.loop_count + 1
	`, userID, stats.XP, stats.Level, stats.TotalAreaM2, stats.TotalDistanceM, stats.LongestRunM, stats.Team)
	if err != nil {
		return Territory{}, err
	}

	if s.hub != nil {
		if payload, err := json.Marshal(t); err == nil {
			s.hub.Broadcast(payload)
		}
	}

	return t, nil
}

// ListTerritories returns the most recent claims, newest first.
func (s *Service) ListTerritories(ctx context.Context) ([]Territory, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, COALESCE(team,''), area_m2, path, COALESCE(color,''), COALESCE(city,''), claimed_at
		FROM territories
		ORDER BY claimed_at DESC
		LIMIT $1
	`, territoryListLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var territories []Territory
	for rows.Next() {
		var t Territory
		var pathJSON []byte
		if err := rows.Scan(&t.ID, &t.UserID, &t.Team, &t.AreaM2, &pathJSON, &t.Color, &t.City, &t.ClaimedAt); err != nil {
			return nil, err
		}
		if len(pathJSON) > 0 {
			if err := json.Unmarshal(pathJSON, &t.Path); err != nil {
				return nil, err
			}
		}
		territories = append(territories, t)
	}
	return territories, nil
}

// Leaderboard ranks users by owned area. A scope naming a city filters by
// case-insensitive partial match; "India", "Global" and the client's
// "Detecting..." placeholder return the unfiltered top ranking.
func (s *Service) Leaderboard(ctx context.Context, scope string) ([]LeaderboardEntry, error) {
	query := `
		SELECT user_id, COALESCE(username,''), COALESCE(email,''), COALESCE(team,''), COALESCE(total_area_m2,0)
		FROM users
	`
	args := []any{}
	if !broadScope(scope) {
		query += ` WHERE city ILIKE '%' || $2 || '%'`
		args = append(args, scope)
	}
	query += ` ORDER BY total_area_m2 DESC LIMIT $1`
	args = append([]any{leaderboardLimit}, args...)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var userID, username, email, team string
		var totalArea float64
		if err := rows.Scan(&userID, &username, &email, &team, &totalArea); err != nil {
			return nil, err
		}
		entries = append(entries, LeaderboardEntry{
			ID:      userID,
			Name:    displayName(username, email),
			Team:    teamOrDefault(team),
			AreaKm2: math.Round(totalArea/1e6*100) / 100,
		})
	}
	return entries, nil
}

func broadScope(scope string) bool {
	switch scope {
	case "", "India", "Global", "Detecting...":
		return true
	}
	return false
}

func displayName(username, email string) string {
	if username != "" {
		return username
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return "Runner"
}

func teamOrDefault(team string) string {
	if team == "" {
		return "Neon"
	}
	return team
}

// polygonWKT renders the path as a WKT polygon, closing the ring when the
// endpoints differ. Coordinates are lng lat, WKT order.
func polygonWKT(path capture.Path) string {
	var b strings.Builder
	b.WriteString("POLYGON((")
	for i, p := range path {
		if i > 0 {
			b.WriteString(",")
		}
		writeCoord(&b, p)
	}
	first := path[0]
	last := path[len(path)-1]
	if first.Latitude != last.Latitude || first.Longitude != last.Longitude {
		b.WriteString(",")
		writeCoord(&b, first)
	}
	b.WriteString("))")
	return b.String()
}

func writeCoord(b *strings.Builder, p capture.Position) {
	b.WriteString(strconv.FormatFloat(p.Longitude, 'f', -1, 64))
	b.WriteString(" ")
	b.WriteString(strconv.FormatFloat(p.Latitude, 'f', -1, 64))
}
