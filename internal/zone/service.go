package zone

import (
	"context"
	"os"

	"github.com/shaswat2031/rungo/internal/db"

	"gopkg.in/yaml.v3"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// List returns every hot zone.
func (s *Service) List(ctx context.Context) ([]HotZone, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, lat, lng, radius_m, title, multiplier, type, color
		FROM hot_zones
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []HotZone
	for rows.Next() {
		var z HotZone
		if err := rows.Scan(&z.ID, &z.Lat, &z.Lng, &z.RadiusM, &z.Title, &z.Multiplier, &z.Type, &z.Color); err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, nil
}

// Seed inserts the given zones when the table is empty. Existing zone sets
// are left untouched.
func (s *Service) Seed(ctx context.Context, zones []HotZone) error {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM hot_zones`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, z := range zones {
		_, err := s.db.Exec(ctx, `
			INSERT INTO hot_zones (id, lat, lng, radius_m, title, multiplier, type, color)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`, z.ID, z.Lat, z.Lng, z.RadiusM, z.Title, z.Multiplier, z.Type, z.Color)
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadFile reads a zone set from a YAML file.
func LoadFile(path string) ([]HotZone, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var zones []HotZone
	if err := yaml.Unmarshal(raw, &zones); err != nil {
		return nil, err
	}
	return zones, nil
}
