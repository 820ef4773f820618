// Package survey provides SQLite-backed storage for planet survey data
// and accepted mission plans.
package survey

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/meridius/solver-pi/internal/models"
)

// Store wraps a SQLite connection holding surveys and plan history.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS planets (
		id TEXT PRIMARY KEY,
		resources_json TEXT NOT NULL,
		scanned_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS plans (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL,
		total_yield INTEGER NOT NULL,
		orders_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_plans_created ON plans(created_at);
	`
	_, err := s.conn.Exec(schema)
	return err
}

type planetRow struct {
	ID            string `db:"id"`
	ResourcesJSON string `db:"resources_json"`
	ScannedAt     string `db:"scanned_at"`
}

type planRow struct {
	ID         string `db:"id"`
	CreatedAt  string `db:"created_at"`
	TotalYield int    `db:"total_yield"`
	OrdersJSON string `db:"orders_json"`
}

// PlanetSummary is one row of the survey listing.
type PlanetSummary struct {
	ID        string
	Resources int
	ScannedAt time.Time
}

// PlanRecord is one stored plan with its orders decoded.
type PlanRecord struct {
	ID         string
	CreatedAt  time.Time
	TotalYield int
	Orders     []models.CharacterOrders
}

// SavePlanets upserts survey data for the given planets. Planets already
// in the store but absent from the slice are left untouched.
func (s *Store) SavePlanets(planets []models.Planet) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	scannedAt := time.Now().UTC().Format(time.RFC3339)
	for _, p := range planets {
		resJSON, err := json.Marshal(p.Resources)
		if err != nil {
			return fmt.Errorf("encode planet %s: %w", p.ID, err)
		}
		_, err = tx.Exec(
			"INSERT OR REPLACE INTO planets (id, resources_json, scanned_at) VALUES (?, ?, ?)",
			p.ID, string(resJSON), scannedAt,
		)
		if err != nil {
			return fmt.Errorf("insert planet %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("survey saved", "planets", len(planets))
	return nil
}

// Planets returns all stored planets ordered by id.
func (s *Store) Planets() ([]models.Planet, error) {
	var rows []planetRow
	if err := s.conn.Select(&rows, "SELECT id, resources_json, scanned_at FROM planets ORDER BY id"); err != nil {
		return nil, fmt.Errorf("load planets: %w", err)
	}

	planets := make([]models.Planet, 0, len(rows))
	for _, row := range rows {
		p, err := row.decode()
		if err != nil {
			return nil, err
		}
		planets = append(planets, *p)
	}
	return planets, nil
}

// Planet returns a single stored planet by id.
func (s *Store) Planet(id string) (*models.Planet, error) {
	var row planetRow
	err := s.conn.Get(&row, "SELECT id, resources_json, scanned_at FROM planets WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("load planet %s: %w", id, err)
	}
	return row.decode()
}

// PlanetSummaries returns id, resource count and scan time for all stored
// planets ordered by id.
func (s *Store) PlanetSummaries() ([]PlanetSummary, error) {
	var rows []planetRow
	if err := s.conn.Select(&rows, "SELECT id, resources_json, scanned_at FROM planets ORDER BY id"); err != nil {
		return nil, fmt.Errorf("load planets: %w", err)
	}

	summaries := make([]PlanetSummary, 0, len(rows))
	for _, row := range rows {
		p, err := row.decode()
		if err != nil {
			return nil, err
		}
		scanned, err := time.Parse(time.RFC3339, row.ScannedAt)
		if err != nil {
			return nil, fmt.Errorf("planet %s: bad scan time %q: %w", row.ID, row.ScannedAt, err)
		}
		summaries = append(summaries, PlanetSummary{
			ID:        row.ID,
			Resources: len(p.Resources),
			ScannedAt: scanned,
		})
	}
	return summaries, nil
}

func (row *planetRow) decode() (*models.Planet, error) {
	var resources []models.ResourceAbundance
	if err := json.Unmarshal([]byte(row.ResourcesJSON), &resources); err != nil {
		return nil, fmt.Errorf("decode planet %s: %w", row.ID, err)
	}
	return &models.Planet{ID: row.ID, Resources: resources}, nil
}

// SavePlan stores an accepted plan and returns its generated id.
func (s *Store) SavePlan(orders []models.CharacterOrders, totalYield int) (string, error) {
	ordersJSON, err := json.Marshal(orders)
	if err != nil {
		return "", fmt.Errorf("encode orders: %w", err)
	}

	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339)
	_, err = s.conn.Exec(
		"INSERT INTO plans (id, created_at, total_yield, orders_json) VALUES (?, ?, ?, ?)",
		id, createdAt, totalYield, string(ordersJSON),
	)
	if err != nil {
		return "", fmt.Errorf("insert plan: %w", err)
	}

	slog.Info("plan saved", "id", id, "yield", totalYield)
	return id, nil
}

// Plans returns all stored plans, newest first.
func (s *Store) Plans() ([]PlanRecord, error) {
	var rows []planRow
	err := s.conn.Select(&rows,
		"SELECT id, created_at, total_yield, orders_json FROM plans ORDER BY seq DESC")
	if err != nil {
		return nil, fmt.Errorf("load plans: %w", err)
	}

	records := make([]PlanRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.decode()
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}

// Plan returns a single stored plan by id.
func (s *Store) Plan(id string) (*PlanRecord, error) {
	var row planRow
	err := s.conn.Get(&row,
		"SELECT id, created_at, total_yield, orders_json FROM plans WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("load plan %s: %w", id, err)
	}
	return row.decode()
}

// LatestPlan returns the most recently stored plan, or nil if none exist.
func (s *Store) LatestPlan() (*PlanRecord, error) {
	var rows []planRow
	err := s.conn.Select(&rows,
		"SELECT id, created_at, total_yield, orders_json FROM plans ORDER BY seq DESC LIMIT 1")
	if err != nil {
		return nil, fmt.Errorf("load latest plan: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].decode()
}

// LatestPrior derives a prior-plan map from the most recently stored plan.
// Visits that collected nothing are skipped. Returns nil when the store
// holds no plans.
func (s *Store) LatestPrior() (models.PriorPlan, error) {
	rec, err := s.LatestPlan()
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	prior := make(models.PriorPlan)
	for _, co := range rec.Orders {
		for _, o := range co.Orders {
			if !o.Collected() {
				continue
			}
			if prior[co.Character] == nil {
				prior[co.Character] = make(map[string]models.Resource)
			}
			prior[co.Character][o.Planet] = o.Resource
		}
	}
	return prior, nil
}

func (row *planRow) decode() (*PlanRecord, error) {
	createdAt, err := time.Parse(time.RFC3339, row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("plan %s: bad creation time %q: %w", row.ID, row.CreatedAt, err)
	}
	var orders []models.CharacterOrders
	if err := json.Unmarshal([]byte(row.OrdersJSON), &orders); err != nil {
		return nil, fmt.Errorf("decode plan %s: %w", row.ID, err)
	}
	return &PlanRecord{
		ID:         row.ID,
		CreatedAt:  createdAt,
		TotalYield: row.TotalYield,
		Orders:     orders,
	}, nil
}
