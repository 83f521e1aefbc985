package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// GestureKind identifies the evaluator a gesture configuration builds.
type GestureKind string

const (
	// KindPinch is a two-finger proximity gesture.
	KindPinch GestureKind = "pinch"
	// KindFingerDistance is a two-finger distance-range gesture.
	KindFingerDistance GestureKind = "finger_distance"
)

// GestureConfig is a tracked gesture configuration stored in the database.
// Finger fields hold joint indices; distances are meters; HoldMs is the
// required hold duration in milliseconds.
type GestureConfig struct {
	ID          string
	Name        string
	Kind        GestureKind
	Finger1     int
	Finger2     int
	MinDistance float64
	MaxDistance float64
	HandSide    string
	HoldMs      int64
	Enabled     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GestureRepository provides CRUD operations for gesture configurations.
type GestureRepository struct {
	db *sql.DB
}

// Gestures returns the gesture repository for this store.
func (s *Store) Gestures() *GestureRepository {
	return &GestureRepository{db: s.db}
}

const gestureColumns = `id, name, kind, finger1, finger2, min_distance, max_distance, hand_side, hold_ms, enabled, created_at, updated_at`

// Create inserts a new gesture configuration.
func (r *GestureRepository) Create(g *GestureConfig) error {
	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO gestures (`+gestureColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, string(g.Kind), g.Finger1, g.Finger2,
		g.MinDistance, g.MaxDistance, g.HandSide, g.HoldMs,
		g.Enabled, g.CreatedAt, g.UpdatedAt,
	)
	return err
}

func scanGesture(row interface{ Scan(...any) error }) (*GestureConfig, error) {
	g := &GestureConfig{}
	var kind string
	var enabled int

	err := row.Scan(
		&g.ID, &g.Name, &kind, &g.Finger1, &g.Finger2,
		&g.MinDistance, &g.MaxDistance, &g.HandSide, &g.HoldMs,
		&enabled, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	g.Kind = GestureKind(kind)
	g.Enabled = enabled != 0
	return g, nil
}

// GetByID retrieves a gesture configuration by its ID.
func (r *GestureRepository) GetByID(id string) (*GestureConfig, error) {
	g, err := scanGesture(r.db.QueryRow(
		`SELECT `+gestureColumns+` FROM gestures WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return g, err
}

// GetByName retrieves a gesture configuration by its unique name.
func (r *GestureRepository) GetByName(name string) (*GestureConfig, error) {
	g, err := scanGesture(r.db.QueryRow(
		`SELECT `+gestureColumns+` FROM gestures WHERE name = ?`, name,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return g, err
}

// List retrieves all gesture configurations, newest first.
func (r *GestureRepository) List() ([]*GestureConfig, error) {
	return r.query(`SELECT ` + gestureColumns + ` FROM gestures ORDER BY created_at DESC`)
}

// ListEnabled retrieves the enabled gesture configurations in creation order,
// which is also the order they are registered with the coordinator.
func (r *GestureRepository) ListEnabled() ([]*GestureConfig, error) {
	return r.query(`SELECT ` + gestureColumns + ` FROM gestures WHERE enabled = 1 ORDER BY created_at ASC`)
}

func (r *GestureRepository) query(q string, args ...any) ([]*GestureConfig, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gestures []*GestureConfig
	for rows.Next() {
		g, err := scanGesture(rows)
		if err != nil {
			return nil, err
		}
		gestures = append(gestures, g)
	}
	return gestures, rows.Err()
}

// Update updates an existing gesture configuration.
func (r *GestureRepository) Update(g *GestureConfig) error {
	g.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE gestures SET name = ?, kind = ?, finger1 = ?, finger2 = ?,
		 min_distance = ?, max_distance = ?, hand_side = ?, hold_ms = ?,
		 enabled = ?, updated_at = ?
		 WHERE id = ?`,
		g.Name, string(g.Kind), g.Finger1, g.Finger2,
		g.MinDistance, g.MaxDistance, g.HandSide, g.HoldMs,
		g.Enabled, g.UpdatedAt, g.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a gesture configuration by its ID.
func (r *GestureRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM gestures WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
