package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Recording is a stored hand-tracking session.
type Recording struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// RecordedHand is one hand's joints in a recorded frame.
type RecordedHand struct {
	Chirality string       `json:"chirality"`
	Tracked   bool         `json:"tracked"`
	Joints    [][3]float64 `json:"joints"`
}

// RecordedFrame is one two-hand update in a recording. Either hand may be
// nil when it was not observed that tick.
type RecordedFrame struct {
	Seq         int           `json:"-"`
	TimestampMs int64         `json:"-"`
	Left        *RecordedHand `json:"left,omitempty"`
	Right       *RecordedHand `json:"right,omitempty"`
}

// RecordingRepository provides operations for recordings and their frames.
type RecordingRepository struct {
	db *sql.DB
}

// Recordings returns the recording repository for this store.
func (s *Store) Recordings() *RecordingRepository {
	return &RecordingRepository{db: s.db}
}

// Create inserts a new recording.
func (r *RecordingRepository) Create(rec *Recording) error {
	rec.CreatedAt = time.Now()
	_, err := r.db.Exec(
		`INSERT INTO recordings (id, name, created_at) VALUES (?, ?, ?)`,
		rec.ID, rec.Name, rec.CreatedAt,
	)
	return err
}

// GetByID retrieves a recording by its ID.
func (r *RecordingRepository) GetByID(id string) (*Recording, error) {
	rec := &Recording{}
	err := r.db.QueryRow(
		`SELECT id, name, created_at FROM recordings WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.Name, &rec.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List retrieves all recordings, newest first.
func (r *RecordingRepository) List() ([]*Recording, error) {
	rows, err := r.db.Query(`SELECT id, name, created_at FROM recordings ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*Recording
	for rows.Next() {
		rec := &Recording{}
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// AppendFrame appends a frame to a recording.
func (r *RecordingRepository) AppendFrame(recordingID string, f *RecordedFrame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}

	_, err = r.db.Exec(
		`INSERT INTO recording_frames (recording_id, seq, timestamp_ms, data) VALUES (?, ?, ?, ?)`,
		recordingID, f.Seq, f.TimestampMs, string(data),
	)
	return err
}

// Frames retrieves a recording's frames in sequence order.
func (r *RecordingRepository) Frames(recordingID string) ([]*RecordedFrame, error) {
	rows, err := r.db.Query(
		`SELECT seq, timestamp_ms, data FROM recording_frames
		 WHERE recording_id = ? ORDER BY seq ASC`,
		recordingID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var frames []*RecordedFrame
	for rows.Next() {
		var seq int
		var ts int64
		var data string
		if err := rows.Scan(&seq, &ts, &data); err != nil {
			return nil, err
		}

		f := &RecordedFrame{}
		if err := json.Unmarshal([]byte(data), f); err != nil {
			return nil, fmt.Errorf("failed to decode frame %d: %w", seq, err)
		}
		f.Seq = seq
		f.TimestampMs = ts
		frames = append(frames, f)
	}
	return frames, rows.Err()
}

// Delete removes a recording and cascades to its frames.
func (r *RecordingRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM recordings WHERE id = ?`, id)
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
