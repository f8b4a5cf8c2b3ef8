package capture

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/cuboard/internal/cipher"
)

// Capture is one recorded connection to a cube.
type Capture struct {
	CaptureID     string
	DeviceName    string
	DeviceAddress string
	Identifier    []byte
	StartedAt     time.Time
	EndedAt       *time.Time
	Frames        int
}

// Cipher rebuilds the cipher of the captured device.
func (c *Capture) Cipher() (*cipher.Cipher, error) {
	dk, err := cipher.ParseDeviceKey(c.Identifier)
	if err != nil {
		return nil, err
	}
	return cipher.New(dk)
}

// CaptureRepository provides CRUD operations for captures.
type CaptureRepository struct {
	db  *DB
	now func() time.Time
}

// NewCaptureRepository creates a new capture repository.
func NewCaptureRepository(db *DB) *CaptureRepository {
	return &CaptureRepository{db: db, now: time.Now}
}

// Create starts a capture for a device and returns its ID. identifier is
// the advertised manufacturer identifier of the device.
func (r *CaptureRepository) Create(deviceName, deviceAddress string, identifier []byte) (string, error) {
	if _, err := cipher.ParseDeviceKey(identifier); err != nil {
		return "", err
	}

	id := uuid.New().String()
	_, err := r.db.Exec(`
		INSERT INTO captures (capture_id, device_name, device_address, identifier, started_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, deviceName, deviceAddress, identifier, r.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("failed to create capture: %w", err)
	}
	return id, nil
}

// End marks a capture as complete.
func (r *CaptureRepository) End(captureID string) error {
	res, err := r.db.Exec(`
		UPDATE captures SET ended_at = ? WHERE capture_id = ?
	`, r.now().UTC().Format(time.RFC3339Nano), captureID)
	if err != nil {
		return fmt.Errorf("failed to end capture: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, captureID)
	}
	return nil
}

const captureColumns = `
	c.capture_id, c.device_name, c.device_address, c.identifier, c.started_at, c.ended_at,
	(SELECT COUNT(*) FROM frames f WHERE f.capture_id = c.capture_id)`

type scanner interface {
	Scan(dest ...any) error
}

func scanCapture(row scanner) (*Capture, error) {
	var c Capture
	var name, addr sql.NullString
	var startedAt string
	var endedAt sql.NullString
	if err := row.Scan(&c.CaptureID, &name, &addr, &c.Identifier, &startedAt, &endedAt, &c.Frames); err != nil {
		return nil, err
	}
	c.DeviceName = name.String
	c.DeviceAddress = addr.String

	t, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start time: %w", err)
	}
	c.StartedAt = t
	if endedAt.Valid {
		t, err := time.Parse(time.RFC3339Nano, endedAt.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse end time: %w", err)
		}
		c.EndedAt = &t
	}
	return &c, nil
}

// Get retrieves a capture by ID.
func (r *CaptureRepository) Get(captureID string) (*Capture, error) {
	c, err := scanCapture(r.db.QueryRow(`SELECT `+captureColumns+`
		FROM captures c WHERE c.capture_id = ?`, captureID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, captureID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get capture: %w", err)
	}
	return c, nil
}

// List returns all captures, most recent first.
func (r *CaptureRepository) List() ([]Capture, error) {
	rows, err := r.db.Query(`SELECT ` + captureColumns + `
		FROM captures c ORDER BY c.started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list captures: %w", err)
	}
	defer rows.Close()

	var captures []Capture
	for rows.Next() {
		c, err := scanCapture(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan capture: %w", err)
		}
		captures = append(captures, *c)
	}
	return captures, rows.Err()
}

// Delete removes a capture and its frames.
func (r *CaptureRepository) Delete(captureID string) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM frames WHERE capture_id = ?`, captureID); err != nil {
			return fmt.Errorf("failed to delete frames: %w", err)
		}
		res, err := tx.Exec(`DELETE FROM captures WHERE capture_id = ?`, captureID)
		if err != nil {
			return fmt.Errorf("failed to delete capture: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, captureID)
		}
		return nil
	})
}
