package capture

import (
	"fmt"
	"sync"
	"time"
)

// Source tells which direction a frame travelled.
type Source string

const (
	// SourceNotify is a notification received from the cube.
	SourceNotify Source = "notify"
	// SourceWrite is an encrypted request sent to the cube.
	SourceWrite Source = "write"
)

// Frame is one raw frame of a capture.
type Frame struct {
	FrameID   int64
	CaptureID string
	Seq       int
	TsMs      int64
	Source    Source
	Raw       []byte
}

// FrameRepository provides access to captured frames.
type FrameRepository struct {
	db *DB
}

// NewFrameRepository creates a new frame repository.
func NewFrameRepository(db *DB) *FrameRepository {
	return &FrameRepository{db: db}
}

// Create stores a frame and returns its ID. tsMs is the offset from the
// start of the capture.
func (r *FrameRepository) Create(captureID string, seq int, tsMs int64, src Source, raw []byte) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO frames (capture_id, seq, ts_ms, source, raw)
		VALUES (?, ?, ?, ?, ?)
	`, captureID, seq, tsMs, string(src), raw)
	if err != nil {
		return 0, fmt.Errorf("failed to create frame: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get frame ID: %w", err)
	}
	return id, nil
}

// GetByCapture retrieves the frames of a capture in arrival order.
func (r *FrameRepository) GetByCapture(captureID string) ([]Frame, error) {
	rows, err := r.db.Query(`
		SELECT frame_id, capture_id, seq, ts_ms, source, raw
		FROM frames
		WHERE capture_id = ?
		ORDER BY seq
	`, captureID)
	if err != nil {
		return nil, fmt.Errorf("failed to get frames: %w", err)
	}
	defer rows.Close()

	var frames []Frame
	for rows.Next() {
		var f Frame
		var src string
		if err := rows.Scan(&f.FrameID, &f.CaptureID, &f.Seq, &f.TsMs, &src, &f.Raw); err != nil {
			return nil, fmt.Errorf("failed to scan frame: %w", err)
		}
		f.Source = Source(src)
		frames = append(frames, f)
	}
	return frames, rows.Err()
}

// Recorder appends frames to one capture. It is safe for concurrent use.
type Recorder struct {
	frames    *FrameRepository
	captureID string
	start     time.Time
	now       func() time.Time

	mu  sync.Mutex
	seq int
}

// NewRecorder returns a Recorder appending to captureID.
func NewRecorder(frames *FrameRepository, captureID string) *Recorder {
	return &Recorder{frames: frames, captureID: captureID, start: time.Now(), now: time.Now}
}

// CaptureID returns the capture being recorded.
func (r *Recorder) CaptureID() string { return r.captureID }

// Record stores a copy of raw.
func (r *Recorder) Record(src Source, raw []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := r.now().Sub(r.start).Milliseconds()
	if _, err := r.frames.Create(r.captureID, r.seq, ts, src, append([]byte(nil), raw...)); err != nil {
		return err
	}
	r.seq++
	return nil
}

// Count returns the number of frames recorded so far.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq
}
