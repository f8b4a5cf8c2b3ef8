package cuboard

import (
	"time"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/cuboard/internal/cube"
	"github.com/SeamusWaldron/cuboard/internal/input"
	"github.com/SeamusWaldron/cuboard/internal/protocol"
)

// Option configures scanning, connections and sessions.
type Option func(*config)

type config struct {
	logger      *zap.Logger
	scanTimeout time.Duration
	namePrefix  string
	address     string
	frame       cube.Symmetry
	keymap      input.Keymap
	buffer      int
}

func defaultConfig() *config {
	return &config{
		logger:      zap.NewNop(),
		scanTimeout: 10 * time.Second,
		namePrefix:  protocol.NamePrefix,
		frame:       cube.Identity,
		keymap:      input.DefaultKeymap,
		buffer:      64,
	}
}

func newConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLogger sets the logger for connection and decoding diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithScanTimeout bounds how long Scan and ConnectFirst look for cubes.
func WithScanTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.scanTimeout = d
		}
	}
}

// WithNamePrefix changes the advertised name prefix that identifies cubes.
func WithNamePrefix(prefix string) Option {
	return func(c *config) {
		c.namePrefix = prefix
	}
}

// WithAddress makes ConnectFirst wait for the device with this address.
func WithAddress(addr string) Option {
	return func(c *config) {
		c.address = addr
	}
}

// WithFrame re-expresses moves for a cube held in orientation s.
func WithFrame(s Symmetry) Option {
	return func(c *config) {
		c.frame = s
	}
}

// WithKeymap types with km instead of the default layout.
func WithKeymap(km Keymap) Option {
	return func(c *config) {
		c.keymap = km
	}
}

// WithMessageBuffer sets the capacity of the Messages channel.
func WithMessageBuffer(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.buffer = n
		}
	}
}
