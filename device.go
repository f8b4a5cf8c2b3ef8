package cuboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/cuboard/internal/ble"
	"github.com/SeamusWaldron/cuboard/internal/cipher"
	"github.com/SeamusWaldron/cuboard/internal/protocol"
)

// Device is an advertising GAN cube.
// Devices are returned by Scan and can be passed to Connect.
type Device struct {
	Name    string // Advertised name, e.g. "GAN-i3"
	Address string // Platform address used to connect
	RSSI    int16  // Signal strength in dBm

	// ManufacturerData maps company identifiers to advertised data. The
	// entry for company 0x0001 keys the frame cipher.
	ManufacturerData map[uint16][]byte

	result ble.ScanResult
}

// Identifier returns the manufacturer identifier of the device, or nil if
// it did not advertise one.
func (d Device) Identifier() []byte { return d.ManufacturerData[cipher.CompanyID] }

func deviceOf(r ble.ScanResult) Device {
	return Device{
		Name:             r.Name,
		Address:          r.Address,
		RSSI:             r.RSSI,
		ManufacturerData: r.ManufacturerData,
		result:           r,
	}
}

// Scan discovers nearby cubes whose name matches the configured prefix.
// Returns all devices found within the scan timeout.
//
// Typical usage:
//
//	devices, err := cuboard.Scan(ctx, cuboard.WithScanTimeout(5*time.Second))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range devices {
//	    fmt.Printf("Found: %s (RSSI: %d)\n", d.Name, d.RSSI)
//	}
func Scan(ctx context.Context, opts ...Option) ([]Device, error) {
	cfg := newConfig(opts)

	client, err := ble.NewClient(cfg.logger)
	if err != nil {
		return nil, err
	}

	results, err := client.Scan(ctx, cfg.scanTimeout, ble.NamePrefix(cfg.namePrefix))
	if err != nil {
		return nil, err
	}

	devices := make([]Device, len(results))
	for i, r := range results {
		devices[i] = deviceOf(r)
	}
	return devices, nil
}

// transport moves raw frames to and from a cube.
type transport interface {
	Write(frame []byte) error
	SetFrameCallback(cb func([]byte))
	Disconnect() error
}

// GanCube is a connected cube.
//
// Decoded messages are delivered to the OnMessage callback and to the
// Messages channel. Frames that fail to decode are logged and reported to
// OnFrameError; they never reach the channel.
type GanCube struct {
	link    transport
	cipher  *cipher.Cipher
	decoder *protocol.Decoder
	device  Device
	logger  *zap.Logger

	mu       sync.RWMutex
	closed   bool
	messages chan Message
	battery  int
	state    *State

	onMessage    func(Message)
	onFrame      func([]byte)
	onFrameError func(error)
	onRequest    func([]byte)
}

func newGanCube(link transport, c *cipher.Cipher, dev Device, cfg *config) *GanCube {
	g := &GanCube{
		link:     link,
		cipher:   c,
		decoder:  protocol.NewDecoder(c, cfg.logger),
		device:   dev,
		logger:   cfg.logger.With(zap.String("device", dev.Name)),
		messages: make(chan Message, cfg.buffer),
		battery:  -1,
	}
	link.SetFrameCallback(g.handleFrame)
	return g
}

// Connect connects to a scanned device and requests its state, which
// seeds the move counter of any Session reading its messages.
func Connect(ctx context.Context, dev Device, opts ...Option) (*GanCube, error) {
	cfg := newConfig(opts)

	client, err := ble.NewClient(cfg.logger)
	if err != nil {
		return nil, err
	}
	return connect(ctx, client, dev, cfg)
}

func connect(ctx context.Context, client *ble.Client, dev Device, cfg *config) (*GanCube, error) {
	c, err := cipher.FromManufacturerData(dev.ManufacturerData)
	if err != nil {
		return nil, fmt.Errorf("cuboard: %s: %w", dev.Name, err)
	}

	g := newGanCube(client, c, dev, cfg)
	if err := client.Connect(ctx, dev.result); err != nil {
		return nil, err
	}
	if err := g.RequestCubeState(); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

// ConnectFirst scans and connects to the first cube found, or to the
// device set with WithAddress.
//
// Example:
//
//	gan, err := cuboard.ConnectFirst(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gan.Close()
func ConnectFirst(ctx context.Context, opts ...Option) (*GanCube, error) {
	cfg := newConfig(opts)

	client, err := ble.NewClient(cfg.logger)
	if err != nil {
		return nil, err
	}

	match := ble.NamePrefix(cfg.namePrefix)
	if cfg.address != "" {
		match = ble.Address(cfg.address)
	}
	res, err := client.Find(ctx, cfg.scanTimeout, match)
	if errors.Is(err, ble.ErrDeviceNotFound) {
		return nil, ErrDeviceNotFound
	}
	if err != nil {
		return nil, err
	}
	return connect(ctx, client, deviceOf(res), cfg)
}

// Close disconnects from the cube and closes the Messages channel.
func (g *GanCube) Close() error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return nil
	}
	g.closed = true
	close(g.messages)
	g.mu.Unlock()

	return g.link.Disconnect()
}

// Device returns the connected device.
func (g *GanCube) Device() Device { return g.device }

// Messages returns the channel of decoded messages. When the channel is
// full new messages are dropped with a warning.
func (g *GanCube) Messages() <-chan Message { return g.messages }

// Battery returns the last reported battery level (0-100), or -1 if unknown.
func (g *GanCube) Battery() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.battery
}

// State returns the last valid state snapshot reported by the cube.
func (g *GanCube) State() (State, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.state == nil {
		return State{}, false
	}
	return *g.state, true
}

// Event callbacks

// OnMessage sets a callback for every decoded message. It runs on the
// transport goroutine and must not block.
func (g *GanCube) OnMessage(cb func(Message)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onMessage = cb
}

// OnFrame sets a callback observing every raw notification before
// decryption.
func (g *GanCube) OnFrame(cb func([]byte)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onFrame = cb
}

// OnFrameError sets a callback for notifications that failed to decode.
// Errors are *protocol.FrameError.
func (g *GanCube) OnFrameError(cb func(error)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onFrameError = cb
}

// OnRequest sets a callback observing every encrypted request before it
// is written.
func (g *GanCube) OnRequest(cb func([]byte)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onRequest = cb
}

// Requests

// RequestCubeState asks the cube for a full state snapshot.
func (g *GanCube) RequestCubeState() error {
	return g.send(protocol.RequestCubeState{})
}

// RequestBattery asks the cube for its battery level.
func (g *GanCube) RequestBattery() error {
	return g.send(protocol.RequestBatteryState{})
}

// Reset tells the cube it is solved.
func (g *GanCube) Reset() error {
	return g.ResetTo(Solved())
}

// ResetTo overwrites the state the cube believes it is in.
func (g *GanCube) ResetTo(s State) error {
	return g.send(protocol.ResetCubeState{State: s})
}

func (g *GanCube) send(req protocol.Request) error {
	g.mu.RLock()
	closed, onRequest := g.closed, g.onRequest
	g.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	frame := protocol.EncodeRequest(g.cipher, req)
	if onRequest != nil {
		onRequest(frame[:])
	}
	if err := g.link.Write(frame[:]); err != nil {
		return fmt.Errorf("cuboard: request %#04x: %w", req.Opcode(), err)
	}
	return nil
}

// Internal message handling

func (g *GanCube) handleFrame(raw []byte) {
	g.mu.RLock()
	onFrame, onFrameError := g.onFrame, g.onFrameError
	g.mu.RUnlock()

	if onFrame != nil {
		onFrame(raw)
	}

	msg, err := g.decoder.Decode(raw)
	if err != nil {
		g.logger.Debug("dropping frame", zap.Error(err))
		if onFrameError != nil {
			onFrameError(err)
		}
		return
	}

	g.mu.Lock()
	switch m := msg.(type) {
	case Battery:
		g.battery = int(m.Percent)
	case CubeState:
		if m.Cube != nil {
			s := *m.Cube
			g.state = &s
		}
	}
	onMessage := g.onMessage
	g.mu.Unlock()

	if onMessage != nil {
		onMessage(msg)
	}
	g.deliver(msg)
}

func (g *GanCube) deliver(msg Message) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.closed {
		return
	}
	select {
	case g.messages <- msg:
	default:
		g.logger.Warn("message buffer full, dropping", zap.Stringer("kind", msg.Kind()))
	}
}
