// Package ble talks GATT to GAN cubes over Bluetooth Low Energy.
//
// The client moves raw 20-byte frames. Encryption and decoding live in
// the protocol package.
package ble

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"tinygo.org/x/bluetooth"

	"github.com/SeamusWaldron/cuboard/internal/protocol"
)

var (
	ErrNotConnected     = errors.New("ble: not connected to device")
	ErrAlreadyConnected = errors.New("ble: already connected to a device")
	ErrDeviceNotFound   = errors.New("ble: device not found")
	ErrServiceNotFound  = errors.New("ble: cube service not found")
)

var (
	serviceUUID  = bluetooth.NewUUID(uuid.MustParse(protocol.ServiceUUID))
	requestUUID  = bluetooth.NewUUID(uuid.MustParse(protocol.RequestUUID))
	responseUUID = bluetooth.NewUUID(uuid.MustParse(protocol.ResponseUUID))
)

// ScanResult is an advertising cube.
type ScanResult struct {
	Name    string
	Address string
	RSSI    int16

	// ManufacturerData maps company identifiers to their advertised data.
	ManufacturerData map[uint16][]byte

	address bluetooth.Address
}

// Filter selects scan results.
type Filter func(ScanResult) bool

// NamePrefix accepts devices whose local name starts with prefix.
func NamePrefix(prefix string) Filter {
	return func(r ScanResult) bool {
		return strings.HasPrefix(r.Name, prefix)
	}
}

// Address accepts the device with the given address, ignoring case.
func Address(addr string) Filter {
	return func(r ScanResult) bool {
		return strings.EqualFold(r.Address, addr)
	}
}

// Client manages the BLE connection to one cube.
type Client struct {
	adapter  *bluetooth.Adapter
	device   bluetooth.Device
	request  bluetooth.DeviceCharacteristic
	response bluetooth.DeviceCharacteristic
	logger   *zap.Logger

	mu        sync.RWMutex
	connected bool
	result    ScanResult

	onFrame func([]byte)
}

// NewClient enables the default adapter.
func NewClient(logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}

	return &Client{adapter: adapter, logger: logger}, nil
}

// SetFrameCallback sets the callback for raw notifications. The slice is
// only valid during the call.
func (c *Client) SetFrameCallback(cb func([]byte)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onFrame = cb
}

func toResult(r bluetooth.ScanResult) ScanResult {
	res := ScanResult{
		Name:             r.LocalName(),
		Address:          r.Address.String(),
		RSSI:             r.RSSI,
		ManufacturerData: make(map[uint16][]byte),
		address:          r.Address,
	}
	for _, md := range r.ManufacturerData() {
		res.ManufacturerData[md.CompanyID] = append([]byte(nil), md.Data...)
	}
	return res
}

// Scan collects matching devices until timeout or ctx is done.
func (c *Client) Scan(ctx context.Context, timeout time.Duration, match Filter) ([]ScanResult, error) {
	return c.scan(ctx, timeout, match, false)
}

// Find scans until the first matching device is seen.
func (c *Client) Find(ctx context.Context, timeout time.Duration, match Filter) (ScanResult, error) {
	results, err := c.scan(ctx, timeout, match, true)
	if err != nil {
		return ScanResult{}, err
	}
	if len(results) == 0 {
		return ScanResult{}, ErrDeviceNotFound
	}
	return results[0], nil
}

func (c *Client) scan(ctx context.Context, timeout time.Duration, match Filter, first bool) ([]ScanResult, error) {
	c.mu.RLock()
	if c.connected {
		c.mu.RUnlock()
		return nil, ErrAlreadyConnected
	}
	c.mu.RUnlock()

	var mu sync.Mutex
	var results []ScanResult
	seen := make(map[string]bool)
	found := make(chan struct{})
	var foundOnce sync.Once

	done := make(chan error, 1)
	go func() {
		done <- c.adapter.Scan(func(adapter *bluetooth.Adapter, sr bluetooth.ScanResult) {
			res := toResult(sr)

			mu.Lock()
			defer mu.Unlock()
			if seen[res.Address] || !match(res) {
				return
			}
			seen[res.Address] = true
			results = append(results, res)
			c.logger.Debug("found device", zap.String("name", res.Name), zap.String("address", res.Address), zap.Int16("rssi", res.RSSI))
			if first {
				foundOnce.Do(func() { close(found) })
			}
		})
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var scanErr error
	select {
	case <-timer.C:
	case <-found:
	case <-ctx.Done():
		scanErr = ctx.Err()
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		mu.Lock()
		defer mu.Unlock()
		return results, nil
	}

	c.adapter.StopScan()
	if err := <-done; err != nil && scanErr == nil {
		c.logger.Debug("scan stopped", zap.Error(err))
	}
	if scanErr != nil {
		return nil, scanErr
	}

	mu.Lock()
	defer mu.Unlock()
	return results, nil
}

// Connect connects to a scanned device, subscribes to notifications and
// returns once frames can be written.
func (c *Client) Connect(ctx context.Context, res ScanResult) error {
	c.mu.RLock()
	if c.connected {
		c.mu.RUnlock()
		return ErrAlreadyConnected
	}
	c.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	device, err := c.adapter.Connect(res.address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover services: %w", err)
	}
	if len(services) == 0 {
		device.Disconnect()
		return ErrServiceNotFound
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{requestUUID, responseUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover characteristics: %w", err)
	}

	var request, response bluetooth.DeviceCharacteristic
	var haveRequest, haveResponse bool
	for _, ch := range chars {
		switch ch.UUID() {
		case requestUUID:
			request, haveRequest = ch, true
		case responseUUID:
			response, haveResponse = ch, true
		}
	}
	if !haveRequest || !haveResponse {
		device.Disconnect()
		return fmt.Errorf("%w: missing characteristics", ErrServiceNotFound)
	}

	if err := response.EnableNotifications(c.handleNotification); err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to enable notifications: %w", err)
	}

	c.mu.Lock()
	c.device = device
	c.request = request
	c.response = response
	c.connected = true
	c.result = res
	c.mu.Unlock()

	c.logger.Info("connected", zap.String("name", res.Name), zap.String("address", res.Address))
	return nil
}

// Disconnect disconnects from the current device.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}

	err := c.device.Disconnect()
	c.connected = false
	c.result = ScanResult{}
	return err
}

// IsConnected returns true if connected to a device.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Device returns the scan result of the connected device.
func (c *Client) Device() ScanResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.result
}

// Write sends one frame to the request characteristic.
func (c *Client) Write(frame []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return ErrNotConnected
	}

	return writeFrame(c.request, frame)
}

func (c *Client) handleNotification(data []byte) {
	c.mu.RLock()
	cb := c.onFrame
	c.mu.RUnlock()

	if cb != nil {
		cb(data)
	}
}
