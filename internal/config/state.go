package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// AppState is what cuboard remembers between runs.
type AppState struct {
	LastDeviceAddress string `json:"last_device_address,omitempty"`
	LastDeviceName    string `json:"last_device_name,omitempty"`
	LastCaptureID     string `json:"last_capture_id,omitempty"`
}

// StateFile manages the application state file.
type StateFile struct {
	path  string
	state AppState
}

// DefaultStatePath returns the default state file path.
func DefaultStatePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.json"), nil
}

// NewStateFile opens the state file at path. A missing file is an empty
// state.
func NewStateFile(path string) (*StateFile, error) {
	sf := &StateFile{path: path}
	if err := sf.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return sf, nil
}

// NewDefaultStateFile opens the state file at the default path.
func NewDefaultStateFile() (*StateFile, error) {
	path, err := DefaultStatePath()
	if err != nil {
		return nil, err
	}
	return NewStateFile(path)
}

// Load loads the state from disk.
func (sf *StateFile) Load() error {
	data, err := os.ReadFile(sf.path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &sf.state); err != nil {
		return fmt.Errorf("failed to parse state file: %w", err)
	}
	return nil
}

// Save saves the state to disk.
func (sf *StateFile) Save() error {
	data, err := json.MarshalIndent(sf.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.WriteFile(sf.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

func (sf *StateFile) Path() string { return sf.path }

// State returns the current state.
func (sf *StateFile) State() AppState { return sf.state }

// SetLastDevice records the device connected to and saves.
func (sf *StateFile) SetLastDevice(address, name string) error {
	sf.state.LastDeviceAddress = address
	sf.state.LastDeviceName = name
	return sf.Save()
}

// SetLastCapture records the most recent capture session and saves.
func (sf *StateFile) SetLastCapture(id string) error {
	sf.state.LastCaptureID = id
	return sf.Save()
}

// LastDeviceAddress returns the address of the last connected device.
func (sf *StateFile) LastDeviceAddress() string { return sf.state.LastDeviceAddress }

func (sf *StateFile) LastCaptureID() string { return sf.state.LastCaptureID }
