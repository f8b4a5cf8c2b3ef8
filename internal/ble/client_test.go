package ble

import (
	"errors"
	"testing"

	"tinygo.org/x/bluetooth"
)

func TestFilters(t *testing.T) {
	gan := ScanResult{Name: "GAN-i3 1A2B", Address: "AA:BB:CC:DD:EE:FF"}
	other := ScanResult{Name: "GoCube_1234", Address: "11:22:33:44:55:66"}

	tests := []struct {
		name   string
		filter Filter
		res    ScanResult
		want   bool
	}{
		{"prefix match", NamePrefix("GAN"), gan, true},
		{"prefix miss", NamePrefix("GAN"), other, false},
		{"prefix is case sensitive", NamePrefix("gan"), gan, false},
		{"empty prefix", NamePrefix(""), other, true},
		{"address", Address("aa:bb:cc:dd:ee:ff"), gan, true},
		{"address miss", Address("aa:bb:cc:dd:ee:ff"), other, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter(tt.res); got != tt.want {
				t.Errorf("filter(%q) = %v, want %v", tt.res.Name, got, tt.want)
			}
		})
	}
}

func TestUUIDs(t *testing.T) {
	if got := serviceUUID.String(); got != "6e400001-b5a3-f393-e0a9-e50e24dc4179" {
		t.Errorf("service UUID = %s", got)
	}
	if requestUUID == responseUUID {
		t.Error("request and response characteristics share a UUID")
	}
}

// The platform write helpers must share one signature on every target.
var _ func(bluetooth.DeviceCharacteristic, []byte) error = writeFrame

func TestWriteRequiresConnection(t *testing.T) {
	var c Client
	if err := c.Write(make([]byte, 20)); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("Write() error = %v, want ErrNotConnected", err)
	}
}
