//go:build !darwin && !windows

package ble

import "tinygo.org/x/bluetooth"

// writeFrame writes without response. BlueZ exposes no write with
// response on DeviceCharacteristic.
func writeFrame(ch bluetooth.DeviceCharacteristic, frame []byte) error {
	_, err := ch.WriteWithoutResponse(frame)
	return err
}
