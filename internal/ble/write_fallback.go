//go:build darwin || windows

package ble

import "tinygo.org/x/bluetooth"

// writeFrame falls back to a write with response when the characteristic
// rejects write-without-response.
func writeFrame(ch bluetooth.DeviceCharacteristic, frame []byte) error {
	_, err := ch.WriteWithoutResponse(frame)
	if err != nil {
		_, err = ch.Write(frame)
	}
	return err
}
