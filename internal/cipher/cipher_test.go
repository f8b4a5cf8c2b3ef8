package cipher

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

var testIdentifier = []byte{0x00, 0x01, 0x02, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func newTestCipher(t *testing.T) *Cipher {
	t.Helper()
	c, err := FromManufacturerData(map[uint16][]byte{CompanyID: testIdentifier})
	if err != nil {
		t.Fatalf("FromManufacturerData: %v", err)
	}
	return c
}

func TestKeySchedule(t *testing.T) {
	c := newTestCipher(t)

	key := c.Key()
	if want := mustHex(t, "abbd0f06209116072005185442111253"); !bytes.Equal(key[:], want) {
		t.Errorf("key = %x, want %x", key, want)
	}
	iv := c.IV()
	if want := mustHex(t, "bbbefe06100176272095781432120243"); !bytes.Equal(iv[:], want) {
		t.Errorf("iv = %x, want %x", iv, want)
	}
}

func TestEncrypt_KnownAnswer(t *testing.T) {
	c := newTestCipher(t)

	var frame [FrameSize]byte
	for i := range frame {
		frame[i] = byte(i)
	}
	c.Encrypt(&frame)

	if want := mustHex(t, "a06542fcbbf45b2183b5e66a067f249129c32b97"); !bytes.Equal(frame[:], want) {
		t.Errorf("ciphertext = %x, want %x", frame, want)
	}
}

func TestDecryptInvertsEncrypt(t *testing.T) {
	c := newTestCipher(t)

	plain := [FrameSize]byte{0x09}
	frame := plain
	c.Encrypt(&frame)
	if frame == plain {
		t.Fatal("Encrypt left the frame unchanged")
	}
	c.Decrypt(&frame)
	if frame != plain {
		t.Errorf("round trip = %x, want %x", frame, plain)
	}
}

func TestDecrypt_WrongBlockOrderCorrupts(t *testing.T) {
	c := newTestCipher(t)

	var plain [FrameSize]byte
	for i := range plain {
		plain[i] = byte(0xF0 - i)
	}
	frame := plain
	c.Encrypt(&frame)

	// Undo the leading block first.
	c.decryptBlock(frame[0:BlockSize])
	c.decryptBlock(frame[FrameSize-BlockSize:])

	if frame == plain {
		t.Error("decrypting blocks in encryption order should not recover the plaintext")
	}
}

func TestDeviceIdentifierErrors(t *testing.T) {
	tests := []struct {
		name string
		data map[uint16][]byte
		want error
	}{
		{"missing", map[uint16][]byte{0x0002: testIdentifier}, ErrNoDeviceIdentifier},
		{"nil map", nil, ErrNoDeviceIdentifier},
		{"short", map[uint16][]byte{CompanyID: testIdentifier[:8]}, ErrInvalidDeviceIdentifier},
		{"long", map[uint16][]byte{CompanyID: append(append([]byte{}, testIdentifier...), 0)}, ErrInvalidDeviceIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromManufacturerData(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestKeySchedule_WrapsModulo255(t *testing.T) {
	c, err := New(DeviceKey{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	if err != nil {
		t.Fatal(err)
	}
	key := c.Key()
	// 0x01 + 0xFF = 256, 256 mod 255 = 1
	if key[0] != 0x01 {
		t.Errorf("key[0] = %#x, want 0x01", key[0])
	}
	// 0x91 + 0xFF = 400, 400 mod 255 = 145
	if key[5] != 0x91 {
		t.Errorf("key[5] = %#x, want 0x91", key[5])
	}
	if key[6] != baseKey[6] {
		t.Errorf("key[6] changed: %#x", key[6])
	}
}
