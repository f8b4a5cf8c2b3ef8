// Package cipher implements the frame encryption used by GAN v2 smart cubes.
//
// Each cube advertises a 9-byte manufacturer identifier. Bytes [3,9) of it
// are added, modulo 255, to the first six bytes of a fixed key and a fixed
// whitening block to form the per-device AES-128 key and IV. A 20-byte frame
// is processed as two overlapping 16-byte blocks, [0,16) and [4,20).
package cipher

import (
	"crypto/aes"
	"errors"
	"fmt"
)

const (
	// FrameSize is the length of every request and notification frame.
	FrameSize = 20

	// BlockSize is the AES block length.
	BlockSize = 16

	// IdentifierSize is the length of the advertised manufacturer identifier.
	IdentifierSize = 9

	// CompanyID is the manufacturer data key carrying the identifier.
	CompanyID uint16 = 0x0001
)

var (
	ErrNoDeviceIdentifier      = errors.New("cipher: manufacturer data has no device identifier")
	ErrInvalidDeviceIdentifier = errors.New("cipher: malformed device identifier")
)

var (
	baseKey = [BlockSize]byte{
		0x01, 0x02, 0x42, 0x28, 0x31, 0x91, 0x16, 0x07,
		0x20, 0x05, 0x18, 0x54, 0x42, 0x11, 0x12, 0x53,
	}
	baseIV = [BlockSize]byte{
		0x11, 0x03, 0x32, 0x28, 0x21, 0x01, 0x76, 0x27,
		0x20, 0x95, 0x78, 0x14, 0x32, 0x12, 0x02, 0x43,
	}
)

// DeviceKey is the per-device salt taken from the manufacturer identifier.
type DeviceKey [6]byte

// ParseDeviceKey extracts the device key from a manufacturer identifier.
func ParseDeviceKey(identifier []byte) (DeviceKey, error) {
	var k DeviceKey
	if len(identifier) != IdentifierSize {
		return k, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidDeviceIdentifier, len(identifier), IdentifierSize)
	}
	copy(k[:], identifier[3:IdentifierSize])
	return k, nil
}

type block interface {
	Encrypt(dst, src []byte)
	Decrypt(dst, src []byte)
}

// Cipher encrypts and decrypts frames for a single device.
// It is safe for concurrent use.
type Cipher struct {
	block block
	key   [BlockSize]byte
	iv    [BlockSize]byte
}

// New derives the key schedule for a device.
func New(dk DeviceKey) (*Cipher, error) {
	c := &Cipher{key: baseKey, iv: baseIV}
	for i, b := range dk {
		c.key[i] = byte((int(c.key[i]) + int(b)) % 255)
		c.iv[i] = byte((int(c.iv[i]) + int(b)) % 255)
	}

	blk, err := aes.NewCipher(c.key[:])
	if err != nil {
		return nil, fmt.Errorf("cipher: init aes: %w", err)
	}
	c.block = blk
	return c, nil
}

// FromManufacturerData builds a Cipher from advertised manufacturer data,
// keyed by company identifier.
func FromManufacturerData(data map[uint16][]byte) (*Cipher, error) {
	id, ok := data[CompanyID]
	if !ok {
		return nil, ErrNoDeviceIdentifier
	}
	dk, err := ParseDeviceKey(id)
	if err != nil {
		return nil, err
	}
	return New(dk)
}

// Key returns the derived AES key.
func (c *Cipher) Key() [BlockSize]byte { return c.key }

// IV returns the derived whitening block.
func (c *Cipher) IV() [BlockSize]byte { return c.iv }

// Encrypt transforms a plaintext frame in place. The leading block is
// processed before the trailing one.
func (c *Cipher) Encrypt(frame *[FrameSize]byte) {
	c.encryptBlock(frame[0:BlockSize])
	c.encryptBlock(frame[FrameSize-BlockSize:])
}

// Decrypt reverses Encrypt in place. The trailing block must be undone first
// because the two blocks share bytes [4,16).
func (c *Cipher) Decrypt(frame *[FrameSize]byte) {
	c.decryptBlock(frame[FrameSize-BlockSize:])
	c.decryptBlock(frame[0:BlockSize])
}

func (c *Cipher) encryptBlock(b []byte) {
	for i := range c.iv {
		b[i] ^= c.iv[i]
	}
	c.block.Encrypt(b, b)
}

func (c *Cipher) decryptBlock(b []byte) {
	c.block.Decrypt(b, b)
	for i := range c.iv {
		b[i] ^= c.iv[i]
	}
}
