package blob

import "go.trai.ch/zerr"

// Header layout (4 bytes):
//
//	signature (1 byte, 'S')
//	type (1 byte, 'K' = known-sites records)
//	version (1 byte)
//	flags (1 byte)
//
// The header is followed by the little-endian xxhash64 of the body
// (8 bytes) and the body itself.
const (
	Signature      = 'S'
	TypeKnownSites = 'K'
	Version        = 1
	HeaderSize     = 4
	ChecksumSize   = 8
	PreambleSize   = HeaderSize + ChecksumSize

	// FlagCompressed marks a zstd-compressed body.
	FlagCompressed = 0x01
)

var (
	ErrHeaderTooSmall    = zerr.New("header too small")
	ErrSignatureMismatch = zerr.New("signature mismatch")
	ErrTypeMismatch      = zerr.New("type mismatch")
	ErrVersionMismatch   = zerr.New("version mismatch")
	ErrChecksumMismatch  = zerr.New("checksum mismatch")
)

// Header represents the common 4-byte header.
type Header struct {
	Type    byte
	Version byte
	Flags   byte
}

// Encode writes the header to a 4-byte array.
func (h Header) Encode() [HeaderSize]byte {
	return [HeaderSize]byte{Signature, h.Type, h.Version, h.Flags}
}

// DecodeHeader reads a header and validates its type and version.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, ErrHeaderTooSmall
	}
	if buf[0] != Signature {
		return Header{}, ErrSignatureMismatch
	}

	h := Header{Type: buf[1], Version: buf[2], Flags: buf[3]}
	if h.Type != TypeKnownSites {
		return Header{}, ErrTypeMismatch
	}
	if h.Version != Version {
		return Header{}, zerr.With(zerr.Wrap(ErrVersionMismatch, "unsupported version"), "version", h.Version)
	}
	return h, nil
}
