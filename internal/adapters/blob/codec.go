package blob

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/sitecache/internal/core/domain"
	"go.trai.ch/zerr"
)

// fileDTO is the msgpack body of a precomputed index.
type fileDTO struct {
	Records []recordDTO `msgpack:"records"`
}

type recordDTO struct {
	Contig string   `msgpack:"c"`
	Start  int64    `msgpack:"s"`
	End    int64    `msgpack:"e"`
	ID     string   `msgpack:"i,omitempty"`
	Ref    string   `msgpack:"r"`
	Alt    []string `msgpack:"a,omitempty"`
}

// Package-level codecs are safe for concurrent use.
var (
	zstdEnc *zstd.Encoder
	zstdDec *zstd.Decoder
)

func init() {
	var err error
	zstdEnc, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		panic("zstd: init encoder: " + err.Error())
	}
	zstdDec, err = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		panic("zstd: init decoder: " + err.Error())
	}
}

// Encode serializes records into the precomputed index format.
func Encode(records []domain.Record) ([]byte, error) {
	dto := fileDTO{Records: make([]recordDTO, len(records))}
	for i, r := range records {
		dto.Records[i] = recordDTO{
			Contig: r.Contig,
			Start:  r.Start,
			End:    r.End,
			ID:     r.Variant.ID,
			Ref:    r.Variant.Ref,
			Alt:    r.Variant.Alt,
		}
	}

	raw, err := msgpack.Marshal(&dto)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to marshal records")
	}
	body := zstdEnc.EncodeAll(raw, nil)

	out := make([]byte, PreambleSize, PreambleSize+len(body))
	hdr := Header{Type: TypeKnownSites, Version: Version, Flags: FlagCompressed}.Encode()
	copy(out, hdr[:])
	binary.LittleEndian.PutUint64(out[HeaderSize:], xxhash.Sum64(body))
	return append(out, body...), nil
}

// Decode parses data produced by Encode. Any structural problem is
// reported as an error; callers classify it as index corruption.
func Decode(data []byte) ([]domain.Record, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	if len(data) < PreambleSize {
		return nil, ErrHeaderTooSmall
	}

	body := data[PreambleSize:]
	if want, got := binary.LittleEndian.Uint64(data[HeaderSize:]), xxhash.Sum64(body); want != got {
		return nil, zerr.With(zerr.With(zerr.Wrap(ErrChecksumMismatch, "body does not match header"), "want", want), "got", got)
	}

	if h.Flags&FlagCompressed != 0 {
		body, err = zstdDec.DecodeAll(body, nil)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to decompress body")
		}
	}

	var dto fileDTO
	if err := msgpack.Unmarshal(body, &dto); err != nil {
		return nil, zerr.Wrap(err, "failed to unmarshal records")
	}

	records := make([]domain.Record, len(dto.Records))
	for i, r := range dto.Records {
		iv := domain.Interval{Contig: domain.InternContig(r.Contig), Start: r.Start, End: r.End}
		if err := iv.Validate(); err != nil {
			return nil, zerr.With(err, "record", i)
		}
		records[i] = domain.Record{
			Interval: iv,
			Variant:  domain.Variant{ID: r.ID, Ref: r.Ref, Alt: r.Alt},
		}
	}
	return records, nil
}
