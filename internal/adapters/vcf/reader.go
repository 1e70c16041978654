// Package vcf reads known-sites records from VCF text, plain or gzip-compressed.
//
// Only the fixed columns needed to place a site are decoded: CHROM, POS, ID,
// REF and ALT, plus the END key of the INFO column for symbolic alleles.
// Headers and sample columns are skipped.
package vcf

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.trai.ch/sitecache/internal/core/domain"
	"go.trai.ch/sitecache/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// maxLineSize bounds a single VCF line; INFO columns can be large.
	maxLineSize = 64 << 20

	fileScheme = "file://"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}

	errUnsupportedScheme = zerr.New("unsupported location scheme")
	errTooFewColumns     = zerr.New("expected at least 5 tab-separated columns")
	errBadPosition       = zerr.New("POS must be a positive integer")
	errEmptyRef          = zerr.New("REF must not be empty")
	errBadEnd            = zerr.New("INFO END must be an integer not before POS")
)

// Opener opens VCF files from the local filesystem.
type Opener struct{}

// NewOpener creates an Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open opens location for reading. Gzip input, including multi-member
// BGZF files, is detected from its magic bytes.
func (o *Opener) Open(ctx context.Context, location string) (ports.RecordReader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := strings.TrimPrefix(location, fileScheme)
	if strings.Contains(path, "://") {
		return nil, domain.NewSourceError(domain.ErrSourceUnreadable, location, errUnsupportedScheme)
	}

	//nolint:gosec // reading user-named sources is the point
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewSourceError(domain.ErrSourceUnreadable, location,
			zerr.Wrap(err, "failed to open source"))
	}

	r := &Reader{location: location, closers: []io.Closer{f}}

	buffered := bufio.NewReader(f)
	head, err := buffered.Peek(len(gzipMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		_ = r.Close()
		return nil, domain.NewSourceError(domain.ErrSourceUnreadable, location,
			zerr.Wrap(err, "failed to read source"))
	}

	var src io.Reader = buffered
	if string(head) == string(gzipMagic) {
		gz, err := gzip.NewReader(buffered)
		if err != nil {
			_ = r.Close()
			return nil, domain.NewSourceError(domain.ErrSourceUnreadable, location,
				zerr.Wrap(err, "failed to open gzip stream"))
		}
		r.closers = append(r.closers, gz)
		src = gz
	}

	r.scanner = bufio.NewScanner(src)
	r.scanner.Buffer(make([]byte, 0, 64<<10), maxLineSize)
	return r, nil
}

// Reader yields the records of one VCF source.
type Reader struct {
	location string
	scanner  *bufio.Scanner
	closers  []io.Closer
	line     int
	closed   bool
}

// Read returns the next record, or io.EOF when the source is drained.
func (r *Reader) Read() (domain.Record, error) {
	for r.scanner.Scan() {
		r.line++
		text := r.scanner.Text()
		if text == "" || text[0] == '#' {
			continue
		}

		rec, err := parseLine(text)
		if err != nil {
			return domain.Record{}, domain.NewSourceError(domain.ErrRecordMalformed, r.location,
				zerr.With(err, "line", r.line))
		}
		return rec, nil
	}

	if err := r.scanner.Err(); err != nil {
		return domain.Record{}, domain.NewSourceError(domain.ErrSourceUnreadable, r.location,
			zerr.With(zerr.Wrap(err, "failed to read source"), "line", r.line+1))
	}
	return domain.Record{}, io.EOF
}

// Close releases the underlying file. It is safe to call more than once.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var errs error
	for i := len(r.closers) - 1; i >= 0; i-- {
		errs = errors.Join(errs, r.closers[i].Close())
	}
	return errs
}

func parseLine(line string) (domain.Record, error) {
	fields := strings.SplitN(line, "\t", 9)
	if len(fields) < 5 {
		return domain.Record{}, errTooFewColumns
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil || pos < 1 {
		return domain.Record{}, zerr.With(errBadPosition, "pos", fields[1])
	}

	ref := fields[3]
	if ref == "" || ref == "." {
		return domain.Record{}, errEmptyRef
	}

	end := pos + int64(len(ref)) - 1
	if len(fields) > 7 {
		if v, ok := infoValue(fields[7], "END"); ok {
			infoEnd, err := strconv.ParseInt(v, 10, 64)
			if err != nil || infoEnd < pos {
				return domain.Record{}, zerr.With(errBadEnd, "end", v)
			}
			end = infoEnd
		}
	}

	return domain.Record{
		Interval: domain.Interval{
			Contig: domain.InternContig(fields[0]),
			Start:  pos,
			End:    end,
		},
		// Clones detach the record from the line buffer, which may hold a large INFO column.
		Variant: domain.Variant{
			ID:  strings.Clone(missingAsEmpty(fields[2])),
			Ref: strings.Clone(ref),
			Alt: splitAlt(strings.Clone(fields[4])),
		},
	}, nil
}

func infoValue(info, key string) (string, bool) {
	for entry := range strings.SplitSeq(info, ";") {
		k, v, ok := strings.Cut(entry, "=")
		if ok && k == key {
			return v, true
		}
	}
	return "", false
}

func splitAlt(alt string) []string {
	if alt == "." || alt == "" {
		return nil
	}
	return strings.Split(alt, ",")
}

func missingAsEmpty(s string) string {
	if s == "." {
		return ""
	}
	return s
}
