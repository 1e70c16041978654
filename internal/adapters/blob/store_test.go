package blob_test

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sitecache/internal/adapters/blob"
	"go.trai.ch/sitecache/internal/core/domain"
)

func sampleRecords() []domain.Record {
	return []domain.Record{
		{
			Interval: domain.Interval{Contig: "chr1", Start: 100, End: 100},
			Variant:  domain.Variant{ID: "rs1", Ref: "A", Alt: []string{"G"}},
		},
		{
			Interval: domain.Interval{Contig: "chr1", Start: 200, End: 203},
			Variant:  domain.Variant{ID: "rs2", Ref: "ACGT", Alt: []string{"A"}},
		},
		{
			Interval: domain.Interval{Contig: "chr2", Start: 50, End: 50},
			Variant:  domain.Variant{Ref: "C"},
		},
	}
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "sites.kryo")
	store := blob.NewStore()

	require.NoError(t, store.Write(ctx, path, sampleRecords()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, domain.FilePerm, info.Mode().Perm())

	got, err := store.Read(ctx, "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestStore_WriteReplacesExisting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sites.kryo")
	store := blob.NewStore()

	require.NoError(t, store.Write(ctx, path, sampleRecords()))
	require.NoError(t, store.Write(ctx, path, sampleRecords()[:1]))

	got, err := store.Read(ctx, path)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStore_EmptyIndex(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "empty.kryo")
	store := blob.NewStore()

	require.NoError(t, store.Write(ctx, path, nil))

	got, err := store.Read(ctx, path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_MissingFile(t *testing.T) {
	t.Parallel()

	loc := filepath.Join(t.TempDir(), "missing.kryo")
	_, err := blob.NewStore().Read(context.Background(), loc)

	require.ErrorIs(t, err, domain.ErrSourceUnreadable)
	require.ErrorIs(t, err, os.ErrNotExist)

	var srcErr *domain.SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, loc, srcErr.Location)
}

func TestStore_Corrupt(t *testing.T) {
	t.Parallel()

	valid, err := blob.Encode(sampleRecords())
	require.NoError(t, err)

	mutate := func(f func([]byte) []byte) []byte {
		return f(append([]byte(nil), valid...))
	}

	// Re-seals a body so that only the payload is wrong, not the checksum.
	seal := func(flags byte, body []byte) []byte {
		out := []byte{blob.Signature, blob.TypeKnownSites, blob.Version, flags}
		out = binary.LittleEndian.AppendUint64(out, xxhash.Sum64(body))
		return append(out, body...)
	}

	tests := []struct {
		name  string
		data  []byte
		cause error
	}{
		{name: "empty file", data: nil, cause: blob.ErrHeaderTooSmall},
		{name: "header only", data: valid[:blob.HeaderSize], cause: blob.ErrHeaderTooSmall},
		{
			name:  "bad signature",
			data:  mutate(func(b []byte) []byte { b[0] = 'X'; return b }),
			cause: blob.ErrSignatureMismatch,
		},
		{
			name:  "bad type",
			data:  mutate(func(b []byte) []byte { b[1] = 'Z'; return b }),
			cause: blob.ErrTypeMismatch,
		},
		{
			name:  "bad version",
			data:  mutate(func(b []byte) []byte { b[2] = 9; return b }),
			cause: blob.ErrVersionMismatch,
		},
		{
			name:  "flipped body byte",
			data:  mutate(func(b []byte) []byte { b[len(b)-1] ^= 0xff; return b }),
			cause: blob.ErrChecksumMismatch,
		},
		{
			name:  "truncated body",
			data:  valid[:len(valid)-3],
			cause: blob.ErrChecksumMismatch,
		},
		{name: "not zstd", data: seal(blob.FlagCompressed, []byte("plain text"))},
		{name: "not msgpack", data: seal(0, []byte{0xc1})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "bad.kryo")
			require.NoError(t, os.WriteFile(path, tt.data, domain.FilePerm))

			_, err := blob.NewStore().Read(context.Background(), path)
			require.ErrorIs(t, err, domain.ErrPrecomputedIndexCorrupt)
			assert.NotErrorIs(t, err, domain.ErrSourceUnreadable)
			if tt.cause != nil {
				require.ErrorIs(t, err, tt.cause)
			}
		})
	}
}

func TestDecode_RejectsInvalidInterval(t *testing.T) {
	t.Parallel()

	data, err := blob.Encode([]domain.Record{{
		Interval: domain.Interval{Contig: "chr1", Start: 10, End: 5},
		Variant:  domain.Variant{Ref: "A"},
	}})
	require.NoError(t, err)

	_, err = blob.Decode(data)
	require.ErrorIs(t, err, domain.ErrInvalidInterval)
}

func TestStore_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := blob.NewStore()
	path := filepath.Join(t.TempDir(), "sites.kryo")

	require.ErrorIs(t, store.Write(ctx, path, sampleRecords()), context.Canceled)
	_, err := store.Read(ctx, path)
	require.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestStore_WriteFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, domain.FilePerm))

	err := blob.NewStore().Write(context.Background(), filepath.Join(blocker, "sites.kryo"), sampleRecords())
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrPackFailed.Error())
}
