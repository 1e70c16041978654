package app_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sitecache/internal/adapters/telemetry"
	"go.trai.ch/sitecache/internal/app"
	"go.trai.ch/sitecache/internal/core/domain"
	"go.trai.ch/sitecache/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type appMocks struct {
	indexes *mocks.MockIndexProvider
	store   *mocks.MockPrecomputedStore
	logger  *mocks.MockLogger
}

func setupApp(t *testing.T, settings domain.Settings) (*app.App, appMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := appMocks{
		indexes: mocks.NewMockIndexProvider(ctrl),
		store:   mocks.NewMockPrecomputedStore(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
	}
	a := app.New(m.indexes, m.store, telemetry.NewNoOpTracer(), m.logger, settings)
	return a, m
}

func rec(contig string, start, end int64, id, ref string, alt ...string) domain.Record {
	return domain.Record{
		Interval: domain.Interval{Contig: contig, Start: start, End: end},
		Variant:  domain.Variant{ID: id, Ref: ref, Alt: alt},
	}
}

func sampleIndex() *domain.IntervalIndex {
	return domain.NewIntervalIndex([]domain.Record{
		rec("chr2", 50, 50, "", "C", "T", "G"),
		rec("chr1", 200, 203, "rs2", "ACGT", "A"),
		rec("chr1", 100, 100, "rs1", "A", "G"),
		rec("chr1", 900, 1500, "sv1", "N"),
	})
}

func settingsWithSets() domain.Settings {
	s := domain.DefaultSettings()
	s.KnownSites = map[string][]string{
		"dbsnp": {"a.vcf", "b.vcf"},
		"mills": {"mills.kryo"},
	}
	return s
}

func TestApp_ResolveKey(t *testing.T) {
	a, _ := setupApp(t, settingsWithSets())

	key, err := a.ResolveKey("dbsnp", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.vcf", "b.vcf"}, key.Locations())

	key, err = a.ResolveKey("dbsnp", []string{"c.vcf"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c.vcf"}, key.Locations(), "sources take precedence")

	_, err = a.ResolveKey("", nil)
	require.ErrorIs(t, err, domain.ErrNoSourcesSpecified)

	_, err = a.ResolveKey("nope", nil)
	require.ErrorIs(t, err, domain.ErrUnknownSourceSet)

	_, err = a.ResolveKey("", []string{"a.vcf", ""})
	require.ErrorIs(t, err, domain.ErrInvalidKey)
}

func TestApp_Query(t *testing.T) {
	a, m := setupApp(t, domain.DefaultSettings())
	key := domain.MustKey("a.vcf")

	m.indexes.EXPECT().GetIndex(gomock.Any(), key).Return(sampleIndex(), nil)

	var out bytes.Buffer
	err := a.Query(context.Background(), key, []string{"chr1:150-1000", "chr2", "chr3:1-10"}, &out)
	require.NoError(t, err)

	assert.Equal(t,
		"chr1\t200\t203\trs2\tACGT\tA\n"+
			"chr1\t900\t1500\tsv1\tN\t.\n"+
			"chr2\t50\t50\t.\tC\tT,G\n",
		out.String())
}

func TestApp_QueryBadRegionSkipsBuild(t *testing.T) {
	a, _ := setupApp(t, domain.DefaultSettings())

	var out bytes.Buffer
	err := a.Query(context.Background(), domain.MustKey("a.vcf"), []string{"chr1:10-5"}, &out)
	require.ErrorIs(t, err, domain.ErrInvalidRegion)
	assert.Empty(t, out.String())
}

func TestApp_QueryBuildFailure(t *testing.T) {
	a, m := setupApp(t, domain.DefaultSettings())
	key := domain.MustKey("a.vcf")
	buildErr := domain.NewBuildError(key, domain.NewSourceError(domain.ErrSourceUnreadable, "a.vcf", nil))

	m.indexes.EXPECT().GetIndex(gomock.Any(), key).Return(nil, buildErr)

	err := a.Query(context.Background(), key, []string{"chr1"}, &bytes.Buffer{})
	require.ErrorIs(t, err, domain.ErrBuildFailed)
	require.ErrorIs(t, err, domain.ErrSourceUnreadable)
}

func TestApp_Stats(t *testing.T) {
	a, m := setupApp(t, domain.DefaultSettings())
	key := domain.MustKey("a.vcf")

	m.indexes.EXPECT().GetIndex(gomock.Any(), key).Return(sampleIndex(), nil)

	report, err := a.Stats(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Records)
	assert.Equal(t, []app.ContigCount{{Contig: "chr1", Records: 3}, {Contig: "chr2", Records: 1}}, report.Contigs)
	assert.True(t, key.Equal(report.Key))
}

func TestApp_Pack(t *testing.T) {
	a, m := setupApp(t, domain.DefaultSettings())
	key := domain.MustKey("a.vcf", "b.vcf")

	m.indexes.EXPECT().GetIndex(gomock.Any(), key).Return(sampleIndex(), nil)
	m.store.EXPECT().Write(gomock.Any(), "out.kryo", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, records []domain.Record) error {
			require.Len(t, records, 4)
			assert.Equal(t, "rs1", records[0].Variant.ID)
			assert.Equal(t, "chr2", records[3].Contig)
			return nil
		})
	m.logger.EXPECT().Info("Packed 4 records into out.kryo")

	n, err := a.Pack(context.Background(), key, "out.kryo")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestApp_PackWarnsOnRawExtension(t *testing.T) {
	a, m := setupApp(t, domain.DefaultSettings())
	key := domain.MustKey("a.vcf")

	m.logger.EXPECT().Warn("out.bin does not end in .kryo and will be read as a raw source")
	m.indexes.EXPECT().GetIndex(gomock.Any(), key).Return(sampleIndex(), nil)
	m.store.EXPECT().Write(gomock.Any(), "out.bin", gomock.Any()).Return(nil)
	m.logger.EXPECT().Info(gomock.Any())

	_, err := a.Pack(context.Background(), key, "out.bin")
	require.NoError(t, err)
}

func TestApp_PackRejectsBadOutput(t *testing.T) {
	a, _ := setupApp(t, domain.DefaultSettings())
	key := domain.MustKey("a.kryo")

	_, err := a.Pack(context.Background(), key, "")
	require.ErrorIs(t, err, domain.ErrPackFailed)

	_, err = a.Pack(context.Background(), key, "a.kryo")
	require.ErrorIs(t, err, domain.ErrPackFailed)
}

func TestApp_PackWriteFailure(t *testing.T) {
	a, m := setupApp(t, domain.DefaultSettings())
	key := domain.MustKey("a.vcf")
	writeErr := errors.New("disk full")

	m.indexes.EXPECT().GetIndex(gomock.Any(), key).Return(sampleIndex(), nil)
	m.store.EXPECT().Write(gomock.Any(), "out.kryo", gomock.Any()).Return(writeErr)

	_, err := a.Pack(context.Background(), key, "out.kryo")
	require.ErrorIs(t, err, writeErr)
}

func TestApp_WarmBuildsConcurrently(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m := setupApp(t, settingsWithSets())

		// Each build blocks until both have started, so a sequential
		// Warm would deadlock the bubble.
		started := make(chan struct{}, 2)
		release := make(chan struct{})
		m.indexes.EXPECT().GetIndex(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, domain.Key) (*domain.IntervalIndex, error) {
				started <- struct{}{}
				<-release
				return sampleIndex(), nil
			}).Times(2)
		m.logger.EXPECT().Info(gomock.Any()).Times(2)

		done := make(chan error, 1)
		go func() { done <- a.Warm(context.Background(), []string{"dbsnp", "mills"}) }()

		<-started
		<-started
		close(release)
		require.NoError(t, <-done)
	})
}

func TestApp_WarmFailures(t *testing.T) {
	a, m := setupApp(t, settingsWithSets())

	require.ErrorIs(t, a.Warm(context.Background(), nil), domain.ErrNoSourcesSpecified)
	require.ErrorIs(t, a.Warm(context.Background(), []string{"dbsnp", "nope"}), domain.ErrUnknownSourceSet)

	key := domain.MustKey("mills.kryo")
	m.indexes.EXPECT().GetIndex(gomock.Any(), key).
		Return(nil, domain.NewBuildError(key, domain.ErrPrecomputedIndexCorrupt))

	err := a.Warm(context.Background(), []string{"mills"})
	require.ErrorIs(t, err, domain.ErrBuildFailed)
	require.ErrorIs(t, err, domain.ErrPrecomputedIndexCorrupt)
}

func TestApp_Close(t *testing.T) {
	a, _ := setupApp(t, domain.DefaultSettings())
	require.NoError(t, a.Close(context.Background()))
}
