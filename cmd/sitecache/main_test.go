package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sitecache/internal/adapters/telemetry"
	"go.trai.ch/sitecache/internal/app"
	"go.trai.ch/sitecache/internal/core/domain"
	"go.trai.ch/sitecache/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func provide(t *testing.T) (ComponentProvider, *mocks.MockIndexProvider, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	indexes := mocks.NewMockIndexProvider(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	store := mocks.NewMockPrecomputedStore(ctrl)

	application := app.New(indexes, store, telemetry.NewNoOpTracer(), logger, domain.DefaultSettings())
	return func(_ context.Context) (*app.Components, error) {
		return &app.Components{App: application, Logger: logger}, nil
	}, indexes, logger
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	provider, _, _ := provide(t)

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, stderr, provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "sitecache version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, error) {
		return nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that failures are logged and exit with 1.
func TestRun_ExecutionError(t *testing.T) {
	provider, indexes, logger := provide(t)
	key := domain.MustKey("a.vcf")
	buildErr := domain.NewBuildError(key, domain.NewSourceError(domain.ErrSourceUnreadable, "a.vcf", os.ErrNotExist))

	indexes.EXPECT().GetIndex(gomock.Any(), key).Return(nil, buildErr)
	logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrBuildFailed)
	})

	exitCode := run(context.Background(), []string{"query", "--source", "a.vcf", "chr1"},
		new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_EndToEnd runs the fully wired application against files on disk.
func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	vcf := filepath.Join(dir, "sites.vcf")
	require.NoError(t, os.WriteFile(vcf, []byte(
		"#CHROM\tPOS\tID\tREF\tALT\n"+
			"chr1\t100\trs1\tA\tG\n"+
			"chr1\t300\trs3\tC\tT\n"), domain.FilePerm))

	config := filepath.Join(dir, "sitecache.yaml")
	require.NoError(t, os.WriteFile(config, []byte("version: \"1\"\ntelemetry: none\nlog:\n  format: json\n"), domain.FilePerm))
	t.Setenv("SITECACHE_CONFIG", config)

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"query", "-S", vcf, "chr1:1-200"}, stdout, stderr, app.NewApp)

	require.Equal(t, 0, exitCode, stderr.String())
	assert.Equal(t, "chr1\t100\t100\trs1\tA\tG\n", stdout.String())
}
