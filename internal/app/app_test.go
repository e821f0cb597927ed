package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/intern/internal/adapters/clock"
	"go.trai.ch/intern/internal/adapters/fs"
	"go.trai.ch/intern/internal/adapters/logger"
	"go.trai.ch/intern/internal/adapters/telemetry"
	"go.trai.ch/intern/internal/app"
	"go.trai.ch/intern/internal/core/domain"
	"go.trai.ch/intern/internal/core/ports"
	"go.trai.ch/intern/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type testDeps struct {
	loader    *mocks.MockConfigLoader
	clock     *mocks.MockClock
	logger    *mocks.MockLogger
	telemetry *mocks.MockTelemetry
	source    *mocks.MockLineSource
}

func newTestApp(t *testing.T) (*app.App, *testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	deps := &testDeps{
		loader:    mocks.NewMockConfigLoader(ctrl),
		clock:     mocks.NewMockClock(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
		source:    mocks.NewMockLineSource(ctrl),
	}
	deps.clock.EXPECT().NowMillis().Return(uint64(0)).AnyTimes()
	deps.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	a := app.New(deps.loader, deps.clock, deps.logger, telemetry.NewNoOpTracer(), deps.telemetry, deps.source)
	return a, deps
}

// expectVertices makes every recorded vertex accept any progress call.
func expectVertices(t *testing.T, deps *testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	deps.telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			v := mocks.NewMockVertex(ctrl)
			v.EXPECT().Stdout().Return(io.Discard).AnyTimes()
			v.EXPECT().Cached().AnyTimes()
			v.EXPECT().Complete(gomock.Any()).AnyTimes()
			return ctx, v
		}).AnyTimes()
}

// lines serves each file from an in-memory map through EachLine.
func lines(files map[string]string) func(context.Context, string, func([]byte, int, int)) error {
	return func(_ context.Context, path string, fn func([]byte, int, int)) error {
		content, ok := files[path]
		if !ok {
			return domain.ErrSourceRead
		}
		buf := []byte(content)
		start := 0
		for i, c := range buf {
			if c == '\n' {
				fn(buf, start, i)
				start = i + 1
			}
		}
		if start < len(buf) {
			fn(buf, start, len(buf))
		}
		return nil
	}
}

func TestApp_Open(t *testing.T) {
	a, deps := newTestApp(t)

	cfg := domain.DefaultConfig()
	cfg.Pool.MinSizeForGC = 0
	deps.loader.EXPECT().Load("intern.yaml").Return(cfg, nil)

	require.NoError(t, a.Open("intern.yaml", false))

	_, err := a.Put(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, 1, a.Stats().Entries)
}

func TestApp_Open_LoaderError(t *testing.T) {
	a, deps := newTestApp(t)

	deps.loader.EXPECT().Load("broken.yaml").Return(nil, domain.ErrInvalidConfig)

	err := a.Open("broken.yaml", false)
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestApp_Open_JSONLogs(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load("").Return(domain.DefaultConfig(), nil)

	buf := new(bytes.Buffer)
	log := logger.New()
	log.SetOutput(buf)

	a := app.New(loader, clock.New(), log, telemetry.NewNoOpTracer(), mocks.NewMockTelemetry(ctrl), mocks.NewMockLineSource(ctrl))
	require.NoError(t, a.Open("", true))

	log.Info("switched")
	assert.True(t, strings.HasPrefix(buf.String(), "{"), "expected JSON output, got %q", buf.String())
}

func TestApp_Open_ResetsPool(t *testing.T) {
	a, deps := newTestApp(t)
	deps.loader.EXPECT().Load("").Return(domain.DefaultConfig(), nil).Times(2)

	require.NoError(t, a.Open("", false))
	_, err := a.Put(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 2, a.Stats().Entries)

	require.NoError(t, a.Open("", false))
	assert.Zero(t, a.Stats().Entries)
}

func TestApp_Put(t *testing.T) {
	a, _ := newTestApp(t)

	handles, err := a.Put(context.Background(), []string{"gain", "", "gain", "freq"})
	require.NoError(t, err)
	require.Len(t, handles, 4)

	assert.Equal(t, "gain", handles[0].String())
	assert.True(t, handles[1].IsEmpty())
	assert.True(t, handles[0].Same(handles[2]))
	assert.Equal(t, int64(3), handles[0].RefCount())
	assert.Equal(t, []string{"freq", "gain"}, a.Values())
}

func TestApp_Put_NoInputs(t *testing.T) {
	a, _ := newTestApp(t)

	_, err := a.Put(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrNoInputs)
}

func TestApp_Put_Span(t *testing.T) {
	ctrl := gomock.NewController(t)
	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)

	tracer.EXPECT().Start(gomock.Any(), "put", gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		})
	span.EXPECT().SetAttribute("entries", 2)
	span.EXPECT().End()

	a := app.New(mocks.NewMockConfigLoader(ctrl), clock.New(), mocks.NewMockLogger(ctrl), tracer,
		mocks.NewMockTelemetry(ctrl), mocks.NewMockLineSource(ctrl))

	_, err := a.Put(context.Background(), []string{"x", "y", "x"})
	require.NoError(t, err)
}

func TestApp_Load(t *testing.T) {
	a, deps := newTestApp(t)
	expectVertices(t, deps)

	files := map[string]string{
		"a.txt": "cat\ndog\n",
		"b.txt": "dog\n\n",
	}
	deps.source.EXPECT().Expand([]string{"dir"}).Return([]string{"a.txt", "b.txt"}, nil)
	deps.source.EXPECT().EachLine(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(lines(files)).Times(2)

	report, err := a.Load(context.Background(), []string{"dir"}, app.LoadOptions{Workers: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.LoadReport{Files: 2, Lines: 3, Inserted: 2}, report)
	assert.Equal(t, []string{"cat", "dog"}, a.Values())

	// Load keeps no holders, so a forced pass reclaims everything.
	assert.Equal(t, 2, a.Collect(context.Background()))
	assert.Zero(t, a.Stats().Entries)
}

func TestApp_Load_Hold(t *testing.T) {
	a, deps := newTestApp(t)
	expectVertices(t, deps)

	deps.source.EXPECT().Expand([]string{"a.txt"}).Return([]string{"a.txt"}, nil)
	deps.source.EXPECT().EachLine(gomock.Any(), "a.txt", gomock.Any()).
		DoAndReturn(lines(map[string]string{"a.txt": "x\ny\nx\n"}))

	report, err := a.Load(context.Background(), []string{"a.txt"}, app.LoadOptions{Hold: true})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Lines)
	assert.Equal(t, 2, report.Inserted)

	assert.Zero(t, a.Collect(context.Background()))
	assert.Equal(t, 2, a.Stats().Entries)

	a.Release()
	assert.Equal(t, 2, a.Collect(context.Background()))
}

func TestApp_Load_MarksUnchangedFilesCached(t *testing.T) {
	a, deps := newTestApp(t)
	ctrl := gomock.NewController(t)

	fresh := mocks.NewMockVertex(ctrl)
	fresh.EXPECT().Stdout().Return(io.Discard)
	fresh.EXPECT().Complete(nil)

	repeat := mocks.NewMockVertex(ctrl)
	repeat.EXPECT().Stdout().Return(io.Discard)
	repeat.EXPECT().Cached()
	repeat.EXPECT().Complete(nil)

	gomock.InOrder(
		deps.telemetry.EXPECT().Record(gomock.Any(), "load first.txt").Return(context.Background(), fresh),
		deps.telemetry.EXPECT().Record(gomock.Any(), "load second.txt").Return(context.Background(), repeat),
	)

	files := map[string]string{"first.txt": "a\nb\n", "second.txt": "b\na\n"}
	deps.source.EXPECT().Expand(gomock.Any()).Return([]string{"first.txt", "second.txt"}, nil)
	deps.source.EXPECT().EachLine(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(lines(files)).Times(2)

	_, err := a.Load(context.Background(), []string{"first.txt", "second.txt"}, app.LoadOptions{Workers: 1})
	require.NoError(t, err)
}

func TestApp_Load_SourceError(t *testing.T) {
	a, deps := newTestApp(t)
	ctrl := gomock.NewController(t)

	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Complete(gomock.Cond(func(err error) bool {
		return errors.Is(err, domain.ErrSourceRead)
	}))
	deps.telemetry.EXPECT().Record(gomock.Any(), "load missing.txt").Return(context.Background(), vertex)

	deps.source.EXPECT().Expand(gomock.Any()).Return([]string{"missing.txt"}, nil)
	deps.source.EXPECT().EachLine(gomock.Any(), "missing.txt", gomock.Any()).DoAndReturn(lines(nil))

	_, err := a.Load(context.Background(), []string{"missing.txt"}, app.LoadOptions{})
	require.ErrorIs(t, err, domain.ErrSourceRead)
}

func TestApp_Load_ExpandError(t *testing.T) {
	a, deps := newTestApp(t)

	deps.source.EXPECT().Expand([]string{"nope"}).Return(nil, domain.ErrSourceRead)

	_, err := a.Load(context.Background(), []string{"nope"}, app.LoadOptions{})
	require.ErrorIs(t, err, domain.ErrSourceRead)
}

func TestApp_Load_NoInputs(t *testing.T) {
	a, _ := newTestApp(t)

	_, err := a.Load(context.Background(), nil, app.LoadOptions{})
	require.ErrorIs(t, err, domain.ErrNoInputs)
}

func TestApp_Load_CollectsAfterCooldown(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		dir := t.TempDir()
		content := strings.Join([]string{"alpha", "beta", "gamma", "delta", "epsilon"}, "\n")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "names.txt"), []byte(content), 0o600))

		ctrl := gomock.NewController(t)
		loader := mocks.NewMockConfigLoader(ctrl)
		cfg := domain.DefaultConfig()
		cfg.Pool = domain.PoolConfig{MinSizeForGC: 4, GCInterval: 30 * time.Second}
		loader.EXPECT().Load("").Return(cfg, nil)

		tel := mocks.NewMockTelemetry(ctrl)
		deps := &testDeps{telemetry: tel}
		expectVertices(t, deps)

		buf := new(bytes.Buffer)
		log := logger.New()
		log.SetOutput(buf)

		a := app.New(loader, clock.New(), log, telemetry.NewNoOpTracer(), tel, fs.NewSource(fs.NewWalker()))
		require.NoError(t, a.Open("", false))

		report, err := a.Load(context.Background(), []string{dir}, app.LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, 5, report.Inserted)

		// The pool has never been collected, so the first pass runs right
		// away and reclaims the released lines.
		zeta, err := a.Put(context.Background(), []string{"zeta"})
		require.NoError(t, err)
		assert.Equal(t, []string{"zeta"}, a.Values())
		assert.Equal(t, uint64(1), a.Stats().Collections)
		assert.Contains(t, buf.String(), "reclaimed")

		report, err = a.Load(context.Background(), []string{dir}, app.LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, 5, report.Inserted)

		// Still inside the cooldown: nothing is reclaimed.
		eta, err := a.Put(context.Background(), []string{"eta"})
		require.NoError(t, err)
		assert.Equal(t, 7, a.Stats().Entries)
		assert.Equal(t, uint64(1), a.Stats().Collections)

		zeta[0].Release()
		eta[0].Release()
		time.Sleep(31 * time.Second)

		theta, err := a.Put(context.Background(), []string{"theta"})
		require.NoError(t, err)

		stats := a.Stats()
		assert.Equal(t, uint64(2), stats.Collections)
		assert.Equal(t, []string{"theta"}, a.Values())
		theta[0].Release()
	})
}

func TestApp_Close(t *testing.T) {
	a, deps := newTestApp(t)

	deps.telemetry.EXPECT().Close().Return(nil)
	require.NoError(t, a.Close())

	deps.telemetry.EXPECT().Close().Return(errors.New("flush failed"))
	err := a.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to close telemetry")
}
