package kernsim

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/kernsim/device"
	"github.com/viant/kernsim/internal/clock"
	"github.com/viant/kernsim/logging"
)

type testHarness struct {
	service *Service
	logs    *bytes.Buffer
	out     *bytes.Buffer
}

func newTestHarness(t *testing.T, config Config) *testHarness {
	t.Helper()
	var logs, out bytes.Buffer
	service, err := New(
		WithConfig(config),
		WithLogger(logging.New(&logs, logging.LevelDebug)),
		WithShellOutput(&out),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = service.Pool().Close() })
	return &testHarness{service: service, logs: &logs, out: &out}
}

func testConfig() Config {
	config := DefaultConfig()
	config.Logging.Level = "debug"
	return config
}

func TestService_allocateCommand(t *testing.T) {
	h := newTestHarness(t, testConfig())
	ctx := context.Background()

	h.service.Shell().Execute(ctx, "allocate 1024")
	assert.Contains(t, h.logs.String(), "Allocated 1024 bytes at 0")
	assert.EqualValues(t, 1024, h.service.Pool().Used())

	h.service.Shell().Execute(ctx, "allocate 512")
	assert.Contains(t, h.logs.String(), "Allocated 512 bytes at 1024")
	assert.EqualValues(t, 1536, h.service.Pool().Used())

	h.service.Shell().Execute(ctx, "allocate 0")
	assert.Contains(t, h.logs.String(), "Allocated 0 bytes (nil reference)")

	h.service.Shell().Execute(ctx, "allocate")
	assert.Contains(t, h.logs.String(), "Command failed: size argument required for allocate")
	h.service.Shell().Execute(ctx, "allocate many")
	assert.Contains(t, h.logs.String(), `Command failed: invalid size "many"`)
}

func TestService_allocateCommand_outOfMemory(t *testing.T) {
	config := testConfig()
	config.Memory.PoolSize = 256
	h := newTestHarness(t, config)
	ctx := context.Background()

	h.service.Shell().Execute(ctx, "allocate 512")
	assert.Contains(t, h.logs.String(), "Command failed: allocation failed:")
	assert.Contains(t, h.logs.String(), "out of memory")
	assert.EqualValues(t, 0, h.service.Pool().Used())
}

func TestService_freeCommand(t *testing.T) {
	h := newTestHarness(t, testConfig())
	ctx := context.Background()

	h.service.Shell().Execute(ctx, "allocate 1024")
	h.service.Shell().Execute(ctx, "free 0")
	assert.Contains(t, h.logs.String(), "Freed 1024 bytes at 0")
	assert.EqualValues(t, 0, h.service.Pool().Used())

	h.service.Shell().Execute(ctx, "free 42")
	assert.Contains(t, h.logs.String(), "No allocation at address 42")
}

func TestService_submitCommand_queueFull(t *testing.T) {
	config := testConfig()
	config.Device.QueueCapacity = 100
	h := newTestHarness(t, config)
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		h.service.Shell().Execute(ctx, "submit read 0")
	}
	assert.Equal(t, 100, strings.Count(h.logs.String(), "Submitted device request: read with size 0"))
	assert.NotContains(t, h.logs.String(), "Device queue full")

	h.service.Shell().Execute(ctx, "submit read 0")
	assert.Contains(t, h.logs.String(), "Device queue full")
	assert.Equal(t, 100, h.service.Driver().QueueSize())

	require.NoError(t, h.service.Runtime().Start(ctx))
	assert.Eventually(t, func() bool {
		return h.service.Driver().Processed() == 100
	}, 10*time.Second, 5*time.Millisecond)
	h.service.Runtime().Shutdown()
	assert.Contains(t, h.logs.String(), "Kernel simulation shutting down")
}

func TestService_statsCommand(t *testing.T) {
	h := newTestHarness(t, testConfig())
	ctx := context.Background()

	h.service.Shell().Execute(ctx, "allocate 1024")
	h.service.Shell().Execute(ctx, "stats")

	out := h.out.String()
	assert.Contains(t, out, "Memory Pool Stats:")
	assert.Contains(t, out, "Used Size: 1024 bytes")
	assert.Contains(t, out, "Fragmentation: 0.00%")
	assert.Contains(t, out, "Device Driver Stats:")
	assert.Contains(t, out, "Queue Size: 0/100")
}

func TestService_statusCommand(t *testing.T) {
	h := newTestHarness(t, testConfig())
	h.service.Shell().Execute(context.Background(), "status")
	assert.Contains(t, h.logs.String(), "Device status: ready")
}

func TestService_loglevelCommand(t *testing.T) {
	h := newTestHarness(t, testConfig())
	ctx := context.Background()

	h.service.Shell().Execute(ctx, "loglevel warning")
	assert.Equal(t, logging.LevelWarning, h.service.Logger().MinLevel())

	h.service.Shell().Execute(ctx, "allocate 64")
	assert.NotContains(t, h.logs.String(), "Allocated 64 bytes")

	h.service.Shell().Execute(ctx, "loglevel verbose")
	assert.Contains(t, h.logs.String(), "Command failed:")
}

func TestService_unknownCommand(t *testing.T) {
	h := newTestHarness(t, testConfig())
	h.service.Shell().Execute(context.Background(), "defrag")
	assert.Contains(t, h.logs.String(), "Unknown command: defrag")
}

func TestService_completionHandler(t *testing.T) {
	completed := make(chan string, 4)
	var logs bytes.Buffer
	service, err := New(
		WithConfig(testConfig()),
		WithLogger(logging.New(&logs, logging.LevelDebug)),
		WithShellOutput(&bytes.Buffer{}),
		WithCompletionHandler(func(completion device.Completion) {
			completed <- completion.Request.Operation
		}),
	)
	require.NoError(t, err)
	defer service.Pool().Close()

	ctx := context.Background()
	require.NoError(t, service.Runtime().Start(ctx))
	defer service.Runtime().Shutdown()

	service.Shell().Execute(ctx, "submit read 0")
	select {
	case operation := <-completed:
		assert.Equal(t, "read", operation)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for completion")
	}
}

func TestService_testSequenceTranscript(t *testing.T) {
	previous := clock.NowFunc
	clock.NowFunc = func() time.Time {
		return time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	}
	defer func() { clock.NowFunc = previous }()

	h := newTestHarness(t, testConfig())
	h.service.Shell().RunScript(context.Background(), []string{
		"allocate 1024",
		"submit read 512",
		"stats",
		"allocate 2048",
		"submit write 1024",
		"stats",
		"exit",
	})

	stamp := "[2025-01-02 15:04:05]"
	expect := strings.Join([]string{
		stamp + " [INFO] Test executing: allocate 1024",
		stamp + " [INFO] Allocated 1024 bytes at 0",
		stamp + " [INFO] Test executing: submit read 512",
		stamp + " [INFO] Submitted device request: read with size 512",
		stamp + " [INFO] Test executing: stats",
		stamp + " [INFO] Test executing: allocate 2048",
		stamp + " [INFO] Allocated 2048 bytes at 1024",
		stamp + " [INFO] Test executing: submit write 1024",
		stamp + " [INFO] Submitted device request: write with size 1024",
		stamp + " [INFO] Test executing: stats",
		stamp + " [INFO] Test executing: exit",
		"",
	}, "\n")

	actual := h.logs.String()
	if expect != actual {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(expect),
			B:        difflib.SplitLines(actual),
			FromFile: "expected",
			ToFile:   "actual",
			Context:  2,
		})
		t.Errorf("transcript mismatch:\n%s", diff)
	}

	out := h.out.String()
	assert.Equal(t, 2, strings.Count(out, "Memory Pool Stats:"))
	assert.Contains(t, out, "Used Size: 3072 bytes")
	assert.Contains(t, out, fmt.Sprintf("Queue Size: 2/%d", h.service.Config().Device.QueueCapacity))
}
