package memsys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/kernsim/memory"
	"github.com/viant/kernsim/model/types"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	pool, err := memory.New(memory.Config{PoolSize: 4096})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })
	return New(pool)
}

func TestService_allocateAndFree(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	allocate, err := service.Method("allocate")
	require.NoError(t, err)
	free, err := service.Method("free")
	require.NoError(t, err)

	allocated := &AllocateOutput{}
	require.NoError(t, allocate(ctx, &AllocateInput{Size: 1024}, allocated))
	assert.EqualValues(t, 0, allocated.Address)
	assert.EqualValues(t, 1024, allocated.Granted)
	assert.False(t, allocated.Nil)
	assert.Equal(t, 1, service.Outstanding())

	freed := &FreeOutput{}
	require.NoError(t, free(ctx, &FreeInput{Address: allocated.Address}, freed))
	assert.True(t, freed.Freed)
	assert.EqualValues(t, 1024, freed.Bytes)
	assert.Equal(t, 0, service.Outstanding())

	// unknown address is reported, not failed
	freed = &FreeOutput{}
	require.NoError(t, free(ctx, &FreeInput{Address: 42}, freed))
	assert.False(t, freed.Freed)
}

func TestService_allocateZero(t *testing.T) {
	service := newTestService(t)
	allocate, err := service.Method("allocate")
	require.NoError(t, err)
	output := &AllocateOutput{}
	require.NoError(t, allocate(context.Background(), &AllocateInput{}, output))
	assert.True(t, output.Nil)
	assert.Equal(t, 0, service.Outstanding())
}

func TestService_stats(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()
	allocate, err := service.Method("allocate")
	require.NoError(t, err)
	require.NoError(t, allocate(ctx, &AllocateInput{Size: 512}, &AllocateOutput{}))

	stats, err := service.Method("stats")
	require.NoError(t, err)
	output := &StatsOutput{}
	require.NoError(t, stats(ctx, &StatsInput{}, output))
	assert.EqualValues(t, 4096, output.TotalSize)
	assert.EqualValues(t, 512, output.UsedSize)
	assert.Equal(t, 2, output.Blocks)
}

func TestService_invalidInput(t *testing.T) {
	service := newTestService(t)
	allocate, err := service.Method("allocate")
	require.NoError(t, err)
	assert.Error(t, allocate(context.Background(), "bad", &AllocateOutput{}))
	assert.Error(t, allocate(context.Background(), &AllocateInput{Size: 1}, "bad"))

	_, err = service.Method("defrag")
	assert.Error(t, err)
}

func TestService_Methods(t *testing.T) {
	service := newTestService(t)
	signatures := service.Methods()
	require.Len(t, signatures, 3)
	signature := signatures.Lookup("allocate")
	require.NotNil(t, signature)
	assert.NotNil(t, signature.Input)

	var _ types.Service = service
}
