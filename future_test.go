package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuture_Result(t *testing.T) {
	f := Go(context.Background(), func(ctx context.Context) (int, error) {
		return 42, nil
	})

	v, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	// result is kept
	v, err = f.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	select {
	case <-f.Done():
	default:
		t.Fatal("done channel should be closed")
	}
}

func TestFuture_Error(t *testing.T) {
	boom := errors.New("boom")
	f := goVoid(context.Background(), func(ctx context.Context) error {
		return boom
	})

	_, err := f.Get()
	assert.ErrorIs(t, err, boom)
}

func TestFuture_AwaitContextEnds(t *testing.T) {
	release := make(chan struct{})
	f := Go(context.Background(), func(ctx context.Context) (string, error) {
		<-release
		return "late", nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, "late", v)
}

func TestFuture_DoesNotBlockCaller(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	f := Go(context.Background(), func(ctx context.Context) (int, error) {
		close(started)
		<-release
		return 1, nil
	})

	<-started
	select {
	case <-f.Done():
		t.Fatal("future completed before release")
	default:
	}

	close(release)
	<-f.Done()
}

func TestFuture_MutationOutlivesCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	f := goVoid(ctx, func(ctx context.Context) error {
		<-release
		return ctx.Err()
	})

	cancel()
	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	_, err = f.Get()
	assert.NoError(t, err, "a cancelled caller must not abort an issued mutation")
}
