// SPDX-License-Identifier: EPL-2.0

package capture

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audspec/fixed"
	"github.com/ik5/audspec/internal/audiotest"
)

func TestNew_Validates(t *testing.T) {
	t.Parallel()

	_, err := New(audiotest.NewSilentSource(8000, 1, 10), 0)
	assert.ErrorIs(t, err, ErrBlockSize)

	_, err = New(audiotest.NewSilentSource(8000, 2, 10), 320)
	assert.ErrorIs(t, err, ErrNotMono)
}

func TestCapture_DeliversBlocksInOrder(t *testing.T) {
	t.Parallel()

	const total, block = 1000, 320
	src := audiotest.NewRampSource(8000, total, 97)
	src.MaxRead = 50

	c, err := New(src, block)
	require.NoError(t, err)

	ctx := context.Background()
	runErr := make(chan error, 1)
	go func() { runErr <- c.Run(ctx) }()

	var got []fixed.Q15
	var sizes []int
	dst := make([]fixed.Q15, block)
	for {
		n, err := c.Next(ctx, dst)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		sizes = append(sizes, n)
		got = append(got, dst[:n]...)
	}

	require.NoError(t, <-runErr)
	assert.Equal(t, []int{320, 320, 320, 40}, sizes)
	assert.EqualValues(t, 4, c.Blocks())

	require.Len(t, got, total)
	for i, v := range got {
		want := fixed.FromFloat(float32(i%97) / 97)
		require.Equal(t, want, v, "sample %d", i)
	}

	// the handoff stays closed
	_, err = c.Next(ctx, dst)
	assert.Equal(t, io.EOF, err)
}

func TestCapture_SourceError(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(8000, 1, 10000, 500)
	src.FailAfter = 500

	c, err := New(src, 320)
	require.NoError(t, err)

	ctx := context.Background()
	runErr := make(chan error, 1)
	go func() { runErr <- c.Run(ctx) }()

	dst := make([]fixed.Q15, 320)
	n, err := c.Next(ctx, dst)
	require.NoError(t, err)
	assert.Equal(t, 320, n)

	_, err = c.Next(ctx, dst)
	assert.ErrorIs(t, err, audiotest.ErrInjected)
	assert.ErrorIs(t, <-runErr, audiotest.ErrInjected)
}

func TestCapture_CancelUnblocksProducer(t *testing.T) {
	t.Parallel()

	c, err := New(audiotest.NewSilentSource(8000, 1, 1<<30), 320)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- c.Run(ctx) }()

	dst := make([]fixed.Q15, 320)
	_, err = c.Next(ctx, dst)
	require.NoError(t, err)

	cancel()

	select {
	case err := <-runErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("producer did not stop after cancel")
	}

	_, err = c.Next(ctx, dst)
	assert.Error(t, err)
}

func TestCapture_NextHonoursContext(t *testing.T) {
	t.Parallel()

	c, err := New(audiotest.NewSilentSource(8000, 1, 100), 320)
	require.NoError(t, err)

	// no producer running
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = c.Next(ctx, make([]fixed.Q15, 320))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCapture_Misuse(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 100)
	c, err := New(src, 320)
	require.NoError(t, err)

	_, err = c.Next(context.Background(), make([]fixed.Q15, 10))
	assert.ErrorIs(t, err, ErrShortBuffer)

	ctx := context.Background()
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	n, err := c.Next(ctx, make([]fixed.Q15, 320))
	require.NoError(t, err)
	assert.Equal(t, 100, n)
	require.NoError(t, <-done)

	assert.ErrorIs(t, c.Run(ctx), ErrAlreadyRunning)

	require.NoError(t, c.Close())
	assert.True(t, src.Closed)
}
