package pipeline

import (
	"bytes"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeWriteThenRead(t *testing.T) {
	p := NewPipe(16)

	n, err := p.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	buf := make([]byte, 16)
	n, err = p.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
}

func TestPipeEOFAfterCloseWrite(t *testing.T) {
	p := NewPipe(16)

	_, err := p.Write([]byte("tail"))
	require.NoError(t, err)
	require.NoError(t, p.CloseWrite())

	// buffered bytes drain before EOF shows up
	data, err := io.ReadAll(p)
	require.NoError(t, err)
	assert.Equal(t, "tail", string(data))

	n, err := p.Read(make([]byte, 4))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestPipeWriteAfterCloseWrite(t *testing.T) {
	p := NewPipe(16)
	require.NoError(t, p.CloseWrite())

	_, err := p.Write([]byte("x"))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestPipeWriteFailsWhenReaderGone(t *testing.T) {
	p := NewPipe(4)
	require.NoError(t, p.CloseRead())

	n, err := p.Write([]byte("data"))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestPipeCloseReadUnblocksWriter(t *testing.T) {
	p := NewPipe(2)
	_, err := p.Write([]byte("ab"))
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		_, err := p.Write([]byte("cd"))
		errCh <- err
	}()

	// the buffer is full, so the writer has to be parked
	select {
	case err := <-errCh:
		t.Fatalf("write completed on a full pipe: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, p.CloseRead())
	assert.ErrorIs(t, <-errCh, io.ErrClosedPipe)
}

func TestPipeBackpressure(t *testing.T) {
	p := NewPipe(2)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := p.Write([]byte("abcdef"))
		assert.NoError(t, err)
		assert.NoError(t, p.CloseWrite())
	}()

	// reading makes room, which is the only way the writer can finish
	data, err := io.ReadAll(p)
	require.NoError(t, err)
	assert.Equal(t, "abcdef", string(data))
	<-done
}

func TestPipeReadBlocksUntilData(t *testing.T) {
	p := NewPipe(8)

	got := make(chan string, 1)
	go func() {
		buf := make([]byte, 8)
		n, err := p.Read(buf)
		if err != nil {
			got <- err.Error()
			return
		}
		got <- string(buf[:n])
	}()

	time.Sleep(20 * time.Millisecond)
	_, err := p.Write([]byte("late"))
	require.NoError(t, err)
	assert.Equal(t, "late", <-got)
}

func TestPipeWraparound(t *testing.T) {
	p := NewPipe(8)

	_, err := p.Write([]byte("abcde"))
	require.NoError(t, err)

	buf := make([]byte, 3)
	_, err = io.ReadFull(p, buf)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(buf))

	// six more bytes wrap around the ring
	_, err = p.Write([]byte("fghijk"))
	require.NoError(t, err)
	require.NoError(t, p.CloseWrite())

	rest, err := io.ReadAll(p)
	require.NoError(t, err)
	assert.Equal(t, "defghijk", string(rest))
}

func TestPipeClose(t *testing.T) {
	p := NewPipe(8)
	_, err := p.Write([]byte("gone"))
	require.NoError(t, err)
	require.NoError(t, p.Close())

	_, err = p.Read(make([]byte, 4))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	_, err = p.Write([]byte("x"))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestPipeDefaultSize(t *testing.T) {
	p := NewPipe(0)
	assert.Equal(t, DefaultPipeBufferSize, len(p.buf))

	p = NewPipe(-5)
	assert.Equal(t, DefaultPipeBufferSize, len(p.buf))
}

func TestPipeZeroLengthRead(t *testing.T) {
	p := NewPipe(4)
	n, err := p.Read(nil)
	assert.Equal(t, 0, n)
	assert.NoError(t, err)
}

func TestPipeLargeTransfer(t *testing.T) {
	p := NewPipe(1024)

	payload := bytes.Repeat([]byte("0123456789abcdef"), 16*1024) // 256 KiB
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		n, err := p.Write(payload)
		assert.NoError(t, err)
		assert.Equal(t, len(payload), n)
		assert.NoError(t, p.CloseWrite())
	}()

	received, err := io.ReadAll(p)
	require.NoError(t, err)
	wg.Wait()

	// order and content survive the ring wrapping many times
	assert.True(t, bytes.Equal(payload, received))
}
