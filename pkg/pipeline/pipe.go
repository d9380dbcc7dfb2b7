package pipeline

import (
	"io"
	"sync"
)

// DefaultPipeBufferSize is the capacity of an inter-stage connection unless
// the executor is configured otherwise.
const DefaultPipeBufferSize = 32 * 1024

// Pipe is a bounded in-memory byte connection between two pipeline stages.
// The upstream stage writes, the downstream stage reads. Write blocks while
// the buffer is full and Read blocks while it is empty, which is the
// backpressure keeping a fast producer from outrunning a slow consumer.
//
// Each end is closed independently. CloseWrite lets the reader drain the
// remaining bytes and then see io.EOF. CloseRead makes every blocked or
// future Write fail with io.ErrClosedPipe, telling the upstream stage its
// consumer is gone.
type Pipe struct {
	mu         sync.Mutex
	cond       *sync.Cond
	buf        []byte
	start      int
	count      int
	writerDone bool
	readerGone bool
}

// NewPipe creates a pipe holding at most size bytes. A non-positive size
// falls back to DefaultPipeBufferSize.
func NewPipe(size int) *Pipe {
	if size <= 0 {
		size = DefaultPipeBufferSize
	}
	p := &Pipe{buf: make([]byte, size)}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Read fills b with buffered bytes, blocking while the pipe is empty and
// the writer is still attached. It returns io.EOF once the writer has
// closed and the buffer is drained.
func (p *Pipe) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for p.count == 0 && !p.writerDone && !p.readerGone {
		p.cond.Wait()
	}
	if p.readerGone {
		return 0, io.ErrClosedPipe
	}
	if p.count == 0 {
		return 0, io.EOF
	}

	n := len(b)
	if n > p.count {
		n = p.count
	}
	head := len(p.buf) - p.start
	if head > n {
		head = n
	}
	copy(b[:head], p.buf[p.start:p.start+head])
	copy(b[head:n], p.buf[:n-head])
	p.start = (p.start + n) % len(p.buf)
	p.count -= n

	p.cond.Broadcast()
	return n, nil
}

// Write appends b to the buffer, blocking while it is full. It returns
// io.ErrClosedPipe once the reader has gone or the write end was closed,
// with the count of bytes accepted before that.
func (p *Pipe) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	total := 0
	for len(b) > 0 {
		for p.count == len(p.buf) && !p.readerGone && !p.writerDone {
			p.cond.Wait()
		}
		if p.readerGone || p.writerDone {
			return total, io.ErrClosedPipe
		}

		n := len(b)
		if free := len(p.buf) - p.count; n > free {
			n = free
		}
		pos := (p.start + p.count) % len(p.buf)
		head := len(p.buf) - pos
		if head > n {
			head = n
		}
		copy(p.buf[pos:pos+head], b[:head])
		copy(p.buf[:n-head], b[head:n])
		p.count += n
		b = b[n:]
		total += n

		p.cond.Broadcast()
	}
	return total, nil
}

// CloseWrite marks the write end closed. The reader drains what is buffered
// and then reads io.EOF.
func (p *Pipe) CloseWrite() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.writerDone = true
	p.cond.Broadcast()
	return nil
}

// CloseRead marks the read end closed and discards buffered bytes. Blocked
// and future writes fail with io.ErrClosedPipe.
func (p *Pipe) CloseRead() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.readerGone = true
	p.count = 0
	p.cond.Broadcast()
	return nil
}

// Close closes both ends. It is used when tearing a pipeline down.
func (p *Pipe) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.writerDone = true
	p.readerGone = true
	p.count = 0
	p.cond.Broadcast()
	return nil
}
