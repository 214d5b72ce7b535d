package xlog

import (
	"io"
	"sync"
)

const defaultAsyncBufferSize = 4096

// asyncWriter 将写入转为 channel + 单 goroutine 顺序落盘
type asyncWriter struct {
	ch       chan []byte
	writer   io.WriteCloser
	wg       sync.WaitGroup
	mu       sync.RWMutex
	closed   bool
	once     sync.Once
	closeErr error
}

func newAsyncWriter(w io.WriteCloser, bufferSize int) *asyncWriter {
	if bufferSize <= 0 {
		bufferSize = defaultAsyncBufferSize
	}
	aw := &asyncWriter{
		ch:     make(chan []byte, bufferSize),
		writer: w,
	}
	aw.wg.Add(1)
	go aw.loop()
	return aw
}

// Write 拷贝后入队，logrus 会复用 p；关闭后的写入直接丢弃
func (aw *asyncWriter) Write(p []byte) (int, error) {
	aw.mu.RLock()
	defer aw.mu.RUnlock()
	if aw.closed {
		return 0, io.ErrClosedPipe
	}
	buf := make([]byte, len(p))
	copy(buf, p)
	aw.ch <- buf
	return len(p), nil
}

// Close 等待队列写完再关闭底层 writer，可重复调用
func (aw *asyncWriter) Close() error {
	aw.once.Do(func() {
		aw.mu.Lock()
		aw.closed = true
		close(aw.ch)
		aw.mu.Unlock()
		aw.wg.Wait()
		aw.closeErr = aw.writer.Close()
	})
	return aw.closeErr
}

func (aw *asyncWriter) loop() {
	defer aw.wg.Done()
	for buf := range aw.ch {
		_, _ = aw.writer.Write(buf)
	}
}
