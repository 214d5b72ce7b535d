package xserver

import "sync"

// blockingServer 阻塞直到 Stop 被调用，用于 consumer 或 job 类服务
type blockingServer struct {
	quit     chan struct{}
	initOnce sync.Once
	stopOnce sync.Once
}

func (b *blockingServer) Run() error {
	b.initQuit()
	<-b.quit
	return nil
}

func (b *blockingServer) Stop() error {
	b.initQuit()
	b.stopOnce.Do(func() {
		close(b.quit)
	})
	return nil
}

func (b *blockingServer) initQuit() {
	b.initOnce.Do(func() {
		b.quit = make(chan struct{})
	})
}
