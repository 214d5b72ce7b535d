package xserver

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/xiaoshicae/xactor/xhook"
	_ "github.com/xiaoshicae/xactor/xmetric" // 默认加载metric
	_ "github.com/xiaoshicae/xactor/xtrace"  // 默认加载trace
	"github.com/xiaoshicae/xactor/xutil"
)

// Run 执行 BeforeStart hook 后以阻塞方式启动 Server，等待退出信号
func Run(server Server) error {
	return run(server)
}

// RunBlocking 无对外端口的阻塞服务，用于 consumer 或 job 服务等
func RunBlocking() error {
	return run(&blockingServer{})
}

// R 只调用 BeforeStart hook，用于 CLI 或调试
func R() error {
	return run(nil)
}

// Shutdown 调用 BeforeStop hook，与 R 配对使用
func Shutdown() error {
	return xhook.InvokeBeforeStopHook()
}

func run(server Server) error {
	if err := xhook.InvokeBeforeStartHook(); err != nil {
		return err
	}

	if server == nil {
		return nil
	}

	var serverRunErr error
	if err := runWithSever(server); err != nil {
		serverRunErr = err
	}

	var beforeStopHookErr error
	if err := xhook.InvokeBeforeStopHook(); err != nil {
		beforeStopHookErr = err
	}

	if serverRunErr != nil || beforeStopHookErr != nil {
		return errors.Join(serverRunErr, beforeStopHookErr)
	}
	return nil
}

func runWithSever(s Server) error {
	serverRunErrChan := make(chan error, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, quitSignals...)
	defer signal.Stop(quit)

	go func() {
		safeInvokeServerRun(s, serverRunErrChan)
	}()

	select {
	case err := <-serverRunErrChan:
		if err != nil {
			return fmt.Errorf("XActor Run server failed, err=[%v]", err)
		}
		xutil.WarnIfEnableDebug("XActor Run server unexpected stopped")
		return nil
	case <-quit:
		xutil.InfoIfEnableDebug("********** XActor Stop server begin **********")
		if err := safeInvokeServerStop(s); err != nil {
			return fmt.Errorf("XActor Stop server failed, err=[%v]", err)
		}
		xutil.InfoIfEnableDebug("********** XActor Stop server success **********")
		return nil
	}
}

func safeInvokeServerRun(s Server, serverRunErrChan chan<- error) {
	defer func() {
		if r := recover(); r != nil {
			serverRunErrChan <- fmt.Errorf("panic occurred, %v", r)
		}
	}()

	err := s.Run() // 一般阻塞在此处
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		serverRunErrChan <- err
	} else {
		serverRunErrChan <- nil
	}
}

func safeInvokeServerStop(s Server) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic occurred, %v", r)
		}
	}()
	return s.Stop()
}

var quitSignals = []os.Signal{
	syscall.SIGHUP,
	syscall.SIGINT,
	syscall.SIGTERM,
}
