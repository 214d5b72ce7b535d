package xserver

// VERSION XActor 版本号
const VERSION = "v0.3.0"

// Server 服务接口
type Server interface {
	// Run 启动服务
	// 建议以阻塞方式运行，框架会异步调用并等待退出信号，Run 返回则进程随之结束
	Run() error

	// Stop 停止服务，放资源清理逻辑
	Stop() error
}
