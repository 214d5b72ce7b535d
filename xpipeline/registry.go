package xpipeline

import (
	"sync"

	"github.com/xiaoshicae/xactor/xerror"
)

// Registry 按名称管理已构建的 pipeline
type Registry struct {
	mu        sync.RWMutex
	pipelines map[string]*Pipeline
	order     []string
}

func NewRegistry() *Registry {
	return &Registry{pipelines: make(map[string]*Pipeline)}
}

// Register 同名 pipeline 已存在时返回错误
func (r *Registry) Register(p *Pipeline) error {
	if p == nil {
		return xerror.Newf("xpipeline", "register", "pipeline is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pipelines[p.Name()]; ok {
		return xerror.Newf("xpipeline", "register", "pipeline already registered, name=[%s]", p.Name())
	}
	r.pipelines[p.Name()] = p
	r.order = append(r.order, p.Name())
	return nil
}

func (r *Registry) Get(name string) (*Pipeline, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pipelines[name]
	return p, ok
}

// Names 按注册顺序
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Pipelines 按注册顺序
func (r *Registry) Pipelines() []*Pipeline {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ps := make([]*Pipeline, 0, len(r.order))
	for _, n := range r.order {
		ps = append(ps, r.pipelines[n])
	}
	return ps
}
