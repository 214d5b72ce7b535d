// Package xpipeline 将多个 actor 串联为有序的 stage，逐步浅合并结果并记录来源
package xpipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xiaoshicae/xactor/xactor"
	"github.com/xiaoshicae/xactor/xerror"
	"github.com/xiaoshicae/xactor/xtrace"
	"github.com/xiaoshicae/xactor/xutil"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const defaultConfidence = 1.0

// Pipeline 有序 stage 列表，构造后不可变，可被并发调用
type Pipeline struct {
	name    string
	system  *xactor.System
	stages  []Stage
	monitor Monitor
}

// New 创建 pipeline，所有 stage 的 actor 必须已在 system 中注册
func New(name string, system *xactor.System, stages ...Stage) (*Pipeline, error) {
	if strings.TrimSpace(name) == "" {
		return nil, xerror.Newf("xpipeline", "new", "pipeline name is empty")
	}
	if system == nil {
		return nil, xerror.Newf("xpipeline", "new", "system is nil, pipeline=[%s]", name)
	}

	ids := make([]string, 0, len(stages))
	for i, s := range stages {
		if s.ActorID == "" {
			return nil, xerror.Newf("xpipeline", "new", "stage actor id is empty, pipeline=[%s], index=[%d]", name, i)
		}
		ids = append(ids, s.ActorID)
	}
	if err := system.Require(ids...); err != nil {
		return nil, xerror.Newf("xpipeline", "new", "pipeline=[%s], err=[%w]", name, err)
	}

	return &Pipeline{
		name:   name,
		system: system,
		stages: append([]Stage(nil), stages...),
	}, nil
}

// MustNew 用于静态装配
func MustNew(name string, system *xactor.System, stages ...Stage) *Pipeline {
	p, err := New(name, system, stages...)
	if err != nil {
		panic(err.Error())
	}
	return p
}

// WithMonitor 指定 monitor，覆盖全局默认值
func (p *Pipeline) WithMonitor(m Monitor) *Pipeline {
	p.monitor = m
	return p
}

func (p *Pipeline) Name() string {
	return p.name
}

// Stages 返回 stage 列表的拷贝
func (p *Pipeline) Stages() []Stage {
	return append([]Stage(nil), p.stages...)
}

func (p *Pipeline) String() string {
	names := make([]string, 0, len(p.stages))
	for _, s := range p.stages {
		names = append(names, s.Name)
	}
	return fmt.Sprintf("%s[%s]", p.name, strings.Join(names, " -> "))
}

// Process 依次执行所有 stage：校验 -> dispatch -> 浅合并 -> 追加来源记录
// 任一 stage 失败立即返回错误，不返回部分结果；input 不会被修改
func (p *Pipeline) Process(ctx context.Context, input Data) (out Data, err error) {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, span := xtrace.Start(ctx, "xpipeline.process "+p.name)
	span.SetAttributes(attribute.String("xpipeline.name", p.name), attribute.Int("xpipeline.stages", len(p.stages)))

	monitor := p.resolveMonitor()
	start := time.Now()
	done := 0
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		if monitor != nil {
			monitor.OnPipelineDone(ctx, &PipelineEvent{PipelineName: p.name, Stages: done, Err: err, Duration: time.Since(start)})
		}
	}()

	current := input.Clone()
	provenance, err := current.ProcessedBy()
	if err != nil {
		return nil, xerror.Newf("xpipeline", "process", "pipeline=[%s], err=[%w]", p.name, err)
	}

	for _, stage := range p.stages {
		if !stage.valid(current) {
			return nil, &StageValidationError{Pipeline: p.name, Stage: stage.Name}
		}

		stageStart := time.Now()
		next, err := p.runStage(ctx, stage, current)
		if monitor != nil {
			monitor.OnStageDone(ctx, &StageEvent{
				PipelineName: p.name,
				StageName:    stage.Name,
				ActorID:      stage.ActorID,
				Err:          err,
				Duration:     time.Since(stageStart),
			})
		}
		if err != nil {
			if stage.OnError != nil {
				stage.OnError(ctx, err)
			}
			return nil, &StepError{Pipeline: p.name, Stage: stage.Name, ActorID: stage.ActorID, Err: err}
		}

		// 每次生成新的 slice，避免与之前 stage 的 payload 共享底层数组
		provenance = append(provenance[:len(provenance):len(provenance)], p.provenanceOf(stage))
		next[ProcessedByKey] = provenance
		current = next
		done++
	}
	return current, nil
}

func (p *Pipeline) runStage(ctx context.Context, stage Stage, current Data) (Data, error) {
	msg := xactor.NewMessage(xactor.MessageTypeProcess, p.name, stage.ActorID, current.Clone())
	result, err := p.system.Dispatch(ctx, msg)
	if err != nil {
		return nil, err
	}
	return merge(current, stage.ActorID, result)
}

func (p *Pipeline) provenanceOf(stage Stage) Provenance {
	pv := Provenance{
		ActorID:    stage.ActorID,
		ActorName:  stage.ActorID,
		Stage:      stage.Name,
		Confidence: defaultConfidence,
		Timestamp:  time.Now(),
	}
	if a, ok := p.system.Actor(stage.ActorID); ok {
		pv.ActorName = a.Name()
		if s, ok := a.(xactor.Scorer); ok {
			pv.Confidence = s.Performance()
		}
	}
	return pv
}

// ProcessWithTimeout 超时后放弃等待并返回 ErrProcessTimeout，已发出的 dispatch 不会被取消
// timeout <= 0 时等同于 Process
func (p *Pipeline) ProcessWithTimeout(ctx context.Context, input Data, timeout time.Duration) (Data, error) {
	if timeout <= 0 {
		return p.Process(ctx, input)
	}

	f := xutil.Async(func() (Data, error) {
		return p.Process(ctx, input)
	})
	out, err := f.GetWithTimeout(timeout)
	// Process 返回的错误都经过包装，未包装的 DeadlineExceeded 只可能来自等待超时
	if err == context.DeadlineExceeded { //nolint:errorlint
		if f.IsDone() {
			return f.Get()
		}
		return nil, fmt.Errorf("%w, pipeline=[%s], timeout=[%s]: %w", ErrProcessTimeout, p.name, timeout, context.DeadlineExceeded)
	}
	return out, err
}

func (p *Pipeline) resolveMonitor() Monitor {
	if p.monitor != nil {
		return p.monitor
	}
	if GetConfig().DisableMonitor {
		return nil
	}
	return GetDefaultMonitor()
}
