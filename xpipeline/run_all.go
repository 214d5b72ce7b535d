package xpipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/xiaoshicae/xactor/xerror"
	"github.com/xiaoshicae/xactor/xutil"

	"golang.org/x/sync/errgroup"
)

// RunAll 并发执行多个相互独立的 pipeline，全部成功后按参数顺序合并结果
// 同名 key 靠后的 pipeline 覆盖靠前的；processedBy 按参数顺序拼接。任一失败返回第一个错误
// ctx 结束时立即返回，deadline 到期返回 ErrProcessTimeout，未完成的 pipeline 在后台继续执行
func RunAll(ctx context.Context, input Data, pipelines ...*Pipeline) (Data, error) {
	base, err := input.ProcessedBy()
	if err != nil {
		return nil, xerror.Newf("xpipeline", "runAll", "err=[%w]", err)
	}

	outputs := make([]Data, len(pipelines))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range pipelines {
		g.Go(func() error {
			out, err := p.Process(gctx, input)
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}
	f := xutil.Async(func() (struct{}, error) {
		return struct{}{}, g.Wait()
	})
	if _, err := f.GetWithContext(ctx); err != nil {
		if f.IsDone() {
			_, err = f.Get()
		}
		// deadline 到期后的失败统一视为超时，actor 可能已因 ctx 取消而返回
		if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w, pipelines=[%d], err=[%v]: %w", ErrProcessTimeout, len(pipelines), err, context.DeadlineExceeded)
		}
		if err != nil {
			return nil, err
		}
	}

	merged := input.Clone()
	provenance := base
	for _, out := range outputs {
		for k, v := range out {
			if k != ProcessedByKey {
				merged[k] = v
			}
		}
		pb, _ := out.ProcessedBy()
		provenance = append(provenance, pb[min(len(base), len(pb)):]...)
	}
	if len(provenance) > 0 {
		merged[ProcessedByKey] = provenance
	}
	return merged, nil
}
