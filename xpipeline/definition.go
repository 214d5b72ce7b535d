package xpipeline

import (
	"fmt"
	"sync"

	"github.com/xiaoshicae/xactor/xactor"
	"github.com/xiaoshicae/xactor/xerror"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/ext"
)

// Definition 可序列化的 pipeline 定义，Validate 为 CEL 表达式，变量 data 为当前数据
//
//	Name: Recipe Processing
//	Stages:
//	  - Name: nutrition
//	    Actor: nutrition-analyzer
//	    Validate: has(data.ingredients) && size(data.ingredients) > 0
type Definition struct {
	Name        string             `mapstructure:"Name" json:"name" yaml:"name"`
	Description string             `mapstructure:"Description" json:"description,omitempty" yaml:"description,omitempty"`
	Stages      []*StageDefinition `mapstructure:"Stages" json:"stages" yaml:"stages"`
}

type StageDefinition struct {
	Name     string `mapstructure:"Name" json:"name" yaml:"name"`
	Actor    string `mapstructure:"Actor" json:"actor" yaml:"actor"`
	Validate string `mapstructure:"Validate" json:"validate,omitempty" yaml:"validate,omitempty"`
}

// Build 编译校验表达式并创建 pipeline，表达式错误在此时返回
func (d *Definition) Build(system *xactor.System, opts ...func(i int, s *Stage)) (*Pipeline, error) {
	stages := make([]Stage, 0, len(d.Stages))
	for i, sd := range d.Stages {
		if sd == nil {
			return nil, xerror.Newf("xpipeline", "build", "stage is nil, pipeline=[%s], index=[%d]", d.Name, i)
		}
		s := NewStage(sd.Name, sd.Actor)
		if sd.Validate != "" {
			v, err := CompileValidator(sd.Validate)
			if err != nil {
				return nil, xerror.Newf("xpipeline", "build", "pipeline=[%s], stage=[%s], err=[%w]", d.Name, s.Name, err)
			}
			s.Validate = v
		}
		for _, opt := range opts {
			opt(i, &s)
		}
		stages = append(stages, s)
	}
	return New(d.Name, system, stages...)
}

var (
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

func getCelEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("data", cel.MapType(cel.StringType, cel.DynType)),
			ext.Strings(),
		)
	})
	return celEnv, celEnvErr
}

// CompileValidator 将返回 bool 的 CEL 表达式编译为 Validator
// 运行时求值出错（如访问不存在的 key）视为校验不通过
func CompileValidator(expr string) (Validator, error) {
	env, err := getCelEnv()
	if err != nil {
		return nil, err
	}
	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("compile expression failed, expr=[%s], err=[%w]", expr, iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) && !ast.OutputType().IsExactType(cel.DynType) {
		return nil, fmt.Errorf("expression must return bool, expr=[%s], type=[%s]", expr, ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build program failed, expr=[%s], err=[%w]", expr, err)
	}

	return func(d Data) bool {
		out, _, err := prg.Eval(map[string]any{"data": map[string]any(d)})
		if err != nil {
			return false
		}
		b, ok := out.Value().(bool)
		return ok && b
	}, nil
}
