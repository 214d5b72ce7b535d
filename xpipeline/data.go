package xpipeline

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/xiaoshicae/xactor/xutil"
)

// ProcessedByKey 保留字段，记录依次处理过数据的 actor，只追加不覆盖
const ProcessedByKey = "processedBy"

// Data pipeline 在 stage 间传递并合并的键值数据
type Data map[string]any

// Provenance 一次成功处理的来源记录
type Provenance struct {
	ActorID    string    `json:"actorId"`
	ActorName  string    `json:"actorName"`
	Stage      string    `json:"stage"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// Clone 浅拷贝，只复制顶层 key
func (d Data) Clone() Data {
	if d == nil {
		return Data{}
	}
	return maps.Clone(d)
}

// ProcessedBy 返回来源记录的拷贝，兼容从 json 反序列化得到的 []any
func (d Data) ProcessedBy() ([]Provenance, error) {
	switch v := d[ProcessedByKey].(type) {
	case nil:
		return nil, nil
	case []Provenance:
		return slices.Clone(v), nil
	default:
		var out []Provenance
		b, err := json.Marshal(v)
		if err == nil {
			err = json.Unmarshal(b, &out)
		}
		if err != nil {
			return nil, fmt.Errorf("%w, type=[%T], err=[%w]", ErrInvalidProvenance, v, err)
		}
		return out, nil
	}
}

// merge 将 actor 结果浅合并到 current 的拷贝上，同名 key 后者覆盖，ProcessedByKey 忽略
func merge(current Data, actorID string, result any) (Data, error) {
	fields, err := toFields(result)
	if err != nil {
		return nil, &MergeError{ActorID: actorID, ResultType: fmt.Sprintf("%T", result), Err: err}
	}

	out := current.Clone()
	for k, v := range fields {
		if k == ProcessedByKey {
			continue
		}
		out[k] = v
	}
	return out, nil
}

// toFields nil 视为无字段；struct 等其他类型通过 json tag 转为 map
func toFields(result any) (map[string]any, error) {
	switch v := result.(type) {
	case nil:
		return nil, nil
	case Data:
		return v, nil
	case map[string]any:
		return v, nil
	default:
		return xutil.ToMap(v)
	}
}
