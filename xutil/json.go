package xutil

import (
	"encoding/json"
)

// ToJsonString 转换为json字符串，失败返回空字符串
func ToJsonString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// ToJsonStringIndent 转换为json字符串，带\t格式化
func ToJsonStringIndent(v any) string {
	b, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		ErrorIfEnableDebug("ToJsonStringIndent failed, err=[%v]", err)
		return ""
	}
	return string(b)
}

// ToMap 通过json将struct转换为map，用于结构体结果与map结果的统一处理
func ToMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	m := make(map[string]any)
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
