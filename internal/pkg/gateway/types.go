package gateway

import (
	"encoding/json"

	"github.com/policydraft/backend/internal/utils"
)

// InvokeRequest 提交给网关的编排请求
type InvokeRequest struct {
	AgentID string `json:"agent_id"`
	Prompt  string `json:"prompt"`
}

// InvokeResult 网关返回的三元组：success / response / error
// Response 是编排结果信封，形状不受本服务约束，保持原样透传给归一化层
type InvokeResult struct {
	Success  bool            `json:"success"`
	Response json.RawMessage `json:"response,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// Envelope 把原始响应载荷解析为通用对象
// Response 偶尔是包含 JSON 文本的字符串，解析失败时返回 nil，由上层降级处理
func (r *InvokeResult) Envelope() map[string]any {
	if len(r.Response) == 0 {
		return nil
	}

	var m map[string]any
	if err := json.Unmarshal(r.Response, &m); err == nil {
		return m
	}

	// 字符串包裹的场景：先解出字符串再解析其中的对象
	var s string
	if err := json.Unmarshal(r.Response, &s); err != nil {
		return nil
	}
	if err := json.Unmarshal([]byte(utils.ExtractJSON(s)), &m); err != nil {
		return nil
	}
	return m
}
