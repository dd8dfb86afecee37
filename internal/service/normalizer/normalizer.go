package normalizer

import (
	"encoding/json"
	"strings"

	"github.com/policydraft/backend/internal/utils"
	"k8s.io/klog/v2"
)

// 子代理命名在编排服务侧没有约定，按名称子串匹配（忽略大小写）
var (
	policyAgentKeywords     = []string{"policy drafting", "drafting"}
	complianceAgentKeywords = []string{"compliance", "checker"}
)

// DefaultSummary 网关未返回任何摘要时的兜底话术
const DefaultSummary = "已生成制度草案，请查看右侧预览"

// UnwrapEnvelope 网关信封解包
// 真实载荷可能挂在 result 或 data 键下，也可能信封本身就是载荷
func UnwrapEnvelope(raw map[string]any) map[string]any {
	if payload, ok := firstMap(raw, "result", "data"); ok {
		return payload
	}
	return raw
}

// Normalize 把一次编排结果归一化为制度草案与合规报告两个视图模型
// 纯函数：输入不满足任何预期形状时返回 (nil, nil)，不会报错
func Normalize(payload map[string]any) (*PolicyResult, *ComplianceReport) {
	entries, ok := firstSlice(payload, "sub_agent_results", "subAgentResults")
	if !ok {
		klog.V(6).Infof("[normalizer.Normalize] 未找到子代理结果列表")
		return nil, nil
	}

	var policy *PolicyResult
	if out, ok := findAgentPayload(entries, policyAgentKeywords); ok && out != nil {
		policy = &PolicyResult{}
		decodeInto(out, policy)
	}

	// 合规报告独立扫描，与制度草案的匹配互不排斥
	var report *ComplianceReport
	if out, ok := findAgentPayload(entries, complianceAgentKeywords); ok && out != nil {
		report = &ComplianceReport{}
		decodeInto(out, report)
	}

	klog.V(6).Infof("[normalizer.Normalize] 归一化完成: policy=%v, compliance=%v", policy != nil, report != nil)
	return policy, report
}

// SummaryText 取聊天记录展示用的摘要
// 优先级: payload.summary > payload.message > 信封顶层 message > 固定兜底
func SummaryText(payload, envelope map[string]any) string {
	if s, ok := firstString(payload, "summary", "message"); ok {
		return s
	}
	if s, ok := firstString(envelope, "message"); ok {
		return s
	}
	return DefaultSummary
}

// findAgentPayload 顺序扫描子代理列表，返回第一个名称命中的条目的解包载荷
func findAgentPayload(entries []any, keywords []string) (map[string]any, bool) {
	for _, item := range entries {
		entry, ok := asMap(item)
		if !ok {
			continue
		}
		name, ok := firstString(entry, "agent_name", "name")
		if !ok {
			continue
		}
		if !matchesAny(name, keywords) {
			continue
		}
		return unwrapOutput(entry["output"]), true
	}
	return nil, false
}

func matchesAny(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// unwrapOutput 解包 output 字段：output.result 存在时取嵌套值，否则取 output 本身
func unwrapOutput(v any) map[string]any {
	m, ok := asMap(v)
	if !ok {
		return coercePayload(v)
	}
	if inner, ok := firstValue(m, "result"); ok {
		if innerMap, ok := asMap(inner); ok {
			return innerMap
		}
		return coercePayload(inner)
	}
	return m
}

// coercePayload 非对象载荷的兜底：字符串里可能嵌着 JSON 文本
func coercePayload(v any) map[string]any {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(utils.ExtractJSON(s)), &m); err != nil {
		klog.V(6).Infof("[normalizer.coercePayload] 载荷不是合法 JSON 对象: %v", err)
		return nil
	}
	return m
}

// decodeInto 宽松解码：未知字段忽略，类型不匹配的字段保持零值，不向上抛错
func decodeInto(payload map[string]any, out any) {
	data, err := json.Marshal(payload)
	if err != nil {
		klog.V(6).Infof("[normalizer.decodeInto] 载荷序列化失败: %v", err)
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		klog.V(6).Infof("[normalizer.decodeInto] 部分字段类型不匹配，已降级: %v", err)
	}
}
