package utils

import (
	"testing"
)

// TestExtractJSONFromWrappedText 验证从说明文字中截取 JSON 对象
func TestExtractJSONFromWrappedText(t *testing.T) {
	content := "以下是生成结果：\n{\"policy_title\": \"远程办公制度\", \"meta\": {\"score\": 85}}\n已完成。"
	extracted := ExtractJSON(content)
	if extracted == "" {
		t.Fatalf("expected json content, got empty")
	}
	if extracted[0] != '{' || extracted[len(extracted)-1] != '}' {
		t.Fatalf("unexpected json boundary: %s", extracted)
	}
	if extracted != "{\"policy_title\": \"远程办公制度\", \"meta\": {\"score\": 85}}" {
		t.Fatalf("unexpected json content: %s", extracted)
	}
}

// TestExtractJSONWithoutObject 无 JSON 时返回原文
func TestExtractJSONWithoutObject(t *testing.T) {
	content := "纯文本回复，没有结构化内容"
	if extracted := ExtractJSON(content); extracted != content {
		t.Fatalf("expected original content, got: %s", extracted)
	}
}

func TestToJSON(t *testing.T) {
	got := ToJSON(map[string]int{"score": 85})
	if got != `{"score":85}` {
		t.Fatalf("unexpected json: %s", got)
	}
}
