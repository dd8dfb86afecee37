package normalizer

import (
	"testing"
)

func TestFirstStringOrder(t *testing.T) {
	m := map[string]any{"agent_name": "A", "name": "B"}
	if s, ok := firstString(m, "agent_name", "name"); !ok || s != "A" {
		t.Fatalf("expected first candidate to win, got %q ok=%v", s, ok)
	}
	if s, ok := firstString(m, "missing", "name"); !ok || s != "B" {
		t.Fatalf("expected fallback candidate, got %q ok=%v", s, ok)
	}
}

func TestFirstStringSkipsNonString(t *testing.T) {
	m := map[string]any{"agent_name": 42, "name": "B"}
	if s, ok := firstString(m, "agent_name", "name"); !ok || s != "B" {
		t.Fatalf("expected mistyped candidate skipped, got %q ok=%v", s, ok)
	}
	if _, ok := firstString(m, "agent_name"); ok {
		t.Fatal("expected not found for mistyped only candidate")
	}
}

func TestFirstMapAndSliceShapeMismatch(t *testing.T) {
	m := map[string]any{"result": "text", "data": []any{1}}
	if _, ok := firstMap(m, "result"); ok {
		t.Fatal("expected shape mismatch to degrade to not found")
	}
	if _, ok := firstSlice(m, "result"); ok {
		t.Fatal("expected shape mismatch to degrade to not found")
	}
	if list, ok := firstSlice(m, "data"); !ok || len(list) != 1 {
		t.Fatalf("expected slice value, got %v ok=%v", list, ok)
	}
}

func TestHelpersOnNilMap(t *testing.T) {
	if _, ok := firstValue(nil, "any"); ok {
		t.Fatal("expected not found on nil map")
	}
	if _, ok := firstString(nil, "any"); ok {
		t.Fatal("expected not found on nil map")
	}
}
