package model

import "testing"

// TestParseLabel はラベル文字列の解析を検証する。
func TestParseLabel(t *testing.T) {
	for _, label := range LabelPriority {
		got, ok := ParseLabel(string(label))
		if !ok || got != label {
			t.Errorf("ParseLabel(%q) = (%s, %v)", label, got, ok)
		}
	}

	if _, ok := ParseLabel("ecstasy"); ok {
		t.Error("語彙外のラベルが受理されました")
	}
	if _, ok := ParseLabel(""); ok {
		t.Error("空文字列が受理されました")
	}
}

// TestPriorityRank は優先順位がタイブレークに使える全順序であることを検証する。
func TestPriorityRank(t *testing.T) {
	if PriorityRank(LabelJoy) >= PriorityRank(LabelLove) {
		t.Error("JoyはLoveより優先されるべき")
	}
	if PriorityRank(LabelFear) >= PriorityRank(LabelUnknown) {
		t.Error("FearはUnknownより優先されるべき")
	}

	seen := make(map[int]EmotionLabel)
	for _, label := range LabelPriority {
		rank := PriorityRank(label)
		if prev, dup := seen[rank]; dup {
			t.Errorf("rank %d が %s と %s で重複", rank, prev, label)
		}
		seen[rank] = label
	}
}

// TestLabelDisplayMetadata は全ラベルが絵文字と色を持つことを検証する。
func TestLabelDisplayMetadata(t *testing.T) {
	for _, label := range LabelPriority {
		if label.Emoji() == "" {
			t.Errorf("label %s に絵文字がありません", label)
		}
		if label.Color() == "" {
			t.Errorf("label %s に色がありません", label)
		}
	}
}
