// Package model はドメインモデルを定義する。
package model

import "strings"

// EmotionLabel は分類器が割り当てる感情カテゴリを表す。
// 分類不能な入力のために必ずLabelUnknownを含む（閉じた列挙 + フォールバック）。
type EmotionLabel string

const (
	LabelJoy      EmotionLabel = "joy"
	LabelLove     EmotionLabel = "love"
	LabelSurprise EmotionLabel = "surprise"
	LabelAnger    EmotionLabel = "anger"
	LabelSadness  EmotionLabel = "sadness"
	LabelFear     EmotionLabel = "fear"
	// LabelUnknown は分類器が結果を返せなかった場合のフォールバックカテゴリ。
	LabelUnknown EmotionLabel = "unknown"
)

// LabelPriority はラベルの固定優先順位。
// 同スコア時のタイブレークと凡例の表示順に使用する。
// mapのイテレーション順に依存すると実行ごとに結果が変わるため、
// 決定性が必要な箇所では必ずこのスライスを参照すること。
var LabelPriority = []EmotionLabel{
	LabelJoy,
	LabelLove,
	LabelSurprise,
	LabelAnger,
	LabelSadness,
	LabelFear,
	LabelUnknown,
}

// PriorityRank はラベルの優先順位（小さいほど高優先）を返す。
// 未定義のラベルはLabelUnknownと同順位として扱う。
func PriorityRank(label EmotionLabel) int {
	for i, l := range LabelPriority {
		if l == label {
			return i
		}
	}
	return len(LabelPriority) - 1
}

// ParseLabel はラベル文字列をEmotionLabelに変換する。
// 語彙に含まれない文字列の場合は (LabelUnknown, false) を返す。
func ParseLabel(s string) (EmotionLabel, bool) {
	label := EmotionLabel(strings.ToLower(strings.TrimSpace(s)))
	for _, l := range LabelPriority {
		if l == label {
			return l, true
		}
	}
	return LabelUnknown, false
}

// Emoji はラベルに対応する表示用絵文字を返す。
func (l EmotionLabel) Emoji() string {
	switch l {
	case LabelJoy:
		return "😄"
	case LabelLove:
		return "🥰"
	case LabelSurprise:
		return "😮"
	case LabelAnger:
		return "😠"
	case LabelSadness:
		return "😢"
	case LabelFear:
		return "😨"
	default:
		return "😐"
	}
}

// Color はラベルに対応する表示用の背景色（HEX）を返す。
func (l EmotionLabel) Color() string {
	switch l {
	case LabelJoy:
		return "#D1FAE5"
	case LabelLove:
		return "#FFE4E6"
	case LabelSurprise:
		return "#E0F7FA"
	case LabelAnger:
		return "#FFEDD5"
	case LabelSadness:
		return "#F8D7DA"
	case LabelFear:
		return "#FFF3CD"
	default:
		return "#F3F4F6"
	}
}

// LabelScore は外部分類器が返す (ラベル, 生スコア) のペアを表す。
// スコアは独立した確信度であり、合計が1になる保証はない。
type LabelScore struct {
	Label EmotionLabel
	Score float64
}

// ClassificationResult は正規化済みの分類結果を表す。
// 構築後は変更しない（イミュータブル）。
// Confidenceは選択されたラベルのスコアであり、内部では全精度を保持する。
// 小数2桁への丸めは表示境界（HTTPレスポンス）でのみ行う。
type ClassificationResult struct {
	Label      EmotionLabel
	Confidence float64
}
