// Package reply は記録された感情に対する共感リプライを生成する。
// 定型文による生成を基本とし、外部LLMが構成されている場合は
// そちらを優先して定型文にフォールバックする。
package reply

import (
	"github.com/hitoshi/kokoro/internal/model"
)

// cannedReplies はラベルごとの定型リプライ。
// 同じラベルでも日によって文面が変わるよう複数バリアントを持つ。
var cannedReplies = map[model.EmotionLabel][]string{
	model.LabelJoy: {
		"いい一日だったんですね！その気持ち、大切にしてください 😄",
		"嬉しいことがあったようで何よりです。明日も良い日になりますように 🌟",
		"楽しい気持ちが伝わってきます。記録を続けていきましょう 😄",
	},
	model.LabelLove: {
		"温かい気持ちに包まれた一日だったんですね 🥰",
		"大切な気持ちを記録できましたね。素敵な一日でした 💝",
	},
	model.LabelSurprise: {
		"驚くことがあったんですね。どんな発見でしたか？ 😮",
		"予想外の出来事があった日も、記録しておくと後で面白いものです 😮",
	},
	model.LabelAnger: {
		"イライラする日もありますよね。ここに書き出せたのは良いことです 🍵",
		"怒りを感じた自分を責めないでください。一息ついていきましょう 🍵",
	},
	model.LabelSadness: {
		"つらい一日でしたね。無理せずゆっくり休んでください 🌙",
		"悲しい気持ちを書き残すのは勇気のいることです。よくできました 🌙",
		"そんな日もあります。明日は少しでも軽くなりますように 🌙",
	},
	model.LabelFear: {
		"不安な気持ち、ひとりで抱え込まないでくださいね 🕯️",
		"怖いと感じたことを言葉にできたのは大きな一歩です 🕯️",
	},
	model.LabelUnknown: {
		"今日の気持ち、うまく言葉にならない日もありますよね。記録ありがとうございます。",
		"どんな気持ちでも、書き残すことに意味があります。おつかれさまでした。",
	},
}

// CannedReply はラベルと日付から定型リプライを返す。
// 同じラベルと日付の組み合わせには常に同じ文面を返す（決定的）。
func CannedReply(label model.EmotionLabel, date model.Date) string {
	variants, ok := cannedReplies[label]
	if !ok {
		variants = cannedReplies[model.LabelUnknown]
	}
	// 日付由来の固定インデックス。乱数は使わない。
	idx := (date.Year + int(date.Month) + date.Day) % len(variants)
	return variants[idx]
}
