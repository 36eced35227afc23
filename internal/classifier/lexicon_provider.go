package classifier

import (
	"context"
	"strings"

	"github.com/hitoshi/kokoro/internal/model"
)

// LexiconProvider は内蔵の語彙ベースScoreProvider実装。
// 外部サービスが未設定でもプロセス単体で動作させるためのもので、
// ラベルごとのキーワードリストに対する一致数からスコアを算出する。
// ネットワークを使わないため失敗せず、常に全ラベルのスコアを返す。
type LexiconProvider struct{}

// NewLexiconProvider はLexiconProviderの新しいインスタンスを生成する。
func NewLexiconProvider() *LexiconProvider {
	return &LexiconProvider{}
}

// emotionLexicon はラベルごとのキーワードリスト。
// 英語と日本語の基本的な感情語のみを含む最小構成。
var emotionLexicon = map[model.EmotionLabel][]string{
	model.LabelJoy: {
		"happy", "glad", "great", "joy", "wonderful", "amazing", "excited", "fun",
		"嬉しい", "うれしい", "楽しい", "たのしい", "最高", "幸せ", "しあわせ",
	},
	model.LabelLove: {
		"love", "dear", "sweet", "warm", "grateful", "thankful",
		"好き", "大好き", "愛", "感謝", "ありがとう", "あたたかい",
	},
	model.LabelSurprise: {
		"surprised", "wow", "unexpected", "sudden", "shocked",
		"驚いた", "びっくり", "まさか", "意外",
	},
	model.LabelAnger: {
		"angry", "mad", "furious", "annoyed", "hate", "irritated",
		"怒り", "腹立つ", "むかつく", "イライラ", "許せない",
	},
	model.LabelSadness: {
		"sad", "cry", "lonely", "depressed", "miserable", "down", "tired",
		"悲しい", "かなしい", "泣き", "つらい", "辛い", "寂しい", "さみしい", "疲れた",
	},
	model.LabelFear: {
		"afraid", "scared", "anxious", "worry", "worried", "nervous", "fear",
		"怖い", "こわい", "不安", "心配", "緊張",
	},
}

// noSignalScore はどのキーワードにも一致しなかった場合にUnknownへ与えるスコア。
// 他ラベルの0点より高くなるため、感情語を含まないテキストは
// タイブレークに頼らずUnknownへ分類される。
const noSignalScore = 0.25

// Scores はキーワード一致数からラベルスコアを算出する。
// スコアは hits/(hits+2) の飽和曲線（1語で0.33、4語で0.66）。
// 一致が1つも無い場合はUnknownのみが正のスコアを持つ。
// エラーを返すことはない。
func (p *LexiconProvider) Scores(ctx context.Context, text string) ([]model.LabelScore, error) {
	lowered := strings.ToLower(text)

	scores := make([]model.LabelScore, 0, len(model.LabelPriority))
	totalHits := 0

	// LabelPriority順に走査し、mapのイテレーション順に依存しない
	for _, label := range model.LabelPriority {
		keywords, ok := emotionLexicon[label]
		if !ok {
			continue
		}
		hits := 0
		for _, kw := range keywords {
			hits += strings.Count(lowered, kw)
		}
		totalHits += hits
		scores = append(scores, model.LabelScore{
			Label: label,
			Score: float64(hits) / float64(hits+2),
		})
	}

	unknownScore := 0.0
	if totalHits == 0 {
		unknownScore = noSignalScore
	}
	scores = append(scores, model.LabelScore{Label: model.LabelUnknown, Score: unknownScore})

	return scores, nil
}
