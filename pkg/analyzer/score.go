package analyzer

import (
	"math"

	"github.com/shouni/go-jaundice/pkg/vocab"
)

// CalculateJaundiceRate は、正規化済みトークン列のうち辞書に含まれる単語の
// 割合をパーセント（小数点以下2桁へ丸め）で返します。
// トークンが一つもない場合はゼロ除算を避けて 0 を返します。
func CalculateJaundiceRate(words []string, vocabulary *vocab.Vocabulary) float64 {
	if len(words) == 0 {
		return 0
	}

	charged := 0
	for _, word := range words {
		if vocabulary.Contains(word) {
			charged++
		}
	}

	rate := 100 * float64(charged) / float64(len(words))
	return math.Round(rate*100) / 100
}
