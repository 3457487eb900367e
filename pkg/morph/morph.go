package morph

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball"
	"golang.org/x/text/unicode/norm"
)

const (
	// minWordLength は、解析対象とする単語の最小文字数（ルーン数）です。
	// これより短い単語は前置詞・接続詞等のノイズとして除外します。
	minWordLength = 3

	// negationParticle は、長さ制限の例外として常に残す否定助詞です。
	// 「не」の有無は記事の感情的トーンに直接影響するためです。
	negationParticle = "не"

	// ctxCheckInterval は、SplitByWords がコンテキストの打ち切りを
	// 確認する単語数の間隔です。
	ctxCheckInterval = 1024
)

// Normalizer は、生テキストを正規化済みの単語トークン列へ変換します。
// 状態を持たないため、複数のワーカーから並行して安全に利用できます。
type Normalizer struct {
	language string
}

// New は、ロシア語ステミングを行う Normalizer を生成します。
func New() *Normalizer {
	return &Normalizer{language: "russian"}
}

// NormalizeWord は、単語一つを正規形（小文字・NFC・語幹）へ変換します。
// 正規化の結果、解析対象外となった単語は空文字列を返します。
func (n *Normalizer) NormalizeWord(word string) string {
	cleaned := strings.ToLower(strings.TrimSpace(word))
	cleaned = norm.NFC.String(cleaned)
	cleaned = strings.TrimFunc(cleaned, isPunctuation)

	if cleaned == "" {
		return ""
	}
	if utf8.RuneCountInString(cleaned) < minWordLength && cleaned != negationParticle {
		return ""
	}

	stemmed, err := snowball.Stem(cleaned, n.language, false)
	if err != nil || stemmed == "" {
		// 語幹抽出できない語（ラテン文字・数字等）はそのまま使用する
		return cleaned
	}
	return stemmed
}

// SplitByWords は、テキストを単語に分割し、各単語を正規化して返します。
// CPUバウンドな処理のため、一定間隔でコンテキストの打ち切りを確認します。
func (n *Normalizer) SplitByWords(ctx context.Context, text string) ([]string, error) {
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))

	for i, field := range fields {
		if i%ctxCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		if normalized := n.NormalizeWord(field); normalized != "" {
			words = append(words, normalized)
		}
	}

	return words, nil
}

// isPunctuation は、単語の前後から取り除くべき記号類を判定します。
// ロシア語記事で頻出する «»—… を含みます。
func isPunctuation(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
