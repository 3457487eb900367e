package vocab

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// NormalizeFunc は、辞書の単語を記事トークンと同じ正規形へ変換する関数です。
// 正規化の結果が空文字列の場合、その単語は辞書から除外されます。
type NormalizeFunc func(word string) string

// Vocabulary は、感情的に強い単語（charged words）の不変な集合です。
// 構築後は変更されないため、すべてのワーカーからロックなしで参照できます。
type Vocabulary struct {
	words map[string]struct{}
}

// LoadCharged は、ポジティブ・ネガティブ両辞書ファイルを読み込み、
// その和集合から Vocabulary を構築します。ファイルは一行一単語のUTF-8です。
// 辞書が読み込めない場合は起動失敗として扱うべきエラーを返します。
func LoadCharged(positivePath, negativePath string, normalize NormalizeFunc) (*Vocabulary, error) {
	if normalize == nil {
		return nil, fmt.Errorf("vocab.LoadCharged: normalize関数は必須です")
	}

	words := make(map[string]struct{})

	for _, path := range []string{positivePath, negativePath} {
		if err := loadWordFile(path, normalize, words); err != nil {
			return nil, err
		}
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("辞書が空です (positive: %s, negative: %s)", positivePath, negativePath)
	}

	return &Vocabulary{words: words}, nil
}

// loadWordFile は、一つの辞書ファイルを読み込み、正規化済みの単語を集合へ追加します。
func loadWordFile(path string, normalize NormalizeFunc, words map[string]struct{}) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("辞書ファイルを開けませんでした (%s): %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if normalized := normalize(line); normalized != "" {
			words[normalized] = struct{}{}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("辞書ファイルの読み込みに失敗しました (%s): %w", path, err)
	}
	return nil
}

// Contains は、正規化済みの単語が辞書に含まれるかを返します。
func (v *Vocabulary) Contains(word string) bool {
	_, ok := v.words[word]
	return ok
}

// Len は、辞書に含まれる単語数を返します。
func (v *Vocabulary) Len() int {
	return len(v.words)
}
