package analyzer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-jaundice/pkg/analyzer"
	"github.com/shouni/go-jaundice/pkg/morph"
	"github.com/shouni/go-jaundice/pkg/vocab"
)

// newTestVocabulary は、テスト用の辞書を構築します。
// 辞書の単語は記事トークンと同じ正規化を通ります。
func newTestVocabulary(t *testing.T, normalizer *morph.Normalizer, positive, negative string) *vocab.Vocabulary {
	t.Helper()
	dir := t.TempDir()

	positivePath := filepath.Join(dir, "positive_words.txt")
	negativePath := filepath.Join(dir, "negative_words.txt")
	require.NoError(t, os.WriteFile(positivePath, []byte(positive), 0o644))
	require.NoError(t, os.WriteFile(negativePath, []byte(negative), 0o644))

	v, err := vocab.LoadCharged(positivePath, negativePath, normalizer.NormalizeWord)
	require.NoError(t, err)
	return v
}

func TestCalculateJaundiceRate(t *testing.T) {
	normalizer := morph.New()
	vocabulary := newTestVocabulary(t, normalizer, "восторг\n", "катастрофа\nвзрыв\n")

	norm := func(words ...string) []string {
		normalized := make([]string, 0, len(words))
		for _, w := range words {
			normalized = append(normalized, normalizer.NormalizeWord(w))
		}
		return normalized
	}

	testCases := []struct {
		name     string
		words    []string
		expected float64
	}{
		// 1. ゼロ除算ガード: トークンなしは 0
		{
			name:     "zero_tokens_guard",
			words:    nil,
			expected: 0,
		},

		// 2. 辞書に含まれる単語がない場合
		{
			name:     "no_charged_words",
			words:    norm("городской", "парк", "открылся", "вчера"),
			expected: 0,
		},

		// 3. 4単語中2単語が辞書に含まれる → 50.00
		{
			name:     "half_charged",
			words:    norm("катастрофа", "разрушила", "город", "взрыв"),
			expected: 50,
		},

		// 4. すべての単語が辞書に含まれる → 100.00
		{
			name:     "fully_charged",
			words:    norm("катастрофа", "взрыв", "восторг"),
			expected: 100,
		},

		// 5. 小数点以下2桁への丸め: 3単語中1単語 → 33.33
		{
			name:     "rounded_to_two_decimals",
			words:    norm("катастрофа", "разрушила", "город"),
			expected: 33.33,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rate := analyzer.CalculateJaundiceRate(tc.words, vocabulary)
			assert.InDelta(t, tc.expected, rate, 0.001)
			assert.GreaterOrEqual(t, rate, 0.0)
			assert.LessOrEqual(t, rate, 100.0)
		})
	}
}
