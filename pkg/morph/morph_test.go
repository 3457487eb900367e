package morph_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-jaundice/pkg/morph"
)

func TestSplitByWords(t *testing.T) {
	normalizer := morph.New()

	testCases := []struct {
		name     string
		text     string
		expected int // 期待されるトークン数
	}{
		// 1. 空テキスト
		{
			name:     "empty_text",
			text:     "",
			expected: 0,
		},

		// 2. 記号のみのテキスト
		{
			name:     "punctuation_only",
			text:     "«»— … !!! ???",
			expected: 0,
		},

		// 3. 短い単語（2文字以下）は除外される
		{
			name:     "short_words_dropped",
			text:     "в на по из",
			expected: 0,
		},

		// 4. 否定助詞「не」は長さ制限の例外として残る
		{
			name:     "negation_particle_kept",
			text:     "не было никаких сомнений",
			expected: 4,
		},

		// 5. 前後の記号は除去される
		{
			name:     "surrounding_punctuation_stripped",
			text:     "«катастрофа», — сообщил источник.",
			expected: 3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			words, err := normalizer.SplitByWords(context.Background(), tc.text)
			require.NoError(t, err)
			assert.Len(t, words, tc.expected)
		})
	}
}

// TestNormalizeWord_StemsInflectedForms は、語形変化した単語が
// 同一の正規形へ収束することを確認します。
func TestNormalizeWord_StemsInflectedForms(t *testing.T) {
	normalizer := morph.New()

	// 単数形と複数形が同じ語幹になる
	assert.Equal(t,
		normalizer.NormalizeWord("пожар"),
		normalizer.NormalizeWord("пожары"),
	)

	// 大文字小文字・前後の記号は正規形に影響しない
	assert.Equal(t,
		normalizer.NormalizeWord("катастрофа"),
		normalizer.NormalizeWord("«Катастрофа»"),
	)
}

func TestNormalizeWord_DropsNoise(t *testing.T) {
	normalizer := morph.New()

	assert.Empty(t, normalizer.NormalizeWord(""))
	assert.Empty(t, normalizer.NormalizeWord("—"))
	assert.Empty(t, normalizer.NormalizeWord("в"))
	assert.NotEmpty(t, normalizer.NormalizeWord("не"))
}

// TestSplitByWords_HonorsContextCancellation は、巨大な入力に対する
// 正規化が解析フェーズのデッドラインで打ち切られることを確認します。
func TestSplitByWords_HonorsContextCancellation(t *testing.T) {
	normalizer := morph.New()

	// 既にキャンセル済みのコンテキストでは即座に中断する
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hugeText := strings.Repeat("слово катастрофа прорыв ", 100_000)

	start := time.Now()
	words, err := normalizer.SplitByWords(ctx, hugeText)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, words)
	assert.Less(t, time.Since(start), time.Second)
}
