package extract_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-jaundice/pkg/extract"
)

func TestArticleText(t *testing.T) {
	testCases := []struct {
		name          string
		html          string
		expectedParts []string // 抽出結果に含まれるべき文字列
		excludedParts []string // 抽出結果に含まれてはならない文字列
		expectedError error
	}{
		// 1. 対応サイトの標準的な記事構造
		{
			name: "supported_article_layout",
			html: `<html><head><title>Сайт</title></head><body>
				<h1 class="article-header__title">Крупная катастрофа</h1>
				<div class="article__text">
					<p>Вчера произошла катастрофа на заводе.</p>
					<p>Последствия будут устраняться несколько недель.</p>
				</div>
			</body></html>`,
			expectedParts: []string{"Крупная катастрофа", "катастрофа на заводе", "несколько недель"},
		},

		// 2. ノイズ要素（script, figure, aside）は本文から除去される
		{
			name: "noise_elements_removed",
			html: `<html><body>
				<h1>Заголовок статьи</h1>
				<div class="article__text">
					<p>Основной текст статьи.</p>
					<script>var tracker = "analytics";</script>
					<figure><figcaption>подпись к фото</figcaption></figure>
					<aside>реклама сбоку</aside>
				</div>
			</body></html>`,
			expectedParts: []string{"Основной текст статьи"},
			excludedParts: []string{"analytics", "подпись к фото", "реклама сбоку"},
		},

		// 3. 非対応サイトのレイアウト → ErrArticleNotFound
		{
			name: "unsupported_site_layout",
			html: `<html><body>
				<div class="content"><p>Это страница другого сайта.</p></div>
			</body></html>`,
			expectedError: extract.ErrArticleNotFound,
		},

		// 4. 記事の存在しないページ（マーカーはあるが本文が空）
		{
			name: "empty_article_body",
			html: `<html><body>
				<div class="article__text"><script>redirect();</script></div>
			</body></html>`,
			expectedError: extract.ErrArticleNotFound,
		},

		// 5. 段落構造を持たない本文コンテナ
		{
			name: "body_without_paragraphs",
			html: `<html><body>
				<div class="article__text">Короткая заметка без абзацев и разметки текста.</div>
			</body></html>`,
			expectedParts: []string{"Короткая заметка"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			text, err := extract.ArticleText([]byte(tc.html))

			if tc.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			for _, part := range tc.expectedParts {
				assert.Contains(t, text, part)
			}
			for _, part := range tc.excludedParts {
				assert.NotContains(t, text, part)
			}
		})
	}
}

// TestArticleText_KnownWordCount は、既知の単語数を持つ記事で
// 抽出テキストがスコア計算の入力として安定していることを確認します。
func TestArticleText_KnownWordCount(t *testing.T) {
	html := fmt.Sprintf(`<html><body>
		<div class="article__text"><p>%s</p></div>
	</body></html>`, "однажды катастрофа разрушила маленький город")

	text, err := extract.ArticleText([]byte(html))

	require.NoError(t, err)
	assert.Equal(t, "однажды катастрофа разрушила маленький город", text)
}
