package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	textutils "github.com/shouni/go-utils/text"
)

// ErrArticleNotFound は、HTMLに対応サイトの記事構造が見つからないことを示します。
// 別サイトのページや記事の存在しないページで発生し、フェッチ失敗とは
// errors.Is で区別できます。
var ErrArticleNotFound = errors.New("記事本文が見つかりませんでした（非対応のドキュメント構造）")

// ----------------------------------------------------------------------
// 定数定義 (inosmi.ru の記事構造)
// ----------------------------------------------------------------------
const (
	// articleBodySelectors は、記事本文コンテナの構造マーカーです。
	// これが存在しないHTMLは対応外のドキュメントとして扱います。
	articleBodySelectors = "div.article__text, div.article-body, div[itemprop='articleBody']"

	// articleTitleSelectors は、記事タイトルのセレクターです。
	articleTitleSelectors = "h1.article-header__title, h1[itemprop='headline'], h1"

	// noiseSelectors は、本文から除去する非テキスト要素です。
	noiseSelectors = "script, style, noscript, iframe, figure, figcaption, aside, .article__aside, .article__share, .article__tags, .banner, .advertisement"
)

// ArticleText は、取得済みのHTMLから記事の平文テキストを抽出します。
// タイトルと本文段落を結合して返し、構造マーカーが存在しない場合は
// ErrArticleNotFound を返します。純粋なCPU処理であり、I/Oを行いません。
func ArticleText(html []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("HTML解析に失敗しました: %w", err)
	}

	body := doc.Find(articleBodySelectors).First()
	if body.Length() == 0 {
		return "", ErrArticleNotFound
	}

	// ノイズ要素の除去
	body.Find(noiseSelectors).Remove()

	var parts []string

	// 1. 記事タイトル
	title := textutils.NormalizeText(doc.Find(articleTitleSelectors).First().Text())
	if title != "" {
		parts = append(parts, title)
	}

	// 2. 本文段落（段落構造がない本文コンテナはテキスト全体を使用）
	paragraphs := body.Find("p")
	if paragraphs.Length() == 0 {
		if text := textutils.NormalizeText(body.Text()); text != "" {
			parts = append(parts, text)
		}
	} else {
		paragraphs.Each(func(i int, s *goquery.Selection) {
			if text := textutils.NormalizeText(s.Text()); text != "" {
				parts = append(parts, text)
			}
		})
	}

	// 3. 抽出結果の検証: マーカーはあるが本文が空のページも非対応として扱う
	if len(parts) == 0 {
		return "", ErrArticleNotFound
	}

	return strings.Join(parts, "\n\n"), nil
}
