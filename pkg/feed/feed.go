package feed

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// Fetcher は、フィードの生バイト配列を取得する機能のインターフェースを定義します。
type Fetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Parser は、RSS/Atomフィードから記事URLを収集します。
type Parser struct {
	fetcher Fetcher
}

// NewParser は新しい Parser インスタンスを初期化し、依存関係を注入します。
func NewParser(fetcher Fetcher) (*Parser, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("feed.NewParser: Fetcher cannot be nil")
	}
	return &Parser{fetcher: fetcher}, nil
}

// FetchArticleLinks は指定されたフィードURLから記事リンクを最大 limit 件収集します。
// limit が 0 以下の場合はフィード内のすべてのリンクを返します。
func (p *Parser) FetchArticleLinks(ctx context.Context, feedURL string, limit int) ([]string, error) {
	body, err := p.fetcher.FetchBytes(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("フィードの取得失敗 (URL: %s): %w", feedURL, err)
	}

	fp := gofeed.NewParser()
	parsed, err := fp.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("フィードのパース失敗 (URL: %s): %w", feedURL, err)
	}

	links := make([]string, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.Link == "" {
			continue
		}
		links = append(links, item.Link)
		if limit > 0 && len(links) >= limit {
			break
		}
	}
	return links, nil
}
