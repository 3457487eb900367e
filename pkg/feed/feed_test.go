package feed_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-jaundice/pkg/feed"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Новости</title>
    <item><title>Первая</title><link>https://inosmi.ru/20231012/pervaya-1.html</link></item>
    <item><title>Вторая</title><link>https://inosmi.ru/20231012/vtoraya-2.html</link></item>
    <item><title>Без ссылки</title></item>
    <item><title>Третья</title><link>https://inosmi.ru/20231012/tretya-3.html</link></item>
  </channel>
</rss>`

// mockFetcher はテスト用の feed.Fetcher 実装です。
type mockFetcher struct {
	body []byte
	err  error
}

func (m *mockFetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.body, nil
}

func TestNewParser_RequiresFetcher(t *testing.T) {
	parser, err := feed.NewParser(nil)
	assert.Error(t, err)
	assert.Nil(t, parser)
}

func TestFetchArticleLinks_CollectsAllLinks(t *testing.T) {
	parser, err := feed.NewParser(&mockFetcher{body: []byte(sampleRSS)})
	require.NoError(t, err)

	links, err := parser.FetchArticleLinks(context.Background(), "https://inosmi.ru/rss.xml", 0)

	require.NoError(t, err)
	// リンクのないアイテムはスキップされる
	assert.Equal(t, []string{
		"https://inosmi.ru/20231012/pervaya-1.html",
		"https://inosmi.ru/20231012/vtoraya-2.html",
		"https://inosmi.ru/20231012/tretya-3.html",
	}, links)
}

func TestFetchArticleLinks_HonorsLimit(t *testing.T) {
	parser, err := feed.NewParser(&mockFetcher{body: []byte(sampleRSS)})
	require.NoError(t, err)

	links, err := parser.FetchArticleLinks(context.Background(), "https://inosmi.ru/rss.xml", 2)

	require.NoError(t, err)
	assert.Len(t, links, 2)
}

func TestFetchArticleLinks_FetchErrorIsWrapped(t *testing.T) {
	fetchErr := errors.New("接続エラー")
	parser, err := feed.NewParser(&mockFetcher{err: fetchErr})
	require.NoError(t, err)

	links, err := parser.FetchArticleLinks(context.Background(), "https://inosmi.ru/rss.xml", 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, fetchErr)
	assert.Nil(t, links)
}

func TestFetchArticleLinks_InvalidFeedBody(t *testing.T) {
	parser, err := feed.NewParser(&mockFetcher{body: []byte("<html>это не фид</html>")})
	require.NoError(t, err)

	links, err := parser.FetchArticleLinks(context.Background(), "https://inosmi.ru/rss.xml", 0)

	require.Error(t, err)
	assert.Nil(t, links)
}
