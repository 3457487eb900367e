package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/shouni/go-jaundice/pkg/retry"
)

const (
	// HTTPクライアント関連の定数
	DefaultHTTPTimeout = 5 * time.Second
	MaxBodySize        = int64(10 * 1024 * 1024) // 10MB: レスポンスボディの最大読み込みサイズ

	// サイトからのブロックを避けるためのUser-Agent
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"
)

// StatusError は、2xx以外のHTTPステータスコードを示すエラー型です。
// 呼び出し側はこの型により、ステータス起因の失敗をネットワーク障害や
// デッドライン超過と区別できます。
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTPステータスコードエラー: %d (URL: %s)", e.StatusCode, e.URL)
}

// IsStatusError は与えられたエラーがHTTPステータス起因かどうかを判定します。
func IsStatusError(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr)
}

// Client はHTTP GETリクエストと、設定可能なリトライロジックを管理します。
// 記事取得ワーカーではリトライなし（一度の失敗で終了）が既定です。
type Client struct {
	httpClient  *http.Client
	retryConfig retry.Config
}

// Option はClientの設定を行うための関数型です。
type Option func(*Client)

// WithMaxRetries は最大リトライ回数を設定します。
func WithMaxRetries(max uint64) Option {
	return func(c *Client) {
		c.retryConfig.MaxRetries = max
	}
}

// New は、新しいClientを生成します。
func New(timeout time.Duration, options ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retryConfig: retry.DefaultConfig(),
	}

	for _, opt := range options {
		opt(c)
	}
	return c
}

// FetchBytes は指定されたURLへGETリクエストを送り、UTF-8にデコード済みの
// レスポンスボディを返します。2xx以外のステータスは *StatusError を返します。
func (c *Client) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	var bodyBytes []byte

	op := func() error {
		var fetchErr error
		bodyBytes, fetchErr = c.doFetch(ctx, url)
		return fetchErr
	}

	err := retry.Do(
		ctx,
		c.retryConfig,
		fmt.Sprintf("URL(%s)のフェッチ", url),
		op,
		c.isRetryableError,
	)

	if err != nil {
		return nil, err
	}
	return bodyBytes, nil
}

// doFetch は実際の一度のHTTP GETリクエストを実行します。
func (c *Client) doFetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("GETリクエスト作成に失敗しました: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストに失敗しました (ネットワーク/接続エラー): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	// 対象サイトはUTF-8以外（windows-1251等）を返すことがあるため、
	// Content-Typeの文字セット宣言に従ってUTF-8へ変換する
	contentType := resp.Header.Get("Content-Type")
	reader, err := charset.NewReader(io.LimitReader(resp.Body, MaxBodySize), contentType)
	if err != nil {
		return nil, fmt.Errorf("文字セットの判定に失敗しました: %w", err)
	}

	bodyBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み込みに失敗しました: %w", err)
	}

	return bodyBytes, nil
}

// isRetryableError はエラーがリトライ対象かどうかを判定します。
// retry.ShouldRetryFunc 型のシグネチャを満たします。
func (c *Client) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// デッドライン超過/キャンセルはワーカーの打ち切りを意味するため、リトライしない
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	// ステータスエラーのうち5xx系のみリトライ対象。4xx系は再試行しても無意味
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 500 && statusErr.StatusCode <= 599
	}

	// ネットワーク/接続エラーはリトライ対象
	return true
}

// timeoutErrorSubstring は http.Client.Timeout 起因のエラー判定に使用します。
const timeoutErrorSubstring = "Client.Timeout exceeded"

// IsTimeout は与えられたエラーがタイムアウト起因かどうかを判定します。
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return strings.Contains(err.Error(), timeoutErrorSubstring)
}
