package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shouni/go-jaundice/pkg/extract"
	"github.com/shouni/go-jaundice/pkg/httpclient"
	"github.com/shouni/go-jaundice/pkg/morph"
	"github.com/shouni/go-jaundice/pkg/vocab"
)

const (
	// DefaultFetchTimeout は、フェッチフェーズのデフォルト・デッドラインです。
	DefaultFetchTimeout = 5 * time.Second
	// DefaultProcessTimeout は、解析フェーズ（抽出・正規化・スコア計算）の
	// デフォルト・デッドラインです。フェッチとは独立して計測されます。
	DefaultProcessTimeout = 10 * time.Second
)

// Fetcher は、HTMLドキュメントの生バイト配列を取得する機能のインターフェースを定義します。
// Analyzer は、この抽象に依存します。
type Fetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Analyzer は、記事URLの集合に対して charged-word 率を並列に算出します。
// 辞書と正規化エンジンは構築時に一度だけ受け取り、全ワーカーが読み取り専用で共有します。
type Analyzer struct {
	fetcher        Fetcher
	vocabulary     *vocab.Vocabulary
	normalizer     *morph.Normalizer
	fetchTimeout   time.Duration
	processTimeout time.Duration
	logger         *zap.Logger
}

// Option はAnalyzerの設定を行うための関数型です。
type Option func(*Analyzer)

// WithFetchTimeout はフェッチフェーズのデッドラインを設定します。
func WithFetchTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.fetchTimeout = d
		}
	}
}

// WithProcessTimeout は解析フェーズのデッドラインを設定します。
func WithProcessTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.processTimeout = d
		}
	}
}

// WithLogger はロガーを設定します。
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New は、新しいAnalyzerのインスタンスを生成します。
func New(fetcher Fetcher, vocabulary *vocab.Vocabulary, normalizer *morph.Normalizer, options ...Option) (*Analyzer, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("analyzer.New: Fetcher cannot be nil")
	}
	if vocabulary == nil {
		return nil, fmt.Errorf("analyzer.New: Vocabulary cannot be nil")
	}
	if normalizer == nil {
		return nil, fmt.Errorf("analyzer.New: Normalizer cannot be nil")
	}

	a := &Analyzer{
		fetcher:        fetcher,
		vocabulary:     vocabulary,
		normalizer:     normalizer,
		fetchTimeout:   DefaultFetchTimeout,
		processTimeout: DefaultProcessTimeout,
		logger:         zap.NewNop(),
	}

	for _, opt := range options {
		opt(a)
	}
	return a, nil
}

// ProcessArticle は、一つのURLに対するワーカーの状態機械を実行します。
// あらゆる失敗はステータス値へ変換され、エラーが呼び出し元へ漏れることはありません。
func (a *Analyzer) ProcessArticle(ctx context.Context, rawURL string) Result {
	result := Result{URL: rawURL, Status: StatusOK}

	// 0. ネットワーク到達前のURL構文チェック
	if err := validateURL(rawURL); err != nil {
		result.Status = StatusInvalidURL
		return result
	}

	// 1. フェッチフェーズ（独立した第一のデッドライン）
	fetchCtx, cancelFetch := context.WithTimeout(ctx, a.fetchTimeout)
	defer cancelFetch()

	html, err := a.fetcher.FetchBytes(fetchCtx, rawURL)
	if err != nil {
		result.Status = classifyFetchError(err)
		a.logger.Debug("フェッチ失敗",
			zap.String("url", rawURL),
			zap.String("status", string(result.Status)),
			zap.Error(err),
		)
		return result
	}

	// 2. 解析フェーズ（独立した第二のデッドライン。フェッチの残り時間に影響されない）
	processCtx, cancelProcess := context.WithTimeout(ctx, a.processTimeout)
	defer cancelProcess()

	rate, err := a.scoreArticle(processCtx, html)
	if err != nil {
		result.Status = classifyProcessError(err)
		a.logger.Debug("解析失敗",
			zap.String("url", rawURL),
			zap.String("status", string(result.Status)),
			zap.Error(err),
		)
		return result
	}

	result.Rate = &rate
	return result
}

// scoreArticle は、抽出・正規化・スコア計算をデッドライン付きで実行します。
// CPUバウンドな処理を別ゴルーチンで走らせ、デッドライン超過時には結果を
// 待たずに打ち切ります。
func (a *Analyzer) scoreArticle(ctx context.Context, html []byte) (float64, error) {
	type outcome struct {
		rate float64
		err  error
	}

	// バッファ1: 打ち切り後に完了したゴルーチンがブロックしないようにする
	done := make(chan outcome, 1)

	start := time.Now()
	go func() {
		text, err := extract.ArticleText(html)
		if err != nil {
			done <- outcome{err: err}
			return
		}

		words, err := a.normalizer.SplitByWords(ctx, text)
		if err != nil {
			done <- outcome{err: err}
			return
		}

		done <- outcome{rate: CalculateJaundiceRate(words, a.vocabulary)}
	}()

	select {
	case o := <-done:
		a.logger.Debug("解析完了", zap.Duration("処理時間", time.Since(start)))
		return o.rate, o.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// ProcessBatch は、URLごとに一つのワーカーを並列に起動し、全ワーカーが終端状態に
// 達するまで待機してから結果を返します。結果の個数は常に len(urls) と等しく、
// 並び順はワーカーの完了順です。一つのワーカーの失敗が兄弟ワーカーへ伝播する
// ことはありません。
func (a *Analyzer) ProcessBatch(ctx context.Context, urls []string) []Result {
	var wg sync.WaitGroup
	resultsChan := make(chan Result, len(urls))

	for _, u := range urls {
		wg.Add(1)

		go func(u string) {
			defer wg.Done()

			// ワーカーはあらゆる終了経路で必ず一件の結果を報告する。
			// 予期しない panic も終端状態へ変換し、兄弟ワーカーには影響させない。
			reported := false
			defer func() {
				if r := recover(); r != nil && !reported {
					a.logger.Error("ワーカーで予期しない障害が発生しました",
						zap.String("url", u),
						zap.Any("panic", r),
					)
					resultsChan <- Result{URL: u, Status: StatusParsingError}
				}
			}()

			result := a.ProcessArticle(ctx, u)
			reported = true
			resultsChan <- result
		}(u)
	}

	wg.Wait()
	close(resultsChan)

	results := make([]Result, 0, len(urls))
	for res := range resultsChan {
		results = append(results, res)
	}
	return results
}

// validateURL は、ネットワークへ出る前にURLの構文を検証します。
func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("URLのパースエラー: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("無効なURLスキームです: %s", rawURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("ホストのないURLです: %s", rawURL)
	}
	return nil
}

// classifyFetchError は、フェッチフェーズのエラーをステータスへ変換します。
func classifyFetchError(err error) Status {
	if httpclient.IsTimeout(err) {
		return StatusTimeout
	}
	// ステータスコードエラー・ネットワーク障害はいずれもフェッチ失敗
	return StatusFetchError
}

// classifyProcessError は、解析フェーズのエラーをステータスへ変換します。
func classifyProcessError(err error) Status {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return StatusTimeout
	}
	// ErrArticleNotFound を含め、解析フェーズの失敗はすべて非対応ドキュメント扱い
	return StatusParsingError
}
