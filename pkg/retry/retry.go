package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultMaxRetries は、デフォルトの最大リトライ回数です。
	// 記事解析ワーカーは「一度の失敗で終了」が原則のため、デフォルトは 0（リトライなし）です。
	DefaultMaxRetries = 0

	// バックオフのカスタム設定
	InitialBackoffInterval = 500 * time.Millisecond
	MaxBackoffInterval     = 5 * time.Second
)

// Operation はリトライ可能な処理を表す関数です。成功時は nil を返します。
type Operation func() error

// ShouldRetryFunc はエラーを受け取り、そのエラーがリトライ可能かどうかを判定する関数です。
type ShouldRetryFunc func(error) bool

// Config はリトライ動作を設定するための構造体です。
type Config struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultConfig は推奨されるデフォルト設定を返します。
func DefaultConfig() Config {
	return Config{
		MaxRetries:      DefaultMaxRetries,
		InitialInterval: InitialBackoffInterval,
		MaxInterval:     MaxBackoffInterval,
	}
}

// Do は指数バックオフとカスタムエラー判定を使用して操作をリトライします。
//
// コンテキストのタイムアウト/キャンセルは常に即時終了します。ワーカーの
// フェーズ・デッドラインはそのワーカーの処理全体を打ち切るものであり、
// リトライで延命してはならないためです。
func Do(ctx context.Context, cfg Config, operationName string, op Operation, shouldRetryFn ShouldRetryFunc) error {

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialInterval
	b.MaxInterval = cfg.MaxInterval

	bo := backoff.WithMaxRetries(b, cfg.MaxRetries)
	bo = backoff.WithContext(bo, ctx)

	var lastErr error

	retryableOp := func() error {
		err := op()

		if err == nil {
			return nil // 成功
		}

		// デッドライン超過/キャンセルはリトライ対象外として即時終了
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			lastErr = err
			return backoff.Permanent(err)
		}

		if shouldRetryFn(err) {
			lastErr = fmt.Errorf("一時的なエラーが発生、リトライします: %w", err)
			return lastErr
		}

		lastErr = fmt.Errorf("致命的なエラーのためリトライを中止: %w", err)
		return backoff.Permanent(lastErr)
	}

	err := backoff.Retry(retryableOp, bo)

	if err != nil {
		// backoff.Permanent でラップされたエラーから元のエラーを取得
		var pErr *backoff.PermanentError
		if errors.As(err, &pErr) {
			return pErr.Err
		}

		// コンテキストキャンセル/タイムアウトのエラー処理
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("%sに失敗しました: コンテキストタイムアウト/キャンセル: %w", operationName, err)
		}

		// その他のリトライ上限到達エラー
		return fmt.Errorf("%sに失敗しました: 最大リトライ回数 (%d回) に到達。最終エラー: %w", operationName, cfg.MaxRetries, lastErr)
	}
	return nil
}
