package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shouni/go-jaundice/internal/server"
	"github.com/shouni/go-jaundice/pkg/analyzer"
	"github.com/shouni/go-jaundice/pkg/feed"
	"github.com/shouni/go-jaundice/pkg/logger"
)

// フィードモード用のフラグ変数
var (
	feedURL   string // --feed フィードのURL
	feedLimit int    // --limit 解析する記事数の上限
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "RSS/Atomフィードから記事リンクを収集し、まとめて解析します",
	Long:  `指定されたフィードURLからRSSまたはAtomフィードを取得し、収集した記事リンク（最大10件）に対してバッチ解析を実行します。`,
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {

		// 1. フィードURLのスキーム補完と上限の適用
		normalizedFeedURL, err := ensureScheme(feedURL)
		if err != nil {
			return err
		}

		limit := feedLimit
		if limit <= 0 || limit > server.MaxURLsPerRequest {
			limit = server.MaxURLsPerRequest
		}

		// 2. 依存性の初期化
		fetcher := GetGlobalFetcher()
		parser, err := feed.NewParser(fetcher)
		if err != nil {
			return fmt.Errorf("フィードパーサーの初期化エラー: %w", err)
		}

		a, err := analyzer.New(
			fetcher,
			globalVocabulary,
			globalNormalizer,
			analyzer.WithFetchTimeout(time.Duration(Flags.FetchTimeoutSec)*time.Second),
			analyzer.WithProcessTimeout(time.Duration(Flags.ProcessTimeoutSec)*time.Second),
			analyzer.WithLogger(logger.Get()),
		)
		if err != nil {
			return fmt.Errorf("Analyzerの初期化エラー: %w", err)
		}

		// 3. フィードから記事リンクを収集
		fetchCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(Flags.FetchTimeoutSec)*time.Second)
		defer cancel()

		links, err := parser.FetchArticleLinks(fetchCtx, normalizedFeedURL, limit)
		if err != nil {
			return fmt.Errorf("フィードからのリンク収集エラー: %w", err)
		}
		if len(links) == 0 {
			return fmt.Errorf("フィードに記事リンクが見つかりませんでした: %s", normalizedFeedURL)
		}

		logger.Get().Info("フィードからリンクを収集しました",
			zap.String("feed", normalizedFeedURL),
			zap.Int("件数", len(links)),
		)

		// 4. メインロジックの実行
		runAnalyzePipeline(links, a)

		return nil
	},
}

func init() {
	feedCmd.Flags().StringVarP(&feedURL, "feed", "f", "",
		"フィードのURL (例: https://inosmi.ru/rss.xml)")
	feedCmd.Flags().IntVarP(&feedLimit, "limit", "l", server.MaxURLsPerRequest,
		"解析する記事数の上限 (最大10)")
	_ = feedCmd.MarkFlagRequired("feed")
}
