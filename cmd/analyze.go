package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shouni/go-jaundice/internal/server"
	"github.com/shouni/go-jaundice/pkg/analyzer"
	"github.com/shouni/go-jaundice/pkg/logger"
)

// コマンドラインフラグ変数を定義
var inputURLs string // --urls フラグで受け取るカンマ区切りのURLリスト

// runAnalyzePipeline は、バッチ解析を実行するメインロジックです。
func runAnalyzePipeline(urls []string, a *analyzer.Analyzer) {
	logger.Get().Info("バッチ解析開始", zap.Int("対象URL数", len(urls)))

	start := time.Now()
	results := a.ProcessBatch(context.Background(), urls)

	fmt.Println("--- 解析結果 ---")

	successCount := 0
	errorCount := 0

	for i, res := range results {
		if res.Status == analyzer.StatusOK {
			successCount++
			fmt.Printf("✅ [%d] %s\n", i+1, res)
		} else {
			errorCount++
			fmt.Printf("❌ [%d] %s\n", i+1, res)
		}
	}

	fmt.Println("-----------------")
	fmt.Printf("完了: 成功 %d 件, 失敗 %d 件 (所要時間: %s)\n", successCount, errorCount, time.Since(start).Round(time.Millisecond))
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "複数の記事URLを並列で解析し、感情的単語率を算出します",
	Long:  `--urls フラグでカンマ区切りのURLリストを受け取るか、標準入力からURLを一行ずつ読み込み、各記事の感情的単語率を並列に算出します。一回の実行で受け付けるURLは最大10件です。`,
	Args:  cobra.NoArgs, // 位置引数は取らない

	RunE: func(cmd *cobra.Command, args []string) error {

		// 1. 処理対象URLのリストを決定
		var urls []string

		if inputURLs != "" {
			// --urls フラグからURLリストを取得
			for _, part := range strings.Split(inputURLs, ",") {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					urls = append(urls, trimmed)
				}
			}
		} else {
			// 標準入力からURLを一行ずつ読み込む
			logger.Get().Info("URLが指定されていないため、標準入力からURLを読み込みます (Ctrl+DまたはEOFで終了)")
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				url := strings.TrimSpace(scanner.Text())
				if url != "" {
					urls = append(urls, url)
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("標準入力の読み取りエラー: %w", err)
			}
		}

		if len(urls) == 0 {
			return fmt.Errorf("処理対象のURLが一つも指定されていません")
		}
		if len(urls) > server.MaxURLsPerRequest {
			return fmt.Errorf("URLが多すぎます: %d 件 (上限: %d 件)", len(urls), server.MaxURLsPerRequest)
		}

		// 2. 依存性の初期化
		a, err := analyzer.New(
			GetGlobalFetcher(),
			globalVocabulary,
			globalNormalizer,
			analyzer.WithFetchTimeout(time.Duration(Flags.FetchTimeoutSec)*time.Second),
			analyzer.WithProcessTimeout(time.Duration(Flags.ProcessTimeoutSec)*time.Second),
			analyzer.WithLogger(logger.Get()),
		)
		if err != nil {
			return fmt.Errorf("Analyzerの初期化エラー: %w", err)
		}

		// 3. メインロジックの実行
		runAnalyzePipeline(urls, a)

		return nil
	},
}

func init() {
	// --urls フラグ: カンマ区切りのURLリスト
	analyzeCmd.Flags().StringVarP(&inputURLs, "urls", "u", "",
		"解析対象のカンマ区切りURLリスト (例: url1,url2,url3)")
}
