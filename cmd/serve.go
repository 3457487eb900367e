package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shouni/go-jaundice/internal/config"
	"github.com/shouni/go-jaundice/internal/metrics"
	"github.com/shouni/go-jaundice/internal/server"
	"github.com/shouni/go-jaundice/pkg/analyzer"
	"github.com/shouni/go-jaundice/pkg/httpclient"
	"github.com/shouni/go-jaundice/pkg/logger"
	"github.com/shouni/go-jaundice/pkg/morph"
	"github.com/shouni/go-jaundice/pkg/vocab"
)

// サーバーモード用のフラグ変数
var configPath string // --config 設定ファイルのパス

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "記事解析のHTTP APIサーバーを起動します",
	Long:  `GET /?urls=url1,url2 形式のリクエストを受け付け、各URLの解析結果をJSON配列で返すHTTPサーバーを起動します。設定はデフォルト値・環境変数（JAUNDICE_ プレフィックス）・YAMLファイルの順で解決されます。`,
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {

		// 1. 設定の読み込み（サーバーモードは viper 設定を正とする）
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("設定の読み込みエラー: %w", err)
		}

		log := logger.Get()

		// 2. 依存性の初期化。サーバーモードでは設定ファイルのタイムアウト・
		// 辞書パスを使い、CLIフラグよりも設定を優先する。
		fetcher := httpclient.New(
			cfg.Analyze.FetchTimeoutDuration(),
			httpclient.WithMaxRetries(cfg.Analyze.MaxRetries),
		)

		normalizer := morph.New()
		vocabulary, err := vocab.LoadCharged(cfg.Dict.PositivePath, cfg.Dict.NegativePath, normalizer.NormalizeWord)
		if err != nil {
			return fmt.Errorf("charged-word辞書の読み込みエラー: %w", err)
		}

		a, err := analyzer.New(
			fetcher,
			vocabulary,
			normalizer,
			analyzer.WithFetchTimeout(cfg.Analyze.FetchTimeoutDuration()),
			analyzer.WithProcessTimeout(cfg.Analyze.ProcessTimeoutDuration()),
			analyzer.WithLogger(log),
		)
		if err != nil {
			return fmt.Errorf("Analyzerの初期化エラー: %w", err)
		}

		m := metrics.New(prometheus.DefaultRegisterer)
		srv := server.New(cfg.Server, a, m, log)

		// 3. シグナルハンドリングとグレースフルシャットダウン
		errChan := make(chan error, 1)
		go func() {
			errChan <- srv.Start()
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("サーバーの起動エラー: %w", err)
			}
			return nil
		case sig := <-quit:
			log.Info("シグナルを受信しました", zap.String("signal", sig.String()))
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("サーバーの停止エラー: %w", err)
		}

		log.Info("サーバーを正常に停止しました")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "",
		"YAML設定ファイルのパス (省略時はデフォルト値と環境変数のみ)")
}
