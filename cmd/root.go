package cmd

import (
	"fmt"
	"time"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shouni/go-jaundice/pkg/httpclient"
	"github.com/shouni/go-jaundice/pkg/logger"
	"github.com/shouni/go-jaundice/pkg/morph"
	"github.com/shouni/go-jaundice/pkg/vocab"
)

// --- グローバル定数 ---

const (
	appName = "jaundice"

	defaultFetchTimeoutSec   = 5  // フェッチフェーズのデッドライン（秒）
	defaultProcessTimeoutSec = 10 // 解析フェーズのデッドライン（秒）
	defaultMaxRetries        = 0  // デフォルトはリトライなし（一回の失敗が終端状態）

	defaultPositiveWordsPath = "charged_dict/positive_words.txt"
	defaultNegativeWordsPath = "charged_dict/negative_words.txt"
)

// --- グローバル変数とフラグ構造体 ---

// AppFlags はこのアプリケーション固有の永続フラグを保持
type AppFlags struct {
	FetchTimeoutSec   int    // --timeout フェッチのタイムアウト
	ProcessTimeoutSec int    // --process-timeout 解析のタイムアウト
	MaxRetries        int    // --max-retries リトライ回数
	PositiveWordsPath string // --positive-words 辞書ファイル
	NegativeWordsPath string // --negative-words 辞書ファイル
}

var Flags AppFlags // アプリケーション固有フラグにアクセスするためのグローバル変数

var (
	globalFetcher    *httpclient.Client
	globalVocabulary *vocab.Vocabulary
	globalNormalizer *morph.Normalizer
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "ニュース記事の感情的単語率（jaundice rate）を並列解析するツール",
	Long:  `記事URLの集合を並列にフェッチ・解析し、感情的に強い単語が本文に占める割合を算出します。バッチ実行（analyze）、HTTPサーバー（serve）、フィード巡回（feed）の三つのモードを提供します。`,
}

// --- 初期化とロジック (clibaseへのコールバックとして利用) ---

// addAppPersistentFlags は、アプリケーション固有の永続フラグをルートコマンドに追加します。
func addAppPersistentFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().IntVar(
		&Flags.FetchTimeoutSec,
		"timeout",
		defaultFetchTimeoutSec,
		"記事フェッチのタイムアウト時間（秒）",
	)
	rootCmd.PersistentFlags().IntVar(
		&Flags.ProcessTimeoutSec,
		"process-timeout",
		defaultProcessTimeoutSec,
		"記事解析（抽出・正規化・スコア計算）のタイムアウト時間（秒）",
	)
	rootCmd.PersistentFlags().IntVar(
		&Flags.MaxRetries,
		"max-retries",
		defaultMaxRetries,
		"HTTPリクエストのリトライ最大回数",
	)
	rootCmd.PersistentFlags().StringVar(
		&Flags.PositiveWordsPath,
		"positive-words",
		defaultPositiveWordsPath,
		"ポジティブ辞書ファイルのパス（一行一単語）",
	)
	rootCmd.PersistentFlags().StringVar(
		&Flags.NegativeWordsPath,
		"negative-words",
		defaultNegativeWordsPath,
		"ネガティブ辞書ファイルのパス（一行一単語）",
	)
}

// initAppPreRunE は、clibase共通処理の後に実行される、アプリケーション固有のPersistentPreRunEです。
// NOTE: clibaseの PersistentPreRunE チェーンにより、clibase.Flags.Verbose はこの関数実行前に設定済み
func initAppPreRunE(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if clibase.Flags.Verbose {
		logLevel = "debug"
	}
	if err := logger.Init(logLevel, clibase.Flags.Verbose); err != nil {
		return fmt.Errorf("ロガーの初期化エラー: %w", err)
	}

	fetchTimeout := time.Duration(Flags.FetchTimeoutSec) * time.Second

	// 共有フェッチャーの初期化
	globalFetcher = httpclient.New(
		fetchTimeout,
		httpclient.WithMaxRetries(uint64(Flags.MaxRetries)),
	)

	// 辞書と正規化エンジンは全コマンドで共有する。辞書が読めない場合は起動失敗。
	globalNormalizer = morph.New()

	vocabulary, err := vocab.LoadCharged(Flags.PositiveWordsPath, Flags.NegativeWordsPath, globalNormalizer.NormalizeWord)
	if err != nil {
		return fmt.Errorf("charged-word辞書の読み込みエラー: %w", err)
	}
	globalVocabulary = vocabulary

	logger.Get().Debug("初期化完了",
		zap.Duration("fetch_timeout", fetchTimeout),
		zap.Int("max_retries", Flags.MaxRetries),
		zap.Int("辞書語数", globalVocabulary.Len()),
	)

	return nil
}

// GetGlobalFetcher は、初期化されたフェッチャーを返す関数 (DIの代わり)
func GetGlobalFetcher() *httpclient.Client {
	return globalFetcher
}

// --- エントリポイント ---

// Execute は、rootCmd を実行するメイン関数です。clibaseのExecuteを使用する。
func Execute() {
	defer func() { _ = logger.Sync() }()

	clibase.Execute(
		appName,
		addAppPersistentFlags, // カスタムフラグの追加コールバック
		initAppPreRunE,        // カスタムPersistentPreRunEコールバック
		analyzeCmd,
		serveCmd,
		feedCmd,
	)
}
