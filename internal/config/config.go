package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config は、サーバーモードのアプリケーション設定です。
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Analyze AnalyzeConfig `mapstructure:"analyze"`
	Dict    DictConfig    `mapstructure:"dict"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig は、HTTPサーバーの設定です。
type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	RequestTimeout  int    `mapstructure:"request_timeout"`  // 秒
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // 秒
	RateLimit       int    `mapstructure:"rate_limit"`       // 1秒あたりの許容リクエスト数
}

// AnalyzeConfig は、記事解析パイプラインの設定です。
type AnalyzeConfig struct {
	FetchTimeout   int    `mapstructure:"fetch_timeout"`   // フェッチフェーズのデッドライン（秒）
	ProcessTimeout int    `mapstructure:"process_timeout"` // 解析フェーズのデッドライン（秒）
	MaxRetries     uint64 `mapstructure:"max_retries"`
}

// DictConfig は、charged-word 辞書ファイルのパス設定です。
type DictConfig struct {
	PositivePath string `mapstructure:"positive_path"`
	NegativePath string `mapstructure:"negative_path"`
}

// LogConfig は、ロギングの設定です。
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// FetchTimeoutDuration はフェッチフェーズのデッドラインを time.Duration で返します。
func (c AnalyzeConfig) FetchTimeoutDuration() time.Duration {
	return time.Duration(c.FetchTimeout) * time.Second
}

// ProcessTimeoutDuration は解析フェーズのデッドラインを time.Duration で返します。
func (c AnalyzeConfig) ProcessTimeoutDuration() time.Duration {
	return time.Duration(c.ProcessTimeout) * time.Second
}

// Addr は、サーバーのリッスンアドレスを返します。
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load は、デフォルト値・環境変数（JAUNDICE_ プレフィックス）・任意のYAML
// ファイルから設定を読み込みます。configPath が空の場合、ファイルは読みません。
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("JAUNDICE")
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvVars(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("設定の展開に失敗しました: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗しました: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.request_timeout", 30)
	v.SetDefault("server.shutdown_timeout", 15)
	v.SetDefault("server.rate_limit", 50)

	// 参照実装と同じデフォルト: フェッチ5秒、解析10秒、リトライなし
	v.SetDefault("analyze.fetch_timeout", 5)
	v.SetDefault("analyze.process_timeout", 10)
	v.SetDefault("analyze.max_retries", 0)

	v.SetDefault("dict.positive_path", "charged_dict/positive_words.txt")
	v.SetDefault("dict.negative_path", "charged_dict/negative_words.txt")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("server.host", "JAUNDICE_SERVER_HOST")
	_ = v.BindEnv("server.port", "JAUNDICE_SERVER_PORT")
	_ = v.BindEnv("server.request_timeout", "JAUNDICE_SERVER_REQUEST_TIMEOUT")
	_ = v.BindEnv("server.shutdown_timeout", "JAUNDICE_SERVER_SHUTDOWN_TIMEOUT")
	_ = v.BindEnv("server.rate_limit", "JAUNDICE_SERVER_RATE_LIMIT")

	_ = v.BindEnv("analyze.fetch_timeout", "JAUNDICE_ANALYZE_FETCH_TIMEOUT")
	_ = v.BindEnv("analyze.process_timeout", "JAUNDICE_ANALYZE_PROCESS_TIMEOUT")
	_ = v.BindEnv("analyze.max_retries", "JAUNDICE_ANALYZE_MAX_RETRIES")

	_ = v.BindEnv("dict.positive_path", "JAUNDICE_DICT_POSITIVE_PATH")
	_ = v.BindEnv("dict.negative_path", "JAUNDICE_DICT_NEGATIVE_PATH")

	_ = v.BindEnv("log.level", "JAUNDICE_LOG_LEVEL")
	_ = v.BindEnv("log.development", "JAUNDICE_LOG_DEVELOPMENT")
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port は 1〜65535 の範囲で指定してください")
	}
	if cfg.Analyze.FetchTimeout < 1 {
		return fmt.Errorf("analyze.fetch_timeout は 1 以上で指定してください")
	}
	if cfg.Analyze.ProcessTimeout < 1 {
		return fmt.Errorf("analyze.process_timeout は 1 以上で指定してください")
	}
	if cfg.Dict.PositivePath == "" || cfg.Dict.NegativePath == "" {
		return fmt.Errorf("辞書ファイルのパスは必須です")
	}
	if cfg.Server.RateLimit < 1 {
		return fmt.Errorf("server.rate_limit は 1 以上で指定してください")
	}
	return nil
}
