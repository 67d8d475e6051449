package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"yipee/internal/route"
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Routes  RoutesConfig  `yaml:"routes"`
	Assets  AssetsConfig  `yaml:"assets"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string `yaml:"host"` // リッスンするホスト
	Port int    `yaml:"port"` // リッスンするポート番号（0 は空きポート）
	Mode string `yaml:"mode"` // gin のモード

	// タイムアウト設定
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // 読み込みタイムアウト
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // 書き込みタイムアウト
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // グレースフルシャットダウンの猶予
}

// RoutesConfig はルート表の設定
type RoutesConfig struct {
	Profile route.Profile `yaml:"profile"`
}

// AssetsConfig は静的アセットの設定
type AssetsConfig struct {
	Dir string `yaml:"dir"` // 空なら埋め込みアセットを使う
}

// LogConfig はログ出力の設定
type LogConfig struct {
	AccessLog bool `yaml:"access_log"` // アクセスログを出力するか
}

// MetricsConfig はメトリクス公開の設定
type MetricsConfig struct {
	Addr string `yaml:"addr"` // 空なら公開しない
}

// Default はデフォルト設定を返す
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3000,
			Mode:            gin.ReleaseMode,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Routes: RoutesConfig{
			Profile: route.ProfileFull,
		},
	}
}

// Load は設定を読み込む
// デフォルト値、.env、環境変数、CONFIG_FILE の YAML の順に上書きする
func Load() (*Config, error) {
	// .env は任意
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf(".env の読み込みに失敗: %w", err)
	}

	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.MergeFile(path); err != nil {
			return nil, err
		}
	}

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// applyEnv は環境変数で設定を上書きする
func (c *Config) applyEnv() error {
	c.Server.Host = getEnvOrDefault("SERVER_HOST", c.Server.Host)
	c.Server.Mode = getEnvOrDefault("GIN_MODE", c.Server.Mode)
	c.Assets.Dir = getEnvOrDefault("ASSET_DIR", c.Assets.Dir)
	c.Metrics.Addr = getEnvOrDefault("METRICS_ADDR", c.Metrics.Addr)
	c.Routes.Profile = route.Profile(getEnvOrDefault("ROUTE_PROFILE", string(c.Routes.Profile)))

	var err error
	if c.Server.Port, err = getEnvAsIntOrDefault("PORT", c.Server.Port); err != nil {
		return err
	}
	if c.Server.ShutdownTimeout, err = getEnvAsDurationOrDefault("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout); err != nil {
		return err
	}
	if c.Log.AccessLog, err = getEnvAsBoolOrDefault("ACCESS_LOG", c.Log.AccessLog); err != nil {
		return err
	}

	return nil
}

// MergeFile は YAML ファイルの内容で設定を上書きする
// ファイルに書かれていない項目は現在の値を保つ
func (c *Config) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("設定ファイル %s の解析に失敗: %w", path, err)
	}

	return nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// サーバー設定の検証
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("無効なシャットダウンタイムアウト: %s", c.Server.ShutdownTimeout)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return errors.New("タイムアウトに負の値は指定できません")
	}
	switch c.Server.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("無効な gin モード: %q", c.Server.Mode)
	}

	// ルート設定の検証
	if err := c.Routes.Profile.Validate(); err != nil {
		return err
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得する
func getEnvAsIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intVal, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("環境変数 %s が整数ではありません: %w", key, err)
	}
	return intVal, nil
}

// getEnvAsDurationOrDefault は環境変数を時間として取得する
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("環境変数 %s が時間ではありません: %w", key, err)
	}
	return d, nil
}

// getEnvAsBoolOrDefault は環境変数を真偽値として取得する
func getEnvAsBoolOrDefault(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("環境変数 %s が真偽値ではありません: %w", key, err)
	}
	return b, nil
}
