package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"yipee/internal/route"
)

// clearEnv は設定に関わる環境変数を空にする
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_HOST", "PORT", "GIN_MODE", "ROUTE_PROFILE", "ASSET_DIR",
		"METRICS_ADDR", "ACCESS_LOG", "SHUTDOWN_TIMEOUT", "CONFIG_FILE",
	} {
		t.Setenv(key, "")
	}
}

// TestConfigLoad は設定の読み込みをテストする
func TestConfigLoad(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	if cfg.ServerAddress() != "0.0.0.0:3000" {
		t.Errorf("デフォルトアドレスが一致しません: got %s", cfg.ServerAddress())
	}
	if cfg.Routes.Profile != route.ProfileFull {
		t.Errorf("デフォルトプロファイルが一致しません: got %s", cfg.Routes.Profile)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("シャットダウンタイムアウトが一致しません: got %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Assets.Dir != "" {
		t.Errorf("デフォルトでは埋め込みアセットを使うべきです: got %q", cfg.Assets.Dir)
	}
	if cfg.Metrics.Addr != "" || cfg.Log.AccessLog {
		t.Error("メトリクスとアクセスログはデフォルトで無効であるべきです")
	}
}

// TestEnvironmentVariables は環境変数の処理をテストする
func TestEnvironmentVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("PORT", "9999")
	t.Setenv("ROUTE_PROFILE", "minimal")
	t.Setenv("ASSET_DIR", "/srv/html")
	t.Setenv("METRICS_ADDR", "127.0.0.1:9090")
	t.Setenv("ACCESS_LOG", "true")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	if cfg.ServerAddress() != "127.0.0.1:9999" {
		t.Errorf("環境変数のアドレスが反映されていません: got %s", cfg.ServerAddress())
	}
	if cfg.Routes.Profile != route.ProfileMinimal {
		t.Errorf("環境変数のプロファイルが反映されていません: got %s", cfg.Routes.Profile)
	}
	if cfg.Assets.Dir != "/srv/html" {
		t.Errorf("環境変数のアセットディレクトリが反映されていません: got %s", cfg.Assets.Dir)
	}
	if cfg.Metrics.Addr != "127.0.0.1:9090" {
		t.Errorf("環境変数のメトリクスアドレスが反映されていません: got %s", cfg.Metrics.Addr)
	}
	if !cfg.Log.AccessLog {
		t.Error("環境変数のアクセスログ設定が反映されていません")
	}
	if cfg.Server.ShutdownTimeout != 2*time.Second {
		t.Errorf("環境変数のタイムアウトが反映されていません: got %s", cfg.Server.ShutdownTimeout)
	}
}

func TestEnvironmentVariables_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"ポートが数値でない", "PORT", "abc"},
		{"ポートが範囲外", "PORT", "70000"},
		{"タイムアウトが不正", "SHUTDOWN_TIMEOUT", "soon"},
		{"真偽値が不正", "ACCESS_LOG", "maybe"},
		{"プロファイルが不明", "ROUTE_PROFILE", "extended"},
		{"gin モードが不明", "GIN_MODE", "fast"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Errorf("%s=%s でエラーが期待されました", tc.key, tc.value)
			}
		})
	}
}

func TestConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "4000")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  host: 127.0.0.1
  shutdown_timeout: 1500ms
routes:
  profile: minimal
log:
  access_log: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// ファイルに書かれていないポートは環境変数の値を保つ
	if cfg.ServerAddress() != "127.0.0.1:4000" {
		t.Errorf("アドレスが一致しません: got %s", cfg.ServerAddress())
	}
	if cfg.Server.ShutdownTimeout != 1500*time.Millisecond {
		t.Errorf("タイムアウトが一致しません: got %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Routes.Profile != route.ProfileMinimal {
		t.Errorf("プロファイルが一致しません: got %s", cfg.Routes.Profile)
	}
	if !cfg.Log.AccessLog {
		t.Error("アクセスログ設定が反映されていません")
	}
}

func TestConfigFile_Errors(t *testing.T) {
	cfg := Default()
	if err := cfg.MergeFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("存在しないファイルでエラーが期待されました")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := cfg.MergeFile(path); err == nil {
		t.Error("壊れたYAMLでエラーが期待されました")
	}
}

// TestConfigValidation は設定の検証をテストする
func TestConfigValidation(t *testing.T) {
	testCases := []struct {
		name      string
		modify    func(c *Config)
		expectErr bool
	}{
		{"正常な設定", func(c *Config) {}, false},
		{"空きポート", func(c *Config) { c.Server.Port = 0 }, false},
		{"無効なポート番号", func(c *Config) { c.Server.Port = 99999 }, true},
		{"負のポート番号", func(c *Config) { c.Server.Port = -1 }, true},
		{"シャットダウンタイムアウトなし", func(c *Config) { c.Server.ShutdownTimeout = 0 }, true},
		{"負の読み込みタイムアウト", func(c *Config) { c.Server.ReadTimeout = -time.Second }, true},
		{"不明なプロファイル", func(c *Config) { c.Routes.Profile = "bogus" }, true},
		{"不明なモード", func(c *Config) { c.Server.Mode = "" }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)

			err := cfg.Validate()
			if tc.expectErr && err == nil {
				t.Error("エラーが期待されましたが、エラーが発生しませんでした")
			}
			if !tc.expectErr && err != nil {
				t.Errorf("予期しないエラーが発生しました: %v", err)
			}
		})
	}
}

// TestServerAddress はサーバーアドレスの生成をテストする
func TestServerAddress(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			Host: "192.168.1.100",
			Port: 9090,
		},
	}

	expected := "192.168.1.100:9090"
	actual := cfg.ServerAddress()

	if actual != expected {
		t.Errorf("サーバーアドレスが一致しません: got %s, want %s", actual, expected)
	}
}
