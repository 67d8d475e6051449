// Package main はyipeeサーバーコマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"yipee/internal/config"
	"yipee/internal/route"
	"yipee/internal/server"
)

func main() {
	// コマンドラインオプション
	var (
		host       = flag.String("host", "", "サーバーのホスト (デフォルト: 0.0.0.0)")
		port       = flag.Int("port", -1, "サーバーのポート (デフォルト: 3000)")
		profile    = flag.String("profile", "", "ルートプロファイル full|minimal (デフォルト: full)")
		assetDir   = flag.String("assets", "", "アセットディレクトリ (デフォルト: 埋め込み)")
		configFile = flag.String("config", "", "YAML 設定ファイル")
		help       = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("yipee")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  server [オプション]")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// コマンドラインオプションで設定を上書き
	if *configFile != "" {
		if err := cfg.MergeFile(*configFile); err != nil {
			log.Fatalf("設定の読み込みに失敗しました: %v", err)
		}
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port >= 0 {
		cfg.Server.Port = *port
	}
	if *profile != "" {
		p, err := route.ParseProfile(*profile)
		if err != nil {
			log.Fatalf("ルートプロファイルが不正です: %v", err)
		}
		cfg.Routes.Profile = p
	}
	if *assetDir != "" {
		cfg.Assets.Dir = *assetDir
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("設定の検証に失敗しました: %v", err)
	}

	srv, err := server.Setup(cfg)
	if err != nil {
		log.Fatalf("サーバーの作成に失敗しました: %v", err)
	}

	// サーバーを起動
	log.Printf("yipee サーバーを起動します: %s (profile=%s)", cfg.ServerAddress(), cfg.Routes.Profile)
	if err := srv.Start(context.Background()); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
