package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"yipee/internal/assets"
	"yipee/internal/config"
	"yipee/internal/metrics"
	"yipee/internal/route"
)

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	table      *route.Table
	engine     *gin.Engine
	httpServer *http.Server
	listener   net.Listener

	// メトリクス（無効時は nil）
	metrics         *metrics.Metrics
	metricsServer   *http.Server
	metricsListener net.Listener

	// 固定メッセージと診断行の出力先
	stdout io.Writer
}

// Option はServerの任意設定
type Option func(*Server)

// WithStdout は固定メッセージと診断行の出力先を差し替える
func WithStdout(w io.Writer) Option {
	return func(s *Server) {
		s.stdout = w
	}
}

// Setup は設定からアセットとルート表を読み込み、Serverを作成する
func Setup(cfg *config.Config, opts ...Option) (*Server, error) {
	bundle, err := assets.Open(cfg.Assets.Dir, route.RequiredAssets(cfg.Routes.Profile)...)
	if err != nil {
		return nil, fmt.Errorf("アセットの読み込みに失敗: %w", err)
	}

	table, err := route.Build(cfg.Routes.Profile, bundle)
	if err != nil {
		return nil, fmt.Errorf("ルート表の構築に失敗: %w", err)
	}

	return New(cfg, table, opts...), nil
}

// New は新しいServerインスタンスを作成する
func New(cfg *config.Config, table *route.Table, opts ...Option) *Server {
	gin.SetMode(cfg.Server.Mode)

	engine := gin.New()
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false
	engine.HandleMethodNotAllowed = false

	s := &Server{
		config: cfg,
		table:  table,
		engine: engine,
		stdout: os.Stdout,
		httpServer: &http.Server{
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			ErrorLog:     log.Default(),
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	engine.Use(requestID())
	if cfg.Log.AccessLog {
		engine.Use(accessLog())
	}

	if cfg.Metrics.Addr != "" {
		s.metrics = metrics.New(prometheus.NewRegistry())
		engine.Use(s.metrics.Middleware())

		mux := http.NewServeMux()
		mux.Handle("/metrics", s.metrics.Handler())
		s.metricsServer = &http.Server{
			Handler:     mux,
			ReadTimeout: cfg.Server.ReadTimeout,
			ErrorLog:    log.Default(),
		}
	}

	// ルートを設定
	s.setupRoutes()

	return s
}

// Handler はリクエストを処理する http.Handler を返す
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Listen はソケットをバインドする
func (s *Server) Listen() error {
	addr := s.config.ServerAddress()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%s のバインドに失敗: %w", addr, err)
	}

	if s.metricsServer != nil {
		mln, err := net.Listen("tcp", s.config.Metrics.Addr)
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("メトリクス %s のバインドに失敗: %w", s.config.Metrics.Addr, err)
		}
		s.metricsListener = mln
	}

	s.listener = ln
	return nil
}

// Addr はバインドしたアドレスを返す（Listen 前は空）
// ホストは設定値、ポートは実際にバインドしたものを使う
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	port := s.config.Server.Port
	if tcpAddr, ok := s.listener.Addr().(*net.TCPAddr); ok {
		port = tcpAddr.Port
	}
	return net.JoinHostPort(s.config.Server.Host, strconv.Itoa(port))
}

// MetricsAddr はメトリクス用にバインドしたアドレスを返す（無効時は空）
func (s *Server) MetricsAddr() string {
	if s.metricsListener == nil {
		return ""
	}
	return s.metricsListener.Addr().String()
}

// Start はソケットをバインドしてサーバーを起動する
// シグナルかコンテキストのキャンセルでグレースフルシャットダウンして戻る
func (s *Server) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// Serve はバインド済みのソケットでリクエストを受け付ける
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("ソケットがバインドされていません")
	}

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals()...)
	defer signal.Stop(sigCh)

	serveErrCh := make(chan error, 2)

	// サーバーを別ゴルーチンで起動
	go func() {
		if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- fmt.Errorf("サーバーの実行に失敗: %w", err)
		}
	}()
	if s.metricsServer != nil {
		go func() {
			log.Printf("メトリクスを公開しています: %s/metrics", s.MetricsAddr())
			if err := s.metricsServer.Serve(s.metricsListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErrCh <- fmt.Errorf("メトリクスサーバーの実行に失敗: %w", err)
			}
		}()
	}

	fmt.Fprintf(s.stdout, "Listening on %s\n", s.Addr())

	// 最初に届いたものでシャットダウンする
	select {
	case <-ctx.Done():
		log.Println("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		log.Printf("シグナルを受信しました: %v", sig)
	case err := <-serveErrCh:
		_ = s.Shutdown()
		return err
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
// 新しい接続の受け付けを止め、処理中のリクエストの完了を待つ
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("サーバーのシャットダウンに失敗: %w", err))
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("メトリクスサーバーのシャットダウンに失敗: %w", err))
		}
	}

	fmt.Fprintln(s.stdout, "Shutting down...")
	return errors.Join(errs...)
}
