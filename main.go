// Package main はRADIUS二要素認証ゲートウェイのエントリーポイント。
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/oyaguma3/mfa-radius-gateway/internal/auth"
	"github.com/oyaguma3/mfa-radius-gateway/internal/config"
	"github.com/oyaguma3/mfa-radius-gateway/internal/directory"
	"github.com/oyaguma3/mfa-radius-gateway/internal/mfa"
	"github.com/oyaguma3/mfa-radius-gateway/internal/proxy"
	"github.com/oyaguma3/mfa-radius-gateway/internal/server"
	"github.com/oyaguma3/mfa-radius-gateway/internal/session"
	"github.com/oyaguma3/mfa-radius-gateway/internal/store"
)

func main() {
	// 1. 環境変数読み込み
	cfg, err := config.Load()
	if err != nil {
		slog.Error("設定読み込み失敗", "error", err)
		os.Exit(1)
	}

	// 2. ロガー初期化（JSON形式、INFO以上）
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With("app", "mfa-radius-gateway")
	slog.SetDefault(logger)

	slog.Info("mfa-radius-gateway起動開始",
		"listen_addr", cfg.ListenAddr,
		"mfa_api_url", cfg.APIURL,
		"first_factor_source", cfg.FirstFactorSource,
	)

	// 3. Valkeyクライアント初期化
	valkeyClient, err := store.NewValkeyClient(cfg)
	if err != nil {
		slog.Error("Valkey接続失敗",
			"event_id", "VALKEY_CONN_ERR",
			"error", err,
		)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	slog.Info("Valkey接続完了", "addr", cfg.ValkeyAddr())

	// 4. Store/Session層生成
	clientStore := store.NewClientStore(valkeyClient, cfg.DefaultClient())
	userStore := store.NewUserStore(valkeyClient)
	states := session.NewStateStore()
	bypassCache := session.NewBypassCache()

	// 5. ディレクトリ検証器。
	// LDAP設定がある場合はLDAP、なければ内蔵ディレクトリを既定とする。
	var dirVerifier directory.CredentialVerifier
	if cfg.LdapURL != "" {
		dirVerifier = directory.NewLdapVerifier(cfg)
	}
	embeddedVerifier := directory.NewEmbeddedVerifier(userStore)
	membershipVerifier := dirVerifier
	if membershipVerifier == nil {
		membershipVerifier = embeddedVerifier
	}

	// 6. 第一要素プロバイダ
	providers := map[config.AuthSource]auth.FirstFactorProvider{
		config.SourceEmbedded: auth.NewDirectoryProvider(embeddedVerifier, cfg),
		config.SourceRadius:   auth.NewProxyProvider(proxy.NewClient(), membershipVerifier, cfg),
		config.SourceNone:     auth.NewNoneProvider(membershipVerifier, cfg),
	}
	if dirVerifier != nil {
		providers[config.SourceDirectory] = auth.NewDirectoryProvider(dirVerifier, cfg)
	}

	// 7. 二要素認証クライアント
	secondFactor := mfa.NewClient(mfa.NewTransport(cfg), bypassCache, cfg)

	// 8. 認証ルーター
	router := auth.NewRouter(providers, secondFactor, auth.NewRejectingPasswordChanger(cfg), states, cfg)

	// 9. RADIUS Secret解決
	secretSource := server.NewSecretSource(clientStore, cfg.RadiusSecret)

	// 10. RADIUSハンドラ
	handler := server.NewHandler(router, clientStore)

	// 11. UDPサーバー
	srv := server.NewServer(cfg.ListenAddr, handler, secretSource)

	// 12. サーバー起動（goroutine）
	go func() {
		slog.Info("RADIUSサーバー起動", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil {
			slog.Error("サーバーエラー", "error", err)
		}
	}()

	// 13. シグナル待機 → Graceful Shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigCh
	slog.Info("シグナル受信、シャットダウン開始", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Warn("シャットダウンエラー", "error", err)
	}

	slog.Info("mfa-radius-gateway停止完了")
}
