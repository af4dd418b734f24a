package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/knights-tour/api"
	"github.com/wricardo/knights-tour/game/config"
	"github.com/wricardo/knights-tour/game/service"
	"github.com/wricardo/knights-tour/game/session"
	"github.com/wricardo/knights-tour/transport/mcp"
	"github.com/wricardo/knights-tour/transport/websocket"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

const (
	cleanupInterval = time.Hour
	sessionMaxAge   = 24 * time.Hour
)

// initializeServices wires the session and config managers into the game
// service and starts the cleanup and SIGHUP reload routines, which stop with
// ctx. An empty defaultConfig keeps the manager's own default.
func initializeServices(ctx context.Context, configDir, defaultConfig string) (service.GameService, *session.Manager, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	if defaultConfig != "" {
		if err := configManager.SetDefault(defaultConfig); err != nil {
			return nil, nil, fmt.Errorf("default config %q: %w", defaultConfig, err)
		}
	}
	log.Printf("Using configurations from %s (default: %s)", configDir, configManager.GetDefault().Name)

	sessionManager := session.NewManager()
	gameService := service.NewGameService(sessionManager, configManager)

	go sessionCleanupRoutine(ctx, sessionManager, cleanupInterval, sessionMaxAge)

	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)
	go func() {
		configReloadRoutine(ctx, configManager, defaultConfig, reload)
		signal.Stop(reload)
	}()

	return gameService, sessionManager, nil
}

// configReloadRoutine rereads the config directory each time reload fires.
// Running sessions keep the config they started with.
func configReloadRoutine(ctx context.Context, manager *config.Manager, defaultConfig string, reload <-chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-reload:
			if err := reloadConfigs(manager, defaultConfig); err != nil {
				log.Printf("Config reload failed: %v", err)
				continue
			}
			log.Printf("Reloaded configurations (default: %s)", manager.GetDefault().Name)
		}
	}
}

func reloadConfigs(manager *config.Manager, defaultConfig string) error {
	if err := manager.RefreshCache(); err != nil {
		return err
	}
	if defaultConfig != "" {
		return manager.SetDefault(defaultConfig)
	}
	return nil
}

// sessionCleanupRoutine removes sessions that have not been accessed within maxAge
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(maxAge); removed > 0 {
				log.Printf("Cleaned up %d expired sessions", removed)
			}
		}
	}
}

// newRootHandler serves the API at / and the MCP JSON-RPC endpoint at /mcp
func newRootHandler(apiServer http.Handler, mcpClient *mcp.Client) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", apiServer)

	mux.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)
		if response == nil {
			// notifications get no reply
			w.WriteHeader(http.StatusAccepted)
			return
		}

		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
	})

	return mux
}

// runHTTPServer serves the REST API, WebSocket hub and /mcp until ctx is
// cancelled. With ngrok enabled the same handler is also served on a tunnel.
func runHTTPServer(ctx context.Context, s settings, gameService service.GameService) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	apiServer := api.NewServer(gameService, hub, api.WithStaticDir(s.staticDir))

	addr := s.addr()
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))
	handler := newRootHandler(apiServer, mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- fmt.Errorf("HTTP server failed: %w", err)
			cancel()
		}
	}()

	if s.ngrok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			serveNgrok(ctx, s, handler)
		}()
	}

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")

	select {
	case err := <-serveErr:
		return err
	default:
		return nil
	}
}

// serveNgrok exposes handler on a public ngrok endpoint until ctx is done
func serveNgrok(ctx context.Context, s settings, handler http.Handler) {
	if s.ngrokAuth == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if s.ngrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(s.ngrokDomain))
		log.Printf("Using custom ngrok domain: %s", s.ngrokDomain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(s.ngrokAuth))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}

	ngrokURL := tun.URL()
	log.Printf("🚀 Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)
	log.Printf("  Game UI (ngrok): %s/", ngrokURL)

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	if err := http.Serve(tun, handler); err != nil && ctx.Err() == nil {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// apiAvailable reports whether a game API already answers at baseURL
func apiAvailable(ctx context.Context, baseURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// startInternalAPI serves the API on a random loopback port and returns its base URL
func startInternalAPI(ctx context.Context, gameService service.GameService) (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("failed to get available port: %w", err)
	}

	hub := websocket.NewHub()
	go hub.Run(ctx)

	httpServer := &http.Server{Handler: api.NewServer(gameService, hub, api.WithStaticDir(""))}
	go func() {
		if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Internal HTTP server error: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		httpServer.Close()
	}()

	baseURL := fmt.Sprintf("http://%s", listener.Addr().String())
	log.Printf("Started internal HTTP server on %s for MCP stdio", baseURL)
	return baseURL, nil
}

// runStdioMCP serves MCP over stdio. It reuses an API already running on the
// configured address and otherwise starts an internal one.
func runStdioMCP(ctx context.Context, s settings, gameService service.GameService) error {
	baseURL := fmt.Sprintf("http://%s", s.addr())
	log.Printf("Checking for external API server at %s...", baseURL)

	if apiAvailable(ctx, baseURL) {
		log.Printf("External API server found at %s, using it for MCP", baseURL)
	} else {
		log.Printf("No external API server found, starting internal HTTP server")
		var err error
		if baseURL, err = startInternalAPI(ctx, gameService); err != nil {
			return err
		}
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Println("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
