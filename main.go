// Command knights-tour runs the Knight's Tour game.
//
// Commands:
//  1. "server" (default) – HTTP server exposing the REST API, WebSocket updates and an /mcp endpoint
//  2. "mcp" – MCP stdio server backed by an existing API or an internal one on a loopback port
//  3. "play" – single-player game in the terminal
//  4. "validate" / "analyze" – checks for configuration files and board sizes
//
// Global flags control host/port, the config and static directories, debug
// logging and optional ngrok tunneling. Every flag can also be set from the
// environment or a .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/knights-tour/game/config"
	"github.com/wricardo/knights-tour/game/engine"
	"github.com/wricardo/knights-tour/transport/terminal"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Knight's Tour Game Server"
)

// settings is the resolved view of the global flags
type settings struct {
	host        string
	port        int
	configDir   string
	defaultCfg  string
	staticDir   string
	debug       bool
	ngrok       bool
	ngrokAuth   string
	ngrokDomain string
}

func (s settings) addr() string {
	return fmt.Sprintf("%s:%d", s.host, s.port)
}

func main() {
	// .env has to be loaded before the flags read their env sources
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "knights-tour",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "HTTP server port", Sources: cli.EnvVars("PORT")},
			&cli.StringFlag{Name: "host", Value: "localhost", Usage: "HTTP server host", Sources: cli.EnvVars("HOST")},
			&cli.StringFlag{Name: "config-dir", Value: "configs", Usage: "Directory containing game configurations", Sources: cli.EnvVars("CONFIG_DIR")},
			&cli.StringFlag{Name: "default-config", Usage: "Configuration used when a session names none", Sources: cli.EnvVars("DEFAULT_CONFIG")},
			&cli.StringFlag{Name: "static-dir", Value: "static", Usage: "Directory served at / (empty disables it)", Sources: cli.EnvVars("STATIC_DIR")},
			&cli.BoolFlag{Name: "debug", Usage: "Enable debug logging", Sources: cli.EnvVars("DEBUG")},
			&cli.BoolFlag{Name: "ngrok", Usage: "Enable ngrok tunnel", Sources: cli.EnvVars("NGROK_ENABLED")},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "Ngrok auth token", Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN")},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "Custom ngrok domain (optional)", Sources: cli.EnvVars("NGROK_DOMAIN")},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetFlags(log.LstdFlags | log.Lshortfile)
			} else {
				log.SetFlags(log.LstdFlags)
			}
			return ctx, nil
		},
		Action: serverAction,
		Commands: []*cli.Command{
			{
				Name:    "server",
				Aliases: []string{"http"},
				Usage:   "Run the HTTP server with API, WebSocket and MCP endpoint",
				Action:  serverAction,
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp", "mcp-stdio"},
				Usage:   "Run an MCP stdio server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					s := settingsFrom(cmd)
					log.Printf("Starting %s v%s (mode: mcp)", AppName, Version)
					gameService, _, err := initializeServices(ctx, s.configDir, s.defaultCfg)
					if err != nil {
						return fmt.Errorf("failed to initialize services: %w", err)
					}
					return runStdioMCP(ctx, s, gameService)
				},
			},
			{
				Name:  "play",
				Usage: "Play in the terminal",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Usage: "Configuration name (default configuration when empty)"},
					&cli.IntFlag{Name: "board-size", Usage: "Override the board size"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					name := cmd.String("config")
					if name == "" {
						name = cmd.String("default-config")
					}
					cfg, err := playConfig(cmd.String("config-dir"), name, int(cmd.Int("board-size")))
					if err != nil {
						return err
					}
					screen, err := tcell.NewScreen()
					if err != nil {
						return fmt.Errorf("failed to open terminal: %w", err)
					}
					return terminal.Run(ctx, screen, cfg)
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate configuration files",
				ArgsUsage: "[dir]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					dir := cmd.String("config-dir")
					if cmd.Args().Len() > 0 {
						dir = cmd.Args().First()
					}
					results, err := config.ValidateDir(dir)
					if err != nil {
						return err
					}
					if !printValidation(os.Stdout, results) {
						return cli.Exit("❌ Some configurations have errors", 1)
					}
					return nil
				},
			},
			{
				Name:      "analyze",
				Usage:     "Print knight mobility for board sizes",
				ArgsUsage: "[sizes...]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					sizes, err := parseSizes(cmd.Args().Slice())
					if err != nil {
						return err
					}
					for _, n := range sizes {
						printAnalysis(os.Stdout, n)
					}
					return nil
				},
			},
			{
				Name:  "version",
				Usage: "Show version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Printf("%s v%s\n", AppName, Version)
					return nil
				},
			},
		},
	}
}

func settingsFrom(cmd *cli.Command) settings {
	return settings{
		host:        cmd.String("host"),
		port:        int(cmd.Int("port")),
		configDir:   cmd.String("config-dir"),
		defaultCfg:  cmd.String("default-config"),
		staticDir:   cmd.String("static-dir"),
		debug:       cmd.Bool("debug"),
		ngrok:       cmd.Bool("ngrok"),
		ngrokAuth:   cmd.String("ngrok-auth"),
		ngrokDomain: cmd.String("ngrok-domain"),
	}
}

func serverAction(ctx context.Context, cmd *cli.Command) error {
	s := settingsFrom(cmd)
	log.Printf("Starting %s v%s (mode: server)", AppName, Version)

	gameService, _, err := initializeServices(ctx, s.configDir, s.defaultCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	return runHTTPServer(ctx, s, gameService)
}

// playConfig loads the named configuration (or the default one) and applies
// an optional board size override
func playConfig(dir, name string, boardSize int) (*engine.GameConfig, error) {
	manager, err := config.NewManager(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	base := manager.GetDefault()
	if name != "" {
		if base, err = manager.LoadConfig(name); err != nil {
			return nil, err
		}
	}

	cfg := *base
	if boardSize != 0 {
		if err := engine.ValidateBoardSize(boardSize); err != nil {
			return nil, err
		}
		cfg.BoardSize = boardSize
	}
	return &cfg, nil
}

// printValidation writes per-file results and reports whether all were valid
func printValidation(w io.Writer, results []config.ValidationResult) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, warning := range result.Warnings {
				fmt.Fprintln(w, "  ⚠️  "+warning)
			}
			for _, info := range result.Info {
				fmt.Fprintln(w, "  ✓ "+info)
			}
			continue
		}

		fmt.Fprintln(w, "❌ INVALID")
		allValid = false
		for _, err := range result.Errors {
			fmt.Fprintln(w, "  ❌ "+err)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	switch {
	case len(results) == 0:
		fmt.Fprintln(w, "No configuration files found")
	case allValid:
		fmt.Fprintln(w, "✅ All configurations are valid!")
	}
	return allValid
}

func parseSizes(args []string) ([]int, error) {
	if len(args) == 0 {
		return []int{5, 6, 7, 8, 9, 10}, nil
	}
	sizes := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid board size %q", arg)
		}
		if err := engine.ValidateBoardSize(n); err != nil {
			return nil, err
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// printAnalysis prints the empty-board move count of every square, row 1 last
func printAnalysis(w io.Writer, n int) {
	fmt.Fprintf(w, "\n=== %dx%d board ===\n", n, n)

	grid := engine.AccessibilityGrid(n)
	for r := n - 1; r >= 0; r-- {
		fmt.Fprintf(w, "%2d ", r+1)
		for _, d := range grid[r] {
			fmt.Fprintf(w, " %d", d)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprint(w, "   ")
	for c := 0; c < n; c++ {
		fmt.Fprintf(w, " %s", engine.ColumnLabel(c))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Squares: %d\n", n*n)
	for degree := 0; degree <= 8; degree++ {
		if count := engine.CountPositionsWithDegree(n, degree); count > 0 {
			fmt.Fprintf(w, "  %d moves: %d squares\n", degree, count)
		}
	}
	if isolated := engine.CountPositionsWithDegree(n, 0); isolated > 0 && n > 1 {
		fmt.Fprintf(w, "⚠️  WARNING: %d squares have no knight moves at all\n", isolated)
	}
	if n >= 2 && n <= 4 {
		fmt.Fprintf(w, "⚠️  WARNING: no complete tour exists on a %dx%d board\n", n, n)
	}
}
