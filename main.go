package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/gagbook/domain"
	"github.com/CrestNiraj12/gagbook/infra/auth"
	"github.com/CrestNiraj12/gagbook/infra/config"
	"github.com/CrestNiraj12/gagbook/infra/logging"
	"github.com/CrestNiraj12/gagbook/infra/ninegag"
	"github.com/CrestNiraj12/gagbook/infra/opener"
	"github.com/CrestNiraj12/gagbook/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return "Usage: gagbook [--version|-version|-v] [--help|-h]\n\n" +
		"Configuration is read from GAGBOOK_* environment variables or a .env file."
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("gagbook %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
		os.Exit(2)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gagbook: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config from environment.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, closeLog, err := logging.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		return fmt.Errorf("log: %w", err)
	}
	defer func() { _ = closeLog() }()
	defer func() { _ = logger.Sync() }()

	// 2. Build infrastructure.
	httpClient, err := ninegag.NewHTTPClient(ninegag.TransportOptions{
		Fingerprint: cfg.Fingerprint,
		ProxyURL:    cfg.ProxyURL,
		Timeout:     cfg.RequestTimeout,
	})
	if err != nil {
		return fmt.Errorf("transport: %w", err)
	}
	client := ninegag.NewClient(ninegag.Options{
		APIURL:       cfg.APIURL,
		CommentURL:   cfg.CommentURL,
		CommentAppID: cfg.CommentAppID,
		HTTP:         httpClient,
	})
	session := auth.NewGuestSession(cfg.SessionPath, client.GuestLogin, logger.Named("auth"))
	client.UseTokenProvider(session)

	// 3. Build services (concrete types satisfy app.* interfaces).
	gagSvc := ninegag.NewGagService(client)
	commentSvc := ninegag.NewCommentService(client)

	uiState, err := config.LoadUIState(cfg.UIStatePath)
	if err != nil {
		logger.Warn("ignoring ui state", zap.Error(err))
	}

	logger.Info("starting",
		zap.String("api", cfg.APIURL),
		zap.String("section", uiState.Section),
		zap.String("sorting", uiState.Sorting),
		zap.Bool("fingerprint", cfg.Fingerprint),
		zap.Bool("proxy", cfg.ProxyURL != ""),
	)

	// 4. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Gags:         gagSvc,
		Comments:     commentSvc,
		Opener:       opener.NewEnvOpener(),
		Logger:       logger,
		Sections:     domain.DefaultSections(),
		State:        uiState,
		StatePath:    cfg.UIStatePath,
		PageSize:     cfg.PageSize,
		CommentLevel: cfg.CommentLevel,
	})

	// 5. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program failed", zap.Error(err))
		return err
	}
	return nil
}
