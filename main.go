package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yeehaw32/tpot-analysis/api"
	"github.com/yeehaw32/tpot-analysis/config"
	"github.com/yeehaw32/tpot-analysis/highlight"
	"github.com/yeehaw32/tpot-analysis/logging"
	"github.com/yeehaw32/tpot-analysis/model"
	"github.com/yeehaw32/tpot-analysis/prefs"
	"github.com/yeehaw32/tpot-analysis/tui"
	"github.com/yeehaw32/tpot-analysis/view"
)

var version = "dev"

type options struct {
	configPath string
	apiURL     string
	date       string
	sensor     string
	logLevel   string
	list       bool
}

func main() {
	args := os.Args[1:]
	sub := ""
	if len(args) > 0 && (args[0] == "check" || args[0] == "version") {
		sub, args = args[0], args[1:]
	}

	if sub == "version" {
		fmt.Println("tpotview", version)
		return
	}

	opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch {
	case sub == "check":
		err = runCheck(cfg)
	case opts.list:
		err = runList(cfg, opts)
	default:
		err = runTUI(cfg, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("tpotview", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", config.DefaultPath(), "path to config file (YAML or JSON)")
	fs.StringVar(&opts.apiURL, "api", "", "analysis API base URL (overrides config and "+config.EnvAPI+")")
	fs.StringVar(&opts.date, "date", time.Now().Format("2006-01-02"), "session date (YYYY-MM-DD)")
	fs.StringVar(&opts.sensor, "sensor", view.FilterAll, "sensor filter")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.BoolVar(&opts.list, "list", false, "print the session list as plain text and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: tpotview [check|version] [flags]\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if _, err := time.Parse("2006-01-02", opts.date); err != nil {
		fmt.Fprintf(fs.Output(), "invalid -date %q: want YYYY-MM-DD\n", opts.date)
		return opts, err
	}
	return opts, nil
}

func runCheck(cfg *config.Config) error {
	logger := logging.NewLogger(cfg.LogLevel, os.Stderr)
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)
	status, err := client.Health(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", cfg.API.BaseURL, status)
	return nil
}

// runList prints the filtered sessions for one date, one per line.
func runList(cfg *config.Config, opts options) error {
	logger := logging.NewLogger(cfg.LogLevel, os.Stderr)
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)
	list, err := client.FetchSessionList(context.Background(), opts.date)
	if err != nil {
		return err
	}
	printList(os.Stdout, list.Sessions, opts.sensor)
	return nil
}

func printList(w io.Writer, sessions []model.SessionSummary, sensor string) {
	visible := view.FilterSessions(sessions, sensor)
	if len(visible) == 0 {
		fmt.Fprintln(w, view.NoSessionsText)
		return
	}
	for _, s := range visible {
		e := view.BuildEntry(s, false)
		fmt.Fprintf(w, "%-9s │ %s │ %s │ %-16s │ risk %-4s │ %s → %s\n",
			e.Sensor, e.Start, e.SessionID, e.Intent, e.Risk, e.SrcIP, e.DestIP)
	}
}

func runTUI(cfg *config.Config, opts options) error {
	logger, closeLog, err := logging.OpenFile(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	store := prefs.NewStore(filepath.Join(config.Dir(), "prefs.yaml"))
	p, err := store.Load()
	if err != nil {
		logger.Warn("load prefs failed", "path", store.Path(), "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := tui.NewModel(tui.Options{
		Context:      ctx,
		Fetcher:      api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger),
		Highlighter:  highlight.NewYAML(cfg.UI.HighlightStyle),
		Prefs:        store,
		Logger:       logger,
		Date:         opts.date,
		SensorFilter: opts.sensor,
		Sensors:      cfg.UI.Sensors,
		Theme:        p.Theme,
		CopyFeedback: cfg.UI.CopyFeedback,
	})

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	logger.Info("starting", "api", cfg.API.BaseURL, "date", opts.date, "sensor", opts.sensor, "version", version)
	if _, err := tea.NewProgram(m, progOpts...).Run(); err != nil {
		return err
	}
	logger.Info("exiting")
	return nil
}
