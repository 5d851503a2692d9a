package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/spf13/cobra"

	"fanboxdl/pkg/auth"
	"fanboxdl/pkg/config"
	"fanboxdl/pkg/fanbox"
	"fanboxdl/pkg/logger"
	"fanboxdl/pkg/planner"
	"fanboxdl/pkg/scraper"
	"fanboxdl/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// rootOptions holds the values of the root command's flags
type rootOptions struct {
	// Global flags
	configFile string
	logLevel   string
	logFile    string
	noColor    bool
	verbose    bool

	// Download flags
	creator         string
	cookieFile      string
	outputDir       string
	clobber         bool
	dryRun          bool
	legacyNumbering bool
}

// newRootCmd builds the command tree. The root command itself downloads a
// creator's posts.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "fanboxdl [flags] <creator | --creator id>",
		Short: "Download the media of a fanbox creator's posts",
		Long: `fanboxdl downloads the cover image, images and attached files of every
post of a fanbox creator that your session can view.

Files are saved as {output}/{creator}/{date}_{n}.{ext}. Posts published on
the same day are told apart by a numeric suffix. Files that already exist
are left alone unless --clobber is given.

A creator whose id is also a subcommand name, such as "config" or
"version", must be given with --creator.

` + auth.CookieFileGuide,
		Example: `  # Download everything alice posted into ./fanbox
  fanboxdl -c ~/.fanbox-cookie -o ./fanbox alice

  # List what would be downloaded without touching the disk
  fanboxdl -c ~/.fanbox-cookie --dry-run alice

  # Re-download and replace existing files
  fanboxdl -c ~/.fanbox-cookie --clobber alice

  # A creator named like a subcommand
  fanboxdl -c ~/.fanbox-cookie --creator config`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			creator, err := opts.creatorID(args)
			if err != nil {
				return err
			}
			return runDownload(cmd, opts, creator)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (default is .fanboxdl.yaml or ~/.config/fanboxdl/config.yaml)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFile, "log-file", "", "also write logs to this file")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug details")

	f := cmd.Flags()
	f.StringVar(&opts.creator, "creator", "", "creator id, for ids that clash with a subcommand name")
	f.StringVarP(&opts.cookieFile, "cookie-file", "c", "", "file holding the FANBOXSESSID cookie value")
	f.StringVarP(&opts.outputDir, "output", "o", "", "output directory (default \".\")")
	addSwitch(f, &opts.clobber, "clobber", "overwrite existing files", "keep existing files (default)")
	f.BoolVar(&opts.dryRun, "dry-run", false, "print planned downloads without fetching media")
	f.BoolVar(&opts.legacyNumbering, "legacy-numbering", false, "number same-day posts with the resetting counter of older releases")
	_ = cmd.MarkFlagRequired("cookie-file")

	cmd.SetVersionTemplate(`fanboxdl {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the command line and exits 1 on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		// a listing failure has already been reported
		if !errors.Is(err, scraper.ErrListingFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

// creatorID returns the creator given either as the positional argument or
// with --creator. Exactly one of the two is required.
func (o *rootOptions) creatorID(args []string) (string, error) {
	switch {
	case len(args) == 1 && o.creator != "":
		return "", errors.New("give the creator either as argument or with --creator, not both")
	case len(args) == 1:
		return args[0], nil
	case o.creator != "":
		return o.creator, nil
	}
	return "", errors.New("a creator id is required")
}

// flagMap collects the flags given on the command line for
// config.MergeCommandLineFlags
func (o *rootOptions) flagMap(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})
	changed := cmd.Flags().Changed

	if changed("output") {
		flags["output"] = o.outputDir
	}
	if changed("clobber") || changed("no-clobber") {
		flags["clobber"] = o.clobber
	}
	if changed("legacy-numbering") {
		flags["legacy-numbering"] = o.legacyNumbering
	}
	if o.logLevel != "" {
		flags["log-level"] = o.logLevel
	} else if o.verbose {
		flags["log-level"] = "debug"
	}
	if o.logFile != "" {
		flags["log-file"] = o.logFile
	}
	if changed("no-color") {
		flags["no-color"] = o.noColor
	}

	return flags
}

func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile, opts.flagMap(cmd))
	if err != nil {
		return nil, err
	}
	if err := logger.Initialize(&cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

func runDownload(cmd *cobra.Command, opts *rootOptions, creator string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	creator = fanbox.SanitizeCreatorID(creator)
	if creator == "" {
		return errors.New("creator id is empty")
	}

	log := logger.WithFields(map[string]interface{}{
		"creator": creator,
		"version": version,
	})

	session, err := auth.ReadCookieFile(opts.cookieFile)
	if err != nil {
		return err
	}
	log.DebugWithFields("loaded session", map[string]interface{}{
		"source":  session.Source,
		"session": session.String(),
	})

	numbering := planner.NumberingUnique
	if cfg.Naming.LegacyNumbering {
		numbering = planner.NumberingLegacy
	}

	client := fanbox.NewClient(&cfg.Fanbox, session.Value, log)
	console := ui.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Logging.NoColor)

	s := scraper.New(client, console, scraper.Options{
		OutputDir: cfg.Output.Directory,
		Overwrite: cfg.Output.Overwrite,
		DryRun:    opts.dryRun,
		Numbering: numbering,
	}, log)

	summary, err := s.Run(cmd.Context(), creator)
	if err != nil {
		return err
	}

	log.InfoWithFields("run complete", map[string]interface{}{
		"posts":   summary.Posts,
		"skipped": summary.PostsSkipped,
		"media":   summary.Media,
		"written": summary.Written,
		"kept":    summary.Existing,
		"failed":  summary.Failed,
	})
	return nil
}
