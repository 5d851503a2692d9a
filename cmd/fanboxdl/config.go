package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"fanboxdl/pkg/config"
	"fanboxdl/pkg/ui"
)

const exampleConfig = `# fanboxdl configuration file
#
# Every option can also be set with an environment variable prefixed with
# FANBOXDL_, for example FANBOXDL_OUTPUT_DIR or FANBOXDL_LOG_LEVEL.
# The session cookie is never read from here; pass it with --cookie-file.

fanbox:
  # API endpoint and the Origin header it expects
  api_base_url: "https://api.fanbox.cc"
  origin: "https://fanbox.cc"

  # Name of the session cookie
  cookie_name: "FANBOXSESSID"

  # User agent string (optional)
  user_agent: ""

  # Posts requested from the listing. Only the first page is downloaded.
  page_size: 300

  # Per request timeout, e.g. "30s". 0 means no timeout.
  request_timeout: 0s

output:
  # Downloads go to {directory}/{creator}/
  directory: "."

  # Replace files that already exist
  overwrite: false

naming:
  # Number same-day posts with the resetting counter of older releases.
  # It can give two posts the same prefix.
  legacy_numbering: false

logging:
  # Log level: debug, info, warn, error
  level: "warn"

  # Also write logs to this file (optional)
  file: ""

  # Disable colored output
  no_color: false
`

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration files",
		Long: `Manage fanboxdl configuration files.

Configuration is loaded from, in order of priority:
  - Command line flags
  - Environment variables (FANBOXDL_*)
  - .env files
  - Configuration file
  - Default values`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Create an example configuration file",
		Long: `Create an example configuration file with all available options.

The file is created as '.fanboxdl.yaml' in the current directory unless a
path is given as argument or with --config.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configFile
			if len(args) == 1 {
				path = args[0]
			}
			return runConfigInit(cmd, path)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long: `Show the configuration resulting from all sources: flags, environment
variables, configuration file and defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, opts)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validate a configuration file for syntax errors and invalid values.

This command checks:
  - YAML syntax
  - Value ranges
  - Output and log file paths`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigValidate(cmd, opts)
		},
	})

	return cmd
}

func runConfigInit(cmd *cobra.Command, path string) error {
	if path == "" {
		path = ".fanboxdl.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("configuration file already exists: %s", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(exampleConfig), 0644); err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Configuration file created: %s\n", path)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "1. Edit the configuration file")
	fmt.Fprintf(out, "2. Run 'fanboxdl --config %s config validate' to check it\n", path)
	fmt.Fprintf(out, "3. Start downloading with 'fanboxdl --config %s -c <cookie-file> <creator>'\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Load(opts.configFile, opts.flagMap(cmd))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, string(data))

	fmt.Fprintln(out, "\nConfiguration sources (in order of priority):")
	fmt.Fprintln(out, "1. Command line flags")
	fmt.Fprintln(out, "2. Environment variables (FANBOXDL_*)")
	if opts.configFile != "" {
		fmt.Fprintf(out, "3. Configuration file: %s\n", opts.configFile)
	} else {
		fmt.Fprintln(out, "3. Configuration file: (searched in default locations)")
	}
	fmt.Fprintln(out, "4. Default values")
	return nil
}

func runConfigValidate(cmd *cobra.Command, opts *rootOptions) error {
	path := opts.configFile
	if path == "" {
		for _, loc := range config.DefaultLocations() {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
		if path == "" {
			return errors.New("no configuration file found, specify one with --config")
		}
	}

	console := ui.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.noColor)
	console.Info("Validating configuration", path)

	cfg, err := config.Load(path, nil)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	var problems []string
	if info, err := os.Stat(cfg.Output.Directory); err == nil && !info.IsDir() {
		problems = append(problems, fmt.Sprintf("output directory %s is not a directory", cfg.Output.Directory))
	}
	if cfg.Logging.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0755); err != nil {
			problems = append(problems, fmt.Sprintf("cannot create log directory: %v", err))
		}
	}
	if len(problems) > 0 {
		for _, p := range problems {
			console.Warning("%s", p)
		}
		return fmt.Errorf("configuration %s has %d problem(s)", path, len(problems))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration is valid")
	fmt.Fprintln(out, "\nConfiguration summary:")
	fmt.Fprintf(out, "  Output directory: %s\n", cfg.Output.Directory)
	fmt.Fprintf(out, "  Overwrite: %t\n", cfg.Output.Overwrite)
	fmt.Fprintf(out, "  Page size: %d\n", cfg.Fanbox.PageSize)
	fmt.Fprintf(out, "  Legacy numbering: %t\n", cfg.Naming.LegacyNumbering)
	fmt.Fprintf(out, "  Log level: %s\n", cfg.Logging.Level)
	return nil
}
