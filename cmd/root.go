package cmd

import (
	"errors"
	"fmt"
	"os"

	"ccs/config"
	"ccs/config/models"
	syncpkg "ccs/config/sync"
	"ccs/internal/logging"
	"ccs/internal/shell"
	"ccs/internal/tui"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// version can be overridden at build time with -ldflags "-X ccs/cmd.version=..."
var version = "0.1.0"

// Host hooks, replaced in tests
var (
	detectPlatform = shell.Detect
	lookupEnv      = os.LookupEnv
	runPicker      = tui.Run
)

type rootOptions struct {
	init bool
	sync bool
	pick bool
}

// NewRootCmd builds the ccs command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ccs [alias]",
		Short: "Switch Claude Code between API profiles",
		Long: `Switch Claude Code between API profiles stored in ~/claude_code_switch.json

Without arguments the saved profiles are listed with masked keys. With an alias,
the commands that export ANTHROPIC_AUTH_TOKEN, ANTHROPIC_API_KEY and
ANTHROPIC_BASE_URL for that profile are printed for your shell:

  ccs --init      create the config file with sample profiles
  ccs             list profiles
  ccs mirror1     print the export commands for the "mirror1" profile`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	flags := cmd.Flags()
	flags.BoolVarP(&opts.init, "init", "i", false, "Create or overwrite the config file with sample profiles")
	flags.BoolVarP(&opts.sync, "sync", "s", false, "Also write the selected profile into ~/.claude/settings.json")
	flags.BoolVarP(&opts.pick, "pick", "p", false, "Choose a profile interactively when no alias is given")

	return cmd
}

// Execute executes the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func run(cmd *cobra.Command, opts *rootOptions, args []string) error {
	out := shell.NewEmitter(cmd.OutOrStdout())
	errOut := shell.NewEmitter(cmd.ErrOrStderr())

	debug, _ := lookupEnv(logging.DebugEnv)
	logger := logging.New(cmd.ErrOrStderr(), debug != "")

	configPath, err := config.Locate()
	if err != nil {
		return err
	}
	logger.Debug("resolved config path", "path", configPath)

	if opts.init {
		if err := config.Initialize(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		out.Success(fmt.Sprintf("Created config file: %s", configPath))
		return nil
	}

	profiles, err := config.Load(configPath)
	var parseErr *config.ParseError
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		errOut.Error(fmt.Sprintf("Error: config file %s does not exist", configPath))
		errOut.Warning("Hint: run 'ccs -i' or 'ccs --init' to create it")
		return nil
	case errors.As(err, &parseErr):
		errOut.Error("Error: config file format is invalid")
		errOut.Warning(parseErr.Error())
		return nil
	case err != nil:
		return err
	}
	logger.Debug("loaded profiles", "count", len(profiles))

	token := shell.CurrentAuthToken(lookupEnv)

	if len(args) == 0 {
		if !opts.pick {
			return out.ListProfiles(profiles, token)
		}

		chosen, err := runPicker(profiles, token)
		switch {
		case errors.Is(err, tui.ErrNotTerminal):
			errOut.Warning("Interactive selection needs a terminal, listing profiles instead")
			return out.ListProfiles(profiles, token)
		case err != nil:
			return err
		case chosen == nil:
			return nil
		}
		return activate(out, errOut, logger, *chosen, opts.sync)
	}

	alias := args[0]
	profile, ok := config.FindByAlias(profiles, alias)
	if !ok {
		errOut.Error(fmt.Sprintf("Error: no profile with alias '%s'", alias))
		errOut.Warning("Available aliases:")
		for _, a := range config.Aliases(profiles) {
			errOut.Info("  - " + a)
		}
		return nil
	}

	return activate(out, errOut, logger, profile, opts.sync)
}

// activate prints the export commands for p and, when requested, syncs p
// into the Claude Code settings file.
func activate(out, errOut *shell.Emitter, logger *log.Logger, p models.Profile, sync bool) error {
	plat := detectPlatform()
	logger.Debug("detected platform", "family", plat.Family, "name", plat.Name)

	out.Info(fmt.Sprintf("Switching to: %s", p.Name))
	if err := out.EmitActivation(p, plat); err != nil {
		errOut.Error(fmt.Sprintf("Error while printing environment commands: %v", err))
		return nil
	}

	if !sync {
		return nil
	}

	settingsPath, err := syncpkg.ClaudeSettingsPath()
	if err != nil {
		return err
	}
	logger.Debug("syncing Claude settings", "path", settingsPath)

	if err := syncpkg.SyncClaudeSettings(settingsPath, p); err != nil {
		return fmt.Errorf("failed to sync Claude settings: %w", err)
	}
	out.Success(fmt.Sprintf("Synced profile '%s' to %s", p.Alias, settingsPath))
	return nil
}
