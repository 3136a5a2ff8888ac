package main

import (
	"fmt"
	"os"
	"path/filepath"

	apppkg "github.com/kk-code-lab/dirpanel/internal/app"
	"github.com/kk-code-lab/dirpanel/internal/config"
	"github.com/kk-code-lab/dirpanel/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// cli carries what PersistentPreRunE resolved to the subcommands.
type cli struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: config.NewViper(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "dirpanel [dir]",
		Short: "Browse a directory in the terminal",
		Long: `dirpanel lists a directory with sortable Name, Size, Created and Modified
columns. Enter folders, step back up to the workspace root, filter by name and
open files in $VISUAL/$EDITOR.

Without a directory argument the panel starts at the workspace root, which
defaults to the current directory.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = c.logger.Sync() },
		RunE:              c.runPanel,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgFile, "config", "", "config file (default $HOME/.config/dirpanel/config.yaml)")
	pf.StringP("workspace", "w", "", "workspace root that bounds going up (default: current directory)")
	pf.Bool("no-workspace", false, "browse without a workspace root")
	pf.String("log-file", "", "write logs to this file")
	pf.String("log-level", "info", "log level: debug, info, warn or error")

	f := root.Flags()
	f.Duration("debounce", config.DefaultSearchDebounce, "delay before a typed filter is applied")
	f.String("editor", "", "editor command (default $VISUAL, then $EDITOR)")

	bindFlags(c.v, pf, map[string]string{
		config.KeyWorkspace:   "workspace",
		config.KeyNoWorkspace: "no-workspace",
		config.KeyLogFile:     "log-file",
		config.KeyLogLevel:    "log-level",
	})
	bindFlags(c.v, f, map[string]string{
		config.KeySearchDebounce: "debounce",
		config.KeyEditor:         "editor",
	})

	root.AddCommand(newListCmd(c))
	return root
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		// Lookup only fails for a typo above.
		_ = v.BindPFlag(key, flags.Lookup(name))
	}
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.v, c.cfgFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logger.With(zap.String("cmd", cmd.Name()))
	return nil
}

// resolveDirs returns the workspace root and the start directory. A
// directory argument becomes the start directory and, unless a workspace
// was configured, the workspace root as well. Without a workspace the
// panel starts in the current directory.
func (c *cli) resolveDirs(args []string) (workspace, start string, err error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", "", fmt.Errorf("cannot determine working directory: %w", err)
	}

	if len(args) > 0 {
		start, err = filepath.Abs(args[0])
		if err != nil {
			return "", "", fmt.Errorf("cannot resolve %s: %w", args[0], err)
		}
		info, err := os.Stat(start)
		if err != nil {
			return "", "", fmt.Errorf("cannot open %s: %w", args[0], err)
		}
		if !info.IsDir() {
			return "", "", fmt.Errorf("%s is not a directory", args[0])
		}
		if c.cfg.Workspace == "" {
			cwd = start
		}
	}

	workspace, err = c.cfg.WorkspaceRoot(cwd)
	if err != nil {
		return "", "", err
	}
	if workspace == "" && start == "" {
		start = cwd
	}
	return workspace, start, nil
}

func (c *cli) runPanel(_ *cobra.Command, args []string) error {
	workspace, start, err := c.resolveDirs(args)
	if err != nil {
		return err
	}

	app, err := apppkg.NewApplication(apppkg.Options{
		WorkspaceRoot:  workspace,
		StartDir:       start,
		Editor:         c.cfg.Editor,
		SearchDebounce: c.cfg.SearchDebounce,
		Logger:         c.logger,
	})
	if err != nil {
		return fmt.Errorf("error initializing application: %w", err)
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
	c.logger.Info("panel closed", zap.String("dir", app.CurrentDir()))
	return nil
}
