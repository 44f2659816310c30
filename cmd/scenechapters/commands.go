package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/five82/scenechapters/internal/config"
	"github.com/five82/scenechapters/internal/errors"
	"github.com/five82/scenechapters/internal/util"
)

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(*cobra.Command, []string) {
			sys := util.GetSystemInfo()
			_, _ = fmt.Fprintf(stdout, "%s version %s (%s, %s)\n",
				appName, version, sys.GoVersion, sys.Platform())
		},
	}
}

func newInitConfigCmd(stdout io.Writer) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init-config [PATH]",
		Short: "Write a config file with the default settings",
		Long: `Write a config file with the default settings.

Without PATH the file is written to ~/.config/scenechapters/config.yaml.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			path, err := initConfigPath(args)
			if err != nil {
				return err
			}

			if _, err := os.Stat(path); err == nil && !force {
				return errors.NewUsageError(fmt.Sprintf("%s already exists (use --force to overwrite)", path))
			}

			if err := config.SaveFile(config.NewConfig("", ""), path); err != nil {
				return errors.NewIOError("cannot write config file", err)
			}
			_, _ = fmt.Fprintf(stdout, "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func initConfigPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.NewConfigError("cannot locate home directory", err)
	}
	return filepath.Join(home, ".config", "scenechapters", "config.yaml"), nil
}
