package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/walpsel/walpsel/internal/app"
	"github.com/walpsel/walpsel/internal/engine"
)

const (
	appName        = "walpsel"
	appID          = "dev.walpsel.walpsel"
	appDescription = "Pick a wallpaper from a folder of images and apply it with a configurable command."
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logrus.WithFields(logrus.Fields{
			"app.name": appName,
			"error":    err.Error(),
		}).Fatal("application exited with an error")
	}
}

func newRootCommand() *cobra.Command {
	opts := &app.Options{}

	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         appDescription,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.New(*opts, os.LookupEnv, os.Stderr)
			if err != nil {
				return err
			}
			if code := runGUI(a); code != 0 {
				return fmt.Errorf("gtk application exited with code %d", code)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.SettingsFile, "config", "", "settings file (default $XDG_CONFIG_HOME/walpsel/settings.yaml)")
	flags.StringVar(&opts.Folder, "folder", "", "wallpapers folder, overrides the settings file")
	flags.StringVar(&opts.Command, "command", "", "wallpaper command template, overrides the settings file")
	flags.StringVar(&opts.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newSetCommand(opts), newListCommand(opts))
	return rootCmd
}

func newSetCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "set IMAGE",
		Short: "Apply IMAGE as the wallpaper without opening the picker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(*opts, os.LookupEnv, os.Stderr)
			if err != nil {
				return err
			}

			imagePath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", args[0], err)
			}

			eng := a.NewEngine(engine.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()))
			if err := eng.ChangeWallpaper(cmd.Context(), imagePath); err != nil {
				return err
			}

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Wallpaper set: %s\n", imagePath)
			return nil
		},
	}
}

func newListCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the images the picker would show",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.New(*opts, os.LookupEnv, os.Stderr)
			if err != nil {
				return err
			}

			for _, image := range a.Images() {
				fmt.Fprintln(cmd.OutOrStdout(), image)
			}
			return nil
		},
	}
}

func runGUI(a *app.App) int {
	// the command's output ends up in the log
	stdout := a.Log.WriterLevel(logrus.DebugLevel)
	defer stdout.Close()
	stderr := a.Log.WriterLevel(logrus.WarnLevel)
	defer stderr.Close()
	eng := a.NewEngine(engine.WithOutput(stdout, stderr))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gtkApp := gtk.NewApplication(appID, gio.ApplicationFlagsNone)
	gtkApp.ConnectActivate(func() { activate(ctx, gtkApp, a, eng) })

	// flags were already parsed by cobra
	return gtkApp.Run(os.Args[:1])
}
