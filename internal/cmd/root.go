// Package cmd implements the app-inspector command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ytget/app-inspector/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "app-inspector",
	Short: "Inspect and launch the apps installed on a device",
	Long: `app-inspector lists the apps installed on an Android device, shows the
details of one app (version, system flag, archive checksum) and launches it.

On Android commands run on the device itself. On any other system they
run through adb against the connected device.`,
	SilenceUsage: true,
}

// Execute runs the root command; ctx is cancelled to stop a running command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.config/app-inspector/config.yaml)")
	flags.String("serial", "", "adb device serial")
	flags.String("adb", "", "path to the adb binary (default \"adb\" from PATH; unused on Android)")
	flags.String("metrics-addr", "", "serve Prometheus metrics on this address while the command runs")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("lang", "", "output language (en, ru, pt)")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("device.serial", flags.Lookup("serial"))
	_ = viper.BindPFlag("device.adb_path", flags.Lookup("adb"))
	_ = viper.BindPFlag("metrics.addr", flags.Lookup("metrics-addr"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("ui.language", flags.Lookup("lang"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if err := config.ReadInConfig(viper.GetString("config")); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
