package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tferdous17/rbkv/config"
)

var argConfig string
var currentConfig *config.Config

var rootCmd = &cobra.Command{
	Use:           "rbkv",
	Short:         "An ordered key-value store built on red-black trees",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.New("expected a command")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&argConfig, "config", "c", "", "Configuration file")
	rootCmd.AddCommand(replCmd, serveCmd)
}

func initConfig() error {
	if argConfig == "" {
		currentConfig = config.Default()
		return nil
	}
	cfg, err := config.ReadFile(argConfig)
	if err != nil {
		return err
	}
	currentConfig = cfg
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
