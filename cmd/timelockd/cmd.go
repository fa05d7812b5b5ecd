package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/cmd/timelockd/app"
	"github.com/iov-one/timelock/commands/server"
	"github.com/iov-one/timelock/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagHome     = "home"
	flagLogLevel = "log_level"
	flagBind     = "bind"
	flagDebug    = "debug"
	flagFunds    = "funds"
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "timelockd",
		Short:         "Time-locked wallet node",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".timelock")
	root.PersistentFlags().String(flagHome, defaultHome, "directory to store files under")
	root.PersistentFlags().String(flagLogLevel, "info", "log level: debug, info, error or none")
	if err := viper.BindPFlags(root.PersistentFlags()); err != nil {
		panic(err)
	}

	root.AddCommand(
		initCmd(),
		startCmd(),
		versionCmd(),
		keysCmd(),
	)
	return root
}

func initCmd() *cobra.Command {
	funds := app.DefaultFunds()
	cmd := &cobra.Command{
		Use:   "init [owner] [account...]",
		Short: "Initialize app state in the genesis file",
		Long: `Write the application state into the tendermint genesis file.

The owner deploys the escrow contract for the ticker of --funds. If no owner
is given, a new key is generated and printed. The owner and all listed
accounts start with --funds.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			return server.InitCmd(app.InitOptions(funds), logger, viper.GetString(flagHome), args)
		},
	}
	cmd.Flags().Var(&funds, flagFunds, "initial balance of every genesis account")
	return cmd
}

func startCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the abci server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			return server.StartCmd(app.GenerateApp, logger,
				viper.GetString(flagHome),
				viper.GetString(flagBind),
				viper.GetBool(flagDebug))
		},
	}
	cmd.Flags().String(flagBind, server.DefaultBind, "address server listens on")
	cmd.Flags().Bool(flagDebug, false, "call stack returned on error")
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		panic(err)
	}
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the app version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), timelock.Version())
		},
	}
}

func keysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Generate a new key and print its address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, keys, err := app.GenerateCoinKey()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), keys)
			return nil
		},
	}
}

func newLogger() (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", app.Name)
	opt, err := log.AllowLevel(viper.GetString(flagLogLevel))
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}
