// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"
	"github.com/urdfar/scenecore/internal/app"
	"github.com/urdfar/scenecore/internal/injector"
	"go.uber.org/zap"
)

// options are the flags shared by all commands. Flags that are set
// override the config file.
type options struct {
	config    string
	logLevel  string
	format    string
	precision int
	simulate  float32
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "scenedump",
		Short:         "Print, convert and watch scene files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.config, "config", "", "TOML config file (default "+app.DefaultConfigFile+")")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&opts.format, "format", "", "dump format: text, yaml or raw")
	pf.IntVar(&opts.precision, "precision", 0, "decimals printed for values")
	pf.Float32Var(&opts.simulate, "simulate", 0, "seconds of physics to run before dumping")

	root.AddCommand(
		&cobra.Command{
			Use:   "dump FILE",
			Short: "Print the world poses and bounding boxes of a scene",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, func(a *app.App) error {
					roots, err := a.Load(args[0])
					if err != nil {
						return err
					}
					defer a.Release(roots)
					if a.Config.Simulate > 0 {
						a.Simulate(roots, a.Config.Simulate)
					}
					return a.Dump(cmd.OutOrStdout(), roots)
				})
			},
		},
		&cobra.Command{
			Use:   "convert IN OUT...",
			Short: "Convert a scene between YAML, glTF and GLB by file extension",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, func(a *app.App) error {
					roots, err := a.Load(args[0])
					if err != nil {
						return err
					}
					defer a.Release(roots)
					if err := a.SaveAll(cmd.Context(), args[1:], roots); err != nil {
						return err
					}
					a.Log.Info("converted", zap.String("from", args[0]), zap.Strings("to", args[1:]))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "watch FILE",
			Short: "Dump a scene each time its file changes",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, func(a *app.App) error {
					return a.Watch(cmd.Context(), args[0], cmd.OutOrStdout())
				})
			},
		},
	)
	return root
}

// configure returns the config file values overridden by the set flags.
func (o *options) configure(cmd *cobra.Command) (*app.Config, error) {
	cfg, err := app.LoadConfig(o.config)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	if flags.Changed("precision") {
		cfg.Precision = o.precision
	}
	if flags.Changed("simulate") {
		cfg.Simulate = o.simulate
	}
	return cfg, cfg.Validate()
}

func withApp(cmd *cobra.Command, opts *options, fun func(a *app.App) error) error {
	cfg, err := opts.configure(cmd)
	if err != nil {
		return err
	}
	a, cleanup, err := injector.InitializeApp(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	defer a.Log.Sync()
	return fun(a)
}
