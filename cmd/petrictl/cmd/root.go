/*
Copyright © 2024 Jonathan Taylor <jonrtaylor12@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jt05610/petrisym/ctl"
	"github.com/jt05610/petrisym/env"
	pf "github.com/jt05610/petrisym/petrifile"
	"github.com/jt05610/petrisym/petrifile/v1/yaml"
	"github.com/jt05610/petrisym/symbolic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	envFile    string
	logLevel   string
	canonicity string
	saturated  bool
	simplify   bool

	environ *env.Environment
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "petrictl",
	Short:         "Symbolic CTL model checking of bounded petri nets",
	Long:          `Check CTL formulas against petri nets with capacity-bounded places, locally or through a RabbitMQ worker.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		if envFile != "" {
			files = append(files, envFile)
		}
		var err error
		environ, err = env.Load(files...)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("log-level") {
			environ.LogLevel = logLevel
		}
		if flags.Changed("canonicity") {
			if environ.Canonicity, err = symbolic.ParseCanonicity(canonicity); err != nil {
				return err
			}
		}
		if flags.Changed("saturation") {
			environ.Saturated = saturated
		}
		if flags.Changed("simplify") {
			environ.Simplify = simplify
		}
		level, err := zap.ParseAtomicLevel(environ.LogLevel)
		if err != nil {
			return err
		}
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = level
		logger, err = cfg.Build()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// options configures evaluators from the environment and the flags.
func options() []ctl.Option {
	return append(environ.Options(), ctl.WithLogger(logger))
}

func loadFile(ctx context.Context, path string) (*pf.File, error) {
	df, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = df.Close()
	}()
	return (&yaml.Service{}).Load(ctx, df)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env", "", "env file (default .env)")
	flags.StringVarP(&logLevel, "log-level", "l", "info", "log level")
	flags.StringVarP(&canonicity, "canonicity", "c", "semi", "canonicity of symbolic sets: none, semi or full")
	flags.BoolVar(&saturated, "saturation", true, "saturate fixpoints over increasing capacities")
	flags.BoolVar(&simplify, "simplify", false, "simplify every fixpoint iterate")
}
