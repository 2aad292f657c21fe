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
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/jt05610/petrisym/amqp"
	"github.com/jt05610/petrisym/amqp/client"
	"github.com/spf13/cobra"
)

var (
	marking map[string]int
	timeout time.Duration
)

// submitCmd represents the submit command
var submitCmd = &cobra.Command{
	Use:   "submit FILE FORMULA",
	Short: "Ask a worker to check a formula",
	Long: `Send the net of a petri file and a formula to a worker started with serve and
print its response. With --marking the worker reports whether that marking
satisfies the formula.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		bytes, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		conn, err := amqp.Dial(environ)
		if err != nil {
			return err
		}
		defer func() {
			_ = conn.Close()
		}()
		c, err := client.New(conn, environ.Exchange, logger)
		if err != nil {
			return err
		}
		req := &amqp.Request{
			Net:        string(bytes),
			Formula:    args[1],
			Marking:    marking,
			Canonicity: environ.Canonicity.String(),
			Saturated:  &environ.Saturated,
			Simplify:   &environ.Simplify,
			Reduce:     reduce,
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		res, err := c.Call(ctx, req)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
		if res.Error != "" {
			return errors.New(res.Error)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().StringToIntVarP(&marking, "marking", "m", nil, "marking to check, as place=tokens pairs")
	submitCmd.Flags().DurationVarP(&timeout, "timeout", "t", time.Minute, "how long to wait for the response")
	submitCmd.Flags().BoolVarP(&reduce, "reduce", "r", false, "reduce the formula before checking it")
}
