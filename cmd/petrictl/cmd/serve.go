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
	"os"
	"os/signal"
	"syscall"

	"github.com/jt05610/petrisym/amqp"
	"github.com/jt05610/petrisym/amqp/server"
	"github.com/jt05610/petrisym/couch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer check requests from RabbitMQ",
	Long: `Answer check requests published to the configured exchange. Results are
cached in CouchDB when COUCHDB_HOST is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		worker := &server.Worker{Options: environ.Options(), Logger: logger}
		if uri := environ.Couch.URI(); uri != "" {
			store, err := couch.Open(ctx, uri, environ.Couch.Name, logger)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()
			worker.Cache = store
		}
		conn, err := amqp.Dial(environ)
		if err != nil {
			return err
		}
		defer func() {
			_ = conn.Close()
		}()
		srv, err := server.New(conn, environ, worker, logger)
		if err != nil {
			return err
		}
		logger.Info("serving", zap.String("exchange", environ.Exchange), zap.Bool("cache", worker.Cache != nil))
		err = srv.Listen(ctx)
		if err == nil || ctx.Err() == context.Canceled {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
