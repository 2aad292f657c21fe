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
	"fmt"
	"os"
	"path/filepath"

	"github.com/jt05610/petrisym/graphviz"
	"github.com/spf13/cobra"
)

var (
	outputDir string
	format    string
)

// vizCmd represents the viz command
var vizCmd = &cobra.Command{
	Use:   "viz FILE",
	Short: "Create a graphviz figure from a petri net",
	Long:  `Create a graphviz figure from a petri net. The input file must be a petri file.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		net := f.Net
		gf, err := graphviz.ParseFormat(format)
		if err != nil {
			return err
		}
		cfg := &graphviz.Config{
			Name:    net.Name,
			Font:    graphviz.Helvetica,
			RankDir: graphviz.LeftToRight,
			Format:  gf,
		}
		if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
			return err
		}
		outPath := filepath.Join(outputDir, net.Name+"."+format)
		logger.Info("writing figure")
		df, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer func() {
			_ = df.Close()
		}()
		if err := graphviz.New(cfg).Flush(df, net); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vizCmd)
	vizCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "output directory")
	vizCmd.Flags().StringVarP(&format, "format", "f", "svg", "output format")
}
