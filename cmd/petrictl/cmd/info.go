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

	"github.com/jt05610/petrisym/analysis"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Print structural facts about the net of a petri file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		net := &analysis.Net{Net: f.Net}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "net %s: %d places, %d transitions, %d arcs\n", net.Name, len(net.Places), len(net.Transitions), len(net.Arcs))
		fmt.Fprintf(out, "places: %v\n", net.Places)
		fmt.Fprintf(out, "capacity: %s\n", net.FormatMarking(net.Capacity()))
		fmt.Fprintf(out, "initial: %s\n", net.FormatMarking(net.Initial()))
		fmt.Fprintf(out, "markings within capacity: %s\n", net.StateSpaceSize())
		fmt.Fprintf(out, "conservative: %v\n", net.Conservative())
		fmt.Fprintf(out, "incidence:\n%v\n", mat.Formatted(net.Incidence(), mat.Prefix(""), mat.Squeeze()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
