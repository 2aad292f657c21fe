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
	"time"

	"github.com/jt05610/petrisym/ctl"
	pf "github.com/jt05610/petrisym/petrifile"
	"github.com/spf13/cobra"
)

var (
	queries   []string
	reduce    bool
	printSets bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Check the queries of a petri file",
	Long: `Check the queries of a petri file, and any given with --query, against its net.
For each query the number of satisfying markings within the place capacities is
printed, together with whether the initial marking satisfies it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		f, err := loadFile(ctx, args[0])
		if err != nil {
			return err
		}
		for i, q := range queries {
			f.Queries = append(f.Queries, pf.Query{Name: fmt.Sprintf("query %d", i+1), Formula: q})
		}
		formulas, err := f.Formulas()
		if err != nil {
			return err
		}
		ev := ctl.New(f.Net, options()...)
		capacity := f.Net.Capacity()
		out := cmd.OutOrStdout()
		for i, formula := range formulas {
			if reduce {
				formula = ctl.Reduce(formula)
			}
			start := time.Now()
			set, err := ev.Eval(ctx, formula)
			if err != nil {
				return err
			}
			holds, err := ev.EvalMarking(ctx, formula, f.Net.Initial())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: %s\n", f.Queries[i].Name, formula)
			fmt.Fprintf(out, "  initial marking: %v\n", holds)
			fmt.Fprintf(out, "  markings: %s in %d vectors (%s)\n", set.Count(capacity), set.Len(), time.Since(start).Round(time.Microsecond))
			if printSets {
				fmt.Fprintf(out, "  set: %s\n", set)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringArrayVarP(&queries, "query", "q", nil, "extra formula to check")
	checkCmd.Flags().BoolVarP(&reduce, "reduce", "r", false, "reduce formulas before checking them")
	checkCmd.Flags().BoolVar(&printSets, "sets", false, "print the symbolic set of each query")
}
