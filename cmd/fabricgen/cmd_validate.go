package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/newtron-network/fabricgen/pkg/audit"
	"github.com/newtron-network/fabricgen/pkg/cli"
	"github.com/newtron-network/fabricgen/pkg/fabric"
	"github.com/newtron-network/fabricgen/pkg/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the vars directory",
	Long: `Check every input file of the vars directory and report one result per file.

Examples:
  fabricgen validate
  fabricgen -V dc1/vars validate`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		vars, err := loadVars()
		if err != nil {
			return err
		}
		start := time.Now()
		results := fabric.Validate(vars)
		printResults(results)

		event := audit.NewEvent(currentUser(), audit.OpValidate, varsDir).WithDryRun(true)
		err = resultsErr(results)
		if err != nil {
			event.WithError(err)
		} else {
			event.WithSuccess()
		}
		record(event.WithDuration(time.Since(start)))
		return err
	},
}

func printResults(results []validate.Result) {
	t := cli.NewTable("FILE", "RESULT", "FINDING")
	for _, r := range results {
		if len(r.Findings) == 0 {
			t.Row(r.File, cli.Status(r.Outcome == validate.Pass), "")
			continue
		}
		for i, f := range r.Findings {
			file, status := "", ""
			if i == 0 {
				file, status = r.File, cli.Status(r.Outcome == validate.Pass)
			}
			t.Row(file, status, f)
		}
	}
	t.Flush()
}

func resultsErr(results []validate.Result) error {
	if failed := validate.Failed(results); len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed validation", len(failed), len(results))
	}
	return nil
}
