package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/newtron-network/fabricgen/pkg/audit"
	"github.com/newtron-network/fabricgen/pkg/cli"
)

var (
	historyDevice   string
	historyOp       string
	historyLast     time.Duration
	historyLimit    int
	historyFailures bool
	historyFormat   string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past builds and validations",
	Long: `Query the audit log of past runs, oldest first. --limit keeps the
most recent runs.

Examples:
  fabricgen history
  fabricgen history --last 24h --failures
  fabricgen history --device DC1-N9K-LEAF01 -o json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := audit.Filter{
			Operation:   historyOp,
			Device:      historyDevice,
			FailureOnly: historyFailures,
			Limit:       historyLimit,
		}
		if historyLast > 0 {
			filter.StartTime = time.Now().Add(-historyLast)
		}
		events, err := audit.Query(filter)
		if err != nil {
			return fmt.Errorf("querying audit log: %w", err)
		}

		if historyFormat != "" && historyFormat != cli.FormatTable {
			return cli.Encode(os.Stdout, historyFormat, events)
		}
		if len(events) == 0 {
			fmt.Println("No matching events.")
			return nil
		}
		t := cli.NewTable("TIME", "USER", "OPERATION", "STORE", "DEVICES", "RESULT", "ERROR")
		for _, e := range events {
			t.Row(historyRow(e)...)
		}
		t.Flush()
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyDevice, "device", "", "Only runs that built this device")
	historyCmd.Flags().StringVar(&historyOp, "operation", "", "Only this operation (build, validate)")
	historyCmd.Flags().DurationVar(&historyLast, "last", 0, "Only runs within this duration (e.g. 24h)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Maximum number of events")
	historyCmd.Flags().BoolVar(&historyFailures, "failures", false, "Only failed runs")
	historyCmd.Flags().StringVarP(&historyFormat, "output", "o", "", "Output format (table, yaml, json)")
}

func historyRow(e *audit.Event) []string {
	where := e.Store
	if e.DryRun && e.Operation == audit.OpBuild {
		where = "(dry-run)"
	}
	return []string{
		e.Timestamp.Format("2006-01-02 15:04:05"),
		e.User,
		e.Operation,
		where,
		strconv.Itoa(len(e.Devices)),
		cli.Status(e.Success),
		e.Error,
	}
}
