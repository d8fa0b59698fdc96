package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/newtron-network/fabricgen/pkg/audit"
	"github.com/newtron-network/fabricgen/pkg/fabric"
	"github.com/newtron-network/fabricgen/pkg/store"
	"github.com/newtron-network/fabricgen/pkg/util"
)

var (
	buildStore string
	buildOut   string
	buildDry   bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build every device model and write it to a store",
	Long: `Validate the vars directory, resolve the data model of every device and
write it to the selected store. Nothing is written when validation or any
device fails.

Stores:
  file   - one YAML document per device in the output directory
  redis  - one FABRIC_DEVICE|<device> hash per device

Examples:
  fabricgen build
  fabricgen build --out dc1/host_vars
  fabricgen build --store redis
  fabricgen build --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		start := time.Now()
		event := audit.NewEvent(currentUser(), audit.OpBuild, varsDir).WithDryRun(buildDry)
		defer func() {
			if err != nil {
				event.WithError(err)
			} else {
				event.WithSuccess()
			}
			record(event.WithDuration(time.Since(start)))
		}()

		vars, err := loadVars()
		if err != nil {
			return err
		}
		results := fabric.Validate(vars)
		if err := resultsErr(results); err != nil {
			printResults(results)
			return err
		}

		f, err := fabric.Build(ctx, vars)
		if err != nil {
			return fmt.Errorf("build failed:\n%w", err)
		}
		names := make([]string, 0, len(f.Devices()))
		for _, d := range f.Devices() {
			names = append(names, d.Name)
		}
		event.WithDevices(names)
		if buildDry {
			printSummary(f.Devices())
			return nil
		}

		cfg := *userSettings
		if buildOut != "" {
			cfg.OutputDir = buildOut
		}
		event.WithStore(buildStore, destination(buildStore, &cfg))
		st, err := store.Open(buildStore, &cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Write(ctx, f.Devices()); err != nil {
			return fmt.Errorf("writing %s store: %w", buildStore, err)
		}
		fmt.Printf("Wrote %d devices to %s\n", len(f.Devices()), destination(buildStore, &cfg))
		util.WithComponent("build").Debugf("leaf vlans %s, border vlans %s", f.Tenants.LeafVLANs, f.Tenants.BorderVLANs)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildStore, "store", store.KindFile, "Store to write (file, redis)")
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "Output directory of the file store")
	buildCmd.Flags().BoolVar(&buildDry, "dry-run", false, "Build and print the summary without writing")
}
