package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/newtron-network/fabricgen/pkg/cli"
	"github.com/newtron-network/fabricgen/pkg/fabric"
	"github.com/newtron-network/fabricgen/pkg/model"
	"github.com/newtron-network/fabricgen/pkg/store"
	"github.com/newtron-network/fabricgen/pkg/util"
)

var (
	showFrom   string
	showFormat string
)

var showCmd = &cobra.Command{
	Use:   "show [device]",
	Short: "Show the device summary or one device model",
	Long: `Without a device, print one summary row per device. With a device, print
its model. Models are built from the vars directory unless --from selects a
store written by build.

Examples:
  fabricgen show
  fabricgen show DC1-N9K-BORDER01
  fabricgen show DC1-N9K-LEAF01 -o yaml
  fabricgen show --from redis`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := showFormat
		if format == "" {
			format = userSettings.Format
		}
		if format == "" {
			format = cli.FormatTable
		}

		devices, err := showDevices(cmd.Context(), args)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			if format != cli.FormatTable {
				return cli.Encode(os.Stdout, format, devices)
			}
			printSummary(devices)
			return nil
		}
		if format != cli.FormatTable {
			return cli.Encode(os.Stdout, format, devices[0])
		}
		printDevice(devices[0])
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&showFrom, "from", "", "Read models from a store (file, redis) instead of building")
	showCmd.Flags().StringVarP(&showFormat, "output", "o", "", "Output format (table, yaml, json)")
}

// showDevices returns the requested device, or every device when args is
// empty.
func showDevices(ctx context.Context, args []string) ([]*model.Device, error) {
	if showFrom != "" {
		st, err := store.Open(showFrom, userSettings)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		names := args
		if len(names) == 0 {
			if names, err = st.List(ctx); err != nil {
				return nil, err
			}
		}
		devices := make([]*model.Device, 0, len(names))
		for _, name := range names {
			d, err := st.Read(ctx, name)
			if err != nil {
				return nil, err
			}
			devices = append(devices, d)
		}
		return devices, nil
	}

	vars, err := loadVars()
	if err != nil {
		return nil, err
	}
	f, err := fabric.Build(ctx, vars)
	if f == nil {
		return nil, err
	}
	if err != nil {
		util.Warnf("build reported errors:\n%v", err)
	}
	if len(args) == 0 {
		return f.Devices(), nil
	}
	d := f.Device(args[0])
	if d == nil {
		return nil, util.NewLookupError("device", varsDir, args[0])
	}
	return []*model.Device{d}, nil
}

func printSummary(devices []*model.Device) {
	t := cli.NewTable("DEVICE", "ROLE", "MGMT_IP", "ASN", "TENANTS", "INTERFACES", "UNUSED")
	for _, d := range devices {
		t.Row(summaryRow(d)...)
	}
	t.Flush()
}

func printDevice(d *model.Device) {
	fmt.Printf("%s  %s  mgmt %s  as %s\n", cli.Bold(d.Name), d.Role, d.MgmtIP, d.ASN)
	if d.AllowedVLANs != "" {
		fmt.Printf("allowed vlans: %s\n", d.AllowedVLANs)
	}

	fmt.Println()
	t := cli.NewTable("LOOPBACK", "IP", "MLAG", "DESCR")
	for _, lp := range d.Loopbacks {
		t.Row(lp.Name, lp.IP, lp.MLAGSecondary, lp.Descr)
	}
	t.Flush()

	fmt.Println()
	t = cli.NewTable("LINK", "DESCR")
	for _, l := range append(d.FabricLinks, d.MLAGLinks...) {
		t.Row(l.Name, l.Descr)
	}
	t.Flush()

	if len(d.Tenants) > 0 {
		fmt.Println()
		t = cli.NewTable("TENANT", "VLAN", "NAME", "VNI", "IP")
		for _, tnt := range d.Tenants {
			for _, v := range tnt.VLANs {
				t.Row(tnt.Name, fmt.Sprint(v.Num), v.Name, fmt.Sprint(v.VNI), v.IPAddr)
			}
		}
		t.Flush()
	}

	if len(d.Interfaces) > 0 {
		fmt.Println()
		t = cli.NewTable("INTERFACE", "TYPE", "IP_VLAN", "PO", "DESCR")
		for _, i := range d.Interfaces {
			t.Row(interfaceRow(i)...)
		}
		t.Flush()
	}

	if r := d.Routing; r != nil {
		fmt.Println()
		t = cli.NewTable("ROUTE-MAP", "SEQ", "ACTION", "MATCH", "SET")
		for _, e := range r.RouteMaps {
			t.Row(routeMapRow(e)...)
		}
		t.Flush()
	}
}
