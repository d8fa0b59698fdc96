package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newtron-network/fabricgen/pkg/fabric"
	"github.com/newtron-network/fabricgen/pkg/lab"
	"github.com/newtron-network/fabricgen/pkg/util"
)

var (
	labName   string
	labDir    string
	labImages []string
)

var labCmd = &cobra.Command{
	Use:   "lab",
	Short: "Export the fabric as a containerlab topology",
	Long: `Build the fabric and write a containerlab topology with one node per
device and one link per physical uplink or MLAG peer-link member.

The node kind follows the device OS (nxos -> cisco_n9kv, eos -> ceos).
Use --image to override the image of an OS.

Examples:
  fabricgen lab
  fabricgen lab --name dc1 --dir labs
  fabricgen lab --image nxos=vrnetlab/vr-n9kv:10.3.2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		platforms, err := parseImages(labImages)
		if err != nil {
			return err
		}
		vars, err := loadVars()
		if err != nil {
			return err
		}
		f, err := fabric.Build(ctx, vars)
		if f == nil {
			return err
		}
		if err != nil {
			util.Warnf("some devices failed to build, links are still exported:\n%v", err)
		}

		topo, err := lab.Generate(f.Devices(), lab.Options{
			Name:      labName,
			MgmtNet:   vars.Base.Addr.MgmtNet,
			Naming:    vars.Fabric.Adv.BaseIntf,
			Platforms: platforms,
		})
		if err != nil {
			return err
		}
		path, err := lab.Write(topo, labDir)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %d nodes and %d links to %s\n", len(topo.Topology.Nodes), len(topo.Topology.Links), path)
		return nil
	},
}

// parseImages turns os=image flags into platform overrides. The kind of a
// known OS is kept; an unknown OS is rejected.
func parseImages(flags []string) (map[string]lab.Platform, error) {
	out := map[string]lab.Platform{}
	for _, f := range flags {
		deviceOS, image, ok := strings.Cut(f, "=")
		if !ok || image == "" {
			return nil, fmt.Errorf("--image %q: want <os>=<image>", f)
		}
		p, known := lab.DefaultPlatforms[deviceOS]
		if !known {
			return nil, fmt.Errorf("--image %q: unknown os %q", f, deviceOS)
		}
		p.Image = image
		out[deviceOS] = p
	}
	return out, nil
}

func init() {
	labCmd.Flags().StringVar(&labName, "name", "fabric", "Lab name")
	labCmd.Flags().StringVar(&labDir, "dir", ".", "Directory for <name>.clab.yml")
	labCmd.Flags().StringArrayVar(&labImages, "image", nil, "Image override per OS (<os>=<image>, repeatable)")
}
