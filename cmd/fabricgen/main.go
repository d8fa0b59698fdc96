// Fabricgen - Clos Fabric Data Model Generator
//
// Reads a vars directory describing a leaf/spine/border fabric and its
// services, and resolves the complete data model of every device: names,
// addresses and links, tenants with their VLANs and VNIs, service
// interfaces and port-channels, and routing policy.
//
// Input files (in the vars directory):
//
//	base.yml                 device naming, OS and address pools
//	fabric.yml               fabric size, interface layout and numbering
//	services_tenant.yml      tenants and VLANs
//	services_interface.yml   service interfaces
//	services_routing.yml     BGP, OSPF and static routing policy
//
// Examples:
//
//	fabricgen validate                        # check every input file
//	fabricgen -V dc1/vars build               # write host_vars/<device>.yml
//	fabricgen build --store redis             # write FABRIC_DEVICE|<device> hashes
//	fabricgen show                            # device summary table
//	fabricgen show DC1-N9K-LEAF01 -o yaml     # one device model
//	fabricgen lab --name dc1                  # write dc1.clab.yml
//	fabricgen history --failures              # past builds that failed
package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/newtron-network/fabricgen/pkg/audit"
	"github.com/newtron-network/fabricgen/pkg/settings"
	"github.com/newtron-network/fabricgen/pkg/spec"
	"github.com/newtron-network/fabricgen/pkg/util"
	"github.com/newtron-network/fabricgen/pkg/version"
)

var (
	// Global option flags
	varsDir  string
	verbose  bool
	jsonLogs bool

	// Global state
	userSettings *settings.Settings
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "fabricgen",
	Short:             "Clos Fabric Data Model Generator",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Fabricgen resolves the per-device data model of a leaf/spine/border
fabric from a vars directory.

  fabricgen [-V <vars>] <command> [args]`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Set log level: quiet by default, verbose on -v
		if verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("warn")
		}
		if jsonLogs {
			util.SetJSONFormat()
		}

		var err error
		userSettings, err = settings.Load()
		if err != nil {
			util.Warnf("Could not load settings: %v", err)
			userSettings = &settings.Settings{}
		}
		if varsDir == "" {
			varsDir = userSettings.GetVarsDir()
		}

		auditLogger, err := audit.NewFileLogger(auditPath(), audit.RotationConfig{
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxBackups: 10,
		})
		if err != nil {
			util.Warnf("Could not initialize audit logging: %v", err)
		} else {
			audit.SetDefaultLogger(auditLogger)
		}
		return nil
	},
}

// auditPath places the audit log next to the settings file.
func auditPath() string {
	return filepath.Join(filepath.Dir(settings.DefaultSettingsPath()), "audit.log")
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

// record logs event to the audit log, warning on failure.
func record(event *audit.Event) {
	if err := audit.Log(event); err != nil {
		util.Warnf("Could not write audit log: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&varsDir, "vars", "V", "", "Vars directory (default from settings, else ./vars)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Log in JSON format")

	rootCmd.AddGroup(
		&cobra.Group{ID: "fabric", Title: "Fabric Operations:"},
		&cobra.Group{ID: "meta", Title: "Configuration & Meta:"},
	)

	for _, cmd := range []*cobra.Command{buildCmd, validateCmd, showCmd, labCmd, historyCmd} {
		cmd.GroupID = "fabric"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{settingsCmd, versionCmd} {
		cmd.GroupID = "meta"
		rootCmd.AddCommand(cmd)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fabricgen %s\n", version.Info())
	},
}

// loadVars reads the vars directory selected by -V or the settings.
func loadVars() (*spec.Vars, error) {
	vars, err := spec.NewLoader(varsDir).Load()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", varsDir, err)
	}
	return vars, nil
}
