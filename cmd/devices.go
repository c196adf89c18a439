// File: cmd/devices.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/droidpilot/internal/adb"
)

// newDevicesCmd creates the `devices` command, which lists connected devices
// without binding a session.
func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "Lists connected devices usable as run targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			devices, err := adb.ListDevices(cmd.Context(), cfg.ADB)
			if err != nil {
				return err
			}
			if len(devices) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no devices connected")
				return nil
			}
			for _, d := range devices {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", d.Serial, d.State)
			}
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newDevicesCmd())
}
