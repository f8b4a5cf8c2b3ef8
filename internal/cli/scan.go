package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/cuboard"
	"github.com/SeamusWaldron/cuboard/internal/config"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List GAN cubes in range",
	Long:  `Scan for advertising GAN cubes and print their address, signal strength and whether they advertise the identifier needed to decrypt their frames.`,
	RunE:  runScan,
}

var addressFlag string

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.PersistentFlags().StringVar(&addressFlag, "address", "", "Connect to the cube with this address")
}

func deviceOptions() []cuboard.Option {
	return []cuboard.Option{
		cuboard.WithLogger(logger),
		cuboard.WithScanTimeout(conf.Device.ScanTimeout),
		cuboard.WithNamePrefix(conf.Device.NamePrefix),
	}
}

func sessionOptions() ([]cuboard.Option, error) {
	km, err := conf.Keymap()
	if err != nil {
		return nil, err
	}
	frame, err := conf.FrameSymmetry()
	if err != nil {
		return nil, err
	}
	return []cuboard.Option{
		cuboard.WithLogger(logger),
		cuboard.WithKeymap(km),
		cuboard.WithFrame(frame),
	}, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(os.Stderr, "Scanning for GAN cubes...")

	devices, err := cuboard.Scan(cmd.Context(), deviceOptions()...)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	if len(devices) == 0 {
		fmt.Println("No cubes found. Turn a face to wake the cube and try again.")
		return nil
	}

	fmt.Printf("%-20s %-20s %6s  %s\n", "NAME", "ADDRESS", "RSSI", "IDENTIFIER")
	for _, d := range devices {
		id := "missing"
		if ident := d.Identifier(); ident != nil {
			id = fmt.Sprintf("% x", ident)
		}
		fmt.Printf("%-20s %-20s %6d  %s\n", d.Name, d.Address, d.RSSI, id)
	}
	return nil
}

// preferredAddress picks the device to connect to: the --address flag,
// then the configured address, then the last device connected to.
func preferredAddress(flag string, c *config.Config, state *config.StateFile) string {
	switch {
	case flag != "":
		return flag
	case c.Device.Address != "":
		return c.Device.Address
	case state != nil:
		return state.LastDeviceAddress()
	}
	return ""
}

// connectCube connects to the preferred cube, falling back to any cube in
// range when the preferred one is not found, and remembers the device.
func connectCube(ctx context.Context) (*cuboard.GanCube, error) {
	state, err := config.NewDefaultStateFile()
	if err != nil {
		logger.Warn("state file unavailable", zap.Error(err))
		state = nil
	}

	opts := deviceOptions()
	addr := preferredAddress(addressFlag, conf, state)

	fmt.Fprintln(os.Stderr, "Scanning for GAN cubes...")
	var gan *cuboard.GanCube
	if addr != "" {
		gan, err = cuboard.ConnectFirst(ctx, append(opts, cuboard.WithAddress(addr))...)
		if errors.Is(err, cuboard.ErrDeviceNotFound) && addressFlag == "" {
			logger.Info("preferred cube not found, trying any cube", zap.String("address", addr))
			gan, err = cuboard.ConnectFirst(ctx, opts...)
		}
	} else {
		gan, err = cuboard.ConnectFirst(ctx, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	dev := gan.Device()
	fmt.Fprintf(os.Stderr, "Connected to %s (%s)\n", dev.Name, dev.Address)
	if state != nil && !strings.EqualFold(state.LastDeviceAddress(), dev.Address) {
		if err := state.SetLastDevice(dev.Address, dev.Name); err != nil {
			logger.Warn("failed to save last device", zap.Error(err))
		}
	}
	return gan, nil
}
