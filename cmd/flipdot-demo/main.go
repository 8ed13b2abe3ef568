// Command flipdot-demo draws on flip-dot signs.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/flipdot"
	"github.com/BeatGlow/flipdot/sign"
)

var rootCmd = &cobra.Command{
	Use:          "flipdot-demo",
	Short:        "draw on flip-dot signs",
	Long:         "Draw shapes, text and images on flip-dot signs attached to a serial port, or on a virtual sign.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if viper.GetBool("verbose") {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("port", "p", flipdot.VirtualPort, `serial port, or "virtual"`)
	flags.UintP("address", "a", 3, "sign address")
	flags.StringP("sign", "s", sign.Max3000Side90x7.String(), "sign type")
	flags.Int("baud", flipdot.DefaultSerialConfig.Baud, "serial baud rate")
	flags.Duration("timeout", flipdot.DefaultSerialConfig.ReadTimeout, "response timeout")
	flags.Bool("rs485", false, "enable kernel RS-485 mode on the serial port")
	flags.String("de", "", "RS-485 driver enable GPIO pin")
	flags.BoolP("verbose", "v", false, "log bus traffic and error stacks")

	viper.SetEnvPrefix("FLIPDOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var stack interface{ ErrorStack() string }
		if viper.GetBool("verbose") && errors.As(err, &stack) {
			fmt.Fprintln(os.Stderr, stack.ErrorStack())
		}
		os.Exit(1)
	}
}

// openDisplay opens the display selected by the persistent flags.
func openDisplay() (*flipdot.Display, error) {
	address := viper.GetUint("address")
	if address > math.MaxUint16 {
		return nil, fmt.Errorf("sign address %d out of range (max %d)", address, math.MaxUint16)
	}

	signType, err := sign.ParseSignType(viper.GetString("sign"))
	if err != nil {
		return nil, err
	}

	config := &flipdot.SerialConfig{
		Baud:        viper.GetInt("baud"),
		ReadTimeout: viper.GetDuration("timeout"),
		RS485:       viper.GetBool("rs485"),
		Logger:      slog.Default(),
	}
	if name := viper.GetString("de"); name != "" {
		if _, err = host.Init(); err != nil {
			return nil, err
		}
		if config.DE = gpioreg.ByName(name); config.DE == nil {
			return nil, fmt.Errorf("invalid driver enable pin %q", name)
		}
	}

	bus := flipdot.ParseBusType(viper.GetString("port"))
	d, err := flipdot.OpenWithConfig(bus, sign.Address(address), signType, config)
	if err != nil {
		return nil, err
	}
	slog.Info("opened display", "display", d, "bus", bus)
	return d, nil
}

// withDisplay runs fn on the selected display and closes it afterwards.
func withDisplay(fn func(*flipdot.Display) error) error {
	d, err := openDisplay()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := d.Close(); cerr != nil {
			slog.Warn("close display", "error", cerr)
		}
	}()
	return fn(d)
}
