package main

import (
	"image"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/BeatGlow/flipdot"
	"github.com/BeatGlow/flipdot/draw"
	"github.com/BeatGlow/flipdot/pixel"
)

func init() {
	demoCmd.Flags().Duration("delay", time.Second, "delay between frames")
	rootCmd.AddCommand(demoCmd)
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "draw shapes and text",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		delay, err := cmd.Flags().GetDuration("delay")
		if err != nil {
			return err
		}
		return withDisplay(func(d *flipdot.Display) error {
			return demo(d, delay)
		})
	},
}

func demo(d *flipdot.Display, delay time.Duration) error {
	var (
		r      = d.Bounds()
		radius = (r.Dy() - 1) / 2
	)

	// A circle on the left, a triangle pointing down across the whole sign.
	draw.Circle(d, image.Pt(radius, radius), radius, pixel.On)
	draw.FilledTriangle(d, image.Pt(0, 0), image.Pt(r.Dx()/2, r.Dy()-1), image.Pt(r.Dx()-1, 0), pixel.On)

	frames := []func(){
		func() {},
		func() { draw.Text(d, image.Pt(radius*2+2, 0), "Hello, world!", nil, pixel.On) },
		func() { d.Fill(pixel.On) },
		func() { d.Clear() },
	}
	for i, frame := range frames {
		if i > 0 {
			time.Sleep(delay)
		}
		frame()
		if err := d.Flush(); err != nil {
			return err
		}
		slog.Debug("demo: frame shown", "frame", i)
	}
	return nil
}
