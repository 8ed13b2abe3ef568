package main

import (
	"image"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/spf13/cobra"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/BeatGlow/flipdot"
	"github.com/BeatGlow/flipdot/draw"
)

func init() {
	flags := bannerCmd.Flags()
	flags.Float64("size", 0, "font size in points, defaults to the sign height")
	flags.Bool("scroll", false, "scroll text that does not fit the sign")
	flags.Int("step", 4, "pixels per scroll step")
	flags.Duration("delay", 200*time.Millisecond, "delay between scroll steps")
	rootCmd.AddCommand(bannerCmd)
}

var bannerCmd = &cobra.Command{
	Use:   "banner <message>...",
	Short: "show anti-aliased text rendered with the Go font",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		size, _ := flags.GetFloat64("size")
		scroll, _ := flags.GetBool("scroll")
		step, _ := flags.GetInt("step")
		delay, _ := flags.GetDuration("delay")

		msg := strings.Join(args, " ")
		return withDisplay(func(d *flipdot.Display) error {
			if size <= 0 {
				size = float64(d.Bounds().Dy())
			}
			img, err := renderBanner(msg, size, d.Bounds().Size())
			if err != nil {
				return err
			}
			if !scroll || img.Bounds().Dx() <= d.Bounds().Dx() {
				return showBanner(d, img, 0)
			}
			for x := 0; x+d.Bounds().Dx() <= img.Bounds().Dx()+step; x += max(step, 1) {
				if err = showBanner(d, img, x); err != nil {
					return err
				}
				time.Sleep(delay)
			}
			return nil
		})
	},
}

// renderBanner renders msg white on black, at least as large as size.
func renderBanner(msg string, points float64, size image.Point) (image.Image, error) {
	face, err := draw.LoadTrueType(goregular.TTF, points)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	measure := gg.NewContext(1, 1)
	measure.SetFontFace(face)
	w, _ := measure.MeasureString(msg)

	c := gg.NewContext(max(size.X, int(w)+1), size.Y)
	c.SetRGB(0, 0, 0)
	c.Clear()
	c.SetRGB(1, 1, 1)
	c.SetFontFace(face)
	c.DrawStringAnchored(msg, float64(c.Width())/2, float64(size.Y)/2, 0.5, 0.35)
	return c.Image(), nil
}

func showBanner(d *flipdot.Display, img image.Image, x int) error {
	draw.Draw(d, d.Bounds(), img, image.Pt(x, 0), draw.Src)
	return d.Flush()
}
