package main

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/go-errors/errors"
	"github.com/nfnt/resize"
	"github.com/spf13/cobra"
	_ "golang.org/x/image/bmp"

	"github.com/BeatGlow/flipdot"
	"github.com/BeatGlow/flipdot/draw"
	"github.com/BeatGlow/flipdot/pixel"
)

func init() {
	imageCmd.Flags().Bool("invert", false, "light up the dark pixels")
	rootCmd.AddCommand(imageCmd)
}

var imageCmd = &cobra.Command{
	Use:   "image <file>",
	Short: "show an image, scaled to fit the sign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		invert, _ := cmd.Flags().GetBool("invert")

		f, err := os.Open(args[0])
		if err != nil {
			return errors.WrapPrefix(err, "open image", 0)
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return errors.WrapPrefix(err, "decode "+args[0], 0)
		}

		return withDisplay(func(d *flipdot.Display) error {
			showImage(d, img, invert)
			return d.Flush()
		})
	},
}

// showImage scales img to fit d, centers it and thresholds it onto the display.
func showImage(d *flipdot.Display, img image.Image, invert bool) {
	size := d.Bounds().Size()
	m := resize.Thumbnail(uint(size.X), uint(size.Y), img, resize.Lanczos3)

	var (
		mb     = m.Bounds()
		offset = image.Pt((size.X-mb.Dx())/2, (size.Y-mb.Dy())/2)
	)
	d.Clear()
	draw.Draw(d, mb.Sub(mb.Min).Add(offset), m, mb.Min, draw.Src)
	if invert {
		for y := 0; y < size.Y; y++ {
			for x := 0; x < size.X; x++ {
				d.Set(x, y, pixel.Mono{On: !pixel.IsOn(d.At(x, y))})
			}
		}
	}
}
