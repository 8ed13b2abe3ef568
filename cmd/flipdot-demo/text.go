package main

import (
	"image"
	"os"
	"strings"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
	"golang.org/x/image/font"

	"github.com/BeatGlow/flipdot"
	"github.com/BeatGlow/flipdot/draw"
	"github.com/BeatGlow/flipdot/pixel"
)

func init() {
	flags := textCmd.Flags()
	flags.String("font", "", "TrueType font file, the built-in 5x7 font is used if empty")
	flags.Float64("size", 12, "TrueType font size in points")
	flags.Int("x", 0, "left edge of the text")
	flags.Int("y", 0, "top edge of the text")
	flags.Bool("center", false, "center the text horizontally")
	rootCmd.AddCommand(textCmd)
}

var textCmd = &cobra.Command{
	Use:   "text <message>...",
	Short: "show a line of text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		fontFile, _ := flags.GetString("font")
		size, _ := flags.GetFloat64("size")
		x, _ := flags.GetInt("x")
		y, _ := flags.GetInt("y")
		center, _ := flags.GetBool("center")

		var face font.Face
		if fontFile != "" {
			data, err := os.ReadFile(fontFile)
			if err != nil {
				return errors.WrapPrefix(err, "read font", 0)
			}
			if face, err = draw.LoadTrueType(data, size); err != nil {
				return err
			}
		}

		msg := strings.Join(args, " ")
		return withDisplay(func(d *flipdot.Display) error {
			if center {
				x = (d.Bounds().Dx() - draw.MeasureText(msg, face)) / 2
			}
			d.Clear()
			draw.Text(d, image.Pt(x, y), msg, face, pixel.On)
			return d.Flush()
		})
	},
}
