package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	gif "github.com/orklann/gogifcodec"
)

func newEncodeCmd() *cobra.Command {
	var delayMs int
	var loopCount int
	var comment string
	cmd := &cobra.Command{
		Use:   "encode <frame-dir> <out.gif>",
		Short: "Encode a directory of same-size PNG frames into an animated GIF",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			frameDir, outPath := args[0], args[1]

			entries, err := os.ReadDir(frameDir)
			if err != nil {
				return err
			}
			var names []string
			for _, e := range entries {
				if !e.IsDir() && filepath.Ext(e.Name()) == ".png" {
					names = append(names, e.Name())
				}
			}
			sort.Strings(names)
			if len(names) == 0 {
				return fmt.Errorf("no .png frames found in %s", frameDir)
			}

			sp := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
			sp.Prefix = fmt.Sprintf("Encoding %d frame(s)... ", len(names))
			sp.Start()
			defer sp.Stop()

			var g gif.Gif
			for i, name := range names {
				f, err := os.Open(filepath.Join(frameDir, name))
				if err != nil {
					return err
				}
				src, err := png.Decode(f)
				f.Close()
				if err != nil {
					return err
				}
				b := src.Bounds()
				if i == 0 {
					g.Width, g.Height = b.Dx(), b.Dy()
				} else if b.Dx() != g.Width || b.Dy() != g.Height {
					return fmt.Errorf("frame %s size %dx%d does not match first frame %dx%d", name, b.Dx(), b.Dy(), g.Width, g.Height)
				}

				rgba := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
				draw2(rgba, src)
				g.Frames = append(g.Frames, gif.Frame{Pix: rgba.Pix, DelayMs: delayMs})
			}
			g.LoopCount = loopCount
			if comment != "" {
				g.Comments = []string{comment}
			}

			data, err := gif.Encode(&g)
			if err != nil {
				return err
			}
			sp.Stop()
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %s (%d bytes, %d frame(s))\n", outPath, len(data), len(g.Frames))
			return nil
		},
	}
	cmd.Flags().IntVar(&delayMs, "delay-ms", 100, "per-frame delay in milliseconds")
	cmd.Flags().IntVar(&loopCount, "loop", 0, "loop count (0 = loop forever)")
	cmd.Flags().StringVar(&comment, "comment", "", "optional Comment Extension text")
	return cmd
}

// draw2 copies src into dst pixel-by-pixel, converting to RGBA as needed.
// image/draw would do this in one call; written out plainly here since
// it's the only conversion this command needs.
func draw2(dst *image.RGBA, src image.Image) {
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x-b.Min.X, y-b.Min.Y, src.At(x, y))
		}
	}
}
