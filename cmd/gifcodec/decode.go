package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	gif "github.com/orklann/gogifcodec"
)

func newDecodeCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "decode <file.gif>",
		Short: "Decode a GIF into one PNG per composed frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			sp := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
			sp.Prefix = fmt.Sprintf("Decoding %s... ", args[0])
			sp.Start()
			sink := gif.NewLogrusDiagSink(logLevel())
			g, err := gif.Decode(data, sink)
			sp.Stop()
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			for i, f := range g.Frames {
				img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
				copy(img.Pix, f.Pix)
				out, err := os.Create(filepath.Join(outDir, fmt.Sprintf("frame-%04d.png", i)))
				if err != nil {
					return err
				}
				err = png.Encode(out, img)
				out.Close()
				if err != nil {
					return err
				}
			}
			fmt.Printf("wrote %d frame(s) to %s\n", len(g.Frames), outDir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "frames", "output directory for decoded PNG frames")
	return cmd
}
