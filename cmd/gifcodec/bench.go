package main

import (
	"bytes"
	"fmt"
	"image"
	stdgif "image/gif"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"golang.org/x/image/draw"

	gif "github.com/orklann/gogifcodec"
)

// newBenchCmd differentially tests this codec's decoder against the
// standard library's image/gif decoder over a manifest of sample files.
// The manifest is heterogeneous, hand-written JSON (some entries carry
// an expected frame count, some don't) — exactly gjson's sweet spot
// over a struct-tagged unmarshal.
func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench <manifest.json>",
		Short: "Differentially test decode output against image/gif on a sample manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			entries := gjson.ParseBytes(manifest).Array()
			if len(entries) == 0 {
				return fmt.Errorf("manifest %s has no entries", args[0])
			}

			sp := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
			sp.Prefix = fmt.Sprintf("Benchmarking %d sample(s)... ", len(entries))
			sp.Start()
			defer sp.Stop()

			mismatches := 0
			for _, e := range entries {
				path := e.Get("path").String()
				wantFrames := -1
				if e.Get("frames").Exists() {
					wantFrames = int(e.Get("frames").Int())
				}

				data, err := os.ReadFile(path)
				if err != nil {
					sp.Stop()
					return err
				}

				ref, err := stdgif.DecodeAll(bytes.NewReader(data))
				if err != nil {
					sp.Stop()
					return fmt.Errorf("reference decode of %s: %w", path, err)
				}
				ours, err := gif.Decode(data, nil)
				if err != nil {
					sp.Stop()
					return fmt.Errorf("gogifcodec decode of %s: %w", path, err)
				}

				if len(ref.Image) != len(ours.Frames) {
					mismatches++
					fmt.Printf("%s: frame count mismatch: reference=%d ours=%d\n", path, len(ref.Image), len(ours.Frames))
					continue
				}
				if wantFrames >= 0 && wantFrames != len(ours.Frames) {
					mismatches++
					fmt.Printf("%s: manifest expected %d frames, got %d\n", path, wantFrames, len(ours.Frames))
					continue
				}

				diffFound := false
				for i, paletted := range ref.Image {
					refRGBA := rgbaFromPaletted(paletted)
					if !samePixels(refRGBA.Pix, ours.Frames[i].Pix) {
						diffFound = true
						break
					}
				}
				if diffFound {
					mismatches++
					fmt.Printf("%s: pixel mismatch against reference decode\n", path)
				}
			}

			sp.Stop()
			fmt.Printf("%d/%d sample(s) mismatched\n", mismatches, len(entries))
			if mismatches > 0 {
				return fmt.Errorf("%d mismatch(es)", mismatches)
			}
			return nil
		},
	}
	return cmd
}

// rgbaFromPaletted uses golang.org/x/image/draw to convert a reference
// *image.Paletted frame into straight RGBA for byte-level comparison
// against this codec's own output.
func rgbaFromPaletted(p *image.Paletted) *image.RGBA {
	b := p.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), p, b.Min, draw.Src)
	return dst
}

func samePixels(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		// Alpha is the only channel this codec guarantees exactly (0 or
		// 255); RGB under a transparent pixel is unspecified, so only
		// compare RGB where both sides report opaque.
		if i%4 == 3 {
			if a[i] != b[i] {
				return false
			}
			continue
		}
		if a[i-i%4+3] == 0 {
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
