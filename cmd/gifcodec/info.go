package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	gif "github.com/orklann/gogifcodec"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file.gif>",
		Short: "Print a structural summary without compositing frames",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			sink := gif.NewLogrusDiagSink(logLevel())
			s, err := gif.Inspect(data, sink)
			if err != nil {
				return err
			}
			fmt.Printf("size:      %dx%d\n", s.Width, s.Height)
			fmt.Printf("frames:    %d\n", s.FrameCount)
			fmt.Printf("loop:      %d\n", s.LoopCount)
			if len(s.Comments) > 0 {
				fmt.Println("comments:")
				for _, c := range s.Comments {
					fmt.Printf("  - %s\n", c)
				}
			}
			for i, d := range s.DelaysMs {
				fmt.Printf("  frame %d: delay %dms\n", i, d)
			}
			return nil
		},
	}
	return cmd
}
