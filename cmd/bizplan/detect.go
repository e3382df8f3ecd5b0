package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/encoding"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/output"
)

type detection struct {
	Path string `json:"path"`
	encoding.DetectionResult
	BOM bool `json:"bom"`
}

func newDetectCmd() *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:   "detect [file...]",
		Short: "Detect the text encoding of files (UTF-8, EUC-KR, CP949)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make([]detection, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				out = append(out, detection{
					Path:            path,
					DetectionResult: encoding.Detect(data),
					BOM:             encoding.HasBOM(data),
				})
			}
			return output.WriteJSON(cmd.OutOrStdout(), out, pretty)
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}
