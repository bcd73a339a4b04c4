package cmd

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zeebo/blake3"

	"github.com/jsphweid/partwise/file"
	"github.com/jsphweid/partwise/logging"
	"github.com/jsphweid/partwise/parse"
	"github.com/jsphweid/partwise/serialize"
)

func init() {
	rootCmd.AddCommand(roundtripCmd)
}

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip IN",
	Short: "Checks that serializing a score is stable",
	Long: `Serializes a score, reads the output back and serializes it again,
printing a BLAKE3 fingerprint of each pass. The passes match when the
writer's output is a fixed point.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stable, err := roundtrip(cmd.OutOrStdout(), args[0])
		if err != nil {
			return err
		}
		if !stable {
			return fmt.Errorf("%s: second pass differs from the first", args[0])
		}
		return nil
	},
}

type passes struct {
	first  []byte
	second []byte
}

func twoPasses(path string) (passes, error) {
	s, err := file.ReadScore(path, parseOptions())
	if err != nil {
		return passes{}, err
	}
	first := serialize.Serialize(s, serialize.Options{})
	again, err := parse.Parse(first)
	if err != nil {
		return passes{}, err
	}
	return passes{first: first, second: serialize.Serialize(again, serialize.Options{})}, nil
}

func fingerprint(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func roundtrip(w io.Writer, path string) (bool, error) {
	p, err := twoPasses(path)
	if err != nil {
		return false, err
	}
	a, b := fingerprint(p.first), fingerprint(p.second)
	fmt.Fprintf(w, "first:  %v\n", a)
	fmt.Fprintf(w, "second: %v\n", b)
	logging.Debug("roundtrip", "path", path, "bytes", len(p.first), "stable", a == b)
	return a == b, nil
}
