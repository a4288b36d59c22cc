package cli

import "github.com/urfave/cli/v3"

// joinFlags concatenates per-concern flag groups into one flag list
func joinFlags(groups ...[]cli.Flag) []cli.Flag {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	out := make([]cli.Flag, 0, n)
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
