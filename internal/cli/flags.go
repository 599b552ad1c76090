package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/pipeline"
)

// planFlags are the planning flags shared by the planning commands. Flags
// left at their zero value keep the configured setting.
type planFlags struct {
	opts pipeline.Options
}

func addPlanFlags(cmd *cobra.Command, f *planFlags) {
	flags := cmd.Flags()
	flags.Uint64Var(&f.opts.Seed, "seed", 0, "seed for the redundancy link choice")
	flags.BoolVar(&f.opts.Deterministic, "deterministic", false, "link leaves to the lowest-id candidate instead of a seeded random one")
	flags.BoolVar(&f.opts.SkipAugment, "no-augment", false, "build the spanning tree only, without leaf redundancy")
	flags.BoolVar(&f.opts.Rebuild, "rebuild", false, "discard existing links and rebuild the topology")
	flags.Float64SliceVar(&f.opts.Catalog, "catalog", nil, "capacity catalog, ascending (e.g. 0,10,100,1000)")
	flags.IntVar(&f.opts.PacketSizeBytes, "packet-size", 0, "packet size in bytes for delay estimates (64-9000)")
	flags.BoolVar(&f.opts.Refresh, "refresh", false, "ignore cached results")
}

// parseNodeID parses a node id argument.
func parseNodeID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid node id %q", s)
	}
	return id, nil
}

// parseNodePair parses two node id arguments.
func parseNodePair(a, b string) (int, int, error) {
	from, err := parseNodeID(a)
	if err != nil {
		return 0, 0, err
	}
	to, err := parseNodeID(b)
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}
