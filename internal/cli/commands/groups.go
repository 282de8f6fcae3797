package commands

import (
	"github.com/spf13/cobra"

	"github.com/fzdarsky/srp6a/pkg/srp"
)

type groupInfo struct {
	Bits      int    `json:"bits" yaml:"bits"`
	Generator string `json:"generator" yaml:"generator"`
	PadLength int    `json:"pad_length" yaml:"pad_length"`
	Selected  bool   `json:"selected" yaml:"selected"`
}

type digestInfo struct {
	Name     srp.DigestAlgorithm `json:"name" yaml:"name"`
	Size     int                 `json:"size" yaml:"size"`
	Selected bool                `json:"selected" yaml:"selected"`
}

func groupsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List the RFC 5054 group catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sizes := srp.GroupSizes()
			groups := make([]groupInfo, 0, len(sizes))
			for _, bits := range sizes {
				grp, err := srp.GroupBySize(bits)
				if err != nil {
					return err
				}
				groups = append(groups, groupInfo{
					Bits:      grp.Bits(),
					Generator: grp.G().String(),
					PadLength: grp.PadLength(),
					Selected:  bits == opts.cfg.SRP.Group,
				})
			}
			return opts.write(cmd, groups)
		},
	}
}

func digestsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "digests",
		Short: "List supported digest algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			algorithms := srp.DigestAlgorithms()
			digests := make([]digestInfo, 0, len(algorithms))
			for _, alg := range algorithms {
				d, err := srp.NewDigest(alg)
				if err != nil {
					return err
				}
				digests = append(digests, digestInfo{
					Name:     alg,
					Size:     d.Size(),
					Selected: alg == opts.cfg.SRP.Digest,
				})
			}
			return opts.write(cmd, digests)
		},
	}
}
