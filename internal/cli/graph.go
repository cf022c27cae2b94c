package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/ductnet/reach"
	"github.com/katalvlaran/ductnet/request"
)

func newGraphCmd() *cobra.Command {
	var config string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print statistics of the graph a request describes",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := request.Load(config)
			if err != nil {
				return err
			}
			g, err := req.Graph()
			if err != nil {
				return err
			}
			source, terminals, err := req.Resolve(g)
			if err != nil {
				return err
			}
			_, components := reach.Components(g)
			unreachable, err := reach.Unreachable(g, source, terminals)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printSuccess(w, "%s %s", StyleTitle.Render("graph"), StyleDim.Render(req.Mode))
			printKeyValue(w, "nodes", g.Len())
			printKeyValue(w, "edges", g.EdgeCount())
			printKeyValue(w, "components", components)
			printKeyValue(w, "terminals", len(terminals))
			if len(unreachable) > 0 {
				printWarning(w, "terminals unreachable from the source: %v", unreachable)
			}
			for _, r := range g.Regions() {
				velocity := g.TargetVelocity(r)
				if velocity == 0 {
					velocity = req.Velocity
				}
				printDetail(w, "%s: %d cells, %.1f cfm at %.0f fpm", r.ID, len(r.Nodes), g.Flow(r), velocity)
			}

			return nil
		},
	}
	cmd.Flags().StringVarP(&config, "config", "c", "", "request file (.toml, .yaml, .yml)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
