package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/bijector/internal/transform"
)

func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered transforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range transform.Names() {
				n, err := transform.Arity(name)
				if err != nil {
					return err
				}
				if n == 0 {
					fmt.Fprintln(c.out, name)
					continue
				}
				fmt.Fprintf(c.out, "%s %s\n", name, StyleDim.Render(fmt.Sprintf("(arity %d)", n)))
			}
			return nil
		},
	}
}
