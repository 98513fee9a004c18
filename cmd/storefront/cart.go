package main

import (
	"context"
	"strconv"
	"strings"

	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/spf13/cobra"
)

func newCartCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and change the cart",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the cart with totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, deps appDeps) error {
				return opts.printer(cmd).cart(deps)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <product-id> [quantity]",
		Short: "Add a product, limited to its current stock",
		Long: `Add a product to the cart. The product is looked up first so the
quantity can be limited to the stock available right now.
A missing or invalid quantity counts as 1.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity := 1
			if len(args) == 2 {
				quantity = usecase.ParseQuantity(args[1])
			}

			return opts.run(cmd, func(ctx context.Context, deps appDeps) error {
				product, err := deps.Catalog.GetProduct(ctx, entity.ID(args[0]))
				if err != nil {
					return err
				}

				change, err := deps.Cart.AddItem(ctx, product, quantity)
				if err != nil {
					return err
				}

				p := opts.printer(cmd)
				if p.isJSON() {
					return p.cart(deps)
				}
				p.line("Added %s. %d in cart.", product.Name, change.Item.Quantity)
				if change.Clamped {
					p.line("Only %d in stock.", product.CountInStock)
				}

				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set a line's quantity; 0 removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity := parseSetQuantity(args[1])

			return opts.run(cmd, func(ctx context.Context, deps appDeps) error {
				change := deps.Cart.SetQuantity(ctx, entity.ID(args[0]), quantity)

				p := opts.printer(cmd)
				if p.isJSON() {
					return p.cart(deps)
				}
				switch {
				case change == nil:
					p.line("%s is not in the cart.", args[0])
				case change.Removed:
					p.line("Removed %s.", change.Item.Name)
				case change.Clamped:
					p.line("%s set to %d, the most available.", change.Item.Name, change.Item.Quantity)
				default:
					p.line("%s set to %d.", change.Item.Name, change.Item.Quantity)
				}

				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "remove <product-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a line from the cart",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, deps appDeps) error {
				deps.Cart.RemoveItem(ctx, entity.ID(args[0]))

				return opts.printer(cmd).cart(deps)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, deps appDeps) error {
				deps.Cart.Clear(ctx)

				return opts.printer(cmd).cart(deps)
			})
		},
	})

	return cmd
}

// parseSetQuantity keeps zero and negative values, which remove the line.
// Anything that is not an integer counts as 1.
func parseSetQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}

	return n
}
