package main

import (
	"context"
	"strings"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newProductsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse the catalog",
	}

	var (
		filter             entity.ProductFilter
		minPrice, maxPrice string
	)

	list := &cobra.Command{
		Use:   "list",
		Short: "List one page of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if filter.MinPrice, err = priceFlag("min-price", minPrice); err != nil {
				return err
			}
			if filter.MaxPrice, err = priceFlag("max-price", maxPrice); err != nil {
				return err
			}
			filter.SortOrder = strings.ToUpper(filter.SortOrder)

			return opts.run(cmd, func(ctx context.Context, deps appDeps) error {
				page, err := deps.Catalog.ListProducts(ctx, &filter)
				if err != nil {
					return err
				}

				return opts.printer(cmd).products(page)
			})
		},
	}

	flags := list.Flags()
	flags.StringVar(&filter.Search, "search", "", "match product names")
	flags.StringVar(&filter.CategoryID, "category", "", "category id")
	flags.StringVar(&minPrice, "min-price", "", "lowest price")
	flags.StringVar(&maxPrice, "max-price", "", "highest price")
	flags.Float64Var(&filter.MinRating, "min-rating", 0, "lowest average rating, 0 to 5")
	flags.IntVar(&filter.Page, "page", 0, "page number, starting at 1")
	flags.IntVar(&filter.Limit, "limit", 0, "products per page, at most 100")
	flags.StringVar(&filter.SortBy, "sort-by", "", "field to sort by, e.g. price")
	flags.StringVar(&filter.SortOrder, "sort-order", "", "sort order (asc|desc)")

	cmd.AddCommand(list)

	return cmd
}

func priceFlag(name, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(name + ": decimal")
	}

	return &amount, nil
}

func newOrdersCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "Show the signed-in account's orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, deps appDeps) error {
				if err := deps.Session.WaitForRevalidation(ctx); err != nil {
					return err
				}

				orders, err := deps.Checkout.OrderHistory(ctx)
				if err != nil {
					return err
				}

				return opts.printer(cmd).orders(orders)
			})
		},
	}
}
