package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/util"

	"github.com/spf13/cobra"
)

// printer renders command results as text or JSON.
type printer struct {
	format string
	w      io.Writer
}

func (o *RootOptions) printer(cmd *cobra.Command) *printer {
	return &printer{format: o.Format, w: cmd.OutOrStdout()}
}

func (p *printer) isJSON() bool {
	return p.format == "json"
}

func (p *printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// cartOutput is the JSON shape of `cart list`.
type cartOutput struct {
	Items      []entity.CartLineItem `json:"items"`
	TotalItems int                   `json:"totalItems"`
	TotalPrice string                `json:"totalPrice"`
}

func (p *printer) cart(deps appDeps) error {
	items := deps.Cart.Items()

	if p.isJSON() {
		return p.json(cartOutput{
			Items:      items,
			TotalItems: deps.Cart.TotalItemCount(),
			TotalPrice: deps.Cart.TotalPrice().StringFixed(2),
		})
	}

	if len(items) == 0 {
		p.line("Your cart is empty.")

		return nil
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tPRICE\tSUBTOTAL\t")
	for _, item := range items {
		name := item.Name
		if item.OutOfStock() {
			name += " (out of stock)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t\n",
			item.ProductID, name, item.Quantity, util.FormatPrice(item.UnitPrice), util.FormatPrice(item.Subtotal()))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	p.line("Total: %d item(s), %s", deps.Cart.TotalItemCount(), util.FormatPrice(deps.Cart.TotalPrice()))

	return nil
}

func (p *printer) products(page *entity.ProductPage) error {
	if p.isJSON() {
		return p.json(page)
	}

	if len(page.Products) == 0 {
		p.line("No products found.")

		return nil
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK\t")
	for _, product := range page.Products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t\n",
			product.ID, product.Name, util.FormatPrice(product.Price), product.CountInStock)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	p.line("Page %d of %d, %d product(s).", page.CurrentPage, page.TotalPages, page.TotalItems)

	return nil
}

func (p *printer) orders(orders []entity.Order) error {
	if p.isJSON() {
		if orders == nil {
			orders = []entity.Order{}
		}

		return p.json(orders)
	}

	if len(orders) == 0 {
		p.line("No orders yet.")

		return nil
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tPLACED\tSTATUS\tITEMS\tTOTAL\t")
	for _, order := range orders {
		placed := "-"
		if order.CreatedAt != nil {
			placed = order.CreatedAt.Format(time.DateOnly)
		}
		items := 0
		for _, line := range order.Lines {
			items += line.Quantity
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t\n",
			order.Number(), placed, order.Status, items, util.FormatPrice(order.TotalAmount))
	}

	return tw.Flush()
}
