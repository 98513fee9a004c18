package main

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/util"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newCheckoutCommand(opts *RootOptions) *cobra.Command {
	var form entity.ShippingDetails

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart",
		Long: `Place an order for everything in the cart. The shipping form starts from
the saved customer profile and account; flags override individual fields.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, deps appDeps) error {
				if err := deps.Session.WaitForRevalidation(ctx); err != nil {
					return err
				}

				details, err := deps.Checkout.ShippingDefaults(ctx)
				if err != nil {
					return err
				}
				overlayShipping(cmd.Flags(), details, &form)

				order, err := deps.Checkout.PlaceOrder(ctx, details)
				if err != nil {
					return err
				}

				p := opts.printer(cmd)
				if p.isJSON() {
					return p.json(order)
				}
				p.line("Order %s placed. Total %s.", order.ID, util.FormatPrice(order.TotalAmount))

				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&form.FirstName, "first-name", "", "recipient first name")
	flags.StringVar(&form.LastName, "last-name", "", "recipient last name")
	flags.StringVar(&form.Email, "email", "", "contact email")
	flags.StringVar(&form.Address, "address", "", "street address")
	flags.StringVar(&form.City, "city", "", "city")
	flags.StringVar(&form.State, "state", "", "state or region")
	flags.StringVar(&form.ZipCode, "zip", "", "postal code")
	flags.StringVar(&form.Country, "country", "", "country")
	flags.StringVar(&form.Phone, "phone", "", "contact phone, at least 10 digits")
	flags.StringVar(&form.PaymentMethod, "payment", entity.PaymentCreditCard, "payment method (credit_card|paypal)")

	return cmd
}

// overlayShipping copies the explicitly set flags over the prefilled form.
func overlayShipping(flags *pflag.FlagSet, details, form *entity.ShippingDetails) {
	fields := []struct {
		flag string
		dst  *string
		src  string
	}{
		{"first-name", &details.FirstName, form.FirstName},
		{"last-name", &details.LastName, form.LastName},
		{"email", &details.Email, form.Email},
		{"address", &details.Address, form.Address},
		{"city", &details.City, form.City},
		{"state", &details.State, form.State},
		{"zip", &details.ZipCode, form.ZipCode},
		{"country", &details.Country, form.Country},
		{"phone", &details.Phone, form.Phone},
		{"payment", &details.PaymentMethod, form.PaymentMethod},
	}

	for _, f := range fields {
		if flags.Changed(f.flag) {
			*f.dst = f.src
		}
	}
}
