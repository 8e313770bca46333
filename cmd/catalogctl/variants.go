package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lumexa/product-sdk/pkg/catalog"
)

func (c *cli) variantsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "variants",
		Aliases: []string{"variant"},
		Short:   "Manage the variants of a product",
	}

	list := &cobra.Command{
		Use:   "list <product-id>",
		Short: "List the variants of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return client.ListVariants(ctx, args[0])
			})
		},
	}

	get := &cobra.Command{
		Use:   "get <product-id> <variant-id>",
		Short: "Show a variant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return client.GetVariant(ctx, args[0], args[1])
			})
		},
	}

	create := &cobra.Command{
		Use:   "create <product-id>",
		Short: "Add a variant to a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := variantInput(cmd)
			if err != nil {
				return err
			}

			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return client.CreateVariant(ctx, args[0], in)
			})
		},
	}
	variantFlags(create)
	_ = create.MarkFlagRequired("sku")

	update := &cobra.Command{
		Use:   "update <product-id> <variant-id>",
		Short: "Update the given fields of a variant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := variantInput(cmd)
			if err != nil {
				return err
			}

			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return client.UpdateVariant(ctx, args[0], args[1], in)
			})
		},
	}
	variantFlags(update)

	remove := &cobra.Command{
		Use:     "delete <product-id> <variant-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a variant",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return nil, client.DeleteVariant(ctx, args[0], args[1])
			})
		},
	}

	cmd.AddCommand(list, get, create, update, remove)

	return cmd
}

func variantFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("sku", "", "stock keeping unit, unique across the catalog")
	flags.Int64("stock", 0, "units in stock")
	flags.String("attributes", "", `attributes as a JSON object, e.g. '{"color":"red"}'`)
}

func variantInput(cmd *cobra.Command) (catalog.VariantInput, error) {
	r := &flagReader{cmd: cmd}

	in := catalog.VariantInput{
		SKU:        r.string("sku"),
		Stock:      r.int("stock"),
		Attributes: r.object("attributes"),
	}

	return in, r.err
}

func (c *cli) imagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "images",
		Aliases: []string{"image"},
		Short:   "Attach and remove product images",
	}

	create := &cobra.Command{
		Use:   "create <product-id>",
		Short: "Attach an image to a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &flagReader{cmd: cmd}
			in := catalog.ImageInput{
				Name:  r.string("name"),
				Path:  r.string("path"),
				Order: r.int("order"),
			}

			if r.err != nil {
				return r.err
			}

			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return client.CreateImage(ctx, args[0], in)
			})
		},
	}
	create.Flags().String("name", "", "image name")
	create.Flags().String("path", "", "storage path of the image")
	create.Flags().Int64("order", 0, "display position, appended last when omitted")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("path")

	remove := &cobra.Command{
		Use:     "delete <product-id> <image-id>",
		Aliases: []string{"rm"},
		Short:   "Remove an image",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return nil, client.DeleteImage(ctx, args[0], args[1])
			})
		},
	}

	cmd.AddCommand(create, remove)

	return cmd
}
