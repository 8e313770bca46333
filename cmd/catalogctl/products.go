package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lumexa/product-sdk/pkg/catalog"
)

func (c *cli) productsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "List, inspect and edit products",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			active, _ := cmd.Flags().GetBool("active")

			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				if active {
					return client.ListActiveProducts(ctx)
				}

				return client.ListProducts(ctx)
			})
		},
	}
	list.Flags().Bool("active", false, "only active products")

	future := &cobra.Command{
		Use:   "future",
		Short: "List products that become available later",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return client.ListFutureProducts(ctx)
			})
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return client.GetProduct(ctx, args[0])
			})
		},
	}

	bySlug := &cobra.Command{
		Use:   "slug <slug>",
		Short: "Show a product by slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return client.GetProductBySlug(ctx, args[0])
			})
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := productInput(cmd)
			if err != nil {
				return err
			}

			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return client.CreateProduct(ctx, in)
			})
		},
	}
	productFlags(create)
	_ = create.MarkFlagRequired("name")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := productInput(cmd)
			if err != nil {
				return err
			}

			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return client.UpdateProduct(ctx, args[0], in)
			})
		},
	}
	productFlags(update)

	remove := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a product with its variants and images",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return nil, client.DeleteProduct(ctx, args[0])
			})
		},
	}

	cmd.AddCommand(list, future, get, bySlug, create, update, remove)

	return cmd
}

func productFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("name", "", "product name")
	flags.String("slug", "", "URL slug, derived from the name when omitted")
	flags.String("description", "", "description")
	flags.Float64("price", 0, "price")
	flags.Bool("active", true, "whether the product is active")
	flags.String("available-at", "", "availability timestamp (RFC 3339 or YYYY-MM-DD HH:MM:SS)")
	flags.String("type-id", "", "product type id")
}

func productInput(cmd *cobra.Command) (catalog.ProductInput, error) {
	r := &flagReader{cmd: cmd}

	in := catalog.ProductInput{
		Name:          r.string("name"),
		Slug:          r.string("slug"),
		Description:   r.string("description"),
		Price:         r.float("price"),
		IsActive:      r.bool("active"),
		AvailableAt:   r.string("available-at"),
		ProductTypeID: r.string("type-id"),
	}

	return in, r.err
}
