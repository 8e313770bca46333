package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lumexa/product-sdk/pkg/catalog"
)

func (c *cli) typesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "types",
		Aliases: []string{"type", "product-types"},
		Short:   "Manage product types",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List product types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return client.ListProductTypes(ctx)
			})
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a product type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return client.GetProductType(ctx, args[0])
			})
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a product type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := &flagReader{cmd: cmd}
			in := catalog.ProductTypeInput{Name: r.string("name")}

			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return client.CreateProductType(ctx, in)
			})
		},
	}
	create.Flags().String("name", "", "product type name")
	_ = create.MarkFlagRequired("name")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename a product type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &flagReader{cmd: cmd}
			in := catalog.ProductTypeInput{Name: r.string("name")}

			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return client.UpdateProductType(ctx, args[0], in)
			})
		},
	}
	update.Flags().String("name", "", "product type name")

	remove := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a product type no product uses",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return nil, client.DeleteProductType(ctx, args[0])
			})
		},
	}

	cmd.AddCommand(list, get, create, update, remove)

	return cmd
}
