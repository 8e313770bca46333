package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lumexa/product-sdk/pkg/catalog"
)

func (c *cli) categoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Manage the category tree",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return client.ListCategories(ctx)
			})
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCategoryID(args[0])
			if err != nil {
				return err
			}

			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return client.GetCategory(ctx, id)
			})
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := categoryInput(cmd)
			if err != nil {
				return err
			}

			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return client.CreateCategory(ctx, in)
			})
		},
	}
	categoryFlags(create)
	_ = create.MarkFlagRequired("name")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCategoryID(args[0])
			if err != nil {
				return err
			}

			in, err := categoryInput(cmd)
			if err != nil {
				return err
			}

			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return client.UpdateCategory(ctx, id, in)
			})
		},
	}
	categoryFlags(update)

	remove := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a category, detaching its children",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCategoryID(args[0])
			if err != nil {
				return err
			}

			return c.call(cmd, func(ctx context.Context, client *catalog.Client) (any, error) {
				return nil, client.DeleteCategory(ctx, id)
			})
		},
	}

	cmd.AddCommand(list, get, create, update, remove)

	return cmd
}

func categoryFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("name", "", "category name")
	flags.String("slug", "", "URL slug, derived from the name when omitted")
	flags.Int64("parent-id", 0, "parent category id")
	flags.String("description", "", "description")
	flags.String("image", "", "image path")
	flags.String("meta-title", "", "SEO title")
	flags.String("meta-description", "", "SEO description")
	flags.Int64("position", 0, "sort position among siblings")
	flags.Bool("active", true, "whether the category is active")
}

func categoryInput(cmd *cobra.Command) (catalog.CategoryInput, error) {
	r := &flagReader{cmd: cmd}

	in := catalog.CategoryInput{
		Name:            r.string("name"),
		Slug:            r.string("slug"),
		ParentID:        r.int("parent-id"),
		Description:     r.string("description"),
		Image:           r.string("image"),
		MetaTitle:       r.string("meta-title"),
		MetaDescription: r.string("meta-description"),
		Position:        r.int("position"),
		IsActive:        r.bool("active"),
	}

	return in, r.err
}
