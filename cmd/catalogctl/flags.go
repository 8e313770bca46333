package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lumexa/product-sdk/pkg/catalog"
)

// optional returns the flag value only when the user set it, so updates
// send just the fields named on the command line.
func optional[T any](cmd *cobra.Command, name string, get func(string) (T, error)) (*T, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}

	v, err := get(name)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// flagReader collects optional flag values, keeping the first error.
type flagReader struct {
	cmd *cobra.Command
	err error
}

func (r *flagReader) string(name string) *string {
	v, err := optional(r.cmd, name, r.cmd.Flags().GetString)
	r.keep(err)

	return v
}

func (r *flagReader) float(name string) *float64 {
	v, err := optional(r.cmd, name, r.cmd.Flags().GetFloat64)
	r.keep(err)

	return v
}

func (r *flagReader) int(name string) *int64 {
	v, err := optional(r.cmd, name, r.cmd.Flags().GetInt64)
	r.keep(err)

	return v
}

func (r *flagReader) bool(name string) *bool {
	v, err := optional(r.cmd, name, r.cmd.Flags().GetBool)
	r.keep(err)

	return v
}

// object parses a JSON object flag such as --attributes '{"color":"red"}'.
func (r *flagReader) object(name string) map[string]catalog.Value {
	raw := r.string(name)
	if raw == nil {
		return nil
	}

	v, err := catalog.ParseValue([]byte(*raw))
	if err != nil {
		r.keep(fmt.Errorf("--%s: %w", name, err))
		return nil
	}

	fields, ok := v.AsObject()
	if !ok {
		r.keep(fmt.Errorf("--%s: expected a JSON object, got %s", name, v.Kind()))
		return nil
	}

	return fields
}

func (r *flagReader) keep(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

func parseCategoryID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid category id %q: must be a positive integer", arg)
	}

	return id, nil
}
