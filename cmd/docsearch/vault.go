package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/docsearch"
)

// Run executes the vault list command.
func (c *VaultListCmd) Run(deps *Dependencies) error {
	names, err := docsearch.NewVault(deps.Preferences).Names(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(deps.Stdout, "No values stored.")
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(deps.Stdout, name)
	}
	return nil
}

// Run executes the vault get command.
func (c *VaultGetCmd) Run(deps *Dependencies) error {
	var v json.RawMessage
	ok, err := docsearch.NewVault(deps.Preferences).Get(deps.Ctx, c.Name, &v)
	if err == nil && !ok {
		err = docsearch.Errorf(docsearch.ENOTFOUND, "vault value %q not set", c.Name)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, string(v))
	return nil
}

// Run executes the vault put command. Values that are not valid JSON are
// stored as strings.
func (c *VaultPutCmd) Run(deps *Dependencies) error {
	var value any = c.Value
	if json.Valid([]byte(c.Value)) {
		value = json.RawMessage(c.Value)
	}

	if err := docsearch.NewVault(deps.Preferences).Put(deps.Ctx, c.Name, value); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Stored %s\n", c.Name)
	return nil
}

// Run executes the vault delete command.
func (c *VaultDeleteCmd) Run(deps *Dependencies) error {
	if err := docsearch.NewVault(deps.Preferences).Delete(deps.Ctx, c.Name); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted %s\n", c.Name)
	return nil
}
