package main

import (
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

// Run executes the config command.
func (c *ConfigCmd) Run(deps *Dependencies) error {
	if c.Write {
		if err := deps.Config.Save(deps.ConfigPath); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", deps.ConfigPath)
		return nil
	}

	out, err := yaml.Marshal(deps.Config)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	_, err = deps.Stdout.Write(out)
	return err
}
