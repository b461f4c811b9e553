package main

import (
	"github.com/alnah/go-scribe/internal/config"
	"github.com/alnah/go-scribe/internal/yamlutil"
)

// runConfig prints the effective configuration as YAML, ready to be
// saved as a starting config file.
func runConfig(args []string, env *Environment) error {
	flags, _, err := parseConfigFlags(args)
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	if !flags.defaults {
		cfg, err = loadSettings(&flags.common, env)
		if err != nil {
			return err
		}
	}

	out, err := yamlutil.Encode(cfg)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(out)
	return err
}
