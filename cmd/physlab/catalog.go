package main

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/physics"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list simulations",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTITLE\tKIND\tPARAMS")
			for _, name := range physics.Names() {
				m, err := physics.New(name)
				if err != nil {
					return err
				}
				info := m.Info()
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", name, info.Title, info.Kind, len(m.Specs()))
			}
			return w.Flush()
		},
	}
}

func paramsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params [simulation]",
		Short: "show a simulation's parameters and their ranges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := physics.New(args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tDEFAULT\tACCEPTS\tUNIT\tLOCKED")
			for _, spec := range m.Specs() {
				locked := ""
				if spec.LockedWhileRunning {
					locked = "while running"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", spec.Key, spec.Format(spec.Default), spec.Range(), spec.Unit, locked)
			}
			return w.Flush()
		},
	}
}

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [simulation]",
		Short: "list built-in presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sims := config.Simulations()
			if len(args) == 1 {
				sims = args[:1]
			}
			for _, name := range sims {
				presets := config.ListPresets(name)
				if len(presets) == 0 {
					fmt.Printf("%s: no presets\n", name)
					continue
				}
				fmt.Printf("%s:\n", name)
				for _, p := range presets {
					cfg := config.GetPreset(name, p)
					fmt.Printf("  %-14s %s\n", p, formatParams(cfg.Params))
				}
			}
			return nil
		},
	}
}

func formatParams(raw map[string]string) string {
	keys := slices.Sorted(maps.Keys(raw))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + raw[k]
	}
	return strings.Join(parts, " ")
}
