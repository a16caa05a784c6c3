package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/go-foreman/cqrs"
	"github.com/go-foreman/cqrs/config"
	"github.com/go-foreman/cqrs/log"
	"github.com/go-foreman/cqrs/registration"
	"github.com/go-foreman/cqrs/runtime/scheme"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:          "routes",
	Short:        "Compiles bounded contexts described in a config and prints their routes",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printTable(cmd.OutOrStdout())
	},
}

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the resolved routing table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printTable(cmd.OutOrStdout())
	},
}

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Print services the bounded contexts depend on",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFile(flagConfig)
		if err != nil {
			return err
		}

		regs, err := cfg.Registrations(scheme.KnownTypesRegistryInstance, catalog())
		if err != nil {
			return err
		}

		for _, t := range registration.Dependencies(regs...) {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "config.yaml", "Path to the bounded contexts config")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log compilation steps")

	rootCmd.AddCommand(tableCmd, depsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newEngine() (*cqrs.Engine, error) {
	logger := log.DefaultLogger(os.Stderr)
	logger.SetLevel(log.WarnLevel)

	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.LoadFile(flagConfig)
	if err != nil {
		return nil, err
	}

	endpoints, err := cfg.EndpointRegistry()
	if err != nil {
		return nil, err
	}

	resolver, err := cfg.EndpointResolver()
	if err != nil {
		return nil, err
	}

	regs, err := cfg.Registrations(scheme.KnownTypesRegistryInstance, catalog())
	if err != nil {
		return nil, err
	}

	return cqrs.NewEngine(
		logger,
		cqrs.WithRegistrations(regs...),
		cqrs.WithEndpointProvider(endpoints),
		cqrs.WithEndpointResolver(resolver),
	)
}

func printTable(out io.Writer) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	table, err := engine.RoutingTable()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CONTEXT\tROUTE\tDIRECTION\tTYPE\tPRIORITY\tREMOTE\tLOCAL\tTHREADS\tENDPOINT")

	for _, e := range table {
		fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%d\t%s\t%t\t%d\t%s\n",
			e.Key.LocalContext,
			e.Key.Route,
			e.Key.Communication,
			e.Key.RouteType,
			e.Key.MessageType,
			e.Key.Priority,
			e.Key.RemoteContext,
			e.Local,
			e.ConcurrencyLevel,
			e.Endpoint.Name,
		)
	}

	return w.Flush()
}
