// Command pathletctl computes readings locally without running the server.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pathlet/pathlet-api/internal/ascendant"
	"github.com/pathlet/pathlet-api/internal/birth"
	"github.com/pathlet/pathlet-api/internal/http/v1/common"
	compathttp "github.com/pathlet/pathlet-api/internal/http/v1/compatibility"
	"github.com/pathlet/pathlet-api/internal/service/reading"
)

func main() {
	if err := newRootCmd(reading.New()).Execute(); err != nil {
		os.Exit(1)
	}
}

type birthFlags struct {
	date     string
	time     string
	location string
}

func (f *birthFlags) bind(cmd *cobra.Command, prefix string) {
	cmd.Flags().StringVar(&f.date, prefix+"date", "", "birth date (YYYY-MM-DD, MM/DD/YYYY or DD-MM-YYYY)")
	cmd.Flags().StringVar(&f.time, prefix+"time", "", "birth time (HH:MM AM/PM, HH:MM or HH:MM:SS)")
	cmd.Flags().StringVar(&f.location, prefix+"location", "", "birth location")
}

func (f *birthFlags) payload() birth.Payload {
	return birth.Payload{BirthDate: f.date, BirthTime: f.time, BirthLocation: f.location}
}

func newRootCmd(svc *reading.Service) *cobra.Command {
	root := &cobra.Command{
		Use:          "pathletctl",
		Short:        "Compute numerology, design type and compatibility readings",
		SilenceUsage: true,
	}
	root.AddCommand(
		newNumerologyCmd(svc),
		newDesignCmd(svc),
		newAscendantsCmd(),
		newCompatCmd(svc),
	)
	return root
}

func newNumerologyCmd(svc *reading.Service) *cobra.Command {
	var f birthFlags
	cmd := &cobra.Command{
		Use:   "numerology",
		Short: "Print the numerology profile for a birth date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := svc.Numerology(cmd.Context(), f.payload())
			if err != nil {
				return describe(err)
			}
			return printJSON(cmd, common.NewNumerology(p))
		},
	}
	f.bind(cmd, "")
	return cmd
}

func newDesignCmd(svc *reading.Service) *cobra.Command {
	var f birthFlags
	cmd := &cobra.Command{
		Use:   "design",
		Short: "Print the design type for a birth date and time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := svc.Design(cmd.Context(), f.payload())
			if err != nil {
				return describe(err)
			}
			return printJSON(cmd, common.NewDesign(p))
		},
	}
	f.bind(cmd, "")
	return cmd
}

func newAscendantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ascendants [sign]",
		Short: "Print the ascendant table, or the time range of one sign",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				s, ok := ascendant.Find(args[0])
				if !ok {
					return fmt.Errorf("unknown sign %q", args[0])
				}
				return printJSON(cmd, map[string]string{"sign": s.Name, "time_range": s.TimeRange})
			}
			rows := make([]map[string]string, 0, 12)
			for _, s := range ascendant.Signs() {
				rows = append(rows, map[string]string{"sign": s.Name, "time_range": s.TimeRange})
			}
			return printJSON(cmd, rows)
		},
	}
}

func newCompatCmd(svc *reading.Service) *cobra.Command {
	var a, b birthFlags
	cmd := &cobra.Command{
		Use:   "compat",
		Short: "Compare two people",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := svc.Compatibility(cmd.Context(), a.payload(), b.payload())
			if err != nil {
				return describe(err)
			}
			return printJSON(cmd, compathttp.NewResult(res))
		},
	}
	a.bind(cmd, "person1-")
	b.bind(cmd, "person2-")
	return cmd
}

// describe renders validation failures with the flag-style field name.
func describe(err error) error {
	var prefix string
	var personErr *reading.PersonError
	if errors.As(err, &personErr) {
		prefix = string(personErr.Person) + "-"
	}
	var verr *birth.ValidationError
	if errors.As(err, &verr) {
		field := strings.TrimPrefix(verr.Field, "birth_")
		return fmt.Errorf("--%s%s: %s", prefix, field, verr.Reason)
	}
	return err
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
