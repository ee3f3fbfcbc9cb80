// Package main provides the planner CLI: run a planning pipeline from the terminal
// and inspect or call the registered tools directly.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"party-planner/backend/internal/discord"
	"party-planner/backend/internal/services"
	"party-planner/backend/internal/state"
	"party-planner/backend/internal/tools"
	"party-planner/backend/pkg/config"
	apperrors "party-planner/backend/pkg/errors"
	"party-planner/backend/pkg/logger"
)

const (
	Version = "0.1.0"
	appName = "planner"
)

func main() {
	err := rootCmd().Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Party planning assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init("development", logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(planCmd(), toolsCmd(), resourcesCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}

type planFlags struct {
	eventType    string
	guests       int
	date         string
	budget       string
	location     string
	diet         []string
	requirements string
	asJSON       bool
}

func (f planFlags) request(loc *time.Location) (state.PlanRequest, error) {
	req := state.PlanRequest{
		EventType:           f.eventType,
		GuestCount:          f.guests,
		Location:            f.location,
		SpecialRequirements: f.requirements,
		DietaryRestrictions: f.diet,
	}
	if f.date == "" {
		return req, state.ErrInvalidRequest{Field: "date", Reason: "is required"}
	}
	date, err := state.ParseDate(f.date, loc)
	if err != nil {
		return req, err
	}
	req.Date = date
	if f.budget != "" {
		b, err := decimal.NewFromString(f.budget)
		if err != nil {
			return req, fmt.Errorf("invalid budget %q: %w", f.budget, err)
		}
		req.Budget = &b
	}
	return req, req.Validate()
}

func planCmd() *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Create a party plan",
		Example: `  planner plan --type birthday --guests 12 --date 2026-03-21 --budget 800000
  planner plan --type 회사파티 --guests 40 --date 2026-06-12 --diet vegan,halal --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			req, err := flags.request(cfg.Location())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			sm, err := services.NewServiceManager(ctx, cfg, logger.Get())
			if err != nil {
				return err
			}
			defer sm.Close()

			result, err := sm.Pipeline.CreatePartyPlan(ctx, req)
			if err != nil {
				return err
			}
			if flags.asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), discord.FormatPlan(result))
			return err
		},
	}

	cmd.Flags().StringVarP(&flags.eventType, "type", "t", "", "Event type (birthday, anniversary, corporate, graduation, other)")
	cmd.Flags().IntVarP(&flags.guests, "guests", "g", 0, "Number of guests")
	cmd.Flags().StringVarP(&flags.date, "date", "d", "", "Event date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&flags.budget, "budget", "b", "", "Total budget in KRW")
	cmd.Flags().StringVarP(&flags.location, "location", "l", "", "Area or venue preference")
	cmd.Flags().StringSliceVar(&flags.diet, "diet", nil, "Dietary restrictions, comma separated")
	cmd.Flags().StringVar(&flags.requirements, "req", "", "Special requirements")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "Print the plan as JSON")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("guests")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func toolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect and call registered tools",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tools by provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := tools.NewDefaultRegistry()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			listing := registry.ListTools()
			for _, provider := range registry.Providers() {
				fmt.Fprintf(out, "%s:\n", provider)
				for _, tool := range listing[provider] {
					fmt.Fprintf(out, "  %-22s %s\n", tool.Name, tool.Description)
				}
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "call <provider> <tool> [json-args]",
		Short: "Call a tool with JSON arguments",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := tools.NewDefaultRegistry()
			if err != nil {
				return err
			}
			toolArgs := map[string]interface{}{}
			if len(args) == 3 {
				if err := decodeObject(args[2], &toolArgs); err != nil {
					return err
				}
			}
			result, err := registry.CallTool(cmd.Context(), args[0], args[1], toolArgs)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "recommend [json-context]",
		Short: "Rank tools for a planning context",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := tools.NewDefaultRegistry()
			if err != nil {
				return err
			}
			hints := map[string]interface{}{}
			if len(args) == 1 {
				if err := decodeObject(args[0], &hints); err != nil {
					return err
				}
			}
			return writeJSON(cmd.OutOrStdout(), registry.RecommendTools(hints))
		},
	})

	return cmd
}

func resourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resources",
		Short: "List and read provider resources",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List resources by provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := tools.NewDefaultRegistry()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), registry.ListResources())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "read <provider> <uri>",
		Short: "Print a resource document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := tools.NewDefaultRegistry()
			if err != nil {
				return err
			}
			provider, uri := args[0], args[1]
			resources, ok := registry.ListResources()[provider]
			if !ok {
				return apperrors.NewProviderNotFound(provider)
			}
			if !advertised(resources, uri) {
				return apperrors.NewResourceNotFound(uri)
			}
			content, err := registry.ReadResource(cmd.Context(), provider, uri)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), content)
			return err
		},
	})

	return cmd
}

func advertised(resources []tools.ResourceDescriptor, uri string) bool {
	for _, r := range resources {
		if r.URI == uri {
			return true
		}
	}
	return false
}

func decodeObject(raw string, into *map[string]interface{}) error {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(into); err != nil {
		return fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
