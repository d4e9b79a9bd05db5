package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yairfalse/hakija/internal/filters"
	"github.com/yairfalse/hakija/pkg/resolver"
)

var evalSubject string

// evalCmd represents the eval command
var evalCmd = &cobra.Command{
	Use:   "eval <filter> [subject] [key=value...]",
	Short: "Evaluate a filter and print the result as JSON",
	Long: `Evaluate a single filter the way a template would invoke it.

The subject is the piped value. When it is omitted and the config file
names a region, the region is used as the subject. Remaining arguments
are kwargs; for tag filters, any key the filter does not consume
becomes a tag constraint.

A positional subject containing "=" would be read as a kwarg; pass it
with --subject instead.`,
	Example: `  hakija eval zones us-west-2
  hakija eval get_instances_by_tags us-west-2 env=prod return_key=private_ip
  hakija eval latest_ami_id 'ubuntu/images/hvm-ssd/ubuntu-trusty-*' region=ap-southeast-1
  hakija eval get_sqs jobs region=us-west-2 key=url
  hakija eval get_ami_image_id --subject 'ubuntu-build=42' region=us-west-2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVar(&evalSubject, "subject", "", "Piped subject value, for subjects containing \"=\"")
}

func runEval(cmd *cobra.Command, args []string) error {
	name := args[0]
	subject, rest := chooseSubject(evalSubject, args[1:], cfg.Region)
	if subject == "" {
		return fmt.Errorf("no subject given and no region configured")
	}

	kwargs, err := parseKwargs(rest)
	if err != nil {
		return err
	}
	if _, ok := kwargs["region"]; !ok && cfg.Region != "" {
		kwargs["region"] = cfg.Region
	}

	ctx := cmd.Context()
	r, err := resolver.New(ctx, resolver.Options{Profile: cfg.Profile})
	if err != nil {
		return err
	}

	log.Debug().
		Str("filter", name).
		Str("subject", subject).
		Int("kwargs", len(kwargs)).
		Msg("evaluating filter")

	result, err := filters.New(r).Eval(ctx, name, subject, kwargs)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	return encoder.Encode(result)
}

// chooseSubject resolves the piped subject: an explicit --subject value wins
// and leaves every positional argument a kwarg.
func chooseSubject(flagValue string, args []string, fallback string) (string, []string) {
	if flagValue != "" {
		return flagValue, args
	}
	return splitSubject(args, fallback)
}

// splitSubject separates the piped subject from the kwarg arguments. The
// first argument without an "=" is the subject; when every argument is a
// kwarg, the fallback is used.
func splitSubject(args []string, fallback string) (string, []string) {
	if len(args) == 0 || strings.Contains(args[0], "=") {
		return fallback, args
	}
	return args[0], args[1:]
}

// parseKwargs turns key=value arguments into filter kwargs.
func parseKwargs(args []string) (filters.Kwargs, error) {
	kwargs := make(filters.Kwargs, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("malformed kwarg %q, want key=value", arg)
		}
		kwargs[key] = value
	}
	return kwargs, nil
}
