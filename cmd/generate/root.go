package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourorg/listing-api/internal/app"
	"github.com/yourorg/listing-api/internal/config"
	"github.com/yourorg/listing-api/internal/generate"
	"github.com/yourorg/listing-api/internal/listing"
	"github.com/yourorg/listing-api/internal/logger"
)

const (
	kindDescription = "description"
	kindSocial      = "social"
	kindAll         = "all"
)

type options struct {
	configPath string
	kind       string
	offline    bool
	verbose    bool
	timeout    time.Duration
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "generate [listing.json]",
		Short: "Generate listing copy from a listing JSON document",
		Long: `Reads a listing JSON object from a file (or stdin when no file or "-" is
given) and prints the description and/or social posts as JSON.

Example:
  generate listing.json --kind social
  echo '{"address":"42 Elm St","price":300000}' | generate --offline`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", config.Path(), "Path to YAML config file")
	cmd.Flags().StringVarP(&opts.kind, "kind", "k", kindAll, "What to generate: description, social or all")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "Skip the model and print template content")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log generation details to stderr")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "Overall deadline")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	switch opts.kind {
	case kindDescription, kindSocial, kindAll:
	default:
		return fmt.Errorf("unknown --kind %q (want description, social or all)", opts.kind)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.offline {
		cfg.Anthropic.APIKey = ""
	}

	log := logger.NewNop()
	if opts.verbose {
		cfg.Logging.OutputPaths = []string{"stderr"}
		if log, err = logger.New(cfg.Logging); err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
	}

	l, err := readListing(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	gen := app.NewGenerator(cfg, log, nil)
	out := map[string]any{}
	if opts.kind == kindDescription || opts.kind == kindAll {
		res := gen.Description(ctx, l)
		out["description"] = res.Value
		report(cmd.ErrOrStderr(), opts.verbose, kindDescription, res.UsedAI(), res.Reason)
	}
	if opts.kind == kindSocial || opts.kind == kindAll {
		res := gen.SocialPosts(ctx, l)
		out["social_posts"] = res.Value.Map()
		report(cmd.ErrOrStderr(), opts.verbose, kindSocial, res.UsedAI(), res.Reason)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func readListing(stdin io.Reader, args []string) (listing.Listing, error) {
	src := stdin
	name := "stdin"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return listing.Listing{}, fmt.Errorf("open listing: %w", err)
		}
		defer f.Close()
		src, name = f, args[0]
	}
	l, err := listing.Decode(src)
	if err != nil {
		return listing.Listing{}, fmt.Errorf("decode listing from %s: %w", name, err)
	}
	return l, nil
}

// report writes one status line per generated kind to w.
func report(w io.Writer, verbose bool, kind string, usedAI bool, reason generate.Reason) {
	if !verbose {
		return
	}
	src := "model"
	if !usedAI {
		src = "template"
	}
	if reason == generate.ReasonNone {
		fmt.Fprintf(w, "%s: %s\n", kind, src)
		return
	}
	fmt.Fprintf(w, "%s: %s (%s)\n", kind, src, reason)
}
