package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/eoepca/owl-sdk/application/codec"
	apptemplate "github.com/eoepca/owl-sdk/application/template"
	"github.com/eoepca/owl-sdk/config"
	"github.com/eoepca/owl-sdk/domain/entities"
	domainerrors "github.com/eoepca/owl-sdk/domain/errors"
	"github.com/eoepca/owl-sdk/host"
	hostwazero "github.com/eoepca/owl-sdk/infrastructure/wazero"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	modules    []string
	searchDirs []string
	mountDir   string
	logLevel   string
	jsonOut    bool
	report     string

	// hostOpts are appended to the loader options; tests inject a runtime.
	hostOpts []host.Option
}

// NewRootCommand builds the owsinfo command tree.
func NewRootCommand(version, commit string) *cobra.Command {
	return newRootCommand(version, commit, &rootOptions{})
}

func newRootCommand(version, commit string, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owsinfo [flags] <document>",
		Short: "Inspect a process description through a parser module",
		Long: `owsinfo loads a parser module, asks it to parse one process description
document and prints the module version, parser name and a summary of the
parsed tree.

Candidate modules are probed in order; the first one exposing the full
capability set is used. Document paths are resolved inside the mount
directory.

Example:
  owsinfo sample.xml
  owsinfo --module ./build/libeoepcaows.wasm --mount-dir ./docs app.cwl`,
		Version:      fmt.Sprintf("%s (commit: %s)", version, commit),
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runInspect(cmd, opts, args[0])
			if err != nil && opts.jsonOut {
				if perr := printErrorJSON(cmd.OutOrStdout(), err); perr != nil {
					return errors.Join(err, perr)
				}
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	flags.StringSliceVarP(&opts.modules, "module", "m", nil, "candidate module path (repeatable, overrides config)")
	flags.StringSliceVar(&opts.searchDirs, "search-dir", nil, "directory searched for relative module names")
	flags.StringVar(&opts.mountDir, "mount-dir", "", "directory exposed to the module (default \".\")")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&opts.jsonOut, "json", false, "print the parsed tree (or the failure) as JSON")
	flags.StringVar(&opts.report, "template", "", "Go template for the report (default summary)")

	cmd.AddCommand(newSchemaCommand())
	return cmd
}

func (o *rootOptions) load() (*config.Config, error) {
	var overrides []config.Option
	if len(o.modules) > 0 {
		overrides = append(overrides, config.WithCandidates(o.modules...))
	}
	if len(o.searchDirs) > 0 {
		overrides = append(overrides, config.WithSearchDirs(o.searchDirs...))
	}
	if o.mountDir != "" {
		overrides = append(overrides, config.WithMountDir(o.mountDir))
	}
	if o.logLevel != "" {
		overrides = append(overrides, config.WithLogLevel(o.logLevel))
	}
	return config.Load(o.configPath, overrides...)
}

func runInspect(cmd *cobra.Command, opts *rootOptions, document string) error {
	ctx := cmd.Context()
	cfg, err := opts.load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: config.Level(cfg)}))
	stdout := hostwazero.NewBoundedBuffer(hostwazero.DefaultMaxOutputSize)
	stderr := hostwazero.NewBoundedBuffer(hostwazero.DefaultMaxOutputSize)
	hostOpts := append([]host.Option{
		host.WithLogger(logger),
		host.WithRuntimeOptions(hostwazero.WithStdio(stdout, stderr)),
	}, opts.hostOpts...)

	loader, err := host.OpenConfig(ctx, cfg, hostOpts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := loader.Close(ctx); cerr != nil {
			logger.WarnContext(ctx, "owsinfo: close", "error", cerr)
		}
		logGuestOutput(ctx, logger, "stdout", stdout)
		logGuestOutput(ctx, logger, "stderr", stderr)
	}()

	name, err := loader.ParserName(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	return loader.WithFile(ctx, document, func(p *entities.OWSParameter) error {
		if opts.jsonOut {
			return printJSON(out, p)
		}
		text := defaultReport
		if opts.report != "" {
			text = opts.report
		}
		rendered, err := apptemplate.NewGoTemplateEngine().Render([]byte(text), newSummary(loader.Version(), name, p))
		if err != nil {
			return err
		}
		_, err = out.Write(rendered)
		return err
	})
}

func logGuestOutput(ctx context.Context, logger *slog.Logger, stream string, buf *hostwazero.BoundedBuffer) {
	if buf.Len() == 0 {
		return
	}
	logger.DebugContext(ctx, "owsinfo: module output", "stream", stream, "text", buf.String(), "truncated", buf.Truncated())
}

func printJSON(out io.Writer, p *entities.OWSParameter) error {
	data, err := codec.Encode(p)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// printErrorJSON writes err as {"error": ErrorDetail}.
func printErrorJSON(out io.Writer, err error) error {
	data, merr := json.Marshal(struct {
		Error *entities.ErrorDetail `json:"error"`
	}{Error: domainerrors.ToErrorDetail(err)})
	if merr != nil {
		return merr
	}
	_, werr := fmt.Fprintln(out, string(data))
	return werr
}
