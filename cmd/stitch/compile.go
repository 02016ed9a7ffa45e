package main

import (
	"fmt"
	"os"

	"github.com/cuemby/stitch/pkg/compose"
	"github.com/cuemby/stitch/pkg/log"
	"github.com/cuemby/stitch/pkg/specs"
	"github.com/cuemby/stitch/pkg/stitch"
	"github.com/cuemby/stitch/pkg/storage"
	"github.com/cuemby/stitch/pkg/types"
	"github.com/spf13/cobra"
)

// buildOptions are the flags shared by compile and compose
type buildOptions struct {
	namespace string
	adminACL  []string
	maxPrice  float64
	machines  int
	output    string
	save      bool
}

func (o *buildOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.namespace, "namespace", "", "Deployment namespace (overrides config)")
	cmd.Flags().StringSliceVar(&o.adminACL, "admin-acl", nil, "Addresses allowed to administer the deployment (overrides config)")
	cmd.Flags().Float64Var(&o.maxPrice, "max-price", 0, "Maximum machine price (overrides config)")
	cmd.Flags().IntVar(&o.machines, "machines", 3, "Number of worker machines next to the single master")
	cmd.Flags().StringVarP(&o.output, "output", "o", "json", "Output format: json or yaml")
	cmd.Flags().BoolVar(&o.save, "save", false, "Record the artifact as a revision")
}

func newCompileCmd(c *cli) *cobra.Command {
	opts := &buildOptions{}
	var replicas, workers int

	cmd := &cobra.Command{
		Use:   "compile TEMPLATE",
		Short: "Compile a built-in template into an artifact",
		Long: `Compile a built-in template into a deployment artifact.

Examples:
  # Three-member etcd cluster as JSON
  stitch compile etcd --replicas 3

  # Spark with two masters and four workers, saved as a revision
  stitch compile spark --replicas 2 --workers 4 --namespace analytics --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := specs.Lookup(args[0])
			if err != nil {
				return err
			}
			return c.build(cmd, opts, tmpl.Name, func(b *stitch.Builder) (stitch.Deployable, error) {
				return tmpl.Build(b, specs.Options{Replicas: replicas, Workers: workers})
			})
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVar(&replicas, "replicas", 3, "Replicas of the template's main service")
	cmd.Flags().IntVar(&workers, "workers", 2, "Worker count for templates that have workers")

	return cmd
}

func newComposeCmd(c *cli) *cobra.Command {
	opts := &buildOptions{}
	var file string

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compile a Docker Compose file into an artifact",
		Long: `Compile a Docker Compose file into a deployment artifact.

Each service becomes a label; depends_on becomes a connection on the
dependency's ports, and published ports are opened to the public internet.

Examples:
  stitch compose -f compose.yaml --output yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.build(cmd, opts, file, func(b *stitch.Builder) (stitch.Deployable, error) {
				return compose.LoadFile(cmd.Context(), b, file)
			})
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "", "Compose file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// build runs the compile pipeline: machines, application, vet,
// canonicalize, print and optionally save
func (c *cli) build(cmd *cobra.Command, opts *buildOptions, source string, app func(*stitch.Builder) (stitch.Deployable, error)) error {
	format, err := types.ParseFormat(opts.output)
	if err != nil {
		return err
	}

	dcfg := c.cfg.Deployment()
	if cmd.Flags().Changed("namespace") {
		dcfg.Namespace = opts.namespace
	}
	if cmd.Flags().Changed("admin-acl") {
		dcfg.AdminACL = opts.adminACL
	}
	if cmd.Flags().Changed("max-price") {
		dcfg.MaxPrice = opts.maxPrice
	}

	d, err := stitch.New(dcfg)
	if err != nil {
		return err
	}

	base := c.cfg.MachineTemplate()
	if err := d.Deploy(base.AsMaster(), base.AsWorker().Replicate(opts.machines)); err != nil {
		return err
	}

	item, err := app(stitch.NewBuilder(nil))
	if err != nil {
		return err
	}
	if err := d.Deploy(item); err != nil {
		return err
	}

	artifact, err := d.Canonicalize()
	if err != nil {
		return err
	}

	data, err := artifact.Encode(format)
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return err
	}

	if !opts.save {
		return nil
	}

	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rev, err := store.SaveRevision(&storage.Revision{
		Namespace: artifact.Namespace,
		Source:    source,
		Artifact:  artifact,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Revision %s (%s)\n", rev.ID, rev.Digest)
	return nil
}

func (c *cli) openStore() (*storage.BoltStore, error) {
	if err := os.MkdirAll(c.cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store, err := storage.NewBoltStore(c.cfg.DataDir)
	if err != nil {
		return nil, err
	}

	logger := log.WithComponent("cli")
	logger.Debug().Str("data_dir", c.cfg.DataDir).Msg("revision store opened")
	return store, nil
}
