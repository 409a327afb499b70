package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/calebcase/oops"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/calebcase/capcal/calibration"
	"github.com/calebcase/capcal/constants"
	"github.com/calebcase/capcal/float24"
	"github.com/calebcase/capcal/printtable"
)

var (
	version = "dev"
	date    = "unknown"
)

type loggerFunc func(verbose bool) (*zap.Logger, error)

type cli struct {
	verbose   bool
	newLogger loggerFunc
	log       *zap.Logger
}

// Command is the main entrypoint for this application.
func Command() *cobra.Command {
	return newCommand(newLogger)
}

func newCommand(fn loggerFunc) *cobra.Command {
	c := &cli{
		newLogger: fn,
		log:       zap.NewNop(),
	}

	cmd := &cobra.Command{
		SilenceUsage:  true, // Don't print usage on Run error.
		SilenceErrors: true, // Don't print errors; main does it.
		Use:           "capcal",
		Short:         "Capacitance meter constant generator",
		Long: `capcal generates the constants of the capacitance meter firmware:

float24 encoded scale factors for every measuring channel, correction
factors from calibration measurements and the print table used to show
fractions as decimal digits.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			c.log, err = c.newLogger(c.verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.log.Sync()
		},
	}

	cmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log debug messages")

	cmd.AddCommand(
		c.encodeCommand(),
		c.decodeCommand(),
		c.tableCommand(),
		c.constantsCommand(),
		c.calibrateCommand(),
		versionCommand(),
	)

	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return cfg.Build()
}

func (c *cli) encodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "encode VALUE...",
		Short: "Encode real numbers as float24",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				x, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid value %q: %w", arg, err)
				}

				f, err := float24.Encode(x)
				if err != nil {
					return oops.Trace(err)
				}

				c.log.Debug("encoded",
					zap.Float64("value", x),
					zap.Stringer("float24", f),
					zap.Float64("decoded", f.Float64()))

				fmt.Fprintln(cmd.OutOrStdout(), f)
			}

			return nil
		},
	}
}

func (c *cli) decodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode HEX...",
		Short: "Decode float24 bit patterns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				f, err := float24.Parse(arg)
				if err != nil {
					return oops.Trace(err)
				}

				c.log.Debug("decoded",
					zap.Stringer("float24", f),
					zap.Bool("negative", f.Negative()),
					zap.Uint8("exponent", f.Exponent()),
					zap.Uint16("fraction", f.Fraction()))

				fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(f.Float64(), 'g', -1, 64))
			}

			return nil
		},
	}
}

func (c *cli) tableCommand() *cobra.Command {
	var (
		digits    int
		precision float64
		label     string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Generate the print table as assembler source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			t, err := printtable.Generate(digits, precision)
			if err != nil {
				return oops.Trace(err)
			}

			c.log.Info("generated print table",
				zap.Int("digits", t.Digits),
				zap.Int("bits", t.Bits),
				zap.Int("entries", len(t.Entries)),
				zap.String("size", humanize.Bytes(uint64(t.Size()))))

			if output == "" {
				return t.WriteAssembly(cmd.OutOrStdout(), label)
			}

			fh, err := os.Create(output)
			if err != nil {
				return oops.Trace(err)
			}
			defer func() {
				if cerr := fh.Close(); err == nil {
					err = cerr
				}
			}()

			err = t.WriteAssembly(fh, label)
			if err != nil {
				return err
			}

			c.log.Info("wrote print table", zap.String("path", output))

			return nil
		},
	}

	cmd.Flags().IntVar(&digits, "digits", 2, "decimal digits per entry")
	cmd.Flags().Float64Var(&precision, "precision", 0.05, "relative precision of the printed digits")
	cmd.Flags().StringVar(&label, "label", "float24printtable", "assembler label of the table")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func (c *cli) constantsCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "constants",
		Short: "Compute the float24 scale constants of every channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := constants.DefaultConfig()

			if path != "" {
				fh, err := os.Open(path)
				if err != nil {
					return oops.Trace(err)
				}
				defer func() { _ = fh.Close() }()

				cfg, err = constants.Load(fh)
				if err != nil {
					return oops.Trace(err)
				}

				c.log.Info("using config file", zap.String("path", path))
			}

			cs, err := constants.Compute(cfg)
			if err != nil {
				return oops.Trace(err)
			}

			for _, k := range cs {
				c.log.Debug("constant",
					zap.String("pin", k.Channel.Pin),
					zap.Stringer("domain", k.Channel.Domain),
					zap.Float64("zeta", k.Zeta),
					zap.Stringer("float24", k.Encoded))
			}

			return constants.WriteReport(cmd.OutOrStdout(), cfg, cs)
		},
	}

	cmd.Flags().StringVar(&path, "config", "", "circuit configuration file (default built-in)")

	return cmd
}

type factor struct {
	domain constants.Domain
	file   string
	q      float64
}

func (c *cli) calibrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "calibrate DOMAIN=FILE...",
		Short: "Compute correction factors from calibration measurements",
		Long: `Compute the correction factor of every measuring domain.

Each FILE holds CSV rows of "id,measured,real" for reference capacitors
measured in DOMAIN (one of F, mF, microF, nF, pF).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			factors := make([]factor, 0, len(args))
			seen := map[constants.Domain]bool{}

			for _, arg := range args {
				f, err := c.calibrate(arg)
				if err != nil {
					return err
				}

				if seen[f.domain] {
					return fmt.Errorf("duplicate domain %s", f.domain)
				}
				seen[f.domain] = true

				factors = append(factors, f)
			}

			sort.Slice(factors, func(i, j int) bool {
				return factors[i].domain.String() < factors[j].domain.String()
			})

			out := cmd.OutOrStdout()

			files := make([]string, 0, len(factors))
			for _, f := range factors {
				files = append(files, f.file)
			}
			sort.Strings(files)

			fmt.Fprintln(out, "Files used:")
			for _, file := range files {
				fmt.Fprintf(out, "- %s\n", file)
			}
			fmt.Fprintln(out)

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"Domain", "Q"})
			for _, f := range factors {
				table.Append([]string{
					f.domain.String(),
					strconv.FormatFloat(f.q, 'g', -1, 64),
				})
			}
			table.Render()

			return nil
		},
	}
}

func (c *cli) calibrate(arg string) (f factor, err error) {
	parts := strings.SplitN(arg, "=", 2)
	if len(parts) != 2 || parts[1] == "" {
		return factor{}, fmt.Errorf("invalid argument %q, want DOMAIN=FILE", arg)
	}

	domain, err := constants.ParseDomain(parts[0])
	if err != nil {
		return factor{}, oops.Trace(err)
	}

	fh, err := os.Open(parts[1])
	if err != nil {
		return factor{}, oops.Trace(err)
	}
	defer func() { _ = fh.Close() }()

	samples, err := calibration.ReadSamples(fh)
	if err != nil {
		return factor{}, oops.Trace(err)
	}

	q, err := calibration.CorrectionFactor(samples)
	if err != nil {
		return factor{}, oops.Trace(err)
	}

	c.log.Info("calibrated domain",
		zap.Stringer("domain", domain),
		zap.String("path", parts[1]),
		zap.Int("samples", len(samples)),
		zap.Float64("q", q))

	return factor{
		domain: domain,
		file:   parts[1],
		q:      q,
	}, nil
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Version of capcal",
		Long:  "Prints the version of the capcal binary",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(fmt.Sprintf("%s version %s (%s)", cmd.Parent().Name(), version, date))
		},
	}
}
