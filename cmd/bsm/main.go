package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jwaldner/bsm/internal/config"
	"github.com/jwaldner/bsm/internal/format"
	"github.com/jwaldner/bsm/internal/functions"
	"github.com/jwaldner/bsm/internal/logger"
)

func main() {
	cfg := config.Load()
	logger.InitWithWriter(cfg.Logging.LogLevel, os.Stderr)

	if err := newRootCmd(cfg, os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, out io.Writer) *cobra.Command {
	catalog := functions.New(cfg.Display.Category)
	precision := cfg.Display.Precision

	root := &cobra.Command{
		Use:   "bsm",
		Short: "Black-Scholes/Merton forward option value and delta",
		Long: `bsm evaluates the Black-Scholes/Merton forward option kernel and its
standard normal helpers. Strikes are signed: negative for puts, positive for
calls. Inputs outside the model's domain print NaN.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().IntVar(&precision, "precision", precision, "Decimal places in printed results")

	evaluate := func(cmd *cobra.Command, name string, args map[string]float64) error {
		v, err := catalog.Call(name, args)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), format.String(v, precision))
		return nil
	}

	optionCmd := func(use, name, short string) *cobra.Command {
		var f, s, k float64
		cmd := &cobra.Command{
			Use:   use,
			Short: short,
			Example: fmt.Sprintf(`  bsm %s --forward 100 --vol 0.2 --strike -100   # put
  bsm %s --forward 100 --vol 0.2 --strike 100    # call`, use, use),
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return evaluate(cmd, name, map[string]float64{"f": f, "s": s, "k": k})
			},
		}
		cmd.Flags().Float64Var(&f, "forward", 0, "Forward price")
		cmd.Flags().Float64Var(&s, "vol", 0, "Total volatility: vol times sqrt(time in years)")
		cmd.Flags().Float64Var(&k, "strike", 0, "Signed strike, negative for puts")
		for _, flag := range []string{"forward", "vol", "strike"} {
			_ = cmd.MarkFlagRequired(flag)
		}
		return cmd
	}

	var mf, ms, mk float64
	moneynessCmd := &cobra.Command{
		Use:   "moneyness",
		Short: "Moneyness (log(k/f) + s^2/2)/s for a positive strike",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return evaluate(cmd, "BSM.MONEYNESS", map[string]float64{"f": mf, "s": ms, "k": mk})
		},
	}
	moneynessCmd.Flags().Float64Var(&mf, "forward", 0, "Forward price")
	moneynessCmd.Flags().Float64Var(&ms, "vol", 0, "Total volatility")
	moneynessCmd.Flags().Float64Var(&mk, "strike", 0, "Positive strike")
	for _, flag := range []string{"forward", "vol", "strike"} {
		_ = moneynessCmd.MarkFlagRequired(flag)
	}

	var cx, cs float64
	var cn, cnx, cns int
	cdfCmd := &cobra.Command{
		Use:   "cdf",
		Short: "Standard normal distribution (n=0), density (n=1), or its share-measure shift with --shift",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("shift") || flags.Changed("nx") || flags.Changed("ns") {
				if flags.Changed("n") {
					return fmt.Errorf("--n cannot be combined with --shift, --nx or --ns")
				}
				return evaluate(cmd, "NORMAL.CDF.SHIFTED", map[string]float64{"x": cx, "s": cs, "nx": float64(cnx), "ns": float64(cns)})
			}
			return evaluate(cmd, "NORMAL.CDF", map[string]float64{"x": cx, "n": float64(cn)})
		},
	}
	cdfCmd.Flags().Float64Var(&cx, "x", 0, "Evaluation point")
	cdfCmd.Flags().IntVar(&cn, "n", 0, "Derivative order")
	cdfCmd.Flags().Float64Var(&cs, "shift", 0, "Measure shift s")
	cdfCmd.Flags().IntVar(&cnx, "nx", 0, "Derivative order in x of the shifted distribution")
	cdfCmd.Flags().IntVar(&cns, "ns", 0, "Derivative order in s of the shifted distribution")

	var ks float64
	var kn int
	cumulantCmd := &cobra.Command{
		Use:   "cumulant",
		Short: "Standard normal cumulant s^2/2 or its derivative",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return evaluate(cmd, "NORMAL.CUMULANT", map[string]float64{"s": ks, "n": float64(kn)})
		},
	}
	cumulantCmd.Flags().Float64Var(&ks, "s", 0, "Cumulant argument")
	cumulantCmd.Flags().IntVar(&kn, "n", 0, "Derivative order")

	evalCmd := &cobra.Command{
		Use:     "eval NAME [arg=value ...]",
		Short:   "Evaluate any catalog function by name",
		Example: "  bsm eval BSM.VALUE f=100 s=0.2 k=-100",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			named, err := parseNamedArgs(args[1:])
			if err != nil {
				return err
			}
			return evaluate(cmd, args[0], named)
		},
	}

	functionsCmd := &cobra.Command{
		Use:   "functions",
		Short: "List catalog functions and their arguments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tARGS\tCATEGORY\tHELP")
			for _, fn := range catalog.List() {
				var names []string
				for _, a := range fn.Args {
					if a.Default != nil {
						names = append(names, fmt.Sprintf("%s=%g", a.Name, *a.Default))
					} else {
						names = append(names, a.Name)
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", fn.Name, strings.Join(names, ","), fn.Category, fn.Help)
			}
			return w.Flush()
		},
	}

	root.AddCommand(
		optionCmd("value", "BSM.VALUE", "Forward put or call value"),
		optionCmd("delta", "BSM.DELTA", "Forward put or call delta"),
		moneynessCmd,
		cdfCmd,
		cumulantCmd,
		evalCmd,
		functionsCmd,
	)
	return root
}

// parseNamedArgs reads "name=value" pairs
func parseNamedArgs(args []string) (map[string]float64, error) {
	named := make(map[string]float64, len(args))
	for _, a := range args {
		key, raw, ok := strings.Cut(a, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("argument %q is not name=value", a)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", key, err)
		}
		named[key] = v
	}
	return named, nil
}
