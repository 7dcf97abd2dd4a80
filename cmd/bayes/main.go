// Command bayes answers queries against a network file without a server.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	docopt "github.com/docopt/docopt-go"
	"github.com/Harshitk-cp/bayes/internal/bayesnet"
	"github.com/Harshitk-cp/bayes/internal/buildconfig"
	"github.com/Harshitk-cp/bayes/internal/domain"
	"github.com/Harshitk-cp/bayes/internal/inference"
	"github.com/Harshitk-cp/bayes/internal/netfile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const usage = `bayes answers exact queries against a Bayesian network file.

Usage:
  bayes [-v] query NET HYPOTHESIS [--given=EVIDENCE]
  bayes [-v] params NET
  bayes [-v] independent NET VAR1 VAR2 [--given=EVIDENCE] [--tolerance=TOL]
  bayes [-v] relations NET VARIABLE [--given=EVIDENCE]
  bayes -h | --help
  bayes --version

Options:
  -g=EVIDENCE, --given=EVIDENCE     Evidence to condition on, e.g. "JohnCalls=T,MaryCalls=T".
  --tolerance=TOL                   Equality tolerance for independence tests [default: 1e-10]
  -v, --verbose                     Log debug output to stderr.
  -h, --help                        Show this screen.
  --version                         Show the version.

Examples:
  # Posterior probability of a burglary once both neighbours call.
  bayes query alarm.yaml Burglary=T --given JohnCalls=T,MaryCalls=T

  # Number of free parameters in all the CPTs.
  bayes params alarm.yaml

  # Are the calls independent once the alarm is known?
  bayes independent alarm.yaml JohnCalls MaryCalls --given Alarm=T

  # Parents, children, ancestors and descendants of a variable.
  bayes relations alarm.yaml Alarm
`

var errUsage = errors.New("usage")

type options struct {
	// Options
	Given           string `docopt:"--given"`
	ToleranceString string `docopt:"--tolerance"`
	Tolerance       float64
	Verbose         bool `docopt:"--verbose"`
	Help            bool `docopt:"--help"`
	Version         bool `docopt:"--version"`

	Filename string `docopt:"NET"`

	// Query
	Query      bool   `docopt:"query"`
	Hypothesis string `docopt:"HYPOTHESIS"`

	// Params
	Params bool `docopt:"params"`

	// Independent
	Independent bool   `docopt:"independent"`
	Var1        string `docopt:"VAR1"`
	Var2        string `docopt:"VAR2"`

	// Relations
	Relations bool   `docopt:"relations"`
	Variable  string `docopt:"VARIABLE"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "bayes: %v\n", err)
		}
		os.Exit(1)
	}
}

// parseArgs returns nil options when help or the version was printed.
func parseArgs(args []string, stdout, stderr io.Writer) (*options, error) {
	parser := &docopt.Parser{
		HelpHandler: func(err error, usage string) {
			if err != nil {
				fmt.Fprintln(stderr, usage)
				return
			}
			fmt.Fprintln(stdout, usage)
		},
	}
	if args == nil {
		args = []string{}
	}
	opts, err := parser.ParseArgs(usage, args, "bayes "+buildconfig.String())
	if err != nil {
		return nil, errUsage
	}
	if opts == nil {
		return nil, nil
	}

	var options options
	if err := opts.Bind(&options); err != nil {
		return nil, fmt.Errorf("binding command-line arguments: %w", err)
	}
	if options.Help || options.Version {
		return nil, nil
	}
	options.Tolerance = inference.DefaultTolerance
	if options.ToleranceString != "" {
		options.Tolerance, err = strconv.ParseFloat(options.ToleranceString, 64)
		if err != nil || options.Tolerance < 0 {
			return nil, fmt.Errorf("--tolerance: invalid value %q", options.ToleranceString)
		}
	}
	return &options, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	options, err := parseArgs(args, stdout, stderr)
	if err != nil || options == nil {
		return err
	}

	logger := zap.NewNop()
	if options.Verbose {
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(stderr),
			zap.DebugLevel,
		)
		logger = zap.New(core)
		defer func() { _ = logger.Sync() }()
	}

	net, def, err := netfile.Load(options.Filename)
	if err != nil {
		return err
	}
	logger.Debug("network loaded",
		zap.String("name", def.Name),
		zap.Strings("order", net.TopologicalSort()),
	)

	givens, err := domain.ParseAssignment(options.Given)
	if err != nil {
		return fmt.Errorf("--given: %w", err)
	}
	if err := checkVariables(net, givens.Keys()...); err != nil {
		return fmt.Errorf("--given: %w", err)
	}

	switch {
	case options.Params:
		fmt.Fprintln(stdout, inference.NumberOfParameters(net))

	case options.Relations:
		v := options.Variable
		if err := checkVariables(net, v); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "domain:          %s\n", strings.Join(net.Domain(v), ", "))
		fmt.Fprintf(stdout, "parents:         %s\n", strings.Join(net.Parents(v), ", "))
		fmt.Fprintf(stdout, "children:        %s\n", strings.Join(net.Children(v), ", "))
		fmt.Fprintf(stdout, "ancestors:       %s\n", strings.Join(inference.Ancestors(net, v), ", "))
		fmt.Fprintf(stdout, "descendants:     %s\n", strings.Join(inference.Descendants(net, v), ", "))
		fmt.Fprintf(stdout, "non-descendants: %s\n", strings.Join(inference.NonDescendants(net, v), ", "))
		if givens != nil {
			fmt.Fprintf(stdout, "simplified:      %s\n", inference.SimplifyGivens(net, v, givens))
		}

	case options.Independent:
		if err := checkVariables(net, options.Var1, options.Var2); err != nil {
			return err
		}
		ok, err := inference.IsIndependentWithin(net, options.Var1, options.Var2, givens, options.Tolerance)
		if err != nil {
			return err
		}
		logger.Debug("independence",
			zap.String("var1", options.Var1),
			zap.String("var2", options.Var2),
			zap.Stringer("givens", givens),
			zap.Bool("independent", ok),
		)
		fmt.Fprintln(stdout, ok)

	case options.Query:
		hypothesis, err := domain.ParseAssignment(options.Hypothesis)
		if err != nil {
			return fmt.Errorf("HYPOTHESIS: %w", err)
		}
		if err := checkVariables(net, hypothesis.Keys()...); err != nil {
			return err
		}
		p, err := inference.Probability(net, hypothesis, givens)
		if err != nil {
			return err
		}
		logger.Debug("probability", zap.Stringer("hypothesis", hypothesis), zap.Stringer("givens", givens), zap.Float64("p", p))
		fmt.Fprintf(stdout, "%.10g\n", p)
	}
	return nil
}

func checkVariables(net *bayesnet.Net, names ...string) error {
	for _, v := range names {
		if !net.HasVariable(v) {
			return fmt.Errorf("%w %q", bayesnet.ErrUnknownVariable, v)
		}
	}
	return nil
}
