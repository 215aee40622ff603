package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	sim "github.com/inference-sim/mmcsim/sim"
)

// Flag names double as viper keys and, upper-cased with "_", as the
// MMCSIM_* environment variables.
const (
	flagArrivalRate    = "arrival-rate"
	flagServiceRate    = "service-rate"
	flagCustomers      = "customers"
	flagServers        = "servers"
	flagSeed           = "seed"
	flagSampleInterval = "sample-interval"
	flagTimeScale      = "time-scale"
	flagConfig         = "config"
	flagFormat         = "format"
	flagLog            = "log"
)

const envPrefix = "MMCSIM"

// Report formats accepted by --format.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// rootCmd is the mmcsim command run by Execute.
var rootCmd, _ = newRootCmd()

// newRootCmd builds the CLI. Each call returns an independent command and
// the viper instance its flags are bound to, so tests get fresh flag state.
func newRootCmd() (*cobra.Command, *viper.Viper) {
	v := viper.New()
	cmd := &cobra.Command{
		Use:           "mmcsim",
		Short:         "Multi-threaded M/M/c queueing simulator",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, v)
		},
	}

	flags := cmd.Flags()
	flags.Float64P(flagArrivalRate, "l", sim.DefaultArrivalRate, "Arrival rate λ (customers per second)")
	flags.Float64P(flagServiceRate, "m", sim.DefaultServiceRate, "Service rate μ per server (customers per second)")
	flags.IntP(flagCustomers, "c", sim.DefaultCustomers, "Number of customers to generate and serve")
	flags.IntP(flagServers, "s", sim.DefaultServers, "Number of servers")
	flags.Uint64(flagSeed, 0, "Seed for the per-goroutine random streams (0 = seed from the wall clock)")
	flags.Float64(flagSampleInterval, sim.DefaultSampleInterval, "Queue-length polling interval (simulated seconds)")
	flags.Float64(flagTimeScale, sim.DefaultTimeScale, "Real seconds per simulated second (e.g. 0.01 runs 100x faster)")
	flags.String(flagConfig, "", "Optional scenario YAML file; flags and MMCSIM_* env vars override it")
	flags.String(flagFormat, FormatText, "Report format (text, yaml)")
	flags.String(flagLog, "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		logrus.Fatalf("Binding flags: %v", err)
	}
	return cmd, v
}

// resolveConfig layers flags, MMCSIM_* environment variables and the
// optional scenario file (in that order of precedence) into a sim.Config.
// It does not validate the result.
func resolveConfig(cmd *cobra.Command, v *viper.Viper) (sim.Config, error) {
	if path, _ := cmd.Flags().GetString(flagConfig); path != "" {
		sc, err := LoadScenario(path)
		if err != nil {
			return sim.Config{}, err
		}
		if err := v.MergeConfigMap(sc.settings()); err != nil {
			return sim.Config{}, fmt.Errorf("applying scenario %s: %w", path, err)
		}
		logrus.Infof("Loaded scenario %s", path)
	}
	return sim.Config{
		ArrivalRate:    v.GetFloat64(flagArrivalRate),
		ServiceRate:    v.GetFloat64(flagServiceRate),
		Customers:      v.GetInt(flagCustomers),
		Servers:        v.GetInt(flagServers),
		Seed:           sim.NewSimulationKey(v.GetUint64(flagSeed)),
		SampleInterval: v.GetFloat64(flagSampleInterval),
		TimeScale:      v.GetFloat64(flagTimeScale),
	}, nil
}

func runSimulation(cmd *cobra.Command, v *viper.Viper) error {
	level, err := logrus.ParseLevel(v.GetString(flagLog))
	if err != nil {
		return fmt.Errorf("invalid log level %q", v.GetString(flagLog))
	}
	logrus.SetLevel(level)

	cfg, err := resolveConfig(cmd, v)
	if err != nil {
		return err
	}
	format := v.GetString(flagFormat)
	if format != FormatText && format != FormatYAML {
		return fmt.Errorf("unknown report format %q (want %s or %s)", format, FormatText, FormatYAML)
	}

	res, err := sim.Simulate(cfg, sim.Options{})
	if err != nil {
		return err
	}
	return writeReport(cmd.OutOrStdout(), res, format)
}

func writeReport(w io.Writer, res *sim.Result, format string) error {
	if format == FormatYAML {
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		return nil
	}
	res.Print(w)
	return nil
}

// Execute runs the CLI and exits non-zero on any error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Errorf("%v", err)
		os.Exit(1)
	}
}
