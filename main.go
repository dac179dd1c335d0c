package main

import (
	"bandit/config"
	"bandit/experiments"
	"bandit/game"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bandit",
		Short: "Estimate when UCB1 provably beats random play",
		Long: `bandit simulates paired games of UCB1 against uniform random play and
estimates how many rounds are needed before a Bonferroni-corrected paired
t-test detects UCB1's advantage with a target probability.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "YAML settings file (defaults are built in)")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newRunCmd(),
		newArmsCmd(),
	)
	return rootCmd
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Estimate the smallest round meeting the target stopping probability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			b, err := cfg.Bandit()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			options := []experiments.Option{experiments.WithMetrics()}
			if cfg.Goroutines > 0 {
				options = append(options, experiments.WithGoroutines(cfg.Goroutines))
			}
			report, err := experiments.NewEstimator(options...).Estimate(ctx, b, cfg.Params())
			if err != nil {
				return err
			}

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return writeJSON(report)
			}
			printReport(report)
			return nil
		},
	}

	cmd.Flags().Int("r-max", 0, "Round horizon")
	cmd.Flags().Int("games", 0, "Paired games per experiment")
	cmd.Flags().Float64("alpha", 0, "Family-wise significance level")
	cmd.Flags().Float64("target", 0, "Target probability of stopping by a round")
	cmd.Flags().Int("experiments", 0, "Number of repeated experiments")
	cmd.Flags().Uint64("seed", 0, "Top-level seed")
	cmd.Flags().Int("goroutines", 0, "Parallel experiments (0 uses every CPU)")

	return cmd
}

func newArmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "arms",
		Short: "Print the parsed arms and their expected rewards",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			b, err := cfg.Bandit()
			if err != nil {
				return err
			}

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return writeJSON(map[string]any{
					"arms":       b.Arms,
					"means":      b.Means(),
					"min_reward": b.MinReward,
					"max_reward": b.MaxReward,
				})
			}
			printArms(b)
			return nil
		},
	}
}

// loadConfig applies defaults, then the config file, then any flags set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("r-max") {
		cfg.RMax, _ = flags.GetInt("r-max")
	}
	if flags.Changed("games") {
		cfg.Games, _ = flags.GetInt("games")
	}
	if flags.Changed("alpha") {
		cfg.Alpha, _ = flags.GetFloat64("alpha")
	}
	if flags.Changed("target") {
		cfg.TargetProb, _ = flags.GetFloat64("target")
	}
	if flags.Changed("experiments") {
		cfg.Experiments, _ = flags.GetInt("experiments")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("goroutines") {
		cfg.Goroutines, _ = flags.GetInt("goroutines")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	setupLogging(cfg.LogLevel)
	return cfg, nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

func writeJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func printArms(b *game.Bandit) {
	for i, arm := range b.Arms {
		fmt.Printf("Arm %d: %.0f%% chance of %g, else %g (mean %.3f)\n", i, arm.P*100, arm.High, arm.Low, arm.Mean())
	}
	fmt.Printf("Reward range: [%g, %g]\n", b.MinReward, b.MaxReward)
}

func printReport(r *experiments.Report) {
	fmt.Printf("Arm means: %.3f\n", r.ArmMeans)
	fmt.Printf("R_MAX=%d, N_GAMES=%d, ALPHA=%g, SEED=%d\n", r.RMax, r.Games, r.Alpha, r.Seed)
	fmt.Printf("Bonferroni per-round threshold: %.6f\n", r.Threshold)
	fmt.Printf("Target P(stop by r) >= %.2f using %d experiments\n", r.TargetProb, r.Experiments)
	if r.TargetMet {
		fmt.Printf("Smallest r meeting target: %d\n", r.TargetRound)
		fmt.Printf("Estimated P(stop by r_target): %.3f\n", r.ProbabilityAtTarget)
	} else {
		fmt.Printf("Smallest r meeting target: none within %d rounds\n", r.RMax)
		fmt.Printf("Estimated P(stop by %d): %.3f\n", r.RMax, r.ProbabilityAtTarget)
	}
	if r.Metrics != nil {
		fmt.Printf("Simulated %d games in %s\n", r.Metrics.Games, r.Metrics.Duration)
	}
}
