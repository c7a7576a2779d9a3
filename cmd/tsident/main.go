// Command tsident runs Box-Jenkins model identification over a CSV column and
// prints an analysis report. It is a thin presentation layer: all analytical
// state lives in the value objects returned by the library.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sartorproj/tsident/identify"
	"github.com/sartorproj/tsident/stats"
	"github.com/sartorproj/tsident/timeseries"
)

const version = "0.1.0"

var log = logrus.New()

var (
	inputFile   string
	valueColumn string
	maxLag      int
	confidence  float64
	alpha       float64
	fillMissing bool
	configFile  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tsident",
		Short: "Box-Jenkins time series model identification",
		Long: `TSIdent analyzes a scalar time series and suggests ARIMA model orders.

It computes the autocorrelation structure (ACF/PACF), tests for stationarity
(ADF, KPSS) and white noise (Ljung-Box), and reads candidate model orders off
the joint correlation pattern using the classical identification rules.`,
		Version: version,
		RunE:    runAnalysis,
	}

	rootCmd.Flags().StringVarP(&inputFile, "input", "i", "", "CSV file containing the series (required)")
	rootCmd.Flags().StringVarP(&valueColumn, "column", "c", "y", "Value column name")
	rootCmd.Flags().IntVarP(&maxLag, "max-lag", "l", 20, "Maximum lag for ACF/PACF")
	rootCmd.Flags().Float64Var(&confidence, "confidence", 0.95, "Confidence level for correlation bounds (0.90, 0.95, 0.99)")
	rootCmd.Flags().Float64Var(&alpha, "alpha", stats.DefaultAlpha, "Significance threshold for the statistical tests")
	rootCmd.Flags().BoolVar(&fillMissing, "fill-missing", false, "Interpolate interior missing values instead of dropping them")
	rootCmd.Flags().StringVar(&configFile, "config", "", "Config file with classification policy overrides")
	rootCmd.MarkFlagRequired("input")

	viper.SetEnvPrefix("TSIDENT")
	viper.AutomaticEnv()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadPolicy merges classification policy overrides from the config file and
// environment on top of the defaults.
func loadPolicy() (identify.Policy, error) {
	policy := identify.DefaultPolicy()

	viper.SetDefault("policy.min_insig_run", policy.MinInsigRun)
	viper.SetDefault("policy.early_cutoff_frac", policy.EarlyCutoffFrac)
	viper.SetDefault("policy.cutoff_drop_frac", policy.CutoffDropFrac)
	viper.SetDefault("policy.max_order", policy.MaxOrder)

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return policy, fmt.Errorf("reading config: %w", err)
		}
	}

	policy.MinInsigRun = viper.GetInt("policy.min_insig_run")
	policy.EarlyCutoffFrac = viper.GetFloat64("policy.early_cutoff_frac")
	policy.CutoffDropFrac = viper.GetFloat64("policy.cutoff_drop_frac")
	policy.MaxOrder = viper.GetInt("policy.max_order")

	return policy, nil
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	policy, err := loadPolicy()
	if err != nil {
		return err
	}

	opts := timeseries.DefaultCSVOptions()
	opts.ValueColumn = valueColumn
	opts.FillMissing = fillMissing

	series, err := timeseries.LoadCSV(inputFile, opts)
	if err != nil {
		return fmt.Errorf("loading %s: %w", inputFile, err)
	}
	series.Name = valueColumn

	if err := series.Validate(); err != nil {
		return fmt.Errorf("series not analyzable: %w", err)
	}

	n := series.Len()
	if n <= 2*maxLag {
		log.WithFields(logrus.Fields{
			"observations": n,
			"max_lag":      maxLag,
		}).Warn("series is short relative to max lag; correlation estimates will be noisy")
	}

	printSummary(series)

	level := stats.ConfidenceLevel(confidence)

	st, err := stats.TestStationarity(series, alpha)
	if err != nil {
		return fmt.Errorf("stationarity tests: %w", err)
	}
	if st.Recommendation.Ambiguous {
		log.WithFields(logrus.Fields{
			"adf_p":  st.ADF.PValue,
			"kpss_p": st.KPSS.PValue,
		}).Warn("stationarity tests disagree; differencing order needs judgment")
	}
	printStationarity(st)

	acf, err := stats.ACF(series, maxLag, level)
	if err != nil {
		return fmt.Errorf("ACF: %w", err)
	}
	pacf, err := stats.PACF(series, maxLag, level)
	if err != nil {
		return fmt.Errorf("PACF: %w", err)
	}
	printCorrelation(acf)
	printCorrelation(pacf)

	lbLags := maxLag / 2
	if lbLags < 1 {
		lbLags = 1
	}
	lb, err := stats.LjungBox(acf, lbLags, alpha)
	if err != nil {
		return fmt.Errorf("Ljung-Box: %w", err)
	}
	printWhiteNoise(lb)

	suggestion, err := identify.Suggest(acf, pacf, &st.Recommendation, policy)
	if err != nil {
		return fmt.Errorf("identification: %w", err)
	}
	printSuggestion(suggestion)

	return nil
}

func printSummary(series *timeseries.Series) {
	s := series.Summarize()
	fmt.Printf("Series %q: %d observations\n", series.Name, s.Count)
	fmt.Printf("  mean=%.4f std=%.4f min=%.4f median=%.4f max=%.4f\n",
		s.Mean, s.Std, s.Min, s.Median, s.Max)
	fmt.Printf("  skewness=%.4f excess kurtosis=%.4f\n\n", s.Skewness, s.Kurtosis)
}

func printStationarity(st *stats.StationarityResult) {
	fmt.Println("Stationarity:")
	fmt.Printf("  ADF:  stat=%.4f p=%.4f stationary=%v\n",
		st.ADF.Statistic, st.ADF.PValue, st.ADF.IsStationary)
	fmt.Printf("  KPSS: stat=%.4f p=%.4f stationary=%v\n",
		st.KPSS.Statistic, st.KPSS.PValue, st.KPSS.IsStationary)
	fmt.Printf("  Recommendation: d=%d", st.Recommendation.D)
	if st.Recommendation.Ambiguous {
		fmt.Printf(" (or d=%d)", st.Recommendation.DMax)
	}
	fmt.Printf("\n    %s\n\n", st.Recommendation.Rationale)
}

func printCorrelation(cs *stats.CorrelationSeries) {
	fmt.Printf("%s (max lag %d, band ±%.4f):\n", cs.Kind, cs.MaxLag, cs.ConfBound)
	fmt.Printf("  significant lags: %v\n\n", cs.SignificantLags())
}

func printWhiteNoise(lb *stats.WhiteNoiseResult) {
	fmt.Println("White noise (Ljung-Box):")
	fmt.Printf("  Q=%.4f p=%.4f lags=%d white noise=%v\n\n",
		lb.Statistic, lb.PValue, lb.Lags, lb.IsWhiteNoise)
}

func printSuggestion(s *identify.Suggestion) {
	fmt.Printf("Pattern: ACF %s, PACF %s\n", s.ACF.Pattern, s.PACF.Pattern)
	fmt.Println("Suggested models:")
	for i, c := range s.Candidates {
		marker := "  "
		if i == 0 {
			marker = "* "
		}
		fmt.Printf("%sARIMA(%d,%d,%d) [%s confidence]\n", marker, c.P, c.D, c.Q, c.Tier)
		fmt.Printf("    %s\n", c.Rationale)
	}
}
