package kv

import (
	"fmt"
	"strings"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dockv/dockv/cmd/util"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for the store connection",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix  = "__perf"
	perfOps        = 10000
	perfValueSizeB = 128
	perfKeySpread  = 100
	perfSkip       = make([]string, 0)
)

func init() {
	// add flags
	key := "ops"
	perfTestCmd.Flags().Int(key, 10000, util.WrapString("Number of operations per benchmark"))
	key = "value-size"
	perfTestCmd.Flags().Int(key, 128, util.WrapString("Size of the value for set benchmarks (in bytes)"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different keys to spread the operations over"))
	key = "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. set,get)"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfOps = viper.GetInt("ops")
	perfValueSizeB = viper.GetInt("value-size")
	perfKeySpread = viper.GetInt("keys")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func shouldSkip(name string) bool {
	for _, s := range perfSkip {
		if s == name {
			return true
		}
	}
	return false
}

// perfKey spreads operations over perfKeySpread distinct keys
func perfKey(i int) string {
	return fmt.Sprintf("%s:key-%d", perfKeyPrefix, i%perfKeySpread)
}

// runBenchmark runs fn perfOps times and records per-operation latency in
// an exponentially-decaying histogram
func runBenchmark(name string, fn func(i int)) {
	if shouldSkip(name) {
		fmt.Printf("%-8s skipped\n", name)
		return
	}

	histogram := gometrics.NewHistogram(gometrics.NewExpDecaySample(1028, 0.015))

	start := time.Now()
	for i := 0; i < perfOps; i++ {
		opStart := time.Now()
		fn(i)
		histogram.Update(time.Since(opStart).Nanoseconds())
	}
	elapsed := time.Since(start)

	opsPerSec := float64(perfOps) / elapsed.Seconds()
	toMs := func(ns float64) float64 { return ns / float64(time.Millisecond) }

	fmt.Printf("%-8s %8d ops %10.0f ops/sec  mean=%.3fms p95=%.3fms p99=%.3fms max=%.3fms\n",
		name, perfOps, opsPerSec,
		toMs(histogram.Mean()),
		toMs(histogram.Percentile(0.95)),
		toMs(histogram.Percentile(0.99)),
		toMs(float64(histogram.Max())),
	)
}

func runPerf(_ *cobra.Command, _ []string) error {
	fmt.Println("Performance testing tool for the store connection")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	cfg := storeClient.Config()
	fmt.Println(cfg.String())
	fmt.Printf("Operations per benchmark: %d\n", perfOps)
	fmt.Println()

	if !storeClient.IsConnected() {
		return fmt.Errorf("store not reachable, aborting")
	}

	value := make([]byte, perfValueSizeB)

	runBenchmark("ping", func(i int) {
		storeClient.IsConnected()
	})

	runBenchmark("set", func(i int) {
		storeClient.Set(perfKey(i), value)
	})

	runBenchmark("get", func(i int) {
		storeClient.Get(perfKey(i))
	})

	runBenchmark("scan", func(i int) {
		storeClient.ScanByKeyBase(perfKeyPrefix)
	})

	runBenchmark("delete", func(i int) {
		storeClient.Delete(perfKey(i))
	})

	// cleanup whatever the delete benchmark did not cover
	for i := 0; i < perfKeySpread; i++ {
		storeClient.Delete(perfKey(i))
	}

	return nil
}
