package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZeroLiu2018/mcbench/config"
	"github.com/ZeroLiu2018/mcbench/constants"
	"github.com/ZeroLiu2018/mcbench/logger"
	"github.com/ZeroLiu2018/mcbench/runner"
	"github.com/ZeroLiu2018/mcbench/store"
)

var runFlags struct {
	configFile string
	logFile    string

	requests  int
	clients   int
	size      int
	operation string

	protocol          string
	deviceName        string
	localHostname     string
	metadataServer    string
	masterServer      string
	globalSegmentSize int64
	localBufferSize   int64
	resultsFile       string
}

var RunCmd = &cobra.Command{
	Use:   "run [flags]",
	Short: "Run the Put/Get benchmark",
	Long:  "Drive the configured number of put, get or mixed requests against the store as fast as possible and report aggregate throughput. Explicit flags override config file values, which override environment variables and defaults",
	Args:  cobra.NoArgs,
	RunE:  runBenchmark,
}

func init() {
	f := RunCmd.Flags()
	f.StringVar(&runFlags.configFile, "config", "", "path to a JSON config file")
	f.StringVar(&runFlags.logFile, "log-file", constants.DEFAULT_RUN_LOG_FILE, "benchmark run log file")
	f.IntVarP(&runFlags.requests, "requests", "n", constants.DEFAULT_REQUESTS, "total number of requests")
	f.IntVarP(&runFlags.clients, "clients", "c", constants.DEFAULT_CONCURRENCY, "number of concurrent clients")
	f.IntVarP(&runFlags.size, "size", "s", constants.DEFAULT_VALUE_SIZE, "value size for PUT in bytes")
	f.StringVarP(&runFlags.operation, "operation", "o", constants.OP_PUT, "benchmark operation: put, get or mixed")
	f.StringVar(&runFlags.protocol, "protocol", "", "transfer protocol (tcp or rdma)")
	f.StringVar(&runFlags.deviceName, "device-name", "", "RDMA device name")
	f.StringVar(&runFlags.localHostname, "local-hostname", "", "hostname registered in the metadata plane")
	f.StringVar(&runFlags.metadataServer, "metadata-server", "", "metadata server address")
	f.StringVar(&runFlags.masterServer, "master-server-address", "", "master server address")
	f.Int64Var(&runFlags.globalSegmentSize, "global-segment-size", 0, "global segment size in bytes")
	f.Int64Var(&runFlags.localBufferSize, "local-buffer-size", 0, "local buffer size in bytes")
	f.StringVar(&runFlags.resultsFile, "results-file", "", "CSV file to append the run summary to")
}

func runBenchmark(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.New(runFlags.logFile)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer log.Close()
	log.SetPrefix("[RUN] ")

	ctx := context.Background()
	st, err := store.Connect(ctx, cfg)
	if err != nil {
		// SetupError: fatal, nothing was timed
		return err
	}
	defer st.Close()
	log.Printf("Connected to %s (protocol %s)", cfg.MetadataServer, cfg.Protocol)

	res, err := runner.New(cfg, st, log).Run(ctx)
	if err != nil {
		return fmt.Errorf("benchmark run failed: %w", err)
	}

	fmt.Println()
	fmt.Println(res)

	if cfg.ResultsFile != "" {
		if err := res.AppendCSV(cfg.ResultsFile); err != nil {
			log.Printf("Failed to append result to %s: %v", cfg.ResultsFile, err)
		}
	}
	return nil
}

// resolveConfig applies the layered resolution: explicit flag > config file >
// environment variable > hard-coded default. GetDefaultConfig handles the env
// layer; only flags the user actually set override the layers below.
func resolveConfig(cmd *cobra.Command) (*config.BenchConfig, error) {
	cfg := config.GetDefaultConfig()
	if runFlags.configFile != "" {
		fileCfg, err := config.ReadConfig(runFlags.configFile)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		cfg = fileCfg
	}

	f := cmd.Flags()
	if f.Changed("requests") {
		cfg.TotalRequests = runFlags.requests
	}
	if f.Changed("clients") {
		cfg.Concurrency = runFlags.clients
	}
	if f.Changed("size") {
		cfg.ValueSize = runFlags.size
	}
	if f.Changed("operation") {
		cfg.Operation = runFlags.operation
	}
	if f.Changed("protocol") {
		cfg.Protocol = runFlags.protocol
	}
	if f.Changed("device-name") {
		cfg.DeviceName = runFlags.deviceName
	}
	if f.Changed("local-hostname") {
		cfg.LocalHostname = runFlags.localHostname
	}
	if f.Changed("metadata-server") {
		cfg.MetadataServer = runFlags.metadataServer
	}
	if f.Changed("master-server-address") {
		cfg.MasterServerAddress = runFlags.masterServer
	}
	if f.Changed("global-segment-size") {
		cfg.GlobalSegmentSize = runFlags.globalSegmentSize
	}
	if f.Changed("local-buffer-size") {
		cfg.LocalBufferSize = runFlags.localBufferSize
	}
	if f.Changed("results-file") {
		cfg.ResultsFile = runFlags.resultsFile
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
