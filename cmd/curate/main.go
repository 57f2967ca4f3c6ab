package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/josenarvaezp/curate/internal/config"
	"github.com/josenarvaezp/curate/internal/job"
	"github.com/josenarvaezp/curate/internal/logs"
	"github.com/josenarvaezp/curate/internal/params"
	"github.com/josenarvaezp/curate/internal/parquetio"
)

// CLI for curate
var (
	// Used for CLI flags
	configFile    string
	functionName  string
	jobName       string
	rawBucket     string
	curatedBucket string
	destPartition string
	maxRows       int
)

func main() {
	// local credentials and region, the file is optional
	_ = godotenv.Load()

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(triggerCmd)
	rootCmd.AddCommand(inspectCmd)

	triggerCmd.Flags().StringVar(&configFile, "config", "", "path to the config file")
	triggerCmd.Flags().StringVar(&functionName, "function", "", "name of the function running the job")
	triggerCmd.Flags().StringVar(&jobName, "job-name", "", "name of the job")
	triggerCmd.Flags().StringVar(&rawBucket, "raw-bucket", "", "bucket holding the raw partitions")
	triggerCmd.Flags().StringVar(&curatedBucket, "curated-bucket", "", "bucket receiving the curated partition")
	triggerCmd.Flags().StringVar(&destPartition, "dest-partition", "", "destination partition, e.g. year=25/month=11/day=25")
	triggerCmd.MarkFlagRequired("function")
	triggerCmd.MarkFlagRequired("job-name")
	triggerCmd.MarkFlagRequired("raw-bucket")
	triggerCmd.MarkFlagRequired("curated-bucket")

	inspectCmd.Flags().IntVar(&maxRows, "rows", 20, "number of rows to print, all rows when negative")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "curate",
	Short: "Curate moves raw JSON partitions into a curated parquet partition",
	Long:  `Curate moves raw JSON partitions into a curated parquet partition, dropping a column on the way`,
}

var runCmd = &cobra.Command{
	Use:   "run --JOB_NAME name --RAW_BUCKET bucket --CURATED_BUCKET bucket",
	Short: "Run the job with the arguments passed by the orchestrator",
	Long: `Run the job with the arguments passed by the orchestrator. Arguments are
read as --NAME value pairs and any argument the job does not use is ignored.
Optional arguments are --DEST_PARTITION and --CONFIG_FILE.`,
	DisableFlagParsing: true,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		options, err := params.Resolve(args, params.Required, params.Optional)
		if err != nil {
			logrus.WithError(err).Fatal("Error resolving job arguments")
			return
		}

		conf, err := config.Load(options.Get(params.ConfigFile))
		if err != nil {
			logrus.WithField("File name", options.Get(params.ConfigFile)).WithError(err).Fatal("Error reading config file")
			return
		}
		logrus.SetLevel(logs.ConfigLogLevelToLevel(conf.LogLevel))

		session, err := job.NewSession(conf)
		if err != nil {
			logrus.WithError(err).Fatal("Error initializing session")
			return
		}

		err = job.Execute(ctx, session, options, os.Stdout)
		if err != nil {
			logrus.WithField("Job name", options.Get(params.JobName)).WithError(err).Fatal("Error running job")
			return
		}
	},
}

var triggerCmd = &cobra.Command{
	Use:   "trigger",
	Short: "Start a job run on the deployed function",
	Long:  `Start a job run on the deployed function. The function is invoked asynchronously.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		conf, err := config.Load(configFile)
		if err != nil {
			logrus.WithField("File name", configFile).WithError(err).Fatal("Error reading config file")
			return
		}
		logrus.SetLevel(logs.ConfigLogLevelToLevel(conf.LogLevel))

		values := map[string]string{
			params.JobName:       jobName,
			params.RawBucket:     rawBucket,
			params.CuratedBucket: curatedBucket,
		}
		if destPartition != "" {
			values[params.DestPartition] = destPartition
		}
		options, err := params.FromMap(values, params.Required, params.Optional)
		if err != nil {
			logrus.WithError(err).Fatal("Error resolving job arguments")
			return
		}

		session, err := job.NewSession(conf)
		if err != nil {
			logrus.WithError(err).Fatal("Error initializing session")
			return
		}

		err = job.Trigger(ctx, session.FaasAPI, functionName, options)
		if err != nil {
			logrus.WithField("Function name", functionName).WithError(err).Fatal("Error triggering job")
			return
		}

		fmt.Println("Job triggered: ", jobName)
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Print the columns and rows of a local parquet file",
	Long:  `Print the columns and rows of a local parquet file`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		table, err := parquetio.ReadFile(args[0])
		if err != nil {
			logrus.WithField("File name", args[0]).WithError(err).Fatal("Error reading parquet file")
			return
		}

		fmt.Printf("Columns: %s\n", strings.Join(table.Columns, ", "))
		fmt.Printf("Rows: %d\n", table.NumRows)
		for i, row := range table.Rows {
			if maxRows >= 0 && i >= maxRows {
				break
			}

			values := make([]string, 0, len(table.Columns))
			for _, column := range table.Columns {
				value, ok := row[column]
				if !ok {
					values = append(values, column+"=null")
					continue
				}
				values = append(values, fmt.Sprintf("%s=%v", column, value))
			}
			fmt.Println(strings.Join(values, " "))
		}
	},
}
