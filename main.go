package main

import (
	"os"

	"go.uber.org/automaxprocs/maxprocs"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

const version = "0.1.0"

var (
	app = kingpin.New(
		"geobatch",
		"Fast batch IP geolocation against local MaxMind databases")

	debug = app.Flag("debug", "Run in debug mode.").
		Envar("GEOBATCH_DEBUG").
		Bool()
	configFile = app.Flag("config", "Path to the hjson config.").
			Short('c').
			Envar("GEOBATCH_CONFIG").
			String()
	inputFile = app.Flag("input-file", "File with one IP address per line.").
			Envar("GEOBATCH_INPUT_FILE").
			String()
	outputFile = app.Flag("output-file",
		"Where to write results. .csv gives CSV, anything else gives JSON. Stdout if omitted.").
		Envar("GEOBATCH_OUTPUT_FILE").
		String()
	databaseDirectory = app.Flag("database-directory", "Directory with MaxMind databases.").
				Short('d').
				Envar("GEOBATCH_DATABASE_DIRECTORY").
				String()
	workers = app.Flag("workers", "A number of concurrent workers. 0 means a number of CPUs.").
		Short('w').
		Envar("GEOBATCH_WORKERS").
		Uint()
	cacheSize = app.Flag("cache-size", "A size of LRU cache for repeated addresses.").
			Envar("GEOBATCH_CACHE_SIZE").
			Uint()
	noProgress = app.Flag("no-progress", "Do not show a progress bar.").
			Envar("GEOBATCH_NO_PROGRESS").
			Bool()
	addresses = app.Arg("ip", "IP addresses to resolve.").Strings()
)

func init() {
	app.Version(version)
	app.VersionFlag.Short('v')
	app.HelpFlag.Short('h')
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	conf, err := readConfig(*configFile)
	app.FatalIfError(err, "cannot read config")

	err = conf.ApplyFlags(*databaseDirectory, *workers, *cacheSize)
	app.FatalIfError(err, "")

	log := newLogger(os.Stderr, *debug)

	undoMaxprocs, _ := maxprocs.Set(maxprocs.Logger(log.Printf))
	defer undoMaxprocs()

	ctx, cancel := makeRootContext()
	defer cancel()

	err = runBatch(ctx, conf, batchJob{
		addresses:  *addresses,
		inputFile:  *inputFile,
		outputFile: *outputFile,
		stdout:     os.Stdout,
		progress:   !*noProgress,
	}, log)

	cancel()
	app.FatalIfError(err, "")
}
