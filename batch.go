package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/afero"

	"github.com/9seconds/geobatch/batchlib"
	"github.com/9seconds/geobatch/exporters"
	"github.com/9seconds/geobatch/sources"
)

type batchJob struct {
	addresses  []string
	inputFile  string
	outputFile string
	stdout     io.Writer
	progress   bool
	fs         afero.Fs
}

func (b batchJob) getFs() afero.Fs {
	if b.fs != nil {
		return b.fs
	}

	return afero.NewOsFs()
}

// runBatch does a full cycle: open databases, read addresses, resolve
// them and export results. Everything which can be checked before the
// first lookup is checked before it: databases, input file and a
// destination.
func runBatch(ctx context.Context, conf *config, job batchJob, log *logger) error {
	if len(job.addresses) == 0 && job.inputFile == "" {
		return batchlib.NewConfigurationError("nothing to resolve",
			errors.New("pass addresses as arguments or use --input-file"))
	}

	db, err := openDatabase(conf, log)
	if err != nil {
		return err
	}

	defer db.Close()

	fs := job.getFs()

	source, err := sources.New(fs, job.addresses, job.inputFile)
	if err != nil {
		return err
	}

	defer source.Close()

	sink := job.stdout

	if job.outputFile != "" {
		output, err := exporters.CreateOutputFile(fs, job.outputFile)
		if err != nil {
			return err
		}

		defer output.Discard() // nolint: errcheck

		sink = output
	}

	pool, err := batchlib.NewWorkerPool(makeResolver(db, conf), log,
		conf.GetWorkers(), conf.GetResultsBuffer())
	if err != nil {
		return fmt.Errorf("cannot create worker pool: %w", err)
	}

	defer pool.Close()

	bar := newProgress(job.progress)
	startTime := time.Now()

	results, err := batchlib.Pipeline{
		Pool:     pool,
		OnResult: bar.Add,
	}.Run(ctx, source)

	bar.Finish()

	if err != nil {
		return fmt.Errorf("cannot resolve addresses: %w", err)
	}

	log.BatchInfo(results.Stats(), pool.Workers(), time.Since(startTime))

	if err := exporters.Export(results, exporters.Classify(job.outputFile), sink); err != nil {
		return fmt.Errorf("cannot export results: %w", err)
	}

	if output, ok := sink.(*exporters.OutputFile); ok {
		if err := output.Commit(); err != nil {
			return fmt.Errorf("cannot write results to %s: %w", output.Path(), err)
		}
	}

	return nil
}
