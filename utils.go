package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/9seconds/geobatch/batchlib"
	"github.com/9seconds/geobatch/providers"
)

func makeRootContext() (context.Context, context.CancelFunc) {
	rootCtx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)

	go func() {
		for range sigChan {
			cancel()
		}
	}()

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	return rootCtx, cancel
}

func makeResolver(db batchlib.Database, conf *config) batchlib.Resolver {
	resolver := batchlib.NewResolver(db)

	if size := conf.GetCacheSize(); size > 0 {
		resolver = batchlib.NewCachingResolver(resolver, size)
	}

	return resolver
}

func openDatabase(conf *config, log *logger) (*providers.MaxMind, error) {
	db, err := providers.OpenMaxMind(conf.GetDatabaseDirectory(),
		conf.CityDatabase, conf.ASNDatabase)
	if err != nil {
		return nil, err
	}

	hasASN := false

	for _, v := range db.Databases() {
		log.DatabaseInfo(v)

		hasASN = hasASN || v.Kind == providers.KindASN
	}

	if !hasASN {
		log.DatabaseMissing(providers.KindASN, conf.GetDatabaseDirectory())
	}

	return db, nil
}
