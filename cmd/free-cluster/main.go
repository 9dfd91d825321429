package main

import (
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/drakos74/free-cluster/infra/config"
	"github.com/drakos74/free-cluster/internal/kmeans"
	"github.com/drakos74/free-cluster/internal/metrics"
	"github.com/drakos74/free-cluster/internal/server"
	"github.com/drakos74/free-cluster/internal/storage"
	json_storage "github.com/drakos74/free-cluster/internal/storage/file/json"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	var cfg kmeans.Config
	config.MustLoad(kmeans.Name, &cfg)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	store, err := shard(cfg.Storage)(kmeans.Name)
	if err != nil {
		log.Fatal().Err(err).Str("storage", cfg.Storage.Type).Msg("could not create storage")
	}

	srv := server.NewServer(kmeans.Name, cfg.Port).
		Add(server.Live()).
		Add(kmeans.New(cfg, store).Routes()...).
		Mount("/metrics", metrics.Handler())
	if cfg.Debug {
		srv.Debug()
	}
	if info, err := os.Stat(cfg.Static); err == nil && info.IsDir() {
		srv.Mount("/", http.FileServer(http.Dir(cfg.Static)))
	} else if cfg.Static != "" {
		log.Warn().Str("dir", cfg.Static).Msg("no static files to serve")
	}

	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("error running server")
	}
}

func shard(cfg kmeans.StorageConfig) storage.Shard {
	switch cfg.Type {
	case kmeans.File:
		if cfg.Dir != "" {
			storage.DefaultDir = cfg.Dir
		}
		return json_storage.BlobShard("traces")
	case kmeans.Memory:
		return json_storage.LocalShard(cfg.Capacity)
	}
	log.Warn().Str("storage", cfg.Type).Msg("unknown storage type, runs will not be kept")
	return storage.VoidShard()
}
