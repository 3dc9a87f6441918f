package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tesselate-labs/spatialfuse/internal/config"
	"github.com/tesselate-labs/spatialfuse/internal/diagnostics"
	"github.com/tesselate-labs/spatialfuse/internal/feature"
	"github.com/tesselate-labs/spatialfuse/internal/matio"
	"github.com/tesselate-labs/spatialfuse/internal/neighbors"
	"github.com/tesselate-labs/spatialfuse/internal/pipeline"
	"github.com/tesselate-labs/spatialfuse/internal/utils/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// A .env file is optional; real env vars still apply.
		log.Debug().Err(err).Msg("no .env file loaded")
	}
	logger.Init()

	cfg, err := config.LoadAugmentEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	decay, err := neighbors.ParseDecay(cfg.Decay)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid decay")
	}

	coords, err := matio.ReadMatrixCSV(cfg.CoordinatesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read coordinates")
	}
	feats, err := matio.ReadMatrixCSV(cfg.FeaturesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read features")
	}

	p := pipeline.New(
		pipeline.WithNeighbours(cfg.NumNeighbours),
		pipeline.WithLambda(cfg.Lambda),
		pipeline.WithDecay(decay),
		pipeline.WithMaxRadius(cfg.MaxRadius),
	)

	res, err := p.Process(coords, feature.FromDense(feats))
	if err != nil {
		log.Fatal().Err(err).Msg("augmentation failed")
	}

	if err := matio.WriteMatrixCSV(cfg.OutputPath, res.Augmented.ToDense()); err != nil {
		log.Fatal().Err(err).Msg("failed to write augmented matrix")
	}
	log.Info().Str("path", cfg.OutputPath).Msg("augmented matrix written")

	summary, err := diagnostics.RenderTerminal(os.Stderr, res.Distances, diagnostics.DefaultBins, "edge distances")
	if err != nil {
		log.Warn().Err(err).Msg("edge diagnostics skipped")
	} else {
		log.Info().
			Float64("median", summary.Median).
			Float64("mode", summary.Mode).
			Int("edges", summary.Edges).
			Msg("edge distance summary")
	}

	if cfg.HistogramPath != "" {
		if _, err := diagnostics.RenderHistogram(res.Distances, diagnostics.DefaultBins, "edge distances", cfg.HistogramPath); err != nil {
			log.Fatal().Err(err).Msg("failed to render histogram")
		}
		log.Info().Str("path", cfg.HistogramPath).Msg("edge histogram written")
	}
}
