// Command lledemo runs a handful of random-policy steps against a level
// preset and logs the resulting events, matching the teacher's
// package-level zerolog/log plus a uuid-tagged run ID.
package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samuelfneumann/progressbar"

	"github.com/samuelfneumann/lle/env"
	"github.com/samuelfneumann/lle/tile"
	"github.com/samuelfneumann/lle/worldconfig"
)

func main() {
	level := flag.Int("level", 1, "built-in level preset to run (1-6)")
	steps := flag.Int("steps", 20, "number of random-policy steps to run")
	seed := flag.Int64("seed", time.Now().UnixNano(), "RNG seed for the random policy and laser randomization")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	runID := uuid.NewString()
	logger := log.With().Str("run_id", runID).Int("level", *level).Logger()

	cfg, err := worldconfig.Level(*level)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load level preset")
	}
	cfg.Seed = uint64(*seed)

	e, err := env.NewBuilder(cfg).
		Name("lledemo").
		ObsType(env.ObsLayered).
		DeathStrategyOption("end").
		Build()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build environment")
	}
	e.Seed(uint64(*seed))

	_, state, err := e.Reset()
	if err != nil {
		logger.Fatal().Err(err).Msg("reset failed")
	}
	logger.Info().Interface("state", state).Msg("reset")

	progBar := progressbar.New(50, *steps, time.Second, true)
	progBar.Display()

	rng := rand.New(rand.NewSource(*seed))
	for i := 0; i < *steps; i++ {
		progBar.Increment()
		available := e.AvailableActions()
		actions := make([]tile.Action, len(available))
		for agentID, choices := range available {
			actions[agentID] = choices[rng.Intn(len(choices))]
		}

		_, state, reward, done, info, err := e.Step(actions)
		if err != nil {
			logger.Error().Err(err).Int("step", i).Msg("step rejected")
			break
		}
		logger.Info().
			Int("step", i).
			Interface("actions", actions).
			Floats64("reward", reward).
			Bool("done", done).
			Interface("info", info).
			Msg("step")
		if done {
			logger.Info().Interface("final_state", state).Msg("episode finished")
			break
		}
	}
	progBar.Close()
}
