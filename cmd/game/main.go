package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/sirupsen/logrus"
	"github.com/younwookim/tilerun/internal/application/game"
	"github.com/younwookim/tilerun/internal/application/replay"
	"github.com/younwookim/tilerun/internal/application/scene/playing"
	"github.com/younwookim/tilerun/internal/application/system"
	"github.com/younwookim/tilerun/internal/application/world"
	"github.com/younwookim/tilerun/internal/infrastructure/audio"
	"github.com/younwookim/tilerun/internal/infrastructure/config"
	"github.com/younwookim/tilerun/internal/infrastructure/logger"
	"github.com/younwookim/tilerun/internal/infrastructure/save"
)

const (
	appName = "tilerun"
	volume  = 0.5
)

var (
	recordFlag   = flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag   = flag.String("replay", "", "Play back a recorded input file")
	headlessFlag = flag.Bool("headless", false, "Run -replay without a window and print the final state")
	continueFlag = flag.Bool("continue", false, "Resume at the furthest map reached")
	muteFlag     = flag.Bool("mute", false, "Disable sound")
	configsFlag  = flag.String("configs", "", "Read configs from this directory instead of the embedded ones")
)

func main() {
	flag.Parse()
	logger.Init()

	if err := run(); err != nil {
		logger.Log.WithError(err).Fatal("game exited with error")
	}
}

// newLoader returns a loader for dir, or for the embedded configs when dir is empty
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// newWorld loads every config and builds an empty world
func newWorld(loader *config.Loader) (*config.GameConfig, *world.World, error) {
	cfg, err := loader.LoadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	catalog, err := system.NewCatalog(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build catalog: %w", err)
	}
	w, err := world.New(cfg, catalog, loader.ReadMap)
	if err != nil {
		return nil, nil, err
	}
	return cfg, w, nil
}

func run() error {
	loader, err := newLoader(*configsFlag)
	if err != nil {
		return err
	}
	cfg, w, err := newWorld(loader)
	if err != nil {
		return err
	}

	var data *replay.ReplayData
	if *replayFlag != "" {
		data, err = replay.LoadReplay(*replayFlag)
		if err != nil {
			return err
		}
		logger.Log.WithFields(logrus.Fields{
			"file":   *replayFlag,
			"map":    data.Map,
			"frames": len(data.Frames),
		}).Info("replay loaded")
	}

	if *headlessFlag {
		if data == nil {
			return errors.New("-headless needs -replay")
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		summary, err := runHeadless(ctx, w, *data)
		if err != nil {
			return err
		}
		fmt.Println(summary)
		return nil
	}

	opts := playing.Options{
		Replay:     data,
		Record:     *recordFlag != "",
		RecordPath: *recordFlag,
	}
	if data == nil {
		store, err := save.Open(appName)
		if err != nil {
			logger.Log.WithError(err).Warn("progress will not be saved")
		} else {
			opts.Progress = store
			if *continueFlag {
				opts.StartMap = store.ContinueFrom(cfg.Game.Maps)
			}
		}
	}
	if !*muteFlag {
		opts.Audio = audio.NewPlayer(ebaudio.NewContext(audio.SampleRate), volume)
	}

	display := cfg.Game.Display
	sc := playing.New(cfg, w, system.NewKeyboardSource(system.DefaultKeyBindings()), opts)
	g := game.New(sc, display.ScreenWidth(), display.ScreenHeight())
	g.SetDT(1.0 / float64(display.Framerate))

	ebiten.SetWindowSize(display.ScreenWidth()*display.Scale, display.ScreenHeight()*display.Scale)
	ebiten.SetWindowTitle(display.Title)
	ebiten.SetTPS(display.Framerate)

	logger.Log.WithFields(logrus.Fields{
		"start":  opts.StartMap,
		"record": opts.Record,
		"replay": data != nil,
	}).Info("starting game")

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}
