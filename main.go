package main

import (
	"errors"
	"flag"
	"log"
	"math/rand/v2"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/particle-backdrop/internal/audio"
	"github.com/iburimskiy/particle-backdrop/internal/config"
	"github.com/iburimskiy/particle-backdrop/internal/game"
	"github.com/iburimskiy/particle-backdrop/internal/particle"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a TOML config file")
		variant    = flag.String("variant", "", "particle variant: classic or constellation")
		width      = flag.Int("width", 0, "initial window width (overrides config)")
		height     = flag.Int("height", 0, "initial window height (overrides config)")
		seed       = flag.Uint64("seed", 0, "particle seed, 0 seeds from the clock (overrides config)")
		track      = flag.String("track", "", "ambient audio file to loop (wav, mp3, flac)")
		pprofAddr  = flag.String("pprof", "", "serve net/http/pprof on this address, e.g. localhost:6060")
		hud        = flag.Bool("hud", false, "show the HUD on start")
	)
	flag.Parse()

	log.SetPrefix("backdrop: ")
	log.SetFlags(log.LstdFlags)

	cfg, err := config.Load(*configPath, *variant)
	if err != nil {
		log.Fatal(err)
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *track != "" {
		cfg.Track = *track
	}
	if *hud {
		cfg.HUD = true
	}

	if *pprofAddr != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	params, err := cfg.FieldParams()
	if err != nil {
		log.Fatal(err)
	}
	s := cfg.Seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	field := particle.NewField(params, rand.New(rand.NewPCG(s, s>>1|1)))

	player := audio.NewPlayer(config.VisualRingSize, config.LevelWindow, config.SmoothingFactor)
	defer func() {
		if err := player.Close(); err != nil {
			log.Println(err)
		}
	}()

	g := game.New(cfg, field, player, game.ZenityDialogs{})
	if cfg.Track != "" {
		if err := player.Open(cfg.Track); err != nil {
			log.Printf("ambient track: %v", err)
		}
	}

	log.Printf("%s variant, %dx%d, %d particles", cfg.Variant, cfg.Window.Width, cfg.Window.Height, len(field.Particles()))

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
