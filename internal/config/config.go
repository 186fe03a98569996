package config

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/BurntSushi/toml"

	"github.com/iburimskiy/particle-backdrop/internal/particle"
)

const (
	WindowWidth  = 1024
	WindowHeight = 768
	WindowTitle  = "Particle Backdrop - S: snapshot, O: open track, H: HUD, Esc/Q: quit"

	VisualRingSize  = 8192
	SmoothingFactor = 0.6
	LevelWindow     = 2048

	// Field parameters
	AreaPerParticle      = 9000
	ParticleSpeed        = 0.2
	RepelStep            = 2
	RepelMargin          = 10
	PointerRadiusDivisor = 80
	ConnectorDivisor     = 7
	ConnectorFalloff     = 20000
	ConnectorOpacity     = 0.3
	ConnectorWidth       = 1

	DriftSaturation = 0.8
	DriftValue      = 0.9
)

const (
	VariantClassic       = "classic"
	VariantConstellation = "constellation"
)

var (
	ErrUnknownVariant = errors.New("unknown variant")
	ErrInvalid        = errors.New("invalid setting")
)

type WindowConfig struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Title     string `toml:"title"`
	Resizable bool   `toml:"resizable"`
}

type Config struct {
	Window  WindowConfig `toml:"window"`
	Variant string       `toml:"variant"`
	// Seed for particle placement. Zero seeds from the clock.
	Seed uint64 `toml:"seed"`

	AreaPerParticle float64 `toml:"area_per_particle"`
	MaxParticles    int     `toml:"max_particles"`
	SizeMin         float64 `toml:"size_min"`
	SizeMax         float64 `toml:"size_max"`
	Speed           float64 `toml:"speed"`
	Inset           bool    `toml:"inset"`

	Background    string `toml:"background"`
	ParticleColor string `toml:"particle_color"`

	Repel                bool    `toml:"repel"`
	RepelStep            float64 `toml:"repel_step"`
	RepelMargin          float64 `toml:"repel_margin"`
	PointerRadiusDivisor float64 `toml:"pointer_radius_divisor"`

	Connect          bool    `toml:"connect"`
	ConnectorColor   string  `toml:"connector_color"`
	ConnectorWidth   float64 `toml:"connector_width"`
	ConnectorDivisor float64 `toml:"connector_divisor"`
	ConnectorFalloff float64 `toml:"connector_falloff"`
	ConnectorOpacity float64 `toml:"connector_opacity"`

	// HueDrift rotates the particle hue by this many degrees per frame.
	HueDrift        float64 `toml:"hue_drift"`
	DriftSaturation float64 `toml:"drift_saturation"`
	DriftValue      float64 `toml:"drift_value"`

	// PulseGain scales drawn particle radius by the ambient track loudness.
	PulseGain float64 `toml:"pulse_gain"`
	Track     string  `toml:"track"`
	HUD       bool    `toml:"hud"`
}

// Default returns the constellation preset.
func Default() Config {
	cfg, _ := Preset(VariantConstellation)
	return cfg
}

// Preset returns the defaults for a named variant.
func Preset(variant string) (Config, error) {
	cfg := Config{
		Window: WindowConfig{
			Width:     WindowWidth,
			Height:    WindowHeight,
			Title:     WindowTitle,
			Resizable: true,
		},
		Variant:              variant,
		AreaPerParticle:      AreaPerParticle,
		Speed:                ParticleSpeed,
		Background:           "rgba(12, 12, 16, 1)",
		RepelStep:            RepelStep,
		RepelMargin:          RepelMargin,
		PointerRadiusDivisor: PointerRadiusDivisor,
		ConnectorColor:       "rgba(229, 57, 53, 1)",
		ConnectorWidth:       ConnectorWidth,
		ConnectorDivisor:     ConnectorDivisor,
		ConnectorFalloff:     ConnectorFalloff,
		ConnectorOpacity:     ConnectorOpacity,
		DriftSaturation:      DriftSaturation,
		DriftValue:           DriftValue,
		PulseGain:            0.5,
	}

	switch variant {
	case VariantClassic:
		cfg.SizeMin, cfg.SizeMax = 0.5, 2.5
		cfg.Inset = true
		cfg.ParticleColor = "rgba(229, 57, 53, 0.6)" // Primary Red
	case VariantConstellation:
		cfg.SizeMin, cfg.SizeMax = 1, 3.5
		cfg.Repel = true
		cfg.Connect = true
		cfg.ParticleColor = "rgba(229, 57, 53, 0.8)"
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
	return cfg, nil
}

// Load builds a Config from the preset of the chosen variant and the TOML
// file at path laid over it. The variant argument wins over the file's
// variant key when non-empty; an empty path yields the bare preset.
func Load(path, variant string) (Config, error) {
	if path != "" && variant == "" {
		var head struct {
			Variant string `toml:"variant"`
		}
		if _, err := toml.DecodeFile(path, &head); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		variant = head.Variant
	}
	if variant == "" {
		variant = VariantConstellation
	}

	cfg, err := Preset(variant)
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("%w: unknown keys %v in %s", ErrInvalid, undecoded, path)
		}
		cfg.Variant = variant
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem in c at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
		}
	}

	if c.Variant != VariantClassic && c.Variant != VariantConstellation {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownVariant, c.Variant))
	}
	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.AreaPerParticle > 0, "area_per_particle %v must be positive", c.AreaPerParticle)
	check(c.MaxParticles >= 0, "max_particles %d must not be negative", c.MaxParticles)
	check(c.SizeMin > 0 && c.SizeMin <= c.SizeMax, "size range [%v, %v]", c.SizeMin, c.SizeMax)
	check(c.Speed >= 0, "speed %v must not be negative", c.Speed)
	check(c.PointerRadiusDivisor > 0, "pointer_radius_divisor %v must be positive", c.PointerRadiusDivisor)
	check(c.ConnectorDivisor > 0, "connector_divisor %v must be positive", c.ConnectorDivisor)
	check(c.ConnectorFalloff > 0, "connector_falloff %v must be positive", c.ConnectorFalloff)
	check(c.ConnectorOpacity >= 0 && c.ConnectorOpacity <= 1, "connector_opacity %v outside [0, 1]", c.ConnectorOpacity)
	check(c.DriftSaturation >= 0 && c.DriftSaturation <= 1, "drift_saturation %v outside [0, 1]", c.DriftSaturation)
	check(c.DriftValue >= 0 && c.DriftValue <= 1, "drift_value %v outside [0, 1]", c.DriftValue)
	check(c.PulseGain >= 0, "pulse_gain %v must not be negative", c.PulseGain)

	for name, s := range map[string]string{
		"background":      c.Background,
		"particle_color":  c.ParticleColor,
		"connector_color": c.ConnectorColor,
	} {
		if _, err := ParseRGBA(s); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// FieldParams converts c into particle engine parameters.
func (c Config) FieldParams() (particle.Params, error) {
	pc, err := ParseRGBA(c.ParticleColor)
	if err != nil {
		return particle.Params{}, fmt.Errorf("particle_color: %w", err)
	}
	cc, err := ParseRGBA(c.ConnectorColor)
	if err != nil {
		return particle.Params{}, fmt.Errorf("connector_color: %w", err)
	}
	return particle.Params{
		AreaPerParticle:      c.AreaPerParticle,
		MaxParticles:         c.MaxParticles,
		SizeMin:              c.SizeMin,
		SizeMax:              c.SizeMax,
		Speed:                c.Speed,
		Inset:                c.Inset,
		Color:                pc,
		Repel:                c.Repel,
		RepelStep:            c.RepelStep,
		RepelMargin:          c.RepelMargin,
		PointerRadiusDivisor: c.PointerRadiusDivisor,
		Connect:              c.Connect,
		ConnectorColor:       cc,
		ConnectorWidth:       c.ConnectorWidth,
		ConnectorDivisor:     c.ConnectorDivisor,
		ConnectorFalloff:     c.ConnectorFalloff,
		ConnectorOpacity:     c.ConnectorOpacity,
	}, nil
}

// BackgroundColor returns the parsed background, falling back to opaque black.
func (c Config) BackgroundColor() color.NRGBA {
	bg, err := ParseRGBA(c.Background)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	return bg
}
