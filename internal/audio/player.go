package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

type decodeFunc func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decodeFunc{
	".wav":  func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) },
	".mp3":  func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) },
	".flac": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(f) },
}

// Extensions lists the file patterns Open accepts, for file dialogs.
func Extensions() []string {
	return []string{"*.wav", "*.mp3", "*.flac"}
}

func decoderFor(path string) (decodeFunc, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dec, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return dec, nil
}

// Player loops a single ambient track and reports its recent loudness.
// Open and Close may be called from the frame loop while the speaker
// goroutine streams through the tap.
type Player struct {
	ringSize int
	window   int
	meter    Meter

	mu          sync.Mutex
	currentFile *os.File
	streamer    beep.StreamSeekCloser
	format      beep.Format
	tap         *Tap
	path        string
	initDone    bool
}

func NewPlayer(ringSize, window int, smoothing float64) *Player {
	return &Player{
		ringSize: ringSize,
		window:   window,
		meter:    Meter{Smoothing: smoothing},
	}
}

// Open decodes the file at path and starts looping it, replacing whatever
// was playing.
func (p *Player) Open(path string) error {
	dec, err := decoderFor(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	streamer, format, err := dec(f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Prepare audio chain: streamer -> loop -> tap
	t := NewTap(beep.Loop(-1, streamer), p.ringSize)

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !p.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		p.initDone = true
	case p.format.SampleRate != format.SampleRate:
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
	default:
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
	}
	_ = p.release()

	p.currentFile = f
	p.streamer = streamer
	p.format = format
	p.tap = t
	p.path = path
	p.meter.Reset()

	speaker.Play(t)
	return nil
}

// Level returns the smoothed loudness in roughly [0, 1], or 0 when nothing
// is playing.
func (p *Player) Level() float64 {
	p.mu.Lock()
	t := p.tap
	p.mu.Unlock()
	if t == nil {
		return 0
	}
	return p.meter.Observe(Loudness(t.Snapshot(p.window)))
}

// Track returns the path of the current track, or "" when idle.
func (p *Player) Track() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

// Position reports how far into the current loop the track is.
func (p *Player) Position() (pos, total time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0, 0
	}
	speaker.Lock()
	n, length := p.streamer.Position(), p.streamer.Len()
	speaker.Unlock()
	return p.format.SampleRate.D(n), p.format.SampleRate.D(length)
}

// Close stops playback and releases the track.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return nil
	}
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
	return p.release()
}

func (p *Player) release() error {
	var errs []error
	if p.streamer != nil {
		errs = append(errs, p.streamer.Close())
		p.streamer = nil
	}
	if p.currentFile != nil {
		errs = append(errs, p.currentFile.Close())
		p.currentFile = nil
	}
	p.tap = nil
	p.path = ""
	p.meter.Reset()
	return errors.Join(errs...)
}
