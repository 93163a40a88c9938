package audio

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// speakerLatency is the speaker buffer length.
const speakerLatency = 100 * time.Millisecond

type decodeFunc func(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

// decoders maps lower-case file extensions to their decoders.
var decoders = map[string]decodeFunc{
	".wav": func(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(r) },
	".ogg": vorbis.Decode,
	".mp3": mp3.Decode,
}

// Player plays the dialog's sound through the default audio device. The
// speaker is opened at the sample rate of the first sound played and stays
// open until Close.
type Player struct {
	logger *slog.Logger
	gain   float64 // 0.0 to 1.0

	mu   sync.Mutex
	rate beep.SampleRate // zero while the speaker is closed
}

// NewPlayer creates a player at volume percent, clamped to 0-100.
func NewPlayer(volume int, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		logger: logger,
		gain:   math.Max(0, math.Min(1, float64(volume)/100)),
	}
}

// Volume returns the playback gain between 0 and 1.
func (p *Player) Volume() float64 {
	return p.gain
}

// Play decodes path and starts playing it in the background. An empty path
// plays nothing.
func (p *Player) Play(path string) error {
	if path == "" {
		return nil
	}

	sound, err := decode(path)
	if err != nil {
		return err
	}

	rate, err := p.open(sound.Format().SampleRate)
	if err != nil {
		return err
	}

	var s beep.Streamer = sound.Streamer(0, sound.Len())
	if sound.Format().SampleRate != rate {
		s = beep.Resample(4, sound.Format().SampleRate, rate, s)
	}
	speaker.Play(p.attenuate(s))

	p.logger.Debug("playing sound", "path", path, "volume", p.gain)
	return nil
}

// attenuate applies the player's gain to s.
func (p *Player) attenuate(s beep.Streamer) beep.Streamer {
	if p.gain >= 1 {
		return s
	}
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(p.gain), // 2^Volume == gain
		Silent:   p.gain == 0,
	}
}

// open initialises the speaker on first use and returns its sample rate.
func (p *Player) open(rate beep.SampleRate) (beep.SampleRate, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rate != 0 {
		return p.rate, nil
	}
	if err := speaker.Init(rate, rate.N(speakerLatency)); err != nil {
		return 0, fmt.Errorf("failed to initialize speaker: %w", err)
	}
	p.rate = rate
	p.logger.Debug("speaker initialized", "sample_rate", rate)
	return rate, nil
}

// Close stops playback and releases the audio device. It is safe to call more
// than once.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rate == 0 {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.rate = 0
}

// decode reads a whole sound file into memory.
func decode(path string) (*beep.Buffer, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dec, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported audio format: %s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound file: %w", err)
	}

	stream, format, err := dec(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to decode sound: %w", err)
	}
	defer func() { _ = stream.Close() }()

	buf := beep.NewBuffer(format)
	buf.Append(stream)
	return buf, nil
}
