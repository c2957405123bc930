// Package sound plays a short cue when a notification is shown. The source
// is resolved from the notification itself first and the per-urgency
// config defaults last; there is no hard-coded file path anywhere in the
// chain.
package sound

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"

	"notid/internal/config"
	"notid/internal/logging"
	"notid/internal/notification"
)

// Tone is a generated sine cue, used for the built-in names.
type Tone struct {
	Frequency float64
	Duration  time.Duration
}

// builtinTones maps sound-name hints to generated cues. Names from the
// freedesktop sound naming spec that senders commonly use are aliased onto
// the same small set.
var builtinTones = map[string]Tone{
	"ping":   {Frequency: 880, Duration: 100 * time.Millisecond},
	"alert":  {Frequency: 440, Duration: 200 * time.Millisecond},
	"low":    {Frequency: 220, Duration: 200 * time.Millisecond},
	"chime":  {Frequency: 659, Duration: 150 * time.Millisecond},
	"beep":   {Frequency: 523, Duration: 100 * time.Millisecond},
	"notify": {Frequency: 587, Duration: 120 * time.Millisecond},

	"message-new-instant": {Frequency: 587, Duration: 120 * time.Millisecond},
	"message-new-email":   {Frequency: 587, Duration: 120 * time.Millisecond},
	"dialog-warning":      {Frequency: 440, Duration: 200 * time.Millisecond},
	"dialog-error":        {Frequency: 330, Duration: 250 * time.Millisecond},
}

const sampleRate = beep.SampleRate(44100)

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond))
	})
	return speakerErr
}

// Resolve picks the sound source for n: the sound-file hint, then the
// sound-name hint, then the configured per-urgency default. An empty
// return means silence.
func Resolve(n *notification.Notification, cfg *config.Sounds) string {
	if n.Hints.SuppressSound || !cfg.Enabled {
		return ""
	}
	if n.Hints.SoundFile != "" {
		return n.Hints.SoundFile
	}
	if n.Hints.SoundName != "" {
		return n.Hints.SoundName
	}
	switch n.Hints.Urgency {
	case notification.UrgencyLow:
		return cfg.Low
	case notification.UrgencyCritical:
		return cfg.Critical
	default:
		return cfg.Normal
	}
}

// Play starts the resolved source asynchronously: a path to a wav file, a
// built-in tone name, or "none". Failures are logged and swallowed; sound
// is never worth crashing a banner for.
func Play(source string) {
	if source == "" || source == "none" {
		return
	}
	if err := initSpeaker(); err != nil {
		logging.Warnf("sound: speaker init: %v", err)
		return
	}

	if strings.ContainsRune(source, os.PathSeparator) {
		playFile(source)
		return
	}

	name := strings.TrimPrefix(source, "tone:")
	if tone, ok := builtinTones[name]; ok {
		playTone(tone)
		return
	}
	logging.Warnf("sound: unknown sound %q", source)
}

func playFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		logging.Warnf("sound: %v", err)
		return
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		logging.Warnf("sound: decode %s: %v", path, err)
		return
	}

	done := beep.Callback(func() {
		streamer.Close()
		f.Close()
	})
	if format.SampleRate != sampleRate {
		resampled := beep.Resample(4, format.SampleRate, sampleRate, streamer)
		speaker.Play(beep.Seq(resampled, done))
	} else {
		speaker.Play(beep.Seq(streamer, done))
	}
}

func playTone(tone Tone) {
	streamer, err := generators.SineTone(sampleRate, tone.Frequency)
	if err != nil {
		logging.Warnf("sound: generate tone: %v", err)
		return
	}
	speaker.Play(beep.Take(sampleRate.N(tone.Duration), streamer))
}

// IsBuiltin reports whether name resolves to a generated tone.
func IsBuiltin(name string) bool {
	_, ok := builtinTones[strings.TrimPrefix(name, "tone:")]
	return ok
}
