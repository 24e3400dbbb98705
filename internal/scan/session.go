package scan

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type State int

const (
	Idle State = iota
	Scanning
	Decoded
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scanning:
		return "scanning"
	case Decoded:
		return "decoded"
	}
	return "unknown"
}

var ErrBusy = errors.New("scan session already has a source")

// Session owns one source at a time and moves idle -> scanning -> decoded -> idle.
// The source is released exactly once per Start, on decode, Stop, cancellation or
// source failure; release errors are ignored.
type Session struct {
	decoder Decoder

	mu    sync.Mutex
	state State
	src   Source
	text  string
}

func NewSession(decoder Decoder) *Session {
	return &Session{decoder: decoder}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Text is the last decoded payload, "" unless the session is Decoded.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Start binds src. Only an idle session accepts a source.
func (s *Session) Start(src Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Idle {
		_ = src.Close()
		return ErrBusy
	}
	s.src = src
	s.text = ""
	s.state = Scanning
	return nil
}

// Run pulls frames until one decodes, then releases the source and calls
// onDecoded once with the text. Frames that fail to decode are skipped.
func (s *Session) Run(ctx context.Context, onDecoded func(text string)) error {
	s.mu.Lock()
	src := s.src
	s.mu.Unlock()
	if src == nil {
		return ErrClosed
	}
	defer s.release(src, Idle, "")

	for {
		img, err := src.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ErrNoCode
			}
			return err
		}

		text, err := s.decoder.Decode(img)
		if err != nil {
			log.WithError(err).Trace("frame did not decode")
			continue
		}

		text = strings.TrimSpace(text)
		if !s.release(src, Decoded, text) {
			// stopped while decoding
			return ErrClosed
		}

		if onDecoded != nil {
			onDecoded(text)
		}
		return nil
	}
}

// Stop releases the current source, if any, and returns to idle.
func (s *Session) Stop() {
	s.mu.Lock()
	src := s.src
	s.mu.Unlock()
	if src != nil {
		s.release(src, Idle, "")
	}
}

// Restart drops any decoded result so a new source can be started.
func (s *Session) Restart() {
	s.Stop()
	s.mu.Lock()
	s.state = Idle
	s.text = ""
	s.mu.Unlock()
}

// release closes src if it is still the bound source and moves to next. The
// state and text change together, so a decoded session is never seen without
// its text. It reports whether this call did the release.
func (s *Session) release(src Source, next State, text string) bool {
	s.mu.Lock()
	if s.src != src {
		s.mu.Unlock()
		return false
	}
	s.src = nil
	s.state = next
	if next == Decoded {
		s.text = text
	}
	s.mu.Unlock()

	if err := src.Close(); err != nil {
		log.WithError(err).Debug("scan source release failed")
	}
	return true
}
