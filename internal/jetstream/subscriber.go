package jetstream

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/zstd"
)

const defaultBuffer = 128

// state tracks the subscriber lifecycle for logging. The subscriber moves
// strictly forward: connecting, streaming, draining, stopped.
type state int

const (
	stateConnecting state = iota
	stateStreaming
	stateDraining
	stateStopped
)

func (s state) String() string {
	switch s {
	case stateConnecting:
		return "connecting"
	case stateStreaming:
		return "streaming"
	case stateDraining:
		return "draining"
	default:
		return "stopped"
	}
}

// Options configures a Subscriber.
type Options struct {
	// URL is the Jetstream WebSocket endpoint.
	URL string

	// Collections is the set of collection NSIDs to subscribe to.
	Collections []string

	// Compress requests zstd-compressed frames from Jetstream. Jetstream
	// compresses with a custom dictionary, so ZstdDictPath must also be set.
	Compress     bool
	ZstdDictPath string

	// Buffer is the event channel capacity. Events received while the
	// consumer is busy are held here; a full buffer pushes backpressure
	// down to the WebSocket read loop.
	Buffer int
}

// Subscriber connects to the Jetstream firehose and delivers parsed events on
// a channel. The channel is closed once the connection ends or the context is
// cancelled; events buffered before that point remain readable until drained.
type Subscriber struct {
	opts    Options
	decoder *zstd.Decoder
	events  chan *Event
	logger  *slog.Logger
}

// NewSubscriber creates a new firehose subscriber.
func NewSubscriber(opts Options, logger *slog.Logger) (*Subscriber, error) {
	if opts.Buffer <= 0 {
		opts.Buffer = defaultBuffer
	}

	s := &Subscriber{
		opts:   opts,
		events: make(chan *Event, opts.Buffer),
		logger: logger,
	}

	if opts.Compress {
		if opts.ZstdDictPath == "" {
			return nil, fmt.Errorf("compression requires a zstd dictionary path")
		}
		dict, err := os.ReadFile(opts.ZstdDictPath)
		if err != nil {
			return nil, fmt.Errorf("read zstd dictionary: %w", err)
		}
		decoder, err := zstd.NewReader(nil, zstd.WithDecoderDicts(dict))
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		s.decoder = decoder
	}

	return s, nil
}

// Events returns the channel events are delivered on. It is closed when the
// subscription ends.
func (s *Subscriber) Events() <-chan *Event {
	return s.events
}

func (s *Subscriber) buildURL() string {
	u, _ := url.Parse(s.opts.URL)
	q := u.Query()
	for _, c := range s.opts.Collections {
		q.Add("wantedCollections", c)
	}
	if s.opts.Compress {
		q.Set("compress", "true")
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Run connects to the firehose and reads events until the context is
// cancelled or the connection closes, then closes the event channel. A
// failure to establish the initial connection is returned as an error; a
// connection lost mid-stream is logged and ends the run cleanly.
func (s *Subscriber) Run(ctx context.Context) error {
	defer close(s.events)

	wsURL := s.buildURL()
	s.logger.Info("connecting to jetstream", "state", stateConnecting, "url", wsURL)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial jetstream: %w", err)
	}
	defer conn.Close()

	// Unblock the read loop when the context is cancelled.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	s.logger.Info("connected to jetstream", "state", stateStreaming)

	var eventsReceived, commitsReceived int64
	lastStatsLog := time.Now()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Info("subscription cancelled", "state", stateDraining)
			} else {
				s.logger.Warn("jetstream connection closed", "state", stateDraining, "error", err)
			}
			return nil
		}

		if s.decoder != nil {
			message, err = s.decoder.DecodeAll(message, nil)
			if err != nil {
				s.logger.Error("failed to decompress frame", "error", err)
				continue
			}
		}

		event, err := parseEvent(message)
		if err != nil {
			s.logger.Error("failed to parse event", "error", err)
			continue
		}

		eventsReceived++
		if event.Kind == "commit" && event.Commit != nil {
			commitsReceived++
		}

		select {
		case s.events <- event:
		case <-ctx.Done():
			s.logger.Info("subscription cancelled", "state", stateDraining)
			return nil
		}

		// Log stats every 30 seconds
		if time.Since(lastStatsLog) >= 30*time.Second {
			s.logger.Info("jetstream stats",
				"events_received", eventsReceived,
				"commits_received", commitsReceived,
			)
			lastStatsLog = time.Now()
		}
	}
}
