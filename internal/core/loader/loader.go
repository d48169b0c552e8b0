// Package loader reads sequence files in fixed-size windows and reassembles
// them into a flat Sequence.
//
// Each window is decoded as text and split on newlines. The first line of the
// first decoded window is dropped when it contains '>' (a FASTA-style header
// line). Once the read offset reaches the source size, all line fragments are
// joined back together, so line breaks introduced by the file itself or by a
// window edge never insert or drop symbols.
package loader

import (
	"context"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/colonyops/seqmark/internal/core/sequence"
	"github.com/rs/zerolog"
)

// DefaultChunkSize is the window size used when none is configured.
const DefaultChunkSize = 10 * 1024

// Loader performs chunked ingestion of a Source.
type Loader struct {
	ChunkSize int
	Decoder   Decoder
	Logger    zerolog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithChunkSize sets the window size in bytes. Values below 1 are ignored.
func WithChunkSize(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.ChunkSize = n
		}
	}
}

// WithDecoder sets the window decoder.
func WithDecoder(d Decoder) Option {
	return func(l *Loader) {
		if d != nil {
			l.Decoder = d
		}
	}
}

// WithLogger sets the logger used for window diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) {
		l.Logger = logger
	}
}

// New creates a Loader with a 10 KiB window and UTF-8 decoding.
func New(opts ...Option) *Loader {
	l := &Loader{
		ChunkSize: DefaultChunkSize,
		Decoder:   UTF8{},
		Logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Stats describes one completed load.
type Stats struct {
	Bytes   int64
	Windows int
	Skipped int
	Header  string
}

// ingest is the per-load state: read offset, source and accumulated
// fragments. A fresh value is created for every Load call.
type ingest struct {
	src    Source
	size   int64
	offset int64
	chunks []string

	carry         []byte
	decoded       int
	headerChecked bool
	stats         Stats
}

// Load reads src window by window and returns the reassembled sequence.
// Windows that fail to read or decode contribute nothing and ingestion
// continues. Load returns early only when ctx is cancelled.
func (l *Loader) Load(ctx context.Context, src Source) (sequence.Sequence, error) {
	seq, _, err := l.LoadStats(ctx, src)
	return seq, err
}

// LoadStats is Load that also reports what was read.
func (l *Loader) LoadStats(ctx context.Context, src Source) (sequence.Sequence, Stats, error) {
	chunkSize := l.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	decoder := l.Decoder
	if decoder == nil {
		decoder = UTF8{}
	}

	in := &ingest{src: src, size: src.Size()}
	in.stats.Bytes = in.size
	buf := make([]byte, chunkSize)

	for in.offset < in.size {
		if err := ctx.Err(); err != nil {
			return sequence.Sequence{}, in.stats, err
		}
		l.readWindow(in, buf, decoder)
		in.offset += int64(chunkSize)
	}

	joined := strings.Join(in.chunks, "")
	joined = strings.ReplaceAll(joined, "\r", "")
	seq := sequence.New(joined)

	l.Logger.Debug().Ctx(ctx).
		Int64("bytes", in.stats.Bytes).
		Int("windows", in.stats.Windows).
		Int("skipped", in.stats.Skipped).
		Int("symbols", seq.Len()).
		Msg("ingest complete")

	return seq, in.stats, nil
}

func (l *Loader) readWindow(in *ingest, buf []byte, decoder Decoder) {
	in.stats.Windows++

	n, err := in.src.ReadAt(buf, in.offset)
	if err != nil && !errors.Is(err, io.EOF) {
		in.stats.Skipped++
		in.carry = nil
		l.Logger.Warn().Err(err).Int64("offset", in.offset).Msg("window read failed, skipping")
		return
	}

	window := append(in.carry, buf[:n]...)
	in.carry = nil
	if in.offset+int64(len(buf)) < in.size {
		window, in.carry = splitIncomplete(window)
	}

	if len(window) == 0 {
		return
	}

	text, err := decoder.Decode(window, in.decoded == 0)
	if err != nil {
		in.stats.Skipped++
		l.Logger.Warn().Err(err).Int64("offset", in.offset).Msg("window decode failed, skipping")
		return
	}

	in.decoded += len(window)

	fragments := strings.Split(text, "\n")
	if !in.headerChecked {
		in.headerChecked = true
		if strings.Contains(fragments[0], ">") {
			in.stats.Header = strings.TrimSpace(fragments[0])
			fragments = fragments[1:]
		}
	}

	in.chunks = append(in.chunks, fragments...)

	l.Logger.Debug().
		Int64("offset", in.offset).
		Int("bytes", n).
		Int("fragments", len(fragments)).
		Msg("window read")
}

// splitIncomplete separates a trailing UTF-8 sequence cut off by the window
// edge so it can be prepended to the next window.
func splitIncomplete(b []byte) (whole, tail []byte) {
	for i := 1; i <= utf8.UTFMax-1 && i <= len(b); i++ {
		c := b[len(b)-i]
		if !utf8.RuneStart(c) {
			continue
		}
		if c < utf8.RuneSelf || utf8.FullRune(b[len(b)-i:]) {
			return b, nil
		}
		tail = make([]byte, i)
		copy(tail, b[len(b)-i:])
		return b[:len(b)-i], tail
	}
	return b, nil
}
