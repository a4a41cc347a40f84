// Package loader turns an obfuscated blob into a validated configuration.
// Every error it returns is fatal for a scoring run.
package loader

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/kothscore/helios/pkg/adapters"
	"github.com/kothscore/helios/pkg/models/domain"
	"github.com/kothscore/helios/pkg/models/file"
	"github.com/kothscore/helios/pkg/services/codec"
	"github.com/rs/zerolog"
)

var ErrCorruptedConfig = errors.New("configuration is likely corrupted")

type Loader struct {
	codec   *codec.Codec
	decoder adapters.ConditionDecoder
}

func NewLoader(c *codec.Codec, decoder adapters.ConditionDecoder) *Loader {
	return &Loader{codec: c, decoder: decoder}
}

func (l *Loader) Load(ctx context.Context, src Source) (*domain.Configuration, error) {
	plaintext, err := l.Plaintext(ctx, src)
	if err != nil {
		return nil, err
	}

	cfg, err := l.Parse(plaintext)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("source", src.String()).
		Str("title", cfg.Title).
		Int("records", len(cfg.Records)).
		Int("conditions", cfg.Conditions()).
		Msg("configuration loaded")
	return cfg, nil
}

// Plaintext reads and decodes the blob. The result is guaranteed to be UTF-8.
func (l *Loader) Plaintext(ctx context.Context, src Source) ([]byte, error) {
	blob, err := src.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read compressed data from %s: %w", src, err)
	}

	plaintext, err := l.codec.Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptedConfig, err)
	}
	if !utf8.Valid(plaintext) {
		return nil, fmt.Errorf("%w: decoded data is not valid text", ErrCorruptedConfig)
	}
	return plaintext, nil
}

// Parse builds a configuration from plaintext YAML and validates identifiers
func (l *Loader) Parse(plaintext []byte) (*domain.Configuration, error) {
	fc, err := file.Parse(plaintext)
	if err != nil {
		return nil, err
	}

	cfg, err := adapters.MapFileConfigToDomain(fc, l.decoder)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
