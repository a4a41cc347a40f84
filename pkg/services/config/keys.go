package config

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/kothscore/helios/pkg/services/codec"
	"gopkg.in/ini.v1"
)

const DefaultKeyProfile = "default"

// KeyRegistry reads key material from an INI file with one section per
// profile:
//
//	[default]
//	key_a = <hex>
//	key_b = <hex>
type KeyRegistry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetKeys(ctx context.Context, profile string) (codec.Keys, error)
}

type iniKeyRegistry struct {
	cfg *ini.File
}

func NewKeyRegistry(path string) (KeyRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load key material: %w", err)
	}
	return &iniKeyRegistry{cfg: cfg}, nil
}

func (kr *iniKeyRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range kr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (kr *iniKeyRegistry) GetKeys(_ context.Context, profile string) (codec.Keys, error) {
	section, err := kr.cfg.GetSection(profile)
	if err != nil {
		return codec.Keys{}, fmt.Errorf("key profile %q not found", profile)
	}

	a, err := decodeKey(section, "key_a")
	if err != nil {
		return codec.Keys{}, fmt.Errorf("profile %s: %w", profile, err)
	}
	b, err := decodeKey(section, "key_b")
	if err != nil {
		return codec.Keys{}, fmt.Errorf("profile %s: %w", profile, err)
	}

	keys := codec.Keys{A: a, B: b}
	if err := keys.Validate(); err != nil {
		return codec.Keys{}, fmt.Errorf("profile %s: %w", profile, err)
	}
	return keys, nil
}

func decodeKey(section *ini.Section, name string) ([]byte, error) {
	if !section.HasKey(name) {
		return nil, fmt.Errorf("missing %s", name)
	}
	b, err := hex.DecodeString(section.Key(name).String())
	if err != nil {
		return nil, fmt.Errorf("%s is not valid hex: %w", name, err)
	}
	return b, nil
}

// WriteKeyProfile writes keys as an INI profile readable by NewKeyRegistry
func WriteKeyProfile(w io.Writer, profile string, keys codec.Keys) error {
	f := ini.Empty()
	section, err := f.NewSection(profile)
	if err != nil {
		return fmt.Errorf("create section %s: %w", profile, err)
	}
	if _, err := section.NewKey("key_a", hex.EncodeToString(keys.A)); err != nil {
		return err
	}
	if _, err := section.NewKey("key_b", hex.EncodeToString(keys.B)); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}
