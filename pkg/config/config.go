// Package config loads the decoder configuration file.
package config

import (
	"os"
	"path/filepath"

	"github.com/samber/oops"
	"go.yaml.in/yaml/v4"

	"github.com/aquasecurity/nvd-schema/pkg/decode"
	"github.com/aquasecurity/nvd-schema/pkg/feed"
	"github.com/aquasecurity/nvd-schema/pkg/log"
	"github.com/aquasecurity/nvd-schema/pkg/override"
)

type Config struct {
	Decoder DecoderConfig `yaml:"decoder"`
	// OverridesDir holds config.yaml and the jd diff files of record overrides.
	// A relative path is resolved against the directory of the configuration file.
	OverridesDir string `yaml:"overrides_dir"`
}

type DecoderConfig struct {
	UnknownFields string `yaml:"unknown_fields"` // ignore or reject
	VerifyVectors bool   `yaml:"verify_vectors"`
}

// Load reads a YAML configuration file.
func Load(fileName string) (Config, error) {
	eb := oops.With("file_name", fileName)

	f, err := os.Open(fileName)
	if err != nil {
		return Config{}, eb.Wrapf(err, "file open error")
	}
	defer f.Close()

	var cfg Config
	if err = yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, eb.Wrapf(err, "yaml decode error")
	}

	if cfg.OverridesDir != "" && !filepath.IsAbs(cfg.OverridesDir) {
		cfg.OverridesDir = filepath.Join(filepath.Dir(fileName), cfg.OverridesDir)
	}

	// Fail on a bad policy here rather than on first use
	if _, err = cfg.DecodeOptions(); err != nil {
		return Config{}, eb.Wrap(err)
	}

	log.Debug("Loaded configuration", log.FilePath(fileName),
		log.String("unknown_fields", cfg.Decoder.UnknownFields),
		log.Bool("verify_vectors", cfg.Decoder.VerifyVectors))
	return cfg, nil
}

// DecodeOptions converts the decoder section into decode.Options.
func (c Config) DecodeOptions() (decode.Options, error) {
	policy, err := decode.ParseUnknownFieldPolicy(c.Decoder.UnknownFields)
	if err != nil {
		return decode.Options{}, err
	}
	return decode.Options{
		UnknownFields: policy,
		VerifyVectors: c.Decoder.VerifyVectors,
	}, nil
}

// NewReader builds a feed reader with the configured decoder and overrides.
func (c Config) NewReader() (feed.Reader, error) {
	opts, err := c.DecodeOptions()
	if err != nil {
		return feed.Reader{}, err
	}

	var patches *override.Patches
	if c.OverridesDir != "" {
		if patches, err = override.Load(c.OverridesDir); err != nil {
			return feed.Reader{}, oops.Wrapf(err, "override load error")
		}
	}

	return feed.NewReader(decode.New(opts), patches), nil
}
