// Package config loads and validates the core's on-disk configuration,
// grounded on the teacher's config.Load/Validator split (load, then a
// dedicated validation-and-defaults pass) but scoped to this module's own
// four sections instead of a code-search project's.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the root configuration tree, loaded from an extentix.toml
// file (spec.md §5/§6 operational parameters).
type Config struct {
	Store   Store   `toml:"store"`
	Codec   Codec   `toml:"codec"`
	Lexicon Lexicon `toml:"lexicon"`
	Query   Query   `toml:"query"`
}

// Store holds the L1 paged file store and page cache settings. They are
// validated here; internal/store does not read them.
type Store struct {
	PageSize         int    `toml:"page_size"`
	InitialPageCount int    `toml:"initial_page_count"`
	CacheSizeBytes   int64  `toml:"cache_size_bytes"`
	CacheMode        string `toml:"cache_mode"` // "lru" | "fifo"
	MaxReaders       int    `toml:"max_readers"`
}

// Codec holds the L2 segment cutover sizes. They are validated here;
// internal/codec does not read them and uses its own TargetSegmentSize and
// MaxSegmentSize constants.
type Codec struct {
	TargetSegmentSize int `toml:"target_segment_size"`
	MaxSegmentSize    int `toml:"max_segment_size"`
}

// Lexicon configures L3 term-dictionary stemming. IndexGranularity is
// validated here; internal/indextotext uses its own Granularity constant.
type Lexicon struct {
	StemmingLevel    int `toml:"stemming_level"`
	IndexGranularity int `toml:"index_granularity"`
}

// Query holds the L5 query driver's AND fan-out and cancellation polling
// settings. They are validated here; internal/query does not read them
// and uses its own DefaultBatchSize.
type Query struct {
	MaxANDOperands        int `toml:"max_and_operands"`
	CancelPollIntervalOps int `toml:"cancel_poll_interval_ops"`
}

// Load reads and parses path, then applies Validator's defaults. A
// missing file is not an error: Default() is returned instead, the way
// the teacher's own KDL loader treats a missing .lci.kdl as "use
// defaults" rather than failing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := (&Validator{}).ValidateAndSetDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a Config populated with the core's built-in defaults.
func Default() *Config {
	return &Config{
		Store: Store{
			PageSize:         4096,
			InitialPageCount: 16,
			CacheSizeBytes:   64 << 20,
			CacheMode:        "lru",
			MaxReaders:       8,
		},
		Codec: Codec{
			TargetSegmentSize: 128 << 10,
			MaxSegmentSize:    1 << 20,
		},
		Lexicon: Lexicon{
			StemmingLevel:    0,
			IndexGranularity: 2048,
		},
		Query: Query{
			MaxANDOperands:        32,
			CancelPollIntervalOps: 256,
		},
	}
}
