package config

import "fmt"

// Validator validates a loaded Config and fills in any zero-valued field
// with its built-in default, mirroring the teacher's Validator's
// validate-then-set-smart-defaults split.
type Validator struct{}

// ValidateAndSetDefaults checks every section for out-of-range values and
// backfills zero fields from Default() before returning.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	def := Default()

	if cfg.Store.PageSize == 0 {
		cfg.Store.PageSize = def.Store.PageSize
	}
	if cfg.Store.PageSize <= 0 || cfg.Store.PageSize%512 != 0 {
		return fmt.Errorf("config: store.page_size must be a positive multiple of 512, got %d", cfg.Store.PageSize)
	}
	if cfg.Store.InitialPageCount == 0 {
		cfg.Store.InitialPageCount = def.Store.InitialPageCount
	}
	if cfg.Store.CacheSizeBytes == 0 {
		cfg.Store.CacheSizeBytes = def.Store.CacheSizeBytes
	}
	if cfg.Store.CacheMode == "" {
		cfg.Store.CacheMode = def.Store.CacheMode
	}
	if cfg.Store.CacheMode != "lru" && cfg.Store.CacheMode != "fifo" {
		return fmt.Errorf("config: store.cache_mode must be \"lru\" or \"fifo\", got %q", cfg.Store.CacheMode)
	}
	if cfg.Store.MaxReaders == 0 {
		cfg.Store.MaxReaders = def.Store.MaxReaders
	}

	if cfg.Codec.TargetSegmentSize == 0 {
		cfg.Codec.TargetSegmentSize = def.Codec.TargetSegmentSize
	}
	if cfg.Codec.MaxSegmentSize == 0 {
		cfg.Codec.MaxSegmentSize = def.Codec.MaxSegmentSize
	}
	if cfg.Codec.TargetSegmentSize > cfg.Codec.MaxSegmentSize {
		return fmt.Errorf("config: codec.target_segment_size (%d) exceeds codec.max_segment_size (%d)", cfg.Codec.TargetSegmentSize, cfg.Codec.MaxSegmentSize)
	}

	if cfg.Lexicon.StemmingLevel < 0 || cfg.Lexicon.StemmingLevel > 3 {
		return fmt.Errorf("config: lexicon.stemming_level must be 0-3, got %d", cfg.Lexicon.StemmingLevel)
	}
	if cfg.Lexicon.IndexGranularity == 0 {
		cfg.Lexicon.IndexGranularity = def.Lexicon.IndexGranularity
	}
	if cfg.Lexicon.IndexGranularity <= 0 {
		return fmt.Errorf("config: lexicon.index_granularity must be positive, got %d", cfg.Lexicon.IndexGranularity)
	}

	if cfg.Query.MaxANDOperands == 0 {
		cfg.Query.MaxANDOperands = def.Query.MaxANDOperands
	}
	if cfg.Query.CancelPollIntervalOps == 0 {
		cfg.Query.CancelPollIntervalOps = def.Query.CancelPollIntervalOps
	}
	if cfg.Query.CancelPollIntervalOps <= 0 {
		return fmt.Errorf("config: query.cancel_poll_interval_ops must be positive, got %d", cfg.Query.CancelPollIntervalOps)
	}

	return nil
}
