// Package config loads run settings from flags, environment and the
// ~/.hyperex.yaml config file through viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/ebedthan/hyperex/internal/scan"
)

// Keys recognised in the config file and environment.
const (
	KeyMismatch = "mismatch"
	KeyThreads  = "threads"
	KeyQueue    = "queue"
	KeyPrefix   = "prefix"
	KeyForce    = "force"
	KeyQuiet    = "quiet"
	KeyVerbose  = "verbose"
	KeyStrategy = "strategy"
	KeyRegion   = "region"
	KeyForward  = "forward"
	KeyReverse  = "reverse"
	KeyPrimers  = "primers"
	KeyTable    = "table"
	KeyDB       = "db"
	KeyLogFile  = "log_file"
)

// EnvPrefix prefixes environment overrides, e.g. HYPEREX_MISMATCH.
const EnvPrefix = "HYPEREX"

// DefaultPrefix is the output file prefix when none is configured.
const DefaultPrefix = "hyperex_out"

// PrimerSource tells where region definitions come from.
type PrimerSource int

const (
	// SourceBuiltin uses every built-in region.
	SourceBuiltin PrimerSource = iota
	// SourceRegions uses the named built-in regions.
	SourceRegions
	// SourcePairs uses forward/reverse primers given positionally.
	SourcePairs
	// SourceFile reads primer pairs from a file.
	SourceFile
)

func (s PrimerSource) String() string {
	switch s {
	case SourceRegions:
		return "regions"
	case SourcePairs:
		return "primer pairs"
	case SourceFile:
		return "primer file"
	default:
		return "built-in regions"
	}
}

// Config holds the settings of one extraction run.
type Config struct {
	Mismatch int
	Threads  int
	Queue    int
	Prefix   string
	Force    bool
	Quiet    bool
	Verbose  bool
	Strategy scan.Strategy
	Regions  []string
	Forward  []string
	Reverse  []string
	Primers  string
	Table    bool
	DB       string
	LogFile  string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyMismatch, 0)
	v.SetDefault(KeyThreads, 0)
	v.SetDefault(KeyQueue, 0)
	v.SetDefault(KeyPrefix, DefaultPrefix)
	v.SetDefault(KeyForce, false)
	v.SetDefault(KeyQuiet, false)
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyStrategy, string(scan.Nearest))
	v.SetDefault(KeyPrimers, "")
	v.SetDefault(KeyTable, false)
	v.SetDefault(KeyDB, "")
	v.SetDefault(KeyLogFile, "")
}

// BindEnv makes every key overridable from HYPEREX_<KEY>.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads a Config from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	st, err := scan.ParseStrategy(v.GetString(KeyStrategy))
	if err != nil {
		return Config{}, err
	}
	c := Config{
		Mismatch: v.GetInt(KeyMismatch),
		Threads:  v.GetInt(KeyThreads),
		Queue:    v.GetInt(KeyQueue),
		Prefix:   v.GetString(KeyPrefix),
		Force:    v.GetBool(KeyForce),
		Quiet:    v.GetBool(KeyQuiet),
		Verbose:  v.GetBool(KeyVerbose),
		Strategy: st,
		Regions:  nonEmpty(v.GetStringSlice(KeyRegion)),
		Forward:  nonEmpty(v.GetStringSlice(KeyForward)),
		Reverse:  nonEmpty(v.GetStringSlice(KeyReverse)),
		Primers:  v.GetString(KeyPrimers),
		Table:    v.GetBool(KeyTable),
		DB:       v.GetString(KeyDB),
		LogFile:  v.GetString(KeyLogFile),
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks ranges and mutually exclusive primer sources. All
// problems are reported together.
func (c Config) Validate() error {
	var errs []error
	if c.Mismatch < 0 {
		errs = append(errs, fmt.Errorf("mismatch must not be negative, got %d", c.Mismatch))
	}
	if c.Threads < 0 {
		errs = append(errs, fmt.Errorf("threads must not be negative, got %d", c.Threads))
	}
	if c.Queue < 0 {
		errs = append(errs, fmt.Errorf("queue must not be negative, got %d", c.Queue))
	}
	if strings.TrimSpace(c.Prefix) == "" {
		errs = append(errs, errors.New("prefix must not be empty"))
	}
	if len(c.Forward) != len(c.Reverse) {
		errs = append(errs, fmt.Errorf("got %d forward and %d reverse primers; they pair positionally", len(c.Forward), len(c.Reverse)))
	}

	sources := 0
	if len(c.Regions) > 0 {
		sources++
	}
	if len(c.Forward) > 0 || len(c.Reverse) > 0 {
		sources++
	}
	if c.Primers != "" {
		sources++
	}
	if sources > 1 {
		errs = append(errs, errors.New("region, forward/reverse and primers are mutually exclusive"))
	}
	if c.Quiet && c.Verbose {
		errs = append(errs, errors.New("quiet and verbose are mutually exclusive"))
	}
	return errors.Join(errs...)
}

// Source reports which primer source the config selects.
func (c Config) Source() PrimerSource {
	switch {
	case c.Primers != "":
		return SourceFile
	case len(c.Forward) > 0:
		return SourcePairs
	case len(c.Regions) > 0:
		return SourceRegions
	default:
		return SourceBuiltin
	}
}

// Output file names derived from the prefix.
func (c Config) FASTAPath() string { return c.Prefix + ".fa" }
func (c Config) GFFPath() string   { return c.Prefix + ".gff" }
func (c Config) TablePath() string { return c.Prefix + ".tsv" }

// OutputPaths lists the files a run creates.
func (c Config) OutputPaths() []string {
	paths := []string{c.FASTAPath(), c.GFFPath()}
	if c.Table {
		paths = append(paths, c.TablePath())
	}
	return paths
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
