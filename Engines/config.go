package Engines

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/g-m-twostay/go-dstrace/Maps"
	"github.com/g-m-twostay/go-dstrace/Maps/HashExpr"
	"github.com/g-m-twostay/go-dstrace/Stacks"
)

// configName is the config file name without extension.
const configName = ".dstrace"

const configType = "yaml"

// envPrefix is the environment variable prefix, so DSTRACE_STACK_CAPACITY sets stack.capacity.
const envPrefix = "DSTRACE"

const envKeySeparator = "_"

const (
	DefaultStackCapacity     = 10
	DefaultStackAutoExpand   = true
	DefaultStackExpandFactor = Stacks.DefaultExpandFactor
	DefaultQueueCapacity     = 8
	DefaultQueueRandomMax    = 100
	DefaultSeqListCapacity   = 16
	DefaultBPlusOrder        = 4
	DefaultHashCapacity      = 11
	DefaultHashMode          = "open_addressing"
	DefaultHashExpr          = HashExpr.Default
)

var (
	ErrInvalidCapacity     = errors.New("capacity must be at least 1")
	ErrInvalidExpandFactor = errors.New("expand factor must be positive")
	ErrInvalidRandomMax    = errors.New("random max must be at least 1")
	ErrInvalidOrder        = errors.New("B+ tree order must be at least 3")
)

// Config holds the construction parameters of every kind. Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Stack     StackConfig     `mapstructure:"stack" yaml:"stack"`
	Queue     QueueConfig     `mapstructure:"queue" yaml:"queue"`
	SeqList   SeqListConfig   `mapstructure:"seq_list" yaml:"seq_list"`
	BPlus     BPlusConfig     `mapstructure:"bplus" yaml:"bplus"`
	HashTable HashTableConfig `mapstructure:"hash_table" yaml:"hash_table"`
}

type StackConfig struct {
	Capacity     int     `mapstructure:"capacity" yaml:"capacity"`
	AutoExpand   bool    `mapstructure:"auto_expand" yaml:"auto_expand"`
	ExpandFactor float64 `mapstructure:"expand_factor" yaml:"expand_factor"`
}

// QueueConfig. RandomMax bounds the values the random verb draws from [1, RandomMax], and a non zero Seed makes
// the draws repeatable.
type QueueConfig struct {
	Capacity  int    `mapstructure:"capacity" yaml:"capacity"`
	RandomMax int    `mapstructure:"random_max" yaml:"random_max"`
	Seed      uint64 `mapstructure:"seed" yaml:"seed"`
}

type SeqListConfig struct {
	Capacity int `mapstructure:"capacity" yaml:"capacity"`
}

type BPlusConfig struct {
	Order int `mapstructure:"order" yaml:"order"`
}

type HashTableConfig struct {
	Capacity int    `mapstructure:"capacity" yaml:"capacity"`
	Mode     string `mapstructure:"mode" yaml:"mode"`
	Expr     string `mapstructure:"expr" yaml:"expr"`
}

// DefaultConfig is what LoadConfig yields with no file and no environment.
func DefaultConfig() Config {
	return Config{
		Stack:     StackConfig{Capacity: DefaultStackCapacity, AutoExpand: DefaultStackAutoExpand, ExpandFactor: DefaultStackExpandFactor},
		Queue:     QueueConfig{Capacity: DefaultQueueCapacity, RandomMax: DefaultQueueRandomMax},
		SeqList:   SeqListConfig{Capacity: DefaultSeqListCapacity},
		BPlus:     BPlusConfig{Order: DefaultBPlusOrder},
		HashTable: HashTableConfig{Capacity: DefaultHashCapacity, Mode: DefaultHashMode, Expr: DefaultHashExpr},
	}
}

// Validate checks every section, whichever kind is going to use it.
func (c *Config) Validate() error {
	switch {
	case c.Stack.Capacity < 1:
		return errors.Wrap(ErrInvalidCapacity, "stack")
	case !(c.Stack.ExpandFactor > 0):
		return ErrInvalidExpandFactor
	case c.Queue.Capacity < 1:
		return errors.Wrap(ErrInvalidCapacity, "queue")
	case c.Queue.RandomMax < 1:
		return ErrInvalidRandomMax
	case c.SeqList.Capacity < 1:
		return errors.Wrap(ErrInvalidCapacity, "seq_list")
	case c.BPlus.Order < 3:
		return ErrInvalidOrder
	case c.HashTable.Capacity < 1:
		return errors.Wrap(ErrInvalidCapacity, "hash_table")
	}
	if _, err := Maps.ParseMode(c.HashTable.Mode); err != nil {
		return err
	}
	_, err := HashExpr.Compile(c.HashTable.Expr)
	return err
}

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}
	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("stack.capacity", d.Stack.Capacity)
	v.SetDefault("stack.auto_expand", d.Stack.AutoExpand)
	v.SetDefault("stack.expand_factor", d.Stack.ExpandFactor)

	v.SetDefault("queue.capacity", d.Queue.Capacity)
	v.SetDefault("queue.random_max", d.Queue.RandomMax)
	v.SetDefault("queue.seed", d.Queue.Seed)

	v.SetDefault("seq_list.capacity", d.SeqList.Capacity)

	v.SetDefault("bplus.order", d.BPlus.Order)

	v.SetDefault("hash_table.capacity", d.HashTable.Capacity)
	v.SetDefault("hash_table.mode", d.HashTable.Mode)
	v.SetDefault("hash_table.expr", d.HashTable.Expr)
}
