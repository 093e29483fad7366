package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

type ServerConfig struct {
	Port             int           `mapstructure:"port"`
	GracefulShutdown time.Duration `mapstructure:"graceful-shutdown"`
	ReadTimeout      time.Duration `mapstructure:"read-timeout"`
	WriteTimeout     time.Duration `mapstructure:"write-timeout"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type DBConfig struct {
	DataSource  string `mapstructure:"data-source"`
	PrepareStmt bool   `mapstructure:"prepare-stmt"`
	LogLevel    string `mapstructure:"log-level"`
	Pool        struct {
		Enable             bool          `mapstructure:"enable"`
		MaxOpenConnections int           `mapstructure:"max-open-connections"`
		MaxIdleConnections int           `mapstructure:"max-idle-connections"`
		MaxLifetime        time.Duration `mapstructure:"max-lifetime"`
	} `mapstructure:"pool"`
}

type CacheConfig struct {
	MaxSize   int    `mapstructure:"max-size"`
	RedisAddr string `mapstructure:"redis-addr"`
	RedisPass string `mapstructure:"redis-pass"`
}

type CronJobConfig struct {
	Enable              bool          `mapstructure:"enable"`
	CleanSharesInterval time.Duration `mapstructure:"clean-shares-interval"`
}

type ShareConfig struct {
	// BaseURL is the public origin used when building share links. The
	// request host is never trusted for this.
	BaseURL string `mapstructure:"base-url"`
}

type ServerCmdConfig struct {
	Server   ServerConfig  `mapstructure:"server"`
	Log      LoggingConfig `mapstructure:"log"`
	JWT      JWTConfig     `mapstructure:"jwt"`
	DB       DBConfig      `mapstructure:"db"`
	Cache    CacheConfig   `mapstructure:"cache"`
	CronJobs CronJobConfig `mapstructure:"cronjobs"`
	Share    ShareConfig   `mapstructure:"share"`
}

type ConfigLoader struct {
	v *viper.Viper
}

func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{
		v: viper.New(),
	}
}

func (cl *ConfigLoader) InitializeConfig(cmd *cobra.Command) error {
	cl.v.SetConfigType("toml")

	cfgFile := cmd.Flags().Lookup("config").Value.String()

	if cfgFile != "" {
		cl.v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error getting home directory: %v", err)
		}
		cl.v.AddConfigPath(filepath.Join(home, ".prezlink"))
		cl.v.AddConfigPath(".")
		cl.v.SetConfigName("config")
	}

	cl.v.SetEnvPrefix("prezlink")
	cl.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	cl.v.AutomaticEnv()

	if err := cl.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %v", err)
	}

	if err := cl.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %v", err)
		}
	}

	return nil
}

func (cl *ConfigLoader) Load(cfg interface{}) error {
	config := &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		Result:           cfg,
	}

	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return fmt.Errorf("failed to create decoder: %v", err)
	}

	if err := decoder.Decode(cl.v.AllSettings()); err != nil {
		return fmt.Errorf("failed to decode config: %v", err)
	}

	return nil
}

func AddCommonFlags(flags *pflag.FlagSet, config *ServerCmdConfig) {

	flags.StringP("config", "c", "", "Config file path (default $HOME/.prezlink/config.toml)")

	// Log config
	flags.StringVar(&config.Log.Level, "log-level", zapcore.InfoLevel.String(), "Logging level")
	flags.StringVar(&config.Log.File, "log-file", "", "Logging file path")

	// DB config
	flags.StringVar(&config.DB.DataSource, "db-data-source", "", "Postgres connection string")
	flags.StringVar(&config.DB.LogLevel, "db-log-level", "info", "Database log level")
	flags.BoolVar(&config.DB.PrepareStmt, "db-prepare-stmt", true, "Use prepared statements")
	flags.BoolVar(&config.DB.Pool.Enable, "db-pool-enable", true, "Enable database pool")
	flags.IntVar(&config.DB.Pool.MaxOpenConnections, "db-pool-max-open-connections", 25, "Database max open connections")
	flags.IntVar(&config.DB.Pool.MaxIdleConnections, "db-pool-max-idle-connections", 25, "Database max idle connections")
	flags.DurationVar(&config.DB.Pool.MaxLifetime, "db-pool-max-lifetime", 10*time.Minute, "Database max connection lifetime")
}

func AddServerFlags(flags *pflag.FlagSet, config *ServerCmdConfig) {

	AddCommonFlags(flags, config)

	// Server config
	flags.IntVarP(&config.Server.Port, "server-port", "p", 8080, "Server port")
	flags.DurationVar(&config.Server.GracefulShutdown, "server-graceful-shutdown", 15*time.Second, "Graceful shutdown timeout")
	flags.DurationVar(&config.Server.ReadTimeout, "server-read-timeout", 1*time.Minute, "Server read timeout")
	flags.DurationVar(&config.Server.WriteTimeout, "server-write-timeout", 1*time.Minute, "Server write timeout")

	// JWT config
	flags.StringVar(&config.JWT.Secret, "jwt-secret", "", "JWT secret key")

	// Cache config
	flags.IntVar(&config.Cache.MaxSize, "cache-max-size", 10*1024*1024, "Max memory cache size in bytes")
	flags.StringVar(&config.Cache.RedisAddr, "cache-redis-addr", "", "Redis address")
	flags.StringVar(&config.Cache.RedisPass, "cache-redis-pass", "", "Redis password")

	// Cron config
	flags.BoolVar(&config.CronJobs.Enable, "cronjobs-enable", true, "Enable cron jobs")
	flags.DurationVar(&config.CronJobs.CleanSharesInterval, "cronjobs-clean-shares-interval", 1*time.Hour, "Expired share cleanup interval")

	// Share config
	flags.StringVar(&config.Share.BaseURL, "share-base-url", "http://localhost:8080", "Public base URL for share links")
}

func (cl *ConfigLoader) Validate(cfg *ServerCmdConfig) error {
	if cfg.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	if cfg.DB.DataSource == "" {
		return fmt.Errorf("db data source is required")
	}
	return nil
}
