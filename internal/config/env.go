package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const EnvPrefix = "DISPATCH"

type Env struct {
	Server struct {
		Addr        string   `mapstructure:"addr"`
		GinMode     string   `mapstructure:"gin_mode"`
		CORSOrigins []string `mapstructure:"cors_origins"`
	} `mapstructure:"server"`
	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Pagination struct {
		Secret       string `mapstructure:"secret"`
		DefaultLimit int    `mapstructure:"default_limit"`
		MaxLimit     int    `mapstructure:"max_limit"`
	} `mapstructure:"pagination"`
	Log struct {
		Level       string `mapstructure:"level"`
		Environment string `mapstructure:"environment"`
	} `mapstructure:"log"`
	App struct {
		Version string `mapstructure:"version"`
	} `mapstructure:"app"`
}

// LoadEnv reads config.toml (or cfgFile), DISPATCH_* environment variables
// and any flags bound with BindFlags, in increasing priority.
func LoadEnv(cfgFile string) (Env, error) {
	return loadEnv(viper.GetViper(), cfgFile)
}

func loadEnv(v *viper.Viper, cfgFile string) (Env, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return Env{}, fmt.Errorf("read config: %w", err)
		}
	}

	var env Env
	if err := v.Unmarshal(&env); err != nil {
		return Env{}, fmt.Errorf("decode config: %w", err)
	}
	env.Server.CORSOrigins = splitOrigins(env.Server.CORSOrigins)
	if env.Pagination.MaxLimit > 0 && env.Pagination.DefaultLimit > env.Pagination.MaxLimit {
		env.Pagination.DefaultLimit = env.Pagination.MaxLimit
	}
	return env, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.gin_mode", "")
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "dispatch")
	v.SetDefault("pagination.secret", "")
	v.SetDefault("pagination.default_limit", 10)
	v.SetDefault("pagination.max_limit", 1000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.environment", "production")
	v.SetDefault("app.version", "dev")
}

// BindFlags registers the command line flags that override configuration.
func BindFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("addr", ":8080", "address the HTTP server listens on")
	_ = viper.BindPFlag("server.addr", cmd.PersistentFlags().Lookup("addr"))
}

// env vars deliver lists as one comma separated string
func splitOrigins(in []string) []string {
	out := []string{}
	for _, item := range in {
		for _, o := range strings.Split(item, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}
