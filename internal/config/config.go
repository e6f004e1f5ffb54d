package config

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	royaltyconfig "github.com/gaze-network/royalty-registry/modules/royalty/config"
	"github.com/gaze-network/royalty-registry/pkg/logger"
	"github.com/gaze-network/royalty-registry/pkg/logger/slogx"
	"github.com/gaze-network/royalty-registry/pkg/middleware/requestcontext"
	"github.com/gaze-network/royalty-registry/pkg/middleware/requestlogger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	isInit     bool
	mu         sync.Mutex
	configOnce sync.Once
	config     = &Config{
		Logger: logger.Config{
			Output: "TEXT",
		},
		HTTPServer: HTTPServerConfig{
			Port:         8080,
			CallerHeader: requestcontext.DefaultCallerHeader,
		},
		EnableModules: []string{"royalty"},
		Modules: Modules{
			Royalty: royaltyconfig.Default(),
		},
	}
)

type Config struct {
	Logger        logger.Config    `mapstructure:"logger"`
	HTTPServer    HTTPServerConfig `mapstructure:"http_server"`
	EnableModules []string         `mapstructure:"enable_modules"`
	APIOnly       bool             `mapstructure:"api_only"`
	Modules       Modules          `mapstructure:"modules"`
}

type Modules struct {
	Royalty royaltyconfig.Config `mapstructure:"royalty"`
}

type HTTPServerConfig struct {
	Port      int                               `mapstructure:"port"`
	Logger    requestlogger.Config              `mapstructure:"logger"`
	RequestIP requestcontext.WithClientIPConfig `mapstructure:"request_ip"`

	// CallerHeader is the request header carrying the caller address. e.g. X-Caller-Address
	CallerHeader string `mapstructure:"caller_header"`
}

// Parse parse the configuration from environment variables and the given config file.
// If the config file is empty, it will look for `config.yaml` in the working directory.
func Parse(configFile ...string) Config {
	mu.Lock()
	defer mu.Unlock()
	return parse(configFile...)
}

// Load returns the loaded configuration. It parses the configuration on the first call.
func Load() Config {
	mu.Lock()
	defer mu.Unlock()
	if isInit {
		return *config
	}
	return parse()
}

// BindPFlag binds a specific key to a pflag (as used by cobra).
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("Something went wrong, failed to bind flag for config", slog.String("package", "config"), slogx.Error(err))
	}
}

// SetDefault sets the default value for this key.
// Default only used when no value is provided by the user via config or ENV.
func SetDefault(key string, value any) {
	viper.SetDefault(key, value)
}

func parse(configFile ...string) Config {
	ctx := logger.WithContext(context.Background(), slog.String("package", "config"))

	if len(configFile) > 0 && configFile[0] != "" {
		viper.SetConfigFile(configFile[0])
	} else {
		viper.AddConfigPath("./")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := viper.ReadInConfig(); err != nil {
		var errNotfound viper.ConfigFileNotFoundError
		if errors.As(err, &errNotfound) {
			logger.WarnContext(ctx, "Config file not found, use default config value", slogx.Error(err))
		} else {
			logger.PanicContext(ctx, "Invalid config file", slogx.Error(err))
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		logger.PanicContext(ctx, "Something went wrong, failed to unmarshal config", slogx.Error(err))
	}

	configOnce.Do(func() {
		logger.InfoContext(ctx, "Loaded config successfully", slog.String("file", viper.ConfigFileUsed()))
	})
	isInit = true
	return *config
}
