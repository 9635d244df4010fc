package internal

import (
	"fmt"
	"maps"
	"os"
	"player-lab/errors"
	"player-lab/infrastructure/transport"
	"player-lab/runtime/workers"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DefaultConfigFile = "application.properties"
	// ConfigFileEnv names the variable overriding the default properties file.
	ConfigFileEnv = "PLAYER_CONFIG_FILE"
)

var validate = validator.New()

// Config is read once at startup and passed down explicitly.
// Each key accepts an environment alias first and a properties key second.
type Config struct {
	QueueCapacity int    `env:"QUEUE_CAPACITY,queue.capacity,required=true" validate:"gte=1"`
	NetworkPort   int    `env:"NETWORK_PORT,network.port,required=true" validate:"gte=1,lte=65535"`
	NetworkHost   string `env:"NETWORK_HOST,network.host,required=true" validate:"required,hostname_rfc1123|ip"`
	MaxMessages   int    `env:"MESSAGE_COUNT_MAX,message.count.max,required=true" validate:"gte=1"`
	LogLevel      string `env:"LOG_LEVEL,log.level,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR debug info warn error"`

	SendTimeout        time.Duration `env:"SEND_TIMEOUT,queue.send.timeout,default=1s" validate:"gt=0"`
	ConnectSettleDelay time.Duration `env:"CONNECT_SETTLE_DELAY,network.connect.settle,default=1s" validate:"gte=0"`
	ConnectRetries     int           `env:"CONNECT_MAX_RETRIES,network.connect.retries,default=5" validate:"gte=0"`
	ConnectRetryDelay  time.Duration `env:"CONNECT_RETRY_DELAY,network.connect.retry.delay,default=2s" validate:"gte=0"`
	PaceInterval       time.Duration `env:"PACE_INTERVAL,message.pace,default=100ms" validate:"gte=0"`
	ResponderGrace     time.Duration `env:"RESPONDER_GRACE,player.responder.grace,default=1s" validate:"gte=0"`
}

// LoadConfig reads the given properties files, or the default one when none
// is given, then lets the process environment override them.
// A missing default file is not an error; a missing explicit file is.
func LoadConfig(files ...string) (Config, error) {
	var config Config

	values, err := readProperties(files)
	if err != nil {
		return config, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	environ, err := env.EnvironToEnvSet(os.Environ())
	if err != nil {
		return config, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}
	maps.Copy(values, environ)

	if err = env.Unmarshal(values, &config); err != nil {
		return config, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}
	if err = validate.Struct(config); err != nil {
		return config, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}
	return config, nil
}

func readProperties(files []string) (env.EnvSet, error) {
	if len(files) == 0 {
		file, explicit := os.LookupEnv(ConfigFileEnv)
		if !explicit {
			file = DefaultConfigFile
		}
		if _, err := os.Stat(file); err != nil {
			if !explicit && os.IsNotExist(err) {
				return env.EnvSet{}, nil
			}
			return nil, err
		}
		files = []string{file}
	}

	values, err := godotenv.Read(files...)
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (c Config) NetworkOptions() transport.NetworkOptions {
	return transport.NetworkOptions{
		Host:        c.NetworkHost,
		Port:        c.NetworkPort,
		SettleDelay: c.ConnectSettleDelay,
		MaxRetries:  c.ConnectRetries,
		RetryDelay:  c.ConnectRetryDelay,
	}
}

func (c Config) PlayerSettings() workers.PlayerSettings {
	return workers.PlayerSettings{
		MaxMessages:  c.MaxMessages,
		PaceInterval: c.PaceInterval,
	}
}
