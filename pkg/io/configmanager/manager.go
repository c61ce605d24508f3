package configmanager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	envPrefix      = "PLAYCTL"
	configName     = "playctl"
	configFileFlag = "config"
)

// ErrUnexpectedTypeMeta is returned when a config file declares another apiVersion or kind.
var ErrUnexpectedTypeMeta = errors.New("unexpected apiVersion or kind")

// Manager loads and caches an Environment.
type Manager struct {
	Viper     *viper.Viper
	selectors []FieldSelector
	env       *v1alpha1.Environment
	source    string
}

// NewManager returns a manager for the given selectors, or DefaultSelectors when none.
func NewManager(selectors ...FieldSelector) *Manager {
	if len(selectors) == 0 {
		selectors = DefaultSelectors()
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", configName))
	}

	for _, sel := range selectors {
		v.SetDefault(sel.Key, sel.Default)

		names := append([]string{sel.Key}, sel.EnvVars...)
		names = append(names, envPrefixed(sel.Flag))
		_ = v.BindEnv(names...)
	}

	return &Manager{Viper: v, selectors: selectors}
}

// RegisterFlags adds one flag per selector plus --config to flags and binds them.
func (m *Manager) RegisterFlags(flags *pflag.FlagSet) error {
	flags.String(configFileFlag, "", "Path to a playctl.yaml file")

	for _, sel := range m.selectors {
		switch def := sel.Default.(type) {
		case int:
			flags.Int(sel.Flag, def, sel.Description)
		case bool:
			flags.Bool(sel.Flag, def, sel.Description)
		case time.Duration:
			flags.Duration(sel.Flag, def, sel.Description)
		default:
			flags.String(sel.Flag, fmt.Sprint(def), sel.Description)
		}

		if err := m.Viper.BindPFlag(sel.Key, flags.Lookup(sel.Flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", sel.Flag, err)
		}
	}

	return nil
}

// Load reads the configuration once and returns the validated Environment.
// Later calls return the cached value.
func (m *Manager) Load(flags *pflag.FlagSet) (*v1alpha1.Environment, error) {
	if m.env != nil {
		return m.env, nil
	}

	if err := m.readConfigFile(flags); err != nil {
		return nil, err
	}

	env := &v1alpha1.Environment{}

	err := m.Viper.Unmarshal(env, func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			durationHook(),
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	if err := checkTypeMeta(env); err != nil {
		return nil, err
	}

	env.APIVersion = v1alpha1.APIVersion
	env.Kind = v1alpha1.Kind
	env.SetDefaults()

	if err := env.Validate(); err != nil {
		return nil, fmt.Errorf("validate configuration: %w", err)
	}

	m.env = env

	return env, nil
}

// Source returns the config file that was read, or "" when only defaults, environment and
// flags were used.
func (m *Manager) Source() string {
	return m.source
}

func (m *Manager) readConfigFile(flags *pflag.FlagSet) error {
	if flags != nil {
		if path, _ := flags.GetString(configFileFlag); path != "" {
			m.Viper.SetConfigFile(path)
		}
	}

	err := m.Viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}

		return fmt.Errorf("read config file: %w", err)
	}

	m.source = m.Viper.ConfigFileUsed()

	return nil
}

func checkTypeMeta(env *v1alpha1.Environment) error {
	if env.APIVersion != "" && env.APIVersion != v1alpha1.APIVersion {
		return fmt.Errorf("%w: apiVersion %q (want %q)", ErrUnexpectedTypeMeta, env.APIVersion, v1alpha1.APIVersion)
	}

	if env.Kind != "" && env.Kind != v1alpha1.Kind {
		return fmt.Errorf("%w: kind %q (want %q)", ErrUnexpectedTypeMeta, env.Kind, v1alpha1.Kind)
	}

	return nil
}

// durationHook decodes strings and time.Duration values into metav1.Duration.
func durationHook() mapstructure.DecodeHookFuncType {
	target := reflect.TypeFor[metav1.Duration]()

	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != target {
			return data, nil
		}

		switch value := data.(type) {
		case time.Duration:
			return metav1.Duration{Duration: value}, nil
		case string:
			if value == "" {
				return metav1.Duration{}, nil
			}

			parsed, err := time.ParseDuration(value)
			if err != nil {
				return nil, fmt.Errorf("parse duration %q: %w", value, err)
			}

			return metav1.Duration{Duration: parsed}, nil
		default:
			return data, nil
		}
	}
}
