package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every preference key read from the
// environment, e.g. GAITSIM_LOG_LEVEL.
const EnvPrefix = "GAITSIM"

// Preferences are per-user process settings. The joint fallbacks seed
// DefaultGlobal before a document is decoded, so a document value always
// wins over a preference.
type Preferences struct {
	LogLevel  string `mapstructure:"log_level"`
	LogPretty bool   `mapstructure:"log_pretty"`
	RunsDir   string `mapstructure:"runs_dir"`
	Workers   int    `mapstructure:"workers"`

	// Integrator used when a document does not name one.
	Integrator string `mapstructure:"integrator"`
	// ERP and CFM for joints without softness attributes.
	ERP float64 `mapstructure:"erp"`
	CFM float64 `mapstructure:"cfm"`
	// StopTorqueWindow is the number of samples averaged before the hinge
	// torque limit check (default 1).
	StopTorqueWindow int `mapstructure:"stop_torque_window"`
	// StressWindow is the moving-average length for fixed joints that do
	// not set Window (default 1).
	StressWindow int `mapstructure:"stress_window"`
	// CutoffFrequency is the Butterworth cutoff in Hz (default: none).
	CutoffFrequency float64 `mapstructure:"cutoff_frequency"`
}

func setDefaults(v *viper.Viper) {
	g := DefaultGlobal()
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", true)
	v.SetDefault("runs_dir", "runs")
	v.SetDefault("workers", 4)
	v.SetDefault("integrator", g.Integrator)
	v.SetDefault("erp", g.ERP)
	v.SetDefault("cfm", g.CFM)
	v.SetDefault("stop_torque_window", g.StopTorqueWindow)
	v.SetDefault("stress_window", g.StressWindow)
	v.SetDefault("cutoff_frequency", 0.0)
}

// LoadPreferences reads defaults, then the optional file, then GAITSIM_*
// environment variables. An empty file skips the file; a missing
// explicit file is an error.
func LoadPreferences(v *viper.Viper, file string) (Preferences, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Preferences{}, fmt.Errorf("error reading preferences file: %w", err)
		}
	}

	var p Preferences
	if err := v.Unmarshal(&p); err != nil {
		return Preferences{}, fmt.Errorf("error decoding preferences: %w", err)
	}
	return p, nil
}

// Global returns DefaultGlobal with the preference fallbacks applied.
func (p Preferences) Global() Global {
	g := DefaultGlobal()
	if p.Integrator != "" {
		g.Integrator = p.Integrator
	}
	if p.ERP > 0 {
		g.ERP = p.ERP
	}
	if p.CFM > 0 {
		g.CFM = p.CFM
	}
	if p.StopTorqueWindow > 0 {
		g.StopTorqueWindow = p.StopTorqueWindow
	}
	if p.StressWindow > 0 {
		g.StressWindow = p.StressWindow
	}
	if p.CutoffFrequency > 0 {
		g.CutoffFrequency = p.CutoffFrequency
	}
	return g
}
