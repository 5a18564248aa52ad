package mapping

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/soar/padmapper/internal/gamepad"
	"github.com/soar/padmapper/internal/keysim"
)

// File schema. Symbolic names are resolved and validated on load; the
// running Table carries only resolved values.
//
// Nothing stops two entries from naming the same controller slot; the
// later mapping then re-evaluates the same device after the earlier one.
type fileConfig struct {
	Controllers []fileController `mapstructure:"controllers"`
}

type fileController struct {
	ID      int          `mapstructure:"id"`
	Axes    []fileAxis   `mapstructure:"axes"`
	Buttons []fileButton `mapstructure:"buttons"`
}

type fileAxis struct {
	Axis      string  `mapstructure:"axis"`
	HighKey   string  `mapstructure:"high_key"`
	LowKey    string  `mapstructure:"low_key"`
	Threshold float64 `mapstructure:"threshold"`
}

type fileButton struct {
	Button string `mapstructure:"button"`
	Key    string `mapstructure:"key"`
}

// Load reads and validates a mapping config file (JSON, YAML or TOML,
// by extension).
func Load(path string) (*Table, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return buildTable(fc)
}

func buildTable(fc fileConfig) (*Table, error) {
	if len(fc.Controllers) == 0 {
		return nil, fmt.Errorf("config maps no controllers")
	}

	table := &Table{}
	for ci, c := range fc.Controllers {
		if c.ID < 0 {
			return nil, fmt.Errorf("controller %d: id must be >= 0, got %d", ci, c.ID)
		}
		dm := DeviceMapping{Controller: c.ID}

		for ai, a := range c.Axes {
			rule, err := buildAxisRule(a)
			if err != nil {
				return nil, fmt.Errorf("controller %d axis %d: %w", ci, ai, err)
			}
			dm.AxisRules = append(dm.AxisRules, rule)
		}
		for bi, b := range c.Buttons {
			rule, err := buildButtonRule(b)
			if err != nil {
				return nil, fmt.Errorf("controller %d button %d: %w", ci, bi, err)
			}
			dm.ButtonRules = append(dm.ButtonRules, rule)
		}
		table.Mappings = append(table.Mappings, dm)
	}
	return table, nil
}

func buildAxisRule(a fileAxis) (AxisRule, error) {
	axis, err := gamepad.ParseAxis(a.Axis)
	if err != nil {
		return AxisRule{}, err
	}
	high, err := keysim.ParseKey(a.HighKey)
	if err != nil {
		return AxisRule{}, fmt.Errorf("high_key: %w", err)
	}
	low, err := keysim.ParseKey(a.LowKey)
	if err != nil {
		return AxisRule{}, fmt.Errorf("low_key: %w", err)
	}
	if a.Threshold <= 0 || a.Threshold > 1 {
		return AxisRule{}, fmt.Errorf("threshold must be in (0,1], got %g", a.Threshold)
	}
	return AxisRule{Axis: axis, HighKey: high, LowKey: low, Threshold: a.Threshold}, nil
}

func buildButtonRule(b fileButton) (ButtonRule, error) {
	button, err := gamepad.ParseButton(b.Button)
	if err != nil {
		return ButtonRule{}, err
	}
	key, err := keysim.ParseKey(b.Key)
	if err != nil {
		return ButtonRule{}, fmt.Errorf("key: %w", err)
	}
	return ButtonRule{Button: button, Key: key}, nil
}
