// Package timex adds config-file friendly wrappers around time types.
package timex

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidDuration = errors.New("invalid duration")

// Duration decodes from either a Go duration string ("1m30s") or a number
// of seconds (10, 2.5).
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return d.set(v)
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) set(v any) error {
	switch x := v.(type) {
	case string:
		parsed, err := time.ParseDuration(x)
		if err != nil {
			return fmt.Errorf("%w %q: %v", ErrInvalidDuration, x, err)
		}
		d.Duration = parsed
	case float64:
		return d.seconds(x)
	case int:
		return d.seconds(float64(x))
	default:
		return fmt.Errorf("%w: unsupported value %v", ErrInvalidDuration, v)
	}
	return nil
}

func (d *Duration) seconds(s float64) error {
	if math.IsNaN(s) || math.IsInf(s, 0) || math.Abs(s) > math.MaxInt64/float64(time.Second) {
		return fmt.Errorf("%w: %v seconds out of range", ErrInvalidDuration, s)
	}
	d.Duration = time.Duration(s * float64(time.Second))
	return nil
}
