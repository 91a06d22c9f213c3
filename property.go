package boreas

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// SetProperty assigns value to the property key of target. Targets
// implementing PropertySetter handle the assignment themselves. Otherwise the
// value is decoded into the matching exported field of the struct target
// points to; field names match case insensitively and the string value is
// converted to the field's type.
func SetProperty(target any, key, value string) error {
	if setter, ok := target.(PropertySetter); ok {
		return setter.SetProperty(key, value)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return fmt.Errorf("cannot set property %s on %T: %w", key, target, err)
	}
	if err := decoder.Decode(map[string]any{key: value}); err != nil {
		return fmt.Errorf("cannot set property %s on %T: %w", key, target, err)
	}
	return nil
}

// AddProperty hands the property to targets implementing PropertyAdder and
// is a no-op for everything else.
func AddProperty(target any, key, value string) error {
	adder, ok := target.(PropertyAdder)
	if !ok {
		return nil
	}
	return adder.AddProperty(key, value)
}
