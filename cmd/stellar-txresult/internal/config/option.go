package config

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/spf13/pflag"

	"github.com/stellar/go/support/strutils"
)

// Options is a group of Options that can be for convenience
// initialized and set at the same time.
type Options []*Option

// Option is a complete description of the configuration of a command line option
type Option struct {
	// e.g. "db-path"
	Name string
	// e.g. "DB_PATH". Defaults to uppercase/underscore representation of name
	EnvVar string
	// e.g. "DB_PATH". Defaults to uppercase/underscore representation of name. - to omit from toml
	TomlKey string
	// Help text
	Usage string
	// A default if no option is provided. Omit or set to `nil` if no default
	DefaultValue interface{}
	// Pointer to the final key in the linked Config struct
	ConfigKey interface{}
	// Optional function for custom validation/transformation
	CustomSetValue func(*Option, interface{}) error
	// Function called after loading all options, to validate the configuration
	Validate func(*Option) error
	// Function to marshal the value to toml
	MarshalTOML func(*Option) (interface{}, error)

	flag *pflag.Flag // The persistent flag that the config option is attached to
}

// Returns false if this option is omitted in the toml
func (o Option) getTomlKey() (string, bool) {
	if o.TomlKey == "-" || o.TomlKey == "_" {
		return "", false
	}
	if o.TomlKey != "" {
		return o.TomlKey, true
	}
	if envVar, ok := o.getEnvKey(); ok {
		return envVar, true
	}
	return strutils.KebabToConstantCase(o.Name), true
}

// Returns false if this option is omitted in the env
func (o Option) getEnvKey() (string, bool) {
	if o.EnvVar == "-" || o.EnvVar == "_" {
		return "", false
	}
	if o.EnvVar != "" {
		return o.EnvVar, true
	}
	return strutils.KebabToConstantCase(o.Name), true
}

func (o *Option) setValue(i interface{}) (err error) {
	if o.CustomSetValue != nil {
		return o.CustomSetValue(o, i)
	}
	defer func() {
		if recoverRes := recover(); recoverRes != nil {
			var ok bool
			if err, ok = recoverRes.(error); ok {
				return
			}

			err = fmt.Errorf("config option setting error ('%s') %v", o.Name, recoverRes)
		}
	}()
	parser := func(option *Option, i interface{}) error {
		return fmt.Errorf("no parser for flag %s", o.Name)
	}
	switch o.ConfigKey.(type) {
	case *bool:
		parser = parseBool
	case *int, *int8, *int16, *int32, *int64:
		parser = parseInt
	case *uint8, *uint16, *uint32:
		parser = parseUint32
	case *uint, *uint64:
		parser = parseUint
	case *string:
		parser = parseString
	case *time.Duration:
		parser = parseDuration
	}

	return parser(o, i)
}

func (o *Option) marshalTOML() (interface{}, error) {
	if o.MarshalTOML != nil {
		return o.MarshalTOML(o)
	}
	// go-toml only round-trips 64 bit integers
	switch v := o.ConfigKey.(type) {
	case *int, *int8, *int16, *int32, *int64:
		return reflect.ValueOf(v).Elem().Int(), nil
	case *uint, *uint8, *uint16, *uint32, *uint64:
		return reflect.ValueOf(v).Elem().Uint(), nil
	case *time.Duration:
		return v.String(), nil
	case *bool:
		return *v, nil
	case *string:
		return *v, nil
	default:
		return nil, fmt.Errorf("cannot marshal %s (%s) to toml", o.Name, strconv.Quote(fmt.Sprintf("%T", v)))
	}
}

func required(option *Option) error {
	switch reflect.ValueOf(option.ConfigKey).Elem().Kind() {
	case reflect.Slice:
		if reflect.ValueOf(option.ConfigKey).Elem().Len() > 0 {
			return nil
		}
	default:
		if !reflect.ValueOf(option.ConfigKey).Elem().IsZero() {
			return nil
		}
	}

	waysToSet := []string{}
	if option.Name != "" && option.Name != "-" {
		waysToSet = append(waysToSet, fmt.Sprintf("specify --%s on the command line", option.Name))
	}
	if envVar, ok := option.getEnvKey(); ok {
		waysToSet = append(waysToSet, fmt.Sprintf("set the %s environment variable", envVar))
	}
	if tomlKey, ok := option.getTomlKey(); ok {
		waysToSet = append(waysToSet, fmt.Sprintf("set %s in the config file", tomlKey))
	}

	advice := ""
	switch len(waysToSet) {
	case 1:
		advice = fmt.Sprintf(" Please %s.", waysToSet[0])
	case 2:
		advice = fmt.Sprintf(" Please %s or %s.", waysToSet[0], waysToSet[1])
	case 3:
		advice = fmt.Sprintf(" Please %s, %s, or %s.", waysToSet[0], waysToSet[1], waysToSet[2])
	}

	return fmt.Errorf("%s is required.%s", option.Name, advice)
}

func positive(option *Option) error {
	switch v := option.ConfigKey.(type) {
	case *int, *int8, *int16, *int32, *int64:
		if reflect.ValueOf(v).Elem().Int() <= 0 {
			return fmt.Errorf("%s must be positive", option.Name)
		}
	case *uint, *uint8, *uint16, *uint32, *uint64:
		if reflect.ValueOf(v).Elem().Uint() <= 0 {
			return fmt.Errorf("%s must be positive", option.Name)
		}
	default:
		return fmt.Errorf("%s is not a positive integer", option.Name)
	}
	return nil
}
