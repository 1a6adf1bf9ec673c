package config

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func parseBool(option *Option, i interface{}) error {
	switch v := i.(type) {
	case nil:
		return nil
	case bool:
		//nolint:forcetypeassert
		*option.ConfigKey.(*bool) = v
	case string:
		b, err := strconv.ParseBool(strings.ToLower(v))
		if err != nil {
			return fmt.Errorf("invalid boolean value %s: %s", option.Name, v)
		}
		//nolint:forcetypeassert
		*option.ConfigKey.(*bool) = b
	default:
		return fmt.Errorf("could not parse boolean %s: %v", option.Name, i)
	}
	return nil
}

func parseInt(option *Option, i interface{}) error {
	switch v := i.(type) {
	case nil:
		return nil
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		reflect.ValueOf(option.ConfigKey).Elem().SetInt(parsed)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return parseInt(option, fmt.Sprint(v))
	default:
		return fmt.Errorf("could not parse int %s: %v", option.Name, i)
	}
	return nil
}

// parseUnsigned stores i into an unsigned ConfigKey no wider than bits.
func parseUnsigned(option *Option, i interface{}, bits int) error {
	switch v := i.(type) {
	case nil:
		return nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return err
		}
		if bits < 64 && parsed > uint64(1)<<bits-1 {
			return fmt.Errorf("%s overflows uint%d", option.Name, bits)
		}
		reflect.ValueOf(option.ConfigKey).Elem().SetUint(parsed)
	case int, int8, int16, int32, int64:
		if reflect.ValueOf(v).Int() < 0 {
			return fmt.Errorf("%s cannot be negative", option.Name)
		}
		return parseUnsigned(option, fmt.Sprint(v), bits)
	case uint, uint8, uint16, uint32, uint64:
		return parseUnsigned(option, fmt.Sprint(v), bits)
	default:
		return fmt.Errorf("could not parse uint%d %s: %v", bits, option.Name, i)
	}
	return nil
}

func parseUint(option *Option, i interface{}) error {
	return parseUnsigned(option, i, 64)
}

func parseUint32(option *Option, i interface{}) error {
	return parseUnsigned(option, i, 32)
}

func parseString(option *Option, i interface{}) error {
	switch v := i.(type) {
	case nil:
		return nil
	case string:
		if strPtr, ok := option.ConfigKey.(*string); ok {
			*strPtr = v
		} else {
			return fmt.Errorf("invalid type for %s: expected *string", option.Name)
		}
	default:
		return fmt.Errorf("could not parse string %s: %v", option.Name, i)
	}
	return nil
}

func parseDuration(option *Option, i interface{}) error {
	durationPtr, ok := option.ConfigKey.(*time.Duration)
	if !ok {
		return fmt.Errorf("invalid type for %s: expected *time.Duration", option.Name)
	}

	switch v := i.(type) {
	case nil:
		return nil
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("could not parse duration: %q: %w", v, err)
		}
		*durationPtr = d
	case time.Duration:
		*durationPtr = v
	case *time.Duration:
		*durationPtr = *v
	case int64:
		if v > math.MaxInt64/int64(time.Second) || v < 0 {
			return fmt.Errorf("%s is out of range: %d", option.Name, v)
		}
		*durationPtr = time.Duration(v) * time.Second
	default:
		return fmt.Errorf("%s is not a duration", option.Name)
	}
	return nil
}

func parseLogLevel(option *Option, i interface{}) error {
	levelPtr, ok := option.ConfigKey.(*logrus.Level)
	if !ok {
		return fmt.Errorf("invalid type for %s: expected *logrus.Level", option.Name)
	}
	switch v := i.(type) {
	case nil:
		return nil
	case string:
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("could not parse %s: %q", option.Name, v)
		}
		*levelPtr = level
	case logrus.Level:
		*levelPtr = v
	case *logrus.Level:
		*levelPtr = *v
	default:
		return fmt.Errorf("could not parse %s: %q", option.Name, v)
	}
	return nil
}

func parseLogFormat(option *Option, i interface{}) error {
	formatPtr, ok := option.ConfigKey.(*LogFormat)
	if !ok {
		return fmt.Errorf("invalid type for %s: expected *LogFormat", option.Name)
	}
	switch v := i.(type) {
	case nil:
		return nil
	case string:
		return errors.Wrapf(formatPtr.UnmarshalText([]byte(v)), "could not parse %s", option.Name)
	case LogFormat:
		*formatPtr = v
	case *LogFormat:
		*formatPtr = *v
	default:
		return fmt.Errorf("could not parse %s: %q", option.Name, v)
	}
	return nil
}
