package env

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func Must[T any](val T, err error) T {
	if err != nil {
		panic(fmt.Errorf("failed to parse environment: %w", err))
	}
	return val
}

func ParseString(key string) (string, error) {
	str, ok := os.LookupEnv(key)
	if !ok {
		return "", notFoundError(key, "string")
	}
	return str, nil
}

func ParseStringWithDefault(key, defaultValue string) string {
	str, ok := os.LookupEnv(key)
	if !ok || str == "" {
		return defaultValue
	}
	return str
}

func ParseBool(key string) (bool, error) {
	str, ok := os.LookupEnv(key)
	if !ok {
		return false, notFoundError(key, "boolean")
	}
	b, err := strconv.ParseBool(str)
	if err != nil {
		return false, invalidValueError(key, "boolean")
	}
	return b, nil
}

func ParseInt(key string) (int, error) {
	str, ok := os.LookupEnv(key)
	if !ok {
		return 0, notFoundError(key, "integer")
	}
	i, err := strconv.Atoi(str)
	if err != nil {
		return 0, invalidValueError(key, "integer")
	}
	return i, nil
}

func ParseIntWithDefault(key string, defaultValue int) int {
	i, err := ParseInt(key)
	if err != nil {
		return defaultValue
	}
	return i
}

func ParseDuration(key string) (time.Duration, error) {
	str, ok := os.LookupEnv(key)
	if !ok {
		return 0, notFoundError(key, "duration")
	}
	d, err := time.ParseDuration(str)
	if err != nil {
		return 0, invalidValueError(key, "duration")
	}
	return d, nil
}

func ParseDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	d, err := ParseDuration(key)
	if err != nil {
		return defaultValue
	}
	return d
}

func notFoundError(key, varType string) error {
	return fmt.Errorf("env %s with type %s not found", key, varType)
}

func invalidValueError(key, varType string) error {
	return fmt.Errorf("env %s with type %s has invalid value", key, varType)
}
