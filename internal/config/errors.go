package config

import "github.com/pkg/errors"

func errMissing(key string) error {
	return errors.Errorf("%s is not set", key)
}

func errInvalid(key, value string) error {
	return errors.Errorf("%s has invalid value %q", key, value)
}
