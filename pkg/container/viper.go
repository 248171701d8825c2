package container

import (
	"github.com/spf13/viper"

	"cmdwire/pkg/invoke"
)

// Viper exposes a viper configuration as a container, so that handler
// parameters can be injected from configuration keys when injection by name
// is enabled.
type Viper struct {
	v *viper.Viper
}

// NewViper wraps v. A nil v wraps the global viper instance.
func NewViper(v *viper.Viper) *Viper {
	if v == nil {
		v = viper.GetViper()
	}
	return &Viper{v: v}
}

// Get implements invoke.Container.
func (c *Viper) Get(key string) (any, error) {
	if !c.v.IsSet(key) {
		return nil, &invoke.NotFoundError{Key: key}
	}
	return c.v.Get(key), nil
}

// Has implements invoke.Container.
func (c *Viper) Has(key string) bool {
	return c.v.IsSet(key)
}

// Chain looks keys up in several containers, the first one holding a key
// wins.
type Chain []invoke.Container

// Get implements invoke.Container.
func (c Chain) Get(key string) (any, error) {
	for _, container := range c {
		if container.Has(key) {
			return container.Get(key)
		}
	}
	return nil, &invoke.NotFoundError{Key: key}
}

// Has implements invoke.Container.
func (c Chain) Has(key string) bool {
	for _, container := range c {
		if container.Has(key) {
			return true
		}
	}
	return false
}
