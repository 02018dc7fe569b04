package handlers

import (
	"sync"

	"dispatchapi/internal/paging"
)

// Options carries the process wide settings the handlers depend on.
type Options struct {
	Codec        *paging.Codec
	DefaultLimit int
	MaxLimit     int
	Version      string
}

var (
	optionsMu sync.RWMutex
	options   *Options
)

// Configure installs the handler options. Zero limits fall back to the package defaults.
func Configure(o Options) {
	if o.Codec == nil {
		o.Codec = paging.NewCodec("")
	}
	if o.DefaultLimit <= 0 {
		o.DefaultLimit = paging.DefaultLimit
	}
	optionsMu.Lock()
	defer optionsMu.Unlock()
	options = &o
}

func currentOptions() Options {
	optionsMu.RLock()
	o := options
	optionsMu.RUnlock()
	if o == nil {
		Configure(Options{})
		return currentOptions()
	}
	return *o
}

func codec() *paging.Codec {
	return currentOptions().Codec
}
