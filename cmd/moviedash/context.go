package main

import (
	"io"
	"log"
	"os"
	"strings"

	"github.com/Clark-Hu/moviedash/internal/config"
	"github.com/Clark-Hu/moviedash/internal/store"
)

type commandContext struct {
	configFlag    *string
	dataFlag      *string
	encodingsFlag *[]string
	quietFlag     *bool

	cfg    *config.Config
	store  *store.Store
	logger *log.Logger
}

func newCommandContext(configFlag, dataFlag *string, encodingsFlag *[]string, quietFlag *bool) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		dataFlag:      dataFlag,
		encodingsFlag: encodingsFlag,
		quietFlag:     quietFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(strings.TrimSpace(*c.configFlag))
	if err != nil {
		return nil, err
	}
	if path := strings.TrimSpace(*c.dataFlag); path != "" {
		cfg.DatasetPath = path
	}
	if len(*c.encodingsFlag) > 0 {
		cfg.Encodings = append([]string(nil), *c.encodingsFlag...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c.cfg = &cfg
	return c.cfg, nil
}

func (c *commandContext) ensureLogger() *log.Logger {
	if c.logger != nil {
		return c.logger
	}
	var out io.Writer = os.Stderr
	if c.quietFlag != nil && *c.quietFlag {
		out = io.Discard
	}
	c.logger = log.New(out, "[moviedash] ", log.LstdFlags)
	return c.logger
}

// ensureStore loads the dataset once per process.
func (c *commandContext) ensureStore() (*store.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.DatasetPath, store.Options{
		Encodings: cfg.Encodings,
		Logger:    c.ensureLogger(),
	})
	if err != nil {
		return nil, err
	}
	c.store = st
	return st, nil
}
