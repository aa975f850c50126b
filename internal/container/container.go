// Package container provides dependency injection for the bank-import
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/bank-import/internal/config"
	"fjacquet/bank-import/internal/importer"
	"fjacquet/bank-import/internal/logging"
	"fjacquet/bank-import/internal/report"
	"fjacquet/bank-import/internal/store"
)

// Container holds all application dependencies and provides methods to access
// them. It is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	processor *importer.Processor
	profiles  *store.ProfileStore
	reports   *report.Generator
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	processor := importer.New(logger)
	profiles := store.NewProfileStore("")
	reports := report.NewGenerator(logger)

	logger.Debug("Container initialized successfully")

	return &Container{
		logger:    logger,
		config:    cfg,
		processor: processor,
		profiles:  profiles,
		reports:   reports,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetProcessor returns the container's import processor instance.
func (c *Container) GetProcessor() *importer.Processor {
	return c.processor
}

// GetProfileStore returns the container's profile store instance.
func (c *Container) GetProfileStore() *store.ProfileStore {
	return c.profiles
}

// GetReportGenerator returns the container's report generator instance.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.reports
}
