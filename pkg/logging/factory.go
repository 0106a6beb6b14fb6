package logging

import "sync"

// DefaultLoggerFactory implements LoggerFactory using zap loggers
type DefaultLoggerFactory struct {
	loggers map[string]Logger
	mu      sync.RWMutex
}

// NewLoggerFactory creates a new logger factory
func NewLoggerFactory() LoggerFactory {
	return &DefaultLoggerFactory{
		loggers: make(map[string]Logger),
	}
}

// CreateLogger creates a basic logger for the specified component
func (f *DefaultLoggerFactory) CreateLogger(component string) Logger {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Check if logger already exists
	if logger, exists := f.loggers[component]; exists {
		return logger
	}

	logger := NewZapLogger(component)
	f.loggers[component] = logger
	return logger
}

// CreateHandlerLogger creates a logger for HTTP handler operations
func (f *DefaultLoggerFactory) CreateHandlerLogger(route string) Logger {
	return f.CreateLogger("handlers").WithRoute(route)
}

// CreateJobLogger creates a logger for scheduled job operations
func (f *DefaultLoggerFactory) CreateJobLogger(jobName string) Logger {
	return f.CreateLogger("jobs").WithContext(map[string]interface{}{"job": jobName})
}

// DatabaseLoggerFactory extends the default factory with database persistence
type DatabaseLoggerFactory struct {
	loggers    map[string]Logger
	mu         sync.RWMutex
	repository LogRepository
}

// NewDatabaseLoggerFactory creates a logger factory with database persistence
func NewDatabaseLoggerFactory(repository LogRepository) LoggerFactory {
	return &DatabaseLoggerFactory{
		loggers:    make(map[string]Logger),
		repository: repository,
	}
}

// CreateLogger creates a database-backed logger for the specified component
func (f *DatabaseLoggerFactory) CreateLogger(component string) Logger {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Check if logger already exists
	if logger, exists := f.loggers[component]; exists {
		return logger
	}

	logger := NewDatabaseLogger(component, f.repository)
	f.loggers[component] = logger
	return logger
}

// CreateHandlerLogger creates a database-backed logger for HTTP handler operations
func (f *DatabaseLoggerFactory) CreateHandlerLogger(route string) Logger {
	return f.CreateLogger("handlers").WithRoute(route)
}

// CreateJobLogger creates a database-backed logger for scheduled job operations
func (f *DatabaseLoggerFactory) CreateJobLogger(jobName string) Logger {
	return f.CreateLogger("jobs").WithContext(map[string]interface{}{"job": jobName})
}

// GlobalLoggerFactory provides a singleton logger factory instance
var (
	globalFactory LoggerFactory
	factoryOnce   sync.Once
)

// GetGlobalLoggerFactory returns the global logger factory instance
func GetGlobalLoggerFactory() LoggerFactory {
	factoryOnce.Do(func() {
		globalFactory = NewLoggerFactory()
	})
	return globalFactory
}

// SetGlobalLoggerFactory sets the global logger factory (useful for dependency injection)
func SetGlobalLoggerFactory(factory LoggerFactory) {
	globalFactory = factory
}
