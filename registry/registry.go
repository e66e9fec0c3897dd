package registry

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/rediwo/redi-records/types"
)

// DriverFactory creates a database from a driver-native connection string
type DriverFactory func(nativeURI string) (types.Database, error)

var (
	drivers      = make(map[string]DriverFactory)
	capabilities = make(map[string]types.DriverCapabilities)
	uriParsers   = make(map[string]types.URIParser)
	mu           sync.RWMutex
)

// Register registers a database driver factory
func Register(driverType string, factory DriverFactory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := drivers[driverType]; exists {
		panic(fmt.Sprintf("driver %s already registered", driverType))
	}

	drivers[driverType] = factory
}

// Get retrieves a registered driver factory
func Get(driverType string) (DriverFactory, error) {
	mu.RLock()
	defer mu.RUnlock()

	factory, exists := drivers[driverType]
	if !exists {
		return nil, fmt.Errorf("driver %s not registered", driverType)
	}

	return factory, nil
}

// RegisterCapabilities registers the dialect of a driver
func RegisterCapabilities(driverType string, caps types.DriverCapabilities) {
	mu.Lock()
	defer mu.Unlock()
	capabilities[driverType] = caps
}

// GetCapabilities retrieves the dialect of a driver
func GetCapabilities(driverType string) (types.DriverCapabilities, error) {
	mu.RLock()
	defer mu.RUnlock()

	caps, exists := capabilities[driverType]
	if !exists {
		return nil, fmt.Errorf("capabilities for driver %s not registered", driverType)
	}
	return caps, nil
}

// RegisterURIParser registers the URI parser of a driver
func RegisterURIParser(driverType string, parser types.URIParser) {
	mu.Lock()
	defer mu.Unlock()
	uriParsers[driverType] = parser
}

// Drivers lists the registered driver types
func Drivers() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseURI finds the parser that accepts the URI scheme and returns the
// native connection string with the driver type.
func ParseURI(uri string) (string, types.DriverType, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("invalid URI: %w", err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme == "" {
		return "", "", fmt.Errorf("invalid URI %q: missing scheme", uri)
	}

	mu.RLock()
	defer mu.RUnlock()

	for _, parser := range uriParsers {
		for _, supported := range parser.GetSupportedSchemes() {
			if supported != scheme {
				continue
			}
			native, err := parser.ParseURI(uri)
			if err != nil {
				return "", "", err
			}
			return native, types.DriverType(parser.GetDriverType()), nil
		}
	}

	return "", "", fmt.Errorf("unsupported database scheme: %s", scheme)
}
