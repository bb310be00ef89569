package aio

import (
	"sort"
	"strings"
)

// registry holds the registered handler factories. Registration happens in
// the adapters' init functions, linked in by internal/embedded, so no
// locking is needed.
var (
	factories  = make(map[string]func() FormatHandler)
	extensions = make(map[string]string)
	order      []string
)

// Register adds a handler factory under its manifest name and extension.
// Later registrations with the same name replace earlier ones.
func Register(factory func() FormatHandler) {
	m := factory().Manifest()
	name := strings.ToLower(m.Name)
	if _, dup := factories[name]; !dup {
		order = append(order, name)
	}
	factories[name] = factory
	if m.Extension != "" {
		extensions[strings.ToLower(m.Extension)] = name
	}
}

// ByName returns a new handler for the named format, or nil.
func ByName(name string) FormatHandler {
	factory := factories[strings.ToLower(name)]
	if factory == nil {
		return nil
	}
	return factory()
}

// ByExtension returns a new handler for the extension (with or without the
// leading dot, any case), or nil.
func ByExtension(ext string) FormatHandler {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	name, ok := extensions[ext]
	if !ok {
		return nil
	}
	return ByName(name)
}

// Handlers returns one handler per registered format, in registration order.
func Handlers() []FormatHandler {
	out := make([]FormatHandler, 0, len(order))
	for _, name := range order {
		out = append(out, factories[name]())
	}
	return out
}

// Names returns the registered format names, sorted.
func Names() []string {
	out := make([]string, 0, len(factories))
	for name := range factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ClearRegistry removes all registered handlers. Tests only.
func ClearRegistry() {
	factories = make(map[string]func() FormatHandler)
	extensions = make(map[string]string)
	order = nil
}
