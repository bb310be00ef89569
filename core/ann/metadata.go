package ann

// Metadata is an ordered set of key-value pairs attached to annotations,
// tiers, media and transcriptions. Keys keep their insertion order so that
// serialized files are stable across round-trips.
type Metadata struct {
	values map[string]string
	keys   []string
}

// NewMetadata creates an empty metadata set.
func NewMetadata() *Metadata {
	return &Metadata{values: make(map[string]string)}
}

// Get returns the value of a key and whether it is present.
func (m *Metadata) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// GetDefault returns the value of a key, or def when absent.
func (m *Metadata) GetDefault(key, def string) string {
	if v, ok := m.values[key]; ok {
		return v
	}
	return def
}

// Has reports whether the key is present.
func (m *Metadata) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Set stores a key-value pair, keeping first-insertion order for keys.
func (m *Metadata) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Remove deletes a key.
func (m *Metadata) Remove(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for k, existing := range m.keys {
		if existing == key {
			m.keys = append(m.keys[:k], m.keys[k+1:]...)
			break
		}
	}
}

// Keys returns all keys in insertion order.
func (m *Metadata) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of keys.
func (m *Metadata) Len() int { return len(m.keys) }

// CopyFrom copies every pair of other into m, overwriting existing keys.
func (m *Metadata) CopyFrom(other *Metadata) {
	if other == nil {
		return
	}
	for _, key := range other.keys {
		m.Set(key, other.values[key])
	}
}

// Copy returns an independent copy.
func (m *Metadata) Copy() *Metadata {
	c := NewMetadata()
	c.CopyFrom(m)
	return c
}
