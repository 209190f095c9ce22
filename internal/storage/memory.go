package storage

// Memory is a map-backed store for tests and throwaway sessions. Setting
// LoadErr or SaveErr makes the matching call fail.
type Memory struct {
	values map[string]string

	LoadErr error
	SaveErr error
	Saves   int
}

func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) Load(key string) (string, bool, error) {
	if m.LoadErr != nil {
		return "", false, m.LoadErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Save(key, value string) error {
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.values[key] = value
	return nil
}

// Put seeds a value without counting it as a save.
func (m *Memory) Put(key, value string) {
	m.values[key] = value
}

func (m *Memory) Close() error { return nil }
