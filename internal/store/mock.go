package store

// MockRuleStore is an in-memory RuleStore for tests.
type MockRuleStore struct {
	Rules map[string]string

	LoadErr error
	SaveErr error
	// Saves counts how often Save was called.
	Saves int
}

// Load returns a copy of the mock rules.
func (m *MockRuleStore) Load() (map[string]string, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	result := make(map[string]string, len(m.Rules))
	for k, v := range m.Rules {
		result[k] = v
	}
	return result, nil
}

// Save merges rules into the mock mapping.
func (m *MockRuleStore) Save(rules map[string]string) error {
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if m.Rules == nil {
		m.Rules = make(map[string]string)
	}
	for k, v := range rules {
		m.Rules[k] = v
	}
	return nil
}
