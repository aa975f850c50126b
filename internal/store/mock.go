package store

// MockProfileStore is a mock implementation of ProfileStore for testing.
type MockProfileStore struct {
	Profiles map[string]Profile

	// Error flags for testing error conditions
	LoadProfilesError error
	SaveProfilesError error
}

// LoadProfiles returns the mock profiles.
func (m *MockProfileStore) LoadProfiles() (map[string]Profile, error) {
	if m.LoadProfilesError != nil {
		return nil, m.LoadProfilesError
	}
	if m.Profiles == nil {
		return make(map[string]Profile), nil
	}
	// Return a copy to avoid external modifications
	result := make(map[string]Profile)
	for k, v := range m.Profiles {
		result[k] = v
	}
	return result, nil
}

// SaveProfiles updates the mock profiles.
func (m *MockProfileStore) SaveProfiles(profiles map[string]Profile) error {
	if m.SaveProfilesError != nil {
		return m.SaveProfilesError
	}
	if m.Profiles == nil {
		m.Profiles = make(map[string]Profile)
	}
	for k, v := range profiles {
		m.Profiles[k] = v
	}
	return nil
}

// FindConfigFile is a mock implementation that returns a dummy path.
func (m *MockProfileStore) FindConfigFile(filename string) (string, error) {
	return "/mock/path/" + filename, nil
}
