package module

// Issue is a module that failed validation.
type Issue struct {
	Module Ref
	Err    error
}

// Validate dry-runs every module in the store and returns the ones that
// would fail to apply. The error is non-nil only when the store itself
// cannot be read.
func (m *Manager) Validate() ([]Ref, []Issue, error) {
	if _, err := m.Globals(); err != nil {
		return nil, nil, err
	}

	refs, err := m.List()
	if err != nil {
		return nil, nil, err
	}

	var issues []Issue
	for _, ref := range refs {
		if err := m.Apply(ref, ApplyOptions{DryRun: true}); err != nil {
			issues = append(issues, Issue{Module: ref, Err: err})
		}
	}

	return refs, issues, nil
}
