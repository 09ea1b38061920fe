package usecase

// Policy collects the behavioral switches of the statement lifecycle.
// Duplicate detection always blocks creation and is never re-run on edit.
type Policy struct {
	// RequireNarration rejects a save when any adjustment item has a blank narration.
	RequireNarration bool
	// ExportRequiresReconciled refuses document export while the difference is not zero.
	ExportRequiresReconciled bool
	// SaveBeforeExport makes draft exports save first and export only the saved record.
	SaveBeforeExport bool
	// BroadcastWhileEditing fires difference observers in edit mode as well as create mode.
	BroadcastWhileEditing bool
}

// DefaultPolicy returns the standard lifecycle policy.
func DefaultPolicy() Policy {
	return Policy{
		RequireNarration:         true,
		ExportRequiresReconciled: true,
		SaveBeforeExport:         true,
		BroadcastWhileEditing:    true,
	}
}
