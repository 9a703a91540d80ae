package domain

// ProgramStore is the persistence collaborator. The engine works on full
// snapshots: load, compute, save. Partial writes never happen; concurrent
// updates to the same user are last-write-wins on the whole document — a
// known hazard left to the transport layer.
type ProgramStore interface {
	// LoadUserProgram returns the full program for a user, or
	// ErrUserNotFound.
	LoadUserProgram(userID string) (*UserProgram, error)

	// SaveUserProgram persists the full program snapshot.
	SaveUserProgram(p *UserProgram) error
}
