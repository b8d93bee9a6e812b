package domain

// SyncProgress reports progress during section synchronization.
type SyncProgress struct {
	SectionID   int64
	SectionType string
	Table       string // entity table being loaded
	Loaded      int
	Total       int
	Done        bool
	FromCache   bool
	Error       error
}

// SyncObserver receives progress updates during sync operations.
type SyncObserver interface {
	OnProgress(progress SyncProgress)
}

// NoOpObserver discards progress updates (for testing/batch operations).
type NoOpObserver struct{}

func (NoOpObserver) OnProgress(SyncProgress) {}
