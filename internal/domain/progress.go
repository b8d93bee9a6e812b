package domain

// ProgressFunc reports pagination progress.
// Called once per page: (50, 500), (100, 500), ...
type ProgressFunc func(loaded, total int)
