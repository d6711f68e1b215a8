package i

// BestTimeRepo defines the persistence of the fastest completion time.
type BestTimeRepo interface {
	// Load returns the stored best time. ok is false when nothing valid is stored;
	// a missing or malformed record is not an error.
	Load() (best float64, ok bool, err error)

	// Save records best when it is strictly lower than the stored value.
	Save(best float64) error
}
