package admission

type Repository interface {
	// Command

	// Store inserts a new admission. It returns ErrStudentIDTaken when
	// the student id is already in use.
	Store(a *Admission) error

	// Query

	ListAll() ([]*Admission, error)
	Find(id StudentID) (*Admission, error)

	Close() error
}
