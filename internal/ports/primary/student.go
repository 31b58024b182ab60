package primary

import "context"

// StudentService defines the primary port for student registry operations.
type StudentService interface {
	// RegisterStudent creates a record under a freshly minted enrollment code.
	RegisterStudent(ctx context.Context, req RegisterStudentRequest) (*RegisterStudentResponse, error)

	// ListStudents retrieves all live records in insertion order.
	ListStudents(ctx context.Context) ([]*Student, error)

	// FindStudent resolves a key as an exact enrollment code first,
	// then as a case-insensitive email.
	FindStudent(ctx context.Context, key string) (*Student, error)

	// UpdateStudent changes a record, optionally moving it under a new code.
	UpdateStudent(ctx context.Context, req UpdateStudentRequest) (*UpdateStudentResponse, error)

	// RemoveStudent deletes the record matched by code or email.
	RemoveStudent(ctx context.Context, key string) error
}

// RegisterStudentRequest contains parameters for registering a student.
type RegisterStudentRequest struct {
	Name   string
	Email  string
	Course string
}

// RegisterStudentResponse contains the result of registering a student.
type RegisterStudentResponse struct {
	Code    string
	Student *Student
}

// UpdateStudentRequest contains parameters for updating a student.
// A nil or blank field keeps the current value.
type UpdateStudentRequest struct {
	Key            string // enrollment code or email
	Name           *string
	Email          *string
	Course         *string
	RegenerateCode bool // only honored when the course changes
}

// UpdateStudentResponse contains the result of updating a student.
type UpdateStudentResponse struct {
	Code          string
	PreviousCode  string
	Rekeyed       bool
	CourseChanged bool
	Student       *Student
}

// Student represents a student record at the port boundary.
type Student struct {
	Code         string
	Name         string
	Email        string
	Course       string
	Abbreviation string
	CreatedAt    string
	UpdatedAt    string
}
