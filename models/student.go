package models

// PhotoURLPrefix is where stored photos are served from
const PhotoURLPrefix = "/uploads/"

// Student represents a student record. Course is one of BSIT, BSCS, BSBA,
// BSED, BEED, BSCPE or BSCRIM by convention; only its presence is checked.
type Student struct {
	IDNo      string  `json:"idno" db:"idno"`
	LastName  string  `json:"lastname" db:"lastname"`
	FirstName string  `json:"firstname" db:"firstname"`
	Course    string  `json:"course" db:"course"`
	Level     int     `json:"level" db:"level"`
	Photo     *string `json:"photo" db:"photo"`
	PhotoURL  string  `json:"photoUrl,omitempty" db:"-"`
}

// WithPhotoURL fills the derived photo URL from the stored filename
func (s Student) WithPhotoURL() Student {
	s.PhotoURL = ""
	if s.Photo != nil && *s.Photo != "" {
		s.PhotoURL = PhotoURLPrefix + *s.Photo
	}
	return s
}

// PhotoName returns the stored filename, empty when there is none
func (s Student) PhotoName() string {
	if s.Photo == nil {
		return ""
	}
	return *s.Photo
}

// StudentResponse wraps a single student
type StudentResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message,omitempty"`
	Student Student `json:"student"`
}

// DeleteStudentResponse is returned by DELETE /students/{idno}
type DeleteStudentResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	IDNo    string `json:"idno"`
}
