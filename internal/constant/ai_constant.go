package constant

// SupportedSubjects is the set of STEM subjects the tutoring pipeline knows
// how to prompt for. Subject hints outside this list are ignored and the
// classifier decides instead.
var SupportedSubjects = []string{
	"algebra",
	"geometry",
	"calculus",
	"physics",
	"chemistry",
	"biology",
	"statistics",
	"computer science",
	"general",
}

const (
	// DefaultSubject is used when no hint is supplied and classification
	// fails or returns something outside SupportedSubjects.
	DefaultSubject = "general"

	// DefaultGradeLevel is attached to definition requests without one.
	DefaultGradeLevel = "high school"
)

// IsSupportedSubject reports whether s is in SupportedSubjects.
func IsSupportedSubject(s string) bool {
	for _, subject := range SupportedSubjects {
		if subject == s {
			return true
		}
	}
	return false
}
