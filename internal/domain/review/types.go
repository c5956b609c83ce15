package review

type TargetType string

const (
	TargetClass      TargetType = "class"
	TargetInstructor TargetType = "instructor"
	TargetVenue      TargetType = "venue"
)

func (t TargetType) String() string {
	return string(t)
}

func (t TargetType) IsValid() bool {
	switch t {
	case TargetClass, TargetInstructor, TargetVenue:
		return true
	default:
		return false
	}
}

func NewTargetType(s string) (TargetType, error) {
	t := TargetType(s)
	if !t.IsValid() {
		return "", ErrInvalidTargetType
	}
	return t, nil
}
