package models

// LessonType describes how a teacher delivers lessons.
type LessonType string

const (
	LessonTypeOnline     LessonType = "online"
	LessonTypeFaceToFace LessonType = "face-to-face"
	LessonTypeBoth       LessonType = "both"
)

// Valid reports whether the lesson type is one of the supported variants.
func (t LessonType) Valid() bool {
	switch t {
	case LessonTypeOnline, LessonTypeFaceToFace, LessonTypeBoth:
		return true
	}
	return false
}

// CollapseLessonType resolves a profile's advertised lesson type into the
// concrete mode recorded on a booking. Teachers offering "both" are booked
// online until a student-side mode selection ships.
func CollapseLessonType(t LessonType) LessonType {
	if t == LessonTypeBoth {
		return LessonTypeOnline
	}
	return t
}
