package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseLessonType(t *testing.T) {
	assert.Equal(t, LessonTypeOnline, CollapseLessonType(LessonTypeBoth))
	assert.Equal(t, LessonTypeOnline, CollapseLessonType(LessonTypeOnline))
	assert.Equal(t, LessonTypeFaceToFace, CollapseLessonType(LessonTypeFaceToFace))
}

func TestLessonTypeValid(t *testing.T) {
	assert.True(t, LessonTypeOnline.Valid())
	assert.True(t, LessonTypeFaceToFace.Valid())
	assert.True(t, LessonTypeBoth.Valid())
	assert.False(t, LessonType("hybrid").Valid())
	assert.False(t, LessonType("").Valid())
}
