package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowPredicates_IncludeBothBounds(t *testing.T) {
	for name, where := range map[string]string{
		"course":  courseWindowWhere,
		"student": studentWindowWhere,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, where, "s.start_time >= $2")
			assert.Contains(t, where, "s.start_time <= $3")
			assert.NotContains(t, where, "s.start_time < $3")
		})
	}
}

func TestWindowPredicates_Scope(t *testing.T) {
	assert.True(t, strings.HasPrefix(courseWindowWhere, " WHERE s.course_id = $1 "))
	assert.True(t, strings.HasPrefix(studentWindowWhere, " WHERE c.student_profile_id = $1 "))
}
