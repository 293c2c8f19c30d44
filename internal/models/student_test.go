package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string    { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestStudentPatchIsEmpty(t *testing.T) {
	assert.True(t, StudentPatch{}.IsEmpty())
	assert.False(t, StudentPatch{Name: strPtr("Ann")}.IsEmpty())
}

func TestStudentPatchChangesFrom(t *testing.T) {
	stored := Student{Name: "Ann", Major: "CS", GPA: 3.8}

	assert.False(t, StudentPatch{}.ChangesFrom(stored))
	assert.False(t, StudentPatch{Name: strPtr("Ann"), GPA: floatPtr(3.8)}.ChangesFrom(stored))
	assert.True(t, StudentPatch{Name: strPtr("Ben")}.ChangesFrom(stored))
	assert.True(t, StudentPatch{GPA: floatPtr(2.9)}.ChangesFrom(stored))
}

func TestStudentPatchApplyTo(t *testing.T) {
	student := Student{Name: "Ann", Major: "CS", GPA: 3.8}
	patch := StudentPatch{Major: strPtr("EE")}

	patch.ApplyTo(&student)

	assert.Equal(t, "EE", student.Major)
	assert.Equal(t, "Ann", student.Name)
	assert.Equal(t, 3.8, student.GPA)
}
