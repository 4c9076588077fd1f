package docfill

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimestampFilename(t *testing.T) {
	ts := time.Date(2020, 8, 19, 15, 12, 21, 0, time.Local)

	assert.Equal(t, "bla_2020-08-19_151221.txt", TimestampFilename("bla.txt", ts))
	assert.Equal(t,
		filepath.Join("out", "letter_2020-08-19_151221.docx"),
		TimestampFilename(filepath.Join("out", "letter.docx"), ts))
	assert.Equal(t, "noext_2020-08-19_151221", TimestampFilename("noext", ts))
	// Only the last extension moves.
	assert.Equal(t, "a.b_2020-08-19_151221.c", TimestampFilename("a.b.c", ts))
}

func TestTimestampFilename_DifferentTimesDiffer(t *testing.T) {
	a := TimestampFilename("x.docx", time.Date(2020, 8, 19, 15, 12, 21, 0, time.Local))
	b := TimestampFilename("x.docx", time.Date(2020, 8, 19, 15, 12, 22, 0, time.Local))
	assert.NotEqual(t, a, b)
}
