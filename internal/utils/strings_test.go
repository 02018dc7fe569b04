package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Yes", "No", "Call me"}, SplitList("Yes; No;;Call me ;"))
	assert.Equal(t, []string{}, SplitList(""))
}

func TestSplitIDListSkipsGarbage(t *testing.T) {
	assert.Equal(t, []int64{12, 7}, SplitIDList("12; x ;7;"))
	assert.Equal(t, "12;7", JoinIDList([]int64{12, 7}))
}

func TestPagerNumberMask(t *testing.T) {
	assert.Equal(t, "drsmith1", PagerNumberMask("Dr.Smith-1"))
	assert.Equal(t, PagerNumberMask("drsmith1"), PagerNumberMask("DR SMITH 1"))
	assert.Equal(t, "", PagerNumberMask("--"))
}
