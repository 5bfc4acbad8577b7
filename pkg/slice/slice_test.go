// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookscout/pkg/slice"
)

/*
TestFilter_Unique_Take tests the helpers used to build thumbnail lists.
*/
func TestFilter_Unique_Take(t *testing.T) {
	sources := []string{
		"https://img/1.jpg",
		"http://img/2.jpg",
		"https://img/1.jpg",
		"https://img/3.jpg",
	}

	secure := slice.Filter(sources, func(s string) bool { return strings.HasPrefix(s, "https://") })
	unique := slice.Unique(secure)

	assert.Equal(t, []string{"https://img/1.jpg", "https://img/3.jpg"}, unique)
	assert.Equal(t, []string{"https://img/1.jpg"}, slice.Take(unique, 1))
	assert.Len(t, slice.Take(unique, 10), 2)
	assert.Empty(t, slice.Take(unique, -1))
}
