// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rvales/mediary/pkg/slug"
)

/*
TestFrom covers the slugification pipeline end to end.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "The Silent Sea", "the-silent-sea"},
		{"accents", "Amélie à Paris", "amelie-a-paris"},
		{"punctuation", "Hello, World! (2026)", "hello-world-2026"},
		{"multi_space", "too    many   spaces", "too-many-spaces"},
		{"leading_trailing", "--trimmed--", "trimmed"},
		{"only_symbols", "???", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
