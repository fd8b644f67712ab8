package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetadataCleanDropsEmptyValues(t *testing.T) {
	metadata := Metadata{
		"source":  "document.pdf",
		"page":    1,
		"title":   "",
		"author":  nil,
		"version": 0, // zero is a real value, only "" and nil are dropped
	}

	cleaned := metadata.Clean()

	assert.Equal(t, Metadata{
		"source":  "document.pdf",
		"page":    1,
		"version": 0,
	}, cleaned)
}

func TestMetadataCleanDoesNotMutateOriginal(t *testing.T) {
	metadata := Metadata{"title": "", "page": 2}
	_ = metadata.Clean()
	assert.Contains(t, metadata, "title")
}

func TestMetadataCleanEmpty(t *testing.T) {
	assert.Empty(t, Metadata{}.Clean())
	assert.Empty(t, Metadata(nil).Clean())
}
