package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/azanlabs/supplysync/internal/domain"
)

func TestImportOutcomeSummary(t *testing.T) {
	clean := &ImportOutcome{Created: 2, Updated: 1}
	assert.True(t, clean.Success())
	assert.Equal(t, "Imported 2 new products, Updated 1 products.", clean.Summary())

	failed := &ImportOutcome{
		Created: 1,
		Failures: []ImportFailure{
			{Name: "Bottle", Step: domain.ImportStepWriting, Reason: "boom"},
			{Name: "Mug", Step: domain.ImportStepSearching, Reason: "boom"},
		},
	}
	assert.False(t, failed.Success())
	assert.Equal(t, "Imported 1 new products, Updated 0 products. Failed to import 2 products: Bottle, Mug", failed.Summary())
}
