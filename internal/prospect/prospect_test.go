package prospect

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactPriorityRank(t *testing.T) {
	contacts := []Contact{
		{FirstName: "Tara", Priority: ContactTertiary},
		{FirstName: "Pat", Priority: ContactPrimary},
		{FirstName: "Quinn", Priority: "whatever"},
		{FirstName: "Sam", Priority: ContactSecondary},
	}

	sort.SliceStable(contacts, func(i, j int) bool {
		return ContactPriorityRank(contacts[i].Priority) < ContactPriorityRank(contacts[j].Priority)
	})

	assert.Equal(t, "Pat", contacts[0].FirstName)
	assert.Equal(t, "Sam", contacts[1].FirstName)
	assert.Equal(t, "Tara", contacts[2].FirstName)
	assert.Equal(t, "Quinn", contacts[3].FirstName)
}
