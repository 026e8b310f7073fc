package prospect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestMergeCompany_QualityScoreOnlyIncreases(t *testing.T) {
	existing := &Company{Name: "Acme, Inc.", QualityScore: 3}
	candidate := &Company{Name: "Acme, Corp.", QualityScore: 7}

	MergeCompany(existing, candidate)
	assert.Equal(t, 7, existing.QualityScore)
	assert.Equal(t, "Acme, Corp.", existing.Name, "display name follows the latest pass")

	// A worse later pass never degrades the stored score.
	MergeCompany(existing, &Company{Name: "Acme", QualityScore: 2})
	assert.Equal(t, 7, existing.QualityScore)
}

func TestMergeCompany_LongerTextWins(t *testing.T) {
	existing := &Company{
		Name:        "Acme",
		Description: "Tools",
		Industry:    "Manufacturing",
	}
	candidate := &Company{
		Name:        "Acme",
		Description: "Industrial tooling and automation for mid-market factories",
		Industry:    "Mfg",
	}

	MergeCompany(existing, candidate)
	assert.Equal(t, "Industrial tooling and automation for mid-market factories", existing.Description)
	assert.Equal(t, "Manufacturing", existing.Industry, "shorter candidate never displaces")
}

func TestMergeCompany_EmptyNeverDisplaces(t *testing.T) {
	existing := &Company{Name: "Acme", Website: "https://acme.com", Sources: []string{"crunchbase"}}
	candidate := &Company{Name: "Acme"}

	MergeCompany(existing, candidate)
	assert.Equal(t, "https://acme.com", existing.Website)
	assert.Equal(t, []string{"crunchbase"}, existing.Sources)
}

func TestMergeCompany_FillsEmptyFields(t *testing.T) {
	existing := &Company{Name: "Acme"}
	candidate := &Company{
		Name:        "Acme",
		Website:     "https://acme.com",
		FitScore:    intPtr(9),
		KeyProducts: []string{"widgets", "gears"},
	}

	MergeCompany(existing, candidate)
	assert.Equal(t, "https://acme.com", existing.Website)
	assert.Equal(t, 9, *existing.FitScore)
	assert.Equal(t, []string{"widgets", "gears"}, existing.KeyProducts)
	assert.Equal(t, PriorityHigh, existing.Priority, "priority recomputed from the merged fit score")
}

func TestMergeCompany_Idempotent(t *testing.T) {
	existing := &Company{Name: "Acme", Description: "short"}
	candidate := &Company{
		Name:         "Acme, Inc.",
		Description:  "a considerably longer description",
		QualityScore: 6,
		FitScore:     intPtr(7),
	}

	MergeCompany(existing, candidate)
	first := *existing
	MergeCompany(existing, candidate)
	assert.Equal(t, first, *existing)
}

func TestMergeContact_RealEmailAlwaysDisplaces(t *testing.T) {
	existing := &Contact{FirstName: "Jane", LastName: "Doe", Email: "unknown_jane.doe@acme.com"}
	candidate := &Contact{FirstName: "Jane", LastName: "Doe", Email: "jane@acme.com"}

	MergeContact(existing, candidate)
	assert.Equal(t, "jane@acme.com", existing.Email)

	// Even a shorter real email replaces a stored real one.
	MergeContact(existing, &Contact{Email: "j@acme.com"})
	assert.Equal(t, "j@acme.com", existing.Email)
}

func TestMergeContact_PlaceholderNeverDisplaces(t *testing.T) {
	existing := &Contact{FirstName: "Jane", LastName: "Doe", Email: "jane@acme.com"}
	candidate := &Contact{FirstName: "Jane", LastName: "Doe", Email: "unknown_jane.doe@acme.com"}

	MergeContact(existing, candidate)
	assert.Equal(t, "jane@acme.com", existing.Email)

	MergeContact(existing, &Contact{Email: ""})
	assert.Equal(t, "jane@acme.com", existing.Email)
}

func TestMergeContact_FlagsLatchTrue(t *testing.T) {
	existing := &Contact{FirstName: "Jane", DecisionMaker: true}
	candidate := &Contact{FirstName: "Jane", BudgetAuthority: true}

	MergeContact(existing, candidate)
	assert.True(t, existing.DecisionMaker, "a later pass missing the flag does not clear it")
	assert.True(t, existing.BudgetAuthority)
}

func TestMergeContact_QualityAndText(t *testing.T) {
	existing := &Contact{
		FirstName:    "Jane",
		Title:        "VP Eng",
		QualityScore: 5,
	}
	candidate := &Contact{
		FirstName:    "Jane",
		Title:        "Vice President of Engineering",
		QualityScore: 4,
		AIInterests:  []string{"inference serving", "evals"},
	}

	MergeContact(existing, candidate)
	assert.Equal(t, "Vice President of Engineering", existing.Title)
	assert.Equal(t, 5, existing.QualityScore)
	assert.Equal(t, []string{"inference serving", "evals"}, existing.AIInterests)
}
