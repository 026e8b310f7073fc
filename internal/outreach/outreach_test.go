package outreach

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/genai"
	"github.com/sells-group/prospect-cli/internal/offerings"
	"github.com/sells-group/prospect-cli/internal/prospect"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

type fakeGenerator struct {
	err     error
	lastReq genai.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req genai.Request) (*genai.Result, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &genai.Result{Content: "Subject: Hello\n\nHi Jane,\n\n..."}, nil
}

func TestDraftEmail(t *testing.T) {
	gen := &fakeGenerator{}
	d := New(gen, offerings.Default())

	company := &prospect.Company{ID: 7, Name: "Acme, Inc.", Industry: "Manufacturing"}
	contact := &prospect.Contact{
		ID:        3,
		CompanyID: 7,
		FirstName: "Jane",
		LastName:  "Doe",
		FullName:  "Jane Doe",
		Email:     "jane.doe@acme.com",
	}

	draft, err := d.DraftEmail(context.Background(), company, contact)
	require.NoError(t, err)

	assert.Equal(t, int64(7), draft.CompanyID)
	assert.Equal(t, int64(3), draft.ContactID)
	assert.Equal(t, "Jane Doe", draft.ContactName)
	assert.Equal(t, "jane.doe@acme.com", draft.Email)
	assert.Contains(t, draft.Content, "Subject:")

	assert.Contains(t, gen.lastReq.Context, "Acme, Inc.")
	assert.Contains(t, gen.lastReq.Context, "jane.doe@acme.com")
	assert.Contains(t, gen.lastReq.System, "150-200 words")
	assert.Contains(t, gen.lastReq.System, "AI Readiness Assessment")
}

func TestDraftEmail_GenerationError(t *testing.T) {
	d := New(&fakeGenerator{err: eris.New("service down")}, offerings.Default())

	_, err := d.DraftEmail(context.Background(), &prospect.Company{Name: "Acme"}, &prospect.Contact{FirstName: "Jane"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outreach: draft email")
}
