package planner

import (
	"context"
	"testing"

	"github.com/planpay/planpay-api/internal/client/openai"
	"github.com/planpay/planpay-api/internal/logger"
	"github.com/planpay/planpay-api/internal/plans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("test")
}

type fakeCompleter struct {
	content string
	err     error
	gotUser string
	gotSys  string
}

func (f *fakeCompleter) Complete(_ context.Context, params openai.CompletionParams) (string, error) {
	f.gotSys = params.SystemPrompt
	f.gotUser = params.UserPrompt
	return f.content, f.err
}

func TestParse_WeeklyPlan(t *testing.T) {
	completer := &fakeCompleter{
		content: `{"title": "Weekly Payment", "frequency": 604800, "amountPerTransaction": 50, "totalAmount": 200, "numberOfTransactions": 4, "startTimeOffset": 0, "endTimeOffset": 2419200}`,
	}
	parser := NewParser(completer)

	parsed, err := parser.Parse(context.Background(), "pay $50 weekly for 4 weeks")
	require.NoError(t, err)

	assert.Equal(t, "Weekly Payment", parsed.Title)
	assert.Equal(t, int64(604800), parsed.Frequency)
	assert.Equal(t, 50.0, parsed.AmountPerTransaction)
	assert.Equal(t, 200.0, parsed.TotalAmount)
	assert.Equal(t, int64(4), parsed.NumberOfTransactions)
	assert.Equal(t, int64(0), parsed.StartTimeOffset)

	assert.Contains(t, completer.gotUser, `"pay $50 weekly for 4 weeks"`)
	assert.Contains(t, completer.gotSys, "payment plan parser")
}

func TestParse_ExtractsObjectFromProse(t *testing.T) {
	completer := &fakeCompleter{
		content: "Here is the parsed plan:\n```json\n" +
			`{"title": "Rent", "frequency": 2592000, "amountPerTransaction": 1000, "totalAmount": 12000, "numberOfTransactions": 12}` +
			"\n```\nLet me know if you need anything else.",
	}
	parser := NewParser(completer)

	parsed, err := parser.Parse(context.Background(), "monthly rent of $1000 for a year")
	require.NoError(t, err)
	assert.Equal(t, "Rent", parsed.Title)
	assert.Equal(t, int64(12), parsed.NumberOfTransactions)
	assert.Equal(t, int64(plans.Unknown), parsed.EndTimeOffset)
}

func TestParse_UnknownSentinelsPassThrough(t *testing.T) {
	completer := &fakeCompleter{
		content: `{"title": "Vague", "frequency": -1, "amountPerTransaction": -1, "totalAmount": -1, "numberOfTransactions": -1, "startTimeOffset": 0, "endTimeOffset": -1}`,
	}
	parser := NewParser(completer)

	parsed, err := parser.Parse(context.Background(), "send some money sometimes")
	require.NoError(t, err)
	assert.Equal(t, int64(plans.Unknown), parsed.Frequency)
	assert.ElementsMatch(t,
		[]string{"frequency", "amountPerTransaction", "numberOfTransactions", "totalAmount"},
		parsed.UnresolvedFields())
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "no json object", content: "I could not parse that description."},
		{name: "malformed json", content: `{"title": "Broken", "frequency": }`},
		{name: "missing required fields", content: `{"title": "Partial", "frequency": 604800}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParser(&fakeCompleter{content: tt.content})

			_, err := parser.Parse(context.Background(), "pay $10 daily")
			require.Error(t, err)

			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestParse_EmptyDescription(t *testing.T) {
	parser := NewParser(&fakeCompleter{})

	_, err := parser.Parse(context.Background(), "   ")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "description is empty", parseErr.Reason)
}

func TestParseOrDefault_FallsBackOnParseError(t *testing.T) {
	parser := NewParser(&fakeCompleter{content: "no structured data here"})

	parsed, err := parser.ParseOrDefault(context.Background(), "something unparseable")
	require.NoError(t, err)
	assert.Equal(t, plans.DefaultParsedPlan, parsed)
}

func TestParseOrDefault_PropagatesTransportErrors(t *testing.T) {
	parser := NewParser(&fakeCompleter{err: assert.AnError})

	_, err := parser.ParseOrDefault(context.Background(), "pay $10 daily")
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
