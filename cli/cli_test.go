package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xhhuango/json"

	"github.com/bcdannyboy/mcprice/models"
)

func run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(strings.NewReader(input), &out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestPromptPrintsCallPrice(t *testing.T) {
	t.Setenv("MCPRICE_SEED", "17")
	answers := strings.Join([]string{"100", "100", "0.05", "0.2", "1", "10", "2000", "yes", "no"}, "\n") + "\n"

	out, err := run(t, answers, "prompt")
	require.NoError(t, err)

	assert.Contains(t, out, "Monte Carlo Option Pricing Simulator")
	assert.Contains(t, out, "Initial stock price: ")
	assert.Contains(t, out, "Do you want to use Control Variate? ")
	assert.Contains(t, out, "Call Price: ")
}

func TestPromptRejectsBadAnswers(t *testing.T) {
	_, err := run(t, "100\nabc\n", "prompt")
	assert.Error(t, err)

	answers := strings.Join([]string{"100", "100", "0.05", "0.2", "1", "10", "2000", "maybe"}, "\n") + "\n"
	_, err = run(t, answers, "prompt")
	assert.Error(t, err)

	answers = strings.Join([]string{"-5", "100", "0.05", "0.2", "1", "10", "2000", "no", "no"}, "\n") + "\n"
	_, err = run(t, answers, "prompt")
	assert.True(t, errors.Is(err, models.ErrNonPositiveSpot))
}

func TestPromptEndsEarly(t *testing.T) {
	_, err := run(t, "100\n", "prompt")
	assert.Error(t, err)
}

func TestPriceJSON(t *testing.T) {
	out, err := run(t, "", "price", "--json", "--sims", "4000", "--seed", "7", "--workers", "2")
	require.NoError(t, err)

	var decoded struct {
		Seed    uint64 `json:"seed"`
		Workers int    `json:"workers"`
		Results []struct {
			Side     string   `json:"side"`
			Price    *float64 `json:"price"`
			StdError *float64 `json:"std_error"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, uint64(7), decoded.Seed)
	assert.Equal(t, 2, decoded.Workers)
	require.Len(t, decoded.Results, 1)
	assert.Equal(t, "call", decoded.Results[0].Side)
	require.NotNil(t, decoded.Results[0].Price)
	assert.InDelta(t, 10.45, *decoded.Results[0].Price, 5*(*decoded.Results[0].StdError))
}

func TestPriceTextBothSides(t *testing.T) {
	out, err := run(t, "", "price", "--sims", "3000", "--seed", "3",
		"--combiner", "regression", "--control", "--sides", "call,put")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Call Price: "))
	assert.Contains(t, out, "Put Price: ")
	assert.Contains(t, out, "Regression beta: ")
}

func TestPricePutNeedsRegression(t *testing.T) {
	_, err := run(t, "", "price", "--sims", "10", "--sides", "put")
	assert.True(t, errors.Is(err, models.ErrPutNeedsRegression))
}

func TestPriceWithProgress(t *testing.T) {
	out, err := run(t, "", "price", "--sims", "2000", "--seed", "5", "--progress")
	require.NoError(t, err)
	assert.Contains(t, out, "Call Price: ")
}

func TestCompare(t *testing.T) {
	t.Setenv("MCPRICE_SIMULATIONS", "4000")
	out, err := run(t, "", "compare", "--combiner", "regression")
	require.NoError(t, err)
	for _, label := range []string{"plain", "antithetic", "control variate", "antithetic + control"} {
		assert.Contains(t, out, label)
	}
}
