package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xhhuango/json"

	"github.com/bcdannyboy/mcprice/models"
)

const places = 4

// fixed renders v with four decimals, or n/a when v is not finite.
func fixed(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

func title(side models.OptionSide) string {
	if side == models.SidePut {
		return "Put"
	}
	return "Call"
}

// WriteText prints one "Call Price: x.xxxx" line per side followed by its
// error figures, then any warnings.
func WriteText(w io.Writer, res *models.PricingResult) error {
	var b strings.Builder
	for _, sr := range res.Sides() {
		fmt.Fprintf(&b, "%s Price: %s\n", title(sr.Side), fixed(sr.Price))
		fmt.Fprintf(&b, "  std error:     %s\n", fixed(sr.StdError))
		fmt.Fprintf(&b, "  95%% band:      [%s, %s]\n", fixed(sr.Confidence.Lower), fixed(sr.Confidence.Upper))
		fmt.Fprintf(&b, "  black-scholes: %s\n", fixed(sr.Analytic))
		fmt.Fprintf(&b, "  implied vol:   %s\n", fixed(sr.ImpliedVol))
	}
	if !math.IsNaN(res.Beta) {
		fmt.Fprintf(&b, "Regression beta: %s\n", fixed(res.Beta))
	}
	for _, warn := range res.Warnings {
		fmt.Fprintf(&b, "warning: %s\n", warn)
	}
	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "writing report")
}

// WritePrice prints only the headline line for the call, as the
// interactive prompt does.
func WritePrice(w io.Writer, res *models.PricingResult) error {
	if res.Call == nil {
		return errors.New("no call price in result")
	}
	_, err := fmt.Fprintf(w, "Call Price: %s\n", fixed(res.Call.Price))
	return errors.Wrap(err, "writing price")
}

type sideView struct {
	Side       string   `json:"side"`
	Price      *float64 `json:"price"`
	Mean       *float64 `json:"mean_payoff"`
	StdDev     *float64 `json:"std_dev"`
	StdError   *float64 `json:"std_error"`
	Lower95    *float64 `json:"lower_95"`
	Upper95    *float64 `json:"upper_95"`
	Analytic   *float64 `json:"black_scholes"`
	ImpliedVol *float64 `json:"implied_vol"`
}

type resultView struct {
	Params   models.SimulationParameters `json:"params"`
	Sides    string                      `json:"sides"`
	Results  []sideView                  `json:"results"`
	Beta     *float64                    `json:"beta,omitempty"`
	Seed     uint64                      `json:"seed"`
	Workers  int                         `json:"workers"`
	Elapsed  string                      `json:"elapsed"`
	Warnings []models.Warning            `json:"warnings,omitempty"`
}

// finite maps NaN and infinities to null, which JSON cannot carry.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func view(res *models.PricingResult) resultView {
	v := resultView{
		Params:   res.Params,
		Sides:    res.Params.Requested().String(),
		Beta:     finite(res.Beta),
		Seed:     res.Seed,
		Workers:  res.Workers,
		Elapsed:  res.Elapsed.String(),
		Warnings: res.Warnings,
	}
	for _, sr := range res.Sides() {
		v.Results = append(v.Results, sideView{
			Side:       sr.Side.String(),
			Price:      finite(sr.Price),
			Mean:       finite(sr.Mean),
			StdDev:     finite(sr.StdDev),
			StdError:   finite(sr.StdError),
			Lower95:    finite(sr.Confidence.Lower),
			Upper95:    finite(sr.Confidence.Upper),
			Analytic:   finite(sr.Analytic),
			ImpliedVol: finite(sr.ImpliedVol),
		})
	}
	return v
}

// WriteJSON writes the result as indented JSON.
func WriteJSON(w io.Writer, res *models.PricingResult) error {
	b, err := json.MarshalIndent(view(res), "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshalling result")
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return errors.Wrap(err, "writing result")
}

// Comparison is one row of a variance-reduction comparison.
type Comparison struct {
	Label  string
	Result *models.PricingResult
}

// WriteComparison tabulates call price, standard error and the variance
// ratio against the first row.
func WriteComparison(w io.Writer, rows []Comparison) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "method\tprice\tstd error\tvariance ratio\telapsed")

	base := math.NaN()
	for i, row := range rows {
		sr := row.Result.Call
		if sr == nil {
			continue
		}
		if i == 0 {
			base = sr.StdError
		}
		ratio := math.NaN()
		if base > 0 {
			ratio = (sr.StdError * sr.StdError) / (base * base)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", row.Label, fixed(sr.Price), fixed(sr.StdError), fixed(ratio), row.Result.Elapsed.Round(time.Millisecond))
	}
	return errors.Wrap(tw.Flush(), "writing comparison")
}
