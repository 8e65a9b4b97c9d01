package partials

import (
	"context"
	"fmt"
	"io"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

const repaymentCardClass = "card"

// RepaymentCard renders the calculator result card. The home page embeds it
// on first load and GET /partials/repayment swaps it in on every slider
// change, so both must come from here. The root carries id="repayment-card".
func RepaymentCard(data RepaymentCardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div id="repayment-card" class="%s">
  <div class="text-xs font-semibold uppercase text-muted-foreground">Estimated monthly repayment</div>
  <div class="repayment-figure" data-monthly>$%s</div>
  <p class="text-sm text-muted-foreground">This estimate assumes principal &amp; interest, with a fixed rate over the full term, and is for illustration only. It does not constitute formal advice or a loan offer.</p>
  <dl class="text-sm text-muted-foreground">
    <div class="row"><dt>Total term</dt><dd>%d years</dd></div>
    <div class="row"><dt>Approx. number of repayments</dt><dd>%d months</dd></div>
    <div class="row"><dt>Total repaid</dt><dd>$%s</dd></div>
    <div class="row"><dt>Total interest</dt><dd>$%s</dd></div>
  </dl>
`,
			templ.EscapeString(twmerge.Merge(repaymentCardClass, data.Class)),
			templ.EscapeString(data.Monthly),
			data.TermYears,
			data.Repayments,
			templ.EscapeString(data.TotalRepaid),
			templ.EscapeString(data.TotalInterest),
		)
		if err != nil {
			return err
		}

		if data.Adjusted {
			if _, err := io.WriteString(w, `  <p class="adjusted-note text-xs">Some values were outside the calculator range and have been adjusted.</p>
`); err != nil {
				return err
			}
		}

		_, err = io.WriteString(w, `  <a href="#contact" class="btn btn-primary">Get a personalised quote →</a>
</div>
`)
		return err
	})
}
