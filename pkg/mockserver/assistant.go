package mockserver

import (
	"fmt"
	"strings"
)

const priceIntent = "price_inquiry"

// Answer is the assistant's reply to one message.
type Answer struct {
	Reply   string
	QuoteMD string
	Intent  string
	Steps   []string
}

// Respond tags message, prices it when sizes are given and composes the reply.
func (r Rules) Respond(message string) Answer {
	var a Answer
	matches := r.Tag(message)
	sizes := ParseSizes(message)

	for _, m := range matches {
		a.Steps = append(a.Steps, fmt.Sprintf("matched %s on: %s", m.Intent, strings.Join(m.Hits, ", ")))
	}
	if len(sizes) > 0 && !hasIntent(matches, priceIntent) {
		matches = append([]Match{{Intent: priceIntent}}, matches...)
		a.Steps = append(a.Steps, "window size given, treating as a price inquiry")
	}
	if len(matches) == 0 {
		a.Intent = r.Fallback.Name
		a.Reply = r.Fallback.Reply
		a.Steps = append(a.Steps, fmt.Sprintf("no rule matched, falling back to %s", r.Fallback.Name))
		return a
	}

	a.Intent = matches[0].Intent
	var parts []string
	for _, m := range matches {
		if m.Intent != priceIntent {
			parts = append(parts, r.Reply(m.Intent))
			continue
		}
		if len(sizes) == 0 {
			parts = append(parts, r.Pricing.MissingSizeReply)
			a.Steps = append(a.Steps, "no window size found, asking for one")
			continue
		}
		q, steps := r.price(message, sizes)
		a.QuoteMD = q.Markdown(r.Pricing.Currency)
		a.Steps = append(a.Steps, steps...)
		parts = append(parts, r.Pricing.QuoteReply)
	}
	a.Reply = strings.Join(parts, "\n\n")
	return a
}

func (r Rules) price(message string, sizes []Size) (Quote, []string) {
	var steps []string

	id := ParseSeries(message)
	series, ok := r.FindSeries(id)
	switch {
	case id == "":
		series, _ = r.FindSeries(r.Pricing.DefaultSeries)
		steps = append(steps, fmt.Sprintf("no series named, using %s", series.Name))
	case !ok:
		series, _ = r.FindSeries(r.Pricing.DefaultSeries)
		steps = append(steps, fmt.Sprintf("unknown series %q, using %s", id, series.Name))
	default:
		steps = append(steps, fmt.Sprintf("series %s selected", series.Name))
	}

	qty := ParseQuantity(message)
	for _, size := range sizes {
		steps = append(steps, fmt.Sprintf("parsed size %s x%d (%s m²)", size, qty, money(size.Area())))
	}

	q := BuildQuote(series, sizes, qty)
	steps = append(steps, fmt.Sprintf("priced at %s%s per m², total %s%s",
		r.Pricing.Currency, money(series.PricePerSqm), r.Pricing.Currency, money(q.Total)))
	return q, steps
}

func hasIntent(matches []Match, intent string) bool {
	for _, m := range matches {
		if m.Intent == intent {
			return true
		}
	}
	return false
}
