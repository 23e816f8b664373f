package mockserver

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

var (
	// 1.5x1.2, 1.5 x 1.2, 1500*1200, 1.5m×1.2m
	sizePattern     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*m?\s*[xX×*]\s*(\d+(?:\.\d+)?)\s*m?`)
	quantityPattern = regexp.MustCompile(`(?i)(?:^|[^\d.])(\d+)\s*(?:windows?|pcs|pieces|units?|扇|樘)`)
	seriesPattern   = regexp.MustCompile(`(?i)(?:(\d+)\s*(?:series|系列)|series\s*(\d+))`)
)

// mmThreshold is the value above which a dimension is read as millimetres.
const mmThreshold = 20

// Size is one window opening in metres.
type Size struct {
	Width  float64
	Height float64
}

// Area returns the opening area in square metres.
func (s Size) Area() float64 {
	return s.Width * s.Height
}

func (s Size) String() string {
	return fmt.Sprintf("%sm x %sm", trimFloat(s.Width), trimFloat(s.Height))
}

// QuoteLine is one row of the breakdown table.
type QuoteLine struct {
	Size      Size
	Quantity  int
	UnitPrice float64
	Amount    float64
}

// Quote is a priced request.
type Quote struct {
	Series Series
	Lines  []QuoteLine
	Total  float64
}

// ParseSizes extracts every width x height pair from message.
func ParseSizes(message string) []Size {
	var sizes []Size
	for _, m := range sizePattern.FindAllStringSubmatch(message, -1) {
		w, errW := strconv.ParseFloat(m[1], 64)
		h, errH := strconv.ParseFloat(m[2], 64)
		if errW != nil || errH != nil || w <= 0 || h <= 0 {
			continue
		}
		if w > mmThreshold {
			w /= 1000
		}
		if h > mmThreshold {
			h /= 1000
		}
		sizes = append(sizes, Size{Width: w, Height: h})
	}
	return sizes
}

// ParseQuantity returns the window count named in message, or 1.
func ParseQuantity(message string) int {
	m := quantityPattern.FindStringSubmatch(message)
	if m == nil {
		return 1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ParseSeries returns the series id named in message, or "".
func ParseSeries(message string) string {
	m := seriesPattern.FindStringSubmatch(message)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}

// BuildQuote prices sizes at the series rate. Each size gets qty windows.
func BuildQuote(series Series, sizes []Size, qty int) Quote {
	if qty < 1 {
		qty = 1
	}
	q := Quote{Series: series}
	for _, size := range sizes {
		unit := roundCents(size.Area() * series.PricePerSqm)
		amount := roundCents(unit * float64(qty))
		q.Lines = append(q.Lines, QuoteLine{
			Size:      size,
			Quantity:  qty,
			UnitPrice: unit,
			Amount:    amount,
		})
		q.Total += amount
	}
	q.Total = roundCents(q.Total)
	return q
}

// Markdown renders the quote in the subset understood by the client.
func (q Quote) Markdown(currency string) string {
	var b strings.Builder
	b.WriteString("# Window Quote\n\n")
	b.WriteString("## Total\n")
	fmt.Fprintf(&b, "**%s%s**\n\n", currency, money(q.Total))
	b.WriteString("## Breakdown\n")
	b.WriteString("| Item | Qty | Unit price | Amount |\n")
	b.WriteString("|------|-----|------------|--------|\n")
	for _, line := range q.Lines {
		fmt.Fprintf(&b, "| %s window | %d | %s | %s |\n",
			line.Size, line.Quantity, money(line.UnitPrice), money(line.Amount))
	}
	fmt.Fprintf(&b, "\n*Series: %s at %s%s per m²*", q.Series.Name, currency, money(q.Series.PricePerSqm))
	return b.String()
}

func money(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
