package receipt

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/derichenko12/BeyondHomeV3/pkg/cost"
)

// Format selects a renderer.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for unsupported output formats.
var ErrUnknownFormat = errors.New("unknown receipt format")

// ParseFormat accepts text, html or json; empty means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", "txt":
		return FormatText, nil
	case FormatText, FormatHTML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Ext is the file extension used when exporting.
func (f Format) Ext() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatJSON:
		return "json"
	}
	return "txt"
}

// Write renders b in the given format.
func Write(w io.Writer, b Bundle, f Format) error {
	switch f {
	case FormatText:
		return WriteText(w, b)
	case FormatHTML:
		return WriteHTML(w, b)
	case FormatJSON:
		return WriteJSON(w, b)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// FormatMoney renders a rounded amount with thousands separators.
func FormatMoney(currency string, v float64) string {
	s := humanize.Comma(int64(cost.Round(v)))
	if currency == "" {
		return s
	}
	return currency + " " + s
}

// FormatHours renders weekly hours without trailing zeros.
func FormatHours(v float64) string {
	return humanize.Ftoa(v) + " hrs/week"
}

// WriteText renders a plain-text receipt.
func WriteText(w io.Writer, b Bundle) error {
	var buf bytes.Buffer
	money := func(v float64) string { return FormatMoney(b.Currency, v) }

	fmt.Fprintf(&buf, "BeyondHome estimate %s\n", b.ID)
	fmt.Fprintln(&buf, strings.Repeat("=", 20+len(b.ID)))
	fmt.Fprintln(&buf)
	if b.Region.Name != "" {
		fmt.Fprintf(&buf, "Region:     %s, %s\n", b.Region.Name, b.Region.Country)
	}
	fmt.Fprintf(&buf, "Household:  %d\n", b.FamilySize)
	fmt.Fprintf(&buf, "Land:       %s m² (%.1f ha)\n", humanize.Comma(int64(b.LandArea)), b.LandArea/cost.M2PerHa)
	fmt.Fprintf(&buf, "Home:       %.0f m²\n", b.HomeArea)
	fmt.Fprintf(&buf, "Mode:       %s\n", b.Mode)
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-20s %16s %16s\n", "Category", "One-time", "Annual")
	fmt.Fprintf(&buf, "%-20s %16s %16s\n", "--------------------", "----------------", "----------------")
	for _, s := range b.Subtotals {
		fmt.Fprintf(&buf, "%-20s %16s %16s\n", s.Label, money(s.OneTime), money(s.Annual))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "Summary")
	fmt.Fprintln(&buf, "-------")
	fmt.Fprintf(&buf, "  Grand total:          %s\n", money(b.GrandTotal))
	fmt.Fprintf(&buf, "  Contingency (%.0f%%):    %s\n", ContingencyRate*100, money(b.Contingency))
	fmt.Fprintf(&buf, "  Total with buffer:    %s\n", money(b.FinalTotal))
	fmt.Fprintf(&buf, "  Annual running cost:  %s\n", money(b.AnnualTotal))
	fmt.Fprintf(&buf, "  Weekly time:          %s (peak %s)\n", FormatHours(b.AverageWeeklyHours), FormatHours(b.PeakWeeklyHours))
	fmt.Fprintln(&buf)

	writeList(&buf, "Food systems", b.FoodSystems)
	writeList(&buf, "Resources", b.Resources)
	if b.CreativeSpace != "" {
		fmt.Fprintf(&buf, "Creative space: %s\n", b.CreativeSpace)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func writeList(buf *bytes.Buffer, title string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(buf, "%s:\n", title)
	for _, n := range names {
		fmt.Fprintf(buf, "  * %s\n", n)
	}
}

//go:embed receipt.html.tmpl
var htmlSource string

var htmlTemplate = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"money": FormatMoney,
	"hours": FormatHours,
	"pct":   func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) },
}).Parse(htmlSource))

// WriteHTML renders a printable HTML page.
func WriteHTML(w io.Writer, b Bundle) error {
	data := struct {
		Bundle
		Rate float64
	}{b, ContingencyRate}
	if err := htmlTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("rendering receipt HTML: %w", err)
	}
	return nil
}

// WriteJSON renders the bundle as indented JSON.
func WriteJSON(w io.Writer, b Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encoding receipt JSON: %w", err)
	}
	return nil
}
