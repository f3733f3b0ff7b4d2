package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mindthegap/mindthegap/pkg/dashboard"
	"github.com/mindthegap/mindthegap/pkg/giving"
	"github.com/mindthegap/mindthegap/pkg/numfmt"
	"github.com/pterm/pterm"
)

var (
	boldCyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	boldYellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	boldGreen  = color.New(color.FgGreen, color.Bold).SprintFunc()
)

type renderer struct {
	formatter *numfmt.Formatter
}

func newRenderer(formatter *numfmt.Formatter) *renderer {
	return &renderer{formatter: formatter}
}

func (r *renderer) renderDashboard(state dashboard.State) {
	summary := giving.Aggregate(state.AnnualIncome, state.Donations)

	pterm.DefaultSection.Println("Mind the Gap")
	pterm.Printfln("Annual income: %s", boldCyan(r.formatter.Currency(state.AnnualIncome)))
	pterm.Printfln("Annual giving: %s (%s of income)",
		boldGreen(r.formatter.Currency(summary.TotalAnnual)),
		boldYellow(r.formatter.Percent(summary.Percentage)))
	pterm.Println()

	r.renderDonations(summary)
	r.renderIncomeSplit(state.AnnualIncome, summary)
	r.renderComparison(summary)
}

func (r *renderer) renderDonations(summary giving.Summary) {
	if len(summary.Shares) == 0 {
		pterm.Info.Println("No donations yet. Add one with: givectl add <charity> <amount> <frequency>")
		return
	}

	tableData := pterm.TableData{{"ID", "Charity", "Amount", "Frequency", "Annual", "Share"}}
	for _, share := range summary.Shares {
		d := share.Donation
		tableData = append(tableData, []string{
			d.ID,
			d.CharityName,
			r.formatter.Currency(d.Amount),
			string(d.Frequency),
			r.formatter.Currency(d.AnnualAmount),
			r.formatter.Percent(share.Percent),
		})
	}
	table := pterm.DefaultTable.
		WithHasHeader().
		WithData(tableData).
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan))
	if err := table.Render(); err != nil {
		pterm.Error.Printfln("could not render donations: %v", err)
	}
	pterm.Println()
}

func (r *renderer) renderIncomeSplit(income int, summary giving.Summary) {
	if income == 0 {
		return
	}
	for _, slice := range summary.IncomePie {
		pterm.Printfln("%-18s %s", slice.Name, r.barFor(slice.Value, income))
	}
	pterm.Println()
}

func (r *renderer) renderComparison(summary giving.Summary) {
	if len(summary.Comparison) == 0 {
		return
	}
	pterm.DefaultSection.WithLevel(2).Println("If they gave at your rate")
	tableData := pterm.TableData{{"Who", "Annual giving"}}
	for _, entry := range summary.Comparison {
		name := entry.Name
		if entry.Self {
			name = boldGreen(name)
		}
		tableData = append(tableData, []string{name, r.formatter.Currency(int(entry.Contribution))})
	}
	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	if err := table.Render(); err != nil {
		pterm.Error.Printfln("could not render comparison: %v", err)
	}
	pterm.Println()
}

func (r *renderer) renderShareLink(state dashboard.State, link string) {
	summary := giving.Aggregate(state.AnnualIncome, state.Donations)
	pterm.Printfln("Share your dashboard: %s", boldCyan(link))
	pterm.Printfln("Tweet it: %s", giving.TweetURL(summary, link, r.formatter))
}

func (r *renderer) renderMessage(msg *dashboard.Message) {
	if msg == nil {
		return
	}
	switch msg.Type {
	case dashboard.MessageSuccess:
		pterm.Success.Println(msg.Text)
	case dashboard.MessageError:
		pterm.Error.Println(msg.Text)
	default:
		pterm.Info.Println(msg.Text)
	}
}

// barFor scales a value against a total into a fixed-width text bar.
func (r *renderer) barFor(value int, total int) string {
	const width = 30
	filled := 0
	if total > 0 {
		filled = value * width / total
	}
	if filled > width {
		filled = width
	}
	return fmt.Sprintf("%s%s %s",
		strings.Repeat("█", filled),
		strings.Repeat("░", width-filled),
		r.formatter.Currency(value))
}
