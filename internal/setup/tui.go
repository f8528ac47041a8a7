// Package setup implements the interactive configuration wizard.
package setup

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/atd/internal/domain"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// RunTUI launches the terminal configuration wizard and writes the result to path.
func RunTUI(path string) error {
	a := Answers{
		Pair:              "BTC_USD",
		MonitorPeriod:     "60",
		Strategy:          domain.StrategyHodl,
		Low:               "0",
		TradePeriod:       "3600",
		StatsPeriod:       "86400",
		BalancePercentage: "10",
		Date:              "1",
		Buy:               QuantityAnswer{Amount: "10", IsPercent: true},
		Sell:              QuantityAnswer{Amount: "10", IsPercent: true},
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("ATD CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Describe one pair and its strategy; edit the file later to add more.\n"))

	// market and exchange credentials
	fmt.Println(stepStyle.Render("STEP 1: CREDENTIALS"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Kraken API Key").
				Description("Leave empty to skip the Kraken market. ${VAR} references are expanded at load").
				Value(&a.KrakenAPIKey),
			huh.NewInput().
				Title("Kraken API Secret").
				Value(&a.KrakenAPISecret).
				EchoMode(huh.EchoModePassword),
			huh.NewInput().
				Title("Shapeshift Affiliate Private Key").
				Description("Optional, Shapeshift works without it").
				Value(&a.AffiliateKey).
				EchoMode(huh.EchoModePassword),
		),
	).Run()
	if err != nil {
		return err
	}

	// pair and strategy
	fmt.Println(stepStyle.Render("STEP 2: PAIR AND STRATEGY"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Trading Pair").
				Description("BASE_QUOTE (e.g. BTC_USD)").
				Value(&a.Pair).
				Validate(func(s string) error {
					_, err := parsePair(s)
					return err
				}),
			huh.NewInput().
				Title("Monitor Period").
				Description("Seconds between market observations").
				Value(&a.MonitorPeriod).
				Validate(validateSeconds),
			huh.NewSelect[domain.StrategyKind]().
				Title("Choose your trading strategy").
				Options(
					huh.NewOption("Hodl", domain.StrategyHodl),
					huh.NewOption("Buy low and hodl", domain.StrategyBuyLowAndHodl),
					huh.NewOption("Dollar cost averaging", domain.StrategyDollarCostAveraging),
					huh.NewOption("Small changes", domain.StrategySmallChanges),
				).
				Value(&a.Strategy),
		),
	).Run()
	if err != nil {
		return err
	}

	if fields := strategyFields(&a); len(fields) > 0 {
		fmt.Println(stepStyle.Render("STEP 3: " + a.Strategy.Title() + " SETTINGS"))
		if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
			return err
		}
	}

	data, err := a.Render()
	if err != nil {
		return err
	}

	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(string(data)))

	var confirm bool
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\n✓ Configuration saved to %s", path)))
	return nil
}

func strategyFields(a *Answers) []huh.Field {
	switch a.Strategy {
	case domain.StrategyBuyLowAndHodl:
		return []huh.Field{
			huh.NewInput().Title("Low price").Value(&a.Low).Validate(validateNumber),
			huh.NewInput().Title("Trade period (seconds)").Value(&a.TradePeriod).Validate(validateSeconds),
			huh.NewInput().Title("Stats period (seconds)").Value(&a.StatsPeriod).Validate(validateSeconds),
			huh.NewInput().Title("Quote balance % per buy").Value(&a.BalancePercentage).Validate(validateNumber),
		}
	case domain.StrategyDollarCostAveraging:
		return append([]huh.Field{
			huh.NewInput().Title("Date").Description("Schedule passed verbatim to the strategy").Value(&a.Date),
		}, quantityFields("Buy (quote)", &a.Buy)...)
	case domain.StrategySmallChanges:
		return append(quantityFields("Buy (base)", &a.Buy), quantityFields("Sell (base)", &a.Sell)...)
	default:
		return nil
	}
}

func quantityFields(title string, q *QuantityAnswer) []huh.Field {
	return []huh.Field{
		huh.NewInput().Title(title + " amount").Value(&q.Amount).Validate(validateNumber),
		huh.NewConfirm().Title(title + " unit").Affirmative("% of balance").Negative("fixed").Value(&q.IsPercent),
	}
}

func validateNumber(s string) error {
	if _, err := decimal.NewFromString(s); err != nil {
		return fmt.Errorf("must be a valid number")
	}
	return nil
}

func validateSeconds(s string) error {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive whole number of seconds")
	}
	return nil
}
