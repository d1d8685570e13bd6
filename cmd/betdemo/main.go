// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Command betdemo walks a complete bet lifecycle against the embedded
// ledger emulator: fund a bettor, place a bet, settle the game through
// the oracle, redeem the winnings, and buy utility tokens with the
// proceeds. It is a smoke-test harness for the orchestration core, not
// a production client.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pterm/pterm"

	"github.com/betchainorg/libbetchain-go/config"
	"github.com/betchainorg/libbetchain-go/engine"
	"github.com/betchainorg/libbetchain-go/logger"
	"github.com/betchainorg/libbetchain-go/protocol"
	"github.com/betchainorg/libbetchain-go/provider"
	"github.com/betchainorg/libbetchain-go/result"
)

const (
	bettor   = "addr_test1_demo_bettor"
	referrer = "addr_test1_demo_referrer"
	gameID   = int64(2026)
)

func main() {
	cfgPath := flag.String("config", "", "configuration file (default: built-in emulator settings)")
	stake := flag.Uint64("stake", 25_000_000, "bet stake in minor units")
	verbose := flag.Bool("v", false, "log emulator activity")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.LoadConfig(*cfgPath); err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
	}
	if err := config.ValidateConfig(cfg); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	if err := run(cfg, *stake, *verbose); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(cfg config.Config, stake uint64, verbose bool) error {
	ctx := context.Background()
	params := protocol.TestnetParams()
	params.Network = "emulator"
	if cfg.Network != "emulator" {
		pterm.Warning.Printfln("config selects %s; the demo always runs against the embedded emulator", cfg.Network)
	}

	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return err
	}
	dbPath := filepath.Join(cfg.DataDir, "betdemo.db")

	log, err := logger.New("betdemo", "local")
	if err != nil {
		return err
	}
	defer log.Sync()

	var emuOpts []provider.EmulatorOption
	if verbose {
		emuOpts = append(emuOpts, provider.WithEmulatorLogger(log.Named("emulator")))
	}
	emu, err := provider.OpenEmulator(dbPath, emuOpts...)
	if err != nil {
		return err
	}
	defer emu.Close()

	eng, err := engine.New(params, emu, engine.WithLogger(log.Named("engine")))
	if err != nil {
		return err
	}

	pterm.DefaultHeader.WithFullWidth().Println("betchain lifecycle demo")

	pterm.DefaultSection.Println("Funding")
	funding := stake * 2
	if _, err := emu.Fund(ctx, bettor, protocol.NewValue(funding)); err != nil {
		return err
	}
	pterm.Info.Printfln("funded %s with %d", bettor, funding)

	pterm.DefaultSection.Println("Placing bet")
	kickoff := time.Now().Add(24 * time.Hour)
	out, f := eng.PlaceBet(ctx, protocol.PlaceBetRequest{
		Actor:     bettor,
		GameID:    gameID,
		GameLabel: "Sharks vs Jets",
		Outcome:   protocol.OutcomeHome,
		Stake:     stake,
		Kickoff:   kickoff,
	}).Unpack()
	if f != nil {
		return describe(f)
	}
	report(out.TxID, out.Summary, out.Warnings)
	pterm.Info.Printfln("selection: %s over %d input(s), efficiency %s",
		out.Selection.Strategy, len(out.Selection.Inputs), out.Selection.Efficiency.StringFixed(4))

	pot, err := emu.Pot(ctx, gameID)
	if err != nil {
		return err
	}
	pterm.Info.Printfln("game pot now holds %d", pot)

	pterm.DefaultSection.Println("Settling game")
	if err := emu.SettleGame(ctx, gameID, protocol.OutcomeHome, stake, params.BetPolicyID, time.Now()); err != nil {
		return err
	}
	pterm.Success.Println("oracle settled: Home")

	pterm.DefaultSection.Println("Redeeming bet")
	out, f = eng.RedeemBet(ctx, protocol.RedeemBetRequest{
		Actor:     bettor,
		GameID:    gameID,
		GameLabel: "Sharks vs Jets",
		Predicted: protocol.OutcomeHome,
		Stake:     stake,
	}).Unpack()
	if f != nil {
		return describe(f)
	}
	report(out.TxID, out.Summary, out.Warnings)
	pterm.Info.Printfln("payout %d at multiplier %s", out.Payout, out.Multiplier)

	pterm.DefaultSection.Println("Purchasing utility tokens")
	out, f = eng.PurchaseToken(ctx, protocol.PurchaseTokenRequest{
		Actor:        bettor,
		Contribution: params.MinPurchase,
		Referral:     referrer,
	}).Unpack()
	if f != nil {
		return describe(f)
	}
	report(out.TxID, out.Summary, out.Warnings)
	if d := out.Distribution; d != nil {
		pterm.Info.Printfln("distribution: %d to protocol, %d to referrer (%s%%)",
			d.ToProtocol, d.ToReferrer, d.ReferralPercent)
	}

	pterm.DefaultSection.Println("Final balances")
	snapshot, err := emu.ListSpendable(ctx, bettor)
	if err != nil {
		return err
	}
	table := pterm.TableData{{"output", "native", "assets"}}
	for _, u := range snapshot {
		assets := 0
		for unit := range u.Value {
			if unit != protocol.NativeUnit {
				assets++
			}
		}
		table = append(table, []string{u.Ref().String(), fmt.Sprintf("%d", u.Value.Coin()), fmt.Sprintf("%d", assets)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
}

func report(txid, summary string, warnings []string) {
	pterm.Success.Printfln("%s (tx %s)", summary, txid)
	for _, w := range warnings {
		pterm.Warning.Println(w)
	}
}

func describe(f *result.Failure) error {
	for _, s := range f.Suggestions {
		pterm.Info.Printfln("suggestion: %s", s)
	}
	return f
}
