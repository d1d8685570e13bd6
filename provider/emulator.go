// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package provider

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"github.com/betchainorg/libbetchain-go/protocol"
)

var (
	bucketUTXOs   = []byte("utxos")
	bucketOracle  = []byte("oracle")
	bucketPots    = []byte("pots")
	bucketCounter = []byte("counter")

	keySeq = []byte("seq")
)

// Emulator is a persistent in-process ledger backend. It keeps a UTXO
// set, oracle records, and per-game pots in a bbolt database and applies
// submitted plans atomically: inputs are consumed, outputs created, and
// pot movements validated, all inside one database transaction.
//
// Transaction identifiers are the blake2b-256 hash of the plan together
// with a monotonic sequence number, so resubmitting an identical plan
// still yields a fresh id.
type Emulator struct {
	db  *bbolt.DB
	log *zap.Logger
}

// EmulatorOption configures an Emulator.
type EmulatorOption func(*Emulator)

// WithEmulatorLogger attaches a logger; the default is a no-op logger.
func WithEmulatorLogger(log *zap.Logger) EmulatorOption {
	return func(e *Emulator) { e.log = log }
}

// OpenEmulator opens or creates the emulator database at dbPath. The
// parent directory is created if it does not exist.
func OpenEmulator(dbPath string, opts ...EmulatorOption) (*Emulator, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("provider: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("provider: open emulator db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketUTXOs, bucketOracle, bucketPots, bucketCounter} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("provider: create buckets: %w", err)
	}

	e := &Emulator{db: db, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Close closes the underlying database.
func (e *Emulator) Close() error { return e.db.Close() }

// Fund creates a fresh output holding value at address, as if a faucet
// transaction had confirmed.
func (e *Emulator) Fund(ctx context.Context, address string, value protocol.Value) (protocol.OutputRef, error) {
	if err := ctx.Err(); err != nil {
		return protocol.OutputRef{}, err
	}
	var ref protocol.OutputRef
	err := e.db.Update(func(tx *bbolt.Tx) error {
		seq, err := nextSeq(tx)
		if err != nil {
			return err
		}
		txid := hashPlan([]byte("fund:"+address), seq)
		u := &protocol.UTXO{TxID: txid, Index: 0, Address: address, Value: value.Clone()}
		if err := putUTXO(tx, u); err != nil {
			return err
		}
		ref = u.Ref()
		return nil
	})
	if err != nil {
		return protocol.OutputRef{}, fmt.Errorf("provider: fund: %w", err)
	}
	e.log.Debug("funded address", zap.String("address", address), zap.String("ref", ref.String()))
	return ref, nil
}

// SetOracleRecord stores or replaces the record for a game.
func (e *Emulator) SetOracleRecord(ctx context.Context, rec *protocol.OracleRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.db.Update(func(tx *bbolt.Tx) error {
		raw, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("provider: encode oracle record: %w", err)
		}
		return tx.Bucket(bucketOracle).Put(gameKey(rec.GameID), raw)
	})
}

// SettleGame publishes a settled record for a game, reading the pooled
// stake from the emulator's pot. betPolicyID is the bet-token policy the
// record authorizes payouts for.
func (e *Emulator) SettleGame(ctx context.Context, gameID int64, outcome protocol.GameOutcome, totalWinnings uint64, betPolicyID string, settledAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.db.Update(func(tx *bbolt.Tx) error {
		rec := &protocol.OracleRecord{
			GameID:        gameID,
			Settled:       true,
			Outcome:       outcome,
			PolicyID:      betPolicyID,
			TotalPot:      readPot(tx, gameID),
			TotalWinnings: totalWinnings,
			SettledAt:     settledAt,
		}
		raw, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("provider: encode oracle record: %w", err)
		}
		return tx.Bucket(bucketOracle).Put(gameKey(gameID), raw)
	})
}

// Pot returns the pooled native stake for a game.
func (e *Emulator) Pot(ctx context.Context, gameID int64) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var pot uint64
	err := e.db.View(func(tx *bbolt.Tx) error {
		pot = readPot(tx, gameID)
		return nil
	})
	return pot, err
}

// ListSpendable implements LedgerService.
func (e *Emulator) ListSpendable(ctx context.Context, address string) ([]*protocol.UTXO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var utxos []*protocol.UTXO
	err := e.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketUTXOs).ForEach(func(_, raw []byte) error {
			var u protocol.UTXO
			if err := json.Unmarshal(raw, &u); err != nil {
				return fmt.Errorf("decode utxo: %w", err)
			}
			if u.Address == address {
				utxos = append(utxos, &u)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("provider: list spendable: %w", err)
	}
	return utxos, nil
}

// OracleRecord implements LedgerService. Absent records return (nil, nil).
func (e *Emulator) OracleRecord(ctx context.Context, gameID int64) (*protocol.OracleRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rec *protocol.OracleRecord
	err := e.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketOracle).Get(gameKey(gameID))
		if raw == nil {
			return nil
		}
		rec = &protocol.OracleRecord{}
		return json.Unmarshal(raw, rec)
	})
	if err != nil {
		return nil, fmt.Errorf("provider: oracle record: %w", err)
	}
	return rec, nil
}

// SubmitPlan implements LedgerService. The plan is validated and applied
// in one database transaction: unknown inputs, unbalanced native value,
// uncovered assets, and over-drawn pots are all rejected without effect.
func (e *Emulator) SubmitPlan(ctx context.Context, plan *protocol.TxPlan) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(plan.Inputs) == 0 {
		return "", ErrNoInputs
	}

	var txid string
	err := e.db.Update(func(tx *bbolt.Tx) error {
		consumed := make(protocol.Value)
		for _, ref := range plan.Inputs {
			u, err := getUTXO(tx, ref)
			if err != nil {
				return err
			}
			consumed.Add(u.Value)
		}

		// Native conservation, exact.
		var produced uint64
		for _, out := range plan.Outputs {
			produced += out.Value.Coin()
		}
		if consumed.Coin()+plan.PotDraw != produced+plan.PotDeposit+plan.Fee {
			return fmt.Errorf("%w: in %d + draw %d, out %d + deposit %d + fee %d",
				ErrValueNotConserved, consumed.Coin(), plan.PotDraw, produced, plan.PotDeposit, plan.Fee)
		}

		// Asset coverage: outputs and burns against inputs and mints.
		pool := consumed.Clone()
		delete(pool, protocol.NativeUnit)
		for _, m := range plan.Mints {
			if m.Quantity >= 0 {
				pool[m.Unit] += uint64(m.Quantity)
				continue
			}
			burn := uint64(-m.Quantity)
			if pool[m.Unit] < burn {
				return fmt.Errorf("%w: burn %d of %s, hold %d", ErrAssetNotCovered, burn, m.Unit, pool[m.Unit])
			}
			pool[m.Unit] -= burn
		}
		for _, out := range plan.Outputs {
			for unit, qty := range out.Value {
				if unit == protocol.NativeUnit {
					continue
				}
				if pool[unit] < qty {
					return fmt.Errorf("%w: output needs %d of %s, hold %d", ErrAssetNotCovered, qty, unit, pool[unit])
				}
				pool[unit] -= qty
			}
		}
		for unit, qty := range pool {
			if qty > 0 {
				return fmt.Errorf("%w: %d of %s left without an output", ErrAssetNotCovered, qty, unit)
			}
		}

		// Pot movement.
		if plan.PotDraw > 0 || plan.PotDeposit > 0 {
			pot := readPot(tx, plan.GameID)
			if plan.PotDraw > pot+plan.PotDeposit {
				return fmt.Errorf("%w: draw %d, pot %d", ErrPotExhausted, plan.PotDraw, pot)
			}
			if err := writePot(tx, plan.GameID, pot+plan.PotDeposit-plan.PotDraw); err != nil {
				return err
			}
		}

		// Apply: consume inputs, create outputs.
		for _, ref := range plan.Inputs {
			if err := tx.Bucket(bucketUTXOs).Delete(refKey(ref)); err != nil {
				return err
			}
		}
		seq, err := nextSeq(tx)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(plan)
		if err != nil {
			return fmt.Errorf("encode plan: %w", err)
		}
		txid = hashPlan(raw, seq)
		for i, out := range plan.Outputs {
			u := &protocol.UTXO{TxID: txid, Index: uint32(i), Address: out.Address, Value: out.Value.Clone()}
			if err := putUTXO(tx, u); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("provider: submit plan: %w", err)
	}
	e.log.Info("plan applied",
		zap.String("txid", txid),
		zap.Int("inputs", len(plan.Inputs)),
		zap.Int("outputs", len(plan.Outputs)),
		zap.Uint64("fee", plan.Fee))
	return txid, nil
}

func hashPlan(raw []byte, seq uint64) string {
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], seq)
	sum := blake2b.Sum256(append(raw, nonce[:]...))
	return hex.EncodeToString(sum[:])
}

func nextSeq(tx *bbolt.Tx) (uint64, error) {
	b := tx.Bucket(bucketCounter)
	var seq uint64
	if raw := b.Get(keySeq); raw != nil {
		seq = binary.BigEndian.Uint64(raw)
	}
	seq++
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], seq)
	return seq, b.Put(keySeq, buf[:])
}

func refKey(ref protocol.OutputRef) []byte { return []byte(ref.String()) }

func gameKey(gameID int64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], uint64(gameID))
	return k[:]
}

func readPot(tx *bbolt.Tx, gameID int64) uint64 {
	raw := tx.Bucket(bucketPots).Get(gameKey(gameID))
	if raw == nil {
		return 0
	}
	return binary.BigEndian.Uint64(raw)
}

func writePot(tx *bbolt.Tx, gameID int64, pot uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], pot)
	return tx.Bucket(bucketPots).Put(gameKey(gameID), buf[:])
}

func putUTXO(tx *bbolt.Tx, u *protocol.UTXO) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode utxo: %w", err)
	}
	return tx.Bucket(bucketUTXOs).Put(refKey(u.Ref()), raw)
}

func getUTXO(tx *bbolt.Tx, ref protocol.OutputRef) (*protocol.UTXO, error) {
	raw := tx.Bucket(bucketUTXOs).Get(refKey(ref))
	if raw == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInput, ref)
	}
	var u protocol.UTXO
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode utxo %s: %w", ref, err)
	}
	return &u, nil
}
