package settle

import (
	"context"
	"math/big"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp"

	"github.com/confidsys/batchsettle/fhe"
	"github.com/confidsys/batchsettle/storage"
	"github.com/confidsys/batchsettle/types"
)

// settleBatch opens a batch, submits the two canonical contributions
// (cost=1000/budget=200 and cost=1500/budget=300, plaintexts 100 and 30)
// and closes it.
func settleBatch(c *qt.C, e *Engine, advance func(time.Duration)) {
	c.Assert(e.AuthorizeProvider(admin, provider), qt.IsNil)
	_, err := e.OpenBatch(admin)
	c.Assert(err, qt.IsNil)

	_, err = e.SubmitContribution(provider, big.NewInt(1000), big.NewInt(200), fhe.NewHandle(big.NewInt(100)))
	c.Assert(err, qt.IsNil)
	advance(61 * time.Second)
	_, err = e.SubmitContribution(provider, big.NewInt(1500), big.NewInt(300), fhe.NewHandle(big.NewInt(30)))
	c.Assert(err, qt.IsNil)

	_, err = e.CloseBatch(admin)
	c.Assert(err, qt.IsNil)
}

func TestSettlementEndToEnd(t *testing.T) {
	c := qt.New(t)
	e, mock := newTestEngine(t)
	advance := fixedClock(e)
	ctx := context.Background()

	settleBatch(c, e, advance)

	req, err := e.RequestSettlement(ctx, other, 1)
	c.Assert(err, qt.IsNil)
	c.Assert(req.Token, qt.Not(qt.Equals), "")
	c.Assert(req.Processed, qt.IsFalse)
	// the aggregate of plaintexts 100 and 30
	c.Assert(req.Aggregate.Equal(fhe.NewHandle(big.NewInt(130))), qt.IsTrue)

	res, ok := mock.Result(req.Token)
	c.Assert(ok, qt.IsTrue)
	c.Assert(res.Cleartext.Int64(), qt.Equals, int64(130))

	final, err := e.OnDecryptionResult(res.Token, res.Cleartext, res.Proof)
	c.Assert(err, qt.IsNil)
	c.Assert(final.Processed, qt.IsTrue)
	c.Assert(final.Result.DecryptedTotal.String(), qt.Equals, "130")
	// revenue = factor(3) * totalBudget(500), profit = revenue - totalCost(2500)
	c.Assert(final.Result.Revenue.String(), qt.Equals, "1500")
	c.Assert(final.Result.Profit.String(), qt.Equals, "-1000")

	// the finalization notification carries the figures
	notes, err := e.Notifications(0, 0)
	c.Assert(err, qt.IsNil)
	last := notes[len(notes)-1]
	c.Assert(last.Kind, qt.Equals, storage.NotifySettlementFinalized)
	c.Assert(last.Total.String(), qt.Equals, "130")
	c.Assert(last.Revenue.String(), qt.Equals, "1500")
	c.Assert(last.Profit.String(), qt.Equals, "-1000")
}

func TestCallbackReplayIsRejected(t *testing.T) {
	c := qt.New(t)
	e, mock := newTestEngine(t)
	advance := fixedClock(e)

	settleBatch(c, e, advance)
	req, err := e.RequestSettlement(context.Background(), other, 1)
	c.Assert(err, qt.IsNil)
	res, _ := mock.Result(req.Token)

	first, err := e.OnDecryptionResult(res.Token, res.Cleartext, res.Proof)
	c.Assert(err, qt.IsNil)

	_, err = e.OnDecryptionResult(res.Token, res.Cleartext, res.Proof)
	c.Assert(err, qt.ErrorIs, ErrReplayRejected)

	// the stored figures did not change
	stored, err := e.SettlementRequest(req.Token)
	c.Assert(err, qt.IsNil)
	c.Assert(stored.Result, qt.CmpEquals(cmp.AllowUnexported(types.BigInt{})), first.Result)
}

func TestCallbackUnknownToken(t *testing.T) {
	c := qt.New(t)
	e, _ := newTestEngine(t)

	_, err := e.OnDecryptionResult("no-such-token", big.NewInt(1), []byte("proof"))
	c.Assert(err, qt.ErrorIs, ErrUnknownToken)
}

func TestCallbackInvalidProof(t *testing.T) {
	c := qt.New(t)
	e, mock := newTestEngine(t)
	advance := fixedClock(e)

	settleBatch(c, e, advance)
	req, err := e.RequestSettlement(context.Background(), other, 1)
	c.Assert(err, qt.IsNil)
	res, _ := mock.Result(req.Token)

	_, err = e.OnDecryptionResult(res.Token, res.Cleartext, []byte("forged"))
	c.Assert(err, qt.ErrorIs, ErrInvalidProof)

	// the request stays unprocessed and can still finalize
	_, err = e.OnDecryptionResult(res.Token, res.Cleartext, res.Proof)
	c.Assert(err, qt.IsNil)
}

func TestCallbackIntegrityMismatchBeatsProof(t *testing.T) {
	c := qt.New(t)
	e, mock := newTestEngine(t)
	advance := fixedClock(e)

	settleBatch(c, e, advance)
	req, err := e.RequestSettlement(context.Background(), other, 1)
	c.Assert(err, qt.IsNil)
	res, _ := mock.Result(req.Token)

	// tamper with the committed data: overwrite contribution 0's handle
	// directly in the store, bypassing the engine
	batch, err := e.stg.Batch(1)
	c.Assert(err, qt.IsNil)
	tampered, err := e.stg.Contribution(1, 0)
	c.Assert(err, qt.IsNil)
	tampered.Handle = fhe.NewHandle(big.NewInt(999))
	cd, err := e.stg.Cooldown(provider.Bytes())
	c.Assert(err, qt.IsNil)
	note := &storage.Notification{Kind: storage.NotifyContributionRecorded}
	c.Assert(e.stg.ApplyContribution(batch, tampered, cd, note), qt.IsNil)

	// a perfectly valid proof does not rescue a stale commitment
	_, err = e.OnDecryptionResult(res.Token, res.Cleartext, res.Proof)
	c.Assert(err, qt.ErrorIs, ErrIntegrityMismatch)

	stored, err := e.SettlementRequest(req.Token)
	c.Assert(err, qt.IsNil)
	c.Assert(stored.Processed, qt.IsFalse)
}

func TestRequestSettlementPreconditions(t *testing.T) {
	c := qt.New(t)
	e, _ := newTestEngine(t)
	advance := fixedClock(e)
	ctx := context.Background()

	// unknown batch
	_, err := e.RequestSettlement(ctx, other, 42)
	c.Assert(err, qt.ErrorIs, ErrBatchNotFound)

	// open batch cannot settle
	_, err = e.OpenBatch(admin)
	c.Assert(err, qt.IsNil)
	_, err = e.RequestSettlement(ctx, other, 1)
	c.Assert(err, qt.ErrorIs, ErrBatchNotClosed)

	// empty closed batch cannot settle
	_, err = e.CloseBatch(admin)
	c.Assert(err, qt.IsNil)
	_, err = e.RequestSettlement(ctx, other, 1)
	c.Assert(err, qt.ErrorIs, ErrEmptyBatch)

	// a non-empty closed batch settles, then the settlement cooldown
	// applies to the same caller
	settleBatch(c, e, advance)
	_, err = e.RequestSettlement(ctx, other, 2)
	c.Assert(err, qt.IsNil)
	_, err = e.RequestSettlement(ctx, other, 2)
	c.Assert(err, qt.ErrorIs, ErrCooldownActive)

	// a retried settlement after the cooldown creates an independent request
	advance(61 * time.Second)
	second, err := e.RequestSettlement(ctx, other, 2)
	c.Assert(err, qt.IsNil)
	c.Assert(second.Processed, qt.IsFalse)
}

func TestAggregateIsRederivable(t *testing.T) {
	c := qt.New(t)
	_, mock := newTestEngine(t)

	handles := []fhe.Handle{
		fhe.NewHandle(big.NewInt(100)),
		fhe.NewHandle(big.NewInt(30)),
		fhe.NewHandle(big.NewInt(7)),
	}
	a, err := aggregateHandles(mock, handles)
	c.Assert(err, qt.IsNil)
	b, err := aggregateHandles(mock, handles)
	c.Assert(err, qt.IsNil)
	c.Assert(a.Equal(b), qt.IsTrue)

	_, err = aggregateHandles(mock, nil)
	c.Assert(err, qt.ErrorIs, ErrEmptyBatch)

	// the commitment binds the order and the identity salt
	h1 := commitment(handles, types.HexBytes("id-a"))
	h2 := commitment([]fhe.Handle{handles[1], handles[0], handles[2]}, types.HexBytes("id-a"))
	h3 := commitment(handles, types.HexBytes("id-b"))
	c.Assert(h1.String(), qt.Not(qt.Equals), h2.String())
	c.Assert(h1.String(), qt.Not(qt.Equals), h3.String())
}
