package fhe

import (
	"context"
	"math/big"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestMockAddIsDeterministicAndCommutative(t *testing.T) {
	c := qt.New(t)
	m := NewMockCollaborator([]byte("secret"))

	a := NewHandle(big.NewInt(1000))
	b := NewHandle(big.NewInt(500))

	ab, err := m.Add(a, b)
	c.Assert(err, qt.IsNil)
	ba, err := m.Add(b, a)
	c.Assert(err, qt.IsNil)
	again, err := m.Add(a, b)
	c.Assert(err, qt.IsNil)

	c.Assert(ab.Equal(ba), qt.IsTrue)
	c.Assert(ab.Equal(again), qt.IsTrue)
	c.Assert(ab.Equal(NewHandle(big.NewInt(1500))), qt.IsTrue)
}

func TestMockAddRejectsMalformedHandle(t *testing.T) {
	c := qt.New(t)
	m := NewMockCollaborator([]byte("secret"))
	_, err := m.Add(Handle{0xff, 0x01}, NewHandle(big.NewInt(1)))
	c.Assert(err, qt.ErrorMatches, "malformed mock handle.*")
}

func TestMockDecryptionRoundTrip(t *testing.T) {
	c := qt.New(t)
	m := NewMockCollaborator([]byte("secret"))

	token, err := m.RequestDecryption(context.Background(), NewHandle(big.NewInt(130)))
	c.Assert(err, qt.IsNil)

	res, ok := m.Result(token)
	c.Assert(ok, qt.IsTrue)
	c.Assert(res.Cleartext.Int64(), qt.Equals, int64(130))
	c.Assert(m.VerifyAuthenticity(token, res.Cleartext, res.Proof), qt.IsTrue)
	c.Assert(m.VerifyAuthenticity(token, res.Cleartext, []byte("forged")), qt.IsFalse)
	c.Assert(m.VerifyAuthenticity(token, big.NewInt(131), res.Proof), qt.IsFalse)
}

func TestMockMonitorDeliversResults(t *testing.T) {
	c := qt.New(t)
	m := NewMockCollaborator([]byte("secret"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := m.MonitorResults(ctx, 10*time.Millisecond)
	c.Assert(err, qt.IsNil)

	token, err := m.RequestDecryption(ctx, NewHandle(big.NewInt(42)))
	c.Assert(err, qt.IsNil)

	select {
	case res := <-ch:
		c.Assert(res.Token, qt.Equals, token)
		c.Assert(res.Cleartext.Int64(), qt.Equals, int64(42))
	case <-time.After(2 * time.Second):
		c.Fatal("timed out waiting for decryption result")
	}
}
