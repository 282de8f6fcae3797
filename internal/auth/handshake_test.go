package auth_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/fzdarsky/srp6a/internal/auth"
	"github.com/fzdarsky/srp6a/pkg/srp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type failingRandom struct{}

func (failingRandom) RandomBytes(int) ([]byte, error) {
	return nil, errors.New("entropy exhausted")
}

type roles struct {
	cfg    srp.Config
	client *srp.Client
	server *srp.Server
	record *auth.VerifierRecord
}

func newRoles(t *testing.T, password string) roles {
	t.Helper()
	cfg := testConfig(t)
	client, err := srp.NewClient(cfg)
	require.NoError(t, err)
	server, err := srp.NewServer(cfg)
	require.NoError(t, err)
	record, err := auth.NewVerifierRecord(cfg, "alice", []byte(password), 16)
	require.NoError(t, err)
	return roles{cfg: cfg, client: client, server: server, record: record}
}

func TestHandshake_Success(t *testing.T) {
	r := newRoles(t, "password123")

	ch, err := auth.NewClientHandshake(r.client, "alice", []byte("password123"))
	require.NoError(t, err)
	sh, err := auth.NewServerHandshake(r.server, r.record)
	require.NoError(t, err)
	assert.Equal(t, auth.StateInitial, ch.State())

	A, err := ch.Start()
	require.NoError(t, err)
	assert.Equal(t, auth.StateValuesComputed, ch.State())

	salt, B, err := sh.Challenge(ch.Identity(), A)
	require.NoError(t, err)

	M1, err := ch.ProcessChallenge(salt, B)
	require.NoError(t, err)
	assert.Len(t, M1, 32)
	assert.Equal(t, auth.StateEvidenceComputed, ch.State())

	M2, ok, err := sh.Verify(M1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, auth.StateAuthenticated, sh.State())

	ok, err = ch.VerifyServer(M2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, auth.StateAuthenticated, ch.State())

	clientKey, err := ch.SessionKey()
	require.NoError(t, err)
	serverKey, err := sh.SessionKey()
	require.NoError(t, err)
	assert.Equal(t, clientKey, serverKey)
	assert.Len(t, clientKey, 32)

	ch.ClearSecrets()
	sh.ClearSecrets()
	assert.Equal(t, make([]byte, 32), clientKey, "session key wiped in place")
}

func TestHandshake_WrongPassword(t *testing.T) {
	r := newRoles(t, "password123")

	ch, err := auth.NewClientHandshake(r.client, "alice", []byte("guess"))
	require.NoError(t, err)
	sh, err := auth.NewServerHandshake(r.server, r.record)
	require.NoError(t, err)

	A, err := ch.Start()
	require.NoError(t, err)
	salt, B, err := sh.Challenge("alice", A)
	require.NoError(t, err)
	M1, err := ch.ProcessChallenge(salt, B)
	require.NoError(t, err)

	M2, ok, err := sh.Verify(M1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, M2)
	assert.Equal(t, auth.StateFailed, sh.State())

	_, err = sh.SessionKey()
	assert.ErrorIs(t, err, auth.ErrInvalidState)
}

func TestHandshake_ForgedServerEvidence(t *testing.T) {
	r := newRoles(t, "password123")

	ch, err := auth.NewClientHandshake(r.client, "alice", []byte("password123"))
	require.NoError(t, err)
	sh, err := auth.NewServerHandshake(r.server, r.record)
	require.NoError(t, err)

	A, err := ch.Start()
	require.NoError(t, err)
	salt, B, err := sh.Challenge("alice", A)
	require.NoError(t, err)
	M1, err := ch.ProcessChallenge(salt, B)
	require.NoError(t, err)
	M2, ok, err := sh.Verify(M1)
	require.NoError(t, err)
	require.True(t, ok)

	forged := append([]byte{}, M2...)
	forged[0] ^= 0x01

	ok, err = ch.VerifyServer(forged)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, auth.StateFailed, ch.State())

	_, err = ch.SessionKey()
	assert.ErrorIs(t, err, auth.ErrInvalidState)
}

func TestHandshake_DegeneratePublicValues(t *testing.T) {
	r := newRoles(t, "password123")
	N := r.cfg.Group.N()

	t.Run("server rejects A = N", func(t *testing.T) {
		sh, err := auth.NewServerHandshake(r.server, r.record)
		require.NoError(t, err)

		_, _, err = sh.Challenge("alice", N.Bytes())
		require.ErrorIs(t, err, srp.ErrInvalidArgument)
		assert.Equal(t, auth.StateFailed, sh.State())
	})

	t.Run("client rejects B = 2N", func(t *testing.T) {
		ch, err := auth.NewClientHandshake(r.client, "alice", []byte("password123"))
		require.NoError(t, err)
		_, err = ch.Start()
		require.NoError(t, err)

		salt, err := r.record.SaltBytes()
		require.NoError(t, err)
		B := new(big.Int).Lsh(N, 1)

		_, err = ch.ProcessChallenge(salt, B.Bytes())
		require.ErrorIs(t, err, srp.ErrInvalidArgument)
		assert.Equal(t, auth.StateFailed, ch.State())
	})
}

func TestHandshake_UnknownIdentity(t *testing.T) {
	r := newRoles(t, "password123")
	sh, err := auth.NewServerHandshake(r.server, r.record)
	require.NoError(t, err)

	_, _, err = sh.Challenge("mallory", []byte{0x02})
	assert.ErrorIs(t, err, auth.ErrVerifierNotFound)
}

func TestHandshake_StepOrder(t *testing.T) {
	r := newRoles(t, "password123")

	ch, err := auth.NewClientHandshake(r.client, "alice", []byte("password123"))
	require.NoError(t, err)

	_, err = ch.ProcessChallenge([]byte("salt"), []byte{0x02})
	assert.ErrorIs(t, err, auth.ErrInvalidState)
	_, err = ch.VerifyServer([]byte{0x01})
	assert.ErrorIs(t, err, auth.ErrInvalidState)
	_, err = ch.SessionKey()
	assert.ErrorIs(t, err, auth.ErrInvalidState)

	_, err = ch.Start()
	require.NoError(t, err)
	_, err = ch.Start()
	assert.ErrorIs(t, err, auth.ErrInvalidState)

	sh, err := auth.NewServerHandshake(r.server, r.record)
	require.NoError(t, err)
	_, _, err = sh.Verify([]byte{0x01})
	assert.ErrorIs(t, err, auth.ErrInvalidState)
}

func TestHandshake_RandomFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.Random = failingRandom{}
	client, err := srp.NewClient(cfg)
	require.NoError(t, err)

	ch, err := auth.NewClientHandshake(client, "alice", []byte("pw"))
	require.NoError(t, err)

	_, err = ch.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entropy exhausted")
	assert.Equal(t, auth.StateFailed, ch.State())
}

func TestNewHandshake_Invalid(t *testing.T) {
	r := newRoles(t, "pw")

	_, err := auth.NewClientHandshake(nil, "alice", []byte("pw"))
	require.Error(t, err)
	_, err = auth.NewClientHandshake(r.client, "", []byte("pw"))
	require.Error(t, err)
	_, err = auth.NewClientHandshake(r.client, "alice", nil)
	require.Error(t, err)

	_, err = auth.NewServerHandshake(nil, r.record)
	require.Error(t, err)
	_, err = auth.NewServerHandshake(r.server, nil)
	require.Error(t, err)
}

func TestHandshake_Concurrent(t *testing.T) {
	r := newRoles(t, "password123")

	const runs = 32
	keys := make([][]byte, runs)

	var g errgroup.Group
	g.SetLimit(8)
	for i := range runs {
		g.Go(func() error {
			ch, err := auth.NewClientHandshake(r.client, "alice", []byte("password123"))
			if err != nil {
				return err
			}
			sh, err := auth.NewServerHandshake(r.server, r.record)
			if err != nil {
				return err
			}
			A, err := ch.Start()
			if err != nil {
				return err
			}
			salt, B, err := sh.Challenge("alice", A)
			if err != nil {
				return err
			}
			M1, err := ch.ProcessChallenge(salt, B)
			if err != nil {
				return err
			}
			M2, ok, err := sh.Verify(M1)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("server rejected M1")
			}
			if ok, err = ch.VerifyServer(M2); err != nil || !ok {
				return errors.New("client rejected M2")
			}
			key, err := ch.SessionKey()
			if err != nil {
				return err
			}
			keys[i] = append([]byte{}, key...)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	seen := make(map[string]bool, runs)
	for _, k := range keys {
		seen[string(k)] = true
	}
	assert.Len(t, seen, runs, "each run derives its own session key")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "initial", auth.StateInitial.String())
	assert.Equal(t, "authenticated", auth.StateAuthenticated.String())
	assert.Equal(t, "failed", auth.StateFailed.String())
	assert.Equal(t, "state(42)", auth.State(42).String())
}
