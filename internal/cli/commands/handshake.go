package commands

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fzdarsky/srp6a/internal/auth"
	"github.com/fzdarsky/srp6a/internal/logging"
	"github.com/fzdarsky/srp6a/internal/util/memzero"
	"github.com/fzdarsky/srp6a/pkg/protocol"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

// transcript holds the wire messages of one run. Only printed on request.
type transcript struct {
	InitRequest    *protocol.SRPInitRequest    `json:"init_request,omitempty" yaml:"init_request,omitempty"`
	InitResponse   *protocol.SRPInitResponse   `json:"init_response,omitempty" yaml:"init_response,omitempty"`
	VerifyRequest  *protocol.SRPVerifyRequest  `json:"verify_request,omitempty" yaml:"verify_request,omitempty"`
	VerifyResponse *protocol.SRPVerifyResponse `json:"verify_response,omitempty" yaml:"verify_response,omitempty"`
}

type runResult struct {
	Run           int                     `json:"run" yaml:"run"`
	Authenticated bool                    `json:"authenticated" yaml:"authenticated"`
	DurationMS    int64                   `json:"duration_ms" yaml:"duration_ms"`
	Error         *protocol.ErrorResponse `json:"error,omitempty" yaml:"error,omitempty"`
	Transcript    *transcript             `json:"transcript,omitempty" yaml:"transcript,omitempty"`
}

type handshakeSummary struct {
	Identity      string              `json:"identity" yaml:"identity"`
	Group         int                 `json:"group" yaml:"group"`
	Digest        srp.DigestAlgorithm `json:"digest" yaml:"digest"`
	Runs          int                 `json:"runs" yaml:"runs"`
	Authenticated int                 `json:"authenticated" yaml:"authenticated"`
	Failed        int                 `json:"failed" yaml:"failed"`
	Results       []runResult         `json:"results" yaml:"results"`
}

// handshakeEnv is what every run shares: the stateless role objects and the
// stored record. Each run builds its own handshake drivers.
type handshakeEnv struct {
	client     *srp.Client
	server     *srp.Server
	record     *auth.VerifierRecord
	identity   string
	password   []byte
	transcript bool
	timeout    time.Duration
	logger     *logging.Logger
}

func handshakeCmd(opts *rootOptions) *cobra.Command {
	var (
		identity       string
		password       string
		parallel       int
		count          int
		timeout        time.Duration
		showTranscript bool
	)

	cmd := &cobra.Command{
		Use:   "handshake",
		Short: "Authenticate against the stored verifier record",
		Long: `Run the client and server sides of an SRP-6a handshake in-process. The two
sides exchange the JSON messages a network transport would carry. Both
sides must derive the same session key for a run to succeed.`,
		Example: `  # Single handshake, prompting for the password
  srp6 handshake --identity alice

  # 32 concurrent handshakes, JSON output
  srp6 handshake --identity alice --password secret --parallel 32 -o json

  # 1000 handshakes, 8 at a time, each bounded to 2 seconds
  srp6 handshake --password secret --count 1000 --parallel 8 --timeout 2s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if parallel < 1 {
				return fmt.Errorf("--parallel must be at least 1")
			}
			if !cmd.Flags().Changed("count") {
				count = parallel
			}
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			if !cmd.Flags().Changed("timeout") {
				configured, err := opts.cfg.GetHandshakeTimeout()
				if err != nil {
					return err
				}
				timeout = configured
			}
			if timeout <= 0 {
				return fmt.Errorf("--timeout must be positive")
			}

			path := opts.cfg.Verifier.Path
			record, err := auth.LoadVerifierRecord(path)
			if errors.Is(err, auth.ErrVerifierNotFound) {
				return protocol.NewVerifierNotFoundError(path)
			}
			if err != nil {
				return err
			}
			if identity == "" {
				identity = record.Identity
			}

			pw := []byte(password)
			if password == "" {
				if pw, err = opts.readPassword(cmd, fmt.Sprintf("Password for %s: ", identity)); err != nil {
					return err
				}
			}
			defer memzero.Zero(pw)

			env, err := newHandshakeEnv(record, identity, pw, opts.logger)
			if err != nil {
				return err
			}
			env.transcript = showTranscript
			env.timeout = timeout

			summary, err := env.runAll(cmd.Context(), count, parallel)
			if err != nil {
				return err
			}
			if err := opts.write(cmd, summary); err != nil {
				return err
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d handshakes failed", summary.Failed, summary.Runs)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&identity, "identity", "", "identity to authenticate as (default: the record's identity)")
	cmd.Flags().StringVar(&password, "password", "", "password (prompts if not provided)")
	cmd.Flags().IntVar(&parallel, "parallel", 1, "number of concurrent handshakes")
	cmd.Flags().IntVar(&count, "count", 1, "total number of handshakes (default: --parallel)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "per-handshake timeout (default: handshake.timeout)")
	cmd.Flags().BoolVar(&showTranscript, "transcript", false, "include the exchanged messages in the output")

	return cmd
}

func newHandshakeEnv(record *auth.VerifierRecord, identity string, password []byte, logger *logging.Logger) (*handshakeEnv, error) {
	srpCfg, err := record.Config()
	if err != nil {
		return nil, err
	}
	client, err := srp.NewClient(srpCfg)
	if err != nil {
		return nil, err
	}
	server, err := srp.NewServer(srpCfg)
	if err != nil {
		return nil, err
	}
	return &handshakeEnv{
		client:   client,
		server:   server,
		record:   record,
		identity: identity,
		password: password,
		timeout:  30 * time.Second,
		logger:   logger,
	}, nil
}

// runAll runs count handshakes, at most parallel at a time. Protocol
// failures and timeouts are recorded per run; cancelling ctx stops the batch.
func (e *handshakeEnv) runAll(ctx context.Context, count, parallel int) (*handshakeSummary, error) {
	results := make([]runResult, count)
	var g errgroup.Group
	g.SetLimit(parallel)
	for i := range count {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.run(ctx, i+1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("handshakes interrupted: %w", err)
	}

	summary := &handshakeSummary{
		Identity: e.identity,
		Group:    e.record.Group,
		Digest:   e.record.Digest,
		Runs:     count,
		Results:  results,
	}
	for _, r := range results {
		if r.Authenticated {
			summary.Authenticated++
		} else {
			summary.Failed++
		}
	}
	return summary, nil
}

// run performs one handshake, passing every message through its JSON wire
// form.
func (e *handshakeEnv) run(ctx context.Context, n int) runResult {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	log := e.logger.WithFields(map[string]any{"run": n, "identity": e.identity})
	result := runResult{Run: n}
	var tr transcript

	err := e.exchange(ctx, &tr)
	result.DurationMS = time.Since(start).Milliseconds()
	if e.transcript {
		result.Transcript = &tr
	}

	if err != nil {
		result.Error = errorResponse(err)
		log.Warn("handshake failed", map[string]any{
			"code":        result.Error.Code,
			"duration_ms": result.DurationMS,
		})
		return result
	}

	result.Authenticated = true
	log.Info("handshake completed", map[string]any{"duration_ms": result.DurationMS})
	return result
}

func (e *handshakeEnv) exchange(ctx context.Context, tr *transcript) error {
	ch, err := auth.NewClientHandshake(e.client, e.identity, e.password)
	if err != nil {
		return err
	}
	defer ch.ClearSecrets()
	sh, err := auth.NewServerHandshake(e.server, e.record)
	if err != nil {
		return err
	}
	defer sh.ClearSecrets()

	// Client: A
	A, err := ch.Start()
	if err != nil {
		return err
	}
	initReq, err := transmit(protocol.NewSRPInitRequest(e.identity, A))
	if err != nil {
		return err
	}
	tr.InitRequest = &initReq

	// Server: salt, B
	if err := ctx.Err(); err != nil {
		return err
	}
	receivedA, err := initReq.Decode()
	if err != nil {
		return err
	}
	salt, B, err := sh.Challenge(initReq.Identity, receivedA)
	if err != nil {
		return err
	}
	initResp, err := transmit(protocol.NewSRPInitResponse(salt, B))
	if err != nil {
		return err
	}
	tr.InitResponse = &initResp

	// Client: M1
	if err := ctx.Err(); err != nil {
		return err
	}
	receivedSalt, receivedB, err := initResp.Decode()
	if err != nil {
		return err
	}
	M1, err := ch.ProcessChallenge(receivedSalt, receivedB)
	if err != nil {
		return err
	}
	verifyReq, err := transmit(protocol.SRPVerifyRequest{M1: protocol.EncodeBytes(M1)})
	if err != nil {
		return err
	}
	tr.VerifyRequest = &verifyReq

	// Server: M2
	if err := ctx.Err(); err != nil {
		return err
	}
	receivedM1, err := verifyReq.Decode()
	if err != nil {
		return err
	}
	M2, ok, err := sh.Verify(receivedM1)
	if err != nil {
		return err
	}
	if !ok {
		return protocol.NewAuthenticationFailedError("client evidence rejected")
	}
	verifyResp, err := transmit(protocol.SRPVerifyResponse{M2: protocol.EncodeBytes(M2)})
	if err != nil {
		return err
	}
	tr.VerifyResponse = &verifyResp

	// Client: check M2
	if err := ctx.Err(); err != nil {
		return err
	}
	receivedM2, err := verifyResp.Decode()
	if err != nil {
		return err
	}
	if ok, err = ch.VerifyServer(receivedM2); err != nil {
		return err
	}
	if !ok {
		return protocol.NewAuthenticationFailedError("server evidence rejected")
	}

	clientKey, err := ch.SessionKey()
	if err != nil {
		return err
	}
	serverKey, err := sh.SessionKey()
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(clientKey, serverKey) != 1 {
		return errors.New("session keys differ")
	}
	return nil
}

// transmit round-trips a message through its JSON encoding.
func transmit[T any](msg T) (T, error) {
	var out T
	data, err := json.Marshal(msg)
	if err != nil {
		return out, fmt.Errorf("failed to encode message: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to decode message: %w", err)
	}
	return out, nil
}
