package hasher

import (
	"context"

	"github.com/aleister1102/piholewatch/internal/datastore"
	"github.com/aleister1102/piholewatch/internal/pihole"
	"github.com/rs/zerolog"
)

// Pipeline performs one full change-detection pass: authenticate, fetch the
// ordered resource endpoints, normalize and hash them, and compare the
// combined digest against the stored one.
type Pipeline struct {
	client       *pihole.Client
	hashStore    *datastore.HashStore
	sessionStore *datastore.SessionStore
	endpoints    []string
	logger       zerolog.Logger
}

// NewPipeline creates a new Pipeline.
func NewPipeline(
	client *pihole.Client,
	hashStore *datastore.HashStore,
	sessionStore *datastore.SessionStore,
	endpoints []string,
	logger zerolog.Logger,
) *Pipeline {
	return &Pipeline{
		client:       client,
		hashStore:    hashStore,
		sessionStore: sessionStore,
		endpoints:    endpoints,
		logger:       logger.With().Str("component", "HashPipeline").Logger(),
	}
}

// Check executes the hash comparison and returns a structured result. API
// failures never propagate: they are converted to a StatusError result and
// nothing is persisted. The new summary hash is persisted unconditionally on
// success, so the stored record always reflects the last successful check.
func (p *Pipeline) Check(ctx context.Context) CheckResult {
	if err := p.ensureSession(ctx); err != nil {
		return p.errorResult(err)
	}

	endpointHashes := make([]string, 0, len(p.endpoints))
	for _, endpoint := range p.endpoints {
		payload, err := p.client.FetchJSON(ctx, endpoint)
		if err != nil {
			return p.errorResult(err)
		}
		digest, err := DigestPayload(StripTookFields(payload))
		if err != nil {
			return p.errorResult(err)
		}
		p.logger.Debug().Str("endpoint", endpoint).Str("digest", digest).Msg("Endpoint digested")
		endpointHashes = append(endpointHashes, digest)
	}
	summaryHash := CombineHashes(endpointHashes)

	previousHash, err := p.hashStore.ReadPrevious()
	if err != nil {
		return p.errorResult(err)
	}
	if err := p.hashStore.Write(summaryHash); err != nil {
		return p.errorResult(err)
	}

	if previousHash == "" {
		return CheckResult{
			Status:      StatusFirstRun,
			SummaryHash: summaryHash,
			Message:     "No previous hash found; stored current summary hash.",
		}
	}

	if summaryHash == previousHash {
		return CheckResult{
			Status:       StatusUnchanged,
			SummaryHash:  summaryHash,
			PreviousHash: previousHash,
			Message:      "Pi-hole configuration unchanged.",
		}
	}

	return CheckResult{
		Status:       StatusChanged,
		SummaryHash:  summaryHash,
		PreviousHash: previousHash,
		Message:      "Pi-hole configuration has changed.",
	}
}

// ensureSession installs a valid session identifier on the client: the
// cached one when still valid, otherwise a fresh login whose result is
// cached for subsequent checks. A cache write failure is logged but does not
// fail the check.
func (p *Pipeline) ensureSession(ctx context.Context) error {
	if cachedSID := p.sessionStore.Load(); cachedSID != "" {
		p.logger.Debug().Msg("Using cached session identifier")
		p.client.SetSID(cachedSID)
		return nil
	}

	session, err := p.client.Login(ctx)
	if err != nil {
		return err
	}
	if err := p.sessionStore.Store(session.SID, session.Validity); err != nil {
		p.logger.Warn().Err(err).Msg("Failed to cache session identifier; continuing")
	}
	return nil
}

func (p *Pipeline) errorResult(err error) CheckResult {
	p.logger.Error().Err(err).Msg("Hash check failed")
	return CheckResult{
		Status:  StatusError,
		Message: err.Error(),
	}
}
