package services

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"

	"erp-service/internal/apperr"
	"erp-service/internal/logger"
	"erp-service/internal/metrics"
)

const (
	refcodeAlphabet    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	refcodeLength      = 8
	refcodeMaxAttempts = 100
)

// Reference code prefixes per entity type.
const (
	PrefixClient   = "CLI"
	PrefixProject  = "PRJ"
	PrefixTender   = "TND"
	PrefixContract = "CON"
	PrefixDocument = "DOC"
)

// ExistsFunc reports whether a candidate reference number is already taken.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// ReferenceCodeService generates unique human-readable reference numbers of
// the form <PREFIX>-<8 uppercase base36 chars>. The existence check per
// candidate keeps collisions out of the hot path; the store-level unique
// index on reference_number is what actually guarantees uniqueness under
// concurrent generation.
type ReferenceCodeService struct {
	log     *logger.Logger
	metrics *metrics.Collector
}

// NewReferenceCodeService creates a ReferenceCodeService.
func NewReferenceCodeService(log *logger.Logger, collector *metrics.Collector) *ReferenceCodeService {
	return &ReferenceCodeService{
		log:     log.With("service", "ReferenceCodeService"),
		metrics: collector,
	}
}

// Generate returns a reference number with the given prefix that was free at
// check time. After 100 colliding candidates it falls back to a
// timestamp-based code without re-checking; callers must still treat a unique
// constraint violation at insert time as a Conflict.
func (s *ReferenceCodeService) Generate(ctx context.Context, prefix string, exists ExistsFunc) (string, error) {
	for attempt := 1; attempt <= refcodeMaxAttempts; attempt++ {
		candidate, err := randomCode(prefix)
		if err != nil {
			return "", apperr.StoreFailure(err, "could not generate reference code")
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", apperr.StoreFailure(err, "reference code uniqueness check failed")
		}
		if !taken {
			s.metrics.RefcodeGenerated(attempt)
			return candidate, nil
		}
	}

	// All attempts collided. Best effort: a millisecond timestamp code,
	// returned unchecked. The unique index still has the final word.
	fallback := prefix + "-" + strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	s.log.Warn("reference code generation exhausted all attempts, using timestamp fallback",
		"prefix", prefix, "code", fallback)
	s.metrics.RefcodeGenerated(refcodeMaxAttempts)
	s.metrics.RefcodeFallback()
	return fallback, nil
}

func randomCode(prefix string) (string, error) {
	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteByte('-')
	max := big.NewInt(int64(len(refcodeAlphabet)))
	for i := 0; i < refcodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(refcodeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}
