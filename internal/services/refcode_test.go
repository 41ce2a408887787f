package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"erp-service/internal/apperr"
	applogger "erp-service/internal/logger"
)

func newRefcodeService() *ReferenceCodeService {
	return NewReferenceCodeService(applogger.NewNop(), newTestCollector())
}

func neverExists(context.Context, string) (bool, error) { return false, nil }

func TestGenerateFormat(t *testing.T) {
	svc := newRefcodeService()
	pattern := regexp.MustCompile(`^PRJ-[A-Z0-9]{8}$`)

	code, err := svc.Generate(context.Background(), "PRJ", neverExists)
	require.NoError(t, err)
	require.Regexp(t, pattern, code)
}

func TestGenerateSequentialUniqueness(t *testing.T) {
	svc := newRefcodeService()
	taken := make(map[string]bool)
	exists := func(_ context.Context, code string) (bool, error) {
		return taken[code], nil
	}
	pattern := regexp.MustCompile(`^CLI-[A-Z0-9]+$`)

	for i := 0; i < 1000; i++ {
		code, err := svc.Generate(context.Background(), "CLI", exists)
		require.NoError(t, err)
		require.Regexp(t, pattern, code)
		require.False(t, taken[code], "generated duplicate code %s", code)
		taken[code] = true
	}
	require.Len(t, taken, 1000)
}

func TestGenerateSucceedsOnLastAttempt(t *testing.T) {
	svc := newRefcodeService()
	calls := 0
	exists := func(_ context.Context, code string) (bool, error) {
		calls++
		// The first 99 candidates are all taken; the 100th is free.
		return calls < 100, nil
	}

	code, err := svc.Generate(context.Background(), "TND", exists)
	require.NoError(t, err)
	require.Equal(t, 100, calls)
	require.Regexp(t, regexp.MustCompile(`^TND-[A-Z0-9]{8}$`), code)
}

func TestGenerateFallsBackAfterExhaustion(t *testing.T) {
	svc := newRefcodeService()
	calls := 0
	exists := func(_ context.Context, code string) (bool, error) {
		calls++
		return true, nil
	}

	code, err := svc.Generate(context.Background(), "CON", exists)
	require.NoError(t, err)
	require.Equal(t, 100, calls, "attempts must be bounded")
	require.True(t, strings.HasPrefix(code, "CON-"))
	require.Regexp(t, regexp.MustCompile(`^CON-[A-Z0-9]+$`), code)
	// The timestamp fallback is longer than eight characters well past 2009.
	require.Greater(t, len(code), len("CON-")+7)
}

func TestGenerateStoreFailure(t *testing.T) {
	svc := newRefcodeService()
	exists := func(_ context.Context, code string) (bool, error) {
		return false, fmt.Errorf("connection refused")
	}

	_, err := svc.Generate(context.Background(), "DOC", exists)
	require.Error(t, err)
	require.True(t, apperr.IsStoreFailure(err))
}
