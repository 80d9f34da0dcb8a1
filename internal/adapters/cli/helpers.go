package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/andrescamacho/ficsit-planner-go/internal/application/mediator"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/planning"
)

// send dispatches request and asserts the response type
func send[T any](ctx context.Context, m mediator.Mediator, request mediator.Request) (T, error) {
	var zero T
	response, err := m.Send(ctx, request)
	if err != nil {
		return zero, err
	}
	typed, ok := response.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected response type %T", response)
	}
	return typed, nil
}

// resolvePolicy parses a --policy value, falling back to the configured default
func resolvePolicy(flagValue string, configured string) (planning.OptimizationPolicy, error) {
	if flagValue != "" {
		return planning.ParseOptimizationPolicy(flagValue)
	}
	return planning.ParseOptimizationPolicy(configured)
}

// parseRate parses a positive items-per-minute rate
func parseRate(value string) (float64, error) {
	rate, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid rate %q", value)
	}
	if rate <= 0 {
		return 0, fmt.Errorf("rate must be positive, got %s", value)
	}
	return rate, nil
}

// parseInts parses every arg as an integer
func parseInts(args []string, names ...string) ([]int, error) {
	if len(args) != len(names) {
		return nil, fmt.Errorf("expected %s", strings.Join(names, " "))
	}
	values := make([]int, len(args))
	for i, arg := range args {
		value, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q", names[i], arg)
		}
		values[i] = value
	}
	return values, nil
}

// maskPassword hides the password of a postgres URL for display
func maskPassword(url string) string {
	schemeEnd := strings.Index(url, "://")
	at := strings.LastIndex(url, "@")
	if schemeEnd < 0 || at < schemeEnd {
		return url
	}
	credentials := url[schemeEnd+3 : at]
	colon := strings.Index(credentials, ":")
	if colon < 0 {
		return url
	}
	return url[:schemeEnd+3] + credentials[:colon] + ":****" + url[at:]
}
