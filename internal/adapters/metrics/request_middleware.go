package metrics

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/ficsit-planner-go/internal/application/mediator"
)

// PlanSized is implemented by responses that carry a plan tree
type PlanSized interface {
	PlanNodes() int
}

// RequestMetricsMiddleware times every mediator request and counts its outcome.
// Responses implementing PlanSized also feed the plan node histogram.
// A nil collector disables the middleware.
func RequestMetricsMiddleware(collector *RequestMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		name, kind := describeRequest(request)
		start := time.Now()

		response, err := next(ctx, request)

		collector.RecordRequest(name, kind, requestOutcome(err), time.Since(start).Seconds())
		if sized, ok := response.(PlanSized); ok && err == nil {
			if nodes := sized.PlanNodes(); nodes > 0 {
				collector.RecordPlanNodes(name, nodes)
			}
		}

		return response, err
	}
}

func requestOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}

// describeRequest returns the request's type name and whether it is a command or a query,
// e.g. *commands.CreatePlanCommand gives ("CreatePlanCommand", "command").
func describeRequest(request mediator.Request) (string, string) {
	if request == nil {
		return "Unknown", KindOther
	}

	t := reflect.TypeOf(request)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	kind := KindOther
	switch path := t.PkgPath(); {
	case strings.HasSuffix(path, "/commands"):
		kind = KindCommand
	case strings.HasSuffix(path, "/queries"):
		kind = KindQuery
	}

	name := t.Name()
	if name == "" {
		name = t.String()
	}
	return name, kind
}
