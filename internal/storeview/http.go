package storeview

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/grpc-gateway/runtime"
	"github.com/grpc-ecosystem/grpc-gateway/utilities"
	"github.com/spf13/cast"
)

// ReadFunc produces the JSON body of a GET route from its path parameters.
type ReadFunc func(vars map[string]string) (any, error)

// Route is one GET route. Path segments written as {name} capture a path
// parameter, e.g. /arena/games/{id}.
type Route struct {
	Path string
	Read ReadFunc
}

type badRequest struct{ error }

func (e badRequest) Unwrap() error { return e.error }

// BadRequest marks err as caused by the request, so Handler answers 400.
func BadRequest(err error) error { return badRequest{err} }

// PathUint64 parses the named path parameter. A malformed value maps to 400.
func PathUint64(vars map[string]string, name string) (uint64, error) {
	v, err := cast.ToUint64E(vars[name])
	if err != nil {
		return 0, BadRequest(err)
	}
	return v, nil
}

// Register mounts routes on a gateway mux. Errors matching one of notFound
// answer 404.
func Register(gw *runtime.ServeMux, routes []Route, notFound ...error) error {
	for _, route := range routes {
		pattern, err := compile(route.Path)
		if err != nil {
			return fmt.Errorf("route %s: %w", route.Path, err)
		}
		gw.Handle(http.MethodGet, pattern, Handler(route.Read, notFound...))
	}
	return nil
}

// compile turns a path template into the op codes the gateway matches on.
func compile(path string) (runtime.Pattern, error) {
	var (
		ops  []int
		pool []string
	)
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			pool = append(pool, seg[1:len(seg)-1])
			ops = append(ops,
				int(utilities.OpPush), 0,
				int(utilities.OpConcatN), 1,
				int(utilities.OpCapture), len(pool)-1,
			)
			continue
		}
		pool = append(pool, seg)
		ops = append(ops, int(utilities.OpLitPush), len(pool)-1)
	}
	return runtime.NewPattern(1, ops, pool, "")
}

// Handler encodes read's result as JSON. Errors matching one of notFound map
// to 404, and anything else not caused by the request maps to 500.
func Handler(read ReadFunc, notFound ...error) runtime.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request, vars map[string]string) {
		out, err := read(vars)
		if err != nil {
			writeJSON(w, statusOf(err, notFound), map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func statusOf(err error, notFound []error) int {
	var bad badRequest
	if errors.As(err, &bad) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	for _, target := range notFound {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
