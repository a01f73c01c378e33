package listener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/gorilla/mux"
	"github.com/icinga/icinga-restquery/pkg/filter"
	"github.com/icinga/icingadb/pkg/logging"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"net/http"
	"net/url"
	"time"
)

// Listener serves the filter sets of all configured resources over HTTP.
//
// GET /v1/filter/{resource}?<query> responds with the predicates parsed from the query string.
type Listener struct {
	address string
	sets    map[string]*filter.FilterSet
	logger  *logging.Logger
	router  *mux.Router
}

// Response is the JSON body of a successful filter request.
type Response struct {
	Resource   string             `json:"resource"`
	Predicates []filter.Predicate `json:"predicates"`
}

// ErrorResponse is the JSON body of a failed filter request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func NewListener(address string, sets map[string]*filter.FilterSet, logger *logging.Logger) *Listener {
	l := &Listener{address: address, sets: sets, logger: logger, router: mux.NewRouter()}
	l.router.HandleFunc("/v1/filter/{resource}", l.handleFilter).Methods(http.MethodGet)
	l.router.HandleFunc("/v1/resources", l.handleResources).Methods(http.MethodGet)

	return l
}

// Handler returns the http.Handler serving all the listener endpoints.
func (l *Listener) Handler() http.Handler {
	return l.router
}

// Run serves HTTP requests until the given context is canceled.
func (l *Listener) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              l.address,
		Handler:           l.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		l.logger.Infof("Starting listener on http://%s", l.address)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		l.logger.Info("Stopping listener")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}

		if err := <-serverErr; !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return ctx.Err()
	}
}

func (l *Listener) handleFilter(w http.ResponseWriter, r *http.Request) {
	resource := mux.Vars(r)["resource"]
	fs, ok := l.sets[resource]
	if !ok {
		l.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("unknown resource %q", resource)})
		return
	}

	// The filter sets expect a decoded query string, thus unescape it in one go.
	query, err := url.QueryUnescape(r.URL.RawQuery)
	if err != nil {
		l.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("cannot decode query string: %v", err)})
		return
	}

	predicates, err := fs.Parse(query)
	if err != nil {
		l.logger.Debugw("Rejecting filter request", zap.String("resource", resource), zap.Error(err))

		l.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if predicates == nil {
		predicates = []filter.Predicate{}
	}

	l.writeJSON(w, http.StatusOK, Response{Resource: resource, Predicates: predicates})
}

func (l *Listener) handleResources(w http.ResponseWriter, _ *http.Request) {
	resources := maps.Keys(l.sets)
	slices.Sort(resources)

	l.writeJSON(w, http.StatusOK, resources)
}

func (l *Listener) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		l.logger.Errorw("Cannot write response", zap.Error(err))
	}
}
