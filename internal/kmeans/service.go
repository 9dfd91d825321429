package kmeans

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/drakos74/free-cluster/internal/cluster"
	"github.com/drakos74/free-cluster/internal/data"
	"github.com/drakos74/free-cluster/internal/metrics"
	"github.com/drakos74/free-cluster/internal/server"
	"github.com/drakos74/free-cluster/internal/storage"
)

const (
	Name  = "kmeans"
	label = "trace"

	blobSpread = 4.0
	blobSigma  = 1.0

	// paths the bundled static page calls
	runAction      server.Action = "run_kmeans"
	generateAction server.Action = "generate_data"
)

// Service exposes the clustering engine over http.
type Service struct {
	cfg       Config
	store     storage.Persistence
	generator *data.Generator
	mutex     *sync.Mutex
}

// New creates a new service storing the runs in the given store.
func New(cfg Config, store storage.Persistence) *Service {
	return &Service{
		cfg:       cfg,
		store:     store,
		generator: data.NewGenerator(cfg.Data.Seed),
		mutex:     new(sync.Mutex),
	}
}

// Routes returns the http routes of the service.
func (s *Service) Routes() []server.Route {
	return []server.Route{
		{Action: server.Api, Path: "kmeans", Method: server.POST, Exec: s.run},
		{Action: server.Api, Path: "trace", Method: server.GET, Exec: s.trace},
		{Action: server.Api, Path: "chart", Method: server.GET, Exec: s.chart},
		{Action: server.Data, Path: "generate", Method: server.POST, Exec: s.generate},
		{Action: runAction, Method: server.POST, Exec: s.steps},
		{Action: generateAction, Method: server.POST, Exec: s.generate},
	}
}

// run returns the stored run with its id.
func (s *Service) run(r *http.Request) ([]byte, int, error) {
	run, payload, code, err := s.fit(r)
	if err != nil || code != http.StatusOK {
		return payload, code, err
	}
	payload, err = json.Marshal(run)
	return payload, http.StatusOK, err
}

// steps returns only the trace of the run.
func (s *Service) steps(r *http.Request) ([]byte, int, error) {
	run, payload, code, err := s.fit(r)
	if err != nil || code != http.StatusOK {
		return payload, code, err
	}
	payload, err = json.Marshal(run.Steps)
	return payload, http.StatusOK, err
}

func (s *Service) fit(r *http.Request) (Run, []byte, int, error) {
	var request Request
	if err := server.JsonRead(r, s.cfg.Debug, &request); err != nil {
		metrics.Observer.Run(request.InitMethod.String(), metrics.Invalid)
		return Run{}, []byte(err.Error()), http.StatusBadRequest, nil
	}

	method := request.InitMethod.String()
	engine := cluster.New(request.NumClusters, request.InitMethod)
	if request.InitMethod == cluster.Manual {
		engine = engine.WithCentroids(request.ManualCentroids...)
	}
	trace, err := engine.Fit(request.Data)
	if err != nil {
		if errors.Is(err, cluster.ErrInvalidInput) || errors.Is(err, cluster.ErrConfiguration) {
			log.Warn().Err(err).
				Str("method", method).
				Int("k", request.NumClusters).
				Int("points", len(request.Data)).
				Msg("rejected k-means request")
			metrics.Observer.Run(method, metrics.Invalid)
			return Run{}, []byte(err.Error()), http.StatusBadRequest, nil
		}
		metrics.Observer.Run(method, metrics.Failure)
		return Run{}, nil, 0, fmt.Errorf("could not run k-means: %w", err)
	}
	metrics.Observer.Run(method, metrics.Success)
	metrics.Observer.Iterations(method, len(trace))

	run := Run{
		ID:    uuid.New().String(),
		Steps: trace,
	}
	if err := s.store.Store(storage.Key{ID: run.ID, Label: label}, run); err != nil {
		// the run is still returned to the caller
		log.Error().Err(err).Str("id", run.ID).Msg("could not store trace")
	}

	final, _ := trace.Final()
	log.Info().
		Str("id", run.ID).
		Str("method", method).
		Int("k", request.NumClusters).
		Int("points", len(request.Data)).
		Int("iterations", len(trace)).
		Float64("inertia", final.Inertia).
		Msg("k-means run")
	return run, nil, http.StatusOK, nil
}

func (s *Service) trace(r *http.Request) ([]byte, int, error) {
	run, payload, code, err := s.load(r)
	if err != nil || code != http.StatusOK {
		return payload, code, err
	}
	payload, err = json.Marshal(run)
	return payload, http.StatusOK, err
}

// chart renders one step of a stored run as html, the last one unless 'step' is given.
func (s *Service) chart(r *http.Request) ([]byte, int, error) {
	run, payload, code, err := s.load(r)
	if err != nil || code != http.StatusOK {
		return payload, code, err
	}
	step := len(run.Steps) - 1
	if v := r.URL.Query().Get("step"); v != "" {
		step, err = strconv.Atoi(v)
		if err != nil || step < 0 || step >= len(run.Steps) {
			return []byte(fmt.Sprintf("invalid step '%s' for %d steps", v, len(run.Steps))), http.StatusBadRequest, nil
		}
	}
	if step < 0 {
		return []byte(fmt.Sprintf("no steps for trace '%s'", run.ID)), http.StatusNotFound, nil
	}
	buffer := new(bytes.Buffer)
	if err := render(buffer, fmt.Sprintf("k-means step %d of %d", step+1, len(run.Steps)), run.Steps[step]); err != nil {
		return nil, 0, fmt.Errorf("could not render trace '%s': %w", run.ID, err)
	}
	return buffer.Bytes(), http.StatusOK, nil
}

func (s *Service) load(r *http.Request) (Run, []byte, int, error) {
	id := r.URL.Query().Get("id")
	if id == "" {
		return Run{}, []byte("missing trace id"), http.StatusBadRequest, nil
	}
	var run Run
	if err := s.store.Load(storage.Key{ID: id, Label: label}, &run); err != nil {
		if errors.Is(err, storage.NotFoundErr) {
			return Run{}, []byte(fmt.Sprintf("unknown trace '%s'", id)), http.StatusNotFound, nil
		}
		return Run{}, nil, 0, fmt.Errorf("could not load trace '%s': %w", id, err)
	}
	return run, nil, http.StatusOK, nil
}

func (s *Service) generate(r *http.Request) ([]byte, int, error) {
	request, err := s.dataRequest(r)
	if err != nil {
		return []byte(err.Error()), http.StatusBadRequest, nil
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	var points []cluster.Point
	if request.Clusters > 0 {
		centers, err := s.generator.Centers(request.Clusters, blobSpread)
		if err != nil {
			return []byte(err.Error()), http.StatusBadRequest, nil
		}
		points, err = s.generator.Blobs(request.NumPoints, blobSigma, centers...)
		if err != nil {
			return []byte(err.Error()), http.StatusBadRequest, nil
		}
	} else {
		points, err = s.generator.Generate(request.NumPoints)
		if err != nil {
			return []byte(err.Error()), http.StatusBadRequest, nil
		}
	}
	payload, err := json.Marshal(points)
	return payload, http.StatusOK, err
}

// dataRequest reads the request from a json body or from the form values.
func (s *Service) dataRequest(r *http.Request) (DataRequest, error) {
	request := DataRequest{
		NumPoints: s.cfg.Data.DefaultPoints,
	}
	if r.Header.Get("Content-Type") == "application/json" {
		if err := server.JsonRead(r, s.cfg.Debug, &request); err != nil {
			return request, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return request, err
		}
		if v := r.FormValue("num_points"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return request, fmt.Errorf("invalid number of points '%s': %w", v, err)
			}
			request.NumPoints = n
		}
		if v := r.FormValue("clusters"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return request, fmt.Errorf("invalid number of clusters '%s': %w", v, err)
			}
			request.Clusters = n
		}
	}
	if s.cfg.Data.MaxPoints > 0 && request.NumPoints > s.cfg.Data.MaxPoints {
		return request, fmt.Errorf("too many points %d > %d", request.NumPoints, s.cfg.Data.MaxPoints)
	}
	return request, nil
}
