package server

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"reflect"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Action string

type Method string

const (
	Data Action = "data"
	Api  Action = "api"

	GET  Method = "GET"
	POST Method = "POST"
)

// Handler handles a request and returns the payload and status code of the response.
// A non-nil error results in an internal server error.
type Handler func(r *http.Request) ([]byte, int, error)

type Route struct {
	Action Action
	Path   string
	Method Method
	Exec   Handler
}

type Server struct {
	name    string
	port    int
	debug   bool
	block   Block
	routes  []Route
	mounts  map[string]http.Handler
	monitor *sync.Once
}

func NewServer(name string, port int) *Server {
	return &Server{
		name:    name,
		port:    port,
		block:   NewBlock(),
		routes:  make([]Route, 0),
		mounts:  make(map[string]http.Handler),
		monitor: new(sync.Once),
	}
}

// Debug sets the server to debug mode
func (s *Server) Debug() *Server {
	s.debug = true
	return s
}

// AddRoute adds the given route to the server
func (s *Server) AddRoute(method Method, action Action, path string, exec Handler) *Server {
	s.routes = append(s.routes, Route{
		Action: action,
		Path:   path,
		Method: method,
		Exec:   exec,
	})
	return s
}

// Add adds the given routes to the server
func (s *Server) Add(route ...Route) *Server {
	s.routes = append(s.routes, route...)
	return s
}

// Mount serves the given handler under the given path as is.
func (s *Server) Mount(path string, handler http.Handler) *Server {
	s.mounts[path] = handler
	return s
}

func (s *Server) handle(method Method, handler Handler) func(w http.ResponseWriter, r *http.Request) {
	// we should only handle one request per time,
	// in order to ease memory footprint.
	name := runtime.FuncForPC(reflect.ValueOf(handler).Pointer()).Name()
	return func(w http.ResponseWriter, r *http.Request) {
		request := fmt.Sprintf("%s request : %s", method, name)
		s.block.Action <- NewSignal(request).Create()
		defer func() {
			s.block.ReAction <- NewSignal(request).Create()
		}()
		requestMethod := Method(r.Method)
		switch requestMethod {
		case method:
			start := time.Now()
			b, code, err := handler(r)
			if s.debug {
				log.Info().
					Str("method", r.Method).
					Str("url", r.URL.String()).
					Str("remote-address", r.RemoteAddr).
					Int("code", code).
					Int("bytes", len(b)).
					Err(err).
					Dur("duration", time.Since(start)).
					Msg("handled request")
			}
			if err != nil {
				s.error(w, err)
			} else if code != http.StatusOK && code != 0 {
				s.code(w, b, code)
			} else {
				s.respond(w, b)
			}
		default:
			w.WriteHeader(http.StatusNotImplemented)
		}
	}
}

func (s *Server) run() {
	s.monitor.Do(func() {
		go func() {
			for action := range s.block.Action {
				log.Debug().
					Time("time", action.Time).
					Str("id", action.ID).
					Str("action", action.Name).
					Msg("started execution")
				reaction := <-s.block.ReAction
				log.Debug().
					Time("time", action.Time).
					Float64("duration", time.Since(action.Time).Seconds()).
					Str("reaction", reaction.Name).
					Msg("completed execution")
			}
		}()
	})
}

// Mux returns the handler for all routes of the server.
func (s *Server) Mux() *http.ServeMux {
	s.run()
	mux := http.NewServeMux()
	for _, route := range s.routes {
		if route.Path != "" {
			mux.HandleFunc(fmt.Sprintf("/%s/%s", route.Action, route.Path), s.handle(route.Method, route.Exec))
		} else {
			mux.HandleFunc(fmt.Sprintf("/%s", route.Action), s.handle(route.Method, route.Exec))
		}
	}
	for path, handler := range s.mounts {
		mux.Handle(path, handler)
	}
	return mux
}

// Run starts the server
func (s *Server) Run() error {
	mux := s.Mux()
	log.Info().Str("server", s.name).Int("port", s.port).Int("routes", len(s.routes)).Msg("starting server")
	if err := http.ListenAndServe(fmt.Sprintf(":%d", s.port), mux); err != nil {
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) code(w http.ResponseWriter, b []byte, code int) {
	w.WriteHeader(code)
	s.respond(w, b)
}

func (s *Server) respond(w http.ResponseWriter, b []byte) {
	_, err := w.Write(b)
	if err != nil {
		log.Error().Err(err).Msg("could not write response")
	}
}

func (s *Server) error(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("error for http request")
	s.code(w, []byte(err.Error()), http.StatusInternalServerError)
}

func Live() Route {
	return Route{
		Action: Data,
		Method: GET,
		Exec: func(r *http.Request) (payload []byte, code int, err error) {
			return []byte{}, 200, nil
		},
	}
}

// JsonRead reads the json body of the request into v.
// An empty body leaves v untouched.
func JsonRead(r *http.Request, debug bool, v interface{}) error {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if debug {
		log.Info().
			Str("url", fmt.Sprintf("%+v", r.URL)).
			Str("request", r.RequestURI).
			Str("header", fmt.Sprintf("%+v", r.Header)).
			Str("remote-address", r.RemoteAddr).
			Str("host", r.Host).
			Str("method", r.Method).
			Str("body", string(body)).
			Msg("received payload")
	}
	if len(body) > 0 {
		err = json.Unmarshal(body, v)
		if err != nil {
			return err
		}
	}
	return nil
}
