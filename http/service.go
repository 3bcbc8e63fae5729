package http

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tferdous17/rbkv/store"
	"github.com/tferdous17/rbkv/utils"
)

type Service struct {
	addr   string
	ln     net.Listener
	server *http.Server

	store store.Store
}

type entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NewService returns an unitialized HTTP service
func NewService(addr string, store store.Store) *Service {
	return &Service{
		addr:  addr,
		store: store,
	}
}

func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Post("/key", handleFunc(s.servePut))
	r.Get("/key/{key}", handleFunc(s.serveGet))
	r.Delete("/key/{key}", handleFunc(s.serveDelete))
	r.Get("/keys", handleFunc(s.serveRange))
	r.Get("/min", handleFunc(s.serveMin))
	r.Get("/max", handleFunc(s.serveMax))
	r.Get("/next/{key}", handleFunc(s.serveNext))
	r.Get("/prev/{key}", handleFunc(s.servePrev))
	r.Get("/verify", handleFunc(s.serveVerify))
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func (s *Service) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		err := s.server.Serve(s.ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogRED("serve err: %s", err)
		}
	}()

	return nil
}

func (s *Service) Close() error {
	if s.server == nil {
		return nil
	}
	return s.server.Close()
}

func (s *Service) Addr() net.Addr {
	return s.ln.Addr()
}

func handleFunc(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			http.Error(w, err.Error(), statusFor(err))
		}
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, utils.ErrKeyNotFound), errors.Is(err, utils.ErrEmptyTree),
		errors.Is(err, utils.ErrNoSuccessor), errors.Is(err, utils.ErrNoPredecessor):
		return http.StatusNotFound
	case errors.Is(err, utils.ErrEmptyKey), errors.Is(err, utils.ErrEmptyValue),
		errors.Is(err, utils.ErrInvalidRange), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var errBadRequest = errors.New("bad request")

func (s *Service) servePut(w http.ResponseWriter, r *http.Request) error {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return errBadRequest
	}
	m := map[string]string{}
	if err := json.Unmarshal(b, &m); err != nil || len(m) == 0 {
		return errBadRequest
	}

	for k, v := range m {
		if err := s.store.Put(k, v); err != nil {
			return err
		}
	}
	w.WriteHeader(http.StatusOK)
	return nil
}

func (s *Service) serveGet(w http.ResponseWriter, r *http.Request) error {
	record, err := s.store.Get(chi.URLParam(r, "key"))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, record.Value)
	return err
}

func (s *Service) serveDelete(w http.ResponseWriter, r *http.Request) error {
	record, err := s.store.Delete(chi.URLParam(r, "key"))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, record.Value)
	return err
}

// serveRange answers GET /keys?from=&to= with the entries in between, inclusive. A missing bound
// is open-ended.
func (s *Service) serveRange(w http.ResponseWriter, r *http.Request) error {
	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	open := from == "" || to == ""
	entries := []entry{}

	if from == "" {
		min, err := s.store.Min()
		if errors.Is(err, utils.ErrEmptyTree) {
			return writeJSON(w, entries)
		} else if err != nil {
			return err
		}
		from = min.Key
	}
	if to == "" {
		max, err := s.store.Max()
		if errors.Is(err, utils.ErrEmptyTree) {
			return writeJSON(w, entries)
		} else if err != nil {
			return err
		}
		to = max.Key
	}
	if open && from > to {
		// the given bound lies past every stored key
		return writeJSON(w, entries)
	}

	records, err := s.store.Range(from, to)
	if err != nil {
		return err
	}
	for _, record := range records {
		entries = append(entries, entry{Key: record.Key, Value: record.Value})
	}
	return writeJSON(w, entries)
}

func (s *Service) serveMin(w http.ResponseWriter, r *http.Request) error {
	return writeRecord(w)(s.store.Min())
}

func (s *Service) serveMax(w http.ResponseWriter, r *http.Request) error {
	return writeRecord(w)(s.store.Max())
}

func (s *Service) serveNext(w http.ResponseWriter, r *http.Request) error {
	return writeRecord(w)(s.store.Next(chi.URLParam(r, "key")))
}

func (s *Service) servePrev(w http.ResponseWriter, r *http.Request) error {
	return writeRecord(w)(s.store.Prev(chi.URLParam(r, "key")))
}

func (s *Service) serveVerify(w http.ResponseWriter, r *http.Request) error {
	if err := s.store.Verify(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "ok")
	return err
}

func writeRecord(w http.ResponseWriter) func(store.Record, error) error {
	return func(record store.Record, err error) error {
		if err != nil {
			return err
		}
		return writeJSON(w, entry{Key: record.Key, Value: record.Value})
	}
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}
