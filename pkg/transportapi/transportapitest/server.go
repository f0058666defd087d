// Package transportapitest provides an in-memory Transport API for tests
package transportapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	AppID  = "test-app-id"
	AppKey = "test-app-key"
)

type Stop struct {
	Code                string
	Name                string
	ExpectedArrivalTime string
	Platform            string
}

type Train struct {
	UID                   string
	Operator              string
	OriginName            string
	Status                string
	ExpectedDepartureTime string
	AimedDepartureTime    string

	Stops []Stop

	// Non zero makes the timetable endpoint answer with this status code
	TimetableStatus int
}

type Station struct {
	Name      string
	Date      string
	TimeOfDay string
	Trains    []Train
}

type Server struct {
	*httptest.Server

	mutex    sync.RWMutex
	stations map[string]Station

	liveStatus        atomic.Int64
	liveRequests      atomic.Int64
	timetableRequests atomic.Int64
}

func NewServer() *Server {
	s := &Server{
		stations: map[string]Station{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v3/uk/train/station/{code}/live.json", s.live)
	mux.HandleFunc("GET /v3/uk/train/service/{service}/{date}/timetable.json", s.timetable)
	s.Server = httptest.NewServer(mux)

	return s
}

func (s *Server) BaseURL() string {
	return s.URL + "/v3/uk/train"
}

func (s *Server) AddStation(code string, station Station) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.stations[code] = station
}

// SetLiveStatus makes the live departures endpoint answer with the given status code, 0 restores normal answers
func (s *Server) SetLiveStatus(status int) {
	s.liveStatus.Store(int64(status))
}

func (s *Server) LiveRequests() int {
	return int(s.liveRequests.Load())
}

func (s *Server) TimetableRequests() int {
	return int(s.timetableRequests.Load())
}

func authorised(w http.ResponseWriter, r *http.Request) bool {
	query := r.URL.Query()
	if query.Get("app_id") != AppID || query.Get("app_key") != AppKey {
		writeJSON(w, http.StatusForbidden, map[string]any{"error": "Authorisation failed"})
		return false
	}

	return true
}

func (s *Server) live(w http.ResponseWriter, r *http.Request) {
	s.liveRequests.Add(1)

	if !authorised(w, r) {
		return
	}
	if status := int(s.liveStatus.Load()); status != 0 {
		writeJSON(w, status, map[string]any{"error": "live departures unavailable"})
		return
	}

	code := r.PathValue("code")

	s.mutex.RLock()
	station, ok := s.stations[code]
	s.mutex.RUnlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": fmt.Sprintf("unknown station %s", code)})
		return
	}

	departures := []map[string]any{}
	for _, train := range station.Trains {
		timetableURL := fmt.Sprintf("%s/service/train_uid:%s/%s/timetable.json?app_id=%s&app_key=%s&live=true",
			s.BaseURL(), train.UID, station.Date, AppID, AppKey)

		departures = append(departures, map[string]any{
			"mode":                    "train",
			"train_uid":               train.UID,
			"operator":                train.Operator,
			"origin_name":             train.OriginName,
			"status":                  train.Status,
			"expected_departure_time": nullable(train.ExpectedDepartureTime),
			"aimed_departure_time":    nullable(train.AimedDepartureTime),
			"service_timetable": map[string]any{
				"id": timetableURL,
			},
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":         station.Date,
		"time_of_day":  station.TimeOfDay,
		"station_name": station.Name,
		"station_code": code,
		"departures": map[string]any{
			"all": departures,
		},
	})
}

func (s *Server) timetable(w http.ResponseWriter, r *http.Request) {
	s.timetableRequests.Add(1)

	if !authorised(w, r) {
		return
	}

	uid := strings.TrimPrefix(r.PathValue("service"), "train_uid:")

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, station := range s.stations {
		for _, train := range station.Trains {
			if train.UID != uid {
				continue
			}

			if train.TimetableStatus != 0 {
				writeJSON(w, train.TimetableStatus, map[string]any{"error": "timetable unavailable"})
				return
			}

			stops := []map[string]any{}
			for _, stop := range train.Stops {
				stops = append(stops, map[string]any{
					"station_code":          stop.Code,
					"station_name":          stop.Name,
					"expected_arrival_time": nullable(stop.ExpectedArrivalTime),
					"platform":              nullable(stop.Platform),
				})
			}

			writeJSON(w, http.StatusOK, map[string]any{
				"train_uid": uid,
				"stops":     stops,
			})
			return
		}
	}

	writeJSON(w, http.StatusNotFound, map[string]any{"error": "unknown train"})
}

func nullable(value string) any {
	if value == "" {
		return nil
	}

	return value
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// ReadingToPaddington is a small fixture with two trains listed latest first
func ReadingToPaddington() Station {
	return Station{
		Name:      "Reading",
		Date:      "2019-07-15",
		TimeOfDay: "08:00",
		Trains: []Train{
			{
				UID:                   "C23294",
				Operator:              "GW",
				OriginName:            "Didcot Parkway",
				Status:                "LATE",
				ExpectedDepartureTime: "08:15",
				AimedDepartureTime:    "08:10",
				Stops: []Stop{
					{Code: "DID", Name: "Didcot Parkway", Platform: "1"},
					{Code: "RDG", Name: "Reading", ExpectedArrivalTime: "08:14", Platform: "9"},
					{Code: "TWY", Name: "Twyford", ExpectedArrivalTime: "08:21", Platform: "2"},
					{Code: "PAD", Name: "London Paddington", ExpectedArrivalTime: "08:45", Platform: "12"},
				},
			},
			{
				UID:                "C23362",
				Operator:           "GW",
				OriginName:         "Reading",
				Status:             "ON TIME",
				AimedDepartureTime: "08:05",
				Stops: []Stop{
					{Code: "RDG", Name: "Reading", Platform: "7"},
					{Code: "SLO", Name: "Slough", ExpectedArrivalTime: "08:20", Platform: "4"},
					{Code: "PAD", Name: "London Paddington", ExpectedArrivalTime: "08:35", Platform: "1"},
					{Code: "XXX", Name: "Depot"},
				},
			},
		},
	}
}
