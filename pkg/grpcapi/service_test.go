package grpcapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/trains/pkg/credentials"
	"github.com/travigo/trains/pkg/enricher"
	"github.com/travigo/trains/pkg/planner"
	"github.com/travigo/trains/pkg/stations"
	"github.com/travigo/trains/pkg/transportapi"
	"github.com/travigo/trains/pkg/transportapi/transportapitest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func startServer(t *testing.T, journeyPlanner JourneyPlanner) *Client {
	listener := bufconn.Listen(1024 * 1024)

	server := grpc.NewServer(grpc.UnaryInterceptor(LoggingInterceptor))
	RegisterTrainServiceServer(server, &Server{Planner: journeyPlanner})

	go server.Serve(listener)
	t.Cleanup(server.Stop)

	conn, err := Dial("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return listener.DialContext(ctx)
	}))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewClient(conn)
}

func newPlanner(t *testing.T, server *transportapitest.Server) *planner.Planner {
	directory, err := stations.LoadDefault()
	require.NoError(t, err)

	client := transportapi.NewClient(server.BaseURL(), &credentials.Credentials{
		AppID:  transportapitest.AppID,
		AppKey: transportapitest.AppKey,
	}, 2*time.Second, "trains-test")

	return &planner.Planner{
		Stations:   directory,
		Departures: client,
		Enricher:   &enricher.Enricher{Timetables: client},
		Timeout:    5 * time.Second,
	}
}

func TestGetTrains(t *testing.T) {
	upstream := transportapitest.NewServer()
	defer upstream.Close()
	upstream.AddStation("RDG", transportapitest.ReadingToPaddington())

	client := startServer(t, newPlanner(t, upstream))

	journey, err := client.GetTrains(context.Background(), "RDG", "PAD")
	require.NoError(t, err)

	fields := journey.GetFields()
	assert.Equal(t, "RDG", fields["OriginCode"].GetStringValue())
	assert.Equal(t, "London Paddington", fields["DestinationName"].GetStringValue())

	departures := fields["Departures"].GetListValue().GetValues()
	require.Len(t, departures, 2)

	first := departures[0].GetStructValue().GetFields()
	assert.Equal(t, "C23294", first["TrainUID"].GetStringValue())
	assert.NotContains(t, first, "TimetableRef")

	stops := first["Stops"].GetListValue().GetValues()
	require.Len(t, stops, 4)
	assert.False(t, stops[0].GetStructValue().GetFields()["OnRoute"].GetBoolValue())
	assert.True(t, stops[1].GetStructValue().GetFields()["OnRoute"].GetBoolValue())
	assert.True(t, stops[3].GetStructValue().GetFields()["OnRoute"].GetBoolValue())
}

func TestGetTrainsStatusCodes(t *testing.T) {
	upstream := transportapitest.NewServer()
	defer upstream.Close()
	upstream.AddStation("RDG", transportapitest.ReadingToPaddington())

	client := startServer(t, newPlanner(t, upstream))

	tests := []struct {
		name     string
		from     string
		to       string
		expected codes.Code
	}{
		{"missing destination", "RDG", "", codes.InvalidArgument},
		{"invalid format", "RD", "PAD", codes.InvalidArgument},
		{"unknown station", "ZZZ", "PAD", codes.NotFound},
		{"no upstream data", "PAD", "RDG", codes.Unavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := client.GetTrains(context.Background(), tc.from, tc.to)

			assert.Equal(t, tc.expected, status.Code(err))
		})
	}
}

func TestCodeForError(t *testing.T) {
	tests := []struct {
		err      error
		expected codes.Code
	}{
		{fmt.Errorf("origin: %w", stations.ErrInvalidFormat), codes.InvalidArgument},
		{fmt.Errorf("origin: %w", stations.ErrNotFound), codes.NotFound},
		{fmt.Errorf("%w: %w", transportapi.ErrNetwork, context.DeadlineExceeded), codes.DeadlineExceeded},
		{fmt.Errorf("%w: refused", transportapi.ErrNetwork), codes.Unavailable},
		{fmt.Errorf("%w: status %d", transportapi.ErrUpstream, http.StatusForbidden), codes.Unavailable},
		{&enricher.PartialFailureError{Total: 1}, codes.Unavailable},
		{fmt.Errorf("boom"), codes.Internal},
	}

	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.expected, CodeForError(tc.err))
		})
	}
}
