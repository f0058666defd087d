// Package grpcapi exposes the journey planner as the trains.TrainService gRPC service.
//
// Messages are google.protobuf.Struct values so the service needs no generated code:
// requests carry the "from" and "to" station codes and responses carry the enriched journey.
package grpcapi

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/liip/sheriff"
	"github.com/travigo/trains/pkg/ctdf"
	"github.com/travigo/trains/pkg/enricher"
	"github.com/travigo/trains/pkg/planner"
	"github.com/travigo/trains/pkg/stations"
	"github.com/travigo/trains/pkg/transportapi"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName     = "trains.TrainService"
	GetTrainsMethod = "/" + ServiceName + "/GetTrains"
)

type TrainServiceServer interface {
	GetTrains(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error)
}

var TrainServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TrainServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetTrains",
			Handler:    getTrainsHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "trains.proto",
}

func RegisterTrainServiceServer(registrar grpc.ServiceRegistrar, server TrainServiceServer) {
	registrar.RegisterService(&TrainServiceDesc, server)
}

func getTrainsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	request := new(structpb.Struct)
	if err := dec(request); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(TrainServiceServer).GetTrains(ctx, request)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetTrainsMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TrainServiceServer).GetTrains(ctx, req.(*structpb.Struct))
	}

	return interceptor(ctx, request, info, handler)
}

type JourneyPlanner interface {
	PlanJourney(ctx context.Context, originCode string, destinationCode string) (*planner.Report, error)
}

// Server answers GetTrains calls with the planner's enriched journey
type Server struct {
	Planner JourneyPlanner
}

func (s *Server) GetTrains(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	fields := request.GetFields()
	from := strings.TrimSpace(fields["from"].GetStringValue())
	to := strings.TrimSpace(fields["to"].GetStringValue())

	if from == "" || to == "" {
		return nil, status.Error(codes.InvalidArgument, "from and to are required")
	}

	report, err := s.Planner.PlanJourney(ctx, from, to)
	if err != nil {
		return nil, status.Error(CodeForError(err), err.Error())
	}

	response, err := JourneyToStruct(report.Journey)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return response, nil
}

// CodeForError picks the status code for an error returned by the planner
func CodeForError(err error) codes.Code {
	switch {
	case errors.Is(err, stations.ErrInvalidFormat):
		return codes.InvalidArgument
	case errors.Is(err, stations.ErrNotFound):
		return codes.NotFound
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, transportapi.ErrNetwork),
		errors.Is(err, transportapi.ErrUpstream),
		errors.Is(err, enricher.ErrPartialFailure):
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// JourneyToStruct converts the journey, stops included, into the same shape the web API returns
func JourneyToStruct(journey *ctdf.Journey) (*structpb.Struct, error) {
	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "stops"},
	}, journey)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(reduced)
	if err != nil {
		return nil, err
	}

	message := &structpb.Struct{}
	if err := protojson.Unmarshal(encoded, message); err != nil {
		return nil, err
	}

	return message, nil
}
