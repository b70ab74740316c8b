package api

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "worklog.v1.WorklogService"

const (
	MethodPing           = "Ping"
	MethodRegister       = "Register"
	MethodLogin          = "Login"
	MethodRefreshToken   = "RefreshToken"
	MethodLogout         = "Logout"
	MethodProfile        = "Profile"
	MethodCreateTask     = "CreateTask"
	MethodListTasks      = "ListTasks"
	MethodToggleTask     = "ToggleTask"
	MethodCountTasks     = "CountTasks"
	MethodAppendLog      = "AppendLog"
	MethodListLogs       = "ListLogs"
	MethodExportLogs     = "ExportLogs"
	MethodListActivities = "ListActivities"
)

// FullMethod returns the "/service/method" path gRPC uses for method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// PublicMethods can be called without an access token.
var PublicMethods = map[string]bool{
	FullMethod(MethodPing):         true,
	FullMethod(MethodRegister):     true,
	FullMethod(MethodLogin):        true,
	FullMethod(MethodRefreshToken): true,
	FullMethod(MethodLogout):       true,
}

// WorklogServer is the server-side contract of the service.
type WorklogServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*TokenResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*TokenResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	Profile(context.Context, *ProfileRequest) (*ProfileResponse, error)
	CreateTask(context.Context, *CreateTaskRequest) (*TaskResponse, error)
	ListTasks(context.Context, *ListTasksRequest) (*ListTasksResponse, error)
	ToggleTask(context.Context, *ToggleTaskRequest) (*TaskResponse, error)
	CountTasks(context.Context, *CountTasksRequest) (*CountTasksResponse, error)
	AppendLog(context.Context, *AppendLogRequest) (*AppendLogResponse, error)
	ListLogs(context.Context, *ListLogsRequest) (*ListLogsResponse, error)
	ExportLogs(context.Context, *ExportLogsRequest) (*ExportLogsResponse, error)
	ListActivities(context.Context, *ListActivitiesRequest) (*ListActivitiesResponse, error)
}

// unary builds a MethodDesc that decodes Req and dispatches to call,
// routing through the server's interceptor chain when one is installed.
func unary[Req any, Resp any](method string, call func(WorklogServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(WorklogServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(WorklogServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes WorklogService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*WorklogServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodPing, WorklogServer.Ping),
		unary(MethodRegister, WorklogServer.Register),
		unary(MethodLogin, WorklogServer.Login),
		unary(MethodRefreshToken, WorklogServer.RefreshToken),
		unary(MethodLogout, WorklogServer.Logout),
		unary(MethodProfile, WorklogServer.Profile),
		unary(MethodCreateTask, WorklogServer.CreateTask),
		unary(MethodListTasks, WorklogServer.ListTasks),
		unary(MethodToggleTask, WorklogServer.ToggleTask),
		unary(MethodCountTasks, WorklogServer.CountTasks),
		unary(MethodAppendLog, WorklogServer.AppendLog),
		unary(MethodListLogs, WorklogServer.ListLogs),
		unary(MethodExportLogs, WorklogServer.ExportLogs),
		unary(MethodListActivities, WorklogServer.ListActivities),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "worklog/v1/worklog.json",
}

// RegisterWorklogServer attaches srv to a gRPC server.
func RegisterWorklogServer(s grpc.ServiceRegistrar, srv WorklogServer) {
	s.RegisterService(&ServiceDesc, srv)
}
